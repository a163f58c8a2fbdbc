package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/screentime/internal/api"
)

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	Device     string           `json:"device"`
	Rankings   []api.AppRanking `json:"rankings"`
	Daily      []api.DailyStat  `json:"daily"`
}

func ToJSON(s Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: s.ExportedAt.UTC().Format(time.RFC3339),
		Device:     deviceLabel(s.Device),
		Rankings:   s.Rankings,
		Daily:      s.Daily,
	}
	if export.Rankings == nil {
		export.Rankings = []api.AppRanking{}
	}
	if export.Daily == nil {
		export.Daily = []api.DailyStat{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
