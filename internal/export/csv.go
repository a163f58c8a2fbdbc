package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/screentime/internal/format"
)

// ToCSV writes two sections, rankings then daily stats, separated by a
// blank record.
func ToCSV(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"# exported_at", s.ExportedAt.UTC().Format(time.RFC3339), "device", deviceLabel(s.Device)}); err != nil {
		return err
	}

	// Rankings
	if err := w.Write([]string{"Rank", "App", "Package", "Category", "Duration (ms)", "Duration", "Launches", "Notifications", "Percentage", "Active Days"}); err != nil {
		return err
	}
	for _, r := range s.Rankings {
		row := []string{
			strconv.Itoa(r.Rank),
			r.AppName,
			r.PackageID,
			r.Category,
			strconv.FormatInt(r.TotalDurationMS, 10),
			format.DurationShort(r.TotalDurationMS),
			strconv.FormatInt(r.LaunchCount, 10),
			strconv.FormatInt(r.NotificationCount, 10),
			strconv.FormatFloat(r.Percentage, 'f', 2, 64),
			strconv.Itoa(r.ActiveDays),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}

	// Daily stats
	if err := w.Write([]string{"Date", "Duration (ms)", "Duration", "Unique Apps", "Launches", "Notifications", "Top App"}); err != nil {
		return err
	}
	for _, d := range s.Daily {
		row := []string{
			format.Date(d.Date),
			strconv.FormatInt(d.TotalDurationMS, 10),
			format.DurationShort(d.TotalDurationMS),
			strconv.Itoa(d.UniqueApps),
			strconv.FormatInt(d.LaunchCount, 10),
			strconv.FormatInt(d.NotificationCount, 10),
			d.TopApp,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
