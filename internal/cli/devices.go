package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
	"github.com/sadopc/screentime/internal/label"
)

func newDevicesCmd(e *env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List registered devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			devices, err := e.client.Devices(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(devices)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDevices(devices))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func renderDevices(devices []api.Device) string {
	if len(devices) == 0 {
		return "No devices registered."
	}
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		t, _ := label.ParseDeviceType(d.Type)
		status := "active"
		if !d.IsActive {
			status = "inactive"
		}
		lastSync := d.LastSync
		if lastSync == "" {
			lastSync = "never"
		}
		rows = append(rows, []string{
			d.ID, d.Name, t.Name(), status,
			format.Count(d.TotalRecords),
			format.Date(d.DateRangeStart) + " - " + format.Date(d.DateRangeEnd),
			lastSync,
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "TYPE", "STATUS", "RECORDS", "RANGE", "LAST SYNC").
		Rows(rows...).
		String()
}
