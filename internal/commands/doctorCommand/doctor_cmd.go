package doctorCommand

import (
	"fmt"
	"os"
	"strings"

	"github.com/opennas/imagecust/internal/config"
	envservice "github.com/opennas/imagecust/internal/services/envService"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewDoctorCmd returns the preflight report command. It fails when any of
// the external tools the pipeline shells out to is missing, so a host
// builder can gate the run on it.
func NewDoctorCmd(cfg *config.BuildConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report the chroot environment and verify required tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := envservice.Gather(cfg.BootDir)

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Check", "Value"})
			t.AppendRows([]table.Row{
				{"Hostname", report.Hostname},
				{"Machine arch", report.MachineArch},
				{"Host kernel", report.KernelRelease},
				{"CPU", fmt.Sprintf("%s (%d cores)", report.CPUModel, report.CPUCores)},
				{"Total RAM", fmt.Sprintf("%.2f GB", float64(report.TotalRAM)/(1024*1024*1024))},
				{"Boot partition", fmt.Sprintf("%.1f%% used, %.1f MB free",
					report.BootUsedPct, float64(report.BootFree)/(1024*1024))},
			})
			for _, tool := range report.Tools {
				status := "ok"
				if !tool.Available {
					status = "MISSING"
				}
				t.AppendRow(table.Row{"Tool: " + tool.Name, status})
			}
			t.Render()

			if missing := report.MissingTools(); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
