package detectCommand

import (
	"fmt"
	"os"

	"github.com/opennas/imagecust/internal/config"
	detectservice "github.com/opennas/imagecust/internal/services/detectService"
	"github.com/opennas/imagecust/internal/utils/strutils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewDetectCmd returns the kernel-version/platform detector command.
func NewDetectCmd(cfg *config.BuildConfig) *cobra.Command {
	var (
		platform string
		write    bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the installed kernel version and platform name",
		Long: `Scan the boot directory for config-<version> files and the DTB directory
for platform subdirectories. A --platform tag matching amlogic, allwinner or
rockchip overrides the DTB-derived name. With --write, the results are
persisted to the handoff file for the host-side builder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if platform == "" {
				platform = cfg.Platform
			}

			result, err := detectservice.Detect(cfg.BootDir, cfg.DtbDir, platform)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRows([]table.Row{
				{"Kernel version", result.KernelVersion},
				{"Platform", fmt.Sprintf("%s (%s)", result.PlatformName, strutils.ToTitleCase(result.PlatformName))},
				{"Run ID", result.RunID},
			})
			t.Render()

			if write {
				if err := result.Write(cfg.HandoffPath); err != nil {
					return err
				}
				fmt.Printf("Handoff written to %s\n", cfg.HandoffPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Platform tag override (amlogic|allwinner|rockchip)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Persist results to the handoff file")

	return cmd
}
