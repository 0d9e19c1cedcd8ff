package kernelCommand

import (
	"fmt"

	"github.com/opennas/imagecust/internal/config"
	kernelservice "github.com/opennas/imagecust/internal/services/kernelService"
	"github.com/opennas/imagecust/internal/utils/spinner"

	"github.com/spf13/cobra"
)

// NewKernelCmd returns the 'kernel' parent command.
func NewKernelCmd(cfg *config.BuildConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Manage staged kernel packages and device trees",
	}

	cmd.AddCommand(newInstallCmd(cfg))

	return cmd
}

func newInstallCmd(cfg *config.BuildConfig) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install staged kernel .deb packages and copy the platform's device trees",
		Long: `Remove stale boot artifacts, force-install every staged .deb in the
package directory, then copy the newest installed kernel's device-tree
blobs for the given platform into the boot DTB directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if platform == "" {
				platform = cfg.Platform
			}
			if platform == "" {
				return fmt.Errorf("a platform tag is required (amlogic|allwinner|rockchip)")
			}

			stop := spinner.StartSpinner(fmt.Sprintf("Installing %s kernel packages...", platform))
			err := kernelservice.New(cfg).Install(platform)
			stop()
			if err != nil {
				return err
			}
			fmt.Println("Kernel packages and device trees installed.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Platform tag (amlogic|allwinner|rockchip)")

	return cmd
}
