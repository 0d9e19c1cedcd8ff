package initrdCommand

import (
	"fmt"

	"github.com/opennas/imagecust/internal/config"
	detectservice "github.com/opennas/imagecust/internal/services/detectService"
	initrdservice "github.com/opennas/imagecust/internal/services/initrdService"
	"github.com/opennas/imagecust/internal/utils/spinner"

	"github.com/spf13/cobra"
)

// NewInitrdCmd returns the ramdisk-generation command.
func NewInitrdCmd(cfg *config.BuildConfig) *cobra.Command {
	var kernelVersion string

	cmd := &cobra.Command{
		Use:   "initrd",
		Short: "Regenerate the initramfs and verify the uInitrd output",
		Long: `Enable initramfs regeneration, run update-initramfs for the given kernel
version (detected from the boot directory when --kernel is omitted) and
verify that the post-update hook produced uInitrd-<version>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kernelVersion == "" {
				detected, err := detectservice.KernelVersion(cfg.BootDir)
				if err != nil {
					return err
				}
				kernelVersion = detected
			}

			stop := spinner.StartSpinner(fmt.Sprintf("Generating uInitrd for %s...", kernelVersion))
			err := initrdservice.New(cfg).Generate(kernelVersion)
			stop()
			if err != nil {
				return err
			}
			fmt.Printf("uInitrd-%s generated.\n", kernelVersion)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kernelVersion, "kernel", "k", "", "Kernel version to build the ramdisk for")

	return cmd
}
