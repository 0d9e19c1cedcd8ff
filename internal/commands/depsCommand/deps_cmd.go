package depsCommand

import (
	"fmt"

	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/constants"
	aptservice "github.com/opennas/imagecust/internal/services/aptService"
	"github.com/opennas/imagecust/internal/utils/spinner"

	"github.com/spf13/cobra"
)

// NewDepsCmd returns the dependency-installer command. An index update
// failure is logged and tolerated; a failed package install is terminal.
func NewDepsCmd(cfg *config.BuildConfig) *cobra.Command {
	var extra []string

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Install the OS packages the pipeline needs (mkimage, update-initramfs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			packages := append([]string{}, constants.RequiredPackages...)
			packages = append(packages, extra...)

			stop := spinner.StartSpinner("Installing dependencies...")
			err := aptservice.New(cfg).InstallDependencies(packages)
			stop()
			if err != nil {
				return err
			}
			fmt.Println("Dependencies installed.")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extra, "extra", nil, "Additional packages to install (can be repeated)")

	return cmd
}
