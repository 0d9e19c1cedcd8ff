package prepareCommand

import (
	"fmt"

	"github.com/opennas/imagecust/internal/config"
	prepareservice "github.com/opennas/imagecust/internal/services/prepareService"

	"github.com/spf13/cobra"
)

// NewPrepareCmd returns the environment-preparation command.
func NewPrepareCmd(cfg *config.BuildConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Create the directories and log file the pipeline writes to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepareservice.Prepare(cfg); err != nil {
				return err
			}
			fmt.Println("Environment prepared.")
			return nil
		},
	}
}
