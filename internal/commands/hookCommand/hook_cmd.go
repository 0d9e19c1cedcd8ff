package hookCommand

import (
	"fmt"

	"github.com/opennas/imagecust/internal/config"
	hookservice "github.com/opennas/imagecust/internal/services/hookService"

	"github.com/spf13/cobra"
)

// NewHookCmd returns the 'hook' parent command.
func NewHookCmd(cfg *config.BuildConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage the initramfs post-update hook for u-boot",
	}

	cmd.AddCommand(newInstallCmd(cfg))
	cmd.AddCommand(newStatusCmd(cfg))

	return cmd
}

func newInstallCmd(cfg *config.BuildConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the post-update hook (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := hookservice.Install(cfg.HookPath); err != nil {
				return err
			}
			fmt.Printf("Hook installed at %s\n", cfg.HookPath)
			return nil
		},
	}
}

func newStatusCmd(cfg *config.BuildConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the expected hook is installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := hookservice.Installed(cfg.HookPath)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("hook at %s is missing or differs from the expected content", cfg.HookPath)
			}
			fmt.Printf("Hook at %s is installed and executable.\n", cfg.HookPath)
			return nil
		},
	}
}
