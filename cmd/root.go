// The root command for the CLI.
// This root 'composes' the pipeline subcommands and provides global config flags like --debug.
package cmd

import (
	"github.com/opennas/imagecust/internal/commands/depsCommand"
	"github.com/opennas/imagecust/internal/commands/detectCommand"
	"github.com/opennas/imagecust/internal/commands/doctorCommand"
	"github.com/opennas/imagecust/internal/commands/hookCommand"
	"github.com/opennas/imagecust/internal/commands/initrdCommand"
	"github.com/opennas/imagecust/internal/commands/kernelCommand"
	"github.com/opennas/imagecust/internal/commands/prepareCommand"
	"github.com/opennas/imagecust/internal/commands/runCommand"
	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/version"

	"github.com/spf13/cobra"
)

var (
	// A path to a file to load configuration from
	cfgFile string
	// For enabling debug logging with --debug/-D
	debug bool
	// Effective pipeline configuration, shared by all subcommands.
	buildCfg = config.Default()
)

// Cobra root command
var rootCmd = &cobra.Command{
	Use:   "imagecust",
	Short: "Chroot-side NAS firmware image customization",
	Long: `imagecust runs inside the image-build chroot for u-boot based ARM64 NAS
boards. It installs dependencies, optionally installs staged kernel packages
and device trees, registers the u-boot post-update hook, detects the kernel
version and platform for the host-side builder, and regenerates the uInitrd.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(buildCfg, cmd.Flags(), cfgFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			buildCfg.Debug = debug
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute the root Cobra command
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// Initialize the root command
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON/YAML/TOML/env)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")

	rootCmd.AddCommand(runCommand.NewRunCmd(buildCfg))
	rootCmd.AddCommand(prepareCommand.NewPrepareCmd(buildCfg))
	rootCmd.AddCommand(depsCommand.NewDepsCmd(buildCfg))
	rootCmd.AddCommand(kernelCommand.NewKernelCmd(buildCfg))
	rootCmd.AddCommand(hookCommand.NewHookCmd(buildCfg))
	rootCmd.AddCommand(detectCommand.NewDetectCmd(buildCfg))
	rootCmd.AddCommand(initrdCommand.NewInitrdCmd(buildCfg))
	rootCmd.AddCommand(doctorCommand.NewDoctorCmd(buildCfg))
	rootCmd.AddCommand(version.NewVersionCommand())
	rootCmd.AddCommand(version.NewPackageInfoCommand())
}
