package runCommand

import (
	"fmt"
	"log"

	aptservice "github.com/opennas/imagecust/internal/services/aptService"
	detectservice "github.com/opennas/imagecust/internal/services/detectService"
	hookservice "github.com/opennas/imagecust/internal/services/hookService"
	initrdservice "github.com/opennas/imagecust/internal/services/initrdService"
	kernelservice "github.com/opennas/imagecust/internal/services/kernelService"
	prepareservice "github.com/opennas/imagecust/internal/services/prepareService"

	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/constants"
	"github.com/opennas/imagecust/internal/utils/spinner"

	"github.com/spf13/cobra"
)

// NewRunCmd returns the full customization pipeline command. Steps execute
// strictly top to bottom; the first failure terminates the run.
func NewRunCmd(cfg *config.BuildConfig) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "run [debs_platform]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Run the full image customization pipeline",
		Long: `Run every customization step in order: prepare the environment, install
dependencies, optionally install staged kernel packages (when --platform is
one of amlogic, allwinner, rockchip), install the u-boot post-update hook,
detect the kernel version and platform, write the handoff file, and
regenerate the uInitrd.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The historical script took the platform tag as its one
			// positional argument; both spellings are accepted.
			if platform == "" && len(args) == 1 {
				platform = args[0]
			}
			if platform != "" {
				cfg.Platform = platform
			}
			return runPipeline(cfg)
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Platform tag for staged kernel packages (amlogic|allwinner|rockchip)")

	return cmd
}

func runPipeline(cfg *config.BuildConfig) error {
	log.Println("preparing chroot environment")
	if err := prepareservice.Prepare(cfg); err != nil {
		return err
	}

	stop := spinner.StartSpinner("Installing dependencies...")
	err := aptservice.New(cfg).InstallDependencies(constants.RequiredPackages)
	stop()
	if err != nil {
		return err
	}

	if constants.IsRecognizedPlatform(cfg.Platform) {
		stop = spinner.StartSpinner(fmt.Sprintf("Installing %s kernel packages...", cfg.Platform))
		err = kernelservice.New(cfg).Install(cfg.Platform)
		stop()
		if err != nil {
			return err
		}
	} else if cfg.Platform != "" {
		log.Printf("platform %q is not recognized, skipping kernel package install", cfg.Platform)
	}

	if err := hookservice.Install(cfg.HookPath); err != nil {
		return err
	}
	log.Printf("post-update hook installed at %s", cfg.HookPath)

	result, err := detectservice.Detect(cfg.BootDir, cfg.DtbDir, cfg.Platform)
	if err != nil {
		return err
	}
	if err := result.Write(cfg.HandoffPath); err != nil {
		return err
	}
	log.Printf("detected kernel %s on platform %s (run %s)",
		result.KernelVersion, result.PlatformName, result.RunID)

	stop = spinner.StartSpinner(fmt.Sprintf("Generating uInitrd for %s...", result.KernelVersion))
	err = initrdservice.New(cfg).Generate(result.KernelVersion)
	stop()
	if err != nil {
		return err
	}

	fmt.Println("Image customization completed successfully.")
	return nil
}
