package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// BuildConfig carries every path and setting the customization pipeline
// touches. The historical shell script hardcoded all of these; keeping them
// here lets tests run against temp directories and keeps the steps free of
// ambient global state.
type BuildConfig struct {
	// BootDir is the boot partition mount inside the chroot.
	BootDir string `koanf:"boot_dir"`
	// DtbDir is where active device-tree blobs live.
	DtbDir string `koanf:"dtb_dir"`
	// DebDir is where the host stages kernel .deb files for installation.
	DebDir string `koanf:"deb_dir"`
	// LibDir is scanned for linux-image-<version> device-tree payloads.
	LibDir string `koanf:"lib_dir"`
	// HookPath is the initramfs post-update hook destination.
	HookPath string `koanf:"hook_path"`
	// HandoffPath is the detection-result file the host-side process sources.
	HandoffPath string `koanf:"handoff_path"`
	// InitramfsConf is the update-initramfs configuration file.
	InitramfsConf string `koanf:"initramfs_conf"`
	// LogPath is the build log file prepared before any step runs.
	LogPath string `koanf:"log_path"`
	// Platform is the optional debs_platform tag supplied by the host builder.
	Platform string `koanf:"platform"`
	// Debug enables verbose command tracing.
	Debug bool `koanf:"debug"`
}

// Default returns a BuildConfig populated with the chroot's real paths.
func Default() *BuildConfig {
	return &BuildConfig{
		BootDir:       "/boot",
		DtbDir:        "/boot/dtb",
		DebDir:        "/root",
		LibDir:        "/usr/lib",
		HookPath:      "/etc/initramfs/post-update.d/99-uboot",
		HandoffPath:   "/var/tmp/kernel_version_output",
		InitramfsConf: "/etc/initramfs-tools/update-initramfs.conf",
		LogPath:       "/var/log/imagecust.log",
	}
}

// Load merges configuration into cfg with the usual precedence: config file,
// then IMAGECUST_ environment variables, then command-line flags.
func Load(cfg *BuildConfig, flagSet *pflag.FlagSet, configFile string) error {
	k := koanf.New(".")

	if configFile != "" {
		parser, err := parserForFile(configFile)
		if err != nil {
			return fmt.Errorf("unsupported config file format: %w", err)
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return fmt.Errorf("error loading config file: %w", err)
		}
	}

	// IMAGECUST_BOOT_DIR -> boot_dir
	k.Load(env.Provider("IMAGECUST_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "IMAGECUST_"))
	}), nil)

	if flagSet != nil {
		k.Load(posflag.Provider(flagSet, ".", k), nil)
	}

	return k.Unmarshal("", cfg)
}

func parserForFile(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %s", ext)
	}
}
