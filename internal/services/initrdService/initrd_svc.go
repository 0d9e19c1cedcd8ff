// Package initrdservice regenerates the boot ramdisk for a detected kernel
// version and verifies the u-boot image the post-update hook produces.
package initrdservice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/runner"
)

const regenKey = "update_initramfs"

// Service drives update-initramfs through the runner layer.
type Service struct {
	Cfg *config.BuildConfig
	Run runner.InFunc
	Out io.Writer
	Err io.Writer
}

// New returns a Service wired to the real runner and stdio.
func New(cfg *config.BuildConfig) *Service {
	return &Service{Cfg: cfg, Run: runner.RunIn, Out: os.Stdout, Err: os.Stderr}
}

// EnableRegeneration sets update_initramfs=yes in the update-initramfs
// configuration, editing the existing key in place or appending it. Image
// build environments commonly ship the file with regeneration disabled to
// speed up package unpacking.
func (s *Service) EnableRegeneration() error {
	data, err := os.ReadFile(s.Cfg.InitramfsConf)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot read %s: %w", s.Cfg.InitramfsConf, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), regenKey+"=") {
			lines[i] = regenKey + "=yes"
			replaced = true
		}
	}
	if !replaced {
		if len(lines) == 1 && lines[0] == "" {
			lines = lines[:0]
		}
		lines = append(lines, regenKey+"=yes")
	}

	out := strings.Join(lines, "\n") + "\n"
	if err := os.MkdirAll(filepath.Dir(s.Cfg.InitramfsConf), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(s.Cfg.InitramfsConf), err)
	}
	if err := os.WriteFile(s.Cfg.InitramfsConf, []byte(out), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", s.Cfg.InitramfsConf, err)
	}
	return nil
}

// Generate creates the initramfs for the given kernel version and verifies
// that the post-update hook produced uInitrd-<version>. A missing output is
// terminal; no symlink is attempted on failure.
func (s *Service) Generate(version string) error {
	if version == "" {
		return fmt.Errorf("cannot generate ramdisk: empty kernel version")
	}

	if err := s.EnableRegeneration(); err != nil {
		return err
	}

	// update-initramfs resolves relative boot paths against the working
	// directory, so run it from the boot partition.
	if err := s.Run(s.Cfg.BootDir, nil, s.Out, s.Err, "update-initramfs", "-c", "-k", version); err != nil {
		return fmt.Errorf("ramdisk generation failed for kernel %s: %w", version, err)
	}

	uInitrd := filepath.Join(s.Cfg.BootDir, "uInitrd-"+version)
	if _, err := os.Stat(uInitrd); err != nil {
		return fmt.Errorf("ramdisk generation did not produce %s: %w", uInitrd, err)
	}
	return nil
}
