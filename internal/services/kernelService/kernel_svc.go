// Package kernelservice implements the conditional kernel-package install
// branch: it clears stale boot artifacts, force-installs the staged .deb
// files and copies the platform's device-tree blobs into the active DTB
// directory.
package kernelservice

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/siderolabs/go-copy/copy"

	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/constants"
	"github.com/opennas/imagecust/internal/runner"
	"github.com/opennas/imagecust/internal/utils/verutils"
)

// ErrUnrecognizedPlatform is returned when Install is asked to run for a
// platform tag outside the supported set.
var ErrUnrecognizedPlatform = errors.New("unrecognized platform tag")

// Service drives dpkg through the runner layer.
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

// Install runs the full package-install branch for the given platform.
func (s *Service) Install(platform string) error {
	if !constants.IsRecognizedPlatform(platform) {
		return fmt.Errorf("%w: %q", ErrUnrecognizedPlatform, platform)
	}

	if err := s.removeStaleArtifacts(); err != nil {
		return err
	}
	if err := s.installDebs(); err != nil {
		return err
	}
	return s.copyDeviceTrees(platform)
}

// removeStaleArtifacts deletes previous kernel boot files. Some boot
// filesystems fail an in-place overwrite during dpkg unpack, so the files
// are cleared up front.
func (s *Service) removeStaleArtifacts() error {
	entries, err := os.ReadDir(s.Cfg.BootDir)
	if err != nil {
		return fmt.Errorf("cannot read boot directory %s: %w", s.Cfg.BootDir, err)
	}

	stale := make(map[string]bool, len(constants.StaleBootArtifacts))
	for _, name := range constants.StaleBootArtifacts {
		stale[name] = true
	}

	for _, e := range entries {
		name := e.Name()
		if !stale[name] && !strings.HasPrefix(name, "uInitrd-") {
			continue
		}
		if err := os.Remove(filepath.Join(s.Cfg.BootDir, name)); err != nil {
			return fmt.Errorf("failed to remove stale boot artifact %s: %w", name, err)
		}
	}
	return nil
}

// stagedDebs returns the staged package files in ascending version order.
func (s *Service) stagedDebs() ([]string, error) {
	entries, err := os.ReadDir(s.Cfg.DebDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read package directory %s: %w", s.Cfg.DebDir, err)
	}

	var debs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".deb") {
			continue
		}
		debs = append(debs, e.Name())
	}
	verutils.Sort(debs)

	for i, name := range debs {
		debs[i] = filepath.Join(s.Cfg.DebDir, name)
	}
	return debs, nil
}

func (s *Service) installDebs() error {
	debs, err := s.stagedDebs()
	if err != nil {
		return err
	}
	if len(debs) == 0 {
		return fmt.Errorf("no .deb packages staged in %s", s.Cfg.DebDir)
	}

	args := append([]string{"-i", "--force-confdef", "--force-confold"}, debs...)
	env := []string{"DEBIAN_FRONTEND=noninteractive"}
	if err := s.Run("", env, s.Out, s.Err, "dpkg", args...); err != nil {
		return fmt.Errorf("dpkg install failed: %w", err)
	}
	return nil
}

// installedKernelDir locates the newest linux-image-* payload directory
// under the lib directory (version sort, last entry).
func (s *Service) installedKernelDir() (string, error) {
	entries, err := os.ReadDir(s.Cfg.LibDir)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", s.Cfg.LibDir, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), constants.KernelImageDirPrefix) {
			dirs = append(dirs, e.Name())
		}
	}
	newest := verutils.Latest(dirs)
	if newest == "" {
		return "", fmt.Errorf("no %s* directory found in %s after package install",
			constants.KernelImageDirPrefix, s.Cfg.LibDir)
	}
	return filepath.Join(s.Cfg.LibDir, newest), nil
}

// copyDeviceTrees copies the platform's device-tree subset out of the
// installed kernel payload into the boot partition's DTB path.
func (s *Service) copyDeviceTrees(platform string) error {
	kernelDir, err := s.installedKernelDir()
	if err != nil {
		return err
	}

	src := filepath.Join(kernelDir, platform)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("kernel payload has no %s device trees: %w", platform, err)
	}

	dst := filepath.Join(s.Cfg.DtbDir, platform)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if err := copy.Dir(src, dst); err != nil {
		return fmt.Errorf("failed to copy device trees to %s: %w", dst, err)
	}
	return nil
}
