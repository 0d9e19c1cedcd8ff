// Package aptservice wraps the OS package manager for the dependency
// installation step. Dependency resolution itself stays with apt.
package aptservice

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/runner"
)

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Service drives apt-get through the runner layer.
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

// UpdateIndex refreshes the package index. Failure here is not terminal for
// the pipeline: the required packages may already be in the local cache, so
// the caller is expected to log and continue.
func (s *Service) UpdateIndex() error {
	if err := s.Run("", aptEnv, s.Out, s.Err, "apt-get", "-q", "update"); err != nil {
		return fmt.Errorf("apt index update failed: %w", err)
	}
	return nil
}

// InstallDependencies installs the given package list, refreshing the index
// first on a best-effort basis.
func (s *Service) InstallDependencies(packages []string) error {
	if err := s.UpdateIndex(); err != nil {
		// Recoverable: the packages may already be cached locally.
		log.Printf("warning: %v; attempting install with the existing index", err)
	}

	if len(packages) == 0 {
		return nil
	}

	args := append([]string{"-q", "-y", "install"}, packages...)
	if err := s.Run("", aptEnv, s.Out, s.Err, "apt-get", args...); err != nil {
		return fmt.Errorf("failed to install required packages: %w", err)
	}
	return nil
}
