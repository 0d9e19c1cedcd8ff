// Package detectservice discovers the installed kernel version and platform
// name from the chroot filesystem and produces the handoff record for the
// host-side image builder.
package detectservice

import (
	"fmt"
	"os"
	"strings"

	"github.com/opennas/imagecust/internal/constants"
	"github.com/opennas/imagecust/internal/handoff"
)

// KernelVersion scans bootDir for config-<version> files and returns the
// version suffix of the first entry in directory order.
//
// Note: "first" is plain os.ReadDir (lexical) order, not version order. The
// DTB and package install paths intentionally use version-sorted selection
// instead; the two behaviors are preserved as observed in the original
// pipeline and must not be unified silently.
func KernelVersion(bootDir string) (string, error) {
	entries, err := os.ReadDir(bootDir)
	if err != nil {
		return "", fmt.Errorf("cannot read boot directory %s: %w", bootDir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, constants.KernelConfigPrefix) {
			continue
		}
		version := strings.TrimPrefix(name, constants.KernelConfigPrefix)
		if version == "" {
			continue
		}
		return version, nil
	}

	return "", fmt.Errorf("no %s* file found in %s: cannot determine kernel version",
		constants.KernelConfigPrefix, bootDir)
}

// PlatformName resolves the platform tag. A caller-supplied override wins
// when it is one of the recognized platforms; otherwise the name of the
// first subdirectory of dtbDir is used. Failing both is terminal.
func PlatformName(dtbDir, override string) (string, error) {
	if constants.IsRecognizedPlatform(override) {
		return override, nil
	}

	entries, err := os.ReadDir(dtbDir)
	if err != nil {
		return "", fmt.Errorf("cannot read dtb directory %s: %w", dtbDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			return e.Name(), nil
		}
	}

	return "", fmt.Errorf("no platform directory found in %s and no recognized platform argument given", dtbDir)
}

// Detect runs both discoveries and returns the combined handoff record.
func Detect(bootDir, dtbDir, platformOverride string) (handoff.Result, error) {
	version, err := KernelVersion(bootDir)
	if err != nil {
		return handoff.Result{}, err
	}

	platform, err := PlatformName(dtbDir, platformOverride)
	if err != nil {
		return handoff.Result{}, err
	}

	return handoff.New(version, platform), nil
}
