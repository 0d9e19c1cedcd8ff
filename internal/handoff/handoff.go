// Package handoff carries the detection results from the chroot-side run to
// the host-side image builder. The host sources the handoff file as shell,
// so the primary encoding stays byte-compatible with the historical
// kernel_version_output format; a JSON sidecar is written alongside for
// consumers that prefer structured decoding.
package handoff

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is the write-once state produced by the detection step.
type Result struct {
	KernelVersion string    `json:"kernel_version"`
	PlatformName  string    `json:"platform_name"`
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// New builds a Result with a fresh run identifier.
func New(kernelVersion, platformName string) Result {
	return Result{
		KernelVersion: kernelVersion,
		PlatformName:  platformName,
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
	}
}

// EncodeShell renders the two shell-assignable lines the host-side process
// sources. The format is fixed:
//
//	kernel_version='<version>'
//	platform_name='<platform>'
func (r Result) EncodeShell() []byte {
	return []byte(fmt.Sprintf("kernel_version='%s'\nplatform_name='%s'\n",
		r.KernelVersion, r.PlatformName))
}

// ParseShell decodes the shell handoff format back into a Result. Only the
// two known keys are honored; unknown lines are rejected so a corrupted
// handoff file fails loudly instead of sourcing garbage.
func ParseShell(data []byte) (Result, error) {
	var r Result
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return Result{}, fmt.Errorf("malformed handoff line %q", line)
		}
		val = strings.Trim(val, "'")
		switch key {
		case "kernel_version":
			r.KernelVersion = val
		case "platform_name":
			r.PlatformName = val
		default:
			return Result{}, fmt.Errorf("unknown handoff key %q", key)
		}
	}
	if r.KernelVersion == "" {
		return Result{}, fmt.Errorf("handoff file is missing kernel_version")
	}
	if r.PlatformName == "" {
		return Result{}, fmt.Errorf("handoff file is missing platform_name")
	}
	return r, nil
}

// Write persists the shell handoff file at path and a JSON sidecar at
// path + ".json".
func (r Result) Write(path string) error {
	if err := os.WriteFile(path, r.EncodeShell(), 0o644); err != nil {
		return fmt.Errorf("failed to write handoff file: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode handoff JSON: %w", err)
	}
	if err := os.WriteFile(path+".json", append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write handoff JSON: %w", err)
	}
	return nil
}
