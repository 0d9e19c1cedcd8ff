// Package envservice gathers a preflight report about the chroot
// environment before the customization pipeline runs.
package envservice

import (
	"os"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/opennas/imagecust/internal/utils"
)

// RequiredTools are the external programs the pipeline shells out to.
var RequiredTools = []string{"apt-get", "dpkg", "update-initramfs", "mkimage"}

// ToolStatus reports whether one external tool is resolvable on PATH.
type ToolStatus struct {
	Name      string
	Available bool
}

// Report is a snapshot of the chroot build environment.
type Report struct {
	Hostname      string
	MachineArch   string
	KernelRelease string
	CPUModel      string
	CPUCores      int

	// TotalRAM in bytes.
	TotalRAM uint64

	// Boot partition usage in bytes.
	BootTotal   uint64
	BootFree    uint64
	BootUsedPct float64

	Tools []ToolStatus
}

// Gather collects the report. Metric failures are not terminal; missing
// values stay zero so the doctor output still renders on constrained
// chroots (no /proc, odd mounts).
func Gather(bootDir string) Report {
	r := Report{
		CPUModel: cpuid.CPU.BrandName,
		CPUCores: cpuid.CPU.PhysicalCores,
	}
	r.Hostname, _ = os.Hostname()
	r.MachineArch, r.KernelRelease = unameInfo()

	if vm, err := mem.VirtualMemory(); err == nil {
		r.TotalRAM = vm.Total
	}
	if usage, err := disk.Usage(bootDir); err == nil {
		r.BootTotal = usage.Total
		r.BootFree = usage.Free
		r.BootUsedPct = usage.UsedPercent
	}

	for _, tool := range RequiredTools {
		r.Tools = append(r.Tools, ToolStatus{
			Name:      tool,
			Available: utils.IsCommandAvailable(tool),
		})
	}
	return r
}

// MissingTools returns the names of required tools not found on PATH.
func (r Report) MissingTools() []string {
	var missing []string
	for _, t := range r.Tools {
		if !t.Available {
			missing = append(missing, t.Name)
		}
	}
	return missing
}
