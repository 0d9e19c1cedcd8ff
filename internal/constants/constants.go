package constants

// Recognized platform tags for the kernel-install branch. A debs_platform
// argument outside this set skips package installation and only influences
// detection through the DTB fallback.
const (
	PlatformAmlogic   = "amlogic"
	PlatformAllwinner = "allwinner"
	PlatformRockchip  = "rockchip"
)

// RecognizedPlatforms holds every platform tag this tool installs kernel
// packages for.
var RecognizedPlatforms = map[string]bool{
	PlatformAmlogic:   true,
	PlatformAllwinner: true,
	PlatformRockchip:  true,
}

// IsRecognizedPlatform reports whether tag is one of the supported
// kernel-package platforms.
func IsRecognizedPlatform(tag string) bool {
	return RecognizedPlatforms[tag]
}

// RequiredPackages is the fixed tool list the dependency installer asks the
// package manager for. mkimage comes from u-boot-tools, update-initramfs
// from initramfs-tools.
var RequiredPackages = []string{
	"u-boot-tools",
	"initramfs-tools",
	"linux-base",
}

// KernelConfigPrefix is the filename prefix the detector scans for under the
// boot directory (config-<version>).
const KernelConfigPrefix = "config-"

// KernelImageDirPrefix is the directory prefix installed kernel packages
// unpack their device trees under (<libdir>/linux-image-<version>/).
const KernelImageDirPrefix = "linux-image-"

// StaleBootArtifacts are the boot files removed before a forced kernel
// package install. Overwriting them in place fails on some boot
// filesystems, so they are cleared first. uInitrd also matches the
// uInitrd-<version> files via prefix handling in the kernel service.
var StaleBootArtifacts = []string{
	"uImage",
	"zImage",
	"Image",
	"uInitrd",
}
