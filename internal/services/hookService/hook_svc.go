// Package hookservice installs the initramfs post-update hook. The hook is
// invoked by update-initramfs with the kernel version and initrd path and
// wraps the generated ramdisk into u-boot's uInitrd format.
package hookservice

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Script is the fixed hook content. update-initramfs calls it as
// `99-uboot <version> <initrd-path>`. mkimage does the actual uImage
// wrapping; the stable /boot/uInitrd name is published as a symlink, with a
// copy fallback for boot filesystems that cannot hold symlinks.
const Script = `#!/bin/sh
# initramfs post-update hook: wrap the new initrd for u-boot.
version="$1"
initrd="$2"
[ -n "$version" ] || exit 0
[ -n "$initrd" ] || exit 0
target="/boot/uInitrd-$version"
mkimage -A arm64 -O linux -T ramdisk -C gzip -n uInitrd -d "$initrd" "$target" > /dev/null
ln -sf "$(basename "$target")" /boot/uInitrd 2> /dev/null || cp "$target" /boot/uInitrd
exit 0
`

const scriptMode = 0o755

// Install writes the hook to path and marks it executable. The write is
// idempotent: repeated installs leave byte-identical content.
func Install(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create hook directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Script), scriptMode); err != nil {
		return fmt.Errorf("failed to write hook %s: %w", path, err)
	}
	// WriteFile only applies the mode on creation; enforce it on rewrite too.
	if err := os.Chmod(path, scriptMode); err != nil {
		return fmt.Errorf("failed to mark hook executable: %w", err)
	}
	return nil
}

// Installed reports whether the hook at path exists with the expected
// content and an executable mode.
func Installed(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.Mode().Perm()&0o111 == 0 {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return bytes.Equal(data, []byte(Script)), nil
}
