//go:build !linux

package envservice

import "runtime"

// unameInfo falls back to the Go runtime view on non-linux hosts; the tool
// itself only ever runs inside linux chroots, this keeps development builds
// working elsewhere.
func unameInfo() (arch, release string) {
	return runtime.GOARCH, ""
}
