//go:build linux

package envservice

import "golang.org/x/sys/unix"

func utsString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// unameInfo returns the machine architecture and kernel release of the
// running system. Inside the chroot this reports the HOST kernel, which is
// still the right arch check for an arm64 image build.
func unameInfo() (arch, release string) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", ""
	}
	return utsString(uts.Machine[:]), utsString(uts.Release[:])
}
