// Package runner is the shared execution layer for the external tools this
// program drives (apt-get, dpkg, update-initramfs). Services store the
// function values and call them; tests swap in a MockRunner to avoid real
// process execution.
package runner

import (
	"io"
	"os"
	"os/exec"
)

// Func executes an external command, wiring stdout/stderr to the supplied
// writers.
type Func func(stdout, stderr io.Writer, name string, args ...string) error

// InFunc executes an external command with an explicit working directory and
// extra environment entries (KEY=value) appended to the inherited
// environment. Both dir and extraEnv may be empty.
type InFunc func(dir string, extraEnv []string, stdout, stderr io.Writer, name string, args ...string) error

// OutputFunc executes an external command and returns its standard output,
// mirroring (*exec.Cmd).Output().
type OutputFunc func(name string, args ...string) ([]byte, error)

// Run is the default Func implementation.
var Run Func = func(stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// RunIn is the default InFunc implementation.
var RunIn InFunc = func(dir string, extraEnv []string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Output is the default OutputFunc implementation.
var Output OutputFunc = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}
