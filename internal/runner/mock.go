package runner

import "io"

// MockCall records a single command invocation.
type MockCall struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// MockRunner records calls and returns configurable errors. Use NewMockRunner
// for a runner that always succeeds, or NewMockRunnerFailOnCall to fail on a
// specific invocation index.
type MockRunner struct {
	Calls  []MockCall
	Err    error
	FailOn int // fail on this call index (0-based), -1 means always fail if Err != nil

	// OutputData maps a call index (0-based) to the bytes returned by
	// Output for that invocation.
	OutputData map[int][]byte

	// OnCall, when set, runs after each recorded call with its index.
	// Tests use it to simulate side effects such as an external tool
	// creating a file.
	OnCall func(idx int, call MockCall)
}

func (mr *MockRunner) record(c MockCall) int {
	mr.Calls = append(mr.Calls, c)
	idx := len(mr.Calls) - 1
	if mr.OnCall != nil {
		mr.OnCall(idx, c)
	}
	return idx
}

func (mr *MockRunner) errForCall(idx int) error {
	if mr.FailOn >= 0 && idx == mr.FailOn {
		return mr.Err
	}
	if mr.FailOn < 0 && mr.Err != nil {
		return mr.Err
	}
	return nil
}

// Run implements the Func signature.
func (mr *MockRunner) Run(stdout, stderr io.Writer, name string, args ...string) error {
	idx := mr.record(MockCall{Name: name, Args: args})
	return mr.errForCall(idx)
}

// RunIn implements the InFunc signature.
func (mr *MockRunner) RunIn(dir string, extraEnv []string, stdout, stderr io.Writer, name string, args ...string) error {
	idx := mr.record(MockCall{Name: name, Args: args, Dir: dir, Env: extraEnv})
	return mr.errForCall(idx)
}

// Output implements the OutputFunc signature.
func (mr *MockRunner) Output(name string, args ...string) ([]byte, error) {
	idx := mr.record(MockCall{Name: name, Args: args})
	return mr.OutputData[idx], mr.errForCall(idx)
}

// NewMockRunner creates a MockRunner that always succeeds.
func NewMockRunner() *MockRunner {
	return &MockRunner{FailOn: -1}
}

// NewMockRunnerFailOnCall creates a MockRunner that returns err on the n-th
// call (0-based) and succeeds on all others.
func NewMockRunnerFailOnCall(n int, err error) *MockRunner {
	return &MockRunner{FailOn: n, Err: err}
}
