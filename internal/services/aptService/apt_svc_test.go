package aptservice

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/opennas/imagecust/internal/config"
	"github.com/opennas/imagecust/internal/runner"
)

func testService(mr *runner.MockRunner) *Service {
	return &Service{Cfg: config.Default(), Run: mr.RunIn, Out: io.Discard, Err: io.Discard}
}

func TestInstallDependencies_UpdateThenInstall(t *testing.T) {
	mr := runner.NewMockRunner()
	svc := testService(mr)

	if err := svc.InstallDependencies([]string{"u-boot-tools", "initramfs-tools"}); err != nil {
		t.Fatalf("InstallDependencies: unexpected error: %v", err)
	}

	if len(mr.Calls) != 2 {
		t.Fatalf("calls = %d, want 2 (update, install)", len(mr.Calls))
	}
	if mr.Calls[0].Name != "apt-get" || mr.Calls[0].Args[len(mr.Calls[0].Args)-1] != "update" {
		t.Errorf("first call = %+v, want apt-get update", mr.Calls[0])
	}
	joined := strings.Join(mr.Calls[1].Args, " ")
	if !strings.Contains(joined, "install u-boot-tools initramfs-tools") {
		t.Errorf("install args = %v", mr.Calls[1].Args)
	}
	for _, c := range mr.Calls {
		if strings.Join(c.Env, " ") != "DEBIAN_FRONTEND=noninteractive" {
			t.Errorf("call env = %v, want noninteractive frontend", c.Env)
		}
	}
}

func TestInstallDependencies_IndexFailureIsTolerated(t *testing.T) {
	// Call 0 is the index update; its failure must not stop the install.
	mr := runner.NewMockRunnerFailOnCall(0, errors.New("mirror unreachable"))
	svc := testService(mr)

	if err := svc.InstallDependencies([]string{"u-boot-tools"}); err != nil {
		t.Fatalf("InstallDependencies: index failure should be recoverable, got %v", err)
	}
	if len(mr.Calls) != 2 {
		t.Fatalf("calls = %d, want install attempted after failed update", len(mr.Calls))
	}
}

func TestInstallDependencies_InstallFailureIsTerminal(t *testing.T) {
	mr := runner.NewMockRunnerFailOnCall(1, errors.New("no candidate"))
	svc := testService(mr)

	if err := svc.InstallDependencies([]string{"u-boot-tools"}); err == nil {
		t.Fatal("InstallDependencies: expected error when install fails")
	}
}

func TestInstallDependencies_EmptyList(t *testing.T) {
	mr := runner.NewMockRunner()
	svc := testService(mr)

	if err := svc.InstallDependencies(nil); err != nil {
		t.Fatalf("InstallDependencies(nil): unexpected error: %v", err)
	}
	if len(mr.Calls) != 1 {
		t.Fatalf("calls = %d, want only the index update", len(mr.Calls))
	}
}
