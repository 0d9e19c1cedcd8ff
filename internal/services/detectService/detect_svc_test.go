package detectservice

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestKernelVersion_SingleConfig(t *testing.T) {
	boot := t.TempDir()
	writeFile(t, filepath.Join(boot, "config-5.10.0-rc1"))

	got, err := KernelVersion(boot)
	if err != nil {
		t.Fatalf("KernelVersion: unexpected error: %v", err)
	}
	if got != "5.10.0-rc1" {
		t.Errorf("KernelVersion = %q, want %q", got, "5.10.0-rc1")
	}
}

func TestKernelVersion_FirstInListingOrder(t *testing.T) {
	boot := t.TempDir()
	// os.ReadDir yields lexical order, so config-5.10.0 sorts before
	// config-5.9.0 even though 5.9.0 is the older kernel. This mirrors the
	// original unsorted first-match selection.
	writeFile(t, filepath.Join(boot, "config-5.9.0"))
	writeFile(t, filepath.Join(boot, "config-5.10.0"))

	got, err := KernelVersion(boot)
	if err != nil {
		t.Fatalf("KernelVersion: unexpected error: %v", err)
	}
	if got != "5.10.0" {
		t.Errorf("KernelVersion = %q, want lexically-first %q", got, "5.10.0")
	}
}

func TestKernelVersion_EmptyBootDir(t *testing.T) {
	if _, err := KernelVersion(t.TempDir()); err == nil {
		t.Fatal("KernelVersion on empty dir: expected terminal error, got nil")
	}
}

func TestKernelVersion_IgnoresDirsAndBareConfig(t *testing.T) {
	boot := t.TempDir()
	if err := os.Mkdir(filepath.Join(boot, "config-dirnotfile"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(boot, "config-"))
	writeFile(t, filepath.Join(boot, "vmlinuz-5.4.60"))

	if _, err := KernelVersion(boot); err == nil {
		t.Fatal("KernelVersion: expected error when only non-matching entries exist")
	}
}

func TestPlatformName_OverrideWins(t *testing.T) {
	dtb := t.TempDir()
	if err := os.Mkdir(filepath.Join(dtb, "amlogic"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := PlatformName(dtb, "rockchip")
	if err != nil {
		t.Fatalf("PlatformName: unexpected error: %v", err)
	}
	if got != "rockchip" {
		t.Errorf("PlatformName = %q, want override %q", got, "rockchip")
	}
}

func TestPlatformName_UnrecognizedOverrideFallsBack(t *testing.T) {
	dtb := t.TempDir()
	if err := os.Mkdir(filepath.Join(dtb, "allwinner"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := PlatformName(dtb, "raspberrypi")
	if err != nil {
		t.Fatalf("PlatformName: unexpected error: %v", err)
	}
	if got != "allwinner" {
		t.Errorf("PlatformName = %q, want dtb fallback %q", got, "allwinner")
	}
}

func TestPlatformName_SkipsPlainFiles(t *testing.T) {
	dtb := t.TempDir()
	writeFile(t, filepath.Join(dtb, "readme.txt"))
	if err := os.Mkdir(filepath.Join(dtb, "rockchip"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := PlatformName(dtb, "")
	if err != nil {
		t.Fatalf("PlatformName: unexpected error: %v", err)
	}
	if got != "rockchip" {
		t.Errorf("PlatformName = %q, want %q", got, "rockchip")
	}
}

func TestPlatformName_NoSource(t *testing.T) {
	if _, err := PlatformName(t.TempDir(), "unknownboard"); err == nil {
		t.Fatal("PlatformName: expected terminal error with empty dtb dir and bad override")
	}
}

func TestDetect_CombinedResult(t *testing.T) {
	boot := t.TempDir()
	writeFile(t, filepath.Join(boot, "config-5.4.60"))
	dtb := filepath.Join(boot, "dtb")
	if err := os.MkdirAll(filepath.Join(dtb, "rockchip"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Detect(boot, dtb, "")
	if err != nil {
		t.Fatalf("Detect: unexpected error: %v", err)
	}
	if res.KernelVersion != "5.4.60" || res.PlatformName != "rockchip" {
		t.Errorf("Detect = %+v", res)
	}
	if res.RunID == "" {
		t.Error("Detect: empty RunID")
	}
}

func TestDetect_FailsWithoutKernel(t *testing.T) {
	boot := t.TempDir()
	dtb := filepath.Join(boot, "dtb")
	if err := os.MkdirAll(filepath.Join(dtb, "rockchip"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Detect(boot, dtb, "rockchip"); err == nil {
		t.Fatal("Detect: expected error with no config-* file")
	}
}
