package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Paths(t *testing.T) {
	cfg := Default()
	if cfg.BootDir != "/boot" {
		t.Errorf("BootDir = %q, want /boot", cfg.BootDir)
	}
	if cfg.HandoffPath != "/var/tmp/kernel_version_output" {
		t.Errorf("HandoffPath = %q", cfg.HandoffPath)
	}
	if cfg.HookPath != "/etc/initramfs/post-update.d/99-uboot" {
		t.Errorf("HookPath = %q", cfg.HookPath)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagecust.json")
	content := `{"boot_dir": "/mnt/boot", "platform": "rockchip"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := Load(cfg, nil, path); err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.BootDir != "/mnt/boot" {
		t.Errorf("BootDir = %q, want /mnt/boot", cfg.BootDir)
	}
	if cfg.Platform != "rockchip" {
		t.Errorf("Platform = %q, want rockchip", cfg.Platform)
	}
	// Untouched keys keep their defaults.
	if cfg.DebDir != "/root" {
		t.Errorf("DebDir = %q, want /root", cfg.DebDir)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagecust.yaml")
	if err := os.WriteFile(path, []byte("deb_dir: /var/stage\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IMAGECUST_DEB_DIR", "/srv/debs")

	cfg := Default()
	if err := Load(cfg, nil, path); err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.DebDir != "/srv/debs" {
		t.Errorf("DebDir = %q, want env override /srv/debs", cfg.DebDir)
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagecust.ini")
	if err := os.WriteFile(path, []byte("x=y"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(Default(), nil, path); err == nil {
		t.Error("Load: expected error for unsupported extension, got nil")
	}
}
