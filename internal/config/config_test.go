package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kloop/amco/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DatabasePath != "amco.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "amco.db")
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if cfg.Bootstrap.Username != "admin" {
		t.Errorf("Bootstrap.Username = %q, want %q", cfg.Bootstrap.Username, "admin")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("AMCO_ADDR", ":9090")
	t.Setenv("AMCO_ADMIN_PASSWORD", "s3cret")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.Bootstrap.Password != "s3cret" {
		t.Errorf("Bootstrap.Password = %q, want %q", cfg.Bootstrap.Password, "s3cret")
	}
}

func TestLoadConfigYAMLOverridesEnv(t *testing.T) {
	t.Setenv("AMCO_UPLOAD_DIR", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "addr: \":7070\"\nupload_dir: from-yaml\nsession_ttl: 1h\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":7070")
	}
	if cfg.UploadDir != "from-yaml" {
		t.Errorf("UploadDir = %q, want %q", cfg.UploadDir, "from-yaml")
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	// keys absent from the file keep their env/default values
	if cfg.DatabasePath != "amco.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "amco.db")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
