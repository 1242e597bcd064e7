package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Analysis.TopDrugs != 10 {
		t.Errorf("TopDrugs = %d, want 10", cfg.Analysis.TopDrugs)
	}
	if cfg.Analysis.PostcodeMatch != "outward" {
		t.Errorf("PostcodeMatch = %q, want outward", cfg.Analysis.PostcodeMatch)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/dataset.db")
	t.Setenv("KMEANS_K", "5")
	t.Setenv("POSTCODE_MATCH", "legacy")
	t.Setenv("WEB_PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if got := cfg.Database.DSN(); got != "/tmp/dataset.db" {
		t.Errorf("DSN() = %q, want /tmp/dataset.db", got)
	}
	if cfg.Analysis.KMeansK != 5 {
		t.Errorf("KMeansK = %d, want 5", cfg.Analysis.KMeansK)
	}
	if cfg.Analysis.PostcodeMatch != "legacy" {
		t.Errorf("PostcodeMatch = %q, want legacy", cfg.Analysis.PostcodeMatch)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("Web.Port = %d, want 9090", cfg.Web.Port)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gprx.yaml")
	body := "db:\n  name: prescribing\nanalysis:\n  top_drugs: 25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Name != "prescribing" {
		t.Errorf("Name = %q, want prescribing", cfg.Database.Name)
	}
	if cfg.Analysis.TopDrugs != 25 {
		t.Errorf("TopDrugs = %d, want 25", cfg.Analysis.TopDrugs)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(""); err == nil {
		t.Fatal("Load() expected error for unsupported driver")
	}
}
