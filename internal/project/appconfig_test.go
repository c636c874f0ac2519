package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FloorDraft/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultBindRange = 35
	cfg.Theme = "dark"
	cfg.AutoSaveInterval = 5
	cfg.RecentPlans = []string{filepath.Join(dir, "house.fdplan"), filepath.Join(dir, "flat.fdplan")}
	for _, p := range cfg.RecentPlans {
		if err := os.WriteFile(p, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultBindRange != 35 {
		t.Errorf("expected DefaultBindRange=35, got %f", loaded.DefaultBindRange)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.AutoSaveInterval != 5 {
		t.Errorf("expected AutoSaveInterval=5, got %d", loaded.AutoSaveInterval)
	}
	if len(loaded.RecentPlans) != 2 {
		t.Errorf("expected 2 recent plans, got %d", len(loaded.RecentPlans))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultGridSize != defaults.DefaultGridSize {
		t.Errorf("expected default grid size %f, got %f", defaults.DefaultGridSize, cfg.DefaultGridSize)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"theme":"light","recent_plans":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.Theme)
	}
	if cfg.DefaultBindRange != model.DefaultSettings().BindRange {
		t.Errorf("expected default bind range, got %f", cfg.DefaultBindRange)
	}
	if cfg.RecentPlans == nil {
		t.Error("RecentPlans should not be nil after loading")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigRepairsHandEditedValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	kept := filepath.Join(dir, "kept.fdplan")
	if err := os.WriteFile(kept, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	gone := filepath.Join(dir, "gone.fdplan")
	data := []byte(`{"theme":"neon","default_wall_size":-5,"default_bind_range":0,"auto_save_interval":-1,` +
		`"recent_plans":["` + filepath.ToSlash(kept) + `","` + filepath.ToSlash(gone) + `","` + filepath.ToSlash(kept) + `"]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	d := model.DefaultSettings()
	if cfg.Theme != "system" {
		t.Errorf("expected unknown theme to become system, got %s", cfg.Theme)
	}
	if cfg.DefaultWallSize != d.WallSize {
		t.Errorf("expected default wall size %f, got %f", d.WallSize, cfg.DefaultWallSize)
	}
	if cfg.DefaultBindRange != d.BindRange {
		t.Errorf("expected default bind range %f, got %f", d.BindRange, cfg.DefaultBindRange)
	}
	if cfg.AutoSaveInterval != 0 {
		t.Errorf("expected auto save disabled, got %d", cfg.AutoSaveInterval)
	}
	if len(cfg.RecentPlans) != 1 || filepath.Clean(cfg.RecentPlans[0]) != kept {
		t.Errorf("expected only %s in recent plans, got %v", kept, cfg.RecentPlans)
	}
}

func TestSaveAppConfigLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	for i := 0; i < 2; i++ {
		if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
			t.Fatalf("SaveAppConfig failed: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.json" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only config.json, got %v", names)
	}
}
