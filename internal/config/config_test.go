// ABOUTME: Tests for elevate configuration management.
// ABOUTME: Covers load, save, defaults, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/elevate/internal/storage"
)

func TestGetBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"", "sqlite"},
		{"sqlite", "sqlite"},
		{"markdown", "markdown"},
	}
	for _, tt := range tests {
		cfg := &Config{Backend: tt.backend}
		if got := cfg.GetBackend(); got != tt.want {
			t.Errorf("GetBackend() with %q = %q, want %q", tt.backend, got, tt.want)
		}
	}
}

func TestGetDataDirDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	cfg := &Config{}
	if got := cfg.GetDataDir(); got != "/tmp/xdg/elevate" {
		t.Errorf("GetDataDir() = %q, want /tmp/xdg/elevate", got)
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/elevate-test"}
	if got := cfg.GetDataDir(); got != "/tmp/elevate-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/elevate-test")
	}
	if got := cfg.PrefsDir(); got != "/tmp/elevate-test/prefs" {
		t.Errorf("PrefsDir() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/elevate", filepath.Join(home, "data/elevate")},
		{"data/elevate", "data/elevate"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/elevate-data"}
	want := filepath.Join(home, "elevate-data")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{Backend: "markdown", DataDir: "~/lifts"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "elevate", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	if got := GetConfigPath(); got != "/tmp/cfg/elevate/config.json" {
		t.Errorf("GetConfigPath() = %q", got)
	}
}

func TestOpenStorage(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, repo storage.Repository, dir string)
	}{
		{"sqlite", func(t *testing.T, repo storage.Repository, dir string) {
			if _, ok := repo.(*storage.DB); !ok {
				t.Errorf("expected *storage.DB, got %T", repo)
			}
			if _, err := os.Stat(filepath.Join(dir, storage.DBFileName)); err != nil {
				t.Errorf("database file not created: %v", err)
			}
		}},
		{"markdown", func(t *testing.T, repo storage.Repository, dir string) {
			if _, ok := repo.(*storage.MarkdownStore); !ok {
				t.Errorf("expected *storage.MarkdownStore, got %T", repo)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &Config{Backend: tt.backend, DataDir: dir}
			repo, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage() failed: %v", err)
			}
			defer repo.Close()
			tt.check(t, repo, dir)
		})
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "floppy", DataDir: t.TempDir()}
	_, err := cfg.OpenStorage()
	if err == nil || !strings.Contains(err.Error(), "floppy") {
		t.Errorf("expected unknown backend error, got %v", err)
	}
}

func TestOpenPrefs(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}
	p, err := cfg.OpenPrefs()
	if err != nil {
		t.Fatalf("OpenPrefs() failed: %v", err)
	}
	defer p.Close()

	first, err := p.FirstTimeUser()
	if err != nil || !first {
		t.Errorf("fresh prefs FirstTimeUser = %v, %v", first, err)
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty config = %s, want {}", data)
	}
}
