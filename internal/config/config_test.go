package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:3000/api" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servify.yaml")
	doc := "base_url: https://api.servify.app/api/v1\nlog_level: debug\ntimeout: 5s\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://api.servify.app/api/v1" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	// Untouched fields keep their defaults.
	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %s", cfg.ListenAddr)
	}
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servify.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVIFY_API_URL", "https://env.example.com")
	t.Setenv("SERVIFY_LOG_JSON", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %s, want env value", cfg.BaseURL)
	}
	if !cfg.LogJSON {
		t.Error("LogJSON should come from the environment")
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servify.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	if err := os.WriteFile(path, []byte("base_url: \"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty base_url")
	}
}
