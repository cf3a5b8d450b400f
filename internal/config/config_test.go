package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"scriptparse/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())
	t.Setenv("SCRIPTPARSE_API_TOKEN", "")
	t.Setenv("PORT", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "scriptparse", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "scriptparse")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.FixturePath != filepath.Join(wantData, "farsi-english-script.json") {
		t.Fatalf("unexpected fixture path: %q", cfg.Paths.FixturePath)
	}
	if cfg.Server.Bind != "127.0.0.1:5000" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if len(cfg.Classifier.ExcludedQuotes) != 1 || cfg.Classifier.ExcludedQuotes[0] != "“" {
		t.Fatalf("unexpected excluded quotes: %q", cfg.Classifier.ExcludedQuotes)
	}
	if cfg.Detection.LatinDefault != "en" || cfg.Detection.ArabicScriptDefault != "fa" {
		t.Fatalf("unexpected detection defaults: %+v", cfg.Detection)
	}
	if !cfg.Archive.Enabled {
		t.Fatal("expected archive enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.ArchivePath() != filepath.Join(wantData, "archive.db") {
		t.Fatalf("unexpected archive path: %q", cfg.ArchivePath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scriptparse.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Server struct {
			Bind     string `toml:"bind"`
			APIToken string `toml:"api_token"`
		} `toml:"server"`
		Classifier struct {
			ExcludedQuotes []string `toml:"excluded_quotes"`
		} `toml:"classifier"`
		Detection struct {
			LatinDefault string `toml:"latin_default"`
		} `toml:"detection"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Server.Bind = "0.0.0.0:8080"
	custom.Server.APIToken = " secret "
	custom.Classifier.ExcludedQuotes = []string{"«", " ", "«", "„"}
	custom.Detection.LatinDefault = "de-DE"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}
	t.Setenv("PORT", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Server.APIToken != "secret" {
		t.Fatalf("expected trimmed token, got %q", cfg.Server.APIToken)
	}
	if got := strings.Join(cfg.Classifier.ExcludedQuotes, ","); got != "«,„" {
		t.Fatalf("unexpected excluded quotes: %q", got)
	}
	if cfg.Detection.LatinDefault != "de-DE" {
		t.Fatalf("unexpected latin default: %q", cfg.Detection.LatinDefault)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json logging format, got %q", cfg.Logging.Format)
	}
	if cfg.ServerURL() != "http://127.0.0.1:8080" {
		t.Fatalf("unexpected server url: %q", cfg.ServerURL())
	}
}

func TestLoadEmptyExcludedQuotesDisablesCheck(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[classifier]\nexcluded_quotes = []\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Classifier.ExcludedQuotes == nil || len(cfg.Classifier.ExcludedQuotes) != 0 {
		t.Fatalf("expected explicit empty quote list, got %#v", cfg.Classifier.ExcludedQuotes)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[server]\nbindd = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvironmentFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("SCRIPTPARSE_API_TOKEN", "env-token")
	t.Setenv("PORT", "9091")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.APIToken != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.Server.APIToken)
	}
	if cfg.Server.Bind != "127.0.0.1:9091" {
		t.Fatalf("expected PORT to override bind port, got %q", cfg.Server.Bind)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad bind", func(c *config.Config) { c.Server.Bind = "localhost" }, "server.bind"},
		{"bad port", func(c *config.Config) { c.Server.Bind = "127.0.0.1:http" }, "port"},
		{"zero body", func(c *config.Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes"},
		{"zero shutdown", func(c *config.Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdown_timeout"},
		{"bad latin default", func(c *config.Config) { c.Detection.LatinDefault = "sw" }, "detection.latin_default"},
		{"bad arabic default", func(c *config.Config) { c.Detection.ArabicScriptDefault = "!!" }, "detection.arabic_script_default"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Server.Bind != defaults.Server.Bind || cfg.Server.MaxBodyBytes != defaults.Server.MaxBodyBytes {
		t.Fatalf("sample server section drifted from defaults: %+v", cfg.Server)
	}
	if len(cfg.Classifier.ExcludedQuotes) != 1 || cfg.Classifier.ExcludedQuotes[0] != "“" {
		t.Fatalf("sample excluded quotes drifted: %q", cfg.Classifier.ExcludedQuotes)
	}
}
