package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func noEnv() envconfig.Lookuper {
	return envconfig.MapLookuper(map[string]string{})
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := load(filepath.Join(home, "does-not-exist.toml"), noEnv())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.ProductLimit != 30 {
		t.Fatalf("ProductLimit = %d, want 30", cfg.ProductLimit)
	}
	if cfg.VoteConcurrency != 0 {
		t.Fatalf("VoteConcurrency = %d, want 0", cfg.VoteConcurrency)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("MetricsAddr = %q, want disabled", cfg.MetricsAddr)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Fatalf("PollInterval = %v, want 30s", cfg.PollInterval())
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  http://shop.internal:9000  "
product_limit = 12
vote_concurrency = 4
log_level = " DEBUG "
log_file = "  ~/logs/desk.log  "
log_pretty = true
metrics_addr = "127.0.0.1:9464"
poll_seconds = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := load(path, noEnv())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.APIBase != "http://shop.internal:9000" {
		t.Fatalf("APIBase = %q", cfg.APIBase)
	}
	if cfg.ProductLimit != 12 || cfg.VoteConcurrency != 4 {
		t.Fatalf("limits = %d/%d, want 12/4", cfg.ProductLimit, cfg.VoteConcurrency)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if !cfg.LogPretty {
		t.Fatalf("LogPretty = false, want true")
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Fatalf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.PollInterval() != 5*time.Second {
		t.Fatalf("PollInterval = %v, want 5s", cfg.PollInterval())
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "http://from-file:8000"
product_limit = 12
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	env := envconfig.PrefixLookuper(envPrefix, envconfig.MapLookuper(map[string]string{
		"REVIEWDESK_API_BASE":     "http://from-env:8000",
		"REVIEWDESK_METRICS_ADDR": ":9464",
		"API_BASE":                "http://unprefixed:1",
	}))

	cfg, err := load(path, env)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.APIBase != "http://from-env:8000" {
		t.Fatalf("APIBase = %q, want env value", cfg.APIBase)
	}
	if cfg.ProductLimit != 12 {
		t.Fatalf("ProductLimit = %d, want file value 12", cfg.ProductLimit)
	}
	if cfg.MetricsAddr != ":9464" {
		t.Fatalf("MetricsAddr = %q, want :9464", cfg.MetricsAddr)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
log_level = ""
log_file = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := load(path, noEnv())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.LogFile != mustExpand(defaultLogFile) {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative limit": `product_limit = -1`,
		"unknown level":  `log_level = "chatty"`,
		"bad metrics":    `metrics_addr = "not an address"`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := load(path, noEnv())
			if err == nil {
				t.Fatalf("load returned nil error, want validation error")
			}
			if !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("load error = %q, want it to mention invalid config", err.Error())
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := load(path, noEnv())
	if err == nil {
		t.Fatalf("load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, dotEnvFile), []byte("REVIEWDESK_PRODUCT_LIMIT=7\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("REVIEWDESK_PRODUCT_LIMIT", "")
	os.Unsetenv("REVIEWDESK_PRODUCT_LIMIT")

	cfg, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ProductLimit != 7 {
		t.Fatalf("ProductLimit = %d, want 7 from .env", cfg.ProductLimit)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestPrefsPath_SitsNextToConfig(t *testing.T) {
	dir := t.TempDir()
	got := PrefsPath(filepath.Join(dir, "config.toml"))
	if got != filepath.Join(dir, "prefs.toml") {
		t.Fatalf("PrefsPath = %q, want %q", got, filepath.Join(dir, "prefs.toml"))
	}
}
