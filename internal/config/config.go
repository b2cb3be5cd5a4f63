package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
)

// Config holds everything reviewdesk reads at startup.
type Config struct {
	APIBase         string `toml:"api_base" env:"API_BASE, overwrite"`
	ProductLimit    int    `toml:"product_limit" env:"PRODUCT_LIMIT, overwrite" validate:"gte=0"`
	VoteConcurrency int    `toml:"vote_concurrency" env:"VOTE_CONCURRENCY, overwrite" validate:"gte=0"`
	LogLevel        string `toml:"log_level" env:"LOG_LEVEL, overwrite" validate:"oneof=trace debug info warn warning error"`
	LogFile         string `toml:"log_file" env:"LOG_FILE, overwrite"`
	LogPretty       bool   `toml:"log_pretty" env:"LOG_PRETTY, overwrite"`
	MetricsAddr     string `toml:"metrics_addr" env:"METRICS_ADDR, overwrite" validate:"omitempty,hostname_port"`
	PollSeconds     int    `toml:"poll_seconds" env:"POLL_SECONDS, overwrite" validate:"gte=0"`
}

const (
	envPrefix         = "REVIEWDESK_"
	dotEnvFile        = ".env"
	defaultConfigPath = "~/.config/reviewdesk/config.toml"
	defaultAPIBase    = "http://127.0.0.1:8000"
	defaultLogFile    = "~/.local/state/reviewdesk/reviewdesk.log"
	defaultLogLevel   = "info"
	defaultLimit      = 30
	defaultPoll       = 30
)

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		APIBase:      defaultAPIBase,
		ProductLimit: defaultLimit,
		LogLevel:     defaultLogLevel,
		LogFile:      mustExpand(defaultLogFile),
		PollSeconds:  defaultPoll,
	}
}

// Load reads the TOML config at path (the default location when empty),
// then applies REVIEWDESK_* environment overrides. A .env file in the
// working directory is loaded into the environment first if present.
func Load(path string) (Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return load(path, envconfig.PrefixLookuper(envPrefix, envconfig.OsLookuper()))
}

func load(path string, lookuper envconfig.Lookuper) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, fmt.Errorf("apply environment: %w", err)
	}

	cfg.normalize()
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.APIBase = strings.TrimSpace(c.APIBase)
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	if c.ProductLimit == 0 {
		c.ProductLimit = defaultLimit
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	if c.PollSeconds == 0 {
		c.PollSeconds = defaultPoll
	}
}

// PollInterval returns the auth refresh interval.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPoll * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// PrefsPath returns the preferences file kept next to the config file at
// configPath.
func PrefsPath(configPath string) string {
	resolved, err := resolvePath(configPath)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(resolved), "prefs.toml")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
