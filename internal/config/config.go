package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything shopfront reads at startup.
type Config struct {
	APIURL            string
	RequestTimeout    time.Duration
	RenderTimeout     time.Duration
	CatalogLimit      int
	ClearCartOnLogout bool
	SimulatedDelay    time.Duration
	CatalogRefresh    time.Duration
	LogFile           string
}

const (
	defaultConfigPath     = "~/.config/shopfront/config.toml"
	defaultLogFile        = "~/.local/state/shopfront/shopfront.log"
	defaultAPIURL         = "https://dummyjson.com"
	defaultRequestTimeout = 5 * time.Second
	defaultRenderTimeout  = 10 * time.Second
	defaultCatalogLimit   = 30
	defaultSimulatedDelay = time.Second
	envPrefix             = "SHOPFRONT_"
)

// dotenvPath is loaded into the process environment before overrides are read.
var dotenvPath = ".env"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:            defaultAPIURL,
		RequestTimeout:    defaultRequestTimeout,
		RenderTimeout:     defaultRenderTimeout,
		CatalogLimit:      defaultCatalogLimit,
		ClearCartOnLogout: true,
		SimulatedDelay:    defaultSimulatedDelay,
		LogFile:           mustExpand(defaultLogFile),
	}
}

type fileConfig struct {
	APIURL            string `toml:"api_url"`
	RequestTimeout    string `toml:"request_timeout"`
	RenderTimeout     string `toml:"render_timeout"`
	CatalogLimit      int    `toml:"catalog_limit"`
	ClearCartOnLogout *bool  `toml:"clear_cart_on_logout"`
	SimulatedDelay    string `toml:"simulated_delay"`
	CatalogRefresh    string `toml:"catalog_refresh"`
	LogFile           string `toml:"log_file"`
}

type envConfig struct {
	APIURL            *string        `env:"API_URL"`
	RequestTimeout    *time.Duration `env:"REQUEST_TIMEOUT"`
	RenderTimeout     *time.Duration `env:"RENDER_TIMEOUT"`
	CatalogLimit      *int           `env:"CATALOG_LIMIT"`
	ClearCartOnLogout *bool          `env:"CLEAR_CART_ON_LOGOUT"`
	SimulatedDelay    *time.Duration `env:"SIMULATED_DELAY"`
	CatalogRefresh    *time.Duration `env:"CATALOG_REFRESH"`
	LogFile           *string        `env:"LOG_FILE"`
}

// Load reads the TOML config at path (or the default location), then applies
// SHOPFRONT_* environment overrides, including those from a .env file in the
// working directory. A missing config file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := loadFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := loadDotenv(dotenvPath); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
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

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.CatalogLimit > 0 {
		cfg.CatalogLimit = raw.CatalogLimit
	}
	if raw.ClearCartOnLogout != nil {
		cfg.ClearCartOnLogout = *raw.ClearCartOnLogout
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	durations := []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"render_timeout", raw.RenderTimeout, &cfg.RenderTimeout},
		{"simulated_delay", raw.SimulatedDelay, &cfg.SimulatedDelay},
		{"catalog_refresh", raw.CatalogRefresh, &cfg.CatalogRefresh},
	}
	for _, d := range durations {
		v := strings.TrimSpace(d.value)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: %s: %w", d.key, err)
		}
		*d.dest = parsed
	}
	return nil
}

func loadDotenv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var overrides envConfig
	if err := env.ParseWithOptions(&overrides, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if overrides.APIURL != nil && strings.TrimSpace(*overrides.APIURL) != "" {
		cfg.APIURL = strings.TrimSpace(*overrides.APIURL)
	}
	if overrides.RequestTimeout != nil {
		cfg.RequestTimeout = *overrides.RequestTimeout
	}
	if overrides.RenderTimeout != nil {
		cfg.RenderTimeout = *overrides.RenderTimeout
	}
	if overrides.CatalogLimit != nil {
		cfg.CatalogLimit = *overrides.CatalogLimit
	}
	if overrides.ClearCartOnLogout != nil {
		cfg.ClearCartOnLogout = *overrides.ClearCartOnLogout
	}
	if overrides.SimulatedDelay != nil {
		cfg.SimulatedDelay = *overrides.SimulatedDelay
	}
	if overrides.CatalogRefresh != nil {
		cfg.CatalogRefresh = *overrides.CatalogRefresh
	}
	if overrides.LogFile != nil {
		cfg.LogFile = mustExpand(*overrides.LogFile)
	}
	return nil
}

func (c Config) validate() error {
	if c.CatalogLimit <= 0 {
		return fmt.Errorf("catalog_limit must be positive, got %d", c.CatalogLimit)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("render_timeout must be positive, got %s", c.RenderTimeout)
	}
	if c.SimulatedDelay < 0 || c.CatalogRefresh < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
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
