package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvAPIURL   = "GASTOS_API_URL"
	EnvLogLevel = "GASTOS_LOG_LEVEL"
)

// Config holds all gastos configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
	Watch      WatchConfig      `toml:"watch"`
}

// APIConfig points the client at the budget service.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"` // 0 leaves transport defaults
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	StatePath  string `toml:"state_path,omitempty"`
	DateFormat string `toml:"date_format"`
	Currency   string `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	File        string `toml:"file,omitempty"`
}

// WatchConfig configures the background watch service.
type WatchConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// DefaultAPIURL is used when neither the config file nor the environment set one.
const DefaultAPIURL = "http://localhost:3000/api"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultAPIURL,
		},
		General: GeneralConfig{
			DateFormat: "2006-01-02",
			Currency:   "USD",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  30,
			EventsBuffer: 200,
		},
	}
}

// Timeout returns the per-request timeout, zero when unset.
func (c Config) Timeout() time.Duration {
	if c.API.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// LogFile returns the log file path, defaulting next to the state database.
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(CacheDir(), "gastos.log")
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gastos")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gastos")
}

// CacheDir returns where state and logs live.
func CacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "gastos")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "gastos")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A .env file in the working directory is
// loaded first; variables already set in the environment win over it.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	_ = godotenv.Load()
	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if u := strings.TrimSpace(os.Getenv(EnvAPIURL)); u != "" {
		cfg.API.BaseURL = u
	}
	if l := strings.TrimSpace(os.Getenv(EnvLogLevel)); l != "" {
		cfg.Log.Level = strings.ToLower(l)
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIURL
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
