package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "gameline"

type Config struct {
	DBPath    string     `mapstructure:"db_path"`
	LogFile   string     `mapstructure:"log_file"`
	LogLevel  string     `mapstructure:"log_level"` // debug, info, warn, error
	ExportDir string     `mapstructure:"export_dir"`
	Rawg      RawgConfig `mapstructure:"rawg"`

	// Path is the file the configuration was read from.
	Path string `mapstructure:"-"`
}

type RawgConfig struct {
	APIKey  string `mapstructure:"api_key"` // used when the in-app key is empty
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// Dir returns ~/.config/gameline
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appName), nil
}

// DefaultPath returns ~/.config/gameline/gameline.yml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".yml"), nil
}

// Load reads the configuration file at path, creating it with default
// values when it does not exist yet. An empty path means DefaultPath.
// Environment variables prefixed with GAMELINE_ override the file.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("db_path", filepath.Join(dir, appName+".db"))
	v.SetDefault("log_file", filepath.Join(dir, appName+".log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("export_dir", defaultExportDir())
	v.SetDefault("rawg.api_key", "")
	v.SetDefault("rawg.base_url", "https://api.rawg.io/api")
	v.SetDefault("rawg.timeout", 10)

	v.SetEnvPrefix("GAMELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = path
	return &cfg, nil
}

func defaultExportDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) RawgTimeout() time.Duration {
	if c.Rawg.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Rawg.Timeout) * time.Second
}
