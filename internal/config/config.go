package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/spf13/viper"
)

// DefaultMaxHTMLBytes bounds a single input document
const DefaultMaxHTMLBytes = 10 << 20

// Config represents the application configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	DataDir string `mapstructure:"data_dir"`
	DBFile  string `mapstructure:"db_file"`
	LogFile string `mapstructure:"log_file"`
}

// AnalysisConfig holds engine defaults used when flags are not given
type AnalysisConfig struct {
	Framework            string `mapstructure:"framework"`
	IncludeAccessibility bool   `mapstructure:"include_accessibility"`
	MaxHTMLBytes         int64  `mapstructure:"max_html_bytes"`
	Workers              int    `mapstructure:"workers"`
}

// CacheConfig controls reuse of stored analyses for identical input
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// Options converts the analysis defaults into engine options
func (a AnalysisConfig) Options() (core.Options, error) {
	framework, err := core.ParseFramework(a.Framework)
	if err != nil {
		return core.Options{}, fmt.Errorf("analysis.framework: %w", err)
	}
	return core.Options{
		Framework:            framework,
		IncludeAccessibility: a.IncludeAccessibility,
	}, nil
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".config", "locrank"))
	}
	viper.AddConfigPath(".")

	setDefaults()

	// LOCRANK_ANALYSIS_FRAMEWORK overrides analysis.framework
	viper.SetEnvPrefix("LOCRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.DBFile = expandPath(cfg.Paths.DBFile)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the commands cannot run with
func (c *Config) Validate() error {
	if _, err := c.Analysis.Options(); err != nil {
		return err
	}
	if c.Analysis.MaxHTMLBytes <= 0 {
		return fmt.Errorf("analysis.max_html_bytes must be positive, got %d", c.Analysis.MaxHTMLBytes)
	}
	if c.Analysis.Workers <= 0 {
		return fmt.Errorf("analysis.workers must be positive, got %d", c.Analysis.Workers)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "locrank")
	viper.SetDefault("paths.data_dir", dataDir)
	viper.SetDefault("paths.db_file", filepath.Join(dataDir, "analyses.db"))
	viper.SetDefault("paths.log_file", filepath.Join(dataDir, "locrank.log"))

	viper.SetDefault("analysis.framework", string(core.FrameworkSelenium))
	viper.SetDefault("analysis.include_accessibility", true)
	viper.SetDefault("analysis.max_html_bytes", DefaultMaxHTMLBytes)
	viper.SetDefault("analysis.workers", 4)

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", time.Hour)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.color", "auto")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return os.ExpandEnv(path)
}
