package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. TRADEJOURNAL_STORE_DB_PATH.
const EnvPrefix = "TRADEJOURNAL"

// Config represents the complete journal configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account" mapstructure:"account"`
	Risk    RiskConfig    `json:"risk" yaml:"risk" mapstructure:"risk"`
	Goals   GoalsConfig   `json:"goals" yaml:"goals" mapstructure:"goals"`
	Store   Store         `json:"store" yaml:"store" mapstructure:"store"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// AccountConfig describes the trading account the journal belongs to
type AccountConfig struct {
	Currency     string  `json:"currency" yaml:"currency" mapstructure:"currency"`
	StartBalance float64 `json:"start_balance" yaml:"start_balance" mapstructure:"start_balance"`
}

// RiskConfig holds defaults for the position-size calculator
type RiskConfig struct {
	DefaultRiskPercent float64 `json:"default_risk_percent" yaml:"default_risk_percent" mapstructure:"default_risk_percent"`
	AccountSize        float64 `json:"account_size" yaml:"account_size" mapstructure:"account_size"`
}

type GoalsConfig struct {
	DeadlineAlertDays int `json:"deadline_alert_days" yaml:"deadline_alert_days" mapstructure:"deadline_alert_days"`
}

// Store selects where trades and goals are kept
type Store struct {
	Type     string `json:"type" yaml:"type" mapstructure:"type"` // "sqlite" or "file"
	DBPath   string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
	DataFile string `json:"data_file,omitempty" yaml:"data_file,omitempty" mapstructure:"data_file"`
}

type LogConfig struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level"`
	File       bool   `json:"file" yaml:"file" mapstructure:"file"`
	FilePath   string `json:"file_path,omitempty" yaml:"file_path,omitempty" mapstructure:"file_path"`
	MaxSize    int    `json:"max_size" yaml:"max_size" mapstructure:"max_size"` // megabytes
	MaxBackups int    `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age" mapstructure:"max_age"` // days
}

// Dir is the directory holding the default config, database and logs.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tradejournal"
	}
	return filepath.Join(home, ".tradejournal")
}

// DefaultPath is where the CLI looks for a config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	dir := Dir()
	return &Config{
		Account: AccountConfig{
			Currency:     "USD",
			StartBalance: 10000,
		},
		Risk: RiskConfig{
			DefaultRiskPercent: 1,
			AccountSize:        10000,
		},
		Goals: GoalsConfig{
			DeadlineAlertDays: 7,
		},
		Store: Store{
			Type:     "sqlite",
			DBPath:   filepath.Join(dir, "journal.db"),
			DataFile: filepath.Join(dir, "journal.yaml"),
		},
		Log: LogConfig{
			Level:      "info",
			FilePath:   filepath.Join(dir, "logs", "tradejournal.log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// Load reads path (YAML or JSON by extension) over the defaults and applies
// TRADEJOURNAL_* environment overrides. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("account.currency", d.Account.Currency)
	v.SetDefault("account.start_balance", d.Account.StartBalance)
	v.SetDefault("risk.default_risk_percent", d.Risk.DefaultRiskPercent)
	v.SetDefault("risk.account_size", d.Risk.AccountSize)
	v.SetDefault("goals.deadline_alert_days", d.Goals.DeadlineAlertDays)
	v.SetDefault("store.type", d.Store.Type)
	v.SetDefault("store.db_path", d.Store.DBPath)
	v.SetDefault("store.data_file", d.Store.DataFile)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.file_path", d.Log.FilePath)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.StartBalance < 0 {
		return fmt.Errorf("account.start_balance must not be negative")
	}
	if c.Risk.DefaultRiskPercent < 0.1 || c.Risk.DefaultRiskPercent > 10 {
		return fmt.Errorf("risk.default_risk_percent must be between 0.1 and 10")
	}
	if c.Risk.AccountSize < 0 {
		return fmt.Errorf("risk.account_size must not be negative")
	}
	if c.Goals.DeadlineAlertDays < 0 {
		return fmt.Errorf("goals.deadline_alert_days must not be negative")
	}
	switch c.Store.Type {
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path required for sqlite type")
		}
	case "file":
		if c.Store.DataFile == "" {
			return fmt.Errorf("store.data_file required for file type")
		}
	default:
		return fmt.Errorf("store.type must be 'sqlite' or 'file'")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.File && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path required when log.file is set")
	}
	return nil
}
