package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. STRONGROOM_LOG_LEVEL.
const EnvPrefix = "STRONGROOM_"

// DefaultPath is where the config file is looked for when --config is not given.
const DefaultPath = "strongroom.yaml"

// Config represents the top-level strongroom.yaml configuration.
type Config struct {
	Data  DataConfig  `yaml:"data"`
	Admin AdminConfig `yaml:"admin"`
	Shell ShellConfig `yaml:"shell"`
	Log   LogConfig   `yaml:"log"`
}

// DataConfig locates persisted state.
type DataConfig struct {
	AccountsFile string `yaml:"accounts_file" env:"ACCOUNTS_FILE"`
}

// AdminConfig controls the bootstrap admin account.
type AdminConfig struct {
	// DefaultPassword is only used when the admin account has to be created.
	DefaultPassword string `yaml:"default_password" env:"ADMIN_PASSWORD"`
}

// ShellConfig controls the interactive session.
type ShellConfig struct {
	ClearScreen bool `yaml:"clear_screen" env:"CLEAR_SCREEN"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"LOG_FILE"`   // empty = stderr
}

// Load reads a strongroom.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Resolve loads path if it exists, falls back to defaults if it does not,
// and applies environment overrides on top.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from STRONGROOM_* variables. Unset variables
// leave the current values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new installation.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			AccountsFile: "accounts.csv",
		},
		Admin: AdminConfig{
			DefaultPassword: "admin",
		},
		Shell: ShellConfig{
			ClearScreen: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
