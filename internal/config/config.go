package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Backend  BackendConfig `mapstructure:"backend"`
	Examples []Example     `mapstructure:"examples"`
	TUI      TUIConfig     `mapstructure:"tui"`
	Log      LogConfig     `mapstructure:"log"`
}

type BackendConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Example is a quick-start shortcut: it pre-fills the form without
// triggering a submission.
type Example struct {
	Name        string `mapstructure:"name"`
	RepoURL     string `mapstructure:"repo_url"`
	IssueNumber int    `mapstructure:"issue_number"`
}

type TUIConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Defaults() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Examples: []Example{
			{Name: "react", RepoURL: "https://github.com/facebook/react", IssueNumber: 1},
			{Name: "vscode", RepoURL: "https://github.com/microsoft/vscode", IssueNumber: 1},
			{Name: "next.js", RepoURL: "https://github.com/vercel/next.js", IssueNumber: 1},
		},
		TUI: TUIConfig{Enabled: true},
		Log: LogConfig{Level: "warn"},
	}
}

func Load(configPath string) (Config, error) {
	cfg := Defaults()
	if err := loadUserConfig(configPath, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}

	return cfg, nil
}

func loadUserConfig(configPath string, cfg *Config) error {
	path := configPath
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".ghia", "config.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}
