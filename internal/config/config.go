package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "todolist"
	configFile = "config.yaml"
)

type Config struct {
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`
}

type UIConfig struct {
	SearchDelay    time.Duration `yaml:"search_delay"`
	DuplicateDelay time.Duration `yaml:"duplicate_delay"`
	ToastDuration  time.Duration `yaml:"toast_duration"`
	LogFile        string        `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr:   ":8000",
			DBPath: "./todolist.db",
		},
		UI: UIConfig{
			SearchDelay:    500 * time.Millisecond,
			DuplicateDelay: 600 * time.Millisecond,
			ToastDuration:  3 * time.Second,
		},
	}
}

// Path returns the config file location: $TODOLIST_CONFIG if set,
// otherwise ~/.config/todolist/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("TODOLIST_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// Load merges defaults, the YAML file, .env and the environment, in that
// order of increasing precedence.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if err := loadFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TODOLIST_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TODOLIST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TODOLIST_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("TODOLIST_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TODOLIST_DB"); v != "" {
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("TODOLIST_LOG"); v != "" {
		cfg.UI.LogFile = v
	}
	return nil
}
