package client

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
)

// Config is the terminal client's view of one ripple server and the account it acts for.
type Config struct {
	ServerUrl string `yaml:"server_url"`
	ApiKey    string `yaml:"api_key"`
	ViewerId  string `yaml:"viewer_id"`
	TimeZone  string `yaml:"time_zone"`
}

func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ripple", "client.yaml"), nil
}

// LoadConfig reads path; a missing file yields an empty config for flags to fill in.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid client config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.ServerUrl == "" {
		return errors.New("server_url is required")
	}
	if !strings.HasPrefix(cfg.ServerUrl, "http://") && !strings.HasPrefix(cfg.ServerUrl, "https://") {
		return fmt.Errorf("server_url must be an http(s) URL: %s", cfg.ServerUrl)
	}
	if cfg.ApiKey == "" {
		return errors.New("api_key is required")
	}
	if cfg.ViewerId == "" {
		return errors.New("viewer_id is required")
	}
	cfg.ServerUrl = strings.TrimRight(cfg.ServerUrl, "/")
	return nil
}
