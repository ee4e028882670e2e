package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds importer settings loadable from a file. Command-line
// flags win over config file values.
type Config struct {
	Address  string `yaml:"address" toml:"address" json:"address" validate:"omitempty,url"`
	Token    string `yaml:"token" toml:"token" json:"token"`
	Mount    string `yaml:"mount" toml:"mount" json:"mount"`
	App      string `yaml:"app" toml:"app" json:"app"`
	Env      string `yaml:"env" toml:"env" json:"env"`
	File     string `yaml:"file" toml:"file" json:"file"`
	CACert   string `yaml:"ca_cert" toml:"ca_cert" json:"ca_cert"`
	Insecure bool   `yaml:"insecure" toml:"insecure" json:"insecure"`
}

// LoadConfig loads importer configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}

	// Determine the format based on file extension
	switch {
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		err = yaml.Unmarshal(data, cfg)
	case strings.HasSuffix(path, ".toml"):
		err = toml.Unmarshal(data, cfg)
	case strings.HasSuffix(path, ".json"):
		err = json.Unmarshal(data, cfg)
	default:
		// Default to YAML
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyConfig fills in flag values the command line left empty
func applyConfig(cfg *Config) {
	if *flagAddr == "" {
		*flagAddr = cfg.Address
	}
	if *flagToken == "" {
		*flagToken = cfg.Token
	}
	if *flagMount == "" {
		*flagMount = cfg.Mount
	}
	if *flagApp == "" {
		*flagApp = cfg.App
	}
	if *flagEnv == "" {
		*flagEnv = cfg.Env
	}
	if *flagFile == "" {
		*flagFile = cfg.File
	}
	if *flagCACert == "" {
		*flagCACert = cfg.CACert
	}
	if cfg.Insecure {
		*flagInsecure = true
	}
}
