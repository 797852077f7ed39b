package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the name of the project configuration file
const FileName = "kubetypes.json"

// DefaultSchemaURL is where Kubernetes publishes its OpenAPI document for each release tag.
// {version} is replaced with the tag.
const DefaultSchemaURL = "https://raw.githubusercontent.com/kubernetes/kubernetes/{version}/api/openapi-spec/swagger.json"

const (
	defaultLanguage = "typescript"
	defaultOutput   = "./types"
	defaultRetries  = 3
	defaultTimeout  = "20s"
)

// ErrNotFound is returned when no kubetypes.json exists in the directory or its parents
var ErrNotFound = errors.New("no " + FileName + " found")

// Config represents the kubetypes.json configuration file
type Config struct {
	Version  string       `json:"version,omitempty"`
	Language string       `json:"language"`
	Output   string       `json:"output"`
	Schema   SchemaConfig `json:"schema"`
	Fetch    FetchConfig  `json:"fetch"`
}

// SchemaConfig says where the OpenAPI document comes from. File takes precedence over URL.
type SchemaConfig struct {
	URL  string `json:"url,omitempty"`
	File string `json:"file,omitempty"`
}

// FetchConfig controls schema downloads
type FetchConfig struct {
	Retries int    `json:"retries"`
	Timeout string `json:"timeout"`
}

// TimeoutDuration parses Timeout
func (f FetchConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid fetch timeout %q: %w", f.Timeout, err)
	}
	return d, nil
}

// Default returns the configuration used when no kubetypes.json exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// WithDefaults fills unset fields of c and returns it
func WithDefaults(c *Config) *Config {
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}
	if c.Schema.URL == "" {
		c.Schema.URL = DefaultSchemaURL
	}
	if c.Fetch.Retries <= 0 {
		c.Fetch.Retries = defaultRetries
	}
	if c.Fetch.Timeout == "" {
		c.Fetch.Timeout = defaultTimeout
	}
}

// LoadConfig loads kubetypes.json from the current directory or a parent directory.
// It also returns the directory the file was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if _, err := config.Fetch.TimeoutDuration(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Encode renders the configuration as indented JSON
func Encode(config *Config) ([]byte, error) {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the configuration to path
func Save(path string, config *Config) error {
	data, err := Encode(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// loadConfigFromDir searches for kubetypes.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, startDir)
}
