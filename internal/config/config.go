package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

type LibraryConfig struct {
	ProjectPath    string `yaml:"project_path"`
	DefaultTimeout string `yaml:"default_timeout"`
	StrictTags     bool   `yaml:"strict_tags"`
}

type ReportConfig struct {
	Format string `yaml:"format"` // "markdown", "html" or "yaml"
	Output string `yaml:"output"` // empty writes to stdout
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Timeout parses library.default_timeout. Validate guarantees it parses.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Library.DefaultTimeout)
	if err != nil {
		return 0
	}
	return d
}
