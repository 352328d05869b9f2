package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config.default.yaml
var defaultConfigYAML []byte

type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	History  History  `yaml:"history"`
	Values   Values   `yaml:"values"`
	AutoEmit AutoEmit `yaml:"auto_emit"`
}

type History struct {
	LogSize   int `yaml:"log_size"`
	ValueSize int `yaml:"value_size"`
}

// Values bounds the generated values, inclusive on both ends.
type Values struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type AutoEmit struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

func (c *Config) init() {
	c.setDefaults()
}

func (c *Config) setDefaults() {
	def := defaultConfig()
	if c.History.LogSize <= 0 {
		c.History.LogSize = def.History.LogSize
	}
	if c.History.ValueSize <= 0 {
		c.History.ValueSize = def.History.ValueSize
	}
	if c.AutoEmit.Interval <= 0 {
		c.AutoEmit.Interval = def.AutoEmit.Interval
	}
}

func (c *Config) validate() error {
	if c.Values.Max < c.Values.Min {
		return fmt.Errorf("values range is empty: min %d, max %d", c.Values.Min, c.Values.Max)
	}
	return nil
}

func DefaultConfig() *Config {
	cfg := defaultConfig()
	cfg.init()
	return cfg
}

func LoadConfig(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := defaultConfig()
	if err = yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.init()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		panic(fmt.Errorf("failed to load default config: %w", err))
	}
	return &cfg
}
