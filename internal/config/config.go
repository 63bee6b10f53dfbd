// Package config loads the shell's optional YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPrompt is printed before each command line on interactive input.
const DefaultPrompt = "gosh> "

// Config holds the user-tunable shell settings. Pointer fields distinguish
// "unset" from explicit false so defaults only fill real gaps.
type Config struct {
	// Prompt is the string printed before reading each command line.
	Prompt string `yaml:"prompt"`
	// ShowPrompt disables the prompt entirely when false. It is also forced
	// off when standard input is not a terminal.
	ShowPrompt *bool `yaml:"show_prompt"`
	// NotifyResumed controls the "[N] (pgid) resumed" notification for jobs
	// continued by external signals.
	NotifyResumed *bool `yaml:"notify_resumed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields with the built-in values.
func (c *Config) ApplyDefaults() {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.ShowPrompt == nil {
		c.ShowPrompt = boolPtr(true)
	}
	if c.NotifyResumed == nil {
		c.NotifyResumed = boolPtr(true)
	}
}

// Validate enforces settings invariants.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.Prompt, "\n\r") {
		return fmt.Errorf("prompt must not contain line breaks")
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }
