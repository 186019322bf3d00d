package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvGeneratorModel overrides the generation model name.
	EnvGeneratorModel = "GENERATOR_MODEL"

	// EnvGeneratorKeyFile overrides the API credential file path.
	EnvGeneratorKeyFile = "GENERATOR_KEY_FILE"

	// EnvGeneratorTimeout overrides the per-call generation timeout.
	EnvGeneratorTimeout = "GENERATOR_TIMEOUT"
)

// GeneratorConfig contains LLM generation configuration.
type GeneratorConfig struct {
	Model string `toml:"model"`

	// KeyFile is the path to a file containing the API credential.
	// A missing file is not a startup failure; generation requests
	// are rejected until the credential is available.
	KeyFile string `toml:"key_file"`

	Timeout string `toml:"timeout"`
}

// TimeoutDuration parses and returns the per-call generation timeout.
func (c *GeneratorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the generator configuration.
func (c *GeneratorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GeneratorConfig) Merge(overlay *GeneratorConfig) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.KeyFile != "" {
		c.KeyFile = overlay.KeyFile
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *GeneratorConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
	if c.KeyFile == "" {
		c.KeyFile = "Key.txt"
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
}

func (c *GeneratorConfig) loadEnv() {
	if v := os.Getenv(EnvGeneratorModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvGeneratorKeyFile); v != "" {
		c.KeyFile = v
	}
	if v := os.Getenv(EnvGeneratorTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *GeneratorConfig) validate() error {
	if c.KeyFile == "" {
		return fmt.Errorf("key_file required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
