package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	ext := c.Organize.OutputExtension
	if !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("organize.output_extension must start with a dot, got %q", ext)
	}
	if strings.ContainsAny(ext[1:], "./\\") {
		return fmt.Errorf("organize.output_extension %q contains path characters", ext)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if len(c.Logging.Outputs) == 0 {
		return errors.New("logging.outputs must not be empty")
	}
	for _, output := range c.Logging.Outputs {
		switch output {
		case "file", "stdout", "stderr":
		default:
			return fmt.Errorf("logging.outputs entries must be file, stdout, or stderr, got %q", output)
		}
	}
	return nil
}
