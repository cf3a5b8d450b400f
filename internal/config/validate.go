package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"scriptparse/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	_, port, err := net.SplitHostPort(c.Server.Bind)
	if err != nil {
		return fmt.Errorf("server.bind must be host:port: %w", err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("server.bind port %q is invalid", port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateDetection() error {
	if _, err := language.ResolveTag(c.Detection.LatinDefault); err != nil {
		return fmt.Errorf("detection.latin_default: %w", err)
	}
	if _, err := language.ResolveTag(c.Detection.ArabicScriptDefault); err != nil {
		return fmt.Errorf("detection.arabic_script_default: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
