package config

import (
	"fmt"
	"net"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeClassifier()
	c.normalizeDetection()
	c.normalizeArchive()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FixturePath) == "" {
		c.Paths.FixturePath = defaultFixturePathTemplate
	}
	if c.Paths.FixturePath, err = expandPath(c.Paths.FixturePath); err != nil {
		return fmt.Errorf("paths.fixture_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	if port, ok := os.LookupEnv(envPort); ok && strings.TrimSpace(port) != "" {
		host, _, err := net.SplitHostPort(c.Server.Bind)
		if err != nil {
			return fmt.Errorf("server.bind: %w", err)
		}
		c.Server.Bind = net.JoinHostPort(host, strings.TrimSpace(port))
	}
	c.Server.APIToken = strings.TrimSpace(c.Server.APIToken)
	if c.Server.APIToken == "" {
		if value, ok := os.LookupEnv(envAPIToken); ok {
			c.Server.APIToken = strings.TrimSpace(value)
		}
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	return nil
}

// normalizeClassifier drops blank and duplicate entries. A nil list (key
// absent) keeps the default; an explicit empty list stays empty.
func (c *Config) normalizeClassifier() {
	if c.Classifier.ExcludedQuotes == nil {
		c.Classifier.ExcludedQuotes = []string{defaultExcludedQuote}
		return
	}
	quotes := make([]string, 0, len(c.Classifier.ExcludedQuotes))
	seen := make(map[string]struct{}, len(c.Classifier.ExcludedQuotes))
	for _, quote := range c.Classifier.ExcludedQuotes {
		trimmed := strings.TrimSpace(quote)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		quotes = append(quotes, trimmed)
	}
	c.Classifier.ExcludedQuotes = quotes
}

func (c *Config) normalizeDetection() {
	c.Detection.LatinDefault = strings.TrimSpace(c.Detection.LatinDefault)
	if c.Detection.LatinDefault == "" {
		c.Detection.LatinDefault = defaultLatinLanguage
	}
	c.Detection.ArabicScriptDefault = strings.TrimSpace(c.Detection.ArabicScriptDefault)
	if c.Detection.ArabicScriptDefault == "" {
		c.Detection.ArabicScriptDefault = defaultArabicScriptLang
	}
}

func (c *Config) normalizeArchive() {
	if c.Archive.RetentionDays < 0 {
		c.Archive.RetentionDays = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
