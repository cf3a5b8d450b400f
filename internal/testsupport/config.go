package testsupport

import (
	"path/filepath"
	"testing"

	"scriptparse/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.FixturePath = filepath.Join(base, "fixtures", "script.json")
	cfgVal.Server.Bind = "127.0.0.1:0"
	cfgVal.Server.ShutdownTimeout = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIToken sets the bearer token required on /api routes.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.APIToken = token
	}
}

// WithArchiveDisabled turns off run archiving.
func WithArchiveDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Enabled = false
	}
}

// WithMaxBodyBytes overrides the request body limit.
func WithMaxBodyBytes(limit int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.MaxBodyBytes = limit
	}
}

// WithExcludedQuotes overrides the classifier quote exclusions.
func WithExcludedQuotes(quotes ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.ExcludedQuotes = append([]string{}, quotes...)
	}
}

// WithFixtureLines writes lines as a JSON array to the configured fixture path.
func WithFixtureLines(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteFixture(b.t, b.cfg.Paths.FixturePath, lines...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
