package config

const (
	defaultDataDir             = "~/.local/share/scriptparse"
	defaultLogDir              = "~/.local/share/scriptparse/logs"
	defaultFixtureFile         = "farsi-english-script.json"
	defaultBind                = "127.0.0.1:5000"
	defaultMaxBodyBytes        = 10 << 20
	defaultShutdownTimeout     = 5
	defaultLatinLanguage       = "en"
	defaultArabicScriptLang    = "fa"
	defaultArchiveEnabled      = true
	defaultArchiveRetention    = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 30
	defaultExcludedQuote       = "“"
	defaultConfigRelativePath  = "~/.config/scriptparse/config.toml"
	projectConfigFilename      = "scriptparse.toml"
	archiveDatabaseFilename    = "archive.db"
	lockFilename               = "scriptparse.lock"
	pidFilename                = "scriptparse.pid"
	envAPIToken                = "SCRIPTPARSE_API_TOKEN"
	envPort                    = "PORT"
	defaultFixturePathTemplate = defaultDataDir + "/" + defaultFixtureFile
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
			FixturePath: defaultFixturePathTemplate,
		},
		Server: Server{
			Bind:            defaultBind,
			MaxBodyBytes:    defaultMaxBodyBytes,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Classifier: Classifier{
			ExcludedQuotes: []string{defaultExcludedQuote},
		},
		Detection: Detection{
			LatinDefault:        defaultLatinLanguage,
			ArabicScriptDefault: defaultArabicScriptLang,
		},
		Archive: Archive{
			Enabled:       defaultArchiveEnabled,
			RetentionDays: defaultArchiveRetention,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
