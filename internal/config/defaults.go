package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			ProjectPath:    ".",
			DefaultTimeout: "5s",
			StrictTags:     false,
		},
		Report: ReportConfig{
			Format: "markdown",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
