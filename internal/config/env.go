package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// Environment variables that override the YAML configuration.
const (
	EnvDefaultTimeout = "SUPPORTCODE_DEFAULT_TIMEOUT"
	EnvLogLevel       = "SUPPORTCODE_LOG_LEVEL"
	EnvProjectPath    = "SUPPORTCODE_PROJECT_PATH"
)

// ApplyEnv overlays values from envFile (if it exists) and then from the
// process environment, which wins.
func ApplyEnv(cfg *Config, envFile string) error {
	values := map[string]string{}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			values, err = godotenv.Read(envFile)
			if err != nil {
				return domain.NewError("config", envFile, 0, "failed to parse env file", err)
			}
		}
	}
	for _, key := range []string{EnvDefaultTimeout, EnvLogLevel, EnvProjectPath} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	if v := values[EnvDefaultTimeout]; v != "" {
		cfg.Library.DefaultTimeout = v
	}
	if v := values[EnvLogLevel]; v != "" {
		cfg.Logging.Level = v
	}
	if v := values[EnvProjectPath]; v != "" {
		cfg.Library.ProjectPath = v
	}
	return nil
}
