package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Library validation
	if cfg.Library.DefaultTimeout == "" {
		errs = append(errs, "library.default_timeout must not be empty")
	} else if d, err := time.ParseDuration(cfg.Library.DefaultTimeout); err != nil {
		errs = append(errs, fmt.Sprintf("library.default_timeout is not a valid duration: %v", err))
	} else if d < 0 {
		errs = append(errs, "library.default_timeout must not be negative")
	}

	// Report validation
	validFormats := map[string]bool{"markdown": true, "html": true, "yaml": true}
	if !validFormats[cfg.Report.Format] {
		errs = append(errs, fmt.Sprintf("report.format must be one of: markdown, html, yaml (got %q)", cfg.Report.Format))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
