package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Validate checks enums and ranges. Load calls it automatically.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if err := c.Template.validate(); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	return nil
}

func (t *TemplateConfig) validate() error {
	if t.MaxDays < 1 {
		return fmt.Errorf("max_days must be >= 1 (got %d)", t.MaxDays)
	}
	if t.ItemsPerDay < 1 {
		return fmt.Errorf("items_per_day must be >= 1 (got %d)", t.ItemsPerDay)
	}
	if t.StartHour < 1 || t.StartHour > 23 {
		return fmt.Errorf("start_hour must be in [1, 23] (got %d)", t.StartHour)
	}
	if t.Version < 1 {
		return fmt.Errorf("version must be >= 1 (got %d)", t.Version)
	}
	return nil
}
