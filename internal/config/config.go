package config

import (
	"os"
	"path/filepath"

	"github.com/teamventure/itinmd/internal/itinerary"
)

// Config is the root itinmd configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Template TemplateConfig `yaml:"template"`
	Render   RenderConfig   `yaml:"render"`
}

// StoreConfig locates the plan database. An empty path resolves to ~/.itinmd/itinmd.db.
type StoreConfig struct {
	Path string `yaml:"path" env:"ITINMD_DB"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ITINMD_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"ITINMD_LOG_FORMAT" env-default:"console"`
}

// TemplateConfig shapes the fallback document.
type TemplateConfig struct {
	MaxDays     int `yaml:"max_days"      env:"ITINMD_TEMPLATE_MAX_DAYS"      env-default:"5"`
	ItemsPerDay int `yaml:"items_per_day" env:"ITINMD_TEMPLATE_ITEMS_PER_DAY" env-default:"8"`
	StartHour   int `yaml:"start_hour"    env:"ITINMD_TEMPLATE_START_HOUR"    env-default:"9"`
	Version     int `yaml:"version"       env:"ITINMD_TEMPLATE_VERSION"       env-default:"2"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	PDFFontPath string `yaml:"pdf_font_path" env:"ITINMD_PDF_FONT"`
}

// Options converts the template section into itinerary.TemplateOptions.
func (t TemplateConfig) Options() itinerary.TemplateOptions {
	return itinerary.TemplateOptions{
		MaxDays:     t.MaxDays,
		ItemsPerDay: t.ItemsPerDay,
		StartHour:   t.StartHour,
		Version:     t.Version,
	}
}

// DBPath returns the configured database path or the default under the home directory.
func (s StoreConfig) DBPath() string {
	if s.Path != "" {
		return s.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".itinmd", "itinmd.db")
	}
	return filepath.Join(home, ".itinmd", "itinmd.db")
}
