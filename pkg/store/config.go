package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the settings loaded from the .tickal file and TICKAL_ env vars.
type Config interface {
	BasePath() string
	Actor() string
	LogLevel() string
	View() ViewDefaults
}

// ViewDefaults are the configured starting values of a calendar session.
// Values are raw strings; the calendar package parses them.
type ViewDefaults struct {
	Granularity   string
	Field         string
	BusinessHours bool
	Weekends      bool
	ListBefore    string
	ListAfter     string
}

// LoadConfig reads .tickal.yaml from $TICKAL_CONFIG_PATH, the working
// directory, or the home directory, in that order. A missing file is fine.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.tickal.db")
	v.SetDefault("actor", os.Getenv("USER"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("view.granularity", "month")
	v.SetDefault("view.field", "created")
	v.SetDefault("view.business_hours", false)
	v.SetDefault("view.weekends", true)
	v.SetDefault("view.list_before", "7d")
	v.SetDefault("view.list_after", "2mo")

	v.SetConfigName(".tickal") // .yaml is implicit
	v.SetEnvPrefix("TICKAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("TICKAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:  path,
		Who:   v.GetString("actor"),
		Level: v.GetString("log.level"),
		Defaults: ViewDefaults{
			Granularity:   v.GetString("view.granularity"),
			Field:         v.GetString("view.field"),
			BusinessHours: v.GetBool("view.business_hours"),
			Weekends:      v.GetBool("view.weekends"),
			ListBefore:    v.GetString("view.list_before"),
			ListAfter:     v.GetString("view.list_after"),
		},
	}, nil
}

type fileConfig struct {
	Path     string       `json:"path"`
	Who      string       `json:"actor"`
	Level    string       `json:"logLevel"`
	Defaults ViewDefaults `json:"view"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Actor() string {
	return f.Who
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

func (f *fileConfig) View() ViewDefaults {
	return f.Defaults
}
