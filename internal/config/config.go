// Package config loads generator settings from defaults, a config file,
// DOCGEN_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the complete generator configuration.
type Config struct {
	Input     string          `mapstructure:"input" validate:"required"`
	Output    string          `mapstructure:"output" validate:"required"`
	Extension string          `mapstructure:"extension" validate:"required,startswith=."`
	Links     string          `mapstructure:"links"`
	Workers   int             `mapstructure:"workers" validate:"min=1,max=64"`
	Title     string          `mapstructure:"title"`
	Watch     bool            `mapstructure:"watch"`
	Highlight HighlightConfig `mapstructure:"highlight"`
	Log       LogConfig       `mapstructure:"log"`
}

// HighlightConfig controls example highlighting.
type HighlightConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Style    string `mapstructure:"style" validate:"required_if=Enabled true"`
	Language string `mapstructure:"language" validate:"required_if=Enabled true"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// DefaultFileName is looked up in the working directory when no config
// file is named explicitly.
const DefaultFileName = ".docgen"

// FlagKeys maps config keys to the command line flags that override them.
var FlagKeys = map[string]string{
	"input":           "dir",
	"output":          "out",
	"extension":       "ext",
	"links":           "links",
	"workers":         "workers",
	"title":           "title",
	"watch":           "watch",
	"highlight.style": "style",
	"log.format":      "log-format",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:     "./js",
		Output:    "./out",
		Extension: ".js",
		Workers:   4,
		Highlight: HighlightConfig{Enabled: true, Style: "github", Language: "javascript"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("output", d.Output)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("links", d.Links)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("title", d.Title)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("highlight.enabled", d.Highlight.Enabled)
	v.SetDefault("highlight.style", d.Highlight.Style)
	v.SetDefault("highlight.language", d.Highlight.Language)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the configuration. An empty path searches the working
// directory for DefaultFileName and ignores its absence; a named file must
// exist. Flags from fs override other sources only when set on the command
// line. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DOCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for key, name := range FlagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
