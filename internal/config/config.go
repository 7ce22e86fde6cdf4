// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/skill-matcher/internal/experience"
	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/matching"
)

// EnvPrefix is prepended to every environment override, e.g. SKILLMATCH_DATABASE_URL.
const EnvPrefix = "SKILLMATCH"

// DefaultConfigName is looked up in the working directory when no path is given.
const DefaultConfigName = "skillmatch"

// weightTolerance bounds the drift allowed when the weights are summed.
const weightTolerance = 1e-6

// Tunables are the scoring and extraction constants.
type Tunables struct {
	AcceptanceThreshold float64          `json:"acceptance_threshold" mapstructure:"acceptance_threshold" validate:"gte=0,lte=1"`
	FuzzyThreshold      float64          `json:"fuzzy_threshold" mapstructure:"fuzzy_threshold" validate:"gt=0,lte=1"`
	ContextWindow       int              `json:"context_window" mapstructure:"context_window" validate:"gte=0"`
	TopCategories       int              `json:"top_categories" mapstructure:"top_categories" validate:"gte=1"`
	CollapseAliases     bool             `json:"collapse_aliases" mapstructure:"collapse_aliases"`
	SeniorYears         int              `json:"senior_years" mapstructure:"senior_years" validate:"gtfield=MidYears"`
	MidYears            int              `json:"mid_years" mapstructure:"mid_years" validate:"gte=0"`
	Weights             matching.Weights `json:"weights" mapstructure:"weights"`
}

// Server configures the HTTP API.
type Server struct {
	Port         int `json:"port" mapstructure:"port" validate:"min=1,max=65535"`
	MaxTextBytes int `json:"max_text_bytes" mapstructure:"max_text_bytes" validate:"gte=0"`
}

// Log configures the logger.
type Log struct {
	JSON  bool `json:"json" mapstructure:"json"`
	Debug bool `json:"debug" mapstructure:"debug"`
}

// Config is the full runtime configuration.
type Config struct {
	Tunables    Tunables `json:"tunables" mapstructure:"tunables"`
	Server      Server   `json:"server" mapstructure:"server"`
	DatabaseURL string   `json:"database_url,omitempty" mapstructure:"database_url"`
	Workers     int      `json:"workers" mapstructure:"workers" validate:"gte=0"`
	Log         Log      `json:"log" mapstructure:"log"`
}

// DefaultTunables returns the standard scoring constants.
func DefaultTunables() Tunables {
	opts := extraction.DefaultOptions()
	return Tunables{
		AcceptanceThreshold: opts.AcceptanceThreshold,
		FuzzyThreshold:      opts.FuzzyThreshold,
		ContextWindow:       opts.ContextWindow,
		TopCategories:       opts.TopCategories,
		SeniorYears:         opts.Experience.Senior,
		MidYears:            opts.Experience.Mid,
		Weights:             matching.DefaultWeights(),
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Tunables: DefaultTunables(),
		Server: Server{
			Port:         8080,
			MaxTextBytes: 1 << 20,
		},
		Workers: 0,
	}
}

// Load reads configuration from path (YAML or JSON), then applies SKILLMATCH_*
// environment overrides on top of the defaults. An empty path looks for
// skillmatch.yaml in the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	t := d.Tunables
	v.SetDefault("tunables.acceptance_threshold", t.AcceptanceThreshold)
	v.SetDefault("tunables.fuzzy_threshold", t.FuzzyThreshold)
	v.SetDefault("tunables.context_window", t.ContextWindow)
	v.SetDefault("tunables.top_categories", t.TopCategories)
	v.SetDefault("tunables.collapse_aliases", t.CollapseAliases)
	v.SetDefault("tunables.senior_years", t.SeniorYears)
	v.SetDefault("tunables.mid_years", t.MidYears)
	v.SetDefault("tunables.weights.weighted", t.Weights.Weighted)
	v.SetDefault("tunables.weights.f1", t.Weights.F1)
	v.SetDefault("tunables.weights.experience", t.Weights.Experience)
	v.SetDefault("tunables.weights.category", t.Weights.Category)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_text_bytes", d.Server.MaxTextBytes)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Validate checks field ranges and that the score weights form a blend.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	w := c.Tunables.Weights
	for _, weight := range []struct {
		name  string
		value float64
	}{
		{"weighted", w.Weighted},
		{"f1", w.F1},
		{"experience", w.Experience},
		{"category", w.Category},
	} {
		if weight.value < 0 {
			return fmt.Errorf("config error: weight '%s' must be non-negative", weight.name)
		}
	}
	if math.Abs(w.Sum()-1) > weightTolerance {
		return fmt.Errorf("config error: weights must sum to 1, got %g", w.Sum())
	}
	return nil
}

// ExtractionOptions converts the tunables into extractor options.
func (c *Config) ExtractionOptions() extraction.Options {
	opts := extraction.DefaultOptions()
	opts.AcceptanceThreshold = c.Tunables.AcceptanceThreshold
	opts.FuzzyThreshold = c.Tunables.FuzzyThreshold
	opts.ContextWindow = c.Tunables.ContextWindow
	opts.TopCategories = c.Tunables.TopCategories
	opts.CollapseAliases = c.Tunables.CollapseAliases
	opts.Experience = experience.Levels{
		Senior: c.Tunables.SeniorYears,
		Mid:    c.Tunables.MidYears,
	}
	return opts
}

// MatchWeights returns the overall-score blend.
func (c *Config) MatchWeights() matching.Weights {
	return c.Tunables.Weights
}
