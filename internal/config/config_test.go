package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/matching"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.6, cfg.Tunables.AcceptanceThreshold)
	assert.Equal(t, 0.8, cfg.Tunables.FuzzyThreshold)
	assert.Equal(t, 8, cfg.Tunables.SeniorYears)
	assert.Equal(t, 3, cfg.Tunables.MidYears)
	assert.Equal(t, matching.DefaultWeights(), cfg.MatchWeights())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "skillmatch.yaml", `
tunables:
  acceptance_threshold: 0.5
  top_categories: 5
  weights:
    weighted: 0.25
    f1: 0.25
    experience: 0.25
    category: 0.25
server:
  port: 9090
database_url: sqlite:history.db
workers: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.5, cfg.Tunables.AcceptanceThreshold)
	assert.Equal(t, 5, cfg.Tunables.TopCategories)
	assert.Equal(t, 0.8, cfg.Tunables.FuzzyThreshold, "unset keys keep their defaults")
	assert.Equal(t, 0.25, cfg.Tunables.Weights.Category)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 1<<20, cfg.Server.MaxTextBytes)
	assert.Equal(t, "sqlite:history.db", cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{"server": {"port": 7000}, "log": {"json": true}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "skillmatch.yaml", "server:\n  port: 9090\n")
	t.Setenv("SKILLMATCH_DATABASE_URL", "postgres://localhost/skills")
	t.Setenv("SKILLMATCH_SERVER_PORT", "9191")
	t.Setenv("SKILLMATCH_TUNABLES_SENIOR_YEARS", "10")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/skills", cfg.DatabaseURL)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Tunables.SeniorYears)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/skillmatch.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "broken.yaml", "server: [port: ")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"threshold above one", func(c *Config) { c.Tunables.AcceptanceThreshold = 1.5 }, "AcceptanceThreshold"},
		{"zero fuzzy threshold", func(c *Config) { c.Tunables.FuzzyThreshold = 0 }, "FuzzyThreshold"},
		{"senior not above mid", func(c *Config) { c.Tunables.SeniorYears = 3 }, "SeniorYears"},
		{"negative mid", func(c *Config) { c.Tunables.MidYears = -1; c.Tunables.SeniorYears = 2 }, "MidYears"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "Port"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "Workers"},
		{"weights do not sum to one", func(c *Config) { c.Tunables.Weights.Category = 0.2 }, "sum to 1"},
		{"negative weight", func(c *Config) {
			c.Tunables.Weights = matching.Weights{Weighted: 1.2, F1: -0.2}
		}, "non-negative"},
		{"first negative weight reported", func(c *Config) {
			c.Tunables.Weights = matching.Weights{Weighted: 1.5, F1: -0.2, Experience: -0.1, Category: -0.2}
		}, "weight 'f1' must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtractionOptions(t *testing.T) {
	cfg := Default()
	assert.Equal(t, extraction.DefaultOptions(), cfg.ExtractionOptions())

	cfg.Tunables.AcceptanceThreshold = 0.4
	cfg.Tunables.CollapseAliases = true
	cfg.Tunables.SeniorYears = 10
	cfg.Tunables.MidYears = 4

	opts := cfg.ExtractionOptions()
	assert.Equal(t, 0.4, opts.AcceptanceThreshold)
	assert.True(t, opts.CollapseAliases)
	assert.Equal(t, 10, opts.Experience.Senior)
	assert.Equal(t, 4, opts.Experience.Mid)
	assert.Equal(t, extraction.DefaultOptions().MaxFuzzyWords, opts.MaxFuzzyWords)
}
