package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgdash/internal/cache"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/logging"
)

// isolate points GHGDASH_HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	for _, env := range []string{
		EnvAPIURL, EnvLogLevel, EnvLogFormat, EnvLocale, EnvProjectDir,
		cache.EnvTTLSeconds, cache.EnvCacheEnabled, cache.EnvCacheMaxSize, cache.EnvCacheDir,
	} {
		t.Setenv(env, "")
	}
	return home
}

func TestNew_Defaults(t *testing.T) {
	home := isolate(t)

	cfg := New()
	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, DefaultAPIURL, cfg.API.BaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, emissions.DefaultYearRange(), cfg.Display.YearRange())
	assert.Equal(t, "World", cfg.Display.DefaultCountry)
	assert.Equal(t, filepath.Join(home, "cache"), cfg.CacheDir())
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := New()
	require.NoError(t, cfg.Set("api.base_url", "http://stats.local:9000"))
	require.NoError(t, cfg.Set("display.start_year", "2000"))
	require.NoError(t, cfg.Set("cache.enabled", "false"))
	require.NoError(t, cfg.Save())

	info, err := os.Stat(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded := New()
	assert.Equal(t, "http://stats.local:9000", reloaded.API.BaseURL)
	assert.Equal(t, 2000, reloaded.Display.StartYear)
	assert.False(t, reloaded.Cache.Enabled)
}

func TestLoad_InvalidYAML(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("api: [unterminated"), 0o600))

	cfg := Defaults()
	require.Error(t, cfg.Load())

	// New tolerates a broken file and keeps defaults.
	assert.Equal(t, DefaultAPIURL, New().API.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIURL, "http://env:1")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(cache.EnvTTLSeconds, "600")
	t.Setenv(cache.EnvCacheEnabled, "false")
	t.Setenv(cache.EnvCacheDir, "/var/tmp/ghg")

	cfg := New()
	assert.Equal(t, "http://env:1", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 600, cfg.Cache.TTLSeconds)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "/var/tmp/ghg", cfg.CacheDir())
}

func TestGetSet(t *testing.T) {
	isolate(t)
	cfg := Defaults()

	for _, key := range Keys() {
		_, err := cfg.Get(key)
		require.NoError(t, err, key)
	}

	_, err := cfg.Get("api.nope")
	require.ErrorIs(t, err, ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope", "1"), ErrUnknownKey)

	require.Error(t, cfg.Set("display.end_year", "soon"))
	require.Error(t, cfg.Set("cache.enabled", "perhaps"))

	require.NoError(t, cfg.Set("display.locale", " en "))
	v, err := cfg.Get("display.locale")
	require.NoError(t, err)
	assert.Equal(t, "en", v)

	require.NoError(t, cfg.Set("cache.ttl_seconds", "90m"))
	assert.Equal(t, 5400, cfg.Cache.TTLSeconds)
	require.ErrorIs(t, cfg.Set("cache.ttl_seconds", "5"), cache.ErrInvalidTTL)
}

func TestValidate(t *testing.T) {
	isolate(t)
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }},
		{"negative ttl", func(c *Config) { c.Cache.TTLSeconds = -1 }},
		{"reversed years", func(c *Config) { c.Display.StartYear, c.Display.EndYear = 2020, 2010 }},
		{"bad output", func(c *Config) { c.Display.OutputFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "warn", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)

	lc.File = "/tmp/ghgdash.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/ghgdash.log", got.File)
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { SetGlobalConfig(nil) })

	custom := Defaults()
	custom.Logging.Level = "error"
	SetGlobalConfig(custom)
	assert.Same(t, custom, GetGlobalConfig())
	assert.Equal(t, "error", GetLoggingConfig().Level)

	require.NoError(t, EnsureLogDir())
	_, err := os.Stat(custom.LogDir())
	require.NoError(t, err)
}

func TestApplyDefaults(t *testing.T) {
	isolate(t)

	cfg := &Config{Display: DisplayConfig{Locale: "en"}}
	cfg.ApplyDefaults()
	assert.Equal(t, "en", cfg.Display.Locale)
	assert.Equal(t, DefaultCountry, cfg.Display.DefaultCountry)
	assert.Equal(t, emissions.DefaultStartYear, cfg.Display.StartYear)
	assert.Equal(t, DefaultAPIURL, cfg.API.BaseURL)
	assert.False(t, cfg.Cache.Enabled, "booleans are not defaulted")
	require.NoError(t, cfg.Validate())
}
