package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ghgdash/internal/cache"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

// Environment variables that override the config file.
const (
	EnvHome      = "GHGDASH_HOME"
	EnvAPIURL    = "GHGDASH_API_URL"
	EnvLogLevel  = "GHGDASH_LOG_LEVEL"
	EnvLogFormat = "GHGDASH_LOG_FORMAT"
	EnvLocale    = "GHGDASH_LOCALE"
)

// Defaults applied before the config file is read.
const (
	DefaultAPIURL         = "http://127.0.0.1:8000"
	DefaultTimeoutSeconds = 15
	DefaultCountry        = "World"
	DefaultOutputFormat   = "table"

	configFileName = "config.yaml"
	homeDirName    = ".ghgdash"
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the complete ghgdash configuration.
//
// YAML location: ~/.ghgdash/config.yaml, or $GHGDASH_HOME/config.yaml.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Display DisplayConfig `yaml:"display" json:"display"`

	// Home is the resolved ghgdash directory; not persisted.
	Home string `yaml:"-" json:"-"`
}

// APIConfig points at the remote statistics API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"        json:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"               json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"           json:"ttl_seconds"`
	MaxSizeMB  int    `yaml:"max_size_mb"           json:"max_size_mb"`
	Directory  string `yaml:"directory,omitempty"   json:"directory,omitempty"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DisplayConfig holds dashboard presentation defaults.
type DisplayConfig struct {
	Locale         string `yaml:"locale"          json:"locale"`
	DefaultCountry string `yaml:"default_country" json:"default_country"`
	StartYear      int    `yaml:"start_year"      json:"start_year"`
	EndYear        int    `yaml:"end_year"        json:"end_year"`
	OutputFormat   string `yaml:"output_format"   json:"output_format"`
}

// YearRange returns the configured default year range.
func (d DisplayConfig) YearRange() emissions.YearRange {
	return emissions.YearRange{Start: d.StartYear, End: d.EndYear}
}

//nolint:gochecknoglobals // Process-wide configuration, set once per CLI invocation.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// GetGlobalConfig returns the process-wide configuration, loading it on
// first use.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// SetGlobalConfig replaces the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResolveHome returns the ghgdash directory: $GHGDASH_HOME or ~/.ghgdash.
func ResolveHome() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return homeDirName
	}
	return filepath.Join(userHome, homeDirName)
}

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	home := ResolveHome()
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultAPIURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
			MaxSizeMB:  cache.DefaultCacheMaxSizeMB,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Display: DisplayConfig{
			Locale:         format.DefaultLocale,
			DefaultCountry: DefaultCountry,
			StartYear:      emissions.DefaultStartYear,
			EndYear:        emissions.DefaultEndYear,
			OutputFormat:   DefaultOutputFormat,
		},
		Home: home,
	}
}

// New loads defaults, then the config file (if any), then environment
// overrides. A missing or unreadable file leaves the defaults in place.
func New() *Config {
	cfg := Defaults()
	_ = cfg.Load()
	cfg.ApplyDefaults()
	cfg.applyEnv()
	return cfg
}

// ApplyDefaults fills zero-valued fields with built-in defaults. Overlays
// replace whole sections, so a partial section would otherwise leave
// required fields empty. Booleans are left as they are.
func (c *Config) ApplyDefaults() {
	d := Defaults()
	fillString(&c.API.BaseURL, d.API.BaseURL)
	fillInt(&c.API.TimeoutSeconds, d.API.TimeoutSeconds)
	fillInt(&c.Cache.TTLSeconds, d.Cache.TTLSeconds)
	fillInt(&c.Cache.MaxSizeMB, d.Cache.MaxSizeMB)
	fillString(&c.Logging.Level, d.Logging.Level)
	fillString(&c.Logging.Format, d.Logging.Format)
	fillString(&c.Display.Locale, d.Display.Locale)
	fillString(&c.Display.DefaultCountry, d.Display.DefaultCountry)
	fillInt(&c.Display.StartYear, d.Display.StartYear)
	fillInt(&c.Display.EndYear, d.Display.EndYear)
	fillString(&c.Display.OutputFormat, d.Display.OutputFormat)
	if c.Home == "" {
		c.Home = d.Home
	}
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func fillInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// Path returns the config file location.
func (c *Config) Path() string {
	return filepath.Join(c.Home, configFileName)
}

// CacheDir returns the cache directory, honouring overrides.
func (c *Config) CacheDir() string {
	if dir := cache.GetCacheDirFromEnv(); dir != "" {
		return dir
	}
	if c.Cache.Directory != "" {
		return c.Cache.Directory
	}
	return filepath.Join(c.Home, "cache")
}

// LogDir returns the directory for log files.
func (c *Config) LogDir() string {
	return filepath.Join(c.Home, "logs")
}

// Load reads the config file onto c. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.Path(), err)
	}
	return nil
}

// Save writes c to its config file, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Home, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.Path(), data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be > 0, got %d", c.API.TimeoutSeconds)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be >= 0, got %d", c.Cache.TTLSeconds)
	}
	if err := c.Display.YearRange().Validate(); err != nil {
		return fmt.Errorf("display year range: %w", err)
	}
	switch c.Display.OutputFormat {
	case "table", "json":
	default:
		return fmt.Errorf("display.output_format must be table or json, got %q", c.Display.OutputFormat)
	}
	return nil
}

// applyEnv overlays environment variables onto c.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		c.Display.Locale = v
	}
	if os.Getenv(cache.EnvTTLSeconds) != "" {
		c.Cache.TTLSeconds = cache.GetTTLFromEnv()
	}
	if os.Getenv(cache.EnvCacheEnabled) != "" {
		c.Cache.Enabled = cache.GetCacheEnabledFromEnv()
	}
	if os.Getenv(cache.EnvCacheMaxSize) != "" {
		c.Cache.MaxSizeMB = cache.GetCacheMaxSizeFromEnv()
	}
}

// Keys lists every dotted key understood by Get and Set.
func Keys() []string {
	return []string{
		"api.base_url", "api.timeout_seconds",
		"cache.enabled", "cache.ttl_seconds", "cache.max_size_mb", "cache.directory",
		"logging.level", "logging.format", "logging.file",
		"display.locale", "display.default_country", "display.start_year",
		"display.end_year", "display.output_format",
	}
}

// Get returns the value of a dotted key such as "api.base_url".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_seconds":
		return strconv.Itoa(c.API.TimeoutSeconds), nil
	case "cache.enabled":
		return strconv.FormatBool(c.Cache.Enabled), nil
	case "cache.ttl_seconds":
		return strconv.Itoa(c.Cache.TTLSeconds), nil
	case "cache.max_size_mb":
		return strconv.Itoa(c.Cache.MaxSizeMB), nil
	case "cache.directory":
		return c.Cache.Directory, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "display.locale":
		return c.Display.Locale, nil
	case "display.default_country":
		return c.Display.DefaultCountry, nil
	case "display.start_year":
		return strconv.Itoa(c.Display.StartYear), nil
	case "display.end_year":
		return strconv.Itoa(c.Display.EndYear), nil
	case "display.output_format":
		return c.Display.OutputFormat, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted key from its string form.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_seconds":
		return setInt(&c.API.TimeoutSeconds, key, value)
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Cache.Enabled = b
	case "cache.ttl_seconds":
		ttl, err := cache.ParseTTL(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Cache.TTLSeconds = ttl
	case "cache.max_size_mb":
		return setInt(&c.Cache.MaxSizeMB, key, value)
	case "cache.directory":
		c.Cache.Directory = value
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "display.locale":
		c.Display.Locale = value
	case "display.default_country":
		c.Display.DefaultCountry = value
	case "display.start_year":
		return setInt(&c.Display.StartYear, key, value)
	case "display.end_year":
		return setInt(&c.Display.EndYear, key, value)
	case "display.output_format":
		c.Display.OutputFormat = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: expected an integer, got %q", key, value)
	}
	*dst = n
	return nil
}
