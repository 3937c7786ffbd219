package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL defaults and bounds.
const (
	// DefaultTTLSeconds keeps responses for one hour.
	DefaultTTLSeconds = 3600

	MinTTLSeconds = 60

	// MaxTTLSeconds is seven days.
	MaxTTLSeconds = 604800

	DefaultCacheMaxSizeMB = 50

	EnvTTLSeconds   = "GHGDASH_CACHE_TTL_SECONDS"
	EnvCacheEnabled = "GHGDASH_CACHE_ENABLED"
	EnvCacheDir     = "GHGDASH_CACHE_DIR"
	EnvCacheMaxSize = "GHGDASH_CACHE_MAX_SIZE_MB"

	hoursPerDay = 24
)

// ErrInvalidTTL is returned for TTLs outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// TTLConfig is a validated TTL.
type TTLConfig struct {
	Seconds  int
	Duration time.Duration
}

// NewTTLConfig validates seconds and wraps it.
func NewTTLConfig(seconds int) (*TTLConfig, error) {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return &TTLConfig{Seconds: seconds, Duration: time.Duration(seconds) * time.Second}, nil
}

// ParseTTL accepts integer seconds ("3600") or a duration ("90m").
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format %q: %w", s, durErr)
		}
		seconds = int(d.Seconds())
	}
	if _, err = NewTTLConfig(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// FormatDuration renders d compactly: "45s", "30m", "1h30m", "2d3h".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < hoursPerDay*time.Hour:
		h, m := int(d.Hours()), int(d.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		days, h := int(d.Hours())/hoursPerDay, int(d.Hours())%hoursPerDay
		if h == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd%dh", days, h)
	}
}

// GetTTLFromEnv returns $GHGDASH_CACHE_TTL_SECONDS, or the default when it
// is unset or out of range.
func GetTTLFromEnv() int {
	ttl, err := strconv.Atoi(os.Getenv(EnvTTLSeconds))
	if err != nil || ttl < MinTTLSeconds || ttl > MaxTTLSeconds {
		return DefaultTTLSeconds
	}
	return ttl
}

// GetCacheEnabledFromEnv returns $GHGDASH_CACHE_ENABLED, defaulting to true.
func GetCacheEnabledFromEnv() bool {
	enabled, err := strconv.ParseBool(os.Getenv(EnvCacheEnabled))
	if err != nil {
		return true
	}
	return enabled
}

// GetCacheDirFromEnv returns $GHGDASH_CACHE_DIR or "".
func GetCacheDirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}

// GetCacheMaxSizeFromEnv returns $GHGDASH_CACHE_MAX_SIZE_MB, or the default
// when it is unset, malformed or negative. Zero means unlimited.
func GetCacheMaxSizeFromEnv() int {
	size, err := strconv.Atoi(os.Getenv(EnvCacheMaxSize))
	if err != nil || size < 0 {
		return DefaultCacheMaxSizeMB
	}
	return size
}
