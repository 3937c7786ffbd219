package cache

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// CacheEntry is one cached response body with its expiry metadata.
//
//nolint:revive // CacheEntry is the canonical name for this exported type.
type CacheEntry struct {
	Key        string          `json:"key"`
	Endpoint   string          `json:"endpoint,omitempty"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// NewCacheEntry creates an entry that expires ttlSeconds from now.
func NewCacheEntry(key, endpoint string, data json.RawMessage, ttlSeconds int) *CacheEntry {
	now := time.Now()
	return &CacheEntry{
		Key:        key,
		Endpoint:   endpoint,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry is past its expiry time.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the time since the entry was written.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e *CacheEntry) TimeUntilExpiration() time.Duration {
	return max(time.Until(e.ExpiresAt), 0)
}

type entryAlias CacheEntry

type entryWire struct {
	*entryAlias

	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

// MarshalJSON writes timestamps as RFC3339.
func (e *CacheEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(&entryWire{
		entryAlias: (*entryAlias)(e),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		ExpiresAt:  e.ExpiresAt.Format(time.RFC3339),
	})
}

// UnmarshalJSON parses RFC3339 timestamps.
func (e *CacheEntry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil CacheEntry")
	}
	aux := &entryWire{entryAlias: (*entryAlias)(e)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, aux.CreatedAt); err != nil {
		return err
	}
	if e.ExpiresAt, err = time.Parse(time.RFC3339, aux.ExpiresAt); err != nil {
		return err
	}
	return nil
}
