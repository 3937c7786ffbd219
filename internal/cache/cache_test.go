package cache

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntry(t *testing.T) {
	entry := NewCacheEntry("k", "/statistics", json.RawMessage(`{"co2":{}}`), 60)

	assert.False(t, entry.IsExpired())
	assert.Greater(t, entry.TimeUntilExpiration(), time.Duration(0))
	assert.LessOrEqual(t, entry.Age(), time.Second)

	t.Run("expired", func(t *testing.T) {
		e := *entry
		e.ExpiresAt = time.Now().Add(-time.Second)
		assert.True(t, e.IsExpired())
		assert.Equal(t, time.Duration(0), e.TimeUntilExpiration())
	})

	t.Run("timestamps survive encoding", func(t *testing.T) {
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), entry.CreatedAt.Format(time.RFC3339))

		var decoded CacheEntry
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, entry.Endpoint, decoded.Endpoint)
		assert.Equal(t, entry.ExpiresAt.Unix(), decoded.ExpiresAt.Unix())
		assert.JSONEq(t, `{"co2":{}}`, string(decoded.Data))
	})
}

func TestGenerateKey(t *testing.T) {
	q1 := url.Values{}
	q1.Set("country_code", "IDN")
	q1.Set("start_year", "2013")

	q2 := url.Values{}
	q2.Set("start_year", "2013")
	q2.Set("country_code", "IDN")

	k1, err := GenerateKey(KeyParams{BaseURL: "http://127.0.0.1:8000", Endpoint: "/statistics", Query: q1})
	require.NoError(t, err)
	k2, err := GenerateKey(KeyParams{BaseURL: " HTTP://127.0.0.1:8000/ ", Endpoint: "statistics/", Query: q2})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	k3, err := GenerateKey(KeyParams{BaseURL: "http://127.0.0.1:8000", Endpoint: "/growth", Query: q1})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, err = GenerateKey(KeyParams{Endpoint: " / "})
	require.ErrorIs(t, err, ErrInvalidCacheKey)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, 60, 0)
	require.NoError(t, err)
	assert.True(t, store.Enabled())
	assert.Equal(t, time.Minute, store.TTL())

	_, err = store.Get("missing")
	require.ErrorIs(t, err, ErrCacheNotFound)

	require.NoError(t, store.Set("abc", "/countries", json.RawMessage(`[1,2]`)))
	got, err := store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "/countries", got.Endpoint)
	assert.JSONEq(t, `[1,2]`, string(got.Data))

	count, size, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Positive(t, size)

	require.NoError(t, store.Delete("abc"))
	require.NoError(t, store.Delete("abc"), "delete is idempotent")

	require.NoError(t, store.Set("x", "", json.RawMessage(`1`)))
	require.NoError(t, store.Set("y", "", json.RawMessage(`2`)))
	removed, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get("")
	require.ErrorIs(t, err, ErrInvalidCacheKey)
}

func TestFileStore_Expired(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, 0, 0)
	require.NoError(t, err)

	require.NoError(t, store.Set("old", "", json.RawMessage(`1`)))
	time.Sleep(1100 * time.Millisecond)

	_, err = store.Get("old")
	require.ErrorIs(t, err, ErrCacheExpired)
	_, statErr := os.Stat(filepath.Join(dir, "old.json"))
	assert.True(t, os.IsNotExist(statErr), "expired entry is removed on read")

	require.NoError(t, store.Set("a", "", json.RawMessage(`1`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o600))
	time.Sleep(1100 * time.Millisecond)
	removed, err := store.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}

func TestFileStore_EvictsOldest(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, 3600, 1)
	require.NoError(t, err)

	big := json.RawMessage(`"` + strings.Repeat("a", 600*1024) + `"`)
	require.NoError(t, store.Set("first", "", big))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "first.json"), past, past))
	require.NoError(t, store.Set("second", "", big))

	_, err = store.Get("first")
	require.ErrorIs(t, err, ErrCacheNotFound)
	_, err = store.Get("second")
	require.NoError(t, err)
}

func TestFileStore_Disabled(t *testing.T) {
	store, err := NewFileStore("", false, 60, 0)
	require.NoError(t, err)
	assert.False(t, store.Enabled())

	_, err = store.Get("k")
	require.ErrorIs(t, err, ErrCacheDisabled)
	require.ErrorIs(t, store.Set("k", "", json.RawMessage(`1`)), ErrCacheDisabled)
	_, err = store.Clear()
	require.ErrorIs(t, err, ErrCacheDisabled)
}

func TestTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3600", 3600, false},
		{"90m", 5400, false},
		{"10", 0, true},
		{"30d", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "1h30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "2d", FormatDuration(48*time.Hour))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvTTLSeconds, "120")
	t.Setenv(EnvCacheEnabled, "false")
	t.Setenv(EnvCacheMaxSize, "-3")
	t.Setenv(EnvCacheDir, "/tmp/ghg")

	assert.Equal(t, 120, GetTTLFromEnv())
	assert.False(t, GetCacheEnabledFromEnv())
	assert.Equal(t, DefaultCacheMaxSizeMB, GetCacheMaxSizeFromEnv())
	assert.Equal(t, "/tmp/ghg", GetCacheDirFromEnv())

	t.Setenv(EnvTTLSeconds, "5")
	assert.Equal(t, DefaultTTLSeconds, GetTTLFromEnv())
}
