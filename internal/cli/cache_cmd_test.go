package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheCommands(t *testing.T) {
	api := setupCLI(t)
	t.Setenv("GHGDASH_CACHE_ENABLED", "true")
	t.Setenv("GHGDASH_CACHE_DIR", t.TempDir())

	_, err := execute(t, "stats")
	require.NoError(t, err)
	first := api.hits.Load()
	assert.Equal(t, int32(2), first, "countries and statistics")

	_, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Equal(t, first, api.hits.Load(), "second run is served from the cache")

	_, err = execute(t, "stats", "--no-cache")
	require.NoError(t, err)
	assert.Equal(t, first+2, api.hits.Load(), "--no-cache bypasses the cache")

	var stats struct {
		Enabled bool  `json:"enabled"`
		Entries int   `json:"entries"`
		Size    int64 `json:"size_bytes"`
	}
	executeJSON(t, &stats, "cache", "stats", "-o", "json")
	assert.True(t, stats.Enabled)
	assert.Equal(t, 2, stats.Entries)
	assert.Positive(t, stats.Size)

	out, err := execute(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "TTL:       1h")

	out, err = execute(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired responses")

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 cached responses")

	executeJSON(t, &stats, "cache", "stats", "-o", "json")
	assert.Equal(t, 0, stats.Entries)
}
