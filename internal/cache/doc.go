// Package cache stores raw API responses on disk with a TTL.
//
// Entries live as JSON files under ~/.ghgdash/cache/ (or $GHGDASH_CACHE_DIR),
// one file per request, named by the SHA-256 of the normalised endpoint and
// query. Expired entries are treated as misses and removed lazily. When the
// directory grows past the configured size the oldest entries are evicted.
package cache
