package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// KeyParams identifies one API request.
type KeyParams struct {
	BaseURL  string
	Endpoint string
	Query    url.Values
}

// GenerateKey returns a deterministic key for p. Host case, surrounding
// whitespace, trailing slashes and query parameter order do not affect it.
func GenerateKey(p KeyParams) (string, error) {
	endpoint := strings.Trim(strings.TrimSpace(p.Endpoint), "/")
	if endpoint == "" {
		return "", ErrInvalidCacheKey
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")))
	b.WriteByte('|')
	b.WriteString(endpoint)
	b.WriteByte('|')
	// url.Values.Encode sorts by key.
	b.WriteString(p.Query.Encode())

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:]), nil
}
