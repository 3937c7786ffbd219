package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgdash/internal/cli"
	"github.com/rshade/ghgdash/internal/config"
)

// Fixture statistics keyed by country code. World grows, Indonesia shrinks.
//
//nolint:gochecknoglobals // Test fixtures.
var fixtureStats = map[string]string{
	"WLD": `{
  "total": {"mean": 40, "raw_values": {"2013": [30], "2023": [50]}},
  "co2":   {"raw_values": {"2013": [20], "2023": [25]}},
  "ch4":   {"raw_values": {"2013": [6], "2023": [15]}},
  "n2o":   {"raw_values": {"2013": [4], "2023": [10]}}
}`,
	"IDN": `{
  "total": {"raw_values": {"2013": [10], "2023": [5]}},
  "co2":   {"raw_values": {"2013": [8], "2023": [4]}},
  "ch4":   {"raw_values": {"2013": [1], "2023": ["0.5"]}},
  "n2o":   {"raw_values": {"2013": [1], "2023": [null]}}
}`,
}

// fakeAPI serves the fixture dataset. Country "Broken" resolves to a code
// whose statistics fail with HTTP 500.
type fakeAPI struct {
	srv  *httptest.Server
	hits atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/countries", func(w http.ResponseWriter, _ *http.Request) {
		api.hits.Add(1)
		_, _ = w.Write([]byte(`{"countries":[` +
			`{"name":"World","code":"WLD"},` +
			`{"name":"Indonesia","code":"IDN"},` +
			`{"name":"Broken","code":"ERR"}]}`))
	})
	mux.HandleFunc("/statistics", func(w http.ResponseWriter, r *http.Request) {
		api.hits.Add(1)
		body, ok := fixtureStats[r.URL.Query().Get("country_code")]
		if !ok {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/growth", func(w http.ResponseWriter, _ *http.Request) {
		api.hits.Add(1)
		_, _ = w.Write([]byte(`{"total": [66.67], "co2": 25, "ch4": null}`))
	})
	api.srv = httptest.NewServer(mux)
	t.Cleanup(api.srv.Close)
	return api
}

// setupCLI isolates the CLI from the real home directory and points it at
// a fake API with caching disabled.
func setupCLI(t *testing.T) *fakeAPI {
	t.Helper()
	api := newFakeAPI(t)
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Setenv(config.EnvAPIURL, api.srv.URL)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv("GHGDASH_CACHE_ENABLED", "false")
	t.Cleanup(func() { config.SetGlobalConfig(nil) })
	return api
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// executeJSON runs args and decodes stdout into v.
func executeJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}
