package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectDir(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	root := t.TempDir()
	projectDir := filepath.Join(root, ".ghgdash")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.MkdirAll(nested, 0o750))

	t.Run("walks up", func(t *testing.T) {
		assert.Equal(t, projectDir, ResolveProjectDir(ctx, "", nested))
	})

	t.Run("flag wins", func(t *testing.T) {
		other := t.TempDir()
		assert.Equal(t, filepath.Join(other, ".ghgdash"), ResolveProjectDir(ctx, other, nested))
		assert.Equal(t, projectDir, ResolveProjectDir(ctx, projectDir, ""))
	})

	t.Run("env", func(t *testing.T) {
		other := t.TempDir()
		t.Setenv(EnvProjectDir, other)
		assert.Equal(t, filepath.Join(other, ".ghgdash"), ResolveProjectDir(ctx, "", nested))
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, ResolveProjectDir(ctx, "", ""))
	})
}

func TestNewWithProjectDir(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	projectDir := filepath.Join(t.TempDir(), ".ghgdash")
	require.NoError(t, os.MkdirAll(projectDir, 0o750))

	assert.Equal(t, DefaultAPIURL, NewWithProjectDir(ctx, "").API.BaseURL)
	assert.Equal(t, DefaultAPIURL, NewWithProjectDir(ctx, projectDir).API.BaseURL, "no project file")

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("api:\n  base_url: http://project\n  timeout_seconds: 5\n"), 0o600))
	cfg := NewWithProjectDir(ctx, projectDir)
	assert.Equal(t, "http://project", cfg.API.BaseURL)

	t.Setenv(EnvAPIURL, "http://env")
	assert.Equal(t, "http://env", NewWithProjectDir(ctx, projectDir).API.BaseURL)

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte("api: ["), 0o600))
	t.Setenv(EnvAPIURL, "")
	assert.Equal(t, DefaultAPIURL, NewWithProjectDir(ctx, projectDir).API.BaseURL, "broken overlay falls back")
}

func TestResolveProjectDir_SkipsGlobalHome(t *testing.T) {
	root := t.TempDir()
	global := filepath.Join(root, ".ghgdash")
	require.NoError(t, os.MkdirAll(global, 0o750))
	t.Setenv(EnvHome, global)
	t.Setenv(EnvProjectDir, "")

	nested := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	assert.Empty(t, ResolveProjectDir(context.Background(), "", nested))
}
