package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/ghgdash/internal/logging"
)

// EnvProjectDir overrides project directory discovery.
const EnvProjectDir = "GHGDASH_PROJECT_DIR"

// ResolveProjectDir determines the project-local .ghgdash directory.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. GHGDASH_PROJECT_DIR env var
//  3. walking up from startDir until a directory containing .ghgdash is found
//
// Returns an absolute path to the .ghgdash directory, or "" when none is
// found. It does not create anything.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, homeDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && !isGlobalHome(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir loads the global config and shallow-merges the
// project-local config.yaml on top. An empty projectDir or a missing
// project file yields the global config unchanged.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}
	merged.ApplyDefaults()
	// Environment variables still win over the project file.
	merged.applyEnv()

	return merged
}

// isGlobalHome reports whether dir is the global ghgdash directory, which
// is never treated as a project directory.
func isGlobalHome(dir string) bool {
	if dir == ResolveHome() {
		return true
	}
	userHome, err := os.UserHomeDir()
	return err == nil && dir == filepath.Join(userHome, homeDirName)
}

// toAbsProjectDir converts dir to an absolute path ending in .ghgdash.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == homeDirName {
		return abs
	}

	return filepath.Join(abs, homeDirName)
}
