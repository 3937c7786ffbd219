package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project it creates a project-local .ghgdash/ directory with
// config.yaml and .gitignore. Otherwise it creates the global
// ~/.ghgdash/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

With --project, creates project-local configuration at ./.ghgdash/config.yaml
(or the directory given by --project-dir) together with a .gitignore that keeps
cached responses, logs and exported charts out of version control.`,
		Example: `  # Create global configuration
  ghgdash config init

  # Create project-local configuration in the current directory
  ghgdash config init --project

  # Create configuration, overwriting existing
  ghgdash config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				dir, err := projectInitDir(cmd)
				if err != nil {
					return err
				}
				return initProjectConfig(cmd, dir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create project-local configuration instead of global")

	return cmd
}

// projectInitDir returns the project .ghgdash directory to initialize:
// the resolved one if any, otherwise ./.ghgdash.
func projectInitDir(cmd *cobra.Command) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	flagValue, _ := cmd.Flags().GetString("project-dir")
	if dir := config.ResolveProjectDir(cmd.Context(), flagValue, cwd); dir != "" {
		return dir, nil
	}
	return filepath.Join(cwd, ".ghgdash"), nil
}

// ensureNoConfig fails unless force is set or path does not exist yet.
func ensureNoConfig(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	cfg := config.Defaults()
	cfg.Home = projectDir

	if err := ensureNoConfig(cfg.Path(), force); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Never overwrites an existing .gitignore.
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", cfg.Path())
	if created {
		cmd.Printf("Created .gitignore to keep cache and logs out of version control\n")
	}

	return nil
}

// initGlobalConfig creates global config at ~/.ghgdash/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Defaults()

	if err := ensureNoConfig(cfg.Path(), force); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.Path())

	return nil
}
