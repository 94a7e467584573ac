package paths

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/locrank/internal/config"
)

// Resolver centralizes the default locrank locations.
// Configured paths win; HOME-based defaults fill the gaps.
type Resolver struct {
	homeDir string
	cfg     *config.Config
}

// NewResolver creates a Resolver for the current user's HOME
func NewResolver(cfg *config.Config) *Resolver {
	homeDir, _ := os.UserHomeDir()
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
	}
}

// NewResolverWithHome creates a Resolver with an explicit homeDir
func NewResolverWithHome(cfg *config.Config, homeDir string) *Resolver {
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
	}
}

// HomeDir returns the resolved HOME
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// ConfigDir returns ~/.config/locrank
func (r *Resolver) ConfigDir() string {
	return filepath.Join(r.homeDir, ".config", "locrank")
}

// ConfigFile returns the config.toml inside ConfigDir
func (r *Resolver) ConfigFile() string {
	return filepath.Join(r.ConfigDir(), "config.toml")
}

// DataDir returns paths.data_dir, defaulting to ~/.local/share/locrank
func (r *Resolver) DataDir() string {
	if r.cfg != nil && r.cfg.Paths.DataDir != "" {
		return r.cfg.Paths.DataDir
	}
	return filepath.Join(r.homeDir, ".local", "share", "locrank")
}

// DBFile returns paths.db_file, defaulting to analyses.db inside DataDir
func (r *Resolver) DBFile() string {
	if r.cfg != nil && r.cfg.Paths.DBFile != "" {
		return r.cfg.Paths.DBFile
	}
	return filepath.Join(r.DataDir(), "analyses.db")
}

// LogFile returns paths.log_file, defaulting to locrank.log inside DataDir
func (r *Resolver) LogFile() string {
	if r.cfg != nil && r.cfg.Paths.LogFile != "" {
		return r.cfg.Paths.LogFile
	}
	return filepath.Join(r.DataDir(), "locrank.log")
}
