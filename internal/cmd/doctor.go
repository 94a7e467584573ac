package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/quantmind-br/locrank/internal/fsops"
	"github.com/quantmind-br/locrank/internal/locator"
	"github.com/quantmind-br/locrank/internal/paths"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// selfTestPage must yield exactly one element whose best strategy is its id
const selfTestPage = `<main><button id="doctor-probe" class="btn">Probe</button></main>`

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, storage and the engine",
		Long:  `Check the configuration, data directories, the analysis database and run the locator engine on a probe page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs := afero.NewOsFs()
			resolver := paths.NewResolver(cfg)

			var issues []string
			var warnings []string

			ui.PrintHeader("System Diagnostics")

			// 1. Configuration
			ui.PrintSubheader("Configuration")
			if fsops.Exists(fs, resolver.ConfigFile()) {
				ui.PrintSuccess("Config file: %s", resolver.ConfigFile())
			} else {
				ui.PrintInfo("Config file: not found (using defaults)")
			}
			if err := cfg.Validate(); err != nil {
				ui.PrintError("Config: %v", err)
				issues = append(issues, fmt.Sprintf("Invalid configuration: %v", err))
			} else {
				ui.PrintSuccess("Config: valid (framework %s, %d workers)", cfg.Analysis.Framework, cfg.Analysis.Workers)
			}

			// 2. Directories
			ui.PrintSubheader("Directory Structure")
			dirs := []struct {
				path string
				name string
			}{
				{resolver.DataDir(), "Data directory"},
				{filepath.Dir(resolver.DBFile()), "Database directory"},
				{filepath.Dir(resolver.LogFile()), "Log directory"},
			}
			for _, dir := range dirs {
				if err := checkDirectory(fs, dir.path, fix); err != nil {
					ui.PrintError("%s: %v", dir.name, err)
					issues = append(issues, fmt.Sprintf("Directory not usable: %s", dir.path))
				} else {
					ui.PrintSuccess("%s: %s", dir.name, dir.path)
				}
			}

			// 3. Database
			ui.PrintSubheader("Database")
			database, err := openDatabase(ctx, cfg)
			if err != nil {
				ui.PrintError("Database: NOT ACCESSIBLE")
				issues = append(issues, fmt.Sprintf("Cannot open database: %v", err))
			} else {
				defer database.Close()
				if err := database.Ping(ctx); err != nil {
					ui.PrintError("Database: ping failed: %v", err)
					issues = append(issues, fmt.Sprintf("Database ping failed: %v", err))
				} else {
					ui.PrintSuccess("Database: accessible (%s)", database.Path())
				}

				n, err := database.Count(ctx)
				if err != nil {
					ui.PrintWarning("Cannot count stored analyses: %v", err)
					warnings = append(warnings, "Cannot count stored analyses")
				} else {
					ui.PrintInfo("Stored analyses: %d", n)
				}
			}

			// 4. Engine
			ui.PrintSubheader("Engine")
			if err := probeEngine(log); err != nil {
				ui.PrintError("Engine: %v", err)
				issues = append(issues, fmt.Sprintf("Engine self-test failed: %v", err))
			} else {
				ui.PrintSuccess("Engine: probe page ranked as expected")
			}

			// 5. Environment
			ui.PrintSubheader("Environment")
			for _, name := range []string{"LOCRANK_ANALYSIS_FRAMEWORK", "LOCRANK_LOGGING_LEVEL", "NO_COLOR", "TERM"} {
				if value := os.Getenv(name); value != "" {
					ui.PrintSuccess("%s: %s", name, value)
				} else {
					ui.PrintInfo("%s: not set", name)
				}
			}

			ui.PrintHeader("Summary")
			if len(issues) == 0 {
				ui.PrintSuccess("All critical checks passed!")
			} else {
				ui.PrintError("Found %d issue(s):", len(issues))
				ui.PrintList(issues)
			}
			if len(warnings) > 0 {
				ui.PrintWarning("Found %d warning(s):", len(warnings))
				ui.PrintList(warnings)
			}

			if len(issues) > 0 {
				return fmt.Errorf("system check failed with %d issue(s)", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "create missing directories")

	return cmd
}

// checkDirectory checks that path is a writable directory, creating it when fix is set
func checkDirectory(fs afero.Fs, path string, fix bool) error {
	if !fsops.Exists(fs, path) {
		if !fix {
			return errors.New("does not exist (run with --fix to create)")
		}
		if err := fsops.EnsureDir(fs, path, 0755); err != nil {
			return err
		}
	}

	if !fsops.IsDir(fs, path) {
		return errors.New("not a directory")
	}

	return fsops.CheckWritable(fs, path)
}

// probeEngine runs the full pipeline on a fixed page
func probeEngine(log *zerolog.Logger) error {
	doc, err := dom.ParseString(selfTestPage)
	if err != nil {
		return fmt.Errorf("parse probe: %w", err)
	}

	results, err := locator.New(log).Generate(doc, core.DefaultOptions())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if len(results) != 1 {
		return fmt.Errorf("expected 1 element, got %d", len(results))
	}

	best, ok := results[0].Best()
	if !ok || best.Type != core.StrategyID {
		return fmt.Errorf("expected id strategy first, got %q", best.Type)
	}
	return nil
}
