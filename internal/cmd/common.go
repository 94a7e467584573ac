package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/quantmind-br/locrank/internal/security"
	"github.com/spf13/cobra"
)

// exitError carries the process exit code for a command failure
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return core.ExitSuccess
	}

	var exitErr *exitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, context.Canceled):
		return core.ExitInterrupted
	case core.IsDocumentError(err):
		return core.ExitAnalysis
	case errors.Is(err, db.ErrNotFound), errors.Is(err, db.ErrAmbiguous):
		return core.ExitInvalidArgs
	default:
		return core.ExitGeneral
	}
}

// openDatabase opens the analysis store, creating its directory when needed
func openDatabase(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if dir := filepath.Dir(cfg.Paths.DBFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, withExitCode(core.ExitDatabase, fmt.Errorf("create database directory: %w", err))
		}
	}

	database, err := db.New(ctx, cfg.Paths.DBFile)
	if err != nil {
		return nil, withExitCode(core.ExitDatabase, fmt.Errorf("open database: %w", err))
	}
	return database, nil
}

// analysisFlags are the engine options shared by analyze and batch
type analysisFlags struct {
	framework     string
	accessibility bool
	noCache       bool
	jsonOutput    bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.framework, "framework", "f", "", "selector syntax: selenium, playwright, cypress (default from config)")
	cmd.Flags().BoolVar(&f.accessibility, "accessibility", true, "also generate aria-label and role strategies")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "ignore stored results for identical input")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "output in JSON format")
}

// options merges flags over the configured analysis defaults
func (f *analysisFlags) options(cmd *cobra.Command, cfg *config.Config) (core.Options, error) {
	opts := core.Options{
		Framework:            core.Framework(cfg.Analysis.Framework),
		IncludeAccessibility: cfg.Analysis.IncludeAccessibility,
	}

	if f.framework != "" {
		fw, err := security.ValidateFramework(f.framework)
		if err != nil {
			return core.Options{}, withExitCode(core.ExitInvalidArgs, err)
		}
		opts.Framework = fw
	} else if opts.Framework != "" {
		fw, err := core.ParseFramework(string(opts.Framework))
		if err != nil {
			return core.Options{}, withExitCode(core.ExitInvalidArgs, fmt.Errorf("analysis.framework: %w", err))
		}
		opts.Framework = fw
	} else {
		opts.Framework = core.FrameworkSelenium
	}

	if cmd.Flags().Changed("accessibility") {
		opts.IncludeAccessibility = f.accessibility
	}

	return opts, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
