package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const loginPage = `<!DOCTYPE html>
<html><body>
<form id="login" action="/session">
  <input id="email" name="email" type="email">
  <button id="submit-btn" class="btn btn-primary">Login</button>
</form>
<a href="/help">Need help?</a>
</body></html>`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Paths: config.PathsConfig{
			DataDir: dir,
			DBFile:  filepath.Join(dir, "analyses.db"),
			LogFile: filepath.Join(dir, "locrank.log"),
		},
		Analysis: config.AnalysisConfig{
			Framework:            "selenium",
			IncludeAccessibility: true,
			MaxHTMLBytes:         config.DefaultMaxHTMLBytes,
			Workers:              2,
		},
		Cache: config.CacheConfig{Enabled: true, TTL: time.Hour},
	}
}

func discardLogger() *zerolog.Logger {
	log := zerolog.New(io.Discard)
	return &log
}

func writePage(t *testing.T, dir, name, markup string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(markup), 0644))
	return path
}

// execute runs cmd with args and returns what it wrote to its output
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func seedAnalysis(t *testing.T, cfg *config.Config, a *db.Analysis) {
	t.Helper()
	ctx := context.Background()
	database, err := db.New(ctx, cfg.Paths.DBFile)
	require.NoError(t, err)
	defer database.Close()

	if a.CacheKey == "" {
		a.CacheKey = "key-" + a.AnalysisID
	}
	if a.Framework == "" {
		a.Framework = core.FrameworkSelenium
	}
	require.NoError(t, database.Create(ctx, a))
}

func countAnalyses(t *testing.T, cfg *config.Config) int {
	t.Helper()
	ctx := context.Background()
	database, err := db.New(ctx, cfg.Paths.DBFile)
	require.NoError(t, err)
	defer database.Close()

	n, err := database.Count(ctx)
	require.NoError(t, err)
	return n
}
