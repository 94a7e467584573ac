package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/locrank/internal/cmd"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err, "Configuration should load without error")
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoggerInitialization(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: filepath.Join(t.TempDir(), "locrank.log"),
		NoColor: logging.NoColorFor(cfg.Logging.Color),
	})
	assert.NotNil(t, log, "Logger should not be nil")
}

func TestCommandExecution(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	log := zerolog.New(io.Discard)
	rootCmd := cmd.NewRootCmd(cfg, &log, version)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, "locrank version dev\n", out.String())
}
