package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDirectory(t *testing.T) {
	t.Parallel()

	t.Run("directory exists", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/data", 0755))
		assert.NoError(t, checkDirectory(fs, "/data", false))
	})

	t.Run("missing without fix", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		err := checkDirectory(fs, "/missing", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--fix")
	})

	t.Run("missing with fix", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, checkDirectory(fs, "/create/me", true))
		ok, err := afero.DirExists(fs, "/create/me")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("path is a file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/file.txt", []byte("x"), 0644))
		err := checkDirectory(fs, "/file.txt", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestProbeEngine(t *testing.T) {
	t.Parallel()
	assert.NoError(t, probeEngine(discardLogger()))
}

func TestNewDoctorCmd(t *testing.T) {
	t.Parallel()

	cmd := NewDoctorCmd(testConfig(t), discardLogger())
	assert.Equal(t, "doctor", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("fix"))
}

func TestDoctorCmd_FixCreatesDirectories(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	base := filepath.Join(cfg.Paths.DataDir, "nested")
	cfg.Paths.DataDir = base
	cfg.Paths.DBFile = filepath.Join(base, "db", "analyses.db")
	cfg.Paths.LogFile = filepath.Join(base, "logs", "locrank.log")

	_, err := execute(t, NewDoctorCmd(cfg, discardLogger()), "--fix")
	require.NoError(t, err)

	for _, dir := range []string{base, filepath.Dir(cfg.Paths.DBFile), filepath.Dir(cfg.Paths.LogFile)} {
		ok, err := afero.DirExists(afero.NewOsFs(), dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}
}

func TestDoctorCmd_InvalidConfigFails(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Analysis.Framework = "puppeteer"

	_, err := execute(t, NewDoctorCmd(cfg, discardLogger()))
	assert.Error(t, err)
}
