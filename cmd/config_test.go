package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	config "github.com/inference-gateway/keybind/config"
	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// useTempConfig points the package viper at a fresh config file for one test
func useTempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.ConfigDirName, config.ConfigFileName)
	if content != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	previous := V
	V = viper.New()
	require.NoError(t, setupViper(V, path))
	t.Cleanup(func() { V = previous })

	return path
}

// assertNoLocalConfig fails when a command wrote the default config into the working directory
func assertNoLocalConfig(t *testing.T) {
	t.Helper()

	_, err := os.Stat(config.DefaultConfigPath())
	assert.True(t, os.IsNotExist(err), "unexpected config file at %s", config.DefaultConfigPath())
}

func runConfigWith(t *testing.T, run func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()

	c := &cobra.Command{Use: "config", RunE: run, SilenceUsage: true, SilenceErrors: true}
	c.Flags().Bool("overwrite", false, "")

	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetArgs(args)
	err := c.Execute()
	return buf.String(), err
}

func TestInitializeConfig(t *testing.T) {
	path := useTempConfig(t, "")

	out, err := runConfigWith(t, initializeConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully created")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = runConfigWith(t, initializeConfig)
	assert.ErrorContains(t, err, "already exists")

	_, err = runConfigWith(t, initializeConfig, "--overwrite")
	assert.NoError(t, err)
}

func TestSetConfigValue(t *testing.T) {
	path := useTempConfig(t, "bindings:\n  source: wbmm\n")

	out, err := runConfigWith(t, setConfigValue, "motion.subword_boundary", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "motion.subword_boundary set to false")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Motion.SubwordBoundary)
	assert.Equal(t, "wbmm", cfg.Bindings.Source)
	assert.Equal(t, path, V.ConfigFileUsed())
	assertNoLocalConfig(t)
}

func TestSetConfigValue_UnknownKey(t *testing.T) {
	useTempConfig(t, "")

	_, err := runConfigWith(t, setConfigValue, "gateway.url", "http://localhost")

	assert.ErrorContains(t, err, "unknown configuration key")
}

func TestToggleAutoSelect(t *testing.T) {
	path := useTempConfig(t, "motion:\n  auto_select: false\n")

	out, err := runConfigWith(t, toggleAutoSelect)
	require.NoError(t, err)
	assert.Contains(t, out, "motion.auto_select set to true")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Motion.AutoSelect)
	assertNoLocalConfig(t)

	out, err = runConfigWith(t, toggleAutoSelect)
	require.NoError(t, err)
	assert.Contains(t, out, "motion.auto_select set to false")
}
