package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"smallsh/internal/config"
)

func TestPlainFlagHelpNamesWorkaround(t *testing.T) {
	var opts options
	fs := newFlagSet(&opts)

	flag := fs.Lookup("plain")
	require.NotNil(t, flag)
	require.Contains(t, flag.Usage, "first keystroke")
}

func TestFlagsOverrideConfig(t *testing.T) {
	var opts options
	fs := newFlagSet(&opts)
	require.NoError(t, fs.Parse([]string{"--plain", "--log-level", "debug", "-c", "/tmp/smallsh.yml"}))
	require.Equal(t, "/tmp/smallsh.yml", opts.configFile)

	cfg := &config.Config{LogLevel: "warn", LogFile: "/var/log/smallsh.log"}
	opts.apply(cfg)
	require.True(t, cfg.Plain)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/var/log/smallsh.log", cfg.LogFile)
}
