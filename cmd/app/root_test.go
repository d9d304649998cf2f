package main

import (
	"io"
	"testing"

	"lastmile/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	cfg := cmd.DefaultConfig()
	root := newRootCommand(&cfg)

	for _, name := range []string{"serve", "migrate"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	cfg := cmd.DefaultConfig()
	root := newRootCommand(&cfg)

	require.NoError(t, root.PersistentFlags().Parse([]string{"--http-port=9191", "--geocoder-max-attempts=3"}))

	assert.Equal(t, "9191", cfg.HTTPPort)
	assert.Equal(t, 3, cfg.GeocoderMaxAttempts)
}

func TestRootCommand_InvalidConfigStopsBeforeConnecting(t *testing.T) {
	cfg := cmd.DefaultConfig()
	root := newRootCommand(&cfg)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"migrate", "--log-level=loud"})

	err := root.Execute()

	require.ErrorContains(t, err, "invalid log level")
}
