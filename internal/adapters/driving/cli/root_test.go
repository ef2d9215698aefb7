package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/logger"
)

// executeWithBootstrap runs the root command through a bootstrap.
func executeWithBootstrap(t *testing.T, b Bootstrap, args ...string) (string, error) {
	t.Helper()

	SetBootstrap(b)
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		SetBootstrap(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		SetServices(nil)
		resetFlags(rootCmd)
	})

	err := Execute(t.Context())
	return out.String(), err
}

// ==================== Command Structure Tests ====================

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"analyze", "watch", "serve", "goals", "history", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "log-level", "ephemeral", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestGoalsCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range goalsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "remove", "activate", "deactivate"}, names)
}

// ==================== Bootstrap Tests ====================

func TestSetup_BootstrapInstallsServices(t *testing.T) {
	var gotOpts Options
	released := false
	coord := &mockCoordinator{}

	_, err := executeWithBootstrap(t, func(opts Options) (*Services, func(), error) {
		gotOpts = opts
		return &Services{Coordinator: coord}, func() { released = true }, nil
	}, "--ephemeral", "analyze", "--json", "-")

	require.NoError(t, err)
	assert.True(t, gotOpts.Ephemeral)
	assert.True(t, released)
	assert.Len(t, coord.texts, 1)
}

func TestSetup_BootstrapError(t *testing.T) {
	_, err := executeWithBootstrap(t, func(Options) (*Services, func(), error) {
		return nil, nil, errors.New("database locked")
	}, "history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestSetServices_Nil(t *testing.T) {
	SetServices(&Services{Coordinator: &mockCoordinator{}})
	SetServices(nil)
	assert.Nil(t, coordinator)
	assert.Nil(t, goalService)
}

// ==================== Log Level Tests ====================

func TestSetup_LogLevel(t *testing.T) {
	t.Cleanup(func() { logger.SetLevel(logger.LevelWarn) })

	_, err := execute(t, &Services{}, "", "--log-level", "error", "version")

	require.NoError(t, err)
	assert.Equal(t, logger.LevelError, logger.CurrentLevel())
}

func TestSetup_VerboseOverridesLogLevel(t *testing.T) {
	t.Cleanup(func() { logger.SetLevel(logger.LevelWarn) })

	_, err := execute(t, &Services{}, "", "--log-level", "error", "-v", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetup_UnknownLogLevel(t *testing.T) {
	_, err := execute(t, &Services{}, "", "--log-level", "chatty", "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

// ==================== Colour Tests ====================

func TestUseColor_NonTerminal(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(new(bytes.Buffer))
	assert.False(t, useColor(cmd))
}

func TestUseColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor(&cobra.Command{}))
}
