package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/oceanus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/oceanus-cli/internal/core/services"
)

// useTestServices points the root command's collaborators at a temp
// directory so PersistentPreRunE never touches the user's home.
func useTestServices(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	cs, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	ps, err := file.NewPromptStore(dir)
	require.NoError(t, err)

	origConfig, origSettings, origPrompts := configStore, settingsService, promptStore
	configStore = cs
	settingsService = services.NewSettingsService(cs)
	promptStore = ps
	t.Cleanup(func() {
		configStore, settingsService, promptStore = origConfig, origSettings, origPrompts
	})
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	useTestServices(t)

	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "oceanus version test-version-1.0.0")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	useTestServices(t)

	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "oceanus version dev")
}
