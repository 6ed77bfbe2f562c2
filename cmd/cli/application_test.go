package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewApplicationRegistersPersistentFlags(testInstance *testing.T) {
	application := NewApplication()

	persistentFlagNames := []string{"config", "log-level", "log-format"}
	for _, persistentFlagName := range persistentFlagNames {
		require.NotNil(testInstance, application.rootCommand.PersistentFlags().Lookup(persistentFlagName))
	}

	stageFlagNames := []string{"dry-run", "list", "relative-paths", "no-ignore", "no-push", "files", "exclude", "remote"}
	for _, stageFlagName := range stageFlagNames {
		require.NotNil(testInstance, application.rootCommand.Flags().Lookup(stageFlagName))
	}
}

func TestInitializeConfigurationUsesEmbeddedDefaults(testInstance *testing.T) {
	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(testInstance, initializationError)
	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "origin", application.configuration.Tools.Stage.RemoteName)
	require.Equal(testInstance, "Automatic commit", application.configuration.Tools.Stage.CommitMessage)
	require.NotNil(testInstance, application.logger)
}

func TestInitializeConfigurationReadsConfigurationFile(testInstance *testing.T) {
	configurationContent := "common:\n  log_level: debug\ntools:\n  stage:\n    remote: upstream\n    no_push: true\n"
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o644))

	application := NewApplication()
	application.configurationFilePath = configurationFilePath

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(testInstance, initializationError)
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "upstream", application.configuration.Tools.Stage.RemoteName)
	require.True(testInstance, application.configuration.Tools.Stage.SkipPush)
	require.Equal(testInstance, configurationFilePath, application.configurationMetadata.ConfigFileUsed)
}

func TestInitializeConfigurationFlagOverridesBeatConfigurationFile(testInstance *testing.T) {
	configurationContent := "common:\n  log_level: warn\n"
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o644))

	application := NewApplication()
	application.configurationFilePath = configurationFilePath
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set("log-level", "debug"))

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(testInstance, initializationError)
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
}

func TestInitializeConfigurationAppliesEnvironmentOverrides(testInstance *testing.T) {
	testInstance.Setenv("GITACP_TOOLS_STAGE_REMOTE", "mirror")

	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(testInstance, initializationError)
	require.Equal(testInstance, "mirror", application.configuration.Tools.Stage.RemoteName)
}

func TestInitializeConfigurationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set("log-level", "verbose"))

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.Error(testInstance, initializationError)
	require.Contains(testInstance, initializationError.Error(), "unable to create logger")
}
