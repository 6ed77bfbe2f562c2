package stage

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitacp/internal/execshell"
	"github.com/temirov/gitacp/internal/gitrepo"
	"github.com/temirov/gitacp/internal/ignore"
	"github.com/temirov/gitacp/internal/ui"
	flagutils "github.com/temirov/gitacp/internal/utils/flags"
	pathutils "github.com/temirov/gitacp/internal/utils/path"
)

const (
	commandUseConstant                    = "gitacp [commit-message]"
	commandShortDescriptionConstant       = "Stage, commit, and push working tree changes in one step"
	commandLongDescriptionConstant        = "gitacp partitions git status output into files to stage and files to exclude, expands new directories into their contained files, merges explicit tokens with per-repository auto-ignore configuration, then stages, commits, and pushes the result."
	commandExecutionErrorTemplateConstant = "staging failed: %w"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Print the partition and planned actions without executing anything"
	flagListNameConstant                  = "list"
	flagListDescriptionConstant           = "Print the partition only"
	flagRelativePathsNameConstant         = "relative-paths"
	flagRelativePathsDescriptionConstant  = "Render every path relative to the working directory"
	flagNoIgnoreNameConstant              = "no-ignore"
	flagNoIgnoreDescriptionConstant       = "Skip the auto-ignore configuration"
	flagNoPushNameConstant                = "no-push"
	flagNoPushDescriptionConstant         = "Stage and commit without pushing"
	flagFilesNameConstant                 = "files"
	flagFilesDescriptionConstant          = "Explicit paths to stage; absent means every non-excluded change"
	flagExcludeNameConstant               = "exclude"
	flagExcludeDescriptionConstant        = "Paths to exclude from staging"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Remote to push to"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the merged command configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-oriented command event output is enabled.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the Cobra command for the staging pipeline.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitService                   GitService
	PatternLoader                PatternLoader
	Presenter                    PlanPresenter
	WorkingDirectory             string

	dryRunFlagValue        bool
	listFlagValue          bool
	relativePathsFlagValue bool
	noIgnoreFlagValue      bool
	noPushFlagValue        bool
}

// Build constructs the staging command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flagutils.AddToggleFlag(command.Flags(), &builder.dryRunFlagValue, flagDryRunNameConstant, "", false, flagDryRunDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &builder.listFlagValue, flagListNameConstant, "", false, flagListDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &builder.relativePathsFlagValue, flagRelativePathsNameConstant, "", false, flagRelativePathsDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &builder.noIgnoreFlagValue, flagNoIgnoreNameConstant, "", false, flagNoIgnoreDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &builder.noPushFlagValue, flagNoPushNameConstant, "", false, flagNoPushDescriptionConstant)
	command.Flags().StringSlice(flagFilesNameConstant, nil, flagFilesDescriptionConstant)
	command.Flags().StringSlice(flagExcludeNameConstant, nil, flagExcludeDescriptionConstant)
	command.Flags().String(flagRemoteNameConstant, "", flagRemoteDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.buildRunOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	gitService, gitServiceError := builder.resolveGitService(logger)
	if gitServiceError != nil {
		return gitServiceError
	}

	service := NewService(ServiceDependencies{
		Logger:        logger,
		GitService:    gitService,
		PatternLoader: builder.resolvePatternLoader(),
		Presenter:     builder.resolvePresenter(command),
	})

	runError := service.Run(command.Context(), options)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) buildRunOptions(command *cobra.Command, arguments []string) (RunOptions, error) {
	configuration := builder.resolveConfiguration().sanitize()
	tokenSanitizer := pathutils.NewTokenSanitizer()

	includeTokens, _ := command.Flags().GetStringSlice(flagFilesNameConstant)
	includeTokens = tokenSanitizer.Sanitize(includeTokens)

	excludeTokens, _ := command.Flags().GetStringSlice(flagExcludeNameConstant)
	excludeTokens = tokenSanitizer.Sanitize(append(excludeTokens, configuration.ExcludeTokens...))

	remoteName := configuration.RemoteName
	if command.Flags().Changed(flagRemoteNameConstant) {
		flagRemoteValue, _ := command.Flags().GetString(flagRemoteNameConstant)
		remoteName = strings.TrimSpace(flagRemoteValue)
	}
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	commitMessage := configuration.CommitMessage
	if len(commitMessage) == 0 {
		commitMessage = defaultCommitMessageConstant
	}
	commitMessageExplicit := false
	if len(arguments) > 0 && len(strings.TrimSpace(arguments[0])) > 0 {
		commitMessage = strings.TrimSpace(arguments[0])
		commitMessageExplicit = true
	}

	workingDirectory := builder.WorkingDirectory
	if len(workingDirectory) == 0 {
		resolvedWorkingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return RunOptions{}, workingDirectoryError
		}
		workingDirectory = resolvedWorkingDirectory
	}

	options := RunOptions{
		WorkingDirectory:      workingDirectory,
		CommitMessage:         commitMessage,
		CommitMessageExplicit: commitMessageExplicit,
		RemoteName:            remoteName,
		DryRun:                builder.dryRunFlagValue || configuration.DryRun,
		ListOnly:              builder.listFlagValue || configuration.ListOnly,
		RelativePaths:         builder.relativePathsFlagValue || configuration.RelativePaths,
		SkipIgnore:            builder.noIgnoreFlagValue || configuration.SkipIgnore,
		SkipPush:              builder.noPushFlagValue || configuration.SkipPush,
		IncludeTokens:         includeTokens,
		IncludeEverything:     len(includeTokens) == 0,
		ExcludeTokens:         excludeTokens,
		RepositoryOverrides:   DecodeRepositoryOverrides(configuration.Repositories),
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitService(logger *zap.Logger) (GitService, error) {
	if builder.GitService != nil {
		return builder.GitService, nil
	}

	commandRunner := execshell.NewOSCommandRunner()

	var shellExecutor *execshell.ShellExecutor
	var executorError error
	if builder.humanReadableLoggingEnabled() {
		shellExecutor, executorError = execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		shellExecutor, executorError = execshell.NewShellExecutor(logger, commandRunner)
	}
	if executorError != nil {
		return nil, executorError
	}

	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolvePatternLoader() PatternLoader {
	if builder.PatternLoader != nil {
		return builder.PatternLoader
	}
	return ignore.NewLoader("")
}

func (builder *CommandBuilder) resolvePresenter(command *cobra.Command) PlanPresenter {
	if builder.Presenter != nil {
		return builder.Presenter
	}
	return ui.NewPlanPresenter(command.OutOrStdout())
}
