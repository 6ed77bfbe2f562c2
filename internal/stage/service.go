package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/gitacp/internal/classify"
	"github.com/temirov/gitacp/internal/ignore"
	"github.com/temirov/gitacp/internal/status"
)

const (
	notARepositoryErrorTemplateConstant    = "%s is not inside a git repository"
	statusParseWarningMessageConstant      = "skipping unparseable status line"
	logFieldParseErrorConstant             = "parse_error"
	logFieldRepositoryConstant             = "repository"
	logFieldEntryCountConstant             = "entry_count"
	logFieldAddedCountConstant             = "added_count"
	logFieldExcludedCountConstant          = "excluded_count"
	classificationCompletedMessageConstant = "classification completed"
	plannedStageTemplateConstant           = "Would stage %d file(s)"
	plannedCommitTemplateConstant          = "Would commit with message %q"
	plannedPushTemplateConstant            = "Would push to %s"
	plannedPushUpstreamConstant            = "Would push to the configured upstream"
)

// NotARepositoryError indicates the working directory lies outside any git work tree.
type NotARepositoryError struct {
	Path string
}

// Error implements the error interface for NotARepositoryError.
func (repositoryError NotARepositoryError) Error() string {
	return fmt.Sprintf(notARepositoryErrorTemplateConstant, repositoryError.Path)
}

// GitService exposes the repository operations the pipeline requires.
type GitService interface {
	CheckIsRepository(executionContext context.Context, workingDirectory string) bool
	ResolveTopLevel(executionContext context.Context, workingDirectory string) (string, error)
	ListStatusLines(executionContext context.Context, workingDirectory string) ([]string, error)
	StageFiles(executionContext context.Context, workingDirectory string, filePaths []string) error
	CreateCommit(executionContext context.Context, workingDirectory string, commitMessage string) error
	PushCurrentBranch(executionContext context.Context, workingDirectory string, remoteName string) error
}

// PatternLoader supplies auto-exclude patterns for a repository.
type PatternLoader interface {
	Load(topLevelPath string, skipConfiguration bool) []ignore.Pattern
}

// PlanPresenter renders the partition and planned actions for CLI users.
type PlanPresenter interface {
	ShowPartition(partition classify.Result)
	ShowNoChanges()
	ShowPlannedAction(description string)
}

// RunOptions carries one invocation's merged flag and configuration values.
type RunOptions struct {
	WorkingDirectory      string
	CommitMessage         string
	CommitMessageExplicit bool
	RemoteName            string
	DryRun                bool
	ListOnly              bool
	RelativePaths         bool
	SkipIgnore            bool
	SkipPush              bool
	IncludeTokens         []string
	IncludeEverything     bool
	ExcludeTokens         []string
	RepositoryOverrides   map[string]RepositoryOverride
}

// ServiceDependencies bundles collaborators for Service construction.
type ServiceDependencies struct {
	Logger        *zap.Logger
	GitService    GitService
	PatternLoader PatternLoader
	Presenter     PlanPresenter
}

// Service orchestrates the staging pipeline for one repository.
type Service struct {
	logger        *zap.Logger
	gitService    GitService
	patternLoader PatternLoader
	presenter     PlanPresenter
	resolver      classify.PathResolver
	expander      classify.DirectoryExpander
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) *Service {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := classify.NewPathResolver()
	return &Service{
		logger:        logger,
		gitService:    dependencies.GitService,
		patternLoader: dependencies.PatternLoader,
		presenter:     dependencies.Presenter,
		resolver:      resolver,
		expander:      classify.NewDirectoryExpander(resolver),
	}
}

// Run executes the pipeline: status, resolve, expand, classify, present, and
// unless a preview mode is active, stage, commit, and push with a
// short-circuit abort on the first failing action.
func (service *Service) Run(executionContext context.Context, options RunOptions) error {
	if !service.gitService.CheckIsRepository(executionContext, options.WorkingDirectory) {
		return NotARepositoryError{Path: options.WorkingDirectory}
	}

	topLevelPath, topLevelError := service.gitService.ResolveTopLevel(executionContext, options.WorkingDirectory)
	if topLevelError != nil {
		return topLevelError
	}

	options = service.applyRepositoryOverride(options, topLevelPath)

	statusLines, statusError := service.gitService.ListStatusLines(executionContext, options.WorkingDirectory)
	if statusError != nil {
		return statusError
	}

	changeLines, parseErrors := status.ParseLines(statusLines)
	for _, parseError := range parseErrors {
		service.logger.Warn(statusParseWarningMessageConstant, zap.String(logFieldParseErrorConstant, parseError.Error()))
	}

	entries := service.buildEntries(changeLines, topLevelPath, options.WorkingDirectory, options.RelativePaths)
	if len(entries) == 0 {
		service.presenter.ShowNoChanges()
		return nil
	}

	excludeTokens := append([]string{}, options.ExcludeTokens...)
	for _, pattern := range service.patternLoader.Load(topLevelPath, options.SkipIgnore) {
		excludeTokens = append(excludeTokens, string(pattern))
	}

	includeSelection := classify.IncludeTokens(options.IncludeTokens)
	if options.IncludeEverything {
		includeSelection = classify.IncludeEverything()
	}

	classifier := classify.NewClassifier(topLevelPath, options.WorkingDirectory)
	partition := classifier.Classify(entries, includeSelection, excludeTokens)

	service.logger.Debug(
		classificationCompletedMessageConstant,
		zap.String(logFieldRepositoryConstant, topLevelPath),
		zap.Int(logFieldEntryCountConstant, len(entries)),
		zap.Int(logFieldAddedCountConstant, len(partition.Added)),
		zap.Int(logFieldExcludedCountConstant, len(partition.Excluded)),
	)

	service.presenter.ShowPartition(partition)

	if options.ListOnly {
		return nil
	}

	if options.DryRun {
		service.presentPlannedActions(partition, options)
		return nil
	}

	if len(partition.Added) == 0 {
		service.presenter.ShowNoChanges()
		return nil
	}

	stagedPaths := make([]string, 0, len(partition.Added))
	for _, addedEntry := range partition.Added {
		stagedPaths = append(stagedPaths, addedEntry.AbsolutePath)
	}

	if stageError := service.gitService.StageFiles(executionContext, options.WorkingDirectory, stagedPaths); stageError != nil {
		return stageError
	}

	if commitError := service.gitService.CreateCommit(executionContext, options.WorkingDirectory, options.CommitMessage); commitError != nil {
		return commitError
	}

	if options.SkipPush {
		return nil
	}

	return service.gitService.PushCurrentBranch(executionContext, options.WorkingDirectory, options.RemoteName)
}

// applyRepositoryOverride merges the per-repository override for topLevelPath
// into the invocation options. An explicit positional commit message always
// beats the override.
func (service *Service) applyRepositoryOverride(options RunOptions, topLevelPath string) RunOptions {
	override, overrideExists := OverrideForRepository(options.RepositoryOverrides, topLevelPath)
	if !overrideExists {
		return options
	}

	if override.SkipPush {
		options.SkipPush = true
	}
	if len(override.ExcludeTokens) > 0 {
		options.ExcludeTokens = append(append([]string{}, options.ExcludeTokens...), override.ExcludeTokens...)
	}
	if len(override.CommitMessage) > 0 && !options.CommitMessageExplicit {
		options.CommitMessage = override.CommitMessage
	}
	return options
}

// buildEntries resolves each parsed status line into classification entries,
// expanding directory-shaped lines into per-file entries. Paths that fail to
// stat (deleted files) stay as single file entries.
func (service *Service) buildEntries(changeLines []status.ChangeLine, topLevelPath string, workingDirectory string, relativePathsMode bool) []classify.Entry {
	entries := make([]classify.Entry, 0, len(changeLines))
	for _, changeLine := range changeLines {
		absolutePath := filepath.Join(topLevelPath, filepath.FromSlash(changeLine.Path))
		entry := classify.Entry{
			Code:         changeLine.Code,
			AbsolutePath: absolutePath,
			Display:      service.resolver.Resolve(changeLine.Path, topLevelPath, workingDirectory, relativePathsMode),
		}

		pathInfo, statError := os.Stat(absolutePath)
		if statError == nil && pathInfo.IsDir() {
			entries = append(entries, service.expander.Expand(entry, topLevelPath, workingDirectory, relativePathsMode)...)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (service *Service) presentPlannedActions(partition classify.Result, options RunOptions) {
	if len(partition.Added) == 0 {
		service.presenter.ShowNoChanges()
		return
	}

	service.presenter.ShowPlannedAction(fmt.Sprintf(plannedStageTemplateConstant, len(partition.Added)))
	service.presenter.ShowPlannedAction(fmt.Sprintf(plannedCommitTemplateConstant, options.CommitMessage))
	if options.SkipPush {
		return
	}
	if len(options.RemoteName) > 0 {
		service.presenter.ShowPlannedAction(fmt.Sprintf(plannedPushTemplateConstant, options.RemoteName))
		return
	}
	service.presenter.ShowPlannedAction(plannedPushUpstreamConstant)
}
