package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitacp/internal/execshell"
)

const (
	gitRevParseSubcommandConstant     = "rev-parse"
	gitIsInsideWorkTreeFlagConstant   = "--is-inside-work-tree"
	gitShowTopLevelFlagConstant       = "--show-toplevel"
	gitStatusSubcommandConstant       = "status"
	gitStatusPorcelainFlagConstant    = "--porcelain"
	gitAddSubcommandConstant          = "add"
	gitPathSeparatorArgumentConstant  = "--"
	gitCommitSubcommandConstant       = "commit"
	gitCommitMessageFlagConstant      = "-m"
	gitPushSubcommandConstant         = "push"
	gitTrueOutputConstant             = "true"
	statusOutputLineSeparatorConstant = "\n"
	carriageReturnTrimCutsetConstant  = "\r"
)

// ErrCommandExecutorNotConfigured indicates a repository manager was constructed without an executor.
var ErrCommandExecutorNotConfigured = errors.New("command executor not configured")

// CommandExecutor abstracts git invocation for repository operations.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations against one repository working directory.
type RepositoryManager struct {
	executor CommandExecutor
}

// NewRepositoryManager constructs a RepositoryManager after validating dependencies.
func NewRepositoryManager(executor CommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckIsRepository reports whether workingDirectory lies inside a git work tree.
func (manager *RepositoryManager) CheckIsRepository(executionContext context.Context, workingDirectory string) bool {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitIsInsideWorkTreeFlagConstant},
		WorkingDirectory: workingDirectory,
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return false
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant
}

// ResolveTopLevel returns the absolute path of the repository containing workingDirectory.
func (manager *RepositoryManager) ResolveTopLevel(executionContext context.Context, workingDirectory string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowTopLevelFlagConstant},
		WorkingDirectory: workingDirectory,
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ListStatusLines returns the porcelain status lines for the repository at
// workingDirectory, one entry per reported change, blank lines removed.
func (manager *RepositoryManager) ListStatusLines(executionContext context.Context, workingDirectory string) ([]string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: workingDirectory,
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, executionError
	}

	rawLines := strings.Split(executionResult.StandardOutput, statusOutputLineSeparatorConstant)
	statusLines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		trimmedLine := strings.TrimRight(rawLine, carriageReturnTrimCutsetConstant)
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}
		statusLines = append(statusLines, trimmedLine)
	}
	return statusLines, nil
}

// StageFiles stages the provided paths. Paths follow the "--" separator so
// names resembling flags or revisions cannot be misparsed.
func (manager *RepositoryManager) StageFiles(executionContext context.Context, workingDirectory string, filePaths []string) error {
	if len(filePaths) == 0 {
		return nil
	}
	commandArguments := append([]string{gitAddSubcommandConstant, gitPathSeparatorArgumentConstant}, filePaths...)
	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: workingDirectory,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// CreateCommit records a commit with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, workingDirectory string, commitMessage string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: workingDirectory,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// PushCurrentBranch pushes the current branch, to the named remote when one
// is provided and to the configured upstream otherwise.
func (manager *RepositoryManager) PushCurrentBranch(executionContext context.Context, workingDirectory string, remoteName string) error {
	commandArguments := []string{gitPushSubcommandConstant}
	trimmedRemote := strings.TrimSpace(remoteName)
	if len(trimmedRemote) > 0 {
		commandArguments = append(commandArguments, trimmedRemote)
	}
	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: workingDirectory,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}
