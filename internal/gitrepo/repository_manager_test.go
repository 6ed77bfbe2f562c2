package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitacp/internal/execshell"
	"github.com/temirov/gitacp/internal/gitrepo"
)

const (
	testWorkingDirectoryConstant = "/workspace/repo"
	testRemoteNameConstant       = "origin"
	testCommitMessageConstant    = "Automatic commit"
)

type stubGitExecutor struct {
	standardOutput   string
	executionError   error
	recordedCommands []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	return execshell.ExecutionResult{StandardOutput: executor.standardOutput}, nil
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.Nil(testInstance, manager)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrCommandExecutorNotConfigured)
}

func TestCheckIsRepository(testInstance *testing.T) {
	testCases := []struct {
		name           string
		standardOutput string
		executionError error
		expected       bool
	}{
		{name: "inside_work_tree", standardOutput: "true\n", expected: true},
		{name: "outside_work_tree", standardOutput: "false\n", expected: false},
		{name: "execution_error", executionError: errors.New("git missing"), expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{standardOutput: testCase.standardOutput, executionError: testCase.executionError}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			isRepository := manager.CheckIsRepository(context.Background(), testWorkingDirectoryConstant)
			require.Equal(testInstance, testCase.expected, isRepository)
			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, []string{"rev-parse", "--is-inside-work-tree"}, executor.recordedCommands[0].Arguments)
			require.Equal(testInstance, testWorkingDirectoryConstant, executor.recordedCommands[0].WorkingDirectory)
		})
	}
}

func TestResolveTopLevelTrimsOutput(testInstance *testing.T) {
	executor := &stubGitExecutor{standardOutput: "/workspace/repo\n"}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	topLevelPath, resolveError := manager.ResolveTopLevel(context.Background(), testWorkingDirectoryConstant)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, "/workspace/repo", topLevelPath)
	require.Equal(testInstance, []string{"rev-parse", "--show-toplevel"}, executor.recordedCommands[0].Arguments)
}

func TestListStatusLinesDropsBlankLines(testInstance *testing.T) {
	executor := &stubGitExecutor{standardOutput: "?? notes.md\nM  cmd/main.go\n\n"}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	statusLines, listError := manager.ListStatusLines(context.Background(), testWorkingDirectoryConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"?? notes.md", "M  cmd/main.go"}, statusLines)
	require.Equal(testInstance, []string{"status", "--porcelain"}, executor.recordedCommands[0].Arguments)
}

func TestStageFilesUsesPathSeparator(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	stageError := manager.StageFiles(context.Background(), testWorkingDirectoryConstant, []string{"/workspace/repo/notes.md", "/workspace/repo/cmd/main.go"})
	require.NoError(testInstance, stageError)
	require.Equal(testInstance, []string{"add", "--", "/workspace/repo/notes.md", "/workspace/repo/cmd/main.go"}, executor.recordedCommands[0].Arguments)
}

func TestStageFilesWithoutPathsIsNoOp(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	stageError := manager.StageFiles(context.Background(), testWorkingDirectoryConstant, nil)
	require.NoError(testInstance, stageError)
	require.Empty(testInstance, executor.recordedCommands)
}

func TestCreateCommitPassesMessage(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	commitError := manager.CreateCommit(context.Background(), testWorkingDirectoryConstant, testCommitMessageConstant)
	require.NoError(testInstance, commitError)
	require.Equal(testInstance, []string{"commit", "-m", testCommitMessageConstant}, executor.recordedCommands[0].Arguments)
}

func TestPushCurrentBranchRemoteSelection(testInstance *testing.T) {
	testCases := []struct {
		name              string
		remoteName        string
		expectedArguments []string
	}{
		{name: "named_remote", remoteName: testRemoteNameConstant, expectedArguments: []string{"push", testRemoteNameConstant}},
		{name: "configured_upstream", remoteName: "", expectedArguments: []string{"push"}},
		{name: "whitespace_remote", remoteName: "   ", expectedArguments: []string{"push"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			pushError := manager.PushCurrentBranch(context.Background(), testWorkingDirectoryConstant, testCase.remoteName)
			require.NoError(testInstance, pushError)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedCommands[0].Arguments)
		})
	}
}
