package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitacp/internal/classify"
	"github.com/temirov/gitacp/internal/status"
)

func TestExpandReturnsOneEntryPerRegularFile(testInstance *testing.T) {
	topLevelPath := testInstance.TempDir()
	directoryPath := filepath.Join(topLevelPath, "newdir")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(directoryPath, "inner"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(directoryPath, "first.txt"), []byte("first"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(directoryPath, "inner", "second.txt"), []byte("second"), 0o644))

	expander := classify.NewDirectoryExpander(classify.NewPathResolver())
	directoryEntry := classify.Entry{
		Code:         status.CodeUntracked,
		AbsolutePath: directoryPath,
		Display:      classify.DisplayPath{Anchor: classify.AnchorWorkingDirectory, Value: "newdir"},
	}

	expandedEntries := expander.Expand(directoryEntry, topLevelPath, topLevelPath, false)

	require.Len(testInstance, expandedEntries, 2)
	expandedPaths := []string{expandedEntries[0].AbsolutePath, expandedEntries[1].AbsolutePath}
	require.ElementsMatch(testInstance, []string{
		filepath.Join(directoryPath, "first.txt"),
		filepath.Join(directoryPath, "inner", "second.txt"),
	}, expandedPaths)
	for _, expandedEntry := range expandedEntries {
		require.Equal(testInstance, status.CodeUntracked, expandedEntry.Code)
		require.Equal(testInstance, classify.AnchorWorkingDirectory, expandedEntry.Display.Anchor)
	}
}

func TestExpandSkipsSymlinks(testInstance *testing.T) {
	topLevelPath := testInstance.TempDir()
	directoryPath := filepath.Join(topLevelPath, "newdir")
	require.NoError(testInstance, os.MkdirAll(directoryPath, 0o755))
	targetFilePath := filepath.Join(topLevelPath, "target.txt")
	require.NoError(testInstance, os.WriteFile(targetFilePath, []byte("target"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(directoryPath, "regular.txt"), []byte("regular"), 0o644))
	require.NoError(testInstance, os.Symlink(targetFilePath, filepath.Join(directoryPath, "link.txt")))

	expander := classify.NewDirectoryExpander(classify.NewPathResolver())
	directoryEntry := classify.Entry{
		Code:         status.CodeUntracked,
		AbsolutePath: directoryPath,
		Display:      classify.DisplayPath{Anchor: classify.AnchorWorkingDirectory, Value: "newdir"},
	}

	expandedEntries := expander.Expand(directoryEntry, topLevelPath, topLevelPath, false)

	require.Len(testInstance, expandedEntries, 1)
	require.Equal(testInstance, filepath.Join(directoryPath, "regular.txt"), expandedEntries[0].AbsolutePath)
}

func TestExpandMissingDirectoryYieldsNoEntries(testInstance *testing.T) {
	topLevelPath := testInstance.TempDir()
	expander := classify.NewDirectoryExpander(classify.NewPathResolver())
	directoryEntry := classify.Entry{
		Code:         status.CodeUntracked,
		AbsolutePath: filepath.Join(topLevelPath, "vanished"),
		Display:      classify.DisplayPath{Anchor: classify.AnchorWorkingDirectory, Value: "vanished"},
	}

	expandedEntries := expander.Expand(directoryEntry, topLevelPath, topLevelPath, false)

	require.Empty(testInstance, expandedEntries)
}
