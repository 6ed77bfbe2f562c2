package classify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitacp/internal/classify"
	"github.com/temirov/gitacp/internal/status"
)

func fileEntry(absolutePath string, displayValue string) classify.Entry {
	return classify.Entry{
		Code:         status.CodeUntracked,
		AbsolutePath: absolutePath,
		Display:      classify.DisplayPath{Anchor: classify.AnchorWorkingDirectory, Value: displayValue},
	}
}

func TestClassifyEverythingSentinelAddsAllNonExcluded(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/notes.md", "notes.md"),
		fileEntry("/repo/secrets.env", "secrets.env"),
		fileEntry("/repo/cmd/main.go", "cmd/main.go"),
	}

	result := classifier.Classify(entries, classify.IncludeEverything(), []string{"secrets.env"})

	require.Len(testInstance, result.Added, 2)
	require.Len(testInstance, result.Excluded, 1)
	require.Equal(testInstance, "/repo/secrets.env", result.Excluded[0].AbsolutePath)
}

func TestClassifyExplicitIncludeDropsUnmatchedEntries(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/notes.md", "notes.md"),
		fileEntry("/repo/cmd/main.go", "cmd/main.go"),
		fileEntry("/repo/other.txt", "other.txt"),
	}

	result := classifier.Classify(entries, classify.IncludeTokens([]string{"notes.md"}), nil)

	require.Len(testInstance, result.Added, 1)
	require.Equal(testInstance, "/repo/notes.md", result.Added[0].AbsolutePath)
	require.Empty(testInstance, result.Excluded)
}

func TestClassifyExcludeBeatsInclude(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/notes.md", "notes.md"),
	}

	result := classifier.Classify(entries, classify.IncludeTokens([]string{"notes.md"}), []string{"notes.md"})

	require.Empty(testInstance, result.Added)
	require.Len(testInstance, result.Excluded, 1)
}

func TestClassifyDirectoryTokenCoversContainedFiles(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/vendor/lib.go", "vendor/lib.go"),
		fileEntry("/repo/vendor/deep/other.go", "vendor/deep/other.go"),
		fileEntry("/repo/vendored.go", "vendored.go"),
	}

	result := classifier.Classify(entries, classify.IncludeEverything(), []string{"vendor"})

	require.Len(testInstance, result.Added, 1)
	require.Equal(testInstance, "/repo/vendored.go", result.Added[0].AbsolutePath)
	require.Len(testInstance, result.Excluded, 2)
}

func TestClassifyTokenFormsNormalizeToSamePath(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo/sub")
	entries := []classify.Entry{
		{
			Code:         status.CodeModified,
			AbsolutePath: "/repo/sub/file.go",
			Display:      classify.DisplayPath{Anchor: classify.AnchorWorkingDirectory, Value: "file.go"},
		},
	}

	tokenForms := []string{
		"file.go",
		"/repo/sub/file.go",
		":/:sub/file.go",
	}

	for _, tokenForm := range tokenForms {
		result := classifier.Classify(entries, classify.IncludeTokens([]string{tokenForm}), nil)
		require.Len(testInstance, result.Added, 1, "token form %q should match", tokenForm)
	}
}

func TestClassifySegmentBoundaryPreventsSiblingPrefixMatch(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/dir2/file.go", "dir2/file.go"),
	}

	result := classifier.Classify(entries, classify.IncludeEverything(), []string{"dir"})

	require.Len(testInstance, result.Added, 1)
	require.Empty(testInstance, result.Excluded)
}

func TestClassifyPartitionPreservesOrderAndDisjointness(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/a.go", "a.go"),
		fileEntry("/repo/b.go", "b.go"),
		fileEntry("/repo/c.go", "c.go"),
		fileEntry("/repo/d.go", "d.go"),
	}

	result := classifier.Classify(entries, classify.IncludeEverything(), []string{"b.go", "d.go"})

	require.Equal(testInstance, []string{"/repo/a.go", "/repo/c.go"}, []string{result.Added[0].AbsolutePath, result.Added[1].AbsolutePath})
	require.Equal(testInstance, []string{"/repo/b.go", "/repo/d.go"}, []string{result.Excluded[0].AbsolutePath, result.Excluded[1].AbsolutePath})

	seenPaths := map[string]struct{}{}
	for _, keptEntry := range append(append([]classify.Entry{}, result.Added...), result.Excluded...) {
		_, alreadySeen := seenPaths[keptEntry.AbsolutePath]
		require.False(testInstance, alreadySeen)
		seenPaths[keptEntry.AbsolutePath] = struct{}{}
	}
}

func TestClassifyMaxDisplayWidthSpansKeptEntries(testInstance *testing.T) {
	classifier := classify.NewClassifier("/repo", "/repo")
	entries := []classify.Entry{
		fileEntry("/repo/a.go", "a.go"),
		fileEntry("/repo/long/nested/name.go", "long/nested/name.go"),
	}

	result := classifier.Classify(entries, classify.IncludeEverything(), nil)

	require.Equal(testInstance, len("long/nested/name.go"), result.MaxDisplayWidth)
}
