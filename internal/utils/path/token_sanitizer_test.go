package pathutils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitacp/internal/utils/path"
)

func newHomeExpanderForTest(homeDirectory string) *pathutils.HomeExpander {
	return pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectory, nil
	})
}

func TestSanitizeTrimsAndDropsEmptyTokens(testInstance *testing.T) {
	sanitizer := pathutils.NewTokenSanitizer()

	sanitized := sanitizer.Sanitize([]string{" notes.md ", "", "   ", "cmd/main.go"})

	require.Equal(testInstance, []string{"notes.md", "cmd/main.go"}, sanitized)
}

func TestSanitizeRemovesDuplicatesPreservingFirstOccurrence(testInstance *testing.T) {
	sanitizer := pathutils.NewTokenSanitizer()

	sanitized := sanitizer.Sanitize([]string{"b.go", "a.go", " b.go", "a.go"})

	require.Equal(testInstance, []string{"b.go", "a.go"}, sanitized)
}

func TestSanitizeExpandsHomeDirectoryTokens(testInstance *testing.T) {
	sanitizer := pathutils.NewTokenSanitizerWithExpander(newHomeExpanderForTest("/home/tester"))

	sanitized := sanitizer.Sanitize([]string{"~/projects/notes.md", "plain.txt"})

	require.Equal(testInstance, []string{"/home/tester/projects/notes.md", "plain.txt"}, sanitized)
}

func TestSanitizeReturnsNilForEmptyInput(testInstance *testing.T) {
	sanitizer := pathutils.NewTokenSanitizer()

	require.Nil(testInstance, sanitizer.Sanitize(nil))
	require.Nil(testInstance, sanitizer.Sanitize([]string{"  ", ""}))
}

func TestSanitizePreservesMarkerAndRelativeTokens(testInstance *testing.T) {
	sanitizer := pathutils.NewTokenSanitizer()

	sanitized := sanitizer.Sanitize([]string{":/:docs/readme.md", "../sibling/file.go"})

	require.Equal(testInstance, []string{":/:docs/readme.md", "../sibling/file.go"}, sanitized)
}
