package status_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitacp/internal/status"
)

func TestParseLine(testInstance *testing.T) {
	testCases := []struct {
		name          string
		rawLine       string
		expectedLine  status.ChangeLine
		expectedError any
	}{
		{
			name:         "untracked_file",
			rawLine:      "?? notes.md",
			expectedLine: status.ChangeLine{Code: status.CodeUntracked, Path: "notes.md"},
		},
		{
			name:         "modified_file",
			rawLine:      "M cmd/main.go",
			expectedLine: status.ChangeLine{Code: status.CodeModified, Path: "cmd/main.go"},
		},
		{
			name:         "deleted_file",
			rawLine:      "D removed.go",
			expectedLine: status.ChangeLine{Code: status.CodeDeleted, Path: "removed.go"},
		},
		{
			name:         "staged_file",
			rawLine:      "A added.go",
			expectedLine: status.ChangeLine{Code: status.CodeStaged, Path: "added.go"},
		},
		{
			name:         "untracked_directory_strips_trailing_slash",
			rawLine:      "?? newdir/",
			expectedLine: status.ChangeLine{Code: status.CodeUntracked, Path: "newdir", WasDirectory: true},
		},
		{
			name:         "multiple_spaces_between_code_and_path",
			rawLine:      "M   spaced.go",
			expectedLine: status.ChangeLine{Code: status.CodeModified, Path: "spaced.go"},
		},
		{
			name:         "quoted_path_with_spaces",
			rawLine:      `?? "name with spaces.txt"`,
			expectedLine: status.ChangeLine{Code: status.CodeUntracked, Path: "name with spaces.txt"},
		},
		{
			name:         "quoted_path_with_escapes",
			rawLine:      `?? "tab\there.txt"`,
			expectedLine: status.ChangeLine{Code: status.CodeUntracked, Path: "tab\there.txt"},
		},
		{
			name:          "unrecognized_code",
			rawLine:       "R old.go -> new.go",
			expectedError: status.UnrecognizedCodeError{},
		},
		{
			name:          "missing_path",
			rawLine:       "??",
			expectedError: status.MalformedLineError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			changeLine, parseError := status.ParseLine(testCase.rawLine)
			if testCase.expectedError != nil {
				require.Error(testInstance, parseError)
				require.IsType(testInstance, testCase.expectedError, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedLine, changeLine)
		})
	}
}

func TestParseLinesCollectsErrorsSeparately(testInstance *testing.T) {
	rawLines := []string{
		"?? notes.md",
		"R old.go -> new.go",
		"",
		"M cmd/main.go",
	}

	changeLines, parseErrors := status.ParseLines(rawLines)

	require.Len(testInstance, changeLines, 2)
	require.Equal(testInstance, "notes.md", changeLines[0].Path)
	require.Equal(testInstance, "cmd/main.go", changeLines[1].Path)
	require.Len(testInstance, parseErrors, 1)
	require.IsType(testInstance, status.UnrecognizedCodeError{}, parseErrors[0])
}
