package pathutils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitacp/internal/utils/path"
)

func TestHomeExpanderExpandsTildePrefixes(testInstance *testing.T) {
	expander := newHomeExpanderForTest("/home/tester")

	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "bare_tilde", candidatePath: "~", expectedPath: "/home/tester"},
		{name: "tilde_with_path", candidatePath: "~/notes.md", expectedPath: "/home/tester/notes.md"},
		{name: "plain_path_untouched", candidatePath: "docs/readme.md", expectedPath: "docs/readme.md"},
		{name: "tilde_user_untouched", candidatePath: "~other/file", expectedPath: "~other/file"},
		{name: "empty_path", candidatePath: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderKeepsPathWhenLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})

	require.Equal(testInstance, "~/notes.md", expander.Expand("~/notes.md"))
}
