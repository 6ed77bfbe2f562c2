package status

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	statusCodeUntrackedStringConstant       = "??"
	statusCodeModifiedStringConstant        = "M"
	statusCodeDeletedStringConstant         = "D"
	statusCodeStagedStringConstant          = "A"
	directorySuffixConstant                 = "/"
	quoteCharacterConstant                  = `"`
	unrecognizedCodeMessageTemplateConstant = "unrecognized status code %q in line %q"
	emptyLineMessageTemplateConstant        = "status line %q carries no path"
)

// Code identifies the working tree state reported for a single path.
type Code string

// Supported status codes.
const (
	CodeUntracked Code = Code(statusCodeUntrackedStringConstant)
	CodeModified  Code = Code(statusCodeModifiedStringConstant)
	CodeDeleted   Code = Code(statusCodeDeletedStringConstant)
	CodeStaged    Code = Code(statusCodeStagedStringConstant)
)

var recognizedCodes = map[Code]struct{}{
	CodeUntracked: {},
	CodeModified:  {},
	CodeDeleted:   {},
	CodeStaged:    {},
}

// ChangeLine captures one parsed status listing line.
type ChangeLine struct {
	Code Code
	// Path is repository relative, unquoted, with any trailing directory slash removed.
	Path string
	// WasDirectory records whether the raw listing reported the path with a trailing slash.
	WasDirectory bool
}

// UnrecognizedCodeError reports a status line whose code is outside the documented grammar.
type UnrecognizedCodeError struct {
	Code Code
	Line string
}

// Error describes the unrecognized code.
func (codeError UnrecognizedCodeError) Error() string {
	return fmt.Sprintf(unrecognizedCodeMessageTemplateConstant, string(codeError.Code), codeError.Line)
}

// MalformedLineError reports a status line missing its path component.
type MalformedLineError struct {
	Line string
}

// Error describes the malformed line.
func (lineError MalformedLineError) Error() string {
	return fmt.Sprintf(emptyLineMessageTemplateConstant, lineError.Line)
}

// ParseLine interprets a single <code><space(s)><path> status listing line.
func ParseLine(rawLine string) (ChangeLine, error) {
	trimmedLine := strings.TrimSpace(rawLine)
	codeToken, pathToken, foundSeparator := strings.Cut(trimmedLine, " ")
	if !foundSeparator || len(strings.TrimSpace(pathToken)) == 0 {
		return ChangeLine{}, MalformedLineError{Line: rawLine}
	}

	candidateCode := Code(strings.TrimSpace(codeToken))
	if _, recognized := recognizedCodes[candidateCode]; !recognized {
		return ChangeLine{}, UnrecognizedCodeError{Code: candidateCode, Line: rawLine}
	}

	unquotedPath := unquotePath(strings.TrimSpace(pathToken))
	wasDirectory := strings.HasSuffix(unquotedPath, directorySuffixConstant)
	normalizedPath := strings.TrimSuffix(unquotedPath, directorySuffixConstant)
	if len(normalizedPath) == 0 {
		return ChangeLine{}, MalformedLineError{Line: rawLine}
	}

	return ChangeLine{Code: candidateCode, Path: normalizedPath, WasDirectory: wasDirectory}, nil
}

// ParseLines interprets every non-blank listing line, collecting per-line errors separately.
func ParseLines(rawLines []string) ([]ChangeLine, []error) {
	changeLines := make([]ChangeLine, 0, len(rawLines))
	var parseErrors []error
	for _, rawLine := range rawLines {
		if len(strings.TrimSpace(rawLine)) == 0 {
			continue
		}
		changeLine, parseError := ParseLine(rawLine)
		if parseError != nil {
			parseErrors = append(parseErrors, parseError)
			continue
		}
		changeLines = append(changeLines, changeLine)
	}
	return changeLines, parseErrors
}

// unquotePath removes the quoting git applies to paths containing special characters.
func unquotePath(candidatePath string) string {
	if len(candidatePath) < 2 {
		return candidatePath
	}
	if !strings.HasPrefix(candidatePath, quoteCharacterConstant) || !strings.HasSuffix(candidatePath, quoteCharacterConstant) {
		return candidatePath
	}
	unquotedPath, unquoteError := strconv.Unquote(candidatePath)
	if unquoteError != nil {
		return strings.Trim(candidatePath, quoteCharacterConstant)
	}
	return unquotedPath
}
