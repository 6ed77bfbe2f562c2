package classify

import (
	"os"
	"path/filepath"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// IncludeSelection is either the distinguished "everything" sentinel or an
// explicit set of include tokens.
type IncludeSelection struct {
	everything bool
	tokens     []string
}

// IncludeEverything returns the selection admitting every non-excluded entry.
func IncludeEverything() IncludeSelection {
	return IncludeSelection{everything: true}
}

// IncludeTokens returns the selection restricted to the provided tokens.
func IncludeTokens(tokens []string) IncludeSelection {
	duplicatedTokens := make([]string, len(tokens))
	copy(duplicatedTokens, tokens)
	return IncludeSelection{tokens: duplicatedTokens}
}

// IsEverything reports whether the selection is the everything sentinel.
func (selection IncludeSelection) IsEverything() bool {
	return selection.everything
}

// Result is the order-preserving partition of the expanded entry sequence.
// Entries matching neither an include nor an exclude token appear in neither
// sequence.
type Result struct {
	Added    []Entry
	Excluded []Entry
	// MaxDisplayWidth is the widest rendered display path across kept entries,
	// consumed only for column alignment.
	MaxDisplayWidth int
}

// Classifier partitions expanded status entries by merging explicit include
// and exclude tokens with auto-ignore patterns.
type Classifier struct {
	topLevelPath     string
	workingDirectory string
}

// NewClassifier constructs a Classifier scoped to one repository and working directory.
func NewClassifier(topLevelPath string, workingDirectory string) Classifier {
	return Classifier{topLevelPath: topLevelPath, workingDirectory: workingDirectory}
}

// Classify applies the ordered decision rules to every entry, first match wins:
// exclude match, everything sentinel, explicit include match, otherwise dropped.
func (classifier Classifier) Classify(entries []Entry, includeSelection IncludeSelection, excludeTokens []string) Result {
	normalizedExcludes := classifier.normalizeTokens(excludeTokens)
	normalizedIncludes := classifier.normalizeTokens(includeSelection.tokens)

	result := Result{}
	for _, entry := range entries {
		switch {
		case classifier.matchesAny(entry, normalizedExcludes):
			result.Excluded = append(result.Excluded, entry)
		case includeSelection.IsEverything():
			result.Added = append(result.Added, entry)
		case classifier.matchesAny(entry, normalizedIncludes):
			result.Added = append(result.Added, entry)
		default:
			continue
		}

		renderedWidth := runewidth.StringWidth(entry.Display.String())
		if renderedWidth > result.MaxDisplayWidth {
			result.MaxDisplayWidth = renderedWidth
		}
	}

	return result
}

// normalizeTokens converts every token to an absolute path so that tokens in
// working-directory form, top-level marker form, and absolute form all compare
// against the same key.
func (classifier Classifier) normalizeTokens(tokens []string) []string {
	normalizedTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		trimmedToken := strings.TrimSpace(token)
		if len(trimmedToken) == 0 {
			continue
		}
		normalizedTokens = append(normalizedTokens, classifier.normalizeToken(trimmedToken))
	}
	return normalizedTokens
}

func (classifier Classifier) normalizeToken(token string) string {
	if strings.HasPrefix(token, TopLevelMarkerConstant) {
		remainder := strings.TrimPrefix(token, TopLevelMarkerConstant)
		return filepath.Join(classifier.topLevelPath, filepath.FromSlash(remainder))
	}
	if filepath.IsAbs(token) {
		return filepath.Clean(token)
	}
	return filepath.Join(classifier.workingDirectory, filepath.FromSlash(token))
}

func (classifier Classifier) matchesAny(entry Entry, normalizedTokens []string) bool {
	cleanedEntryPath := filepath.Clean(entry.AbsolutePath)
	for _, normalizedToken := range normalizedTokens {
		if cleanedEntryPath == normalizedToken {
			return true
		}
		if isAncestorPath(normalizedToken, cleanedEntryPath) {
			return true
		}
	}
	return false
}

// isAncestorPath reports whether ancestor names a directory containing
// candidate, matching on segment boundaries only: "dir" covers "dir/x" but
// never "dir2/x".
func isAncestorPath(ancestor string, candidate string) bool {
	if len(candidate) <= len(ancestor) {
		return false
	}
	if !strings.HasPrefix(candidate, ancestor) {
		return false
	}
	if ancestor[len(ancestor)-1] == os.PathSeparator {
		return true
	}
	return candidate[len(ancestor)] == os.PathSeparator
}
