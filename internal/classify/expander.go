package classify

import (
	"io/fs"
	"path/filepath"
)

// DirectoryExpander replaces a directory-shaped status entry with one
// synthesized entry per contained regular file. The status listing reports a
// newly created directory as a single opaque line; without expansion the files
// inside it could never be matched by per-file include or exclude tokens.
type DirectoryExpander struct {
	resolver PathResolver
}

// NewDirectoryExpander constructs a DirectoryExpander using the provided resolver.
func NewDirectoryExpander(resolver PathResolver) DirectoryExpander {
	return DirectoryExpander{resolver: resolver}
}

// Expand walks the directory named by the entry and returns one entry per
// regular file found, each inheriting the parent entry's status code.
// Symlinks and other non-regular files are skipped, as are subtrees that
// vanish mid-walk.
func (expander DirectoryExpander) Expand(directoryEntry Entry, topLevelPath string, workingDirectory string, relativePathsMode bool) []Entry {
	var expandedEntries []Entry

	walkError := filepath.WalkDir(directoryEntry.AbsolutePath, func(candidatePath string, candidateEntry fs.DirEntry, candidateError error) error {
		if candidateError != nil {
			if candidateEntry != nil && candidateEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if candidateEntry.IsDir() {
			return nil
		}
		if !candidateEntry.Type().IsRegular() {
			return nil
		}

		repositoryRelativePath, relativeError := filepath.Rel(topLevelPath, candidatePath)
		if relativeError != nil {
			return nil
		}

		expandedEntries = append(expandedEntries, Entry{
			Code:         directoryEntry.Code,
			AbsolutePath: candidatePath,
			Display:      expander.resolver.Resolve(repositoryRelativePath, topLevelPath, workingDirectory, relativePathsMode),
		})
		return nil
	})
	if walkError != nil {
		return expandedEntries
	}

	return expandedEntries
}
