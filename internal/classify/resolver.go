package classify

import (
	"path/filepath"
	"strings"
)

const (
	parentDirectorySegmentConstant = ".."
)

// PathResolver computes the canonical display path for a repository-relative path.
type PathResolver struct{}

// NewPathResolver constructs a PathResolver.
func NewPathResolver() PathResolver {
	return PathResolver{}
}

// Resolve maps a repository-relative path to its display form.
//
// When relativePathsMode is enabled the path is rendered relative to the
// working directory verbatim, parent-directory segments included. Otherwise a
// path that would climb above the working directory is anchored at the
// repository top level instead, so downstream token matching can tell the two
// representations apart.
func (resolver PathResolver) Resolve(repositoryRelativePath string, topLevelPath string, workingDirectory string, relativePathsMode bool) DisplayPath {
	cleanedRelativePath := filepath.Clean(filepath.FromSlash(repositoryRelativePath))
	absolutePath := filepath.Join(topLevelPath, cleanedRelativePath)

	workingDirectoryRelativePath, relativeError := filepath.Rel(workingDirectory, absolutePath)
	if relativeError != nil {
		return DisplayPath{Anchor: AnchorTopLevel, Value: filepath.ToSlash(cleanedRelativePath)}
	}

	if relativePathsMode {
		return DisplayPath{Anchor: AnchorWorkingDirectory, Value: filepath.ToSlash(workingDirectoryRelativePath)}
	}

	if escapesWorkingDirectory(workingDirectoryRelativePath) {
		return DisplayPath{Anchor: AnchorTopLevel, Value: filepath.ToSlash(cleanedRelativePath)}
	}

	return DisplayPath{Anchor: AnchorWorkingDirectory, Value: filepath.ToSlash(workingDirectoryRelativePath)}
}

func escapesWorkingDirectory(relativePath string) bool {
	if relativePath == parentDirectorySegmentConstant {
		return true
	}
	return strings.HasPrefix(relativePath, parentDirectorySegmentConstant+string(filepath.Separator))
}
