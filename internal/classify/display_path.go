package classify

import (
	"path/filepath"
	"strings"

	"github.com/temirov/gitacp/internal/status"
)

const (
	// TopLevelMarkerConstant prefixes display paths anchored at the repository
	// top level instead of the working directory.
	TopLevelMarkerConstant = ":/:"
)

// PathAnchor distinguishes the reference point of a display path.
type PathAnchor int

// Supported display path anchors.
const (
	AnchorWorkingDirectory PathAnchor = iota
	AnchorTopLevel
)

// DisplayPath is the tagged representation of a presentable path. The escape
// marker string form exists only at presentation and matching boundaries.
type DisplayPath struct {
	Anchor PathAnchor
	Value  string
}

// String renders the display path, applying the top-level escape marker when required.
func (displayPath DisplayPath) String() string {
	if displayPath.Anchor == AnchorTopLevel {
		return TopLevelMarkerConstant + displayPath.Value
	}
	return displayPath.Value
}

// ParseDisplayPath reconstructs the tagged representation from a rendered display path.
func ParseDisplayPath(rendered string) DisplayPath {
	if strings.HasPrefix(rendered, TopLevelMarkerConstant) {
		return DisplayPath{Anchor: AnchorTopLevel, Value: strings.TrimPrefix(rendered, TopLevelMarkerConstant)}
	}
	return DisplayPath{Anchor: AnchorWorkingDirectory, Value: rendered}
}

// AbsolutePath recovers the absolute filesystem path the display path denotes.
func (displayPath DisplayPath) AbsolutePath(topLevelPath string, workingDirectory string) string {
	if displayPath.Anchor == AnchorTopLevel {
		return filepath.Join(topLevelPath, displayPath.Value)
	}
	return filepath.Join(workingDirectory, displayPath.Value)
}

// Entry describes one regular file under version control attention. Directory
// entries never survive expansion, so AbsolutePath always names a file.
type Entry struct {
	Code         status.Code
	AbsolutePath string
	Display      DisplayPath
}
