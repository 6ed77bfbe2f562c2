// Package ignore loads the per-repository auto-exclude configuration merged
// into every classification run unless the override flag disables it.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigurationDirectoryNameConstant = "gitacp"
	mappingFileNameConstant                   = "ignore.yaml"
	patternDirectoryNameConstant              = "ignore.d"
	commentPrefixConstant                     = "#"
)

// Pattern is a single auto-exclude token sourced from configuration. It is
// functionally identical to an explicit exclude token.
type Pattern string

// Loader reads auto-exclude patterns scoped to one repository. Two on-disk
// layouts are supported and normalized to the same schema at load time:
//
//   - <config-dir>/ignore.yaml, a YAML mapping of absolute repository
//     top-level path to a pattern list;
//   - <config-dir>/ignore.d/<repository-directory-name>, one pattern per
//     line with # comments.
//
// Missing or unreadable configuration always yields an empty pattern set.
type Loader struct {
	configurationDirectory string
}

// NewLoader constructs a Loader rooted at the provided configuration
// directory; an empty value selects <user-config-dir>/gitacp.
func NewLoader(configurationDirectory string) *Loader {
	resolvedDirectory := strings.TrimSpace(configurationDirectory)
	if len(resolvedDirectory) == 0 {
		if userConfigDirectory, lookupError := os.UserConfigDir(); lookupError == nil {
			resolvedDirectory = filepath.Join(userConfigDirectory, defaultConfigurationDirectoryNameConstant)
		}
	}
	return &Loader{configurationDirectory: resolvedDirectory}
}

// Load returns the patterns configured for the repository at topLevelPath.
// When skipConfiguration is set no configuration source is touched.
func (loader *Loader) Load(topLevelPath string, skipConfiguration bool) []Pattern {
	if skipConfiguration {
		return nil
	}
	if loader == nil || len(loader.configurationDirectory) == 0 {
		return nil
	}

	patterns := loader.loadFromMappingFile(topLevelPath)
	patterns = append(patterns, loader.loadFromPatternDirectory(topLevelPath)...)
	return patterns
}

func (loader *Loader) loadFromMappingFile(topLevelPath string) []Pattern {
	mappingFilePath := filepath.Join(loader.configurationDirectory, mappingFileNameConstant)
	mappingContent, readError := os.ReadFile(mappingFilePath)
	if readError != nil {
		return nil
	}

	repositoryPatterns := map[string][]string{}
	if unmarshalError := yaml.Unmarshal(mappingContent, &repositoryPatterns); unmarshalError != nil {
		return nil
	}

	cleanedTopLevel := filepath.Clean(topLevelPath)
	for repositoryKey, rawPatterns := range repositoryPatterns {
		if filepath.Clean(strings.TrimSpace(repositoryKey)) != cleanedTopLevel {
			continue
		}
		return sanitizePatterns(rawPatterns)
	}
	return nil
}

func (loader *Loader) loadFromPatternDirectory(topLevelPath string) []Pattern {
	repositoryName := filepath.Base(filepath.Clean(topLevelPath))
	patternFilePath := filepath.Join(loader.configurationDirectory, patternDirectoryNameConstant, repositoryName)
	patternContent, readError := os.ReadFile(patternFilePath)
	if readError != nil {
		return nil
	}
	return sanitizePatterns(strings.Split(string(patternContent), "\n"))
}

func sanitizePatterns(rawPatterns []string) []Pattern {
	sanitized := make([]Pattern, 0, len(rawPatterns))
	for _, rawPattern := range rawPatterns {
		withoutComment := rawPattern
		if commentIndex := strings.Index(withoutComment, commentPrefixConstant); commentIndex >= 0 {
			withoutComment = withoutComment[:commentIndex]
		}
		trimmedPattern := strings.TrimSpace(withoutComment)
		if len(trimmedPattern) == 0 {
			continue
		}
		sanitized = append(sanitized, Pattern(trimmedPattern))
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
