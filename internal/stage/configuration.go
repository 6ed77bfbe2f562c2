package stage

import (
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	defaultRemoteNameConstant    = "origin"
	defaultCommitMessageConstant = "Automatic commit"

	remoteConfigurationKeySuffixConstant        = ".remote"
	commitMessageConfigurationKeySuffixConstant = ".commit_message"
)

// CommandConfiguration captures configuration values for the staging command.
type CommandConfiguration struct {
	RemoteName    string         `mapstructure:"remote"`
	CommitMessage string         `mapstructure:"commit_message"`
	DryRun        bool           `mapstructure:"dry_run"`
	ListOnly      bool           `mapstructure:"list"`
	RelativePaths bool           `mapstructure:"relative_paths"`
	SkipIgnore    bool           `mapstructure:"no_ignore"`
	SkipPush      bool           `mapstructure:"no_push"`
	ExcludeTokens []string       `mapstructure:"exclude"`
	Repositories  map[string]any `mapstructure:"repositories"`
}

// RepositoryOverride adjusts staging behavior for a single repository,
// keyed by its absolute top-level path.
type RepositoryOverride struct {
	CommitMessage string   `mapstructure:"commit_message"`
	SkipPush      bool     `mapstructure:"no_push"`
	ExcludeTokens []string `mapstructure:"exclude"`
}

// DefaultConfigurationValues returns baseline configuration values registered
// under the provided configuration key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + remoteConfigurationKeySuffixConstant:        defaultRemoteNameConstant,
		configurationKeyPrefix + commitMessageConfigurationKeySuffixConstant: defaultCommitMessageConstant,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	sanitized.CommitMessage = strings.TrimSpace(configuration.CommitMessage)
	sanitized.ExcludeTokens = sanitizeTokenList(configuration.ExcludeTokens)
	return sanitized
}

func sanitizeTokenList(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}

// DecodeRepositoryOverrides converts the raw per-repository configuration
// mapping into typed overrides keyed by cleaned absolute top-level path.
// Entries that fail to decode are dropped.
func DecodeRepositoryOverrides(rawRepositories map[string]any) map[string]RepositoryOverride {
	if len(rawRepositories) == 0 {
		return nil
	}

	decodedOverrides := make(map[string]RepositoryOverride, len(rawRepositories))
	for repositoryKey, rawOverride := range rawRepositories {
		trimmedKey := strings.TrimSpace(repositoryKey)
		if len(trimmedKey) == 0 {
			continue
		}

		var override RepositoryOverride
		if decodeError := mapstructure.Decode(rawOverride, &override); decodeError != nil {
			continue
		}
		override.CommitMessage = strings.TrimSpace(override.CommitMessage)
		override.ExcludeTokens = sanitizeTokenList(override.ExcludeTokens)
		decodedOverrides[filepath.Clean(trimmedKey)] = override
	}

	if len(decodedOverrides) == 0 {
		return nil
	}
	return decodedOverrides
}

// OverrideForRepository returns the override configured for the repository at
// topLevelPath, matching on cleaned paths.
func OverrideForRepository(overrides map[string]RepositoryOverride, topLevelPath string) (RepositoryOverride, bool) {
	if len(overrides) == 0 {
		return RepositoryOverride{}, false
	}
	override, overrideExists := overrides[filepath.Clean(topLevelPath)]
	return override, overrideExists
}
