package pathutils

import (
	"strings"
)

// TokenSanitizer normalizes path token inputs consistently across flag and
// configuration sources. Tokens keep their original shape apart from
// whitespace trimming, home expansion, and duplicate removal, so marker-form
// and relative tokens survive untouched for downstream matching.
type TokenSanitizer struct {
	homeExpander *HomeExpander
}

// NewTokenSanitizer constructs a TokenSanitizer with default home expansion.
func NewTokenSanitizer() *TokenSanitizer {
	return NewTokenSanitizerWithExpander(nil)
}

// NewTokenSanitizerWithExpander constructs a TokenSanitizer using the provided expander.
func NewTokenSanitizerWithExpander(homeExpander *HomeExpander) *TokenSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &TokenSanitizer{homeExpander: resolvedExpander}
}

// Sanitize trims whitespace, expands the user's home directory, and removes
// empty and duplicate tokens while preserving first-occurrence order.
func (sanitizer *TokenSanitizer) Sanitize(candidateTokens []string) []string {
	expander := sanitizer.resolveExpander()

	seenTokens := map[string]struct{}{}
	sanitizedTokens := make([]string, 0, len(candidateTokens))
	for candidateIndex := range candidateTokens {
		trimmedCandidate := strings.TrimSpace(candidateTokens[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		expandedToken := expander.Expand(trimmedCandidate)
		if len(expandedToken) == 0 {
			continue
		}

		if _, alreadySeen := seenTokens[expandedToken]; alreadySeen {
			continue
		}
		seenTokens[expandedToken] = struct{}{}
		sanitizedTokens = append(sanitizedTokens, expandedToken)
	}

	if len(sanitizedTokens) == 0 {
		return nil
	}
	return sanitizedTokens
}

func (sanitizer *TokenSanitizer) resolveExpander() *HomeExpander {
	if sanitizer == nil || sanitizer.homeExpander == nil {
		return NewHomeExpander()
	}
	return sanitizer.homeExpander
}
