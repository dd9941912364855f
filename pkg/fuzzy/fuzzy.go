// Package fuzzy implements the pattern-matching engine behind the
// per-section CLI filters. Filtering runs a fixed cascade of match
// strategies over a whole collection and stops at the first strategy
// that yields any result, so an exact hit suppresses looser matches
// (a package literally named "git" does not also pull in "git-core").
package fuzzy

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/scottidler/manifest/pkg/logging"
)

// Wildcard is the reserved pattern meaning "everything in this section".
// It acts at the pattern-list level, not as a glob token.
const Wildcard = "*"

// MatchType names one string-comparison strategy.
type MatchType int

const (
	Exact MatchType = iota
	IgnoreCase
	Prefix
	Suffix
	Contains
	Glob
	Regex
)

// String returns the strategy name for logging
func (mt MatchType) String() string {
	switch mt {
	case Exact:
		return "exact"
	case IgnoreCase:
		return "ignore-case"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Contains:
		return "contains"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// DefaultMatchTypes is the cascade tried, in order, by Include and
// Exclude. Suffix, Glob and Regex are available to direct callers of
// Matches but are not part of the default cascade.
var DefaultMatchTypes = []MatchType{Exact, IgnoreCase, Prefix, Contains}

// Matches reports whether item matches pattern under the given strategy.
// It is total: malformed glob or regex syntax never matches and never
// propagates an error.
func Matches(item, pattern string, mt MatchType) bool {
	switch mt {
	case Exact:
		return item == pattern
	case IgnoreCase:
		return strings.EqualFold(item, pattern)
	case Prefix:
		return strings.HasPrefix(item, pattern)
	case Suffix:
		return strings.HasSuffix(item, pattern)
	case Contains:
		return strings.Contains(item, pattern)
	case Glob:
		g, err := glob.Compile(pattern)
		if err != nil {
			logger := logging.GetLogger("fuzzy")
			logger.Debug().Err(err).Str("pattern", pattern).Msg("invalid glob pattern never matches")
			return false
		}
		return g.Match(item)
	case Regex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger := logging.GetLogger("fuzzy")
			logger.Debug().Err(err).Str("pattern", pattern).Msg("invalid regex pattern never matches")
			return false
		}
		return re.MatchString(item)
	default:
		return false
	}
}

func hasWildcard(patterns []string) bool {
	for _, p := range patterns {
		if p == Wildcard {
			return true
		}
	}
	return false
}

// Include filters items down to those matching at least one pattern.
// An empty or wildcard pattern list is the identity. Otherwise each
// strategy in DefaultMatchTypes is tried against the whole collection
// and the first strategy producing any match wins; if none does, the
// result is empty.
func Include(items []string, patterns []string) []string {
	if len(patterns) == 0 || hasWildcard(patterns) {
		return items
	}
	for _, mt := range DefaultMatchTypes {
		var results []string
		for _, item := range items {
			if matchesAny(item, patterns, mt) {
				results = append(results, item)
			}
		}
		if len(results) > 0 {
			return results
		}
	}
	return nil
}

// Exclude keeps items matched by no pattern, with the same
// collection-wide cascade as Include. An empty or wildcard pattern
// list excludes everything.
func Exclude(items []string, patterns []string) []string {
	if len(patterns) == 0 || hasWildcard(patterns) {
		return nil
	}
	for _, mt := range DefaultMatchTypes {
		var results []string
		for _, item := range items {
			if !matchesAny(item, patterns, mt) {
				results = append(results, item)
			}
		}
		if len(results) > 0 {
			return results
		}
	}
	return nil
}

// IncludeMap filters a string-keyed map by its keys, same cascade as
// Include. Mapped values are never inspected.
func IncludeMap[V any](m map[string]V, patterns []string) map[string]V {
	if len(patterns) == 0 || hasWildcard(patterns) {
		return m
	}
	for _, mt := range DefaultMatchTypes {
		results := make(map[string]V)
		for key, value := range m {
			if matchesAny(key, patterns, mt) {
				results[key] = value
			}
		}
		if len(results) > 0 {
			return results
		}
	}
	return map[string]V{}
}

// ExcludeMap keeps entries whose key matches no pattern, same cascade
// as Exclude.
func ExcludeMap[V any](m map[string]V, patterns []string) map[string]V {
	if len(patterns) == 0 || hasWildcard(patterns) {
		return map[string]V{}
	}
	for _, mt := range DefaultMatchTypes {
		results := make(map[string]V)
		for key, value := range m {
			if !matchesAny(key, patterns, mt) {
				results[key] = value
			}
		}
		if len(results) > 0 {
			return results
		}
	}
	return map[string]V{}
}

func matchesAny(item string, patterns []string, mt MatchType) bool {
	for _, pattern := range patterns {
		if Matches(item, pattern, mt) {
			return true
		}
	}
	return false
}
