// pkg/fuzzy/fuzzy_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test match strategies and the collection-wide filter cascade

package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		pattern string
		mt      MatchType
		want    bool
	}{
		{"exact_hit", "git", "git", Exact, true},
		{"exact_miss_case", "Git", "git", Exact, false},
		{"ignore_case_hit", "Git", "git", IgnoreCase, true},
		{"ignore_case_miss", "gitt", "git", IgnoreCase, false},
		{"prefix_hit", "git-core", "git", Prefix, true},
		{"prefix_miss", "libgit", "git", Prefix, false},
		{"suffix_hit", "libgit", "git", Suffix, true},
		{"suffix_miss", "git-core", "git", Suffix, false},
		{"contains_hit", "github-cli", "hub", Contains, true},
		{"contains_miss", "gitlab", "hub", Contains, false},
		{"glob_star", "aka.zsh", "*.zsh", Glob, true},
		{"glob_question", "aka.zsh", "aka.?sh", Glob, true},
		{"glob_class", "pip3", "pip[0-9]", Glob, true},
		{"glob_miss", "aka.bash", "*.zsh", Glob, false},
		{"glob_invalid_never_matches", "anything", "[", Glob, false},
		{"regex_unanchored", "git-core", "core$", Regex, true},
		{"regex_miss", "git-core", "^core", Regex, false},
		{"regex_invalid_never_matches", "anything", "(", Regex, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.item, tt.pattern, tt.mt))
		})
	}
}

func TestIncludeWildcardIdentity(t *testing.T) {
	items := []string{"jq", "vim", "htop"}

	assert.Equal(t, items, Include(items, []string{"*"}))
	assert.Equal(t, items, Include(items, nil))
	assert.Equal(t, items, Include(items, []string{"vim", "*"}))
}

func TestExcludeWildcardEmpty(t *testing.T) {
	items := []string{"jq", "vim", "htop"}

	assert.Empty(t, Exclude(items, []string{"*"}))
	assert.Empty(t, Exclude(items, nil))
}

// An exact hit must suppress the looser contains matches: the cascade is
// collection-wide, not per item.
func TestIncludeCascadeExactWins(t *testing.T) {
	items := []string{"git", "git-core", "github-cli"}

	got := Include(items, []string{"git"})

	assert.Equal(t, []string{"git"}, got)
}

// No exact or case-insensitive hit for "app", so Prefix picks "apple"
// and the looser Contains match for "snapple" is never consulted.
func TestIncludeCascadeFallsBackToPrefix(t *testing.T) {
	items := []string{"apple", "snapple"}

	got := Include(items, []string{"app"})

	assert.Equal(t, []string{"apple"}, got)
}

func TestIncludeNoStrategyMatches(t *testing.T) {
	items := []string{"jq", "vim"}

	assert.Empty(t, Include(items, []string{"htop"}))
}

func TestIncludeMultiplePatternsAreORed(t *testing.T) {
	items := []string{"jq", "vim", "htop"}

	got := Include(items, []string{"jq", "htop"})

	assert.Equal(t, []string{"jq", "htop"}, got)
}

func TestExcludeCascade(t *testing.T) {
	items := []string{"git", "git-core", "github-cli"}

	got := Exclude(items, []string{"git"})

	// Exact only matches "git" itself, so the first pass already leaves
	// a non-empty remainder.
	assert.Equal(t, []string{"git-core", "github-cli"}, got)
}

// Include and Exclude may settle on different cascade levels for the
// same input, so their union is only a subset of the input.
func TestIncludeExcludeAsymmetry(t *testing.T) {
	items := []string{"apple", "snapple", "grape"}
	patterns := []string{"app"}

	included := Include(items, patterns)
	excluded := Exclude(items, patterns)

	// Include resolves at Prefix (apple); Exclude resolves at Exact
	// (nothing is exactly "app", so everything survives).
	assert.Equal(t, []string{"apple"}, included)
	assert.Equal(t, items, excluded)

	for _, item := range included {
		assert.Contains(t, items, item)
	}
	for _, item := range excluded {
		assert.Contains(t, items, item)
	}
}

func TestIncludeMap(t *testing.T) {
	m := map[string]string{
		"scottidler/aka":  "x",
		"scottidler/rmrf": "y",
		"other/tool":      "z",
	}

	got := IncludeMap(m, []string{"scottidler/aka"})
	assert.Equal(t, map[string]string{"scottidler/aka": "x"}, got)

	got = IncludeMap(m, []string{"scottidler"})
	assert.Len(t, got, 2)
	assert.Contains(t, got, "scottidler/aka")
	assert.Contains(t, got, "scottidler/rmrf")

	assert.Equal(t, m, IncludeMap(m, []string{"*"}))
	assert.Equal(t, m, IncludeMap(m, nil))
}

func TestExcludeMap(t *testing.T) {
	m := map[string]int{"git": 1, "git-core": 2, "vim": 3}

	got := ExcludeMap(m, []string{"git"})
	assert.Equal(t, map[string]int{"git-core": 2, "vim": 3}, got)

	assert.Empty(t, ExcludeMap(m, []string{"*"}))
	assert.Empty(t, ExcludeMap(m, nil))
}

func TestMatchTypeString(t *testing.T) {
	assert.Equal(t, "exact", Exact.String())
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "unknown", MatchType(42).String())
}
