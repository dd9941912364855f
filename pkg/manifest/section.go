// Package manifest turns filtered manifest sections into a single
// idempotent Bash script. Each section kind renders with one of four
// templating shapes: heredoc loop, line-continuation command, custom
// recursive repository blocks, or verbatim script bodies.
package manifest

import (
	_ "embed"

	"github.com/scottidler/manifest/pkg/spec"
	"github.com/scottidler/manifest/pkg/walker"
)

//go:embed scripts/linker.sh
var linkerFn string

//go:embed scripts/latest.sh
var latestFn string

// Section is the closed set of renderable manifest sections. Each
// instance owns its already-filtered, already-sorted payload; rendering
// is pure string construction.
type Section interface {
	// Name identifies the section in logs
	Name() string
	// Functions returns the shared shell function bodies this section's
	// fragment depends on; BuildScript deduplicates them.
	Functions() []string
	// Render returns the section's shell fragment
	Render() string

	isSection()
}

// LinkSection emits a linker heredoc over expanded (file, destination)
// pairs.
type LinkSection struct {
	Pairs []walker.LinkPair
}

func (s LinkSection) Name() string        { return "link" }
func (s LinkSection) Functions() []string { return []string{linkerFn} }
func (s LinkSection) isSection()          {}

// PpaSection emits a heredoc that registers each PPA unless it is
// already configured.
type PpaSection struct {
	Items []string
}

func (s PpaSection) Name() string        { return "ppa" }
func (s PpaSection) Functions() []string { return nil }
func (s PpaSection) isSection()          {}

// AptSection emits one apt install continuation command.
type AptSection struct {
	Items []string
}

func (s AptSection) Name() string        { return "apt" }
func (s AptSection) Functions() []string { return nil }
func (s AptSection) isSection()          {}

// DnfSection emits one dnf install continuation command.
type DnfSection struct {
	Items []string
}

func (s DnfSection) Name() string        { return "dnf" }
func (s DnfSection) Functions() []string { return nil }
func (s DnfSection) isSection()          {}

// NpmSection emits one global npm install continuation command.
type NpmSection struct {
	Items []string
}

func (s NpmSection) Name() string        { return "npm" }
func (s NpmSection) Functions() []string { return nil }
func (s NpmSection) isSection()          {}

// Pip3Section emits the pip3 bootstrap plus install continuation
// command, preceded by distutils system packages when declared.
type Pip3Section struct {
	Items     []string
	Distutils []string
}

func (s Pip3Section) Name() string        { return "pip3" }
func (s Pip3Section) Functions() []string { return nil }
func (s Pip3Section) isSection()          {}

// PipxSection emits a pipx install heredoc.
type PipxSection struct {
	Items []string
}

func (s PipxSection) Name() string        { return "pipx" }
func (s PipxSection) Functions() []string { return nil }
func (s PipxSection) isSection()          {}

// FlatpakSection emits one flatpak install continuation command.
type FlatpakSection struct {
	Items []string
}

func (s FlatpakSection) Name() string        { return "flatpak" }
func (s FlatpakSection) Functions() []string { return nil }
func (s FlatpakSection) isSection()          {}

// CargoSection emits one cargo install continuation command.
type CargoSection struct {
	Items []string
}

func (s CargoSection) Name() string        { return "cargo" }
func (s CargoSection) Functions() []string { return nil }
func (s CargoSection) isSection()          {}

// GithubSection emits clone/update blocks per repository, with nested
// cargo-install-from-path, link and script fragments.
type GithubSection struct {
	Repopath string
	Cwd      string
	Home     string
	Repos    map[string]spec.RepoSpec
}

func (s GithubSection) Name() string { return "github" }

func (s GithubSection) Functions() []string {
	fns := []string{linkerFn}
	for _, repo := range s.Repos {
		if !repo.Script.IsEmpty() {
			fns = append(fns, latestFn)
			break
		}
	}
	return fns
}

func (s GithubSection) isSection() {}

// GitCryptSection behaves like GithubSection but guards the whole
// section with git-crypt preconditions and unlocks each repository
// before touching it.
type GitCryptSection struct {
	GithubSection
}

func (s GitCryptSection) Name() string { return "git-crypt" }

// ScriptSection emits each operator-authored script body verbatim,
// preceded by an identifying echo.
type ScriptSection struct {
	Scripts map[string]string
}

func (s ScriptSection) Name() string        { return "script" }
func (s ScriptSection) Functions() []string { return []string{latestFn} }
func (s ScriptSection) isSection()          {}
