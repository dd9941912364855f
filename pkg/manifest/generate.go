package manifest

import (
	"sort"

	"github.com/scottidler/manifest/pkg/fuzzy"
	"github.com/scottidler/manifest/pkg/logging"
	"github.com/scottidler/manifest/pkg/paths"
	"github.com/scottidler/manifest/pkg/pkgmgr"
	"github.com/scottidler/manifest/pkg/spec"
	"github.com/scottidler/manifest/pkg/walker"
)

// Options carries the parsed CLI surface. Each per-section pattern list
// is empty when the flag was omitted; a bare flag arrives promoted to
// ["*"]. Any non-empty list flips the whole run to partial mode.
type Options struct {
	Cwd      string
	Home     string
	PkgMgr   string
	Repopath string // fallback checkout root when the manifest has none

	Link     []string
	Ppa      []string
	Apt      []string
	Dnf      []string
	Npm      []string
	Pip3     []string
	Pipx     []string
	Flatpak  []string
	Cargo    []string
	Github   []string
	GitCrypt []string
	Script   []string
}

// Partial reports whether any section flag was given at all
func (o Options) Partial() bool {
	sections := [][]string{
		o.Link, o.Ppa, o.Apt, o.Dnf, o.Npm, o.Pip3,
		o.Pipx, o.Flatpak, o.Cargo, o.Github, o.GitCrypt, o.Script,
	}
	for _, patterns := range sections {
		if len(patterns) > 0 {
			return true
		}
	}
	return false
}

// Generate runs the full pipeline over a loaded manifest: gate each
// section by the complete/partial state, filter its payload through the
// fuzzy cascade, sort for deterministic output, and assemble the final
// script. The result is byte-identical for identical inputs.
func Generate(sp *spec.Spec, opts Options) (string, error) {
	logger := logging.GetLogger("generate")

	pm, err := pkgmgr.Detect(opts.PkgMgr)
	if err != nil {
		return "", err
	}

	complete := !opts.Partial()
	logger.Debug().
		Bool("complete", complete).
		Str("pkgmgr", pm).
		Bool("verbose", sp.Verbose).
		Bool("errors", sp.Errors).
		Msg("generating script")

	included := func(patterns []string) bool {
		return complete || len(patterns) > 0
	}

	var sections []Section

	if included(opts.Link) && !sp.Link.IsEmpty() {
		pairs, err := linkPairs(sp.Link, opts.Link, opts.Cwd, opts.Home)
		if err != nil {
			return "", err
		}
		if len(pairs) > 0 {
			sections = append(sections, LinkSection{Pairs: pairs})
		}
	}

	if included(opts.Ppa) {
		if items := filterSorted(sp.Ppa.Items, opts.Ppa); len(items) > 0 {
			sections = append(sections, PpaSection{Items: items})
		}
	}

	// apt and dnf are mutually exclusive alternates keyed by the
	// detected manager; either one merges in the manager-agnostic pkg
	// list before filtering. brew has no section of its own.
	switch pm {
	case pkgmgr.Deb:
		if included(opts.Apt) {
			merged := append(append([]string{}, sp.Pkg.Items...), sp.Apt.Items...)
			if items := filterSorted(merged, opts.Apt); len(items) > 0 {
				sections = append(sections, AptSection{Items: items})
			}
		}
	case pkgmgr.Rpm:
		if included(opts.Dnf) {
			merged := append(append([]string{}, sp.Pkg.Items...), sp.Dnf.Items...)
			if items := filterSorted(merged, opts.Dnf); len(items) > 0 {
				sections = append(sections, DnfSection{Items: items})
			}
		}
	default:
		logger.Debug().Str("pkgmgr", pm).Msg("no system package section for this manager")
	}

	if included(opts.Npm) {
		if items := filterSorted(sp.Npm.Items, opts.Npm); len(items) > 0 {
			sections = append(sections, NpmSection{Items: items})
		}
	}

	if included(opts.Pip3) {
		items := filterSorted(sp.Pip3.Items, opts.Pip3)
		distutils := filterSorted(sp.Pip3.Distutils, opts.Pip3)
		if len(items) > 0 || len(distutils) > 0 {
			sections = append(sections, Pip3Section{Items: items, Distutils: distutils})
		}
	}

	if included(opts.Pipx) {
		if items := filterSorted(sp.Pipx.Items, opts.Pipx); len(items) > 0 {
			sections = append(sections, PipxSection{Items: items})
		}
	}

	if included(opts.Flatpak) {
		if items := filterSorted(sp.Flatpak.Items, opts.Flatpak); len(items) > 0 {
			sections = append(sections, FlatpakSection{Items: items})
		}
	}

	if included(opts.Cargo) {
		if items := filterSorted(sp.Cargo.Items, opts.Cargo); len(items) > 0 {
			sections = append(sections, CargoSection{Items: items})
		}
	}

	if included(opts.Github) {
		if repos := fuzzy.IncludeMap(sp.Github.Items, opts.Github); len(repos) > 0 {
			sections = append(sections, GithubSection{
				Repopath: repopath(sp.Github, opts),
				Cwd:      opts.Cwd,
				Home:     opts.Home,
				Repos:    repos,
			})
		}
	}

	if included(opts.GitCrypt) {
		if repos := fuzzy.IncludeMap(sp.GitCrypt.Items, opts.GitCrypt); len(repos) > 0 {
			sections = append(sections, GitCryptSection{GithubSection{
				Repopath: repopath(sp.GitCrypt, opts),
				Cwd:      opts.Cwd,
				Home:     opts.Home,
				Repos:    repos,
			}})
		}
	}

	if included(opts.Script) {
		if scripts := fuzzy.IncludeMap(sp.Script.Items, opts.Script); len(scripts) > 0 {
			sections = append(sections, ScriptSection{Scripts: scripts})
		}
	}

	logger.Info().Int("sections", len(sections)).Msg("rendering script")
	return BuildScript(sections), nil
}

// filterSorted runs the include cascade and returns the survivors in
// sorted order so rendering is order independent of the manifest.
func filterSorted(items, patterns []string) []string {
	matched := fuzzy.Include(items, patterns)
	if len(matched) == 0 {
		return nil
	}
	out := make([]string, len(matched))
	copy(out, matched)
	sort.Strings(out)
	return out
}

// linkPairs filters link entries by source path, then expands each
// surviving entry: recursively via the walker, or as a single
// source/destination pair.
func linkPairs(link spec.LinkSpec, patterns []string, cwd, home string) ([]walker.LinkPair, error) {
	filtered := fuzzy.IncludeMap(link.Items, patterns)

	sources := make([]string, 0, len(filtered))
	for src := range filtered {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var pairs []walker.LinkPair
	for _, src := range sources {
		dst := filtered[src]
		if link.Recursive {
			expanded, err := walker.RecursiveLinks(src, dst, cwd, home)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, expanded...)
			continue
		}
		pairs = append(pairs, walker.LinkPair{
			Source: paths.AbsSource(cwd, src),
			Dest:   paths.ExpandHome(dst, home),
		})
	}
	return pairs, nil
}

// repopath picks the checkout root: manifest value, then CLI/app
// default, then the built-in default.
func repopath(g spec.GithubSpec, opts Options) string {
	if g.Repopath != "" {
		return g.Repopath
	}
	if opts.Repopath != "" {
		return opts.Repopath
	}
	return spec.DefaultRepopath
}
