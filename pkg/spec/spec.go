// Package spec defines the YAML manifest data model and its loader.
//
// Most sections are a plain items list. Link, script, github and
// git-crypt mix known fields with flattened entry maps (arbitrary keys
// at the section level), which needs custom unmarshalling.
package spec

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/scottidler/manifest/pkg/errors"
)

// Spec is the root of the manifest document.
type Spec struct {
	Verbose bool `yaml:"verbose"`
	Errors  bool `yaml:"errors"`

	Link     LinkSpec   `yaml:"link"`
	Ppa      ItemsSpec  `yaml:"ppa"`
	Pkg      ItemsSpec  `yaml:"pkg"`
	Apt      ItemsSpec  `yaml:"apt"`
	Dnf      ItemsSpec  `yaml:"dnf"`
	Npm      ItemsSpec  `yaml:"npm"`
	Pip3     Pip3Spec   `yaml:"pip3"`
	Pipx     ItemsSpec  `yaml:"pipx"`
	Flatpak  ItemsSpec  `yaml:"flatpak"`
	Cargo    ItemsSpec  `yaml:"cargo"`
	Github   GithubSpec `yaml:"github"`
	GitCrypt GithubSpec `yaml:"git-crypt"`
	Script   ScriptSpec `yaml:"script"`
}

// ItemsSpec holds a flat package list.
type ItemsSpec struct {
	Items []string `yaml:"items"`
}

// Pip3Spec carries the pip3 package list plus distutils packages that
// must be installed through the system package manager first.
type Pip3Spec struct {
	Items     []string `yaml:"items"`
	Distutils []string `yaml:"distutils"`
}

// LinkSpec maps source paths to destination paths. The "recursive" key
// is reserved; every other key is a source→destination entry.
type LinkSpec struct {
	Recursive bool
	Items     map[string]string
}

// IsEmpty reports whether the spec carries no link entries
func (l LinkSpec) IsEmpty() bool {
	return len(l.Items) == 0
}

// Keys returns the source paths in sorted order
func (l LinkSpec) Keys() []string {
	return sortedKeys(l.Items)
}

// UnmarshalYAML implements yaml.Unmarshaler for the flattened form
func (l *LinkSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Newf(errors.ErrConfigParse, "link section must be a mapping, got %s", kindName(value.Kind))
	}
	l.Items = make(map[string]string)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		if keyNode.Value == "recursive" {
			if err := valNode.Decode(&l.Recursive); err != nil {
				return errors.Wrap(err, errors.ErrConfigParse, "link.recursive must be a bool")
			}
			continue
		}
		var dst string
		if err := valNode.Decode(&dst); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "link entry %q must map to a string", keyNode.Value)
		}
		l.Items[keyNode.Value] = dst
	}
	return nil
}

// ScriptSpec maps script names to operator-authored shell bodies. Every
// key at the section level is an entry.
type ScriptSpec struct {
	Items map[string]string
}

// IsEmpty reports whether the spec carries no scripts
func (s ScriptSpec) IsEmpty() bool {
	return len(s.Items) == 0
}

// Names returns the script names in sorted order
func (s ScriptSpec) Names() []string {
	return sortedKeys(s.Items)
}

// UnmarshalYAML implements yaml.Unmarshaler for the flattened form
func (s *ScriptSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Newf(errors.ErrConfigParse, "script section must be a mapping, got %s", kindName(value.Kind))
	}
	s.Items = make(map[string]string)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var body string
		if err := valNode.Decode(&body); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "script entry %q must map to a string body", keyNode.Value)
		}
		s.Items[keyNode.Value] = body
	}
	return nil
}

// GithubSpec maps repository identifiers (owner/name) to their repo
// specs. The "repopath" key is reserved for the checkout root; every
// other key is a repository entry. The git-crypt section shares this
// shape.
type GithubSpec struct {
	Repopath string
	Items    map[string]RepoSpec
}

// DefaultRepopath is the checkout root used when neither the manifest
// nor the app config overrides it. An empty Repopath after parsing
// means the key was absent, which lets the config override apply.
const DefaultRepopath = "repos"

// IsEmpty reports whether the spec carries no repositories
func (g GithubSpec) IsEmpty() bool {
	return len(g.Items) == 0
}

// Keys returns the repository identifiers in sorted order
func (g GithubSpec) Keys() []string {
	return sortedKeys(g.Items)
}

// UnmarshalYAML implements yaml.Unmarshaler for the flattened form
func (g *GithubSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Newf(errors.ErrConfigParse, "repo section must be a mapping, got %s", kindName(value.Kind))
	}
	g.Items = make(map[string]RepoSpec)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		if keyNode.Value == "repopath" {
			if err := valNode.Decode(&g.Repopath); err != nil {
				return errors.Wrap(err, errors.ErrConfigParse, "repopath must be a string")
			}
			continue
		}
		var repo RepoSpec
		if err := valNode.Decode(&repo); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "repo entry %q is invalid", keyNode.Value)
		}
		g.Items[keyNode.Value] = repo
	}
	return nil
}

// RepoSpec is the per-repository sub-configuration nested under the
// github and git-crypt sections.
type RepoSpec struct {
	Link   LinkSpec   `yaml:"link"`
	Cargo  []string   `yaml:"cargo"`
	Script ScriptSpec `yaml:"script"`
}

// Load reads and parses the manifest file at path
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", path)
	}
	return Parse(data)
}

// Parse deserializes a manifest document
func Parse(data []byte) (*Spec, error) {
	var sp Spec
	if err := yaml.Unmarshal(data, &sp); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot parse manifest")
	}
	return &sp, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
