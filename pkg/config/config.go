// Package config loads the generator's own settings (not the YAML
// manifest): embedded TOML defaults, overlaid by an optional
// manifest.toml next to the manifest, overlaid by MANIFEST_* env vars.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/scottidler/manifest/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Settings are the generator's tunables.
type Settings struct {
	Manifest string // default path of the YAML manifest
	Repopath string // default checkout root for github/git-crypt repos
	Pkgmgr   string // package manager override ("" = auto-detect)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load builds Settings for a run rooted at dir.
func Load(dir string) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. Optional manifest.toml next to the manifest
	path := filepath.Join(dir, "manifest.toml")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", path)
		}
	}

	// 3. MANIFEST_* env vars
	if err := k.Load(env.Provider("MANIFEST_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "MANIFEST_")), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	return &Settings{
		Manifest: k.String("manifest"),
		Repopath: k.String("repopath"),
		Pkgmgr:   k.String("pkgmgr"),
	}, nil
}
