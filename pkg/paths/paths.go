// Package paths resolves the path substitutions the generated script
// depends on: home-directory expansion for link destinations and
// absolute source resolution against the manifest working directory.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/scottidler/manifest/pkg/errors"
)

// Home returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME
// environment variable, and errors out rather than guessing.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}

	home = os.Getenv("HOME")
	if home != "" {
		return home, nil
	}

	return "", errors.New(errors.ErrHomeResolve, "unable to determine home directory: neither os.UserHomeDir() nor HOME are available")
}

// ExpandHome substitutes a leading "~" and any "$HOME" occurrence in
// path with home. Destinations in the manifest are written with either
// form.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		path = home + path[1:]
	}
	return strings.ReplaceAll(path, "$HOME", home)
}

// AbsSource resolves a manifest-relative source path against cwd
func AbsSource(cwd, src string) string {
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(cwd, src)
}
