// Package walker expands recursive link entries: a (source directory,
// destination directory) pair becomes one (absolute file, computed
// destination) pair per regular file underneath the source.
package walker

import (
	"io/fs"
	"path/filepath"

	"github.com/scottidler/manifest/pkg/errors"
	"github.com/scottidler/manifest/pkg/paths"
)

// LinkPair is one line of a linker heredoc: an absolute source file and
// its destination path.
type LinkPair struct {
	Source string
	Dest   string
}

// RecursiveLinks walks the directory at src (resolved against cwd) and
// returns one pair per regular file, preserving the directory layout
// under the expanded destination. WalkDir yields lexical order, so the
// result is deterministic.
func RecursiveLinks(src, dst, cwd, home string) ([]LinkPair, error) {
	root := paths.AbsSource(cwd, src)
	dstRoot := paths.ExpandHome(dst, home)

	var pairs []LinkPair
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		pairs = append(pairs, LinkPair{
			Source: path,
			Dest:   filepath.Join(dstRoot, rel),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLinkWalk, "cannot walk link source %s", root)
	}
	return pairs, nil
}
