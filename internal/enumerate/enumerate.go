// Package enumerate walks root paths and yields candidate files for the
// duplicate scan. Traversal is sequential and lexical, so the order of
// yielded entries is stable across runs over an unchanged tree.
package enumerate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Entry is a candidate file discovered under one of the scan roots.
type Entry struct {
	Path string
	Size int64
}

// Policy controls which files the enumerator yields.
type Policy struct {
	FollowSymlinks bool
	SkipHidden     bool
	MinSize        int64
}

// WarnFunc receives per-entry failures. Such failures never abort the walk.
type WarnFunc func(path string, err error)

// Walk enumerates all regular files under the given roots, in root order,
// calling fn for each. Files inside a root that cannot be read are passed
// to warn and skipped; a root that cannot be read at all aborts with an
// error, since that indicates a misconfiguration rather than a race.
func Walk(ctx context.Context, roots []string, policy Policy, fn func(Entry), warn WarnFunc) error {
	w := &walker{
		policy:  policy,
		fn:      fn,
		warn:    warn,
		visited: make(map[dirID]struct{}),
	}

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving root %s: %w", root, err)
		}

		info, err := os.Stat(absRoot)
		if err != nil {
			return fmt.Errorf("accessing root %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("root %s is not a directory", root)
		}

		if err := w.walkDir(ctx, absRoot); err != nil {
			return err
		}
	}

	return nil
}

type walker struct {
	policy  Policy
	fn      func(Entry)
	warn    WarnFunc
	visited map[dirID]struct{}
}

func (w *walker) walkDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// When links are followed, every directory is tracked by identity so a
	// cycle (or a second link to an already-walked tree) is entered once.
	if w.policy.FollowSymlinks {
		info, err := os.Stat(dir)
		if err != nil {
			w.warn(dir, err)
			return nil
		}
		if id, ok := dirIDFor(dir, info); ok {
			if _, seen := w.visited[id]; seen {
				log.Debugf("skipping already-visited directory %s", dir)
				return nil
			}
			w.visited[id] = struct{}{}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// The root itself was readable, so this is a per-entry failure.
		w.warn(dir, err)
		return nil
	}

	// os.ReadDir sorts by name, which keeps traversal deterministic.
	for _, entry := range entries {
		name := entry.Name()
		if w.policy.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		mode := entry.Type()

		switch {
		case mode&os.ModeSymlink != 0:
			if !w.policy.FollowSymlinks {
				log.Debugf("skipping symlink %s", path)
				continue
			}
			if err := w.followSymlink(ctx, path); err != nil {
				return err
			}

		case mode.IsDir():
			if err := w.walkDir(ctx, path); err != nil {
				return err
			}

		case mode.IsRegular():
			info, err := entry.Info()
			if err != nil {
				w.warn(path, err)
				continue
			}
			w.yield(path, info.Size())
		}
	}

	return nil
}

// followSymlink resolves a symlink and either yields its file target or
// descends into its directory target.
func (w *walker) followSymlink(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		// Broken symlink or unreadable target.
		w.warn(path, err)
		return nil
	}

	if info.Mode().IsRegular() {
		w.yield(path, info.Size())
		return nil
	}

	if info.IsDir() {
		return w.walkDir(ctx, path)
	}

	return nil
}

func (w *walker) yield(path string, size int64) {
	// Empty files are trivially identical and never meaningful duplicates.
	if size == 0 || size < w.policy.MinSize {
		return
	}
	w.fn(Entry{Path: path, Size: size})
}
