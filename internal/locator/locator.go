// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Chronicle - Chronicle collects the commits you authored across every Git repository under a folder and renders them as one timeline.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package locator finds Git repository roots beneath a directory.
//
// The walk is breadth-first: every level of the tree is examined on a bounded
// worker pool and joined before the next level starts. A repository root is a
// leaf; nothing inside it is visited.
package locator

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/bartekus/chronicle/internal/workpool"
)

// Locator walks a directory tree looking for repository roots.
type Locator struct {
	// Workers bounds how many directories are examined at once.
	Workers int
	// Ignore lists directory names never entered. Nil means DefaultIgnoreDirs.
	Ignore []string
	Log    logrus.FieldLogger
}

// New returns a Locator with the default ignore list plus extra names.
func New(workers int, extraIgnore []string, log logrus.FieldLogger) *Locator {
	ignore := append(DefaultIgnoreDirs(), extraIgnore...)
	return &Locator{Workers: workers, Ignore: ignore, Log: log}
}

// visit is the outcome of examining one directory.
type visit struct {
	repo     bool
	children []string
}

// Find returns the absolute paths of all repository roots reachable from root
// within maxDepth levels (root itself is depth 0). A missing or non-directory
// root yields an empty result. Only context cancellation is reported as an error.
func (l *Locator) Find(ctx context.Context, root string, maxDepth int) ([]string, error) {
	log := l.logger()

	abs, err := filepath.Abs(root)
	if err != nil {
		log.WithError(err).Debugf("cannot resolve root %s", root)
		return []string{}, nil
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		log.Debugf("root %s is not a directory", abs)
		return []string{}, nil
	}

	ignore := l.Ignore
	if ignore == nil {
		ignore = DefaultIgnoreDirs()
	}
	skip := ignoreSet(ignore)

	var repos []string
	frontier := []string{abs}

	for depth := 0; len(frontier) > 0; depth++ {
		descend := depth < maxDepth
		results := make([]visit, len(frontier))

		err := workpool.Each(ctx, l.Workers, len(frontier), func(_ context.Context, i int) {
			results[i] = examine(frontier[i], descend, skip, log)
		})
		if err != nil {
			return nil, err
		}

		var next []string
		for i, r := range results {
			if r.repo {
				repos = append(repos, frontier[i])
				continue
			}
			next = append(next, r.children...)
		}
		frontier = next
	}

	return dedupeSorted(repos), nil
}

// examine tests dir for a repository marker and, when it is not one and the
// depth budget allows, lists the subdirectories to visit next.
func examine(dir string, descend bool, skip map[string]struct{}, log logrus.FieldLogger) visit {
	if IsRepoRoot(dir) {
		return visit{repo: true}
	}
	if !descend {
		return visit{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.WithError(err).Debugf("skipping unreadable directory %s", dir)
		return visit{}
	}

	var children []string
	for _, e := range entries {
		if _, ok := skip[e.Name()]; ok {
			continue
		}
		path := filepath.Join(dir, e.Name())

		switch {
		case e.IsDir():
			children = append(children, path)
		case e.Type()&os.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil {
				log.WithError(err).Debugf("skipping broken symlink %s", path)
				continue
			}
			if info.IsDir() {
				children = append(children, path)
			}
		}
	}
	return visit{children: children}
}

// dedupeSorted sorts paths and drops any that resolve, through symlinks, to a
// repository already listed. The first path in lexical order is kept.
func dedupeSorted(paths []string) []string {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	out := make([]string, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, p := range sorted {
		key := p
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			key = resolved
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (l *Locator) logger() logrus.FieldLogger {
	if l.Log != nil {
		return l.Log
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
