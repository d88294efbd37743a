// SPDX-License-Identifier: AGPL-3.0-or-later
package locator

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// gitdirToken marks a .git file that points at metadata kept elsewhere
// (worktrees and submodules).
const gitdirToken = "gitdir:"

// maxGitFileSize caps how much of a .git pointer file is read.
const maxGitFileSize = 4096

// DefaultIgnoreDirs returns the directory names the walk never enters.
// Matching is on the exact directory name, not on path segments.
func DefaultIgnoreDirs() []string {
	return []string{
		".git",
		".hg",
		".svn",
		"node_modules",
		"bower_components",
		"dist",
		"build",
		"out",
		"target",
		"vendor",
		".next",
		".nuxt",
		".svelte-kit",
		".turbo",
		".cache",
		"__pycache__",
		".venv",
		"venv",
		".tox",
		".idea",
	}
}

// IsRepoRoot reports whether dir is the top of a Git working tree: a .git
// directory, or a .git file containing a gitdir pointer.
// Any I/O error means "not a repository".
func IsRepoRoot(dir string) bool {
	marker := filepath.Join(dir, ".git")
	info, err := os.Stat(marker)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return true
	}
	if !info.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(marker) //nolint:gosec // marker path is built from the walk
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxGitFileSize))
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(gitdirToken))
}

func ignoreSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}
