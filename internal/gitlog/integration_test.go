// SPDX-License-Identifier: AGPL-3.0-or-later
package gitlog

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolatedEnv keeps the host's global git configuration out of the tests.
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	home := t.TempDir()
	return []string{
		"HOME=" + home,
		"XDG_CONFIG_HOME=" + filepath.Join(home, ".config"),
		"GIT_CONFIG_NOSYSTEM=1",
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, env []string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func commitAt(t *testing.T, dir string, env []string, email, date, message string) {
	t.Helper()
	commitEnv := append([]string{}, env...)
	commitEnv = append(commitEnv,
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL="+email,
		"GIT_AUTHOR_DATE="+date,
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL="+email,
		"GIT_COMMITTER_DATE="+date,
	)
	runGit(t, dir, commitEnv, "commit", "--allow-empty", "-q", "-m", message)
}

func initRepo(t *testing.T, env []string) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, env, "init", "-q")
	runGit(t, dir, env, "config", "user.email", "me@example.com")
	runGit(t, dir, env, "config", "user.name", "Test User")
	runGit(t, dir, env, "config", "commit.gpgsign", "false")
	return dir
}

func TestExtractor_RealGit(t *testing.T) {
	requireGit(t)
	env := isolatedEnv(t)
	dir := initRepo(t, env)

	commitAt(t, dir, env, "me@example.com", "2025-08-31T23:59:59+07:00", "Before the window")
	commitAt(t, dir, env, "me@example.com", "2025-09-10T09:00:00+07:00", "Fix | bug\n\nBody line one\n\nBody, line\ttwo")
	commitAt(t, dir, env, "other@example.com", "2025-09-11T09:00:00+07:00", "Someone else")

	runner := ExecRunner{Env: env}
	ctx := context.Background()

	t.Run("author filter", func(t *testing.T) {
		e := NewExtractor(runner, Query{Author: "me@example.com"})
		commits, err := e.Commits(ctx, dir)
		require.NoError(t, err)
		require.Len(t, commits, 2)

		assert.Equal(t, "Fix | bug", commits[0].Subject)
		assert.Equal(t, "Body line one\n\nBody, line\ttwo", commits[0].Body)
		assert.Equal(t, "2025-09-10T09:00:00+07:00", commits[0].Date)
		assert.Len(t, commits[0].Hash, 40)
		assert.Equal(t, "Before the window", commits[1].Subject)
	})

	t.Run("since excludes commits before the window", func(t *testing.T) {
		e := NewExtractor(runner, Query{
			Author: "me@example.com",
			Since:  "2025-09-01T00:00:00+07:00",
			Until:  "2025-10-01T00:00:00+07:00",
		})
		commits, err := e.Commits(ctx, dir)
		require.NoError(t, err)
		require.Len(t, commits, 1)
		assert.Equal(t, "Fix | bug", commits[0].Subject)
	})

	t.Run("until is inclusive to the second", func(t *testing.T) {
		e := NewExtractor(runner, Query{
			Author: "me@example.com",
			Until:  "2025-08-31T23:59:59+07:00",
		})
		commits, err := e.Commits(ctx, dir)
		require.NoError(t, err)
		require.Len(t, commits, 1)
		assert.Equal(t, "Before the window", commits[0].Subject)
	})

	t.Run("since is inclusive to the second", func(t *testing.T) {
		e := NewExtractor(runner, Query{
			Author: "me@example.com",
			Since:  "2025-09-10T09:00:00+07:00",
		})
		commits, err := e.Commits(ctx, dir)
		require.NoError(t, err)
		require.Len(t, commits, 1)
		assert.Equal(t, "Fix | bug", commits[0].Subject)
	})

	t.Run("configured email", func(t *testing.T) {
		e := NewExtractor(runner, Query{})
		assert.Equal(t, "me@example.com", e.ConfiguredEmail(ctx, dir))
	})
}

func TestExtractor_RealGit_EmptyRepositoryFails(t *testing.T) {
	requireGit(t)
	env := isolatedEnv(t)
	dir := initRepo(t, env)

	e := NewExtractor(ExecRunner{Env: env}, Query{Author: "me@example.com"})
	commits, err := e.Commits(context.Background(), dir)
	require.Error(t, err)
	assert.Empty(t, commits)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.NotZero(t, exitErr.ExitCode)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := ExecRunner{Bin: filepath.Join(t.TempDir(), "no-such-git")}
	_, err := r.Run(context.Background(), t.TempDir(), "log")
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}
