// SPDX-License-Identifier: AGPL-3.0-or-later
package gitlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single git invocation so one stalled repository
// cannot hang the run.
const DefaultTimeout = 60 * time.Second

// Result holds the captured output of one process invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes the version-control tool inside a directory.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExitError reports a process that ran but exited with a non-zero status.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", firstArg(e.Args), e.ExitCode)
	if e.Stderr == "" {
		return msg
	}
	return msg + ": " + e.Stderr
}

// ExecRunner runs git through os/exec with an argument vector, never a shell string.
type ExecRunner struct {
	// Bin is the git executable. Empty means "git" from PATH.
	Bin string
	// Timeout applies per invocation. Zero means DefaultTimeout; negative disables it.
	Timeout time.Duration
	// Env is appended to the inherited environment.
	Env []string
}

// Run executes the tool with dir as working directory.
// A non-zero exit is returned as *ExitError alongside the captured Result.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	bin := r.Bin
	if bin == "" {
		bin = "git"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("git %s in %s: %w", firstArg(args), dir, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}
	return res, fmt.Errorf("running %s: %w", bin, err)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
