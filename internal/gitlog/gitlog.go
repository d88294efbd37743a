// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gitlog reads authored history out of a repository by running
// git log with a control-character delimited pretty format.
package gitlog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bartekus/chronicle/internal/history"
)

const (
	// FieldSep separates hash, date, subject and body within one record (ASCII unit separator).
	FieldSep = "\x1f"
	// RecordSep terminates each record (ASCII record separator).
	RecordSep = "\x1e"

	// prettyFormat uses git's %x escapes so the separators never pass through a shell.
	prettyFormat = "format:%H%x1f%ad%x1f%s%x1f%b%x1e"
)

// Query selects which commits are read from each repository.
type Query struct {
	// Author is handed to git's --author filter unchanged.
	Author string
	// Since and Until are passed through in any date dialect git accepts.
	Since    string
	Until    string
	NoMerges bool
}

// Args builds the git log argument vector for q.
func Args(q Query) []string {
	args := []string{
		"log",
		"--author=" + q.Author,
		"--date=iso-strict",
		"--pretty=" + prettyFormat,
	}
	if q.NoMerges {
		args = append(args, "--no-merges")
	}
	if q.Since != "" {
		args = append(args, "--since="+q.Since)
	}
	if q.Until != "" {
		args = append(args, "--until="+q.Until)
	}
	return args
}

// Parse splits raw git log output into commit records owned by repo.
// Records without a hash or a date are dropped.
func Parse(repo string, raw []byte) []history.Commit {
	chunks := strings.Split(string(raw), RecordSep)
	commits := make([]history.Commit, 0, len(chunks))

	for _, chunk := range chunks {
		// git puts a newline between entries of a format: pretty string.
		chunk = strings.TrimLeft(chunk, "\r\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		parts := strings.SplitN(chunk, FieldSep, 4)
		c := history.Commit{
			Repo: repo,
			Hash: strings.TrimSpace(parts[0]),
		}
		if len(parts) > 1 {
			c.Date = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			c.Subject = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			c.Body = strings.TrimSpace(parts[3])
		}

		if !c.Valid() {
			continue
		}
		commits = append(commits, c)
	}

	return commits
}

// Extractor reads one repository's matching commits through a Runner.
type Extractor struct {
	Runner Runner
	Query  Query
}

// NewExtractor returns an Extractor backed by the given runner.
func NewExtractor(r Runner, q Query) *Extractor {
	return &Extractor{Runner: r, Query: q}
}

// Commits implements history.Source.
// A failing git invocation is returned as an error; the caller decides whether it is fatal.
func (e *Extractor) Commits(ctx context.Context, repo string) ([]history.Commit, error) {
	res, err := e.Runner.Run(ctx, repo, Args(e.Query)...)
	if err != nil {
		return nil, fmt.Errorf("reading history of %s: %w", repo, err)
	}
	return Parse(repo, res.Stdout), nil
}

// ConfiguredEmail returns git's user.email as seen from dir, or "" when unset.
func (e *Extractor) ConfiguredEmail(ctx context.Context, dir string) string {
	res, err := e.Runner.Run(ctx, dir, "config", "--get", "user.email")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(res.Stdout))
}
