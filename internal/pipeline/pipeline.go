// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Chronicle - Chronicle collects the commits you authored across every Git repository under a folder and renders them as one timeline.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package pipeline runs one timeline: locate repositories, read each one's
// history, merge the results.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bartekus/chronicle/internal/config"
	"github.com/bartekus/chronicle/internal/daterange"
	"github.com/bartekus/chronicle/internal/gitlog"
	"github.com/bartekus/chronicle/internal/history"
	"github.com/bartekus/chronicle/internal/locator"
	"github.com/bartekus/chronicle/internal/progress"
	"github.com/bartekus/chronicle/internal/timeline"
)

// Result is the outcome of one run.
type Result struct {
	Root    string
	Repos   []string
	Range   daterange.Range
	Commits []history.Commit
}

// Pipeline holds the collaborators of a run. The zero value is usable: git
// is run through gitlog.ExecRunner configured from the options, logging is
// discarded, and no progress is reported.
type Pipeline struct {
	Runner   gitlog.Runner
	Log      logrus.FieldLogger
	Progress *progress.Reporter
	Now      func() time.Time
	Location *time.Location
}

func (p *Pipeline) runner(opts config.Options) gitlog.Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return gitlog.ExecRunner{Bin: opts.GitBin, Timeout: opts.Timeout}
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Log != nil {
		return p.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// ResolveRoot expands a leading "~" and makes root absolute.
func ResolveRoot(root string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", root, err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	return abs, nil
}

// Prepare normalises opts, makes the root absolute and fills in the author
// from git's configured user.email when none was given. The returned options
// have passed Validate.
func (p *Pipeline) Prepare(ctx context.Context, opts config.Options) (config.Options, error) {
	opts.Normalize()

	root, err := ResolveRoot(opts.Root)
	if err != nil {
		return opts, err
	}
	opts.Root = root

	if strings.TrimSpace(opts.Author) == "" {
		dir := root
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			dir = ""
		}
		ext := gitlog.NewExtractor(p.runner(opts), gitlog.Query{})
		opts.Author = ext.ConfiguredEmail(ctx, dir)
		if opts.Author != "" {
			p.logger().WithField("author", opts.Author).Debug("using git user.email as author")
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// DateRange derives the git date bounds for opts.
func (p *Pipeline) DateRange(opts config.Options) daterange.Range {
	now := p.now()
	if p.Location != nil {
		now = now.In(p.Location)
	}
	if opts.LastMonth {
		return daterange.LastMonth(now)
	}
	return daterange.NewResolver(now.Location()).ResolveRange(
		daterange.Range{Since: opts.Since, Until: opts.Until}, now)
}

// Locate returns the absolute root and the repositories found beneath it.
func (p *Pipeline) Locate(ctx context.Context, opts config.Options) (string, []string, error) {
	root, err := ResolveRoot(opts.Root)
	if err != nil {
		return "", nil, err
	}

	loc := locator.New(opts.Workers, opts.Ignore, p.Log)
	repos, err := loc.Find(ctx, root, opts.MaxDepth)
	if err != nil {
		return root, nil, fmt.Errorf("locating repositories: %w", err)
	}
	return root, repos, nil
}

// Run executes the whole pipeline. opts should come from Prepare.
// Repositories whose history cannot be read are logged and skipped.
func (p *Pipeline) Run(ctx context.Context, opts config.Options) (*Result, error) {
	start := p.now()

	root, repos, err := p.Locate(ctx, opts)
	if err != nil {
		return nil, err
	}
	if p.Progress != nil {
		p.Progress.ReposFound(root, len(repos))
	}

	rng := p.DateRange(opts)
	if p.Progress != nil {
		p.Progress.Query(opts.Author, daterange.Describe(rng, p.now()))
	}
	p.logger().WithFields(logrus.Fields{
		"since": rng.Since,
		"until": rng.Until,
	}).Debug("date range")

	ext := gitlog.NewExtractor(p.runner(opts), gitlog.Query{
		Author:   opts.Author,
		Since:    rng.Since,
		Until:    rng.Until,
		NoMerges: opts.NoMerges,
	})
	collector := &timeline.Collector{Source: ext, Workers: opts.Workers, Log: p.Log}
	batches, err := collector.Collect(ctx, repos)
	if err != nil {
		return nil, fmt.Errorf("collecting history: %w", err)
	}

	commits := timeline.Merge(batches, opts.Sort)
	if p.Progress != nil {
		p.Progress.Summary(commits, len(repos), p.now().Sub(start))
	}

	return &Result{Root: root, Repos: repos, Range: rng, Commits: commits}, nil
}
