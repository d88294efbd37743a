// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Chronicle - Chronicle collects the commits you authored across every Git repository under a folder and renders them as one timeline.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config holds the options for one chronicle run.
//
// Values are layered: Defaults, then the config file, then the environment
// (including a .env file), then explicit command-line flags. Each layer only
// overrides what it actually sets.
package config

import (
	"fmt"
	"time"

	"github.com/bartekus/chronicle/internal/gitlog"
	"github.com/bartekus/chronicle/internal/render"
	"github.com/bartekus/chronicle/internal/timeline"
	"github.com/bartekus/chronicle/internal/workpool"
)

const (
	DefaultRoot     = "."
	DefaultMaxDepth = 6
	DefaultGitBin   = "git"
)

// Options is the effective configuration of a run.
type Options struct {
	Root      string         `yaml:"root" toml:"root"`
	Author    string         `yaml:"author" toml:"author"`
	Sort      timeline.Order `yaml:"sort" toml:"sort"`
	MaxDepth  int            `yaml:"depth" toml:"depth"`
	Since     string         `yaml:"since,omitempty" toml:"since"`
	Until     string         `yaml:"until,omitempty" toml:"until"`
	LastMonth bool           `yaml:"last_month" toml:"last_month"`
	Format    render.Format  `yaml:"format" toml:"format"`
	Workers   int            `yaml:"workers" toml:"workers"`
	Timeout   time.Duration  `yaml:"timeout" toml:"timeout"`
	GitBin    string         `yaml:"git" toml:"git"`
	NoMerges  bool           `yaml:"no_merges" toml:"no_merges"`
	Ignore    []string       `yaml:"ignore,omitempty" toml:"ignore"`
}

// Defaults returns the options used when nothing else is configured. The
// author is left empty; callers fall back to the identity git is configured
// with.
func Defaults() Options {
	return Options{
		Root:     DefaultRoot,
		Sort:     timeline.Desc,
		MaxDepth: DefaultMaxDepth,
		Format:   render.FormatPlain,
		Workers:  workpool.DefaultWorkers,
		Timeout:  gitlog.DefaultTimeout,
		GitBin:   DefaultGitBin,
	}
}

// ValidateDiscovery checks the options needed to walk for repositories.
func (o Options) ValidateDiscovery() error {
	if o.Root == "" {
		return ErrMissingRoot
	}
	if o.MaxDepth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, o.MaxDepth)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, o.Workers)
	}
	return nil
}

// Validate checks everything a timeline run needs, including the author.
func (o Options) Validate() error {
	if err := o.ValidateDiscovery(); err != nil {
		return err
	}
	if _, err := timeline.ParseOrder(string(o.Sort)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSort, o.Sort)
	}
	if _, err := render.ParseFormat(string(o.Format)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, o.Format)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, o.Timeout)
	}
	if o.LastMonth && (o.Since != "" || o.Until != "") {
		return ErrConflictingRange
	}
	if o.Author == "" {
		return ErrMissingAuthor
	}
	return nil
}

// Normalize lower-cases the enumerated fields so later stages can compare
// them directly. It is a no-op on values Validate would reject.
func (o *Options) Normalize() {
	if s, err := timeline.ParseOrder(string(o.Sort)); err == nil {
		o.Sort = s
	}
	if f, err := render.ParseFormat(string(o.Format)); err == nil {
		o.Format = f
	}
}
