// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bartekus/chronicle/internal/render"
	"github.com/bartekus/chronicle/internal/timeline"
)

// Environment variables read by ApplyEnv.
const (
	EnvRoot    = "CHRONICLE_ROOT"
	EnvAuthor  = "CHRONICLE_AUTHOR"
	EnvSort    = "CHRONICLE_SORT"
	EnvDepth   = "CHRONICLE_DEPTH"
	EnvFormat  = "CHRONICLE_FORMAT"
	EnvWorkers = "CHRONICLE_WORKERS"
	EnvGit     = "CHRONICLE_GIT"
)

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays the CHRONICLE_* variables found by lookup onto o.
// Empty values are treated as unset.
func ApplyEnv(o *Options, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvRoot); ok {
		o.Root = v
	}
	if v, ok := get(EnvAuthor); ok {
		o.Author = v
	}
	if v, ok := get(EnvSort); ok {
		o.Sort = timeline.Order(v)
	}
	if v, ok := get(EnvFormat); ok {
		o.Format = render.Format(v)
	}
	if v, ok := get(EnvGit); ok {
		o.GitBin = v
	}
	if v, ok := get(EnvDepth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidDepth, EnvDepth, v)
		}
		o.MaxDepth = n
	}
	if v, ok := get(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidWorkers, EnvWorkers, v)
		}
		o.Workers = n
	}
	return nil
}
