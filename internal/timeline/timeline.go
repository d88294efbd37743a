// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline merges per-repository commit lists into one ordered sequence.
package timeline

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bartekus/chronicle/internal/history"
	"github.com/bartekus/chronicle/internal/workpool"
)

// Order is the direction of the timeline.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder validates a sort direction.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort order: %q (must be 'asc' or 'desc')", s)
	}
}

// Merge concatenates batches in the given order and sorts the result by the
// commit date string, ascending, then reverses it for Desc.
// Equal dates keep their concatenation order; there is no secondary key and
// no deduplication.
func Merge(batches [][]history.Commit, order Order) []history.Commit {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	all := make([]history.Commit, 0, total)
	for _, b := range batches {
		all = append(all, b...)
	}

	slices.SortStableFunc(all, func(a, b history.Commit) int {
		return strings.Compare(a.Date, b.Date)
	})
	if order == Desc {
		slices.Reverse(all)
	}
	return all
}

// Collector reads history from every repository through a Source.
type Collector struct {
	Source  history.Source
	Workers int
	Log     logrus.FieldLogger
}

// Collect returns one batch per repository, aligned with repos.
// A repository whose history cannot be read is logged as a warning and
// contributes an empty batch; it never aborts the run.
func (c *Collector) Collect(ctx context.Context, repos []string) ([][]history.Commit, error) {
	log := c.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	batches := make([][]history.Commit, len(repos))
	err := workpool.Each(ctx, c.Workers, len(repos), func(ctx context.Context, i int) {
		commits, err := c.Source.Commits(ctx, repos[i])
		if err != nil {
			log.WithField("repo", repos[i]).WithError(err).Warn("skipping repository")
			return
		}
		batches[i] = commits
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}
