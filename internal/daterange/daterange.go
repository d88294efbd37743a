// SPDX-License-Identifier: AGPL-3.0-or-later

// Package daterange normalises the since/until bounds handed to git log.
//
// git's --since and --until are both inclusive to the second. A bound given as
// a bare date means midnight in the resolver's location, not git's default of
// "that date at the current time of day".
package daterange

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Range is a pair of git date bounds; empty means unbounded.
type Range struct {
	Since string
	Until string
}

// localLayouts are interpreted in the resolver's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Resolver turns user-supplied date expressions into RFC 3339 timestamps.
type Resolver struct {
	parser   *when.Parser
	Location *time.Location
}

// NewResolver returns a resolver using English natural-language rules.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Resolver{parser: w, Location: loc}
}

// Resolve normalises expr relative to now. Fixed layouts are tried first, then
// natural language ("yesterday", "last week"). Anything unrecognised is
// returned unchanged so git's own date parser still gets a chance.
func (r *Resolver) Resolve(expr string, now time.Time) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}

	if t, err := time.Parse(time.RFC3339, expr); err == nil {
		return t.Format(time.RFC3339)
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, expr, r.Location); err == nil {
			return t.Format(time.RFC3339)
		}
	}

	res, err := r.parser.Parse(expr, now.In(r.Location))
	if err == nil && res != nil && strings.EqualFold(strings.TrimSpace(res.Text), expr) {
		return res.Time.Format(time.RFC3339)
	}
	return expr
}

// ResolveRange applies Resolve to both bounds.
func (r *Resolver) ResolveRange(rng Range, now time.Time) Range {
	return Range{
		Since: r.Resolve(rng.Since, now),
		Until: r.Resolve(rng.Until, now),
	}
}

// LastMonth returns the previous calendar month in now's location: from the
// first day of that month (inclusive) up to the first day of the current
// month (exclusive). git's --until is inclusive, so the upper bound is the
// last second before the current month starts.
func LastMonth(now time.Time) Range {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonth := thisMonth.AddDate(0, -1, 0)
	return Range{
		Since: prevMonth.Format(time.RFC3339),
		Until: thisMonth.Add(-time.Second).Format(time.RFC3339),
	}
}

// Describe renders a range for the progress output, e.g.
// "since 2025-09-01 00:00 (1 month ago) until 2025-09-30 23:59 (2 weeks ago)".
func Describe(rng Range, now time.Time) string {
	var parts []string
	if rng.Since != "" {
		parts = append(parts, "since "+describeBound(rng.Since, now))
	}
	if rng.Until != "" {
		parts = append(parts, "until "+describeBound(rng.Until, now))
	}
	if len(parts) == 0 {
		return "all dates"
	}
	return strings.Join(parts, " ")
}

func describeBound(s string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02 15:04") + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}
