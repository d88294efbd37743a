// SPDX-License-Identifier: AGPL-3.0-or-later

// Package progress prints the advisory lines that accompany a run on stderr.
// Nothing written here is part of the rendered timeline.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/bartekus/chronicle/internal/history"
)

// Reporter writes styled status lines. Styles collapse to plain text when w
// is not a terminal.
type Reporter struct {
	w   io.Writer
	now func() time.Time

	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
}

// New returns a reporter writing to w.
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:     w,
		now:   time.Now,
		label: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		value: r.NewStyle().Foreground(lipgloss.Color("120")),
		muted: r.NewStyle().Foreground(lipgloss.Color("246")),
	}
}

// WithClock replaces the time source used for relative times.
func (r *Reporter) WithClock(now func() time.Time) *Reporter {
	r.now = now
	return r
}

func (r *Reporter) line(label, text string) {
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render(label+":"), text)
}

// ReposFound reports how many repositories the walk discovered.
func (r *Reporter) ReposFound(root string, n int) {
	r.line("repos", fmt.Sprintf("%s under %s",
		r.value.Render(plural(n, "repository", "repositories")), root))
}

// Query reports whose commits are collected and over which dates.
func (r *Reporter) Query(author, dateRange string) {
	r.line("author", r.value.Render(author)+" "+r.muted.Render("("+dateRange+")"))
}

// Summary reports the size of the timeline and the age of its newest commit.
func (r *Reporter) Summary(commits []history.Commit, repos int, elapsed time.Duration) {
	text := fmt.Sprintf("%s from %s in %s",
		r.value.Render(plural(len(commits), "commit", "commits")),
		plural(repos, "repository", "repositories"),
		elapsed.Round(time.Millisecond))

	if newest, ok := newestDate(commits); ok {
		text += r.muted.Render(", newest " + humanize.RelTime(newest, r.now(), "ago", "from now"))
	}
	r.line("done", text)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}

// newestDate returns the latest parseable commit date.
func newestDate(commits []history.Commit) (time.Time, bool) {
	var newest time.Time
	found := false
	for _, c := range commits {
		t, err := time.Parse(time.RFC3339, c.Date)
		if err != nil {
			continue
		}
		if !found || t.After(newest) {
			newest, found = t, true
		}
	}
	return newest, found
}
