// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Chronicle - Chronicle collects the commits you authored across every Git repository under a folder and renders them as one timeline.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package render turns an ordered commit timeline into text.
//
// Every format is deterministic for a given input: no colors, no terminal
// detection, no clock. Hashes are always shown as their short prefix.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bartekus/chronicle/internal/history"
)

// NoCommitsMessage is printed instead of an empty plain, table or md render.
const NoCommitsMessage = "No commits found."

// Format selects an output layout.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatTable    Format = "table"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// Formats lists the accepted formats in help order.
func Formats() []Format {
	return []Format{FormatPlain, FormatTable, FormatMarkdown, FormatJSON}
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format: %q (must be 'plain', 'table', 'md' or 'json')", s)
}

// Render writes commits to w in the given format. root is used to display
// each repository relative to the scanned folder.
func Render(w io.Writer, format Format, root string, commits []history.Commit) error {
	if len(commits) == 0 && format != FormatJSON {
		_, err := fmt.Fprintln(w, NoCommitsMessage)
		return err
	}

	switch format {
	case FormatPlain:
		return renderPlain(w, root, commits)
	case FormatTable:
		return renderTable(w, root, commits)
	case FormatMarkdown:
		return renderMarkdown(w, root, commits)
	case FormatJSON:
		return renderJSON(w, root, commits)
	default:
		return fmt.Errorf("unknown format: %q", format)
	}
}

// RepoLabel returns repo relative to root in slash form, "." for the root
// itself, or the repository path unchanged when no relative form exists.
func RepoLabel(root, repo string) string {
	if root == "" {
		return filepath.ToSlash(repo)
	}
	rel, err := filepath.Rel(root, repo)
	if err != nil {
		return filepath.ToSlash(repo)
	}
	return filepath.ToSlash(rel)
}

// collapse folds every whitespace run, newlines included, into one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
