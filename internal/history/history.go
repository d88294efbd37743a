// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Chronicle - Chronicle collects the commits you authored across every Git repository under a folder and renders them as one timeline.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history defines the commit record shared by the extractor, the
// timeline aggregator and the renderers.
package history

import "context"

// ShortHashLen is the length of the abbreviated hash shown in every output format.
const ShortHashLen = 7

// Commit represents a single authored commit from one repository.
type Commit struct {
	// Repo is the absolute path of the repository the commit was read from.
	Repo string
	// Hash is the full commit identifier.
	Hash string
	// Date is the commit date in strict ISO-8601 form with an explicit offset.
	// Lexicographic order on this string is the timeline order.
	Date    string
	Subject string
	Body    string
}

// ShortHash returns the abbreviated hash. Hashes shorter than ShortHashLen are
// returned whole.
func (c Commit) ShortHash() string {
	if len(c.Hash) <= ShortHashLen {
		return c.Hash
	}
	return c.Hash[:ShortHashLen]
}

// Valid reports whether the record carries the fields required downstream.
func (c Commit) Valid() bool {
	return c.Repo != "" && c.Hash != "" && c.Date != ""
}

// Source provides commit history for one repository.
type Source interface {
	Commits(ctx context.Context, repo string) ([]Commit, error)
}
