// SPDX-License-Identifier: AGPL-3.0-or-later
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bartekus/chronicle/internal/history"
)

type jsonCommit struct {
	Repo      string `json:"repo"`
	Path      string `json:"path"`
	Hash      string `json:"hash"`
	ShortHash string `json:"short_hash"`
	Date      string `json:"date"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// renderJSON writes the timeline as an indented array; an empty timeline is [].
func renderJSON(w io.Writer, root string, commits []history.Commit) error {
	out := make([]jsonCommit, 0, len(commits))
	for _, c := range commits {
		out = append(out, jsonCommit{
			Repo:      RepoLabel(root, c.Repo),
			Path:      c.Repo,
			Hash:      c.Hash,
			ShortHash: c.ShortHash(),
			Date:      c.Date,
			Subject:   c.Subject,
			Body:      c.Body,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}
