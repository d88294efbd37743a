// SPDX-License-Identifier: AGPL-3.0-or-later
package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bartekus/chronicle/internal/history"
)

var tableHeaders = []string{"Date", "Repo", "Hash", "Title", "Description"}

// tableMinWidths are the per-column floors, in display cells.
var tableMinWidths = []int{20, 10, 7, 20, 20}

const (
	tableCellSep = " | "
	tableRuleSep = "-|-"
)

// tableRows builds one row per commit. Title and Description are flattened to
// a single line so tabs and newlines cannot break column alignment.
func tableRows(root string, commits []history.Commit) [][]string {
	rows := make([][]string, 0, len(commits))
	for _, c := range commits {
		rows = append(rows, []string{
			c.Date,
			RepoLabel(root, c.Repo),
			c.ShortHash(),
			collapse(c.Subject),
			collapse(c.Body),
		})
	}
	return rows
}

// columnWidths returns, per column, the larger of the floor and the widest
// header or cell measured in terminal display cells.
func columnWidths(headers []string, rows [][]string, floors []int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(floors[i], runewidth.StringWidth(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// renderTable writes a fixed-width, pipe-delimited table. Every cell,
// including the last, is padded to its column width.
func renderTable(w io.Writer, root string, commits []history.Commit) error {
	rows := tableRows(root, commits)
	widths := columnWidths(tableHeaders, rows, tableMinWidths)

	var b strings.Builder
	writeTableLine(&b, tableHeaders, widths)

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	b.WriteString(strings.Join(rule, tableRuleSep) + "\n")

	for _, row := range rows {
		writeTableLine(&b, row, widths)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTableLine(b *strings.Builder, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	b.WriteString(strings.Join(padded, tableCellSep) + "\n")
}
