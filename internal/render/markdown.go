// SPDX-License-Identifier: AGPL-3.0-or-later
package render

import (
	"io"
	"strings"

	"github.com/bartekus/chronicle/internal/history"
)

// markdownAlign centres the hash column and left-aligns the rest.
var markdownAlign = []string{":---", ":---", ":---:", ":---", ":---"}

var markdownEscaper = strings.NewReplacer(`|`, `\|`)

// renderMarkdown writes a pipe table. Cells are not padded; Markdown
// renderers handle alignment.
func renderMarkdown(w io.Writer, root string, commits []history.Commit) error {
	rows := make([][]string, 0, len(commits))
	for _, c := range commits {
		rows = append(rows, []string{
			c.Date,
			markdownCell(RepoLabel(root, c.Repo)),
			c.ShortHash(),
			markdownCell(c.Subject),
			markdownCell(c.Body),
		})
	}

	_, err := io.WriteString(w, markdownTable(tableHeaders, markdownAlign, rows))
	return err
}

// markdownCell keeps a value on one line and escapes the cell delimiter.
func markdownCell(s string) string {
	return markdownEscaper.Replace(collapse(s))
}

func markdownTable(headers, align []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("| " + strings.Join(align, " | ") + " |\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	return b.String()
}
