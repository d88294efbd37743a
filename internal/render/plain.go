// SPDX-License-Identifier: AGPL-3.0-or-later
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/chronicle/internal/history"
)

const bodyIndent = "    "

// renderPlain writes one headline per commit followed by its indented body,
// with a blank line between commits.
func renderPlain(w io.Writer, root string, commits []history.Commit) error {
	var b strings.Builder

	for i, c := range commits {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  [%s]  %s  %s\n", c.Date, RepoLabel(root, c.Repo), c.ShortHash(), c.Subject)

		if c.Body == "" {
			continue
		}
		for _, line := range strings.Split(c.Body, "\n") {
			line = strings.TrimRight(line, " \t\r")
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString(bodyIndent + line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
