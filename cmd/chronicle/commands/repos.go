// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/chronicle/cmd/chronicle/internal/clierr"
	"github.com/bartekus/chronicle/internal/pipeline"
	"github.com/bartekus/chronicle/internal/render"
)

func newReposCmd(e env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List the repositories chronicle would read",
		Long: `Walks --root exactly like the timeline does and prints each repository found,
relative to the root, one per line. No git commands are run.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepos(cmd, e)
		},
	}
	cmd.Flags().Bool("absolute", false, "print absolute paths")
	return cmd
}

func runRepos(cmd *cobra.Command, e env) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	opts.Normalize()
	if err := opts.ValidateDiscovery(); err != nil {
		return clierr.Usage("invalid options", err)
	}

	p := &pipeline.Pipeline{Runner: e.runner, Log: newLogger(cmd)}
	root, repos, err := p.Locate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	absolute, _ := cmd.Flags().GetBool("absolute")
	out := cmd.OutOrStdout()
	for _, repo := range repos {
		line := repo
		if !absolute {
			line = render.RepoLabel(root, repo)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}
