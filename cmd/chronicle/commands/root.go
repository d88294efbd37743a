// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Chronicle - Chronicle collects the commits you authored across every Git repository under a folder and renders them as one timeline.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bartekus/chronicle/cmd/chronicle/internal/clierr"
	"github.com/bartekus/chronicle/internal/gitlog"
	"github.com/bartekus/chronicle/internal/output"
	"github.com/bartekus/chronicle/internal/pipeline"
	"github.com/bartekus/chronicle/internal/progress"
	"github.com/bartekus/chronicle/internal/render"
)

// env carries the collaborators commands need beyond their flags.
// The zero value runs real git against the real clock.
type env struct {
	runner    gitlog.Runner
	now       func() time.Time
	clipboard func(string) error
}

func (e env) newPipeline(log logrus.FieldLogger, stderr io.Writer, quiet bool) *pipeline.Pipeline {
	p := &pipeline.Pipeline{Runner: e.runner, Log: log, Now: e.now}
	if !quiet {
		p.Progress = progress.New(stderr)
		if e.now != nil {
			p.Progress.WithClock(e.now)
		}
	}
	return p
}

// NewRootCmd constructs the chronicle root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(env{})
}

func newRootCmd(e env) *cobra.Command {
	version := os.Getenv("CHRONICLE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "chronicle",
		Short: "One timeline of your commits across every repository under a folder",
		Long: `chronicle finds every Git repository beneath --root, collects the commits
authored by --author in each of them, and prints a single timeline sorted by
commit date.

Dates for --since and --until accept anything git accepts, plus plain dates
(2025-09-01), RFC 3339 timestamps and phrases such as "yesterday" or
"last week". Both bounds are inclusive.`,
		Example: `  chronicle --root ~/src --since 2025-09-01 --until 2025-10-01
  chronicle --last-month --format md -o september.md
  chronicle -a jane@example.com -f table --sort asc`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimeline(cmd, e)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Usage("", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress lines on stderr")
	addOptionFlags(cmd)

	cmd.Flags().StringP("output", "o", "", "write the timeline to this file instead of stdout")
	cmd.Flags().Bool("copy", false, "also copy the timeline to the clipboard")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of chronicle",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chronicle version %s\n", version)
		},
	})

	cmd.AddCommand(newReposCmd(e))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func runTimeline(cmd *cobra.Command, e env) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	p := e.newPipeline(newLogger(cmd), cmd.ErrOrStderr(), quiet)

	opts, err = p.Prepare(cmd.Context(), opts)
	if err != nil {
		return clierr.Usage("invalid options", err)
	}

	res, err := p.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	copyOut, _ := cmd.Flags().GetBool("copy")
	sink := &output.Sink{
		Stdout:    cmd.OutOrStdout(),
		Path:      outPath,
		Copy:      copyOut,
		Clipboard: e.clipboard,
	}
	if err := render.Render(sink, opts.Format, res.Root, res.Commits); err != nil {
		return fmt.Errorf("rendering timeline: %w", err)
	}
	return sink.Flush()
}

// usageArgs turns positional-argument errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return clierr.Usage("", err)
		}
		return nil
	}
}
