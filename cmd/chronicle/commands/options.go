// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/chronicle/cmd/chronicle/internal/clierr"
	"github.com/bartekus/chronicle/internal/config"
	"github.com/bartekus/chronicle/internal/render"
	"github.com/bartekus/chronicle/internal/timeline"
)

const dotEnvFile = ".env"

// addOptionFlags registers the flags backing config.Options as persistent
// flags, so every subcommand resolves options the same way.
func addOptionFlags(cmd *cobra.Command) {
	d := config.Defaults()
	f := cmd.PersistentFlags()

	f.StringP("root", "r", d.Root, "folder to search for repositories")
	f.StringP("author", "a", "", "author to match (default: git config user.email)")
	f.String("sort", string(d.Sort), "sort direction: asc or desc")
	f.Int("depth", d.MaxDepth, "maximum directory depth below --root")
	f.String("since", "", "only commits on or after this date")
	f.String("until", "", "only commits on or before this date")
	f.Bool("last-month", false, "only commits from the previous calendar month")
	f.StringP("format", "f", string(d.Format), "output format: "+formatList())
	f.Int("workers", d.Workers, "concurrent directory and repository workers")
	f.Duration("timeout", d.Timeout, "timeout for each git invocation")
	f.String("git", d.GitBin, "git executable")
	f.Bool("no-merges", false, "skip merge commits")
	f.StringSlice("ignore", nil, "extra directory names to skip (repeatable)")
	f.String("config", "", "config file (.toml, .yaml or .yml)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(render.Formats()))
		for _, name := range render.Formats() {
			out = append(out, string(name))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(timeline.Desc), string(timeline.Asc)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkPersistentFlagDirname("root")
	_ = cmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
}

func formatList() string {
	names := make([]string, 0, len(render.Formats()))
	for _, name := range render.Formats() {
		names = append(names, string(name))
	}
	return strings.Join(names, ", ")
}

// configPath returns the config file to read and whether it must exist.
func configPath(cmd *cobra.Command) (string, bool) {
	if cmd.Flags().Changed("config") {
		path, _ := cmd.Flags().GetString("config")
		return path, true
	}
	return config.DefaultPath(), false
}

// loadOptions layers defaults, the config file, .env and the environment,
// and finally the flags the user actually set.
func loadOptions(cmd *cobra.Command) (config.Options, error) {
	opts := config.Defaults()

	path, required := configPath(cmd)
	if _, err := config.LoadFile(path, &opts, required); err != nil {
		return opts, clierr.Usage("loading configuration", err)
	}
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return opts, clierr.Usage("loading environment", err)
	}
	if err := config.ApplyEnv(&opts, os.LookupEnv); err != nil {
		return opts, clierr.Usage("reading environment", err)
	}
	applyFlags(cmd, &opts)
	return opts, nil
}

func applyFlags(cmd *cobra.Command, o *config.Options) {
	f := cmd.Flags()
	changed := f.Changed

	if changed("root") {
		o.Root, _ = f.GetString("root")
	}
	if changed("author") {
		o.Author, _ = f.GetString("author")
	}
	if changed("sort") {
		s, _ := f.GetString("sort")
		o.Sort = timeline.Order(s)
	}
	if changed("depth") {
		o.MaxDepth, _ = f.GetInt("depth")
	}
	if changed("since") {
		o.Since, _ = f.GetString("since")
	}
	if changed("until") {
		o.Until, _ = f.GetString("until")
	}
	if changed("last-month") {
		o.LastMonth, _ = f.GetBool("last-month")
	}
	if changed("format") {
		s, _ := f.GetString("format")
		o.Format = render.Format(s)
	}
	if changed("workers") {
		o.Workers, _ = f.GetInt("workers")
	}
	if changed("timeout") {
		o.Timeout, _ = f.GetDuration("timeout")
	}
	if changed("git") {
		o.GitBin, _ = f.GetString("git")
	}
	if changed("no-merges") {
		o.NoMerges, _ = f.GetBool("no-merges")
	}
	if changed("ignore") {
		extra, _ := f.GetStringSlice("ignore")
		o.Ignore = append(o.Ignore, extra...)
	}
}
