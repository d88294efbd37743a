// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/chronicle/cmd/chronicle/internal/clierr"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect chronicle's configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective options as YAML",
		Long: `Prints the options a timeline run would use after applying the config file,
.env, CHRONICLE_* environment variables and flags. The author is shown as
configured; the git user.email fallback is applied only when a run starts.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runConfigShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := configPath(cmd)
			if path == "" {
				return clierr.New(clierr.ExitFailure, "cannot determine the config directory")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	opts.Normalize()

	data, err := opts.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling options: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
