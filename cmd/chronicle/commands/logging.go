// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newLogger returns a logger writing to the command's stderr, at debug level
// when --verbose is set.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	log.SetLevel(logrus.InfoLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
