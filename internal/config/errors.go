// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import "errors"

var (
	ErrInvalidSort      = errors.New("invalid sort order")
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidDepth     = errors.New("depth must be a positive integer")
	ErrInvalidWorkers   = errors.New("workers must be at least 1")
	ErrInvalidTimeout   = errors.New("timeout must not be negative")
	ErrMissingAuthor    = errors.New("author is required")
	ErrMissingRoot      = errors.New("root is required")
	ErrConflictingRange = errors.New("--last-month cannot be combined with --since or --until")
	ErrUnknownKey       = errors.New("unknown configuration key")
	ErrUnsupportedFile  = errors.New("unsupported configuration file type")
)
