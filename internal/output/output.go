// SPDX-License-Identifier: AGPL-3.0-or-later

// Package output delivers a rendered timeline to its destinations.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// AtomicWrite writes content to path by writing a temp file in the same
// directory and renaming it over the target.
func AtomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".chronicle-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("moving temp file to %s: %w", path, err)
	}
	return nil
}

// Sink buffers rendered output and delivers it on Flush: to Path when set,
// otherwise to Stdout, and additionally to the clipboard when Copy is set.
type Sink struct {
	Stdout io.Writer
	Path   string
	Copy   bool

	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error

	buf bytes.Buffer
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// Flush delivers everything written so far.
func (s *Sink) Flush() error {
	content := s.buf.Bytes()

	if s.Path != "" {
		if err := AtomicWrite(s.Path, content); err != nil {
			return err
		}
	} else if s.Stdout != nil {
		if _, err := s.Stdout.Write(content); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if s.Copy {
		copyFn := s.Clipboard
		if copyFn == nil {
			copyFn = clipboard.WriteAll
		}
		if err := copyFn(string(content)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
	}
	return nil
}
