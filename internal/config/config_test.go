// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/chronicle/internal/render"
	"github.com/bartekus/chronicle/internal/timeline"
)

func validOptions() Options {
	o := Defaults()
	o.Author = "me@example.com"
	return o
}

func TestDefaults(t *testing.T) {
	o := Defaults()
	assert.Equal(t, ".", o.Root)
	assert.Equal(t, timeline.Desc, o.Sort)
	assert.Equal(t, 6, o.MaxDepth)
	assert.Equal(t, render.FormatPlain, o.Format)
	assert.Equal(t, 8, o.Workers)
	assert.Equal(t, 60*time.Second, o.Timeout)
	assert.Equal(t, "git", o.GitBin)
	assert.Empty(t, o.Author)
	assert.ErrorIs(t, o.Validate(), ErrMissingAuthor)
	assert.NoError(t, o.ValidateDiscovery())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr error
	}{
		{name: "valid", mutate: func(*Options) {}},
		{name: "asc upper case", mutate: func(o *Options) { o.Sort = "ASC" }},
		{name: "bad sort", mutate: func(o *Options) { o.Sort = "newest" }, wantErr: ErrInvalidSort},
		{name: "bad format", mutate: func(o *Options) { o.Format = "html" }, wantErr: ErrInvalidFormat},
		{name: "zero depth", mutate: func(o *Options) { o.MaxDepth = 0 }, wantErr: ErrInvalidDepth},
		{name: "negative depth", mutate: func(o *Options) { o.MaxDepth = -2 }, wantErr: ErrInvalidDepth},
		{name: "zero workers", mutate: func(o *Options) { o.Workers = 0 }, wantErr: ErrInvalidWorkers},
		{name: "negative timeout", mutate: func(o *Options) { o.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "empty root", mutate: func(o *Options) { o.Root = "" }, wantErr: ErrMissingRoot},
		{name: "missing author", mutate: func(o *Options) { o.Author = "" }, wantErr: ErrMissingAuthor},
		{name: "last month alone", mutate: func(o *Options) { o.LastMonth = true }},
		{
			name:    "last month with since",
			mutate:  func(o *Options) { o.LastMonth = true; o.Since = "2025-09-01" },
			wantErr: ErrConflictingRange,
		},
		{
			name:    "last month with until",
			mutate:  func(o *Options) { o.LastMonth = true; o.Until = "2025-10-01" },
			wantErr: ErrConflictingRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalize(t *testing.T) {
	o := validOptions()
	o.Sort = " ASC "
	o.Format = "MD"
	o.Normalize()
	assert.Equal(t, timeline.Asc, o.Sort)
	assert.Equal(t, render.FormatMarkdown, o.Format)

	o.Sort = "sideways"
	o.Normalize()
	assert.Equal(t, timeline.Order("sideways"), o.Sort)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
root = "~/src"
author = "me@example.com"
sort = "asc"
depth = 3
format = "table"
timeout = "15s"
no_merges = true
ignore = ["third_party", "tmp"]
`)

	o := Defaults()
	found, err := LoadFile(path, &o, true)
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, "~/src", o.Root)
	assert.Equal(t, "me@example.com", o.Author)
	assert.Equal(t, timeline.Asc, o.Sort)
	assert.Equal(t, 3, o.MaxDepth)
	assert.Equal(t, render.FormatTable, o.Format)
	assert.Equal(t, 15*time.Second, o.Timeout)
	assert.True(t, o.NoMerges)
	assert.Equal(t, []string{"third_party", "tmp"}, o.Ignore)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 8, o.Workers)
	assert.Equal(t, "git", o.GitBin)
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, "author: me@example.com\nworkers: 2\ntimeout: 1m\ngit: /usr/local/bin/git\n")

			o := Defaults()
			found, err := LoadFile(path, &o, true)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "me@example.com", o.Author)
			assert.Equal(t, 2, o.Workers)
			assert.Equal(t, time.Minute, o.Timeout)
			assert.Equal(t, "/usr/local/bin/git", o.GitBin)
			assert.Equal(t, 6, o.MaxDepth)
		})
	}
}

func TestLoadFile_EmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "\n")
	o := Defaults()
	found, err := LoadFile(path, &o, true)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Defaults(), o)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing optional", func(t *testing.T) {
		o := Defaults()
		found, err := LoadFile(filepath.Join(dir, "nope.toml"), &o, false)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("missing required", func(t *testing.T) {
		o := Defaults()
		_, err := LoadFile(filepath.Join(dir, "nope.toml"), &o, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty path", func(t *testing.T) {
		o := Defaults()
		found, err := LoadFile("", &o, true)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("unknown toml key", func(t *testing.T) {
		path := writeFile(t, dir, "unknown.toml", "author = \"me\"\ncolour = \"red\"\n")
		o := Defaults()
		_, err := LoadFile(path, &o, true)
		assert.ErrorIs(t, err, ErrUnknownKey)
		assert.Contains(t, err.Error(), "colour")
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		path := writeFile(t, dir, "unknown.yaml", "colour: red\n")
		o := Defaults()
		_, err := LoadFile(path, &o, true)
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.toml", "depth = = 3\n")
		o := Defaults()
		_, err := LoadFile(path, &o, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "config.json", "{}")
		o := Defaults()
		_, err := LoadFile(path, &o, true)
		assert.ErrorIs(t, err, ErrUnsupportedFile)
	})
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "chronicle", "config.toml"), DefaultPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".config", "chronicle", "config.toml"), DefaultPath())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRoot:    "/work",
		EnvAuthor:  "Jane",
		EnvSort:    "asc",
		EnvDepth:   "4",
		EnvFormat:  "md",
		EnvWorkers: "3",
		EnvGit:     " /opt/git ",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	o := Defaults()
	require.NoError(t, ApplyEnv(&o, lookup))
	assert.Equal(t, "/work", o.Root)
	assert.Equal(t, "Jane", o.Author)
	assert.Equal(t, timeline.Asc, o.Sort)
	assert.Equal(t, 4, o.MaxDepth)
	assert.Equal(t, render.FormatMarkdown, o.Format)
	assert.Equal(t, 3, o.Workers)
	assert.Equal(t, "/opt/git", o.GitBin)
}

func TestApplyEnv_EmptyAndInvalid(t *testing.T) {
	o := Defaults()
	empty := func(k string) (string, bool) { return "", true }
	require.NoError(t, ApplyEnv(&o, empty))
	assert.Equal(t, Defaults(), o)

	bad := func(k string) (string, bool) {
		if k == EnvDepth {
			return "deep", true
		}
		return "", false
	}
	assert.ErrorIs(t, ApplyEnv(&o, bad), ErrInvalidDepth)

	badWorkers := func(k string) (string, bool) {
		if k == EnvWorkers {
			return "many", true
		}
		return "", false
	}
	assert.ErrorIs(t, ApplyEnv(&o, badWorkers), ErrInvalidWorkers)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	t.Setenv(EnvAuthor, "")
	require.NoError(t, os.Unsetenv(EnvAuthor))
	t.Setenv(EnvDepth, "2")

	path := writeFile(t, dir, ".env", "CHRONICLE_AUTHOR=dotenv@example.com\nCHRONICLE_DEPTH=9\n")
	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { _ = os.Unsetenv(EnvAuthor) })

	assert.Equal(t, "dotenv@example.com", os.Getenv(EnvAuthor))
	assert.Equal(t, "2", os.Getenv(EnvDepth), "existing variables win over .env")
}

func TestMarshal(t *testing.T) {
	o := validOptions()
	o.Ignore = []string{"tmp"}
	data, err := o.Marshal()
	require.NoError(t, err)

	var back Options
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, o, back)
	assert.Contains(t, string(data), "author: me@example.com")
	assert.Contains(t, string(data), "timeout: 1m0s")
}
