// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	appDir         = "chronicle"
	configFileName = "config.toml"
)

// DefaultPath returns $XDG_CONFIG_HOME/chronicle/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset. It returns "" when neither can be
// determined.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, configFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir, configFileName)
}

// LoadFile overlays the keys set in path onto o. The decoder is chosen by
// extension: .toml, or .yaml/.yml. Unknown keys are rejected.
//
// When required is false a missing file is not an error and found is false.
func LoadFile(path string, o *Options, required bool) (found bool, err error) {
	if path == "" {
		return false, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-selected config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return false, nil
		}
		return false, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, o)
	case ".yaml", ".yml":
		err = decodeYAML(data, o)
	default:
		return false, fmt.Errorf("%w: %s (want .toml, .yaml or .yml)", ErrUnsupportedFile, path)
	}
	if err != nil {
		return false, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return true, nil
}

func decodeTOML(data []byte, o *Options) error {
	md, err := toml.Decode(string(data), o)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, o *Options) error {
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil {
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("%w: %v", ErrUnknownKey, err)
		}
		return err
	}
	return nil
}

// Marshal renders o as YAML, the format printed by "config show".
func (o Options) Marshal() ([]byte, error) {
	return yaml.Marshal(o)
}
