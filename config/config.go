// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads and saves the persisted settings of credit.
//
// Settings live in a TOML file with a single table:
//
//	[credit]
//	name = "Jane Doe"
//	handle = "github.com/jane"
//	directory = "./src"
//	exclude = ["gen/", "_test.go"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

// Built-in defaults, used when neither a flag nor the config file sets a
// value.
const (
	DefaultName      = "Kars"
	DefaultHandle    = "github.com/kars1996"
	DefaultDirectory = "./src"
)

// EnvVar names the environment variable that overrides the config file
// location.
const EnvVar = "CREDIT_CONFIG"

// File is the persisted configuration.
type File struct {
	Name      string   `toml:"name"`
	Handle    string   `toml:"handle"`
	Directory string   `toml:"directory"`
	Exclude   []string `toml:"exclude,omitempty"`
}

type document struct {
	Credit File `toml:"credit"`
}

// Path returns the location of the config file: the value of [EnvVar] if
// set, otherwise .credit.toml in the user's home directory.
func Path(getenv func(string) string) (string, error) {
	if p := getenv(EnvVar); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating config file: %w", err)
	}
	return filepath.Join(home, ".credit.toml"), nil
}

// Load reads the config file at path. A missing file is not an error; Load
// returns an empty File instead.
func Load(path string) (File, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return doc.Credit, nil
}

// Save writes f to path, replacing the file atomically.
func Save(path string, f File) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(document{Credit: f}); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	return nil
}

// Overrides are per-invocation values that take precedence over the file.
// Empty fields do not override anything.
type Overrides struct {
	Name      string
	Handle    string
	Directory string
}

// Settings are the effective configuration of a run.
type Settings struct {
	Name      string
	Handle    string
	Directory string
	Exclude   []string
}

// Resolve merges overrides, the config file and the built-in defaults, in
// that order of precedence.
func Resolve(f File, o Overrides) Settings {
	return Settings{
		Name:      first(o.Name, f.Name, DefaultName),
		Handle:    first(o.Handle, f.Handle, DefaultHandle),
		Directory: first(o.Directory, f.Directory, DefaultDirectory),
		Exclude:   f.Exclude,
	}
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
