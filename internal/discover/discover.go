// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package discover finds the source files to process.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Options control [Find].
type Options struct {
	// Extensions are the file name suffixes to match, like ".go".
	Extensions []string
	// Recursive makes Find descend into subdirectories.
	Recursive bool
	// Exclude lists path suffixes of files to skip.
	Exclude []string
}

var skipDirs = []string{".git", ".hg", ".svn", "node_modules", "vendor"}

// SkipDir reports whether directories with the given name are never
// descended into.
func SkipDir(name string) bool { return slices.Contains(skipDirs, name) }

// Match reports whether the file at path is selected by o.
func (o Options) Match(path string) bool {
	for _, ex := range o.Exclude {
		if strings.HasSuffix(filepath.ToSlash(path), ex) {
			return false
		}
	}
	name := filepath.Base(path)
	for _, ext := range o.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Find returns the files in dir matching opts, in lexical order.
func Find(dir string, opts Options) ([]string, error) {
	if !opts.Recursive {
		return findFlat(dir, opts)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && opts.Match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func findFlat(dir string, opts Options) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if opts.Match(path) {
			files = append(files, path)
		}
	}
	return files, nil
}
