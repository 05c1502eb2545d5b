// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	"go.astrophena.name/credit/cli"
	"go.astrophena.name/credit/cli/clitest"
	"go.astrophena.name/credit/config"
	"go.astrophena.name/credit/header"
	"go.astrophena.name/credit/lang"
	"go.astrophena.name/credit/testutil"
)

const project = `
-- app.ts --
import { a } from './a';

export const b = a;
-- lib/util.py --
#!/usr/bin/env python3
import os
-- lib/old.go --
/*
Copyright © 2024 Kars (github.com/kars1996)

Not to be shared, replicated, or used without prior consent.
Contact me for any enquiries
*/

package lib
-- README.md --
# project
`

var (
	kars = header.Identity{Name: config.DefaultName, Handle: config.DefaultHandle}
	jane = header.Identity{Name: "Jane Doe", Handle: "github.com/jane"}
)

func fixedNow() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

func newApp(t *testing.T) *app { return &app{now: fixedNow} }

// tree extracts the project fixture into a new temporary directory.
func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.ExtractTxtar(t, txtar.Parse([]byte(project)), dir)
	return dir
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func hasHeader(t *testing.T, path string, l lang.Language, id header.Identity) {
	t.Helper()
	if got, want := read(t, path), header.Render(l, 2026, id); !strings.Contains(got, want) {
		t.Errorf("%s does not contain the header:\n%s", path, got)
	}
}

// unchanged fails the test if dir differs from a fresh copy of the fixture.
func unchanged(t *testing.T, dir string) {
	t.Helper()
	want := testutil.BuildTxtar(t, tree(t))
	testutil.AssertEqual(t, string(testutil.BuildTxtar(t, dir)), string(want))
}

// configEnv points the config file to a location in a temporary directory.
func configEnv(t *testing.T, f *config.File) map[string]string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credit.toml")
	if f != nil {
		if err := config.Save(path, *f); err != nil {
			t.Fatal(err)
		}
	}
	return map[string]string{config.EnvVar: path}
}

func TestRun(t *testing.T) {
	var (
		addDir      = tree(t)
		acceptDir   = tree(t)
		declineDir  = tree(t)
		previewDir  = tree(t)
		flatDir     = tree(t)
		langDir     = tree(t)
		overrideDir = tree(t)
		configDir   = tree(t)
		fileDir     = tree(t)
	)
	setupEnv := configEnv(t, nil)

	brokenEnv := configEnv(t, nil)
	if err := os.WriteFile(brokenEnv[config.EnvVar], []byte("[credit\nname = "), 0o644); err != nil {
		t.Fatal(err)
	}

	binaryDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binaryDir, "blob.js"), []byte("\x00\x01"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binaryDir, "ok.js"), []byte("let a;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := map[string]clitest.Case[*app]{
		"info": {
			Args:         []string{"-info"},
			Env:          configEnv(t, nil),
			WantInStdout: "Supported Languages",
		},
		"info with broken config": {
			Args:         []string{"-info"},
			Env:          brokenEnv,
			WantInStdout: "Supported Languages",
		},
		"config": {
			Args:         []string{"-config"},
			Env:          configEnv(t, &config.File{Name: "Jane Doe", Handle: "github.com/jane", Directory: "./lib"}),
			WantInStdout: "Jane Doe",
		},
		"config shows defaults": {
			Args:         []string{"-config"},
			Env:          configEnv(t, nil),
			WantInStdout: config.DefaultHandle,
		},
		"adds and updates headers": {
			Args:         []string{"-yes", addDir},
			Env:          configEnv(t, nil),
			WantInStdout: "Operation Summary",
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(addDir, "app.ts"), lang.TypeScript, kars)
				hasHeader(t, filepath.Join(addDir, "lib", "util.py"), lang.Python, kars)
				hasHeader(t, filepath.Join(addDir, "lib", "old.go"), lang.Go, kars)
				testutil.AssertEqual(t, read(t, filepath.Join(addDir, "README.md")), "# project\n")
				if !strings.HasPrefix(read(t, filepath.Join(addDir, "lib", "util.py")), "#!/usr/bin/env python3\n\n\"\"\"") {
					t.Error("shebang must stay on the first line")
				}
			},
		},
		"confirmation accepted": {
			Args:         []string{"-dir", acceptDir},
			Env:          configEnv(t, nil),
			Stdin:        strings.NewReader("y\n"),
			WantInStdout: "Found 3 files to process.",
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(acceptDir, "app.ts"), lang.TypeScript, kars)
			},
		},
		"confirmation declined": {
			Args:         []string{declineDir},
			Env:          configEnv(t, nil),
			Stdin:        strings.NewReader("n\n"),
			WantInStderr: "Operation cancelled.",
			CheckFunc: func(t *testing.T, _ *app) {
				unchanged(t, declineDir)
			},
		},
		"preview": {
			Args:         []string{"-preview", previewDir},
			Env:          configEnv(t, nil),
			WantInStdout: "Will update (2024 → 2026)",
			CheckFunc: func(t *testing.T, _ *app) {
				unchanged(t, previewDir)
			},
		},
		"no recursive": {
			Args:         []string{"-yes", "-no-recursive", flatDir},
			Env:          configEnv(t, nil),
			WantInStdout: "Found 1 files to process.",
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(flatDir, "app.ts"), lang.TypeScript, kars)
				testutil.AssertEqual(t, strings.HasPrefix(read(t, filepath.Join(flatDir, "lib", "util.py")), "#!"), true)
			},
		},
		"single language": {
			Args: []string{"-yes", "-lang", "Python", langDir},
			Env:  configEnv(t, nil),
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(langDir, "lib", "util.py"), lang.Python, kars)
				testutil.AssertEqual(t, strings.HasPrefix(read(t, filepath.Join(langDir, "app.ts")), "import"), true)
			},
		},
		"identity overrides": {
			Args: []string{"-yes", "-name", "Jane Doe", "-handle", "github.com/jane", overrideDir},
			Env:  configEnv(t, nil),
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(overrideDir, "app.ts"), lang.TypeScript, jane)
			},
		},
		"identity from config": {
			Args: []string{"-yes"},
			Env:  configEnv(t, &config.File{Name: jane.Name, Handle: jane.Handle, Directory: configDir}),
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(configDir, "app.ts"), lang.TypeScript, jane)
				// Owned by someone else now, so a new header is added above.
				hasHeader(t, filepath.Join(configDir, "lib", "old.go"), lang.Go, jane)
			},
		},
		"single file": {
			Args:         []string{"-yes", "-file", filepath.Join(fileDir, "app.ts")},
			Env:          configEnv(t, nil),
			WantInStdout: "Added copyright to",
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(fileDir, "app.ts"), lang.TypeScript, kars)
				testutil.AssertEqual(t, strings.HasPrefix(read(t, filepath.Join(fileDir, "lib", "util.py")), "#!"), true)
			},
		},
		"no matching files": {
			Args:         []string{"-lang", "ruby", tree(t)},
			Env:          configEnv(t, nil),
			WantInStdout: "No matching files found in",
		},
		"failed file": {
			Args:         []string{"-yes", binaryDir},
			Env:          configEnv(t, nil),
			WantErr:      errFailed,
			WantInStdout: "Files with errors",
			WantInStderr: "cannot process file",
			CheckFunc: func(t *testing.T, _ *app) {
				hasHeader(t, filepath.Join(binaryDir, "ok.js"), lang.JavaScript, kars)
			},
		},
		"setup": {
			Args:         []string{"-setup"},
			Env:          setupEnv,
			Stdin:        strings.NewReader("Jane Doe\ngithub.com/jane\n\n"),
			WantInStdout: "Configuration saved to",
			CheckFunc: func(t *testing.T, _ *app) {
				f, err := config.Load(setupEnv[config.EnvVar])
				testutil.AssertEqual(t, err, nil)
				testutil.AssertEqual(t, f, config.File{Name: "Jane Doe", Handle: "github.com/jane", Directory: config.DefaultDirectory})
			},
		},
		"invalid directory": {
			Args:    []string{"-yes", filepath.Join(t.TempDir(), "missing")},
			Env:     configEnv(t, nil),
			WantErr: cli.ErrInvalidArgs,
		},
		"invalid file": {
			Args:    []string{"-yes", "-file", t.TempDir()},
			Env:     configEnv(t, nil),
			WantErr: cli.ErrInvalidArgs,
		},
		"unknown language": {
			Args:    []string{"-lang", "cobol", tree(t)},
			Env:     configEnv(t, nil),
			WantErr: lang.ErrUnknown,
		},
		"too many directories": {
			Args:    []string{"a", "b"},
			Env:     configEnv(t, nil),
			WantErr: cli.ErrInvalidArgs,
		},
		"watch with preview": {
			Args:    []string{"-watch", "-preview"},
			Env:     configEnv(t, nil),
			WantErr: cli.ErrInvalidArgs,
		},
	}

	clitest.Run(t, newApp, cases)
}

func TestRunInterrupted(t *testing.T) {
	dir := tree(t)
	env := configEnv(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	ctx = cli.WithEnv(ctx, &cli.Env{
		Args:   []string{"-yes", dir},
		Getenv: func(key string) string { return env[key] },
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	})
	err := cli.Run(ctx, newApp(t))
	testutil.AssertEqual(t, err, context.Canceled)
	if strings.Contains(stdout.String(), "Operation Summary") {
		t.Errorf("summary printed after interrupt:\n%s", stdout.String())
	}
	unchanged(t, dir)
}

func TestRunWatch(t *testing.T) {
	dir := t.TempDir()
	env := configEnv(t, nil)

	a := newApp(t)
	a.debounce = 20 * time.Millisecond
	a.ready = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = cli.WithEnv(ctx, &cli.Env{
		Args:   []string{"-watch", dir},
		Getenv: func(key string) string { return env[key] },
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})

	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx, a) }()

	select {
	case <-a.ready:
	case err := <-done:
		t.Fatalf("Run returned before watching: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch mode")
	}

	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := header.Render(lang.Go, 2026, kars) + "\n\npackage main\n"
	deadline := time.Now().Add(5 * time.Second)
	for read(t, path) != want {
		if time.Now().After(deadline) {
			t.Fatalf("file was not reconciled:\n%s", read(t, path))
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		testutil.AssertEqual(t, err, nil)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
