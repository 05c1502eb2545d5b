// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/credit/testutil"
)

func TestPath(t *testing.T) {
	p, err := Path(func(key string) string {
		if key == EnvVar {
			return "/tmp/custom.toml"
		}
		return ""
	})
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, p, "/tmp/custom.toml")

	t.Setenv("HOME", "/home/jane")
	p, err = Path(func(string) string { return "" })
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, p, filepath.Join("/home/jane", ".credit.toml"))
}

func TestLoadMissing(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, f, File{})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credit.toml")
	const content = `[credit]
name = "Jane Doe"
handle = "github.com/jane"
directory = "./lib"
exclude = ["gen/", "_test.go"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, f, File{
		Name:      "Jane Doe",
		Handle:    "github.com/jane",
		Directory: "./lib",
		Exclude:   []string{"gen/", "_test.go"},
	})
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credit.toml")
	if err := os.WriteFile(path, []byte("[credit\nname = "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Fatalf("Load() error = %v, want a parse error", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credit.toml")
	want := File{Name: "Jane Doe", Handle: "github.com/jane", Directory: "."}
	testutil.AssertEqual(t, Save(path, want), nil)

	got, err := Load(path)
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, got, want)

	b, err := os.ReadFile(path)
	testutil.AssertEqual(t, err, nil)
	if !strings.HasPrefix(string(b), "[credit]\n") {
		t.Fatalf("saved config does not start with the [credit] table:\n%s", b)
	}
}

func TestResolve(t *testing.T) {
	cases := map[string]struct {
		file File
		over Overrides
		want Settings
	}{
		"defaults": {
			want: Settings{Name: DefaultName, Handle: DefaultHandle, Directory: DefaultDirectory},
		},
		"file": {
			file: File{Name: "Jane", Handle: "jane", Directory: "lib", Exclude: []string{"gen/"}},
			want: Settings{Name: "Jane", Handle: "jane", Directory: "lib", Exclude: []string{"gen/"}},
		},
		"overrides win": {
			file: File{Name: "Jane", Handle: "jane", Directory: "lib"},
			over: Overrides{Name: "John", Directory: "app"},
			want: Settings{Name: "John", Handle: "jane", Directory: "app"},
		},
		"partial file": {
			file: File{Handle: "jane"},
			want: Settings{Name: DefaultName, Handle: "jane", Directory: DefaultDirectory},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, Resolve(tc.file, tc.over), tc.want)
		})
	}
}
