// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"runtime"
	"strings"
	"testing"

	"go.astrophena.name/credit/testutil"
)

func TestInfoString(t *testing.T) {
	cases := map[string]struct {
		in   Info
		want string
	}{
		"devel": {
			in:   Info{Name: "credit", Version: "devel", GoVersion: "go1.26.0", OS: "linux", Arch: "amd64"},
			want: "credit devel, built with go1.26.0 for linux/amd64\n",
		},
		"commit": {
			in:   Info{Name: "credit", Version: "v1.2.0", Commit: "0123456789abcdef", GoVersion: "go1.26.0", OS: "darwin", Arch: "arm64"},
			want: "credit v1.2.0 (0123456789ab), built with go1.26.0 for darwin/arm64\n",
		},
		"dirty": {
			in:   Info{Name: "credit", Version: "devel", Commit: "abc", Dirty: true, GoVersion: "go1.26.0", OS: "linux", Arch: "amd64"},
			want: "credit devel (abc, dirty), built with go1.26.0 for linux/amd64\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, tc.in.String(), tc.want)
		})
	}
}

func TestVersion(t *testing.T) {
	v := Version()
	testutil.AssertEqual(t, v.GoVersion, runtime.Version())
	testutil.AssertEqual(t, v.Name, CmdName())
	if v.Version == "" {
		t.Fatal("Version is empty")
	}
	if !strings.HasSuffix(v.String(), "\n") {
		t.Fatalf("String() = %q, want a trailing newline", v.String())
	}
}
