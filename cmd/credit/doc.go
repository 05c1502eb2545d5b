// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Credit adds and updates copyright notices at the top of source files.

Usage:

	$ credit [flags] [directory]

Credit walks the directory (./src by default), and for every supported
source file it either adds a copyright notice owned by the configured
identity, refreshes the year of an existing notice, or leaves the file
alone. Files containing a credit-ignore comment are never touched.

New notices are placed after the import block of the file, or after the
shebang line of a Python script.

The identity and the default directory are read from a TOML config file,
located at $CREDIT_CONFIG or ~/.credit.toml:

	[credit]
	name = "Jane Doe"
	handle = "github.com/jane"
	directory = "./src"
	exclude = ["gen/", ".d.ts"]

Run credit -setup to create it interactively, credit -config to print the
effective configuration and credit -info to list the supported languages.

With -watch, credit keeps running after the initial pass and reconciles
files as they change. It reports readiness to systemd when started as a
notify service.

Credit exits with a non-zero status if any file could not be processed.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/credit/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
