// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header inserts and refreshes copyright headers in source files.
//
// A header is a block comment of the file's language that carries a
// copyright line naming an owner:
//
//	/*
//	Copyright © 2026 Jane Doe (github.com/jane)
//
//	Not to be shared, replicated, or used without prior consent.
//	Contact me for any enquiries
//	*/
//
// A [Reconciler] decides, for each file, whether its header must be added,
// updated to the current year, or left alone. Files that contain a
// "credit-ignore" comment are never touched.
//
// Detection is purely textual: the package looks for the copyright line with
// regular expressions and never parses the source.
package header

import (
	"errors"
	"regexp"
)

// ErrDecode is returned when a file cannot be decoded as text.
var ErrDecode = errors.New("cannot decode file")

// Identity is the owner of the headers managed by a [Reconciler].
type Identity struct {
	// Name is the owner's name. A header is only recognized as owned if it
	// contains Name.
	Name string
	// Handle is a contact handle, for example a GitHub profile.
	Handle string
}

// Outcome is the result of reconciling a single file.
type Outcome int

const (
	// Error means the file could not be read, decoded or written.
	Error Outcome = iota
	// Added means a new header was inserted.
	Added
	// Updated means an existing header was replaced with a fresh one.
	Updated
	// Skipped means the existing header is already up to date.
	Skipped
	// Ignored means the file opted out with a credit-ignore comment.
	Ignored
)

var outcomeNames = [...]string{
	Error:   "error",
	Added:   "added",
	Updated: "updated",
	Skipped: "skipped",
	Ignored: "ignored",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// ignoreRe matches the opt-out marker anywhere in a file.
var ignoreRe = regexp.MustCompile(`(?://|#|/\*)\s*credit-ignore`)

// IsIgnored reports whether content contains a credit-ignore comment.
func IsIgnored(content string) bool { return ignoreRe.MatchString(content) }
