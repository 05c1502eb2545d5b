// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"go.astrophena.name/credit/internal/textenc"
	"go.astrophena.name/credit/lang"
)

// Config configures a [Reconciler].
type Config struct {
	// Identity owns the headers. It is used both to recognize existing
	// headers and to render new ones.
	Identity Identity
	// Year is the current year. It is read once per run.
	Year int
	// Force makes the Reconciler replace headers that are already up to
	// date.
	Force bool
	// DryRun makes ReconcileFile compute outcomes without writing files.
	DryRun bool
}

// Result is the outcome of reconciling one file.
type Result struct {
	Outcome  Outcome
	Language lang.Language
	// PriorYear is the year of the replaced header when Outcome is Updated.
	PriorYear string
	// Content is the new file content. It equals the input unless Outcome
	// is Added or Updated.
	Content string
}

// Changed reports whether the file content was modified.
func (r Result) Changed() bool { return r.Outcome == Added || r.Outcome == Updated }

// atomicWrite replaces a file. It is a variable for testing.
var atomicWrite = atomic.WriteFile

// Reconciler adds and updates copyright headers.
type Reconciler struct {
	cfg  Config
	year string
}

// New returns a Reconciler for cfg.
func New(cfg Config) *Reconciler {
	return &Reconciler{cfg: cfg, year: strconv.Itoa(cfg.Year)}
}

// Config returns the configuration of r.
func (r *Reconciler) Config() Config { return r.cfg }

// Reconcile computes the new content of a file of language l. It has no side
// effects and never returns the Error outcome.
//
// The checks run in a fixed order: an ignore marker wins over everything,
// then an owned header is either kept or replaced, and only a file without
// one gets a new header.
func (r *Reconciler) Reconcile(content string, l lang.Language) Result {
	res := Result{Language: l, Content: content}

	if IsIgnored(content) {
		res.Outcome = Ignored
		return res
	}

	m, found := Detect(content, l, r.cfg.Identity.Name)
	if found && m.Year == r.year && !r.cfg.Force {
		res.Outcome = Skipped
		return res
	}

	hdr := Render(l, r.cfg.Year, r.cfg.Identity)

	if found {
		res.Outcome = Updated
		res.PriorYear = m.Year
		res.Content = content[:m.Start] + hdr + content[m.End:]
		return res
	}

	res.Outcome = Added
	res.Content = insert(content, l, hdr)
	return res
}

// insert places hdr after the prologue or the imports of content, separated
// from its neighbors by one blank line.
func insert(content string, l lang.Language, hdr string) string {
	if marker := l.Prologue().Marker(); marker != "" && strings.HasPrefix(content, marker) {
		line, rest, _ := strings.Cut(content, "\n")
		return join(strings.TrimRight(line, "\r"), hdr, strings.TrimLeft(rest, " \t\r\n"))
	}
	off := Locate(content, l)
	return join(
		strings.TrimRight(content[:off], " \t\r\n"),
		hdr,
		strings.TrimLeft(content[off:], " \t\r\n"),
	)
}

func join(before, hdr, after string) string {
	var b strings.Builder
	if before != "" {
		b.WriteString(before)
		b.WriteString("\n\n")
	}
	b.WriteString(hdr)
	if after == "" {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n\n")
	b.WriteString(after)
	return b.String()
}

// ReconcileFile reconciles the file at path, classified by its extension,
// and writes the result back unless the Reconciler is in dry-run mode.
//
// The file is replaced atomically. If ReconcileFile returns an error, the
// file was not modified and the result's Outcome is Error.
func (r *Reconciler) ReconcileFile(path string) (Result, error) {
	l := lang.ForPath(path)
	fail := func(err error) (Result, error) {
		return Result{Outcome: Error, Language: l}, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	content, _, err := textenc.Decode(b)
	if err != nil {
		return fail(fmt.Errorf("%w %s: %w", ErrDecode, path, err))
	}

	res := r.Reconcile(content, l)
	if !res.Changed() || r.cfg.DryRun {
		return res, nil
	}
	if err := atomicWrite(path, strings.NewReader(res.Content)); err != nil {
		return fail(fmt.Errorf("writing %s: %w", path, err))
	}
	return res, nil
}
