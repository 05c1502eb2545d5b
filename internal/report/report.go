// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package report aggregates outcomes and renders them as terminal tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"go.astrophena.name/credit/config"
	"go.astrophena.name/credit/header"
	"go.astrophena.name/credit/lang"
)

// Stats counts the outcomes of a run.
type Stats struct {
	Total   int
	Added   int
	Updated int
	Skipped int
	Ignored int
	Errors  int
}

// Record counts one processed file.
func (s *Stats) Record(o header.Outcome) {
	s.Total++
	switch o {
	case header.Added:
		s.Added++
	case header.Updated:
		s.Updated++
	case header.Skipped:
		s.Skipped++
	case header.Ignored:
		s.Ignored++
	default:
		s.Errors++
	}
}

// Failed reports whether any file could not be processed.
func (s Stats) Failed() bool { return s.Errors > 0 }

// Printer renders reports to a writer. Colors are used only when the
// writer is a terminal.
type Printer struct {
	w      io.Writer
	r      *lipgloss.Renderer
	border lipgloss.Style
	dim    lipgloss.Style
	bold   lipgloss.Style
	title  lipgloss.Style
	colors map[header.Outcome]lipgloss.Style
}

// New returns a Printer that writes to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }
	return &Printer{
		w:      w,
		r:      r,
		border: color("14"),
		dim:    r.NewStyle().Faint(true),
		bold:   r.NewStyle().Bold(true),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		colors: map[header.Outcome]lipgloss.Style{
			header.Added:   color("2"),
			header.Updated: color("4"),
			header.Skipped: color("6"),
			header.Ignored: color("3"),
			header.Error:   color("1"),
		},
	}
}

func (p *Printer) newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.border)
	if len(headers) > 0 {
		t.Headers(headers...)
	}
	return t
}

func (p *Printer) print(title string, t *table.Table) {
	fmt.Fprintf(p.w, "\n%s\n%s\n", p.title.Render(title), t.Render())
}

// Summary prints the counters of a finished run.
func (p *Printer) Summary(s Stats) {
	rows := []struct {
		label   string
		n       int
		outcome header.Outcome
	}{
		{"Files processed", s.Total, -1},
		{"Copyright notices added", s.Added, header.Added},
		{"Copyright notices updated", s.Updated, header.Updated},
		{"Files skipped (up to date)", s.Skipped, header.Skipped},
		{"Files ignored", s.Ignored, header.Ignored},
		{"Files with errors", s.Errors, header.Error},
	}
	t := p.newTable("Category", "Count")
	for _, r := range rows {
		t.Row(r.label, fmt.Sprint(r.n))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		st := p.r.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return st.Inherit(p.bold)
		}
		if col == 1 {
			st = st.Align(lipgloss.Right)
		}
		if c, ok := p.colors[rows[row].outcome]; ok {
			return st.Inherit(c)
		}
		return st.Inherit(p.dim)
	})
	p.print("Operation Summary", t)
}

// Change is the computed outcome for one file, as shown by [Printer.Preview].
type Change struct {
	Path   string
	Result header.Result
	Err    error
}

// Action describes what reconciling a file will do.
func Action(c Change, year int) string {
	if c.Err != nil {
		return "Cannot read file"
	}
	switch c.Result.Outcome {
	case header.Added:
		return "Will add copyright"
	case header.Updated:
		return fmt.Sprintf("Will update (%s → %d)", c.Result.PriorYear, year)
	case header.Skipped:
		return "Up to date"
	case header.Ignored:
		return "Will be ignored"
	}
	return "Cannot read file"
}

// Preview prints the planned action for every file without changing
// anything.
func (p *Printer) Preview(changes []Change, year int) {
	t := p.newTable("File", "Action")
	for _, c := range changes {
		t.Row(c.Path, Action(c, year))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		st := p.r.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return st.Inherit(p.bold)
		case col == 0:
			return st.Inherit(p.dim)
		}
		c := changes[row]
		o := c.Result.Outcome
		if c.Err != nil {
			o = header.Error
		}
		return st.Inherit(p.colors[o])
	})
	p.print("Preview of Changes", t)
}

// Progress prints a one-line account of a processed file.
func (p *Printer) Progress(path string, res header.Result, err error, year int) {
	var msg string
	o := res.Outcome
	switch {
	case err != nil:
		o = header.Error
		msg = fmt.Sprintf("Error processing %s: %v", path, err)
	case o == header.Added:
		msg = "Added copyright to " + path
	case o == header.Updated:
		msg = fmt.Sprintf("Updated copyright (%s → %d) in %s", res.PriorYear, year, path)
	case o == header.Skipped:
		msg = fmt.Sprintf("Skipped %s (up to date)", path)
	case o == header.Ignored:
		msg = fmt.Sprintf("Ignored %s (credit-ignore found)", path)
	default:
		msg = "Error processing " + path
	}
	fmt.Fprintln(p.w, p.colors[o].Render(msg))
}

// Config prints the effective configuration.
func (p *Printer) Config(s config.Settings, path string) {
	exclude := "none"
	if len(s.Exclude) > 0 {
		exclude = strings.Join(s.Exclude, ", ")
	}
	t := p.newTable("Setting", "Value").
		Row("Name", s.Name).
		Row("Handle", s.Handle).
		Row("Default directory", s.Directory).
		Row("Excluded", exclude).
		Row("Config file", path)
	t.StyleFunc(p.keyValue)
	p.print("Current Configuration", t)
}

// Languages prints the supported languages with their extensions and
// comment delimiters.
func (p *Printer) Languages() {
	t := p.newTable("Language", "Extensions", "Comment")
	for _, l := range lang.All() {
		st := l.Style()
		t.Row(l.String(), strings.Join(l.Extensions(), " "), st.BlockStart+" … "+st.BlockEnd)
	}
	t.StyleFunc(p.keyValue)
	p.print("Supported Languages", t)
}

func (p *Printer) keyValue(row, col int) lipgloss.Style {
	st := p.r.NewStyle().Padding(0, 1)
	switch {
	case row == table.HeaderRow:
		return st.Inherit(p.bold)
	case col == 0:
		return st.Inherit(p.dim)
	}
	return st
}
