// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package lang maps source files to languages and their comment syntax.
package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Language identifies a supported programming language.
type Language string

// Supported languages, in registration order.
const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Go         Language = "golang"
	Python     Language = "python"
	C          Language = "c"
	CPP        Language = "cpp"
	Java       Language = "java"
	CSharp     Language = "csharp"
	Ruby       Language = "ruby"
	PHP        Language = "php"
)

// Default is the language assumed for files with an unknown extension.
const Default = JavaScript

// ErrUnknown is returned by [Parse] for a name that is not a supported
// language.
var ErrUnknown = errors.New("unknown language")

// CommentStyle holds the comment delimiters of a language.
type CommentStyle struct {
	BlockStart string
	BlockEnd   string
	Line       string
}

var (
	cStyle      = CommentStyle{BlockStart: "/*", BlockEnd: "*/", Line: "//"}
	pythonStyle = CommentStyle{BlockStart: `"""`, BlockEnd: `"""`, Line: "#"}
	rubyStyle   = CommentStyle{BlockStart: "=begin", BlockEnd: "=end", Line: "#"}
)

// Family groups languages that share import syntax.
type Family int

const (
	// Generic languages use bare "import ..." lines, if any.
	Generic Family = iota
	// Script languages use ES module imports and CommonJS require calls.
	Script
	// Line languages use line-oriented "import x" and "from x import y"
	// statements.
	Line
	// Using languages use "using X;" directives.
	Using
)

// Prologue is a construct that must stay at the very start of a file.
type Prologue int

const (
	// NoPrologue means that a header may go at offset zero.
	NoPrologue Prologue = iota
	// Shebang is an interpreter line starting with "#!".
	Shebang
)

// Marker returns the text that starts the prologue, or an empty string.
func (p Prologue) Marker() string {
	if p == Shebang {
		return "#!"
	}
	return ""
}

type entry struct {
	lang       Language
	extensions []string
	style      CommentStyle
	family     Family
	prologue   Prologue
}

var registry = []entry{
	{JavaScript, []string{".js", ".jsx"}, cStyle, Script, NoPrologue},
	{TypeScript, []string{".ts", ".tsx"}, cStyle, Script, NoPrologue},
	{Go, []string{".go"}, cStyle, Generic, NoPrologue},
	{Python, []string{".py"}, pythonStyle, Line, Shebang},
	{C, []string{".c", ".h"}, cStyle, Generic, NoPrologue},
	{CPP, []string{".cpp", ".hpp", ".cc", ".hh"}, cStyle, Generic, NoPrologue},
	{Java, []string{".java"}, cStyle, Generic, NoPrologue},
	{CSharp, []string{".cs"}, cStyle, Using, NoPrologue},
	{Ruby, []string{".rb"}, rubyStyle, Generic, NoPrologue},
	{PHP, []string{".php"}, cStyle, Generic, NoPrologue},
}

// Classify returns the language registered for the extension ext, which
// includes the leading dot. It returns [Default] if no language claims ext.
func Classify(ext string) Language {
	for _, s := range registry {
		if slices.Contains(s.extensions, ext) {
			return s.lang
		}
	}
	return Default
}

// ForPath classifies a file by the extension of path.
func ForPath(path string) Language { return Classify(filepath.Ext(path)) }

// Parse looks up a language by its name, ignoring case.
func Parse(name string) (Language, error) {
	l := Language(strings.ToLower(name))
	if _, ok := lookup(l); ok {
		return l, nil
	}
	return "", fmt.Errorf("%w %q (supported: %s)", ErrUnknown, name, strings.Join(names(), ", "))
}

// All returns every supported language in registration order.
func All() []Language {
	all := make([]Language, 0, len(registry))
	for _, s := range registry {
		all = append(all, s.lang)
	}
	return all
}

// AllExtensions returns the extensions of every supported language.
func AllExtensions() []string {
	var exts []string
	for _, s := range registry {
		exts = append(exts, s.extensions...)
	}
	return exts
}

func names() []string {
	var ns []string
	for _, l := range All() {
		ns = append(ns, string(l))
	}
	return ns
}

func lookup(l Language) (entry, bool) {
	for _, s := range registry {
		if s.lang == l {
			return s, true
		}
	}
	return entry{}, false
}

// get returns the registry entry for l, falling back to [Default].
func (l Language) get() entry {
	if s, ok := lookup(l); ok {
		return s
	}
	s, _ := lookup(Default)
	return s
}

// Extensions returns the file extensions of l.
func (l Language) Extensions() []string { return slices.Clone(l.get().extensions) }

// Style returns the comment style of l.
func (l Language) Style() CommentStyle { return l.get().style }

// Family returns the import family of l.
func (l Language) Family() Family { return l.get().family }

// Prologue returns the kind of prologue l honors.
func (l Language) Prologue() Prologue { return l.get().prologue }

func (l Language) String() string { return string(l) }
