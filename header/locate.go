// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"regexp"
	"sort"

	"go.astrophena.name/credit/lang"
)

var (
	// scriptImports match ES module and CommonJS imports. Any of them may
	// span several lines.
	scriptImports = []*regexp.Regexp{
		// import x from 'x'; import { a, b } from "x"; import type T from 'x'; import 'x';
		regexp.MustCompile(`\bimport\s+(?:type\s+)?(?:[\w$*{},\s]+?\s*from\s*)?['"][^'"\n]+['"]\s*;?`),
		// import x = require('x');
		regexp.MustCompile(`\bimport\s+(?:type\s+)?[\w$]+\s*=\s*require\(\s*['"][^'"\n]+['"]\s*\)\s*;?`),
		// const x = await import('x'); import('x');
		regexp.MustCompile(`(?:\b(?:const|let|var)\s+[\w${}\[\],:\s]+?\s*=\s*)?(?:\bawait\s+)?\bimport\(\s*['"][^'"\n]+['"]\s*\)\s*;?`),
		// const x = require('x');
		regexp.MustCompile(`\b(?:const|let|var)\s+[\w${}\[\],:\s]+?\s*=\s*require\(\s*['"][^'"\n]+['"]\s*\)\s*;?`),
	}

	lineImport = regexp.MustCompile(`(?m)^(?:from[ \t]+\S+[ \t]+import[ \t]*\([^)]*\)[^\n]*|import[ \t]+[^\n]*|from[ \t]+\S+[ \t]+import[ \t][^\n]*)`)

	usingDirective = regexp.MustCompile(`(?m)^[ \t]*using[ \t]+(?:static[ \t]+)?[\w.]+(?:[ \t]*=[ \t]*[\w.<>, ]+)?[ \t]*;[^\n]*`)

	genericImport = regexp.MustCompile(`(?m)^import[ \t]*\((?s:.*?)^\)|^import\b[^\n]*|^from[ \t]+\S+[ \t]+import\b[^\n]*`)
)

// Locate returns the offset at which a new header should be inserted into
// content: after the last import statement, or 0 if there is none.
func Locate(content string, l lang.Language) int {
	switch l.Family() {
	case lang.Script:
		return locateScript(content)
	case lang.Line:
		return locateLine(content)
	case lang.Using:
		return lastEnd(usingDirective.FindAllStringIndex(content, -1))
	default:
		return lastEnd(genericImport.FindAllStringIndex(content, -1))
	}
}

func lastEnd(matches [][]int) int {
	end := 0
	for _, m := range matches {
		end = max(end, m[1])
	}
	return end
}

func locateScript(content string) int {
	quoted := quotedSpans(content)
	end := -1
	for _, re := range scriptImports {
		for _, m := range re.FindAllStringIndex(content, -1) {
			if quoted.contains(m[0], m[1]) {
				continue
			}
			end = max(end, m[1])
		}
	}
	if end < 0 {
		return 0
	}
	for i := end; i < len(content); i++ {
		if !isSpace(content[i]) {
			return i
		}
	}
	return end
}

func locateLine(content string) int {
	matches := lineImport.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return 0
	}
	newlines := 0
	for i := lastEnd(matches); i < len(content); i++ {
		switch c := content[i]; {
		case c == '\n':
			newlines++
			if newlines == 2 {
				return i
			}
		case !isSpace(c):
			return i
		}
	}
	return len(content)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// spans is a sorted list of non-overlapping half-open byte ranges.
type spans [][2]int

// contains reports whether [start, end) lies within one of the spans.
func (s spans) contains(start, end int) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i][0] > start }) - 1
	return i >= 0 && end <= s[i][1]
}

// quotedSpans returns the comments and string literals of JavaScript-like
// content. It scans left to right and, at each position, takes the first
// construct that starts there and is terminated: a line comment, a block
// comment, or a string quoted with ', " or `. Unterminated constructs are
// skipped one byte at a time. Only template literals may contain newlines.
func quotedSpans(content string) spans {
	var res spans
	n := len(content)
	for i := 0; i < n; {
		end := -1
		switch c := content[i]; {
		case c == '/' && i+1 < n && content[i+1] == '/':
			end = i + 2
			for end < n && content[end] != '\n' {
				end++
			}
		case c == '/' && i+1 < n && content[i+1] == '*':
			for j := i + 2; j+1 < n; j++ {
				if content[j] == '*' && content[j+1] == '/' {
					end = j + 2
					break
				}
			}
		case c == '\'' || c == '"' || c == '`':
			end = stringEnd(content, i)
		}
		if end < 0 {
			i++
			continue
		}
		res = append(res, [2]int{i, end})
		i = end
	}
	return res
}

// stringEnd returns the offset just past the string literal that starts at
// i, or -1 if the literal is not terminated.
func stringEnd(content string, i int) int {
	quote := content[i]
	for j := i + 1; j < len(content); j++ {
		switch c := content[j]; {
		case c == '\\':
			if j+1 >= len(content) || (content[j+1] == '\n' && quote != '`') {
				return -1
			}
			j++
		case c == quote:
			return j + 1
		case c == '\n' && quote != '`':
			return -1
		}
	}
	return -1
}
