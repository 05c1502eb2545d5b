// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"regexp"

	"github.com/go4org/hashtriemap"

	"go.astrophena.name/credit/lang"
)

// Match describes an existing header found by [Detect].
type Match struct {
	// Year is the year on the copyright line.
	Year string
	// Text is the matched header text, replaced verbatim on update.
	Text string
	// Start and End are the byte offsets of Text in the content.
	Start, End int
}

type patternKey struct {
	style lang.CommentStyle
	owner string
}

// patterns caches compiled detection patterns, since every file of a run
// uses the same owner and only a handful of comment styles.
var patterns hashtriemap.HashTrieMap[patternKey, []*regexp.Regexp]

// detectionPatterns returns the patterns for a comment style and owner, in
// priority order: block comments before line comments, "©" before "(c)".
func detectionPatterns(style lang.CommentStyle, owner string) []*regexp.Regexp {
	key := patternKey{style: style, owner: owner}
	if res, ok := patterns.Load(key); ok {
		return res
	}

	var (
		start = regexp.QuoteMeta(style.BlockStart)
		end   = regexp.QuoteMeta(style.BlockEnd)
		line  = regexp.QuoteMeta(style.Line)
		name  = regexp.QuoteMeta(owner)
	)
	res := []*regexp.Regexp{
		regexp.MustCompile(`(?s)` + start + `\s*Copyright © (\d{4}).*?` + name + `.*?` + end),
		regexp.MustCompile(`(?s)` + start + `\s*Copyright \(c\) (\d{4}).*?` + name + `.*?` + end),
		regexp.MustCompile(`(?s)` + line + ` Copyright © (\d{4}).*?` + name),
		regexp.MustCompile(`(?s)` + line + ` Copyright \(c\) (\d{4}).*?` + name),
	}
	res, _ = patterns.LoadOrStore(key, res)
	return res
}

// Detect looks for a header owned by owner in content. The first pattern
// that matches wins, even if a later one would match earlier in the file.
func Detect(content string, l lang.Language, owner string) (Match, bool) {
	for _, re := range detectionPatterns(l.Style(), owner) {
		loc := re.FindStringSubmatchIndex(content)
		if loc == nil {
			continue
		}
		return Match{
			Year:  content[loc[2]:loc[3]],
			Text:  content[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		}, true
	}
	return Match{}, false
}
