// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"strconv"
	"strings"

	"go.astrophena.name/credit/lang"
)

const notice = "Not to be shared, replicated, or used without prior consent.\n" +
	"Contact me for any enquiries"

// Render returns the header for a file of language l. The result has no
// trailing newline.
//
// Every language gets a block comment, including those that usually prefer
// line comments. Python headers are wrapped in triple quotes.
func Render(l lang.Language, year int, id Identity) string {
	style := l.Style()

	var b strings.Builder
	b.WriteString(style.BlockStart)
	b.WriteString("\nCopyright © ")
	b.WriteString(strconv.Itoa(year))
	b.WriteString(" ")
	b.WriteString(id.Name)
	b.WriteString(" (")
	b.WriteString(id.Handle)
	b.WriteString(")\n\n")
	b.WriteString(notice)
	b.WriteString("\n")
	b.WriteString(style.BlockEnd)
	return b.String()
}
