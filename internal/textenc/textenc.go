// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package textenc decodes source files that are not necessarily UTF-8.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrBinary is returned by [Decode] for content that is not text in any
// supported encoding.
var ErrBinary = errors.New("binary content")

// Encoding names the encoding Decode used.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin-1"
)

// Decode converts b to a string. UTF-8 is tried first, then ISO-8859-1.
func Decode(b []byte) (string, Encoding, error) {
	if bytes.IndexByte(b, 0) >= 0 {
		return "", "", ErrBinary
	}
	if utf8.Valid(b) {
		return string(b), UTF8, nil
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrBinary, err)
	}
	return string(s), Latin1, nil
}
