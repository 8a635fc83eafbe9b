// Package qtext converts text in the 8-bit Quake character set.
//
// Unicode keeps every byte as its Latin-1 code point so coloured (high-bit)
// text stays distinguishable from plain text. ASCII folds coloured text onto
// its plain form and maps the control glyphs to readable characters.
package qtext

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// glyphs maps the low control range to printable characters.
var glyphs = [32]byte{
	'.', '_', '_', '_', '_', '.', '_', '_',
	'_', '_', '\n', '_', '\n', '>', '.', '.',
	'[', ']', '0', '1', '2', '3', '4', '5',
	'6', '7', '8', '9', '.', '_', '_', '_',
}

// Unicode returns the Latin-1 view of b.
func Unicode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return sb.String()
}

// Latin1 encodes s back to Quake bytes. Runes outside Latin-1 become '?'.
func Latin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			c = '?'
		}
		out = append(out, c)
	}
	return out
}

// ASCII returns the readable rendering of b.
func ASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = readable(c)
	}
	return string(out)
}

// ASCIIString applies ASCII to a string produced by Unicode.
func ASCIIString(s string) string {
	return ASCII(Latin1(s))
}

func readable(c byte) byte {
	c &= 0x7F
	switch {
	case c < 0x20:
		return glyphs[c]
	case c == 0x7F:
		return '_'
	default:
		return c
	}
}
