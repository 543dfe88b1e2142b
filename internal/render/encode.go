package render

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Encoder turns span text into its printed representation
type Encoder interface {
	Encode(text string) string
}

// IdentityEncoder prints text unchanged
type IdentityEncoder struct{}

func (IdentityEncoder) Encode(text string) string {
	return text
}

const hexDigits = "0123456789ABCDEF"

// SanitizeEncoder escapes control characters so text is safe to print on a
// terminal. Tabs are expanded to TabWidth spaces when TabWidth > 0; newlines
// are shown as \n so a verbose line stays on one row.
type SanitizeEncoder struct {
	TabWidth int
}

func (e SanitizeEncoder) Encode(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\t' && e.TabWidth > 0:
			b.WriteString(strings.Repeat(" ", e.TabWidth))
		case r == '\t':
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7F:
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[r>>4])
			b.WriteByte(hexDigits[r&0x0F])
		case r == utf8.RuneError:
			b.WriteRune('�')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// RawValueEncoder prints every code point as a backslash followed by its
// value in Radix and a space, e.g. "\61 \62 " for "ab" in radix 16
type RawValueEncoder struct {
	Radix int
}

func (e RawValueEncoder) Encode(text string) string {
	radix := e.Radix
	if radix < 2 || radix > 36 {
		radix = 16
	}

	var b strings.Builder
	for _, r := range text {
		b.WriteByte('\\')
		b.WriteString(strconv.FormatInt(int64(r), radix))
		b.WriteByte(' ')
	}
	return b.String()
}
