// Package transcode turns raw bytes into code point sequences the diff engine
// can compare: a byte-preserving identity mapping for binary data, named
// charsets for text, and UTF-16 code units for the surrogate-aware engine path.
package transcode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrUnknownCharset is returned when a charset name cannot be resolved
	ErrUnknownCharset = errors.New("unknown charset")

	// ErrInvalidEncoding is returned when bytes cannot be decoded under the
	// requested charset
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// Identity maps every byte to the code point with the same value
func Identity(b []byte) []rune {
	out := make([]rune, len(b))
	for i, c := range b {
		out[i] = rune(c)
	}
	return out
}

// IdentityBytes reverses Identity. Code points above 0xFF have no byte form.
func IdentityBytes(r []rune) ([]byte, error) {
	out := make([]byte, len(r))
	for i, c := range r {
		if c < 0 || c > 0xFF {
			return nil, fmt.Errorf("%w: code point %U at index %d does not fit in a byte", ErrInvalidEncoding, c, i)
		}
		out[i] = byte(c)
	}
	return out, nil
}

// Decode decodes b under the named charset. An empty name or "utf-8" means
// UTF-8; other names are IANA charset names such as "iso-8859-1",
// "windows-1252" or "utf-16le".
func Decode(b []byte, charset string) ([]rune, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" || name == "utf-8" || name == "utf8" {
		return decodeUTF8(b)
	}

	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, charset, err)
	}

	// x/text decoders substitute U+FFFD for bad input without an error. A
	// U+FFFD that was really in the input survives re-encoding; a substituted
	// one does not.
	if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
		again, err := enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(again, b) {
			return nil, fmt.Errorf("%w: %s: undecodable input near decoded offset %d", ErrInvalidEncoding, charset, i)
		}
	}
	return []rune(string(out)), nil
}

func decodeUTF8(b []byte) ([]rune, error) {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: utf-8: invalid byte 0x%02x at offset %d", ErrInvalidEncoding, b[i], i)
		}
		runes = append(runes, r)
		i += size
	}
	return runes, nil
}

func lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return enc, nil
}

// UTF16 encodes s as UTF-16 code units
func UTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// DecodeUTF16 reads b as UTF-16 in the given byte order and returns the code
// units, keeping surrogate pairs as two elements. A byte order mark, if
// present, overrides order and is dropped. Unpaired surrogates are an error.
func DecodeUTF16(b []byte, bigEndian bool) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("%w: utf-16: odd number of bytes (%d)", ErrInvalidEncoding, len(b))
	}

	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	switch {
	case bytes.HasPrefix(b, []byte{0xfe, 0xff}):
		order, b = binary.BigEndian, b[2:]
	case bytes.HasPrefix(b, []byte{0xff, 0xfe}):
		order, b = binary.LittleEndian, b[2:]
	}

	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = order.Uint16(b[2*i:])
	}

	for i := 0; i < len(units); i++ {
		u := units[i]
		if !utf16.IsSurrogate(rune(u)) {
			continue
		}
		if u < 0xdc00 && i+1 < len(units) && units[i+1] >= 0xdc00 && units[i+1] < 0xe000 {
			i++
			continue
		}
		return nil, fmt.Errorf("%w: utf-16: unpaired surrogate 0x%04x at unit %d", ErrInvalidEncoding, u, i)
	}
	return units, nil
}

// DecodeUnits decodes b under charset into UTF-16 code units. UTF-16 input is
// read unit for unit; every other charset goes through Decode.
func DecodeUnits(b []byte, charset string) ([]uint16, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "utf-16", "utf16", "utf-16be":
		return DecodeUTF16(b, true)
	case "utf-16le":
		return DecodeUTF16(b, false)
	}

	runes, err := Decode(b, charset)
	if err != nil {
		return nil, err
	}
	return utf16.Encode(runes), nil
}
