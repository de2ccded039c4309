// Package wstr decodes the UTF-16LE byte buffers extracted from a foreign
// process into Go strings: plain text, NUL terminated text, and the doubly
// NUL terminated block layout used for process environments.
package wstr

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

// Decode converts little endian UTF-16 bytes into a string. A trailing odd
// byte is ignored. Surrogate pairs are combined; unpaired surrogates decode
// to the replacement rune.
func Decode(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(u))
}

// CutNUL truncates s at the first NUL. Buffers copied out of a counted
// string can legally contain the terminator when the recorded length
// includes it.
func CutNUL(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// SplitBlock decodes a block of NUL separated UTF-16LE strings terminated by
// an empty string, the layout of a process environment block. Data past the
// terminator is ignored; a block with no terminator yields every segment it
// holds.
func SplitBlock(b []byte) []string {
	var out []string
	for _, part := range strings.Split(Decode(b), "\x00") {
		if part == "" {
			break
		}
		out = append(out, part)
	}
	return out
}

// ParseMap turns KEY=VALUE entries into a map. Entries with no separator are
// dropped, as are entries whose separator is the first character; those are
// the hidden per-drive working directory records a command processor plants
// in its children.
func ParseMap(entries []string) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		i := strings.IndexByte(e, '=')
		if i <= 0 {
			continue
		}
		m[e[:i]] = e[i+1:]
	}
	return m
}
