package wstr

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

// utf16le builds the little endian wire form of s, the way it sits in a
// target's memory.
func utf16le(s string) []byte {
	u := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(u))
	for i, c := range u {
		binary.LittleEndian.PutUint16(b[2*i:], c)
	}
	return b
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii", utf16le("C:\\Windows\\notepad.exe"), "C:\\Windows\\notepad.exe"},
		{"bmp", utf16le("héllo wörld"), "héllo wörld"},
		{"surrogate pair", utf16le("a\U0001F600b"), "a\U0001F600b"},
		{"embedded nul survives", utf16le("a\x00b"), "a\x00b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestDecodeIgnoresTrailingOddByte(t *testing.T) {
	b := append(utf16le("ab"), 0x41)
	assert.Equal(t, "ab", Decode(b))
}

func TestCutNUL(t *testing.T) {
	assert.Equal(t, "abc", CutNUL("abc\x00def"))
	assert.Equal(t, "abc", CutNUL("abc"))
	assert.Equal(t, "", CutNUL("\x00abc"))
}

func TestSplitBlock(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []string
	}{
		{
			"two entries",
			utf16le("PATH=C:\\bin\x00TEMP=C:\\tmp\x00\x00"),
			[]string{"PATH=C:\\bin", "TEMP=C:\\tmp"},
		},
		{
			"data past terminator ignored",
			utf16le("A=1\x00\x00B=2\x00"),
			[]string{"A=1"},
		},
		{
			"no terminator",
			utf16le("A=1\x00B=2"),
			[]string{"A=1", "B=2"},
		},
		{"empty block", utf16le("\x00\x00"), nil},
		{"no data", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitBlock(tt.in))
		})
	}
}

func TestParseMap(t *testing.T) {
	m := ParseMap([]string{
		"PATH=C:\\bin;C:\\tools",
		"=C:=C:\\Users\\dev",
		"EMPTYVAL=",
		"noseparator",
		"A=b=c",
	})
	assert.Equal(t, map[string]string{
		"PATH":     "C:\\bin;C:\\tools",
		"EMPTYVAL": "",
		"A":        "b=c",
	}, m)
}
