package hexview

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPlainOutput(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestDumpFullLine(t *testing.T) {
	withPlainOutput(t)

	data := []byte("ABCDEFGH01234567")
	out := Dump(data, Options{BytesPerLine: 16, ShowASCII: true, BaseAddr: 0x1000})

	assert.Equal(t,
		"000000001000  41 42 43 44 45 46 47 48 | 30 31 32 33 34 35 36 37 | ABCDEFGH 01234567\n",
		out)
}

func TestDumpRaggedLineAligns(t *testing.T) {
	withPlainOutput(t)

	data := append([]byte("ABCDEFGH01234567"), 'X', 0x00, 0x07)
	out := Dump(data, DefaultOptions())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	// The ASCII divider sits at the same column on both lines.
	assert.Equal(t, strings.LastIndex(lines[0], " | "), strings.LastIndex(lines[1], " | "))
	assert.Contains(t, lines[1], "58 00 07")
	assert.True(t, strings.HasSuffix(lines[1], "X.."))
}

func TestDumpMaxLines(t *testing.T) {
	withPlainOutput(t)

	opts := DefaultOptions()
	opts.MaxLines = 2
	out := Dump(make([]byte, 64), opts)

	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, "... 32 more bytes")
}

func TestDumpBaseAddrAdvances(t *testing.T) {
	withPlainOutput(t)

	opts := DefaultOptions()
	opts.BaseAddr = 0x7ff6_0000_0000
	out := Dump(make([]byte, 32), opts)

	assert.Contains(t, out, "7ff600000000  ")
	assert.Contains(t, out, "7ff600000010  ")
}

func TestDumpEmpty(t *testing.T) {
	withPlainOutput(t)
	assert.Equal(t, "", Dump(nil, DefaultOptions()))
}
