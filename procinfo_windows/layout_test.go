package procinfo_windows

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winpeek/remotebuf"
)

func TestLayoutReadSizes(t *testing.T) {
	assert.Equal(t, uint64(0x14), layout32.pebReadSize())
	assert.Equal(t, uint64(0x4c), layout32.paramsReadSize())
	assert.Equal(t, uint64(0x28), layout64.pebReadSize())
	assert.Equal(t, uint64(0x88), layout64.paramsReadSize())
}

func TestCountedStringWide(t *testing.T) {
	params := make([]byte, layout64.paramsReadSize())
	binary.LittleEndian.PutUint16(params[layout64.cmdlineOff:], 26)
	binary.LittleEndian.PutUint64(params[layout64.cmdlineOff+layout64.strBufOff:], 0x7ffe00001234)

	addr, size, err := layout64.countedString(remotebuf.NewBuffer(0, params), layout64.cmdlineOff)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x7ffe00001234), addr)
	assert.Equal(t, uint64(26), size)
}

func TestCountedStringNarrow(t *testing.T) {
	params := make([]byte, layout32.paramsReadSize())
	binary.LittleEndian.PutUint16(params[layout32.cwdOff:], 18)
	binary.LittleEndian.PutUint32(params[layout32.cwdOff+layout32.strBufOff:], 0x00340000)

	addr, size, err := layout32.countedString(remotebuf.NewBuffer(0, params), layout32.cwdOff)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x00340000), addr)
	assert.Equal(t, uint64(18), size)
}

func TestCountedStringTruncatedBlock(t *testing.T) {
	short := remotebuf.NewBuffer(0, make([]byte, 8))
	_, _, err := layout64.countedString(short, layout64.cmdlineOff)
	assert.ErrorIs(t, err, remotebuf.ErrOutOfBounds)
}
