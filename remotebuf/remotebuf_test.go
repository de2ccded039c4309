package remotebuf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFields(t *testing.T) {
	// 0x1122, 0x33445566, 0x778899aabbccddee laid out little endian
	b := NewBuffer(0x7ff600000000, []byte{
		0x22, 0x11,
		0x66, 0x55, 0x44, 0x33,
		0xee, 0xdd, 0xcc, 0xbb, 0xaa, 0x99, 0x88, 0x77,
	})

	assert.Equal(t, uint64(0x7ff600000000), b.Addr())
	assert.Equal(t, 14, b.Len())

	v16, err := b.ReadUINT16(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1122), v16)

	v32, err := b.ReadUINT32(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x33445566), v32)

	v64, err := b.ReadUINT64(6)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x778899aabbccddee), v64)
}

func TestReadPointerWidths(t *testing.T) {
	b := NewBuffer(0, []byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70, 0x00})

	narrow, err := b.ReadPOINTER(0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x40302010), narrow)

	wide, err := b.ReadPOINTER(0, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0070605040302010), wide)

	_, err = b.ReadPOINTER(0, 2)
	assert.Error(t, err)
}

func TestReadBounds(t *testing.T) {
	b := NewBuffer(0x1000, make([]byte, 8))

	tests := []struct {
		name   string
		offset uint64
		size   uint64
		ok     bool
	}{
		{"exact fit", 0, 8, true},
		{"tail", 6, 2, true},
		{"zero size at end", 8, 0, true},
		{"past end", 6, 4, false},
		{"offset past end", 9, 1, false},
		{"offset overflow", ^uint64(0) - 1, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.ReadBytes(tt.offset, tt.size)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrOutOfBounds))
			}
		})
	}
}
