// Package remotebuf holds byte buffers copied out of another process's
// address space. A buffer remembers the remote address it was copied from
// and decodes little endian fields by offset, so remote pointers are only
// ever interpreted, never dereferenced locally.
package remotebuf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("read outside extracted buffer")
)

// Buffer is an owned copy of a span of a foreign address space.
type Buffer struct {
	addr uint64
	data []byte
}

func NewBuffer(addr uint64, data []byte) *Buffer {
	return &Buffer{
		addr: addr,
		data: data,
	}
}

// Addr returns the remote address the buffer was copied from
func (b *Buffer) Addr() uint64 {
	return b.addr
}

// Data returns the copied bytes
func (b *Buffer) Data() []byte {
	return b.data
}

// Len returns the byte length of the copy
func (b *Buffer) Len() int {
	return len(b.data)
}

// ReadBytes returns size bytes starting at offset from the buffer start
func (b *Buffer) ReadBytes(offset, size uint64) ([]byte, error) {
	end := offset + size
	if end < offset || end > uint64(len(b.data)) {
		return nil, fmt.Errorf("%w: offset=%#x size=%#x len=%#x", ErrOutOfBounds, offset, size, len(b.data))
	}
	return b.data[offset:end], nil
}

// ReadUINT16 reads an unsigned 16-bit integer at the specified offset
func (b *Buffer) ReadUINT16(offset uint64) (uint16, error) {
	data, err := b.ReadBytes(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUINT32 reads an unsigned 32-bit integer at the specified offset
func (b *Buffer) ReadUINT32(offset uint64) (uint32, error) {
	data, err := b.ReadBytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUINT64 reads an unsigned 64-bit integer at the specified offset
func (b *Buffer) ReadUINT64(offset uint64) (uint64, error) {
	data, err := b.ReadBytes(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadPOINTER reads a pointer of the given byte width at the specified
// offset, zero extended to 64 bits. Narrow targets store 4 byte pointers,
// wide targets 8 byte pointers.
func (b *Buffer) ReadPOINTER(offset uint64, width int) (uint64, error) {
	switch width {
	case 4:
		value, err := b.ReadUINT32(offset)
		return uint64(value), err
	case 8:
		return b.ReadUINT64(offset)
	default:
		return 0, fmt.Errorf("unsupported pointer width %d", width)
	}
}
