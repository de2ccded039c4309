package procinfo_windows

import (
	"winpeek/remotebuf"
)

// paramsLayout locates the interesting fields of a target's startup
// parameter block for one pointer width. The chase is always the same two
// hops; only these offsets change between a narrow and a wide target, so
// every width combination runs one algorithm parameterized by its layout.
type paramsLayout struct {
	ptrSize      int    // remote pointer width in bytes
	pebParamsOff uint64 // parameter block pointer inside the control block
	cwdOff       uint64 // counted string: current directory path
	cmdlineOff   uint64 // counted string: command line
	envOff       uint64 // pointer to the environment block
	strBufOff    uint64 // buffer pointer inside a counted string
}

var (
	layout32 = paramsLayout{
		ptrSize:      4,
		pebParamsOff: 0x10,
		cwdOff:       0x24,
		cmdlineOff:   0x40,
		envOff:       0x48,
		strBufOff:    4,
	}
	layout64 = paramsLayout{
		ptrSize:      8,
		pebParamsOff: 0x20,
		cwdOff:       0x38,
		cmdlineOff:   0x70,
		envOff:       0x80,
		strBufOff:    8,
	}
)

// pebReadSize is how much of the control block must be copied to reach the
// parameter block pointer.
func (l paramsLayout) pebReadSize() uint64 {
	return l.pebParamsOff + uint64(l.ptrSize)
}

// paramsReadSize is how much of the parameter block must be copied to cover
// every field the layout names.
func (l paramsLayout) paramsReadSize() uint64 {
	return l.envOff + uint64(l.ptrSize)
}

// countedString decodes the {length, buffer pointer} pair at off inside an
// extracted parameter block. The length is in bytes and excludes the
// terminator.
func (l paramsLayout) countedString(params *remotebuf.Buffer, off uint64) (addr uint64, size uint64, err error) {
	length, err := params.ReadUINT16(off)
	if err != nil {
		return 0, 0, err
	}
	addr, err = params.ReadPOINTER(off+l.strBufOff, l.ptrSize)
	if err != nil {
		return 0, 0, err
	}
	return addr, uint64(length), nil
}
