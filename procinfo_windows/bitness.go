//go:build windows

package procinfo_windows

import (
	"fmt"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
)

// bitness is the pointer width relationship between this process and the
// target. Exactly one mode governs an extraction.
type bitness int

const (
	native32 bitness = iota // both sides narrow
	native64                // both sides wide
	wideCallerNarrowTarget
	narrowCallerWideTarget
)

func (b bitness) String() string {
	switch b {
	case native32:
		return "native-32"
	case native64:
		return "native-64"
	case wideCallerNarrowTarget:
		return "64-over-32"
	case narrowCallerWideTarget:
		return "32-over-64"
	default:
		return fmt.Sprintf("bitness(%d)", int(b))
	}
}

// negotiation carries everything one extraction needs once the width
// relationship is settled: where the target's control block lives, which
// layout describes it, and which primitive can read it.
type negotiation struct {
	mode    bitness
	pebAddr uint64
	reader  remoteReader
	layout  paramsLayout
}

// remoteReader copies a span of the target's address space into dst.
type remoteReader interface {
	readInto(h windows.Handle, addr uint64, dst []byte) error
}

// nativeReader reads through the ordinary read primitive, which accepts
// addresses up to the caller's own pointer width.
type nativeReader struct{}

func (nativeReader) readInto(h windows.Handle, addr uint64, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}
	var done uintptr
	if err := windows.ReadProcessMemory(h, uintptr(addr), &dst[0], uintptr(len(dst)), &done); err != nil {
		return mapWinError("ReadProcessMemory", err)
	}
	if done != uintptr(len(dst)) {
		return procinfo.NewOSError("ReadProcessMemory", fmt.Errorf("short read: %d of %d bytes", done, len(dst)))
	}
	return nil
}
