//go:build windows && !386 && !arm

package procinfo_windows

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// negotiate determines the width relationship between this process and the
// target. A wide caller learns both answers from a single query: a nonzero
// WoW64 control block address means the target is narrow, and is itself the
// base to chase.
func negotiate(h windows.Handle) (negotiation, error) {
	var peb32 uintptr
	if err := windows.NtQueryInformationProcess(h, windows.ProcessWow64Information, unsafe.Pointer(&peb32), uint32(unsafe.Sizeof(peb32)), nil); err != nil {
		return negotiation{}, mapWinError("NtQueryInformationProcess(ProcessWow64Information)", err)
	}
	if peb32 != 0 {
		return negotiation{
			mode:    wideCallerNarrowTarget,
			pebAddr: uint64(peb32),
			reader:  nativeReader{},
			layout:  layout32,
		}, nil
	}

	var pbi windows.PROCESS_BASIC_INFORMATION
	if err := windows.NtQueryInformationProcess(h, windows.ProcessBasicInformation, unsafe.Pointer(&pbi), uint32(unsafe.Sizeof(pbi)), nil); err != nil {
		return negotiation{}, mapWinError("NtQueryInformationProcess(ProcessBasicInformation)", err)
	}
	return negotiation{
		mode:    native64,
		pebAddr: uint64(uintptr(unsafe.Pointer(pbi.PebBaseAddress))),
		reader:  nativeReader{},
		layout:  layout64,
	}, nil
}
