//go:build windows && (386 || arm)

package procinfo_windows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
)

// Reaching above the caller's own pointer width needs the ntdll entry
// points that accept 64 bit addresses from a WoW64 process. Resolution is
// lazy and cached for the life of the process; the procs do not exist on a
// true 32 bit system.
var (
	modntdll                             = windows.NewLazySystemDLL("ntdll.dll")
	procNtWow64QueryInformationProcess64 = modntdll.NewProc("NtWow64QueryInformationProcess64")
	procNtWow64ReadVirtualMemory64       = modntdll.NewProc("NtWow64ReadVirtualMemory64")
)

// processBasicInformation64 mirrors the wide process information record
// returned by the WoW64 query entry point.
type processBasicInformation64 struct {
	ExitStatus                   uint32
	_                            uint32
	PebBaseAddress               uint64
	AffinityMask                 uint64
	BasePriority                 int32
	_                            uint32
	UniqueProcessID              uint64
	InheritedFromUniqueProcessID uint64
}

// negotiate determines the width relationship between this process and the
// target. A narrow caller asks the WoW64 question about both sides; the
// only combination that needs special handling is a wide target, which is
// reachable solely through the 64 bit ntdll entry points.
func negotiate(h windows.Handle) (negotiation, error) {
	var weAre, theyAre bool
	if err := windows.IsWow64Process(windows.CurrentProcess(), &weAre); err != nil {
		return negotiation{}, mapWinError("IsWow64Process(self)", err)
	}
	if err := windows.IsWow64Process(h, &theyAre); err != nil {
		return negotiation{}, mapWinError("IsWow64Process(target)", err)
	}

	if !weAre || theyAre {
		// same width: a true 32 bit system, or both sides under WoW64
		var pbi windows.PROCESS_BASIC_INFORMATION
		if err := windows.NtQueryInformationProcess(h, windows.ProcessBasicInformation, unsafe.Pointer(&pbi), uint32(unsafe.Sizeof(pbi)), nil); err != nil {
			return negotiation{}, mapWinError("NtQueryInformationProcess(ProcessBasicInformation)", err)
		}
		return negotiation{
			mode:    native32,
			pebAddr: uint64(uintptr(unsafe.Pointer(pbi.PebBaseAddress))),
			reader:  nativeReader{},
			layout:  layout32,
		}, nil
	}

	if err := procNtWow64QueryInformationProcess64.Find(); err != nil {
		return negotiation{}, fmt.Errorf("NtWow64QueryInformationProcess64 unavailable: %w", procinfo.ErrAccessDenied)
	}
	if err := procNtWow64ReadVirtualMemory64.Find(); err != nil {
		return negotiation{}, fmt.Errorf("NtWow64ReadVirtualMemory64 unavailable: %w", procinfo.ErrAccessDenied)
	}

	var pbi processBasicInformation64
	r1, _, _ := procNtWow64QueryInformationProcess64.Call(
		uintptr(h),
		uintptr(windows.ProcessBasicInformation),
		uintptr(unsafe.Pointer(&pbi)),
		uintptr(unsafe.Sizeof(pbi)),
		0,
	)
	if st := windows.NTStatus(r1); st != windows.STATUS_SUCCESS {
		return negotiation{}, mapWinError("NtWow64QueryInformationProcess64", st)
	}
	return negotiation{
		mode:    narrowCallerWideTarget,
		pebAddr: pbi.PebBaseAddress,
		reader:  wow64Reader{},
		layout:  layout64,
	}, nil
}

// wow64Reader copies target memory through the 64 bit read entry point.
// Each 64 bit argument is split into two machine words on the way in.
type wow64Reader struct{}

func (wow64Reader) readInto(h windows.Handle, addr uint64, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}
	r1, _, _ := procNtWow64ReadVirtualMemory64.Call(
		uintptr(h),
		uintptr(addr),
		uintptr(addr>>32),
		uintptr(unsafe.Pointer(&dst[0])),
		uintptr(uint32(len(dst))),
		0,
		0,
	)
	if st := windows.NTStatus(r1); st != windows.STATUS_SUCCESS {
		return mapWinError("NtWow64ReadVirtualMemory64", st)
	}
	return nil
}
