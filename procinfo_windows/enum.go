//go:build windows

package procinfo_windows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
)

var (
	modpsapi          = windows.NewLazySystemDLL("psapi.dll")
	procEnumProcesses = modpsapi.NewProc("EnumProcesses")
)

// ListPids returns the pid of every process on the system. The array is
// rebuilt on every call.
func (q *Querier) ListPids() ([]uint32, error) {
	pids, err := enumGrow(func(buf []uint32) (uint32, error) {
		// called directly because the buffer size argument counts bytes
		var returnedBytes uint32
		r1, _, err := procEnumProcesses.Call(
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(len(buf)*4),
			uintptr(unsafe.Pointer(&returnedBytes)),
		)
		if r1 == 0 {
			return 0, mapWinError("EnumProcesses", err)
		}
		return returnedBytes / 4, nil
	})
	if err != nil {
		return nil, err
	}
	q.log.Debugln(fmt.Sprintf("enumerated %d pids", len(pids)))
	return pids, nil
}

// FindSnapshotEntry walks the system process snapshot for pid's record.
// This works even for targets that refuse to be opened, which is what makes
// it the fallback for access denied processes.
func (q *Querier) FindSnapshotEntry(pid int) (procinfo.SnapshotEntry, error) {
	if pid < 0 {
		return procinfo.SnapshotEntry{}, fmt.Errorf("pid %d: %w", pid, procinfo.ErrNotFound)
	}

	buf, err := q.querySystemProcesses()
	if err != nil {
		return procinfo.SnapshotEntry{}, err
	}

	entrySize := uint32(unsafe.Sizeof(windows.SYSTEM_PROCESS_INFORMATION{}))
	for off := uint32(0); off+entrySize <= uint32(len(buf)); {
		p := (*windows.SYSTEM_PROCESS_INFORMATION)(unsafe.Pointer(&buf[off]))
		if int(p.UniqueProcessID) == pid {
			return snapshotEntryFrom(p), nil
		}
		if p.NextEntryOffset == 0 {
			break
		}
		off += p.NextEntryOffset
	}
	return procinfo.SnapshotEntry{}, fmt.Errorf("pid %d not in system snapshot: %w", pid, procinfo.ErrNotFound)
}

// querySystemProcesses fetches the full process snapshot, growing the
// buffer until the call stops reporting a length mismatch. The last
// successful size seeds the next call so steady state needs one attempt;
// outsized snapshots are not remembered.
func (q *Querier) querySystemProcesses() ([]byte, error) {
	size := q.snapshotSize.Load()
	buf := make([]byte, size)
	for {
		err := windows.NtQuerySystemInformation(windows.SystemProcessInformation, unsafe.Pointer(&buf[0]), size, &size)
		if err == nil {
			break
		}
		if st, ok := ntStatus(err); ok && (st == windows.STATUS_BUFFER_TOO_SMALL || st == windows.STATUS_INFO_LENGTH_MISMATCH) {
			buf = make([]byte, size)
			continue
		}
		return nil, mapWinError("NtQuerySystemInformation", err)
	}
	if n := uint32(len(buf)); n <= snapshotSizeCeiling {
		q.snapshotSize.Store(n)
	}
	return buf, nil
}

func snapshotEntryFrom(p *windows.SYSTEM_PROCESS_INFORMATION) procinfo.SnapshotEntry {
	entry := procinfo.SnapshotEntry{
		PID:       uint32(p.UniqueProcessID),
		ParentPID: uint32(p.InheritedFromUniqueProcessID),
		Name:      windows.UTF16PtrToString(p.ImageName.Buffer),
		Threads:   int(p.NumberOfThreads),
		Handles:   int(p.HandleCount),
		SessionID: p.SessionID,
	}
	if entry.Name == "" {
		switch entry.PID {
		case 0:
			entry.Name = "System Idle Process"
		case 4:
			entry.Name = "System"
		}
	}
	return entry
}
