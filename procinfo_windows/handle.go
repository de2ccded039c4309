//go:build windows

package procinfo_windows

import (
	"fmt"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
)

// phandle is an open process handle bound to the pid it was opened for.
type phandle struct {
	pid int
	raw windows.Handle
}

func (h *phandle) Close() {
	if h.raw != 0 {
		windows.CloseHandle(h.raw)
		h.raw = 0
	}
}

// openLive opens pid with the requested access and proves the handle refers
// to a process that is still running. A handle can outlive its process, and
// a concrete exit code can belong to a pid slot that has since been reused,
// so an exited reading defers to snapshot membership before the handle is
// accepted.
func (q *Querier) openLive(pid int, access uint32) (*phandle, error) {
	if pid < 0 {
		return nil, fmt.Errorf("pid %d: %w", pid, procinfo.ErrNotFound)
	}
	if pid == 0 {
		// the idle pseudo process exists but can never be opened
		return nil, fmt.Errorf("pid 0: %w", procinfo.ErrAccessDenied)
	}

	raw, err := windows.OpenProcess(access, false, uint32(pid))
	if err != nil {
		return nil, mapWinError("OpenProcess", err)
	}
	h := &phandle{pid: pid, raw: raw}

	var code uint32
	if err := windows.GetExitCodeProcess(raw, &code); err != nil {
		if err == windows.ERROR_ACCESS_DENIED {
			// the probe being refused still proves somebody owns the pid
			return h, nil
		}
		h.Close()
		return nil, mapWinError("GetExitCodeProcess", err)
	}
	if code == stillActive {
		return h, nil
	}

	in, err := q.pidInPids(uint32(pid))
	if err != nil {
		h.Close()
		return nil, err
	}
	if in {
		return h, nil
	}
	h.Close()
	return nil, fmt.Errorf("pid %d exited with code %d: %w", pid, code, procinfo.ErrNotFound)
}
