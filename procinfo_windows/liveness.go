//go:build windows

package procinfo_windows

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
)

// PidExists reports whether pid refers to a process that is running right
// now. An ambiguous probe is resolved against the pid enumeration rather
// than guessed either way.
func (q *Querier) PidExists(pid int) (bool, error) {
	if pid < 0 {
		return false, nil
	}
	if pid == 0 {
		// the idle pseudo process always exists
		return true, nil
	}

	lv, err := q.probeLiveness(pid)
	switch {
	case errors.Is(err, procinfo.ErrIndeterminate):
		q.log.Debugln(fmt.Sprintf("pid %d probe ambiguous, resolving against enumeration", pid))
		in, err := q.pidInPids(uint32(pid))
		if err != nil {
			return false, err
		}
		if in {
			lv = procinfo.LivenessRunning
		} else {
			lv = procinfo.LivenessNotRunning
		}
	case err != nil:
		return false, err
	}
	if q.selfCheck {
		if err := q.verifyLiveness(pid, lv); err != nil {
			return false, err
		}
	}
	return lv == procinfo.LivenessRunning, nil
}

// probeLiveness opens pid with the narrowest query right and classifies the
// result. A concrete exit code yields ErrIndeterminate: the pid may still
// be referenced by an open handle somewhere, or the slot may have been
// recycled, and only the enumeration can tell those apart.
func (q *Querier) probeLiveness(pid int) (procinfo.Liveness, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		switch err {
		case windows.ERROR_INVALID_PARAMETER:
			// the code OpenProcess actually reports for a missing pid
			return procinfo.LivenessNotRunning, nil
		case windows.ERROR_ACCESS_DENIED:
			// a process must exist for access to it to be denied
			return procinfo.LivenessRunning, nil
		}
		return procinfo.LivenessIndeterminate, procinfo.NewOSError("OpenProcess", err)
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		if err == windows.ERROR_ACCESS_DENIED {
			return procinfo.LivenessRunning, nil
		}
		return procinfo.LivenessIndeterminate, procinfo.NewOSError("GetExitCodeProcess", err)
	}
	if code == stillActive {
		return procinfo.LivenessRunning, nil
	}
	return procinfo.LivenessIndeterminate, procinfo.ErrIndeterminate
}
