//go:build windows

package procinfo_windows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
	"winpeek/wstr"
)

// CommandLine returns the target's argument vector, split the way the
// platform shell would split it.
//
// The control block strategy reads whatever the target's live parameter
// block holds, including a command line rewritten after startup. The kernel
// strategy asks for the creation time value under a narrower access right,
// so it also works against many protected targets.
func (q *Querier) CommandLine(pid int, strategy procinfo.CmdlineStrategy) ([]string, error) {
	var line string
	switch strategy {
	case procinfo.CmdlineFromKernel:
		raw, err := q.kernelCommandLine(pid)
		if err != nil {
			return nil, err
		}
		line = raw
	default:
		buf, err := q.extract(pid, artifactCmdline)
		if err != nil {
			return nil, err
		}
		line = wstr.Decode(buf.Data())
	}

	line = wstr.CutNUL(line)
	if line == "" {
		return []string{}, nil
	}
	args, err := windows.DecomposeCommandLine(line)
	if err != nil {
		return nil, procinfo.NewOSError("CommandLineToArgv", err)
	}
	return args, nil
}

// kernelCommandLine fetches the creation time command line through the
// dedicated process information class: probe for the needed length, then
// fetch the counted string record in one call.
func (q *Querier) kernelCommandLine(pid int) (string, error) {
	const op = "NtQueryInformationProcess(ProcessCommandLineInformation)"

	h, err := q.openLive(pid, windows.PROCESS_QUERY_LIMITED_INFORMATION)
	if err != nil {
		return "", err
	}
	defer h.Close()

	var needed uint32
	probeErr := windows.NtQueryInformationProcess(h.raw, processCommandLineInformation, nil, 0, &needed)
	st, ok := ntStatus(probeErr)
	switch {
	case ok && st == windows.STATUS_NOT_FOUND:
		// the kernel withholds the record rather than failing the call
		return "", fmt.Errorf("%s: %w", op, procinfo.ErrAccessDenied)
	case ok && (st == windows.STATUS_BUFFER_OVERFLOW || st == windows.STATUS_BUFFER_TOO_SMALL || st == windows.STATUS_INFO_LENGTH_MISMATCH):
		// needed now holds the record length
	default:
		if probeErr == nil {
			probeErr = fmt.Errorf("zero length probe succeeded")
		}
		return "", procinfo.NewOSError(op, probeErr)
	}

	if needed < uint32(unsafe.Sizeof(windows.NTUnicodeString{})) {
		return "", procinfo.NewOSError(op, fmt.Errorf("probe reported %d bytes", needed))
	}
	buf := make([]byte, needed)
	if err := windows.NtQueryInformationProcess(h.raw, processCommandLineInformation, unsafe.Pointer(&buf[0]), needed, &needed); err != nil {
		return "", mapWinError(op, err)
	}

	us := (*windows.NTUnicodeString)(unsafe.Pointer(&buf[0]))
	if us.Buffer == nil {
		return "", nil
	}
	return windows.UTF16PtrToString(us.Buffer), nil
}
