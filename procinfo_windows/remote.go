//go:build windows

package procinfo_windows

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"winpeek/procinfo"
	"winpeek/remotebuf"
	"winpeek/wstr"
)

// artifact names the startup values reachable through the parameter block.
type artifact int

const (
	artifactCmdline artifact = iota
	artifactCwd
	artifactEnviron
)

func (a artifact) String() string {
	switch a {
	case artifactCmdline:
		return "cmdline"
	case artifactCwd:
		return "cwd"
	default:
		return "environ"
	}
}

// Cwd returns the target's current working directory.
func (q *Querier) Cwd(pid int) (string, error) {
	buf, err := q.extract(pid, artifactCwd)
	if err != nil {
		return "", err
	}
	cwd := wstr.CutNUL(wstr.Decode(buf.Data()))
	if cwd == "" {
		return "", nil
	}
	// the parameter block records the path with a trailing separator
	return filepath.Clean(cwd), nil
}

// Environ returns the target's environment as KEY=VALUE strings.
func (q *Querier) Environ(pid int) ([]string, error) {
	buf, err := q.EnvironBlock(pid)
	if err != nil {
		return nil, err
	}
	return wstr.SplitBlock(buf.Data()), nil
}

// EnvironBlock returns the raw environment block exactly as extracted from
// the target.
func (q *Querier) EnvironBlock(pid int) (*remotebuf.Buffer, error) {
	return q.extract(pid, artifactEnviron)
}

// extract runs the two hop pointer chase that turns a pid into one of the
// target's startup artifacts: control block to parameter block to the
// artifact's own buffer. Every fetched pointer is interpreted under the
// negotiated layout and read with the negotiated primitive; nothing remote
// is ever dereferenced locally.
func (q *Querier) extract(pid int, kind artifact) (*remotebuf.Buffer, error) {
	h, err := q.openLive(pid, windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	neg, err := negotiate(h.raw)
	if err != nil {
		return nil, err
	}
	q.log.Debugln(fmt.Sprintf("pid %d %s: mode=%s peb=%#x", pid, kind, neg.mode, neg.pebAddr))

	peb, err := readRegion(neg.reader, h, neg.pebAddr, neg.layout.pebReadSize())
	if err != nil {
		return nil, err
	}
	paramsAddr, err := peb.ReadPOINTER(neg.layout.pebParamsOff, neg.layout.ptrSize)
	if err != nil {
		return nil, err
	}
	params, err := readRegion(neg.reader, h, paramsAddr, neg.layout.paramsReadSize())
	if err != nil {
		return nil, err
	}

	var srcAddr, size uint64
	switch kind {
	case artifactCmdline:
		srcAddr, size, err = neg.layout.countedString(params, neg.layout.cmdlineOff)
	case artifactCwd:
		srcAddr, size, err = neg.layout.countedString(params, neg.layout.cwdOff)
	case artifactEnviron:
		if neg.mode == narrowCallerWideTarget {
			// no bounded way to size a wide block from a narrow caller
			return nil, fmt.Errorf("environment of a wide target from a narrow caller: %w", procinfo.ErrAccessDenied)
		}
		srcAddr, err = params.ReadPOINTER(neg.layout.envOff, neg.layout.ptrSize)
		if err == nil {
			size, err = regionSizeFrom(h, srcAddr)
		}
	}
	if err != nil {
		return nil, err
	}

	// two zero bytes of backing past the copy so a terminator always exists
	data := make([]byte, size+2)
	if size > 0 {
		if err := neg.reader.readInto(h.raw, srcAddr, data[:size]); err != nil {
			return nil, err
		}
	}
	return remotebuf.NewBuffer(srcAddr, data[:size]), nil
}

// regionSizeFrom reports how many bytes remain in the committed region that
// contains addr. The environment block records no length of its own; the
// region extent bounds the copy.
func regionSizeFrom(h *phandle, addr uint64) (uint64, error) {
	var info windows.MemoryBasicInformation
	if err := windows.VirtualQueryEx(h.raw, uintptr(addr), &info, unsafe.Sizeof(info)); err != nil {
		return 0, mapWinError("VirtualQueryEx", err)
	}
	return uint64(info.RegionSize) - (addr - uint64(info.BaseAddress)), nil
}
