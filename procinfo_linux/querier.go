//go:build linux

// Package procinfo_linux implements the procinfo.Source surface over the
// /proc filesystem, so tooling built against the portable interface runs on
// Linux hosts as well.
package procinfo_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"winpeek/procinfo"
	"winpeek/remotebuf"
)

// Querier answers process questions by reading the proc mount.
type Querier struct {
	log  *logger.Logger
	root string
}

var _ procinfo.Source = (*Querier)(nil)

func NewQuerier() *Querier {
	return newAt("/proc")
}

// newAt points the Querier at an alternate proc mount; tests feed it a
// synthetic tree.
func newAt(root string) *Querier {
	return &Querier{
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "winpeek-linux")),
		root: root,
	}
}

func (q *Querier) path(pid int, parts ...string) string {
	return filepath.Join(append([]string{q.root, strconv.Itoa(pid)}, parts...)...)
}

// checkPid rejects the pids no proc entry can answer for. Pid 0 is the
// kernel scheduler: it exists, but owns no readable state.
func checkPid(pid int) error {
	if pid < 0 {
		return fmt.Errorf("pid %d: %w", pid, procinfo.ErrNotFound)
	}
	if pid == 0 {
		return fmt.Errorf("pid 0: %w", procinfo.ErrAccessDenied)
	}
	return nil
}

func mapProcError(op string, pid int, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ESRCH):
		return fmt.Errorf("%s pid %d: %w", op, pid, procinfo.ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s pid %d: %w", op, pid, procinfo.ErrAccessDenied)
	default:
		return procinfo.NewOSError(op, err)
	}
}

// ListPids returns the pid of every process visible in the proc mount.
func (q *Querier) ListPids() ([]uint32, error) {
	entries, err := os.ReadDir(q.root)
	if err != nil {
		return nil, procinfo.NewOSError("read proc", err)
	}
	pids := make([]uint32, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, uint32(pid))
	}
	q.log.Debugln(fmt.Sprintf("enumerated %d pids", len(pids)))
	return pids, nil
}

// PidExists reports whether pid refers to a running process.
func (q *Querier) PidExists(pid int) (bool, error) {
	if pid < 0 {
		return false, nil
	}
	if pid == 0 {
		// the scheduler pseudo process always exists
		return true, nil
	}
	if _, err := os.Stat(q.path(pid)); err == nil {
		return true, nil
	} else if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	// transient stat failure, ask the kernel directly
	return syscall.Kill(pid, 0) == nil, nil
}

// CommandLine returns the target's argument vector. The strategy is
// ignored: proc exposes a single source.
func (q *Querier) CommandLine(pid int, _ procinfo.CmdlineStrategy) ([]string, error) {
	if err := checkPid(pid); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(q.path(pid, "cmdline"))
	if err != nil {
		return nil, mapProcError("read cmdline", pid, err)
	}
	args := []string{}
	for _, a := range strings.Split(string(data), "\x00") {
		if a != "" {
			args = append(args, a)
		}
	}
	return args, nil
}

// Cwd returns the target's current working directory.
func (q *Querier) Cwd(pid int) (string, error) {
	if err := checkPid(pid); err != nil {
		return "", err
	}
	cwd, err := os.Readlink(q.path(pid, "cwd"))
	if err != nil {
		return "", mapProcError("readlink cwd", pid, err)
	}
	return cwd, nil
}

// Environ returns the target's environment as KEY=VALUE strings.
func (q *Querier) Environ(pid int) ([]string, error) {
	buf, err := q.EnvironBlock(pid)
	if err != nil {
		return nil, err
	}
	env := []string{}
	for _, e := range strings.Split(string(buf.Data()), "\x00") {
		if e != "" {
			env = append(env, e)
		}
	}
	return env, nil
}

// EnvironBlock returns the raw environment block. Proc hands over a copy,
// so there is no remote address to carry.
func (q *Querier) EnvironBlock(pid int) (*remotebuf.Buffer, error) {
	if err := checkPid(pid); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(q.path(pid, "environ"))
	if err != nil {
		return nil, mapProcError("read environ", pid, err)
	}
	return remotebuf.NewBuffer(0, data), nil
}

// FindSnapshotEntry returns the stat record for pid.
func (q *Querier) FindSnapshotEntry(pid int) (procinfo.SnapshotEntry, error) {
	if err := checkPid(pid); err != nil {
		return procinfo.SnapshotEntry{}, err
	}
	data, err := os.ReadFile(q.path(pid, "stat"))
	if err != nil {
		return procinfo.SnapshotEntry{}, mapProcError("read stat", pid, err)
	}
	entry, err := parseStatEntry(string(data))
	if err != nil {
		return procinfo.SnapshotEntry{}, err
	}
	entry.Handles = q.countFds(pid)
	return entry, nil
}
