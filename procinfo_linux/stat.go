//go:build linux

package procinfo_linux

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"winpeek/procinfo"
)

// parseStatEntry decodes a proc stat line. The command name sits inside
// parentheses and may itself contain spaces and parentheses, so the line is
// split around the last closing one.
func parseStatEntry(raw string) (procinfo.SnapshotEntry, error) {
	open := strings.Index(raw, "(")
	close := strings.LastIndex(raw, ")")
	if open < 0 || close < open || close+2 >= len(raw) {
		return procinfo.SnapshotEntry{}, procinfo.NewOSError("parse stat", fmt.Errorf("malformed line %q", raw))
	}

	pid, err := strconv.Atoi(strings.TrimSpace(raw[:open]))
	if err != nil {
		return procinfo.SnapshotEntry{}, procinfo.NewOSError("parse stat", err)
	}

	// after the parentheses: state ppid pgrp session ... num_threads at
	// index 17
	fields := strings.Fields(raw[close+2:])
	if len(fields) < 18 {
		return procinfo.SnapshotEntry{}, procinfo.NewOSError("parse stat", fmt.Errorf("want 18+ fields, got %d", len(fields)))
	}
	ppid, _ := strconv.Atoi(fields[1])
	session, _ := strconv.Atoi(fields[3])
	threads, _ := strconv.Atoi(fields[17])

	return procinfo.SnapshotEntry{
		PID:       uint32(pid),
		ParentPID: uint32(ppid),
		Name:      raw[open+1 : close],
		Threads:   threads,
		SessionID: uint32(session),
	}, nil
}

// countFds reports how many descriptors the target holds open, zero when
// its fd table is not readable.
func (q *Querier) countFds(pid int) int {
	entries, err := os.ReadDir(q.path(pid, "fd"))
	if err != nil {
		return 0
	}
	return len(entries)
}
