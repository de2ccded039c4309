// Package procscan sweeps every process a Source can see and gathers one
// best-effort record per pid. Fields a target withholds stay zero rather
// than failing the sweep, which is what makes the scan usable without
// elevated rights.
package procscan

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"winpeek/procinfo"
	"winpeek/wstr"
)

// Record is the portrait of one process assembled during a scan.
type Record struct {
	PID       uint32            `json:"pid"`
	ParentPID uint32            `json:"ppid"`
	Name      string            `json:"name"`
	Args      []string          `json:"args"`
	Cmdline   string            `json:"cmdline"`
	Cwd       string            `json:"cwd"`
	Env       map[string]string `json:"env"`

	// Partial marks records where at least one query was refused.
	Partial bool `json:"partial"`
}

// Scan walks the full pid list and collects a record for each, running at
// most workers queries in parallel. Cancelling the context stops scheduling
// new pids; queries already in flight run to completion and their records
// are returned alongside the context error.
func Scan(ctx context.Context, src procinfo.Source, workers int64) ([]Record, error) {
	if workers < 1 {
		workers = 1
	}

	pids, err := src.ListPids()
	if err != nil {
		return nil, err
	}

	sem := semaphore.NewWeighted(workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	records := make([]Record, 0, len(pids))

	for _, pid := range pids {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)

		go func(pid uint32) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			rec := collect(src, int(pid))
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
		}(pid)
	}

	wg.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].PID < records[j].PID })
	return records, ctx.Err()
}

// collect asks the source for everything it will reveal about one pid.
func collect(src procinfo.Source, pid int) Record {
	rec := Record{PID: uint32(pid), Env: map[string]string{}}

	if entry, err := src.FindSnapshotEntry(pid); err == nil {
		rec.Name = entry.Name
		rec.ParentPID = entry.ParentPID
	} else {
		rec.Partial = true
	}

	if args, err := src.CommandLine(pid, procinfo.CmdlineFromPeb); err == nil {
		rec.Args = args
		rec.Cmdline = strings.Join(args, " ")
	} else {
		rec.Partial = true
	}

	if cwd, err := src.Cwd(pid); err == nil {
		rec.Cwd = cwd
	} else {
		rec.Partial = true
	}

	if env, err := src.Environ(pid); err == nil {
		rec.Env = wstr.ParseMap(env)
	} else {
		rec.Partial = true
	}

	return rec
}
