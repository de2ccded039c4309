// Package procinfo provides the portable types and interfaces for querying
// another running process without its cooperation: liveness, command line,
// working directory and environment block.
package procinfo

import "fmt"

// Liveness is the trichotomy produced by a process existence check.
//
// Indeterminate means the probe's signal was ambiguous (for example a handle
// reporting a concrete exit code for a PID slot that may have been recycled)
// and must be resolved against a system-wide enumeration, never coerced into
// Running or NotRunning by guesswork.
type Liveness int

const (
	LivenessIndeterminate Liveness = iota
	LivenessRunning
	LivenessNotRunning
)

// String returns a human readable form of the liveness state
func (l Liveness) String() string {
	switch l {
	case LivenessIndeterminate:
		return "indeterminate"
	case LivenessRunning:
		return "running"
	case LivenessNotRunning:
		return "not-running"
	default:
		return fmt.Sprintf("liveness(%d)", int(l))
	}
}

// CmdlineStrategy selects how the command line of a target process is read.
type CmdlineStrategy int

const (
	// CmdlineFromPeb walks the target's process control block. This reflects
	// whatever value currently resides there, including a command line
	// rewritten after process creation; the control block is the live source
	// of truth the OS itself will use.
	CmdlineFromPeb CmdlineStrategy = iota

	// CmdlineFromKernel issues a narrower system query that returns the
	// command line as recorded at creation time. It succeeds in more
	// access-restricted scenarios but cannot see post-creation tampering.
	CmdlineFromKernel
)

// String returns the strategy name
func (s CmdlineStrategy) String() string {
	if s == CmdlineFromKernel {
		return "kernel"
	}
	return "peb"
}
