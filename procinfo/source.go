package procinfo

import (
	"winpeek/remotebuf"
)

// Source answers questions about processes on the local machine. The
// platform packages provide concrete implementations; callers hold a Source
// so the same tooling runs everywhere.
//
// Negative pids are rejected with ErrNotFound before any platform call is
// made. Pid 0 is a platform idle or kernel pseudo process: it exists, but
// queries against it return ErrAccessDenied.
type Source interface {
	// ListPids returns the pids of every process visible to the caller.
	// The slice is rebuilt on every call.
	ListPids() ([]uint32, error)

	// PidExists reports whether pid refers to a running process right now.
	PidExists(pid int) (bool, error)

	// CommandLine returns the target's argument vector, split the way the
	// platform shell would split it. The strategy selects where the raw
	// command line is read from; platforms with a single source ignore it.
	CommandLine(pid int, strategy CmdlineStrategy) ([]string, error)

	// Cwd returns the target's current working directory.
	Cwd(pid int) (string, error)

	// Environ returns the target's environment as KEY=VALUE strings.
	Environ(pid int) ([]string, error)

	// EnvironBlock returns the raw environment block exactly as it was
	// extracted from the target, for inspection and dumping.
	EnvironBlock(pid int) (*remotebuf.Buffer, error)

	// FindSnapshotEntry returns the enumeration entry for pid: name, parent,
	// thread and handle counts. The entry is looked up fresh on every call.
	FindSnapshotEntry(pid int) (SnapshotEntry, error)
}
