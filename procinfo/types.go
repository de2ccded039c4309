package procinfo

import "fmt"

// SnapshotEntry is one record from a system-wide process enumeration. It is
// rebuilt on every lookup; the live process table can change between any two
// calls, so entries are never cached.
type SnapshotEntry struct {
	PID       uint32 // Process ID
	ParentPID uint32 // Parent process ID as recorded in the snapshot
	Name      string // Image name, without path
	Threads   int    // Thread count at snapshot time
	Handles   int    // Handle count at snapshot time
	SessionID uint32 // Terminal services session
}

// String returns a one line summary of the entry
func (e SnapshotEntry) String() string {
	return fmt.Sprintf("pid=%d ppid=%d name=%q threads=%d", e.PID, e.ParentPID, e.Name, e.Threads)
}
