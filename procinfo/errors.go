package procinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the PID does not correspond to a running
	// process at the time of the call.
	ErrNotFound = errors.New("process does not exist")

	// ErrAccessDenied is returned when the caller lacks the rights to query
	// the target, and for cross-bitness combinations the platform cannot
	// serve (reading a wide target from a narrow caller has no bounded
	// environment read, so it is reported as access denied rather than
	// attempted).
	ErrAccessDenied = errors.New("access denied")

	// ErrIndeterminate marks a liveness signal that could not be classified.
	// It never escapes the package that raised it: the caller resolves it
	// against the enumeration snapshot.
	ErrIndeterminate = errors.New("liveness indeterminate")

	// ErrInternalInconsistency is reported only in self-check mode, when a
	// liveness decision disagrees with the enumeration snapshot taken to
	// validate it.
	ErrInternalInconsistency = errors.New("liveness decision contradicts enumeration snapshot")
)

// OSError carries an unexpected native error code for diagnostics. Expected
// conditions (no such process, access denied) are mapped to the sentinel
// errors above before this wrapper is ever used.
type OSError struct {
	Op  string // the syscall or step that failed
	Err error  // the native error, usually a syscall.Errno or NTSTATUS
}

func (e *OSError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

// NewOSError wraps a native failure with the operation that produced it.
func NewOSError(op string, err error) *OSError {
	return &OSError{Op: op, Err: err}
}
