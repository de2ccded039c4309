package procinfo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLivenessString(t *testing.T) {
	assert.Equal(t, "indeterminate", LivenessIndeterminate.String())
	assert.Equal(t, "running", LivenessRunning.String())
	assert.Equal(t, "not-running", LivenessNotRunning.String())
	assert.Equal(t, "liveness(42)", Liveness(42).String())
}

func TestCmdlineStrategyString(t *testing.T) {
	assert.Equal(t, "peb", CmdlineFromPeb.String())
	assert.Equal(t, "kernel", CmdlineFromKernel.String())
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("pid 42: %w", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, ErrIndeterminate)
}

func TestOSErrorUnwrap(t *testing.T) {
	inner := errors.New("native failure")
	err := NewOSError("ReadProcessMemory", inner)

	assert.EqualError(t, err, "ReadProcessMemory: native failure")
	assert.True(t, errors.Is(err, inner))

	var osErr *OSError
	assert.True(t, errors.As(error(err), &osErr))
	assert.Equal(t, "ReadProcessMemory", osErr.Op)
}

func TestSnapshotEntryString(t *testing.T) {
	e := SnapshotEntry{
		PID:       1234,
		ParentPID: 1,
		Name:      "winpeek.exe",
		Threads:   4,
		Handles:   87,
	}
	assert.Contains(t, e.String(), "winpeek.exe")
	assert.Contains(t, e.String(), "1234")
}
