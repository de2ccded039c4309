package procinfo_windows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnum(total int, calls *int) func(buf []uint32) (uint32, error) {
	return func(buf []uint32) (uint32, error) {
		*calls++
		n := total
		if n > len(buf) {
			n = len(buf)
		}
		for i := 0; i < n; i++ {
			buf[i] = uint32(i + 1)
		}
		return uint32(n), nil
	}
}

func TestEnumGrowUntilSlack(t *testing.T) {
	var calls int
	pids, err := enumGrow(fakeEnum(2500, &calls))
	require.NoError(t, err)
	assert.Len(t, pids, 2500)
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint32(1), pids[0])
	assert.Equal(t, uint32(2500), pids[2499])
}

func TestEnumGrowExactBoundary(t *testing.T) {
	// a count that exactly fills the array is indistinguishable from a
	// truncated one, so it must trigger another call
	var calls int
	pids, err := enumGrow(fakeEnum(1024, &calls))
	require.NoError(t, err)
	assert.Len(t, pids, 1024)
	assert.Equal(t, 2, calls)
}

func TestEnumGrowSmallList(t *testing.T) {
	var calls int
	pids, err := enumGrow(fakeEnum(5, &calls))
	require.NoError(t, err)
	assert.Len(t, pids, 5)
	assert.Equal(t, 1, calls)
}

func TestEnumGrowPropagatesError(t *testing.T) {
	boom := errors.New("enum failed")
	_, err := enumGrow(func([]uint32) (uint32, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}
