package freqcount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_HeapAllocator_TracksBytesUsed(t *testing.T) {
	t.Parallel()

	a := newHeapAllocator(0)

	buf, err := a.allocate(16)
	require.NoError(t, err)
	require.Len(t, buf, 16)
	require.EqualValues(t, 16, a.bytesUsed)

	a.release(16)
	require.EqualValues(t, 0, a.bytesUsed)
}

func Test_HeapAllocator_ReleaseSaturatesAtZero(t *testing.T) {
	t.Parallel()

	a := newHeapAllocator(0)
	a.release(100)
	require.EqualValues(t, 0, a.bytesUsed)
}

func Test_HeapAllocator_RejectsBudgetExceeded(t *testing.T) {
	t.Parallel()

	a := newHeapAllocator(10)

	_, err := a.allocate(11)
	require.ErrorIs(t, err, ErrOutOfMemory)

	buf, err := a.allocate(10)
	require.NoError(t, err)
	require.Len(t, buf, 10)
}

func Test_HeapAllocator_RejectsZeroLengthRequest(t *testing.T) {
	t.Parallel()

	a := newHeapAllocator(0)

	_, err := a.allocate(0)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func Test_HeapAllocator_RejectsOverflow(t *testing.T) {
	t.Parallel()

	a := newHeapAllocator(0)
	a.bytesUsed = math.MaxUint64 - 2

	_, err := a.allocate(10)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.EqualValues(t, math.MaxUint64-2, a.bytesUsed, "a failed allocate must not mutate bytesUsed")
}

func Test_StaticAllocator_RejectsMisalignedBase(t *testing.T) {
	t.Parallel()

	region := make([]byte, 256)
	// Force misalignment relative to widestAlign by taking an offset
	// slice when the base happens to be aligned; try a few offsets so the
	// test isn't dependent on the allocator's specific base alignment.
	misaligned := false

	for off := 1; off < widestAlign; off++ {
		sub := region[off:]
		if !regionBaseAligned(sub) {
			misaligned = true

			_, ok := newStaticAllocator(sub, 0)
			require.False(t, ok)

			break
		}
	}

	require.True(t, misaligned, "expected at least one offset in [1,widestAlign) to be misaligned")
}

func Test_StaticAllocator_RejectsEmptyRegion(t *testing.T) {
	t.Parallel()

	_, ok := newStaticAllocator(nil, 0)
	require.False(t, ok)
}

func Test_StaticAllocator_ChargesPaddingAgainstBudget(t *testing.T) {
	t.Parallel()

	region := make([]byte, 64)
	a, ok := newStaticAllocator(region, 0)
	require.True(t, ok)

	// Allocate 1 byte, forcing the next allocation to pay (widestAlign-1)
	// bytes of padding before it can proceed.
	_, err := a.allocate(1)
	require.NoError(t, err)

	before := a.bytesUsed

	_, err = a.allocate(1)
	require.NoError(t, err)

	paid := a.bytesUsed - before
	require.Greater(t, paid, uint64(1), "padding must be charged against bytes_used")
}

func Test_StaticAllocator_FailsWhenRegionExhausted(t *testing.T) {
	t.Parallel()

	region := make([]byte, 16)
	a, ok := newStaticAllocator(region, 0)
	require.True(t, ok)

	_, err := a.allocate(16)
	require.NoError(t, err)

	_, err = a.allocate(1)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func Test_StaticAllocator_ReleaseIsNoOp(t *testing.T) {
	t.Parallel()

	region := make([]byte, 64)
	a, ok := newStaticAllocator(region, 0)
	require.True(t, ok)

	_, err := a.allocate(8)
	require.NoError(t, err)

	before := a.regionUsed
	a.release(8)
	require.Equal(t, before, a.regionUsed)
}

func Test_StaticAllocator_EffectiveBudgetIsMinOfRegionAndByteBudget(t *testing.T) {
	t.Parallel()

	region := make([]byte, 64)
	a, ok := newStaticAllocator(region, 16)
	require.True(t, ok)
	require.EqualValues(t, 16, a.bytesLimit)

	_, err := a.allocate(16)
	require.NoError(t, err)

	_, err = a.allocate(1)
	require.ErrorIs(t, err, ErrOutOfMemory, "byte_budget must cap below the larger region")
}
