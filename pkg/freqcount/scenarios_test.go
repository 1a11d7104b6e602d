package freqcount

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// These tests exercise the literal end-to-end examples enumerated for this
// package's behavior: given inputs must produce exactly the stated
// total/unique counts and snapshot contents.

func Test_Scenario1_HelloWorld(t *testing.T) {
	t.Parallel()

	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("Hello World")))

	require.EqualValues(t, 2, c.Total())
	require.EqualValues(t, 2, c.Unique())

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Key: []byte("hello"), Count: 1},
		{Key: []byte("world"), Count: 1},
	}, entries)
}

func Test_Scenario2_CaseFoldingMergesAllVariants(t *testing.T) {
	t.Parallel()

	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("Hello HELLO hello HeLLo")))

	require.EqualValues(t, 4, c.Total())
	require.EqualValues(t, 1, c.Unique())

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []Entry{{Key: []byte("hello"), Count: 4}}, entries)
}

func Test_Scenario3_CountDescendingSnapshotOrder(t *testing.T) {
	t.Parallel()

	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("apple banana apple cherry apple banana")))

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Key: []byte("apple"), Count: 3},
		{Key: []byte("banana"), Count: 2},
		{Key: []byte("cherry"), Count: 1},
	}, entries)
}

func Test_Scenario4_TruncationCollapseAtShortMaxTokenLen(t *testing.T) {
	t.Parallel()

	c, err := OpenWithConfig(8, Config{})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("internationalization internationally international")))

	require.EqualValues(t, 3, c.Total())
	require.EqualValues(t, 1, c.Unique())

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []Entry{{Key: []byte("internat"), Count: 3}}, entries)
}

func Test_Scenario5_HashCollisionOfDifferentLengthsStaysDistinct(t *testing.T) {
	t.Parallel()

	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("svhpy znycrycwqhztadbhsrdok")))

	require.EqualValues(t, 2, c.Total())
	require.EqualValues(t, 2, c.Unique())

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	keys := map[string]uint64{string(entries[0].Key): entries[0].Count, string(entries[1].Key): entries[1].Count}
	require.Equal(t, map[string]uint64{"svhpy": 1, "znycrycwqhztadbhsrdok": 1}, keys)
}

func Test_Scenario6_StaticRegionMonotoneFrontier(t *testing.T) {
	t.Parallel()

	_, err := OpenWithConfig(16, Config{StaticRegion: make([]byte, 1)})
	require.ErrorIs(t, err, ErrOutOfMemory)

	// Binary search the smallest region size (bounded by the spec's stated
	// S_min <= 4096 ceiling, doubled for safety margin) that admits
	// construction, then confirm one byte less fails - the monotone
	// frontier property.
	lo, hi := 1, 8192

	for lo < hi {
		mid := (lo + hi) / 2

		_, err := OpenWithConfig(16, Config{StaticRegion: make([]byte, mid)})
		if err == nil {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	sMin := lo

	c, err := OpenWithConfig(16, Config{StaticRegion: make([]byte, sMin)})
	require.NoError(t, err, "the discovered S_min must itself succeed")

	c.Close()

	_, err = OpenWithConfig(16, Config{StaticRegion: make([]byte, sMin-1)})
	require.ErrorIs(t, err, ErrOutOfMemory, "one byte below S_min must fail")
}
