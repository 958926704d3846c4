package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingArena_AllocateAndRecycle(t *testing.T) {
	arena := newRingArena[ringNode[string]](2)
	r0 := arena.allocate()
	r1 := arena.allocate()
	r2 := arena.allocate() // grows past the initial capacity
	require.Equal(t, nodeRef(0), r0)
	require.Equal(t, nodeRef(1), r1)
	require.Equal(t, nodeRef(2), r2)
	require.Equal(t, int64(3), arena.liveLen())
	require.Equal(t, 3, arena.slotLen())

	arena.at(r1).value = "payload"
	gen := arena.gen(r1)
	require.True(t, arena.isCurrent(r1, gen))

	arena.recycle(r1)
	require.False(t, arena.isAllocated(r1))
	require.False(t, arena.isCurrent(r1, gen))
	require.Equal(t, "", arena.at(r1).value)
	require.Equal(t, int64(2), arena.liveLen())
	require.Equal(t, 1, arena.recLen())

	// Double recycle is ignored.
	arena.recycle(r1)
	require.Equal(t, int64(2), arena.liveLen())
	require.Equal(t, 1, arena.recLen())

	reused := arena.allocate()
	require.Equal(t, r1, reused)
	require.True(t, arena.isAllocated(reused))
	require.False(t, arena.isCurrent(reused, gen))
	require.Equal(t, 0, arena.recLen())
	require.Equal(t, 3, arena.slotLen())
}

func TestRingArena_InvalidRefs(t *testing.T) {
	arena := newRingArena[biRingNode[int]](0)
	require.False(t, arena.isAllocated(nilRef))
	require.False(t, arena.isAllocated(0))
	require.False(t, arena.isCurrent(5, 0))
	arena.recycle(nilRef)
	require.Equal(t, int64(0), arena.liveLen())
	require.Equal(t, defaultRingListArenaCap, cap(arena.slots))
}

func TestRingList_ArenaSlotsAreReused(t *testing.T) {
	l := newRingList[int](WithRingListArenaCap(4))
	for i := 0; i < 4; i++ {
		l.Add(i)
	}
	for i := 0; i < 100; i++ {
		_, err := l.Remove(0)
		require.NoError(t, err)
		l.Add(i)
	}
	require.Equal(t, 4, l.arena.slotLen())
	require.Equal(t, int64(4), l.arena.liveLen())
	require.NoError(t, l.Verify())

	bl := newBiRingList[int](WithRingListArenaCap(4))
	for i := 0; i < 4; i++ {
		bl.Add(i)
	}
	for i := 0; i < 100; i++ {
		_, err := bl.AddAt(i, 2)
		require.NoError(t, err)
		_, err = bl.Remove(-1)
		require.NoError(t, err)
	}
	require.Equal(t, 5, bl.arena.slotLen())
	require.Equal(t, int64(4), bl.arena.liveLen())
	require.NoError(t, bl.Verify())
}
