package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectBiRingSymmetry[E any](t *testing.T, l *biRingList[E]) {
	t.Helper()
	if l.len == 0 {
		return
	}
	require.Equal(t, l.tail, l.node(l.head).prev)
	require.Equal(t, l.head, l.node(l.tail).next)

	iterator := l.head
	for i := int64(0); i < l.len; i++ {
		n := l.node(iterator)
		require.Equal(t, iterator, l.node(n.next).prev)
		require.Equal(t, iterator, l.node(n.prev).next)
		iterator = n.next
	}
	require.Equal(t, l.head, iterator)

	// Walking backward from tail visits the positions in reverse.
	iterator = l.tail
	for i := l.len - 1; i >= 0; i-- {
		require.Equal(t, i, l.node(iterator).pos)
		iterator = l.node(iterator).prev
	}
	require.Equal(t, l.tail, iterator)
}

func TestBiRingList_PrevWrapAround(t *testing.T) {
	l := NewBiRingList[int]()
	l.Add(1)
	l.Add(2)
	l.Add(3)

	for _, expected := range []int{3, 2, 1, 3} {
		e, err := l.Prev()
		require.NoError(t, err)
		require.Equal(t, expected, e.Value())
	}
	e, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, 1, e.Value())
}

func TestBiRingList_PrevOnEmptyAndSeed(t *testing.T) {
	l := NewBiRingList[string]()
	_, err := l.Prev()
	require.ErrorIs(t, err, ErrRingListEmpty)

	l = NewBiRingListOf[string]("only")
	e, err := l.Prev()
	require.NoError(t, err)
	require.Equal(t, "only", e.Value())
	require.Equal(t, "[ only ]", l.String())
}

func TestBiRingList_Symmetry(t *testing.T) {
	l := newBiRingList[int]()
	for i := 0; i < 6; i++ {
		l.Add(i)
		expectBiRingSymmetry(t, l)
	}

	_, err := l.AddAt(10, 0)
	require.NoError(t, err)
	expectBiRingSymmetry(t, l)
	_, err = l.AddAt(11, 4)
	require.NoError(t, err)
	expectBiRingSymmetry(t, l)
	_, err = l.AddAt(12, l.Len()-1)
	require.NoError(t, err)
	expectBiRingSymmetry(t, l)
	require.Equal(t, "[ 10, 0, 1, 2, 11, 3, 4, 12, 5 ]", l.String())

	for _, idx := range []int64{0, -1, 3, 1} {
		_, err = l.Remove(idx)
		require.NoError(t, err)
		expectBiRingSymmetry(t, l)
	}
	require.Equal(t, "[ 0, 2, 3, 4, 12 ]", l.String())
	require.NoError(t, l.Verify())
}

func TestBiRingList_WalkFromCloserEnd(t *testing.T) {
	l := newBiRingList[int]()
	for i := 0; i < 9; i++ {
		l.Add(i * 10)
	}
	for i := int64(0); i < l.Len(); i++ {
		ref := l.walk(i)
		require.Equal(t, i, l.node(ref).pos)
		require.Equal(t, int(i*10), l.node(ref).value)
	}
	require.Equal(t, l.tail, l.walk(8))
	require.Equal(t, l.node(l.tail).prev, l.walk(7))
	require.Equal(t, l.head, l.walk(0))
}

func TestBiRingList_CursorAcrossMutation(t *testing.T) {
	l := NewBiRingList[int]()
	for i := 1; i <= 4; i++ {
		l.Add(i)
	}
	_, err := l.Prev() // 4
	require.NoError(t, err)

	_, err = l.AddAt(0, 0)
	require.NoError(t, err)
	cur, err := l.Current()
	require.NoError(t, err)
	require.Equal(t, 4, cur.Value())
	require.Equal(t, int64(4), cur.Index())

	// Removing the cursor's node moves the cursor to the successor, the head.
	v, err := l.Remove(-1)
	require.NoError(t, err)
	require.Equal(t, 4, v)
	cur, err = l.Current()
	require.NoError(t, err)
	require.Equal(t, 0, cur.Value())

	cur, err = l.Prev()
	require.NoError(t, err)
	require.Equal(t, 3, cur.Value())
	require.NoError(t, l.Verify())
}

func TestBiRingList_Verify(t *testing.T) {
	l := newBiRingList[int]()
	for i := 0; i < 4; i++ {
		l.Add(i)
	}
	require.NoError(t, l.Verify())

	t.Log("broken predecessor")
	mid := l.walk(2)
	saved := l.node(mid).prev
	l.node(mid).prev = l.head
	err := l.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not link back")
	assert.Contains(t, err.Error(), "does not link forward")
	l.node(mid).prev = saved
	require.NoError(t, l.Verify())

	t.Log("broken head predecessor")
	l.node(l.head).prev = l.walk(1)
	err = l.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "head's predecessor")
}
