package list

// Note that the ring lists are not thread safe.
// The caller must hold exclusive access while invoking any method,
// including the read only ones, because the cursor is shared state.

// RingElement is a live view of a node inside a ring list.
// The view follows the node while other nodes are inserted or
// removed around it. Once the node itself is removed, Index
// returns -1 and Value returns the zero value.
type RingElement[E any] interface {
	// Index returns the current 0-based position of the node.
	Index() int64
	// Value returns the current payload of the node.
	Value() E
	String() string
}

// RingList is the singly linked, index addressable circular list interface.
// Negative indices count backward from the end, -1 is the last element.
type RingList[E any] interface {
	Len() int64
	// Get returns the element at index.
	Get(index int64) (RingElement[E], error)
	// GetElement returns the payload at index.
	GetElement(index int64) (E, error)
	// Add appends v as the new last element and returns it.
	Add(v E) RingElement[E]
	// AddAt inserts v so that it becomes the element at index, 0 <= index < Len().
	// The elements from index onwards are shifted by one.
	AddAt(v E, index int64) (RingElement[E], error)
	// Remove removes the element at index and returns its payload.
	Remove(index int64) (E, error)
	// SetEntry replaces the payload of the element under the cursor.
	SetEntry(v E) error
	// SetEntryAt replaces the payload of the element at index.
	SetEntryAt(v E, index int64) error
	// Current returns the element under the cursor without moving it.
	Current() (RingElement[E], error)
	// Next moves the cursor one link forward and returns the element now under it.
	// Stepping past the last element wraps to the first one.
	Next() (RingElement[E], error)
	// Verify reports every broken ring invariant, nil if the list is consistent.
	Verify() error
	// String renders "[ e0, e1, ..., e(n-1) ]".
	String() string
}

// BiRingList is the doubly linked, index addressable circular list interface.
type BiRingList[E any] interface {
	RingList[E]
	// Prev moves the cursor one link backward and returns the element now under it.
	// Stepping before the first element wraps to the last one.
	Prev() (RingElement[E], error)
}
