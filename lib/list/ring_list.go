package list

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var _ RingList[struct{}] = (*ringList[struct{}])(nil) // Type check assertion

// ringList is a singly linked circular list. Every node stores its own
// position, so structural changes re-stamp the nodes behind the splice.
type ringList[E any] struct {
	ringListCore
	arena *ringArena[ringNode[E]]
}

// NewRingList creates an empty singly linked ring list.
func NewRingList[E any](opts ...RingListOption) RingList[E] {
	return newRingList[E](opts...)
}

// NewRingListOf creates a singly linked ring list holding seed only.
func NewRingListOf[E any](seed E, opts ...RingListOption) RingList[E] {
	l := newRingList[E](opts...)
	l.Add(seed)
	return l
}

func newRingList[E any](opts ...RingListOption) *ringList[E] {
	opt := newRingListOption("uni", opts...)
	return &ringList[E]{
		ringListCore: newRingListCore(opt),
		arena:        newRingArena[ringNode[E]](opt.getArenaCap()),
	}
}

func (l *ringList[E]) node(ref nodeRef) *ringNode[E] {
	return l.arena.at(ref)
}

func (l *ringList[E]) element(ref nodeRef) RingElement[E] {
	return newRingElement[E](l, ref, l.arena.gen(ref))
}

func (l *ringList[E]) valueOf(ref nodeRef, gen uint32) (E, bool) {
	if !l.arena.isCurrent(ref, gen) {
		return *new(E), false
	}
	return l.node(ref).value, true
}

func (l *ringList[E]) positionOf(ref nodeRef, gen uint32) (int64, bool) {
	if !l.arena.isCurrent(ref, gen) {
		return -1, false
	}
	return l.node(ref).pos, true
}

// walk follows successors from head, only forward is possible.
func (l *ringList[E]) walk(eff int64) nodeRef {
	iterator := l.head
	for i := int64(0); i < eff; i++ {
		iterator = l.node(iterator).next
	}
	l.stats.RecordLookupSteps(eff)
	return iterator
}

// predecessorOf returns the node at eff-1, wrapping to tail for eff == 0.
func (l *ringList[E]) predecessorOf(eff int64) nodeRef {
	if eff == 0 {
		return l.tail
	}
	return l.walk(eff - 1)
}

// restamp sets positions from, from+1, ... on count nodes starting at ref.
func (l *ringList[E]) restamp(ref nodeRef, from, count int64) {
	for i := int64(0); i < count; i++ {
		n := l.node(ref)
		n.pos = from + i
		ref = n.next
	}
}

func (l *ringList[E]) Get(index int64) (RingElement[E], error) {
	eff, err := l.resolve("get", index)
	if err != nil {
		return nil, err
	}
	return l.element(l.walk(eff)), nil
}

func (l *ringList[E]) GetElement(index int64) (E, error) {
	eff, err := l.resolve("getElement", index)
	if err != nil {
		return *new(E), err
	}
	return l.node(l.walk(eff)).value, nil
}

func (l *ringList[E]) Add(v E) RingElement[E] {
	ref := l.arena.allocate()
	n := l.node(ref)
	n.value = v
	n.pos = l.len

	if l.len == 0 {
		// The only one node is its own successor.
		n.next = ref
		l.head, l.tail, l.cursor = ref, ref, ref
	} else {
		n.next = l.head
		l.node(l.tail).next = ref
		l.tail = ref
	}
	l.inserted()
	return l.element(ref)
}

func (l *ringList[E]) AddAt(v E, index int64) (RingElement[E], error) {
	if err := l.resolveInsert(index); err != nil {
		return nil, err
	}

	prev := l.predecessorOf(index)
	at := l.node(prev).next
	// Shift the old occupant and all nodes behind it.
	l.restamp(at, index+1, l.len-index)

	ref := l.arena.allocate()
	n := l.node(ref)
	n.value = v
	n.pos = index
	n.next = at
	l.node(prev).next = ref
	if index == 0 {
		l.head = ref
	}
	l.inserted()
	return l.element(ref), nil
}

func (l *ringList[E]) Remove(index int64) (E, error) {
	eff, err := l.resolve("remove", index)
	if err != nil {
		return *new(E), err
	}

	prev := l.predecessorOf(eff)
	ref := l.node(prev).next
	succ := l.node(ref).next
	v := l.node(ref).value

	if l.len > 1 {
		l.node(prev).next = succ
		if ref == l.head {
			l.head = succ
		}
		if ref == l.tail {
			l.tail = prev
		}
		if ref == l.cursor {
			l.cursor = succ
		}
		l.restamp(succ, eff, l.len-1-eff)
	}
	l.arena.recycle(ref)
	l.removed()
	return v, nil
}

func (l *ringList[E]) SetEntry(v E) error {
	if err := l.checkCursor("setEntry"); err != nil {
		return err
	}
	l.node(l.cursor).value = v
	return nil
}

func (l *ringList[E]) SetEntryAt(v E, index int64) error {
	eff, err := l.resolve("setEntryAt", index)
	if err != nil {
		return err
	}
	l.node(l.walk(eff)).value = v
	return nil
}

func (l *ringList[E]) Current() (RingElement[E], error) {
	if err := l.checkCursor("current"); err != nil {
		return nil, err
	}
	return l.element(l.cursor), nil
}

func (l *ringList[E]) Next() (RingElement[E], error) {
	if err := l.checkCursor("next"); err != nil {
		return nil, err
	}
	l.cursor = l.node(l.cursor).next
	return l.element(l.cursor), nil
}

func (l *ringList[E]) Verify() error {
	probe := &ringProbe{
		length:    l.len,
		live:      l.arena.liveLen(),
		head:      l.head,
		tail:      l.tail,
		cursor:    l.cursor,
		allocated: l.arena.isAllocated,
		next: func(ref nodeRef) nodeRef {
			return l.node(ref).next
		},
		position: func(ref nodeRef) int64 {
			return l.node(ref).pos
		},
	}
	return l.verified(probe.verify())
}

func (l *ringList[E]) values() []E {
	values := make([]E, 0, l.len)
	for i, iterator := int64(0), l.head; i < l.len; i++ {
		n := l.node(iterator)
		values = append(values, n.value)
		iterator = n.next
	}
	return values
}

func (l *ringList[E]) String() string {
	return renderRing(l.values())
}

// renderRing formats values as "[ v0, v1, ... ]", "[  ]" if empty.
func renderRing[E any](values []E) string {
	entries := lo.Map(values, func(v E, _ int) string {
		return fmt.Sprintf("%v", v)
	})
	return "[ " + strings.Join(entries, ", ") + " ]"
}
