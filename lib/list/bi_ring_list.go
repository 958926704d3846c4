package list

var _ BiRingList[struct{}] = (*biRingList[struct{}])(nil) // Type check assertion

// biRingList is a doubly linked circular list.
// head.prev is tail and tail.next is head.
type biRingList[E any] struct {
	ringListCore
	arena *ringArena[biRingNode[E]]
}

// NewBiRingList creates an empty doubly linked ring list.
func NewBiRingList[E any](opts ...RingListOption) BiRingList[E] {
	return newBiRingList[E](opts...)
}

// NewBiRingListOf creates a doubly linked ring list holding seed only.
func NewBiRingListOf[E any](seed E, opts ...RingListOption) BiRingList[E] {
	l := newBiRingList[E](opts...)
	l.Add(seed)
	return l
}

func newBiRingList[E any](opts ...RingListOption) *biRingList[E] {
	opt := newRingListOption("bi", opts...)
	return &biRingList[E]{
		ringListCore: newRingListCore(opt),
		arena:        newRingArena[biRingNode[E]](opt.getArenaCap()),
	}
}

func (l *biRingList[E]) node(ref nodeRef) *biRingNode[E] {
	return l.arena.at(ref)
}

func (l *biRingList[E]) element(ref nodeRef) RingElement[E] {
	return newRingElement[E](l, ref, l.arena.gen(ref))
}

func (l *biRingList[E]) valueOf(ref nodeRef, gen uint32) (E, bool) {
	if !l.arena.isCurrent(ref, gen) {
		return *new(E), false
	}
	return l.node(ref).value, true
}

func (l *biRingList[E]) positionOf(ref nodeRef, gen uint32) (int64, bool) {
	if !l.arena.isCurrent(ref, gen) {
		return -1, false
	}
	return l.node(ref).pos, true
}

// walk starts from the closer end of the ring.
func (l *biRingList[E]) walk(eff int64) nodeRef {
	if eff <= l.len/2 {
		iterator := l.head
		for i := int64(0); i < eff; i++ {
			iterator = l.node(iterator).next
		}
		l.stats.RecordLookupSteps(eff)
		return iterator
	}

	steps := l.len - 1 - eff
	iterator := l.tail
	for i := int64(0); i < steps; i++ {
		iterator = l.node(iterator).prev
	}
	l.stats.RecordLookupSteps(steps)
	return iterator
}

func (l *biRingList[E]) restamp(ref nodeRef, from, count int64) {
	for i := int64(0); i < count; i++ {
		n := l.node(ref)
		n.pos = from + i
		ref = n.next
	}
}

func (l *biRingList[E]) Get(index int64) (RingElement[E], error) {
	eff, err := l.resolve("get", index)
	if err != nil {
		return nil, err
	}
	return l.element(l.walk(eff)), nil
}

func (l *biRingList[E]) GetElement(index int64) (E, error) {
	eff, err := l.resolve("getElement", index)
	if err != nil {
		return *new(E), err
	}
	return l.node(l.walk(eff)).value, nil
}

func (l *biRingList[E]) Add(v E) RingElement[E] {
	ref := l.arena.allocate()
	n := l.node(ref)
	n.value = v
	n.pos = l.len

	if l.len == 0 {
		n.next, n.prev = ref, ref
		l.head, l.tail, l.cursor = ref, ref, ref
	} else {
		n.next, n.prev = l.head, l.tail
		l.node(l.tail).next = ref
		l.node(l.head).prev = ref
		l.tail = ref
	}
	l.inserted()
	return l.element(ref)
}

func (l *biRingList[E]) AddAt(v E, index int64) (RingElement[E], error) {
	if err := l.resolveInsert(index); err != nil {
		return nil, err
	}

	at := l.walk(index)
	prev := l.node(at).prev
	l.restamp(at, index+1, l.len-index)

	ref := l.arena.allocate()
	n := l.node(ref)
	n.value = v
	n.pos = index
	n.next, n.prev = at, prev
	l.node(prev).next = ref
	l.node(at).prev = ref
	if index == 0 {
		l.head = ref
	}
	l.inserted()
	return l.element(ref), nil
}

func (l *biRingList[E]) Remove(index int64) (E, error) {
	eff, err := l.resolve("remove", index)
	if err != nil {
		return *new(E), err
	}

	ref := l.walk(eff)
	n := l.node(ref)
	prev, succ, v := n.prev, n.next, n.value

	if l.len > 1 {
		l.node(prev).next = succ
		l.node(succ).prev = prev
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

func (l *biRingList[E]) SetEntry(v E) error {
	if err := l.checkCursor("setEntry"); err != nil {
		return err
	}
	l.node(l.cursor).value = v
	return nil
}

func (l *biRingList[E]) SetEntryAt(v E, index int64) error {
	eff, err := l.resolve("setEntryAt", index)
	if err != nil {
		return err
	}
	l.node(l.walk(eff)).value = v
	return nil
}

func (l *biRingList[E]) Current() (RingElement[E], error) {
	if err := l.checkCursor("current"); err != nil {
		return nil, err
	}
	return l.element(l.cursor), nil
}

func (l *biRingList[E]) Next() (RingElement[E], error) {
	if err := l.checkCursor("next"); err != nil {
		return nil, err
	}
	l.cursor = l.node(l.cursor).next
	return l.element(l.cursor), nil
}

func (l *biRingList[E]) Prev() (RingElement[E], error) {
	if err := l.checkCursor("prev"); err != nil {
		return nil, err
	}
	l.cursor = l.node(l.cursor).prev
	return l.element(l.cursor), nil
}

func (l *biRingList[E]) Verify() error {
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
		prev: func(ref nodeRef) nodeRef {
			return l.node(ref).prev
		},
		position: func(ref nodeRef) int64 {
			return l.node(ref).pos
		},
	}
	return l.verified(probe.verify())
}

func (l *biRingList[E]) values() []E {
	values := make([]E, 0, l.len)
	for i, iterator := int64(0), l.head; i < l.len; i++ {
		n := l.node(iterator)
		values = append(values, n.value)
		iterator = n.next
	}
	return values
}

func (l *biRingList[E]) String() string {
	return renderRing(l.values())
}
