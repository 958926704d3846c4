package list

import (
	"fmt"
)

type ringNode[E any] struct {
	value E
	pos   int64
	next  nodeRef
}

type biRingNode[E any] struct {
	value E
	pos   int64
	next  nodeRef
	prev  nodeRef // lookup link only
}

// ringSlotReader reads a node through a generation checked handle.
type ringSlotReader[E any] interface {
	valueOf(ref nodeRef, gen uint32) (E, bool)
	positionOf(ref nodeRef, gen uint32) (int64, bool)
}

var _ RingElement[struct{}] = (*ringElement[struct{}])(nil)

type ringElement[E any] struct {
	src ringSlotReader[E]
	ref nodeRef
	gen uint32
}

func newRingElement[E any](src ringSlotReader[E], ref nodeRef, gen uint32) *ringElement[E] {
	return &ringElement[E]{
		src: src,
		ref: ref,
		gen: gen,
	}
}

func (e *ringElement[E]) Index() int64 {
	if e == nil || e.src == nil {
		return -1
	}
	pos, ok := e.src.positionOf(e.ref, e.gen)
	if !ok {
		return -1
	}
	return pos
}

func (e *ringElement[E]) Value() E {
	if e == nil || e.src == nil {
		return *new(E)
	}
	v, _ := e.src.valueOf(e.ref, e.gen)
	return v
}

func (e *ringElement[E]) String() string {
	return fmt.Sprintf("%v", e.Value())
}
