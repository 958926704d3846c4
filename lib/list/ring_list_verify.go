package list

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xring/lib/infra"
)

// ringProbe exposes a ring to the invariant checks without caring
// about the concrete node type.
type ringProbe struct {
	length    int64
	live      int64
	head      nodeRef
	tail      nodeRef
	cursor    nodeRef
	allocated func(ref nodeRef) bool
	next      func(ref nodeRef) nodeRef
	prev      func(ref nodeRef) nodeRef // nil for singly linked rings
	position  func(ref nodeRef) int64
}

// verify walks the ring once and collects every broken invariant.
func (p *ringProbe) verify() error {
	var merr error
	if p.live != p.length {
		merr = multierr.Append(merr, fmt.Errorf("arena holds %d live nodes, len is %d", p.live, p.length))
	}

	if p.length <= 0 {
		if p.head != nilRef || p.tail != nilRef || p.cursor != nilRef {
			merr = multierr.Append(merr, fmt.Errorf("empty ring still refers to head %d, tail %d, cursor %d",
				p.head, p.tail, p.cursor))
		}
		return wrapRingInvariants(merr)
	}

	for name, ref := range map[string]nodeRef{"head": p.head, "tail": p.tail, "cursor": p.cursor} {
		if !p.allocated(ref) {
			merr = multierr.Append(merr, fmt.Errorf("%s %d is not a live node", name, ref))
		}
	}
	if merr != nil {
		return wrapRingInvariants(merr)
	}

	var (
		visited  = make(map[nodeRef]struct{}, p.length)
		iterator = p.head
		last     = nilRef
	)
	for i := int64(0); i < p.length; i++ {
		if !p.allocated(iterator) {
			merr = multierr.Append(merr, fmt.Errorf("link at position %d points to a dead node %d", i, iterator))
			return wrapRingInvariants(merr)
		}
		if _, ok := visited[iterator]; ok {
			merr = multierr.Append(merr, fmt.Errorf("node %d revisited at position %d, sub-cycle", iterator, i))
			return wrapRingInvariants(merr)
		}
		visited[iterator] = struct{}{}

		if pos := p.position(iterator); pos != i {
			merr = multierr.Append(merr, fmt.Errorf("node %d stores position %d, expected %d", iterator, pos, i))
		}
		if p.prev != nil {
			if n := p.next(iterator); p.allocated(n) && p.prev(n) != iterator {
				merr = multierr.Append(merr, fmt.Errorf("node %d's successor %d does not link back", iterator, n))
			}
			if pv := p.prev(iterator); !p.allocated(pv) || p.next(pv) != iterator {
				merr = multierr.Append(merr, fmt.Errorf("node %d's predecessor %d does not link forward", iterator, pv))
			}
		}
		last = iterator
		iterator = p.next(iterator)
	}

	if iterator != p.head {
		merr = multierr.Append(merr, fmt.Errorf("ring not closed, %d links from head reach %d", p.length, iterator))
	}
	if last != p.tail {
		merr = multierr.Append(merr, fmt.Errorf("tail is %d, the last node is %d", p.tail, last))
	}
	if p.prev != nil && p.prev(p.head) != p.tail {
		merr = multierr.Append(merr, fmt.Errorf("head's predecessor is %d, tail is %d", p.prev(p.head), p.tail))
	}
	if _, ok := visited[p.cursor]; !ok {
		merr = multierr.Append(merr, fmt.Errorf("cursor %d is not in the ring", p.cursor))
	}
	return wrapRingInvariants(merr)
}

func wrapRingInvariants(merr error) error {
	return infra.WrapErrorStackWithMessage(merr, "[xring] ring invariants broken")
}
