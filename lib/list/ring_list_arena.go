package list

// nodeRef addresses a slot inside a ringArena.
type nodeRef int32

const nilRef nodeRef = -1

// ringArena keeps the ring nodes in a contiguous slot slice.
// Links between nodes are slot handles instead of pointers, so a removed
// node is just a recycled slot and never a dangling reference.
// Pointers returned by at are only valid until the next allocate.
type ringArena[N any] struct {
	slots    []N
	gens     []uint32 // bumped on every recycle, detects stale views
	used     []bool
	recycled []nodeRef
	live     int64
}

func newRingArena[N any](capacity int) *ringArena[N] {
	if capacity <= 0 {
		capacity = defaultRingListArenaCap
	}
	return &ringArena[N]{
		slots:    make([]N, 0, capacity),
		gens:     make([]uint32, 0, capacity),
		used:     make([]bool, 0, capacity),
		recycled: make([]nodeRef, 0, capacity/4+1),
	}
}

// allocate returns a zeroed slot, reusing a recycled one first.
func (arena *ringArena[N]) allocate() nodeRef {
	var ref nodeRef
	if rl := len(arena.recycled); rl > 0 {
		ref = arena.recycled[rl-1]
		arena.recycled = arena.recycled[:rl-1]
	} else {
		ref = nodeRef(len(arena.slots))
		arena.slots = append(arena.slots, *new(N))
		arena.gens = append(arena.gens, 0)
		arena.used = append(arena.used, false)
	}
	arena.used[ref] = true
	arena.live++
	return ref
}

// recycle releases the slot and its payload.
func (arena *ringArena[N]) recycle(ref nodeRef) {
	if !arena.isAllocated(ref) {
		return
	}
	arena.slots[ref] = *new(N) // avoid memory leaks
	arena.gens[ref]++
	arena.used[ref] = false
	arena.recycled = append(arena.recycled, ref)
	arena.live--
}

func (arena *ringArena[N]) at(ref nodeRef) *N {
	return &arena.slots[ref]
}

func (arena *ringArena[N]) gen(ref nodeRef) uint32 {
	return arena.gens[ref]
}

func (arena *ringArena[N]) isAllocated(ref nodeRef) bool {
	return ref >= 0 && int(ref) < len(arena.slots) && arena.used[ref]
}

// isCurrent reports whether ref is still the same node it was when gen was taken.
func (arena *ringArena[N]) isCurrent(ref nodeRef, gen uint32) bool {
	return arena.isAllocated(ref) && arena.gens[ref] == gen
}

func (arena *ringArena[N]) liveLen() int64 {
	return arena.live
}

func (arena *ringArena[N]) slotLen() int {
	return len(arena.slots)
}

func (arena *ringArena[N]) recLen() int {
	return len(arena.recycled)
}
