package ecs

import "math/bits"

// DirtySet records entities whose derived state is stale. An entity is
// queued at most once until the set is drained, so each change is
// recomputed at most once.
type DirtySet struct {
	bits  []uint64
	queue []EntityID
	spare []EntityID
}

func NewDirtySet(capacity int) *DirtySet {
	return &DirtySet{
		bits:  make([]uint64, (capacity+63)/64),
		queue: make([]EntityID, 0, 64),
		spare: make([]EntityID, 0, 64),
	}
}

func (d *DirtySet) inRange(id EntityID) bool {
	return id >= 0 && int(id>>6) < len(d.bits)
}

// Mark flags id. Returns false if id was already flagged.
func (d *DirtySet) Mark(id EntityID) bool {
	if !d.inRange(id) || d.Has(id) {
		return false
	}
	d.bits[id>>6] |= 1 << uint(id&63)
	d.queue = append(d.queue, id)
	return true
}

func (d *DirtySet) Has(id EntityID) bool {
	if !d.inRange(id) {
		return false
	}
	return d.bits[id>>6]&(1<<uint(id&63)) != 0
}

// Clear unflags id. A queued entry whose bit is cleared is skipped by Drain.
func (d *DirtySet) Clear(id EntityID) {
	if d.inRange(id) {
		d.bits[id>>6] &^= 1 << uint(id&63)
	}
}

// Remove satisfies Removable so a destroyed entity leaves no stale flag.
func (d *DirtySet) Remove(id EntityID) { d.Clear(id) }

// Len returns the number of flagged entities.
func (d *DirtySet) Len() int {
	n := 0
	for _, w := range d.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Drain clears every flagged entity and calls fn once for each, in the
// order they were marked. Marks issued from fn are kept for the next drain.
func (d *DirtySet) Drain(fn func(EntityID)) {
	batch := d.queue
	d.queue = d.spare[:0]
	for _, id := range batch {
		if !d.Has(id) {
			continue
		}
		d.Clear(id)
		fn(id)
	}
	d.spare = batch[:0]
}
