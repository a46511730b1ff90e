package ecs

// Removable is implemented by component stores and dirty sets so the
// Registry can forget a destroyed entity everywhere at once.
type Removable interface {
	Remove(id EntityID)
}

// Releaser is implemented by components that own buffers which must be
// released when their entity is destroyed.
type Releaser interface {
	Release()
}

// Store is a fixed-capacity component array indexed by EntityID. A slot
// carries its own active flag, independent of the entity's alive flag.
type Store[T any] struct {
	data   []T
	active []bool
	count  int
}

func NewStore[T any](capacity int) *Store[T] {
	return &Store[T]{
		data:   make([]T, capacity),
		active: make([]bool, capacity),
	}
}

func (s *Store[T]) inRange(id EntityID) bool {
	return id >= 0 && int(id) < len(s.data)
}

// Set writes c into the slot and activates it.
func (s *Store[T]) Set(id EntityID, c T) {
	if !s.inRange(id) {
		return
	}
	s.data[id] = c
	if !s.active[id] {
		s.active[id] = true
		s.count++
	}
}

// Get returns the slot when active.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	if !s.inRange(id) || !s.active[id] {
		return nil, false
	}
	return &s.data[id], true
}

func (s *Store[T]) Has(id EntityID) bool {
	return s.inRange(id) && s.active[id]
}

// SetActive toggles the active flag without touching the data.
func (s *Store[T]) SetActive(id EntityID, active bool) {
	if !s.inRange(id) || s.active[id] == active {
		return
	}
	s.active[id] = active
	if active {
		s.count++
	} else {
		s.count--
	}
}

// Remove releases owned buffers, zeroes the slot and deactivates it.
func (s *Store[T]) Remove(id EntityID) {
	if !s.inRange(id) {
		return
	}
	if r, ok := any(&s.data[id]).(Releaser); ok {
		r.Release()
	}
	var zero T
	s.data[id] = zero
	s.SetActive(id, false)
}

// Count returns the number of active slots.
func (s *Store[T]) Count() int { return s.count }

// Cap returns the fixed capacity.
func (s *Store[T]) Cap() int { return len(s.data) }

// Each visits active slots in id order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.data {
		if s.active[i] {
			fn(EntityID(i), &s.data[i])
		}
	}
}
