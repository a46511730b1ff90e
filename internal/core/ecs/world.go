package ecs

// World is the top-level ECS container. It owns the entity pool and the
// component registry; destroying an entity removes it from every registered store.
type World struct {
	pool     *EntityPool
	registry *Registry
}

func NewWorld(capacity int) *World {
	return &World{
		pool:     NewEntityPool(capacity),
		registry: NewRegistry(),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }
func (w *World) Cap() int            { return w.pool.Cap() }

func (w *World) CreateEntity(tag Tag) (EntityID, error) {
	return w.pool.Create(tag)
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity clears the entity's components and frees its slot.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// AddDirtySet creates a dirty set sized to the pool. Destroyed entities are
// cleared from it.
func AddDirtySet(w *World) *DirtySet {
	d := NewDirtySet(w.pool.Cap())
	w.registry.Register(d)
	return d
}

// AddStore creates a store sized to the pool and registers it for cleanup.
func AddStore[T any](w *World) *Store[T] {
	s := NewStore[T](w.pool.Cap())
	w.registry.Register(s)
	return s
}
