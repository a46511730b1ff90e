package ecs

// Registry holds everything indexed by entity id that must forget an
// entity when it is destroyed: component stores and dirty sets alike.
type Registry struct {
	members []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		members: make([]Removable, 0, 16),
	}
}

func (r *Registry) Register(m Removable) {
	r.members = append(r.members, m)
}

// RemoveAll drops id from every member, in registration order.
func (r *Registry) RemoveAll(id EntityID) {
	for _, m := range r.members {
		m.Remove(id)
	}
}

func (r *Registry) Len() int { return len(r.members) }
