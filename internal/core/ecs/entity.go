package ecs

import "errors"

// ErrPoolExhausted is returned when every slot of a fixed-capacity pool is taken.
var ErrPoolExhausted = errors.New("pool exhausted")

// EntityID is the slot index of an entity. Ids are stable for the lifetime of
// the pool and are reused after the entity is destroyed.
type EntityID int32

// None marks the absence of an entity.
const None EntityID = -1

func (id EntityID) Valid() bool { return id >= 0 }

// Tag classifies what an entity represents.
type Tag uint8

const (
	TagNone Tag = iota // uninitialized
	TagModel
	TagBoundingBox
	TagText
	TagLight
	TagWidget
	TagCaret
)

func (t Tag) String() string {
	switch t {
	case TagModel:
		return "model"
	case TagBoundingBox:
		return "bounding-box"
	case TagText:
		return "text"
	case TagLight:
		return "light"
	case TagWidget:
		return "widget"
	case TagCaret:
		return "caret"
	default:
		return "none"
	}
}

// Entity is one row of the pool.
type Entity struct {
	ID      EntityID
	Alive   bool
	Visible bool
	Tag     Tag
}

// EntityPool manages a fixed number of entity slots with a free list.
type EntityPool struct {
	entities []Entity
	freeList []EntityID
	alive    int
}

func NewEntityPool(capacity int) *EntityPool {
	p := &EntityPool{
		entities: make([]Entity, capacity),
		freeList: make([]EntityID, 0, capacity),
	}
	// Pushed in reverse so the first allocations hand out 0, 1, 2, ...
	for i := capacity - 1; i >= 0; i-- {
		p.entities[i].ID = EntityID(i)
		p.freeList = append(p.freeList, EntityID(i))
	}
	return p
}

// Create takes a free slot, marks it alive and visible and assigns tag.
func (p *EntityPool) Create(tag Tag) (EntityID, error) {
	if len(p.freeList) == 0 {
		return None, ErrPoolExhausted
	}
	id := p.freeList[len(p.freeList)-1]
	p.freeList = p.freeList[:len(p.freeList)-1]
	p.entities[id] = Entity{ID: id, Alive: true, Visible: true, Tag: tag}
	p.alive++
	return id, nil
}

// Destroy returns the slot to the free list. Returns false if id was not alive.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	p.entities[id] = Entity{ID: id}
	p.freeList = append(p.freeList, id)
	p.alive--
	return true
}

func (p *EntityPool) Alive(id EntityID) bool {
	return id >= 0 && int(id) < len(p.entities) && p.entities[id].Alive
}

// Get returns a copy of the entity record.
func (p *EntityPool) Get(id EntityID) (Entity, bool) {
	if id < 0 || int(id) >= len(p.entities) {
		return Entity{ID: None}, false
	}
	return p.entities[id], p.entities[id].Alive
}

func (p *EntityPool) Visible(id EntityID) bool {
	return p.Alive(id) && p.entities[id].Visible
}

func (p *EntityPool) SetVisible(id EntityID, visible bool) {
	if p.Alive(id) {
		p.entities[id].Visible = visible
	}
}

func (p *EntityPool) Tag(id EntityID) Tag {
	if !p.Alive(id) {
		return TagNone
	}
	return p.entities[id].Tag
}

// Len returns the number of alive entities.
func (p *EntityPool) Len() int { return p.alive }

// Cap returns the fixed pool capacity.
func (p *EntityPool) Cap() int { return len(p.entities) }

// Each visits alive entities in id order.
func (p *EntityPool) Each(fn func(Entity)) {
	for i := range p.entities {
		if p.entities[i].Alive {
			fn(p.entities[i])
		}
	}
}
