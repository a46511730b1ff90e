package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/core/ecs"
)

type MeshKind uint8

const (
	MeshQuad MeshKind = iota // unit quad, top-left origin
	MeshLine
	MeshModel
)

// Mesh refers to geometry owned by the rendering collaborator.
type Mesh struct {
	Kind   MeshKind
	Handle uint32
	Name   string
}

// Material is read by the renderer; the drawn colour is Color * Tint.
type Material struct {
	Color   mgl32.Vec4
	Tint    mgl32.Vec4
	Texture uint32
}

func NewMaterial(color mgl32.Vec4) Material {
	return Material{Color: color, Tint: mgl32.Vec4{1, 1, 1, 1}}
}

// Effective returns the colour after tinting.
func (m Material) Effective() mgl32.Vec4 {
	return mgl32.Vec4{
		m.Color[0] * m.Tint[0],
		m.Color[1] * m.Tint[1],
		m.Color[2] * m.Tint[2],
		m.Color[3] * m.Tint[3],
	}
}

// Group names a set of entities that form one model (sub-meshes).
type Group struct {
	Name    string
	Members []ecs.EntityID
}

type LightKind uint8

const (
	LightPoint LightKind = iota
	LightDirectional
)

type Light struct {
	Kind      LightKind
	Color     mgl32.Vec3
	Intensity float32
	Direction mgl32.Vec3
}

type Line struct {
	From, To mgl32.Vec3
	Color    mgl32.Vec4
	Width    float32
}

type Point struct {
	Size  float32
	Color mgl32.Vec4
}

// BoundingBox is an axis-aligned box in local space.
type BoundingBox struct {
	Min, Max mgl32.Vec3
}

func (b BoundingBox) Size() mgl32.Vec3 { return b.Max.Sub(b.Min) }

// UnitBox spans the unit quad used by UI elements.
func UnitBox() BoundingBox {
	return BoundingBox{Max: mgl32.Vec3{1, 1, 0}}
}
