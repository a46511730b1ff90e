package component

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in its space. World is the cached matrix and is
// only valid while the entity is not flagged in the scene's model dirty set;
// mutate through world.State so the flag is always raised.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // radians, applied X then Y then Z
	Scale    mgl32.Vec3
	World    mgl32.Mat4
}

func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Scale:    mgl32.Vec3{1, 1, 1},
		World:    mgl32.Ident4(),
	}
}

// Matrix composes translate ∘ scale ∘ rotateX ∘ rotateY ∘ rotateZ.
func (t *Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])).
		Mul4(mgl32.HomogRotate3DX(t.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2]))
}
