package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/coords"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/glyph"
	"github.com/scenert/scenert/internal/input"
	"github.com/scenert/scenert/internal/textedit"
	"github.com/scenert/scenert/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	white    = mgl32.Vec4{1, 1, 1, 1}
	fieldBox = component.Rect{X: 100, Y: 100, W: 300, H: 20}
	viewport = coords.Viewport{Width: 800, Height: 600}
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	ws := world.NewState(world.Options{Capacity: 32, MaxChildren: 4, TextMaxLength: 99}, viewport)
	session := textedit.NewSession(ws, glyph.Mono{Advance: 10, Height: 16}, textedit.DefaultOptions(), zap.NewNop())
	return NewPipeline(ws, session, zap.NewNop())
}

// xAt is the pixel x of boundary i in fieldBox.
func xAt(i int) float32 { return fieldBox.X + float32(i*10) }

func (p *Pipeline) pointer(kind event.PointerKind, x, y float32) {
	event.Emit(p.Bus, event.Pointer{Kind: kind, X: x, Y: y})
}

func (p *Pipeline) key(k input.Key, r rune, mods input.Modifiers) {
	event.Emit(p.Bus, event.Key{Key: k, Rune: r, Mods: mods})
}

func (p *Pipeline) click(x, y float32) {
	p.pointer(event.PointerDown, x, y)
	p.pointer(event.PointerUp, x, y)
}

func spawnField(t *testing.T, p *Pipeline, text string) ecs.EntityID {
	t.Helper()
	id, err := p.World.SpawnTextField(fieldBox, text, white, 16)
	require.NoError(t, err)
	return id
}

func TestPipelinePhaseOrder(t *testing.T) {
	p := newPipeline(t)
	assert.Equal(t, []coresys.Phase{
		coresys.PhaseInput,
		coresys.PhaseCamera,
		coresys.PhaseLayout,
		coresys.PhaseTextInput,
		coresys.PhaseHover,
		coresys.PhaseCaret,
		coresys.PhaseModel,
	}, p.Phases())
}

func TestLayoutPlacesUIAndBoxVisual(t *testing.T) {
	p := newPipeline(t)
	id, err := p.World.SpawnButton(component.Rect{X: 300, Y: 100, W: 50, H: 20}, white, component.Notify{Name: "ok"})
	require.NoError(t, err)
	require.True(t, p.World.UINeedsUpdate(id))

	p.Frame(0)

	assert.False(t, p.World.UINeedsUpdate(id))
	tr, ok := p.World.Transforms.Get(id)
	require.True(t, ok)
	assert.InDelta(t, 100, tr.Position.X(), 1e-4)
	assert.InDelta(t, 200, tr.Position.Y(), 1e-4)
	assert.Equal(t, mgl32.Vec3{50, 20, 1}, tr.Scale)
	assert.Equal(t, tr.Matrix(), tr.World)

	ui, _ := p.World.UIs.Get(id)
	vis, ok := p.World.Transforms.Get(ui.BoxVisual)
	require.True(t, ok)
	assert.Equal(t, tr.Position, vis.Position)
	assert.Equal(t, tr.Scale, vis.Scale)
	assert.False(t, p.World.ModelNeedsUpdate(ui.BoxVisual))
}

func TestResizeRescalesUIProportionally(t *testing.T) {
	p := newPipeline(t)
	id, err := p.World.SpawnButton(component.Rect{X: 300, Y: 100, W: 50, H: 20}, white, nil)
	require.NoError(t, err)
	p.Frame(0)
	tr, _ := p.World.Transforms.Get(id)
	before := tr.Position.Vec2()
	require.InDelta(t, 100, before.X(), 1e-4)

	wider := coords.Viewport{Width: 1600, Height: 600}
	event.Emit(p.Bus, event.Resized{Width: wider.Width, Height: wider.Height})
	p.Frame(0)

	assert.Equal(t, wider, p.World.Viewport())
	assert.InDelta(t, 200, tr.Position.X(), 1e-4)
	assert.InDelta(t, before.Y(), tr.Position.Y(), 1e-4)
	want := coords.Rescale(viewport, wider, before)
	assert.InDelta(t, want.X(), tr.Position.X(), 1e-4)
	assert.Equal(t, tr.Matrix(), tr.World)
}

func TestResizeIgnoresDegenerateViewport(t *testing.T) {
	p := newPipeline(t)
	event.Emit(p.Bus, event.Resized{Width: 0, Height: 600})
	p.Frame(0)
	assert.Equal(t, viewport, p.World.Viewport())
}

func TestModelSystemRecomputesDirtyMatrices(t *testing.T) {
	p := newPipeline(t)
	id, err := p.World.SpawnModel(component.Mesh{Name: "cube"}, mgl32.Vec3{1, 2, 3}, component.UnitBox(), white)
	require.NoError(t, err)
	require.True(t, p.World.SetRotation(id, mgl32.Vec3{0.1, 0.2, 0.3}))
	require.True(t, p.World.SetScale(id, mgl32.Vec3{2, 3, 4}))

	p.Frame(0)

	assert.False(t, p.World.ModelNeedsUpdate(id))
	assert.Zero(t, p.World.ModelDirty.Len())
	tr, _ := p.World.Transforms.Get(id)
	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.Scale3D(2, 3, 4)).
		Mul4(mgl32.HomogRotate3DX(0.1)).
		Mul4(mgl32.HomogRotate3DY(0.2)).
		Mul4(mgl32.HomogRotate3DZ(0.3))
	assert.True(t, want.ApproxEqualThreshold(tr.World, 1e-5))
}

func TestCameraSystemClearsFlags(t *testing.T) {
	p := newPipeline(t)
	cam := component.NewPerspectiveCamera(
		mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0},
		mgl32.DegToRad(45), viewport.Width/viewport.Height, 0.1, 100,
	)
	p.World.AddCamera(cam)

	p.Frame(0)
	assert.False(t, cam.ViewNeedsUpdate)
	assert.False(t, cam.ProjectionNeedsUpdate)
	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0}), cam.View)

	// Layout runs after the camera, so a resize reaches the projection a frame later.
	event.Emit(p.Bus, event.Resized{Width: 1600, Height: 600})
	p.Frame(0)
	assert.True(t, cam.ProjectionNeedsUpdate)
	assert.InDelta(t, 1600.0/600.0, cam.Aspect, 1e-5)
	p.Frame(0)
	assert.False(t, cam.ProjectionNeedsUpdate)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1600.0/600.0, 0.1, 100), cam.Proj)
}

func TestCameraSystemSkipsInactive(t *testing.T) {
	p := newPipeline(t)
	cam := component.NewOrthographicCamera(-400, 400, -300, 300, -1, 1)
	cam.Active = false
	p.World.AddCamera(cam)
	p.Frame(0)
	assert.True(t, cam.ViewNeedsUpdate)
	assert.True(t, cam.ProjectionNeedsUpdate)
}

func TestHoverTintsAndRestores(t *testing.T) {
	p := newPipeline(t)
	box := component.Rect{X: 10, Y: 10, W: 40, H: 20}
	id, err := p.World.SpawnButton(box, mgl32.Vec4{0.5, 0.5, 1, 1}, nil)
	require.NoError(t, err)

	p.pointer(event.PointerMove, 20, 20)
	p.Frame(0)
	ui, _ := p.World.UIs.Get(id)
	mat, _ := p.World.Materials.Get(id)
	assert.True(t, ui.Hovered)
	assert.Equal(t, HoverTint, mat.Tint)

	p.pointer(event.PointerMove, 200, 200)
	p.Frame(0)
	assert.False(t, ui.Hovered)
	assert.Equal(t, ui.Base, *mat)
}

func TestHiddenElementsIgnoreHover(t *testing.T) {
	p := newPipeline(t)
	id, err := p.World.SpawnButton(component.Rect{W: 40, H: 20}, white, nil)
	require.NoError(t, err)
	p.World.SetVisible(id, false)

	p.click(5, 5)
	p.Frame(0)
	ui, _ := p.World.UIs.Get(id)
	assert.False(t, ui.Hovered)
	assert.False(t, ui.Clicked)
	assert.Zero(t, event.Pending[event.Clicked](p.Bus))
}

func TestClickTogglesSiblings(t *testing.T) {
	p := newPipeline(t)
	ws := p.World
	panel, err := ws.SpawnButton(component.Rect{W: 400, H: 400}, white, nil)
	require.NoError(t, err)
	toggle, err := ws.SpawnButton(component.Rect{X: 10, Y: 10, W: 40, H: 20}, white, component.ToggleSiblings{})
	require.NoError(t, err)
	a, err := ws.SpawnButton(component.Rect{X: 10, Y: 50, W: 40, H: 20}, white, nil)
	require.NoError(t, err)
	b, err := ws.SpawnButton(component.Rect{X: 10, Y: 90, W: 40, H: 20}, white, nil)
	require.NoError(t, err)
	for _, c := range []ecs.EntityID{toggle, a, b} {
		require.NoError(t, ws.AddChild(panel, c))
	}

	p.click(20, 20)
	p.Frame(0)
	assert.True(t, ws.Visible(toggle))
	assert.False(t, ws.Visible(a))
	assert.False(t, ws.Visible(b))
	assert.True(t, ws.Visible(panel))

	var got []event.Clicked
	event.Subscribe(p.Bus, func(c event.Clicked) { got = append(got, c) })
	p.Frame(0)
	require.Len(t, got, 2, "panel and toggle are both under the pointer")
	assert.Equal(t, panel, got[0].EntityID)
	assert.Equal(t, toggle, got[1].EntityID)
	assert.Equal(t, component.ToggleSiblings{}, got[1].Action)

	p.click(20, 20)
	p.Frame(0)
	assert.True(t, ws.Visible(a))
	assert.True(t, ws.Visible(b))
}

func TestClickFocusesAndTypes(t *testing.T) {
	p := newPipeline(t)
	id := spawnField(t, p, "Hello")

	p.click(xAt(5)+1, 105)
	p.Frame(0)
	require.Equal(t, id, p.Session.Focused())
	require.Equal(t, 5, p.Session.CaretIndex())

	p.key(input.KeyBackspace, 0, 0)
	p.Frame(0)
	assert.Equal(t, "Hell", p.Session.Text())
	assert.Equal(t, 4, p.Session.CaretIndex())

	p.key(input.KeyRune, 'o', input.ModShift)
	p.key(input.KeyRune, '1', input.ModShift)
	p.Frame(0)
	assert.Equal(t, "HellO!", p.Session.Text())
	r, ok := p.Session.CaretRect()
	require.True(t, ok)
	assert.Equal(t, xAt(6), r.X)

	p.key(input.KeyEnter, 0, 0)
	p.Frame(0)
	assert.Equal(t, textedit.Unfocused, p.Session.State())
	ui, _ := p.World.UIs.Get(id)
	assert.Equal(t, "HellO!", ui.Text.String())
}

func TestKeysIgnoredWithoutFocus(t *testing.T) {
	p := newPipeline(t)
	id := spawnField(t, p, "abc")
	p.key(input.KeyRune, 'x', 0)
	p.key(input.KeyBackspace, 0, 0)
	p.Frame(0)
	ui, _ := p.World.UIs.Get(id)
	assert.Equal(t, "abc", ui.Text.String())
}

func TestDragSelectsRange(t *testing.T) {
	p := newPipeline(t)
	spawnField(t, p, "abcdef")

	p.pointer(event.PointerDown, xAt(1), 105)
	p.pointer(event.PointerMove, xAt(2), 105)
	p.pointer(event.PointerMove, xAt(4), 105)
	p.pointer(event.PointerMove, xAt(3), 105)
	p.Frame(0)
	assert.Equal(t, textedit.Dragging, p.Session.State())

	p.pointer(event.PointerUp, xAt(3), 105)
	p.Frame(0)
	assert.Equal(t, textedit.Selected, p.Session.State())
	start, end := p.Session.Selection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end, "selection never shrinks during a drag")

	r, ok := p.Session.CaretRect()
	require.True(t, ok)
	assert.Equal(t, xAt(1), r.X)
	assert.Equal(t, float32(30), r.W)

	p.click(xAt(2), 105)
	p.Frame(0)
	assert.Equal(t, textedit.Idle, p.Session.State())
}

func TestDoubleClickSelectAllThenDelete(t *testing.T) {
	p := newPipeline(t)
	spawnField(t, p, "abc")

	p.click(xAt(1), 105)
	p.pointer(event.PointerDoubleClick, xAt(1), 105)
	p.Frame(0)
	start, end := p.Session.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	p.key(input.KeyDelete, 0, 0)
	p.Frame(0)
	assert.Equal(t, "", p.Session.Text())
	assert.Equal(t, 0, p.Session.CaretIndex())
	assert.False(t, p.Session.SelectionActive())
}

func TestCaretBlinksAcrossFrames(t *testing.T) {
	p := newPipeline(t)
	spawnField(t, p, "abc")
	p.click(xAt(1), 105)
	p.Frame(0)
	require.True(t, p.Session.CaretVisible())

	p.Frame(400 * time.Millisecond)
	assert.True(t, p.Session.CaretVisible())
	p.Frame(400 * time.Millisecond)
	assert.False(t, p.Session.CaretVisible())
	p.Frame(600 * time.Millisecond)
	assert.True(t, p.Session.CaretVisible())
}

func TestCaretFollowsResize(t *testing.T) {
	p := newPipeline(t)
	spawnField(t, p, "abc")
	p.click(xAt(3), 105)
	p.Frame(0)

	event.Emit(p.Bus, event.Resized{Width: 1600, Height: 600})
	p.Frame(0)
	r, ok := p.Session.CaretRect()
	require.True(t, ok)
	assert.Equal(t, float32(200+30), r.X, "field box moved to x=200")
	assert.False(t, p.World.ModelNeedsUpdate(p.Session.Caret()))
}

func TestPipelineTimingsCoverEveryPhase(t *testing.T) {
	p := newPipeline(t)
	p.Frame(time.Millisecond)
	timings := p.Timings()
	require.Len(t, timings, len(p.Phases()))
	for i, pt := range timings {
		assert.Equal(t, p.Phases()[i], pt.Phase)
		assert.GreaterOrEqual(t, pt.Duration, time.Duration(0))
	}
}
