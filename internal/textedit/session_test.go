package textedit

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/coords"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/glyph"
	"github.com/scenert/scenert/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fieldBox = component.Rect{X: 100, Y: 100, W: 300, H: 20}

func newSession(t *testing.T, capacity int, text string) (*Session, *world.State, ecs.EntityID) {
	t.Helper()
	ws := world.NewState(world.Options{Capacity: capacity, TextMaxLength: 99}, coords.Viewport{Width: 800, Height: 600})
	id, err := ws.SpawnTextField(fieldBox, text, mgl32.Vec4{1, 1, 1, 1}, 16)
	require.NoError(t, err)
	s := NewSession(ws, glyph.Mono{Advance: 10, Height: 16}, DefaultOptions(), zap.NewNop())
	return s, ws, id
}

// xAt is the pixel x of boundary i in the test field.
func xAt(i int) float32 { return fieldBox.X + float32(i*10) }

func TestFocusCreatesCaret(t *testing.T) {
	s, ws, id := newSession(t, 8, "Hello")
	assert.Equal(t, Unfocused, s.State())
	assert.Equal(t, ecs.None, s.Caret())

	require.NoError(t, s.Focus(id, xAt(2)+1))
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, id, s.Focused())
	require.True(t, ws.Alive(s.Caret()))
	assert.Equal(t, ecs.TagCaret, ws.Tag(s.Caret()))
	assert.Equal(t, 2, s.CaretIndex())

	r, ok := s.CaretRect()
	require.True(t, ok)
	assert.Equal(t, component.Rect{X: xAt(2), Y: fieldBox.Y, W: 2, H: 16}, r)
	assert.True(t, ws.ModelNeedsUpdate(s.Caret()))

	caret := s.Caret()
	require.NoError(t, s.Focus(id, xAt(4)))
	assert.Equal(t, caret, s.Caret(), "refocus keeps the caret entity")
}

func TestFocusIgnoresNonTextElements(t *testing.T) {
	s, ws, _ := newSession(t, 8, "Hello")
	btn, err := ws.SpawnButton(component.Rect{W: 10, H: 10}, mgl32.Vec4{}, component.Notify{Name: "ok"})
	require.NoError(t, err)

	require.NoError(t, s.Focus(btn, 0))
	assert.Equal(t, Unfocused, s.State())
	assert.Equal(t, ecs.None, s.Caret())
}

func TestFocusFailsWhenPoolFull(t *testing.T) {
	// Field and its box visualisation take both slots.
	s, _, id := newSession(t, 2, "Hello")
	err := s.Focus(id, xAt(1))
	assert.True(t, errors.Is(err, ecs.ErrPoolExhausted))
	assert.Equal(t, Unfocused, s.State())
	assert.Equal(t, ecs.None, s.Caret())
}

func TestUnfocusDestroysCaret(t *testing.T) {
	s, ws, id := newSession(t, 8, "Hello")
	require.NoError(t, s.Focus(id, xAt(1)))
	caret := s.Caret()

	s.Unfocus()
	assert.Equal(t, Unfocused, s.State())
	assert.Equal(t, ecs.None, s.Focused())
	assert.Equal(t, ecs.None, s.Caret())
	assert.False(t, ws.Alive(caret))
}

func TestBackspaceAtEnd(t *testing.T) {
	s, _, id := newSession(t, 8, "Hello")
	require.NoError(t, s.Focus(id, xAt(5)+3))
	require.Equal(t, 5, s.CaretIndex())

	require.NoError(t, s.Backspace())
	assert.Equal(t, "Hell", s.Text())
	assert.Equal(t, 4, s.CaretIndex())
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	s, _, id := newSession(t, 8, "Hello")
	require.NoError(t, s.Focus(id, xAt(0)))
	require.NoError(t, s.Backspace())
	assert.Equal(t, "Hello", s.Text())
	assert.Equal(t, 0, s.CaretIndex())
}

func TestEditingEmptyField(t *testing.T) {
	s, _, id := newSession(t, 8, "")
	require.NoError(t, s.Focus(id, 250))
	assert.Equal(t, 0, s.CaretIndex())
	assert.True(t, errors.Is(s.Backspace(), ErrEmptyField))
	assert.True(t, errors.Is(s.Delete(), ErrEmptyField))

	require.NoError(t, s.Insert('x'))
	assert.Equal(t, "x", s.Text())
	assert.Equal(t, 1, s.CaretIndex())
}

func TestInsertThenDeleteRoundTrips(t *testing.T) {
	for i := 0; i <= 5; i++ {
		s, _, id := newSession(t, 8, "Hello")
		require.NoError(t, s.Focus(id, xAt(i)))
		require.Equal(t, i, s.CaretIndex())

		require.NoError(t, s.Insert('z'))
		assert.Equal(t, i+1, s.CaretIndex())
		require.NoError(t, s.Backspace())
		assert.Equal(t, "Hello", s.Text(), "index %d", i)
		assert.Equal(t, i, s.CaretIndex())

		require.NoError(t, s.Insert('z'))
		require.NoError(t, s.MoveLeft())
		require.NoError(t, s.Delete())
		assert.Equal(t, "Hello", s.Text(), "index %d via delete", i)
	}
}

func TestInsertAdvancesCaretByAdvance(t *testing.T) {
	s, _, id := newSession(t, 8, "ab")
	require.NoError(t, s.Focus(id, xAt(1)))
	require.NoError(t, s.Insert('X'))
	assert.Equal(t, "aXb", s.Text())
	r, _ := s.CaretRect()
	assert.Equal(t, xAt(2), r.X)
}

func TestInsertRejectsFullField(t *testing.T) {
	ws := world.NewState(world.Options{Capacity: 8, TextMaxLength: 3}, coords.Viewport{Width: 800, Height: 600})
	id, err := ws.SpawnTextField(fieldBox, "abc", mgl32.Vec4{}, 16)
	require.NoError(t, err)
	s := NewSession(ws, glyph.Mono{Advance: 10, Height: 16}, DefaultOptions(), zap.NewNop())

	require.NoError(t, s.Focus(id, xAt(3)))
	err = s.Insert('d')
	assert.True(t, errors.Is(err, component.ErrFieldFull))
	assert.Equal(t, "abc", s.Text())
	assert.Equal(t, 3, s.CaretIndex())
}

func TestInsertUnsupportedGlyph(t *testing.T) {
	s, _, id := newSession(t, 8, "ab")
	require.NoError(t, s.Focus(id, xAt(1)))
	err := s.Insert('\t')
	assert.True(t, errors.Is(err, glyph.ErrUnsupportedGlyph))
	assert.Equal(t, "ab", s.Text())
}

func TestSelectAllThenDelete(t *testing.T) {
	s, _, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(1)))

	require.NoError(t, s.SelectAll())
	start, end := s.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
	assert.Equal(t, Selected, s.State())
	r, _ := s.CaretRect()
	assert.Equal(t, component.Rect{X: xAt(0), Y: fieldBox.Y, W: 30, H: 16}, r)

	require.NoError(t, s.Delete())
	assert.Equal(t, "", s.Text())
	assert.Equal(t, 0, s.CaretIndex())
	assert.False(t, s.SelectionActive())
	assert.Equal(t, Idle, s.State())
}

func TestSelectAllOverflowingText(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghij" // wider than the 300px box
	s, _, id := newSession(t, 8, long)
	require.NoError(t, s.Focus(id, xAt(0)))
	require.NoError(t, s.SelectAll())
	_, end := s.Selection()
	assert.Equal(t, len(long), end)
}

func TestDragSelectionIsMonotonic(t *testing.T) {
	s, _, id := newSession(t, 8, "Hello, world")
	require.NoError(t, s.Focus(id, xAt(4)))
	s.BeginDrag(xAt(4), 105)
	assert.Equal(t, Dragging, s.State())

	// First sample only resolves the anchor.
	require.NoError(t, s.Drag(xAt(9)))
	start, end := s.Selection()
	assert.Equal(t, [2]int{4, 4}, [2]int{start, end})
	assert.False(t, s.SelectionActive())

	prevStart, prevEnd := start, end
	for _, i := range []int{6, 8, 5, 2, 7, 10, 3} {
		require.NoError(t, s.Drag(xAt(i)))
		start, end = s.Selection()
		assert.LessOrEqual(t, start, end)
		assert.LessOrEqual(t, start, prevStart, "start only moves left")
		assert.GreaterOrEqual(t, end, prevEnd, "end only moves right")
		prevStart, prevEnd = start, end
	}
	assert.Equal(t, [2]int{2, 10}, [2]int{start, end})

	r, _ := s.CaretRect()
	assert.Equal(t, xAt(2), r.X)
	assert.Equal(t, float32(80), r.W)

	require.NoError(t, s.EndDrag())
	assert.Equal(t, Selected, s.State())

	// A single click collapses the selection.
	require.NoError(t, s.Focus(id, xAt(1)))
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.SelectionActive())
}

func TestDragWithoutMovementEndsIdle(t *testing.T) {
	s, _, id := newSession(t, 8, "Hello")
	require.NoError(t, s.Focus(id, xAt(2)))
	s.BeginDrag(xAt(2), 105)
	require.NoError(t, s.Drag(xAt(2)))
	require.NoError(t, s.Drag(xAt(2)))
	require.NoError(t, s.EndDrag())
	assert.Equal(t, Idle, s.State())
}

func TestAddIndexToSelectionOrdered(t *testing.T) {
	s, _, id := newSession(t, 8, "Hello")
	require.NoError(t, s.Focus(id, xAt(3)))
	s.AddIndexToSelection(1)
	s.AddIndexToSelection(4)
	s.AddIndexToSelection(2)
	s.AddIndexToSelection(-1)
	start, end := s.Selection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)
}

func TestArrowKeys(t *testing.T) {
	s, _, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(1)))

	require.NoError(t, s.MoveRight())
	assert.Equal(t, 2, s.CaretIndex())
	require.NoError(t, s.MoveRight())
	require.NoError(t, s.MoveRight())
	assert.Equal(t, 3, s.CaretIndex(), "clamped at end")

	for i := 0; i < 5; i++ {
		require.NoError(t, s.MoveLeft())
	}
	assert.Equal(t, 0, s.CaretIndex(), "clamped at start")
}

func TestArrowKeysCollapseSelection(t *testing.T) {
	s, _, id := newSession(t, 8, "abcdef")
	require.NoError(t, s.Focus(id, xAt(0)))
	s.AddIndexToSelection(2)
	s.AddIndexToSelection(4)
	require.Equal(t, [2]int{0, 4}, func() [2]int { a, b := s.Selection(); return [2]int{a, b} }())

	require.NoError(t, s.MoveRight())
	assert.Equal(t, 4, s.CaretIndex())
	assert.False(t, s.SelectionActive())

	s.AddIndexToSelection(1)
	require.NoError(t, s.MoveLeft())
	assert.Equal(t, 1, s.CaretIndex())
	assert.False(t, s.SelectionActive())
}

func TestInsertIgnoredWhileSelected(t *testing.T) {
	s, _, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(0)))
	require.NoError(t, s.SelectAll())
	require.NoError(t, s.Insert('x'))
	assert.Equal(t, "abc", s.Text())
	assert.True(t, s.SelectionActive())
}

func TestBackspaceRemovesSelection(t *testing.T) {
	s, _, id := newSession(t, 8, "abcdef")
	require.NoError(t, s.Focus(id, xAt(1)))
	s.AddIndexToSelection(3)
	require.NoError(t, s.Backspace())
	assert.Equal(t, "adef", s.Text())
	assert.Equal(t, 1, s.CaretIndex())
}

func TestBlink(t *testing.T) {
	s, ws, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(1)))
	caret := s.Caret()

	s.Blink(500 * time.Millisecond)
	assert.True(t, s.CaretVisible())
	s.Blink(200 * time.Millisecond)
	assert.False(t, s.CaretVisible())
	assert.False(t, ws.Meshes.Has(caret))

	s.Blink(600 * time.Millisecond)
	assert.True(t, s.CaretVisible())
	assert.True(t, ws.Meshes.Has(caret))

	s.Blink(700 * time.Millisecond)
	require.False(t, s.CaretVisible())
	require.NoError(t, s.MoveLeft())
	assert.True(t, s.CaretVisible(), "edits reset the blink")
}

func TestBlinkSuppressedDuringSelection(t *testing.T) {
	s, _, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(0)))
	require.NoError(t, s.SelectAll())
	for i := 0; i < 5; i++ {
		s.Blink(time.Second)
		assert.True(t, s.CaretVisible())
	}
}

func TestOperationsWithoutFocusAreNoops(t *testing.T) {
	s, _, _ := newSession(t, 8, "abc")
	assert.NoError(t, s.Insert('x'))
	assert.NoError(t, s.Backspace())
	assert.NoError(t, s.Delete())
	assert.NoError(t, s.MoveLeft())
	assert.NoError(t, s.MoveRight())
	assert.NoError(t, s.SelectAll())
	assert.NoError(t, s.Drag(10))
	assert.NoError(t, s.EndDrag())
	assert.NoError(t, s.Refresh())
	s.BeginDrag(1, 1)
	s.Blink(time.Second)
	assert.Equal(t, Unfocused, s.State())
}

func TestFocusedFieldDestroyedResetsSession(t *testing.T) {
	s, ws, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(1)))
	caret := s.Caret()

	ws.DestroyEntity(id)
	err := s.Insert('x')
	assert.True(t, errors.Is(err, ErrInconsistentState))
	assert.Equal(t, Unfocused, s.State())
	assert.False(t, ws.Alive(caret))
}

func TestSelectionClampedWhenTextShrinks(t *testing.T) {
	s, ws, id := newSession(t, 8, "abcdef")
	require.NoError(t, s.Focus(id, xAt(0)))
	require.NoError(t, s.SelectAll())
	require.Equal(t, Selected, s.State())

	ui, _ := ws.UIs.Get(id)
	require.NoError(t, ui.Text.Replace("ab"))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Refresh())
	}
	start, end := s.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
	assert.Equal(t, 2, s.CaretIndex())
	r, ok := s.CaretRect()
	require.True(t, ok)
	assert.Equal(t, float32(20), r.W)

	require.NoError(t, s.Delete())
	assert.Equal(t, "", s.Text())
	assert.Equal(t, 0, s.CaretIndex())
}

func TestSelectionCollapsesWhenTextEmptied(t *testing.T) {
	s, ws, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(1)))
	s.AddIndexToSelection(3)
	require.True(t, s.SelectionActive())

	ui, _ := ws.UIs.Get(id)
	require.NoError(t, ui.Text.Replace(""))
	require.NoError(t, s.Refresh())
	assert.False(t, s.SelectionActive())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 0, s.CaretIndex())
}

func TestRecycledCaretSlotIsNotTouched(t *testing.T) {
	s, ws, id := newSession(t, 8, "abc")
	require.NoError(t, s.Focus(id, xAt(1)))
	caret := s.Caret()

	ws.DestroyEntity(caret)
	other, err := ws.SpawnModel(component.Mesh{Name: "cube"}, mgl32.Vec3{}, component.UnitBox(), mgl32.Vec4{1, 1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, caret, other, "slot is reused")

	s.Blink(time.Second)
	assert.True(t, ws.Meshes.Has(other))

	err = s.Insert('x')
	assert.True(t, errors.Is(err, ErrInconsistentState))
	assert.Equal(t, Unfocused, s.State())
	assert.True(t, ws.Alive(other), "unrelated entity survives unfocus")
	assert.Equal(t, ecs.TagModel, ws.Tag(other))

	require.NoError(t, s.Focus(id, xAt(1)))
	assert.NotEqual(t, other, s.Caret())
	assert.Equal(t, ecs.TagCaret, ws.Tag(s.Caret()))
}
