// Package textedit implements caret placement, selection and editing for
// the focused UI text field.
package textedit

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/glyph"
	"github.com/scenert/scenert/internal/world"
	"go.uber.org/zap"
)

var (
	ErrInvalidIndex      = errors.New("invalid index")
	ErrEmptyField        = errors.New("empty field")
	ErrInconsistentState = errors.New("inconsistent editing state")
)

// State is the editing state of the session.
type State uint8

const (
	Unfocused State = iota
	Idle            // caret blinking, no selection
	Dragging        // pointer held, selection growing
	Selected        // non-empty selection awaiting input
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Selected:
		return "selected"
	default:
		return "unfocused"
	}
}

// caretDepth keeps the caret above the field it edits.
const caretDepth = 1

type Options struct {
	CaretWidth     float32
	BlinkInterval  time.Duration
	CaretColor     mgl32.Vec4
	SelectionColor mgl32.Vec4
}

func DefaultOptions() Options {
	return Options{
		CaretWidth:     2,
		BlinkInterval:  600 * time.Millisecond,
		CaretColor:     mgl32.Vec4{1, 1, 1, 1},
		SelectionColor: mgl32.Vec4{0.3, 0.5, 1, 0.5},
	}
}

// Session owns the focused field, the caret entity and the selection.
// Invariant: caret is a live entity exactly when focused is.
type Session struct {
	world *world.State
	face  glyph.Face
	opts  Options
	log   *zap.Logger

	focused ecs.EntityID
	caret   ecs.EntityID
	index   int

	selection       [2]int
	selectionActive bool

	dragging    bool
	dragStarted bool
	dragAnchor  mgl32.Vec2

	blinkElapsed time.Duration
	caretShown   bool
}

func NewSession(ws *world.State, face glyph.Face, opts Options, log *zap.Logger) *Session {
	return &Session{
		world:      ws,
		face:       face,
		opts:       opts,
		log:        log,
		focused:    ecs.None,
		caret:      ecs.None,
		caretShown: true,
	}
}

func (s *Session) State() State {
	switch {
	case s.focused == ecs.None:
		return Unfocused
	case s.dragging:
		return Dragging
	case s.selectionActive:
		return Selected
	default:
		return Idle
	}
}

func (s *Session) Focused() ecs.EntityID    { return s.focused }
func (s *Session) Caret() ecs.EntityID      { return s.caret }
func (s *Session) CaretIndex() int          { return s.index }
func (s *Session) Selection() (int, int)    { return s.selection[0], s.selection[1] }
func (s *Session) SelectionActive() bool    { return s.selectionActive }
func (s *Session) DragAnchor() mgl32.Vec2   { return s.dragAnchor }
func (s *Session) CaretVisible() bool       { return s.caret != ecs.None && s.caretShown }
func (s *Session) Face() glyph.Face         { return s.face }
func (s *Session) SetFace(face glyph.Face)  { s.face = face }

// Text returns the focused field's content.
func (s *Session) Text() string {
	ui, err := s.field()
	if err != nil {
		return ""
	}
	return ui.Text.String()
}

// CaretRect returns the caret (or selection) geometry in window pixels.
func (s *Session) CaretRect() (component.Rect, bool) {
	ui, err := s.field()
	if err != nil {
		return component.Rect{}, false
	}
	r, err := s.caretRect(ui)
	if err != nil {
		return component.Rect{}, false
	}
	return r, true
}

// Focus gives the text field id the caret, placed at the boundary nearest x.
// Clicking the focused field again collapses any selection.
func (s *Session) Focus(id ecs.EntityID, x float32) error {
	ui, ok := s.world.UIs.Get(id)
	if !ok || !ui.TextCapable() {
		return nil
	}
	hit, err := s.hit(ui, x)
	if err != nil {
		return err
	}
	if s.caret != ecs.None && !s.ownsCaret() {
		s.caret = ecs.None
	}
	if s.caret == ecs.None {
		caret, err := s.world.SpawnRect(ecs.TagCaret, component.Rect{}, caretDepth, s.opts.CaretColor)
		if err != nil {
			return fmt.Errorf("create caret: %w", err)
		}
		s.caret = caret
	}
	if s.focused != id {
		s.log.Debug("text field focused", zap.Int32("entity", int32(id)))
	}
	s.focused = id
	s.index = hit.Index
	s.dragging = false
	s.dragStarted = false
	s.clearSelection()
	return s.refresh(ui)
}

// Unfocus destroys the caret and resets focus and selection.
func (s *Session) Unfocus() {
	if s.caret != ecs.None && s.ownsCaret() {
		s.world.DestroyEntity(s.caret)
	}
	if s.focused != ecs.None {
		s.log.Debug("text field unfocused", zap.Int32("entity", int32(s.focused)))
	}
	s.focused = ecs.None
	s.caret = ecs.None
	s.index = 0
	s.dragging = false
	s.dragStarted = false
	s.dragAnchor = mgl32.Vec2{}
	s.clearSelection()
	s.blinkElapsed = 0
	s.caretShown = true
}

// BeginDrag records the pointer-down position as the drag anchor.
func (s *Session) BeginDrag(x, y float32) {
	if s.focused == ecs.None {
		return
	}
	s.dragging = true
	s.dragStarted = false
	s.dragAnchor = mgl32.Vec2{x, y}
}

// Drag consumes one pointer-motion sample. The first sample resolves the
// anchor; later samples grow the selection to include the pointer.
func (s *Session) Drag(x float32) error {
	if !s.dragging {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	if !s.dragStarted {
		hit, err := s.hit(ui, s.dragAnchor[0])
		if err != nil {
			return err
		}
		s.dragStarted = true
		s.selection = [2]int{hit.Index, hit.Index}
		s.index = hit.Index
		return s.refresh(ui)
	}
	hit, err := s.hit(ui, x)
	if err != nil {
		return err
	}
	s.AddIndexToSelection(hit.Index)
	s.index = hit.Index
	return s.refresh(ui)
}

// EndDrag releases the pointer. A non-empty selection stays active.
func (s *Session) EndDrag() error {
	if !s.dragging {
		return nil
	}
	s.dragging = false
	s.dragStarted = false
	ui, err := s.field()
	if err != nil {
		return err
	}
	return s.refresh(ui)
}

// AddIndexToSelection widens the selection to include i. Bounds only move
// outward and stay ordered.
func (s *Session) AddIndexToSelection(i int) {
	if i < 0 {
		return
	}
	if i < s.selection[0] {
		s.selection[0] = i
	}
	if i > s.selection[1] {
		s.selection[1] = i
	}
	s.selectionActive = s.selection[0] < s.selection[1]
}

// SelectAll selects the whole field by hit-testing its left and right edges.
func (s *Session) SelectAll() error {
	if s.State() != Idle && s.State() != Selected {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	origin := s.origin(ui)
	first, err := s.hit(ui, ui.Box.X)
	if err != nil {
		return err
	}
	width, err := glyph.Measure(s.face, ui.Text.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	last, err := s.hit(ui, max(ui.Box.Right(), origin[0]+width))
	if err != nil {
		return err
	}
	s.selection = [2]int{first.Index, last.Index}
	s.selectionActive = first.Index < last.Index
	s.index = last.Index
	return s.refresh(ui)
}

// MoveLeft steps the caret one glyph left, or collapses a selection to its start.
func (s *Session) MoveLeft() error {
	return s.move(-1)
}

// MoveRight steps the caret one glyph right, or collapses a selection to its end.
func (s *Session) MoveRight() error {
	return s.move(1)
}

func (s *Session) move(dir int) error {
	if s.State() != Idle && s.State() != Selected {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	if s.selectionActive {
		if dir < 0 {
			s.index = s.selection[0]
		} else {
			s.index = s.selection[1]
		}
		s.clearSelection()
		return s.refresh(ui)
	}
	target := s.index + dir
	if target < 0 || target > ui.Text.Len() {
		return nil
	}
	x, err := glyph.BoundaryX(s.face, ui.Text.String(), s.origin(ui)[0], target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	hit, err := s.hit(ui, x)
	if err != nil {
		return err
	}
	s.index = hit.Index
	return s.refresh(ui)
}

// Insert types r at the caret. Ignored while a selection is active.
func (s *Session) Insert(r rune) error {
	if s.State() != Idle {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	if _, ok := s.face.Glyph(r); !ok {
		return fmt.Errorf("insert %q: %w", r, glyph.ErrUnsupportedGlyph)
	}
	i, err := s.caretHitIndex(ui)
	if err != nil {
		return err
	}
	if err := ui.Text.Insert(i, r); err != nil {
		return wrapRange(err)
	}
	s.index = i + 1
	return s.refresh(ui)
}

// Backspace removes the character left of the caret, or the selection.
func (s *Session) Backspace() error {
	if s.State() == Unfocused || s.State() == Dragging {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	if ui.Text.Len() == 0 {
		return ErrEmptyField
	}
	if s.selectionActive {
		return s.deleteSelection(ui)
	}
	i, err := s.caretHitIndex(ui)
	if err != nil {
		return err
	}
	if i == 0 {
		return nil
	}
	if err := ui.Text.DeleteRange(i-1, i); err != nil {
		return wrapRange(err)
	}
	s.index = i - 1
	return s.refresh(ui)
}

// Delete removes the selection, or the character right of the caret.
func (s *Session) Delete() error {
	if s.State() == Unfocused || s.State() == Dragging {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	if ui.Text.Len() == 0 {
		return ErrEmptyField
	}
	if s.selectionActive {
		return s.deleteSelection(ui)
	}
	i, err := s.caretHitIndex(ui)
	if err != nil {
		return err
	}
	if i >= ui.Text.Len() {
		return nil
	}
	if err := ui.Text.DeleteRange(i, i+1); err != nil {
		return wrapRange(err)
	}
	s.index = i
	return s.refresh(ui)
}

func (s *Session) deleteSelection(ui *component.UI) error {
	start, end := s.selection[0], s.selection[1]
	if err := ui.Text.DeleteRange(start, end); err != nil {
		return wrapRange(err)
	}
	s.index = start
	s.clearSelection()
	return s.refresh(ui)
}

// Blink advances the blink clock by dt and toggles the caret every
// interval. While a selection is active the caret is forced visible.
func (s *Session) Blink(dt time.Duration) {
	if s.caret == ecs.None || !s.ownsCaret() {
		return
	}
	if s.State() != Idle {
		s.resetBlink()
		return
	}
	s.blinkElapsed += dt
	if s.opts.BlinkInterval <= 0 {
		return
	}
	for s.blinkElapsed >= s.opts.BlinkInterval {
		s.blinkElapsed -= s.opts.BlinkInterval
		s.caretShown = !s.caretShown
	}
	s.world.Meshes.SetActive(s.caret, s.caretShown)
}

// Refresh re-places the caret against the field's current text and box
// without touching the blink phase. The caret system calls it every frame.
func (s *Session) Refresh() error {
	if s.focused == ecs.None {
		return nil
	}
	ui, err := s.field()
	if err != nil {
		return err
	}
	return s.place(ui)
}

func (s *Session) refresh(ui *component.UI) error {
	s.resetBlink()
	return s.place(ui)
}

func (s *Session) place(ui *component.UI) error {
	r, err := s.caretRect(ui)
	if err != nil {
		return err
	}
	s.world.PlaceRect(s.caret, r, ui.Depth+caretDepth)
	color := s.opts.CaretColor
	if s.selectionActive {
		color = s.opts.SelectionColor
	}
	if mat, ok := s.world.Materials.Get(s.caret); ok {
		mat.Color = color
	}
	return nil
}

func (s *Session) caretRect(ui *component.UI) (component.Rect, error) {
	text := ui.Text.String()
	originX := s.origin(ui)[0]
	height := ui.LineHeight
	if height <= 0 {
		height = s.face.LineHeight()
	}
	if s.selectionActive {
		x0, err := glyph.BoundaryX(s.face, text, originX, s.selection[0])
		if err != nil {
			return component.Rect{}, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
		}
		x1, err := glyph.BoundaryX(s.face, text, originX, s.selection[1])
		if err != nil {
			return component.Rect{}, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
		}
		return component.Rect{X: x0, Y: ui.Box.Y, W: x1 - x0, H: height}, nil
	}
	x, err := glyph.BoundaryX(s.face, text, originX, s.index)
	if err != nil {
		return component.Rect{}, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	return component.Rect{X: x, Y: ui.Box.Y, W: s.opts.CaretWidth, H: height}, nil
}

// caretHitIndex re-resolves the caret's pixel position to a character index.
func (s *Session) caretHitIndex(ui *component.UI) (int, error) {
	x, err := glyph.BoundaryX(s.face, ui.Text.String(), s.origin(ui)[0], s.index)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	hit, err := s.hit(ui, x)
	if err != nil {
		return 0, err
	}
	if hit.Index != s.index {
		return 0, fmt.Errorf("%w: caret at %d resolves to %d", ErrInconsistentState, s.index, hit.Index)
	}
	return hit.Index, nil
}

func (s *Session) resetBlink() {
	s.blinkElapsed = 0
	s.caretShown = true
	if s.caret != ecs.None && s.ownsCaret() {
		s.world.Meshes.SetActive(s.caret, true)
	}
}

func (s *Session) clearSelection() {
	s.selection = [2]int{s.index, s.index}
	s.selectionActive = false
}

// field returns the focused text field. A focused entity that was destroyed
// or lost its text resets the session.
func (s *Session) field() (*component.UI, error) {
	if s.focused == ecs.None {
		return nil, fmt.Errorf("%w: no focused field", ErrInconsistentState)
	}
	ui, ok := s.world.UIs.Get(s.focused)
	if !ok || !ui.TextCapable() || !s.ownsCaret() {
		id := s.focused
		s.Unfocus()
		return nil, fmt.Errorf("%w: focused entity %d is no longer an editable field", ErrInconsistentState, id)
	}
	s.fit(ui.Text.Len())
	return ui, nil
}

// ownsCaret reports whether the caret id still names the caret this session
// created, not a recycled slot.
func (s *Session) ownsCaret() bool {
	return s.world.Alive(s.caret) && s.world.Tag(s.caret) == ecs.TagCaret
}

// fit clamps the caret and selection to n characters. The field's buffer can
// shrink behind the session's back.
func (s *Session) fit(n int) {
	s.index = min(s.index, n)
	s.selection[0] = min(s.selection[0], n)
	s.selection[1] = min(s.selection[1], n)
	s.selectionActive = s.selectionActive && s.selection[0] < s.selection[1]
}

func (s *Session) origin(ui *component.UI) mgl32.Vec2 {
	return mgl32.Vec2{ui.Box.X, ui.Box.Y}
}

func (s *Session) hit(ui *component.UI, x float32) (glyph.Hit, error) {
	h, err := glyph.HitTest(s.face, ui.Text.String(), s.origin(ui), x)
	if err != nil {
		return glyph.Hit{}, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	return h, nil
}

func wrapRange(err error) error {
	if errors.Is(err, component.ErrInvalidRange) {
		return fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	return err
}
