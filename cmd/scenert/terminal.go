package main

import (
	"fmt"
	"sort"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/coords"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/glyph"
	"github.com/scenert/scenert/internal/input"
	"github.com/scenert/scenert/internal/system"
)

const doubleClickWindow = 400 * time.Millisecond

// terminal is the input collaborator and painter for the demo. Each cell
// stands for cellW x cellH window pixels. Only the frame loop goroutine
// touches it; the poller goroutine only forwards raw tcell events.
type terminal struct {
	screen tcell.Screen
	cellW  float32
	cellH  float32

	buttonDown bool
	lastCellX  int
	lastCellY  int
	lastClick  time.Time
	clickCount int
}

// newTerminal initialises screen. metrics only sizes the cell; text is laid
// out with face(), one character per cell, so drawn glyphs and hit-testing
// agree.
func newTerminal(screen tcell.Screen, metrics glyph.Face) (*terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	cellW := float32(8)
	if m, ok := metrics.Glyph('M'); ok && m.Advance > 0 {
		cellW = m.Advance
	}
	cellH := metrics.LineHeight()
	if cellH <= 0 {
		cellH = 16
	}
	return &terminal{screen: screen, cellW: cellW, cellH: cellH, lastCellX: -1, lastCellY: -1}, nil
}

// face is the glyph face matching the cell grid.
func (t *terminal) face() glyph.Face {
	return glyph.Mono{Advance: t.cellW, Height: t.cellH}
}

func (t *terminal) close() {
	t.screen.Fini()
}

// poll forwards tcell events until quit is closed.
func (t *terminal) poll(out chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-quit:
			return
		}
	}
}

// viewport returns the screen size in window pixels.
func (t *terminal) viewport() coords.Viewport {
	w, h := t.screen.Size()
	return coords.Viewport{Width: float32(w) * t.cellW, Height: float32(h) * t.cellH}
}

func (t *terminal) pixel(cx, cy int) (float32, float32) {
	return float32(cx) * t.cellW, float32(cy) * t.cellH
}

// translate queues the scene events for ev. It reports false when the user
// asked to quit.
func (t *terminal) translate(bus *event.Bus, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		v := t.viewport()
		event.Emit(bus, event.Resized{Width: v.Width, Height: v.Height})
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ {
			return false
		}
		if k, ok := keyEvent(ev); ok {
			event.Emit(bus, k)
		}
	case *tcell.EventMouse:
		t.mouse(bus, ev)
	}
	return true
}

func keyEvent(ev *tcell.EventKey) (event.Key, bool) {
	var mods input.Modifiers
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mods |= input.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= input.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= input.ModAlt
	}

	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		// The terminal reports the produced character; recover the shift
		// state so the keymap reproduces it.
		if unicode.IsUpper(r) {
			mods |= input.ModShift
		}
		return event.Key{Key: input.KeyRune, Rune: r, Mods: mods}, true
	case tcell.KeyLeft:
		return event.Key{Key: input.KeyLeft, Mods: mods}, true
	case tcell.KeyRight:
		return event.Key{Key: input.KeyRight, Mods: mods}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return event.Key{Key: input.KeyBackspace, Mods: mods}, true
	case tcell.KeyDelete:
		return event.Key{Key: input.KeyDelete, Mods: mods}, true
	case tcell.KeyEnter:
		return event.Key{Key: input.KeyEnter, Mods: mods}, true
	case tcell.KeyEscape:
		return event.Key{Key: input.KeyEscape, Mods: mods}, true
	}
	return event.Key{}, false
}

func (t *terminal) mouse(bus *event.Bus, ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := t.pixel(cx, cy)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !t.buttonDown:
		now := ev.When()
		if cx == t.lastCellX && cy == t.lastCellY && now.Sub(t.lastClick) <= doubleClickWindow {
			t.clickCount++
		} else {
			t.clickCount = 1
		}
		t.lastClick = now
		event.Emit(bus, event.Pointer{Kind: event.PointerDown, X: x, Y: y})
	case !down && t.buttonDown:
		event.Emit(bus, event.Pointer{Kind: event.PointerUp, X: x, Y: y})
		if t.clickCount == 2 {
			event.Emit(bus, event.Pointer{Kind: event.PointerDoubleClick, X: x, Y: y})
			t.clickCount = 0
		}
	case cx != t.lastCellX || cy != t.lastCellY:
		event.Emit(bus, event.Pointer{Kind: event.PointerMove, X: x, Y: y})
	}
	t.buttonDown = down
	t.lastCellX, t.lastCellY = cx, cy
}

// paint draws UI elements back to front, the caret, models and a status line.
func (t *terminal) paint(p *system.Pipeline, frame time.Duration) {
	ws := p.World
	t.screen.Clear()

	type item struct {
		id    ecs.EntityID
		depth float32
	}
	var items []item
	ws.UIs.Each(func(id ecs.EntityID, ui *component.UI) {
		if ws.Visible(id) {
			items = append(items, item{id, ui.Depth})
		}
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth < items[j].depth })

	for _, it := range items {
		ui, _ := ws.UIs.Get(it.id)
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if mat, ok := ws.Materials.Get(it.id); ok {
			style = style.Background(rgb(mat.Effective()))
		}
		t.fill(ui.Box, ' ', style)
		if ui.TextCapable() {
			t.text(p.Session.Face(), ui, style)
		}
	}

	if r, ok := p.Session.CaretRect(); ok && p.Session.CaretVisible() {
		style := tcell.StyleDefault.Reverse(true)
		if r.W < t.cellW {
			r.W = t.cellW
		}
		t.invert(r, style)
	}

	t.models(p)

	var slowest coresys.PhaseTiming
	for _, pt := range p.Timings() {
		if pt.Duration > slowest.Duration {
			slowest = pt
		}
	}
	_, h := t.screen.Size()
	status := fmt.Sprintf(" %s  entities %d  queued %d  frame %s  slowest %s %s  ctrl-q quits ",
		p.Session.State(), ws.Pool().Len(), event.Pending[event.Pointer](p.Bus)+event.Pending[event.Key](p.Bus),
		frame.Round(time.Microsecond),
		slowest.Phase, slowest.Duration.Round(time.Microsecond))
	t.print(0, h-1, status, tcell.StyleDefault.Reverse(true))
	t.screen.Show()
}

func (t *terminal) fill(r component.Rect, ch rune, style tcell.Style) {
	x0, y0 := int(r.X/t.cellW), int(r.Y/t.cellH)
	x1, y1 := int((r.X+r.W)/t.cellW), int((r.Y+r.H)/t.cellH)
	if y1 == y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// invert re-styles the cells under r, keeping their characters.
func (t *terminal) invert(r component.Rect, style tcell.Style) {
	x0, y0 := int(r.X/t.cellW), int(r.Y/t.cellH)
	x1 := int((r.X + r.W) / t.cellW)
	if x1 == x0 {
		x1 = x0 + 1
	}
	for x := x0; x < x1; x++ {
		ch, comb, _, _ := t.screen.GetContent(x, y0)
		t.screen.SetContent(x, y0, ch, comb, style)
	}
}

func (t *terminal) text(face glyph.Face, ui *component.UI, style tcell.Style) {
	runes := []rune(ui.Text.String())
	cy := int(ui.Box.Y / t.cellH)
	for i, r := range runes {
		x, err := glyph.BoundaryX(face, string(runes), ui.Box.X, i)
		if err != nil {
			return
		}
		t.screen.SetContent(int(x/t.cellW), cy, r, nil, style)
	}
}

// models projects every model origin through the first active camera.
func (t *terminal) models(p *system.Pipeline) {
	var cam *component.Camera
	for _, c := range p.World.Cameras {
		if c.Active {
			cam = c
			break
		}
	}
	if cam == nil {
		return
	}
	v := p.World.Viewport()
	vp := cam.Proj.Mul4(cam.View)
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	ecs.Each2(p.World.Transforms, p.World.Meshes, func(id ecs.EntityID, tr *component.Transform, m *component.Mesh) {
		if m.Kind != component.MeshModel || !p.World.Visible(id) {
			return
		}
		clip := vp.Mul4(tr.World).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		if clip.W() <= 0 {
			return
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		px := (ndc.X() + 1) / 2 * v.Width
		py := (1 - ndc.Y()) / 2 * v.Height
		t.screen.SetContent(int(px/t.cellW), int(py/t.cellH), '■', nil, style)
	})
}

func (t *terminal) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func rgb(c mgl32.Vec4) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]*255), int32(c[1]*255), int32(c[2]*255))
}
