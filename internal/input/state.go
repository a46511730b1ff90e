package input

// State is the pointer and modifier state seen by the pipeline during one
// frame. Edge flags are reset at the start of every frame.
type State struct {
	X, Y float32
	Down bool
	Mods Modifiers

	Pressed       bool
	Released      bool
	DoubleClicked bool
	Moved         bool
}

// BeginFrame clears the per-frame edge flags.
func (s *State) BeginFrame() {
	s.Pressed = false
	s.Released = false
	s.DoubleClicked = false
	s.Moved = false
}

func (s *State) MoveTo(x, y float32) {
	if x != s.X || y != s.Y {
		s.Moved = true
	}
	s.X, s.Y = x, y
}

func (s *State) Press(x, y float32) {
	s.MoveTo(x, y)
	s.Down = true
	s.Pressed = true
}

func (s *State) Release(x, y float32) {
	s.MoveTo(x, y)
	s.Down = false
	s.Released = true
}

func (s *State) DoubleClick(x, y float32) {
	s.MoveTo(x, y)
	s.DoubleClicked = true
}
