package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput     Phase = iota // 0: drain collaborator events
	PhaseCamera                 // 1: view/projection matrices
	PhaseLayout                 // 2: UI boxes → UI-logical transforms, window resize
	PhaseTextInput              // 3: keyboard edits on the focused field
	PhaseHover                  // 4: pointer hover/click on UI elements
	PhaseCaret                  // 5: focus, drag selection, blink
	PhaseModel                  // 6: world matrices
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseCamera:
		return "camera"
	case PhaseLayout:
		return "layout"
	case PhaseTextInput:
		return "text-input"
	case PhaseHover:
		return "hover"
	case PhaseCaret:
		return "caret"
	case PhaseModel:
		return "model"
	default:
		return "unknown"
	}
}

// System is the interface every pipeline system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
