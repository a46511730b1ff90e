package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each frame. Systems sharing a
// phase keep their registration order.
type Runner struct {
	systems []System
	sorted  bool

	// timings[i] is how long systems[i] took in the last Tick.
	timings []time.Duration
	now     func() time.Time
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		now:     time.Now,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once, in phase order.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for i, s := range r.systems {
		start := r.now()
		s.Update(dt)
		r.timings[i] = r.now().Sub(start)
	}
}

// Phases returns the phase of every registered system in execution order.
func (r *Runner) Phases() []Phase {
	r.ensureSorted()
	out := make([]Phase, len(r.systems))
	for i, s := range r.systems {
		out[i] = s.Phase()
	}
	return out
}

// PhaseTiming is the time spent in one phase during the last Tick.
type PhaseTiming struct {
	Phase    Phase
	Duration time.Duration
}

// Timings sums the last Tick's system durations per phase, in phase order.
func (r *Runner) Timings() []PhaseTiming {
	r.ensureSorted()
	var out []PhaseTiming
	for i, s := range r.systems {
		if n := len(out); n > 0 && out[n-1].Phase == s.Phase() {
			out[n-1].Duration += r.timings[i]
			continue
		}
		out = append(out, PhaseTiming{Phase: s.Phase(), Duration: r.timings[i]})
	}
	return out
}

func (r *Runner) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].Phase() < r.systems[j].Phase()
	})
	r.timings = make([]time.Duration, len(r.systems))
	r.sorted = true
}
