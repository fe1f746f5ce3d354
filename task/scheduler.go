// Package task runs per-frame routines for single-threaded game code.
//
// A routine is a small struct that is stepped once per host tick and keeps its
// own suspend state (elapsed time, index, ...). Cancelling a routine drops it
// and runs its cancel closure immediately instead of waiting for the routine
// to notice a flag on its next step.
package task

// Routine advances by dt seconds and reports whether it has finished.
type Routine interface {
	Step(dt float64) bool
}

// StepFunc adapts a plain function to a Routine.
type StepFunc func(dt float64) bool

func (f StepFunc) Step(dt float64) bool {
	return f(dt)
}

// Handle references a started routine.
type Handle struct {
	routine  Routine
	onCancel func()
	done     bool
}

// Running reports whether the routine is still scheduled.
func (h *Handle) Running() bool {
	return h != nil && !h.done
}

// Cancel stops the routine and runs its cancel closure. Cancelling a finished
// or nil handle is a no-op.
func (h *Handle) Cancel() {
	if h == nil || h.done {
		return
	}
	h.done = true
	if h.onCancel != nil {
		h.onCancel()
	}
}

// Scheduler steps routines once per Update call.
type Scheduler struct {
	handles []*Handle
	now     float64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start schedules r. The routine is first stepped on the next Update, so a
// routine started while the scheduler is updating does not run twice in the
// same frame.
func (s *Scheduler) Start(r Routine, onCancel func()) *Handle {
	if s == nil || r == nil {
		return nil
	}
	h := &Handle{routine: r, onCancel: onCancel}
	s.handles = append(s.handles, h)
	return h
}

// After runs fn once delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) *Handle {
	return s.Start(Seq(Wait(delay), Do(fn)), nil)
}

// Update advances the clock and steps every running routine.
func (s *Scheduler) Update(dt float64) {
	if s == nil {
		return
	}
	s.now += dt

	current := s.handles
	for _, h := range current {
		if h.done {
			continue
		}
		if h.routine.Step(dt) {
			h.done = true
		}
	}

	live := s.handles[:0]
	for _, h := range s.handles {
		if !h.done {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.handles); i++ {
		s.handles[i] = nil
	}
	s.handles = live
}

// Now returns the accumulated scheduler time in seconds.
func (s *Scheduler) Now() float64 {
	if s == nil {
		return 0
	}
	return s.now
}

// Len returns the number of running routines.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	count := 0
	for _, h := range s.handles {
		if !h.done {
			count++
		}
	}
	return count
}

// CancelAll cancels every running routine.
func (s *Scheduler) CancelAll() {
	if s == nil {
		return
	}
	handles := append([]*Handle(nil), s.handles...)
	for _, h := range handles {
		h.Cancel()
	}
	s.handles = nil
}
