package task

type wait struct {
	left float64
}

// Wait finishes after seconds of accumulated dt. Wait(0) finishes on its
// first step.
func Wait(seconds float64) Routine {
	return &wait{left: seconds}
}

func (w *wait) Step(dt float64) bool {
	w.left -= dt
	return w.left <= 0
}

// Until finishes on the first step where cond reports true.
func Until(cond func() bool) Routine {
	return StepFunc(func(dt float64) bool {
		return cond == nil || cond()
	})
}

// While keeps running as long as cond reports true.
func While(cond func() bool) Routine {
	return StepFunc(func(dt float64) bool {
		return cond == nil || !cond()
	})
}

// Do runs fn once and finishes.
func Do(fn func()) Routine {
	return StepFunc(func(dt float64) bool {
		if fn != nil {
			fn()
		}
		return true
	})
}

// Sequence runs routines one after another. When a routine finishes the next
// one is stepped in the same tick with zero dt, so instantaneous steps chain
// without losing frames.
type Sequence struct {
	steps []Routine
	index int
	halt  bool
}

func Seq(steps ...Routine) *Sequence {
	return &Sequence{steps: steps}
}

// Halt ends the sequence before its next step.
func (s *Sequence) Halt() {
	s.halt = true
}

func (s *Sequence) Step(dt float64) bool {
	for !s.halt && s.index < len(s.steps) {
		if !s.steps[s.index].Step(dt) {
			return false
		}
		s.index++
		dt = 0
	}
	return true
}
