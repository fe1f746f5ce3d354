package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
)

// HookSensor stands in for the hook's trigger volumes. The hook head is
// moved kinematically, so instead of cp contacts the sensor sweeps the path
// the head travelled since the last frame.
type HookSensor struct {
	world     *World
	hook      *hook.GrapplingHook
	character *Character

	// Radius is the head's trigger radius.
	Radius float64
	// Mask selects the layers the head can strike.
	Mask uint
	// RetractRadius is how close the retracting head must come to the
	// character to count as caught.
	RetractRadius float64

	last     cp.Vector
	tracking bool
}

func (w *World) NewHookSensor(h *hook.GrapplingHook, c *Character, radius float64, mask uint) *HookSensor {
	return &HookSensor{
		world:         w,
		hook:          h,
		character:     c,
		Radius:        radius,
		Mask:          mask,
		RetractRadius: radius,
	}
}

// Update reports trigger events to the hook. Call it after the hook's
// Update each frame.
func (s *HookSensor) Update() {
	if s == nil || s.hook == nil || s.world == nil {
		return
	}
	h := s.hook
	pos := h.Position()

	if h.IsDeployed() {
		from := pos
		if s.tracking {
			from = s.last
		}
		s.last = pos
		s.tracking = true

		if shape := s.sweep(from, pos); shape != nil {
			if owner, ok := s.world.Owner(shape); ok {
				h.OnHit(owner)
			}
		}
	} else {
		s.tracking = false
	}

	if h.IsRetracting() && s.character != nil {
		info := s.world.space.PointQueryNearest(pos, s.RetractRadius, queryFilter(LayerPlayer))
		if info != nil && info.Shape == s.character.shape {
			h.OnRetractTrigger()
		}
	}
}

func (s *HookSensor) sweep(from, to cp.Vector) *cp.Shape {
	if from == to {
		info := s.world.space.PointQueryNearest(to, s.Radius, queryFilter(s.Mask))
		if info == nil {
			return nil
		}
		return info.Shape
	}
	return s.world.space.SegmentQueryFirst(from, to, s.Radius, queryFilter(s.Mask)).Shape
}
