package hook

import "github.com/jakecoffman/cp"

// MovePlayerThroughWaypoints tows the character through points at
// PullStrength with gravity off, then detaches. The hook must be attached
// and no other tow may be running.
func (h *GrapplingHook) MovePlayerThroughWaypoints(points []cp.Vector) {
	if h.character == nil || !h.IsAttached() || h.towTask.Running() || len(points) < 2 {
		return
	}
	t := &tow{h: h, waypoints: append([]cp.Vector(nil), points...)}
	h.character.Block()
	h.towTask = h.sched.Start(t, func() {
		h.towTask = nil
		h.character.EnableGravity(true)
		h.character.Unblock()
	})
}

// Towing reports whether a waypoint tow is in progress.
func (h *GrapplingHook) Towing() bool {
	return h.towTask.Running()
}

type tow struct {
	h         *GrapplingHook
	waypoints []cp.Vector
	index     int
	started   bool
	elapsed   float64
	duration  float64
}

func (t *tow) Step(dt float64) bool {
	h := t.h
	c := h.character
	speed := h.Setting.PullStrength

	for t.index < len(t.waypoints) {
		wp := t.waypoints[t.index]
		if !t.started {
			c.EnableGravity(false)
			t.elapsed = 0
			t.duration = 0
			if speed > 0 {
				// stop just short so the next leg starts before the corner
				t.duration = c.Position().Distance(wp) / speed * 0.99
			}
			t.started = true
		}
		if t.elapsed < t.duration {
			c.SetPosition(moveTowards(c.Position(), wp, speed*dt))
			t.elapsed += dt
			return false
		}
		t.index++
		t.started = false
	}

	h.towTask = nil
	c.EnableGravity(true)
	h.DelayedDetach(0)
	c.Unblock()
	return true
}
