package ability

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/task"
)

// ToPoint hooks a ledge above the player and tows the player onto it.
type ToPoint struct {
	Base

	target    *hookable.ToPoint
	waypoints []cp.Vector
}

func NewToPoint(cfg Config) *ToPoint {
	return &ToPoint{Base: newBase(cfg)}
}

// Waypoints returns the path computed at the last activation.
func (t *ToPoint) Waypoints() []cp.Vector { return t.waypoints }

func (t *ToPoint) Activate(id hook.TargetID) bool {
	target, ok := t.resolve(id)
	if !ok {
		return false
	}
	ledge, ok := target.(*hookable.ToPoint)
	if !ok {
		return false
	}
	// the ledge has to be above the player
	player := t.cfg.Player
	if up := upOf(player); ledge.AnchorPosition().Sub(player.Position()).Dot(up) < 0 {
		return false
	}
	if ledge.Player == nil {
		ledge.Player = player
	}
	if !t.arm(id) {
		return false
	}
	t.target = ledge
	t.waypoints = ledge.Waypoints()

	h := t.cfg.Hook
	var seq *task.Sequence
	seq = task.Seq(
		task.Wait(t.cfg.AnimationTime),
		task.Do(t.fire),
		t.leftIdle(),
		guard(&seq, func() bool { return !h.IsIdle() }, t.finish),
		task.Wait(beat),
		t.whileDeployed(),
		guard(&seq, h.IsAttached, t.finish),
		task.Do(func() {
			// the tow holds the player's block from here on
			h.MovePlayerThroughWaypoints(t.waypoints)
			t.startCooldown()
		}),
	)
	t.start(seq, t.finish)
	return true
}

func (t *ToPoint) finish() {
	t.startCooldown()
	t.unblock()
}
