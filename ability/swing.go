package ability

import (
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/task"
)

// Swing hooks a swing point and swings the player underneath it.
type Swing struct {
	Base

	// AirborneOnly refuses activation while the player stands on ground.
	AirborneOnly bool
}

func NewSwing(cfg Config) *Swing {
	return &Swing{Base: newBase(cfg), AirborneOnly: true}
}

func (s *Swing) Activate(id hook.TargetID) bool {
	target, ok := s.resolve(id)
	if !ok || target.Kind() != hookable.KindSwing {
		return false
	}
	if s.AirborneOnly && s.cfg.Player.IsOnGround() {
		return false
	}
	if !s.arm(id) {
		return false
	}

	h := s.cfg.Hook
	var seq *task.Sequence
	seq = task.Seq(
		task.Wait(s.cfg.AnimationTime),
		task.Do(s.block),
		task.Do(s.fire),
		s.leftIdle(),
		guard(&seq, func() bool { return !h.IsIdle() }, s.finish),
		task.Wait(beat),
		s.whileDeployed(),
		task.Wait(beat),
		guard(&seq, h.IsAttached, s.finish),
		task.Do(s.unblock),
		task.Wait(beat),
		task.Do(h.StartSwinging),
		task.While(h.IsSwinging),
		task.Do(s.finish),
	)
	s.start(seq, s.finish)
	return true
}

func (s *Swing) finish() {
	s.startCooldown()
	s.unblock()
	s.cfg.Hook.StopSwinging()
}
