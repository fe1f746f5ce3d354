package ability

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/task"
)

const (
	pullTimeScale    = 0.5
	pullTimeDuration = 0.2
)

// Pull hooks a combat object and yanks it toward the player.
type Pull struct {
	Base

	// PullTo is where pulled objects are thrown. Defaults to the player.
	PullTo func() cp.Vector
	// DetachDelay is how long the hook stays attached after the pull.
	DetachDelay float64
	// OnDeploying runs every frame the hook travels toward the target.
	OnDeploying func(target hook.TargetID)

	target *hookable.Combat
}

func NewPull(cfg Config) *Pull {
	return &Pull{Base: newBase(cfg)}
}

func (p *Pull) Activate(id hook.TargetID) bool {
	target, ok := p.resolve(id)
	if !ok {
		return false
	}
	combat, ok := target.(*hookable.Combat)
	if !ok || !p.arm(id) {
		return false
	}
	p.target = combat

	h := p.cfg.Hook
	var seq *task.Sequence
	seq = task.Seq(
		task.Wait(p.cfg.AnimationTime),
		task.Do(p.block),
		task.Do(p.fire),
		p.leftIdle(),
		guard(&seq, func() bool { return !h.IsIdle() }, p.fail),
		task.Wait(beat),
		task.Do(func() {
			if p.cfg.Time != nil {
				p.cfg.Time.RequestTimeScale(pullTimeScale, pullTimeDuration)
			}
		}),
		task.While(func() bool {
			if !h.IsDeployed() {
				return false
			}
			if p.OnDeploying != nil {
				p.OnDeploying(id)
			}
			return true
		}),
		guard(&seq, h.IsAttached, p.fail),
		task.Wait(longBeat),
		task.Do(func() {
			if h.IsAttached() {
				p.target.Pull(p.pullPoint(), h.Setting.PullStrength)
				h.DelayedDetach(p.DetachDelay)
			}
			p.startCooldown()
			p.unblock()
		}),
	)
	p.start(seq, p.unblock)
	return true
}

func (p *Pull) fail() {
	p.unblock()
	p.startCooldown()
}

func (p *Pull) pullPoint() cp.Vector {
	if p.PullTo != nil {
		return p.PullTo()
	}
	return p.cfg.Player.Position()
}
