// Package ability choreographs the grappling hook for the player's hook
// abilities. Each ability validates an activation, hands the hook its
// Setting and target, then drives a frame-stepped routine that polls the
// hook state and reacts to it.
package ability

import (
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/task"
)

// Player is the character an ability blocks while it owns the input.
type Player interface {
	hook.Character
	IsBlocked() bool
}

// Ability is a player action built on the hook.
type Ability interface {
	Name() string
	// Activate starts the ability on target. It reports false when any
	// activation guard fails.
	Activate(target hook.TargetID) bool
	// Update advances the ability's routine by dt seconds of real time.
	Update(dt float64)
	// Cancel aborts the hook activation.
	Cancel()
	Running() bool
}

// Config is what every ability is built from.
type Config struct {
	Name     string
	Hook     *hook.GrapplingHook
	Player   Player
	Hookable *hookable.Registry
	Time     hook.TimeController
	Setting  hook.Setting
	// Cooldown is the number of seconds between activations.
	Cooldown float64
	// AnimationTime is the wind-up before the hook is fired.
	AnimationTime float64
}

// Base carries the cooldown, the routine handle and the activation guards
// shared by all abilities.
type Base struct {
	cfg     Config
	sched   *task.Scheduler
	run     *task.Handle
	readyAt float64
}

func newBase(cfg Config) Base {
	return Base{cfg: cfg, sched: task.NewScheduler()}
}

func (b *Base) Name() string { return b.cfg.Name }

// Setting returns the hook setting applied on activation.
func (b *Base) Setting() hook.Setting { return b.cfg.Setting }

// SetSetting replaces the setting used by future activations.
func (b *Base) SetSetting(s hook.Setting) { b.cfg.Setting = s }

func (b *Base) Running() bool { return b.run.Running() }

// CoolingDown reports whether the cooldown from the last activation is
// still in effect.
func (b *Base) CoolingDown() bool { return b.sched.Now() < b.readyAt }

func (b *Base) Update(dt float64) { b.sched.Update(dt) }

// Cancel resets the hook. The routine notices the idle hook and finishes.
func (b *Base) Cancel() { b.cfg.Hook.ResetHook() }

// resolve runs the guards common to all abilities and returns the target.
// It does not touch the hook.
func (b *Base) resolve(id hook.TargetID) (hookable.Hookable, bool) {
	if b.cfg.Hook == nil || b.cfg.Hookable == nil {
		return nil, false
	}
	target, ok := b.cfg.Hookable.Get(id)
	switch {
	case !ok:
		return nil, false
	case !target.IsHookable():
		return nil, false
	case b.CoolingDown():
		return nil, false
	case b.Running():
		return nil, false
	case !b.cfg.Hook.IsIdle():
		return nil, false
	case !b.cfg.Hook.CanTarget(id, b.cfg.Setting):
		// too close or blocked; the Idle state gate covers what changes
		// during the wind-up
		return nil, false
	}
	return target, true
}

// arm points the hook at id with this ability's setting.
func (b *Base) arm(id hook.TargetID) bool {
	if !b.cfg.Hook.SetTarget(id) {
		return false
	}
	b.cfg.Hook.Setting = b.cfg.Setting
	return true
}

func (b *Base) start(seq *task.Sequence, onCancel func()) {
	b.run = b.sched.Start(seq, onCancel)
}

// startCooldown begins the cooldown unless one is already running.
func (b *Base) startCooldown() {
	if now := b.sched.Now(); b.readyAt <= now {
		b.readyAt = now + b.cfg.Cooldown
	}
}

func (b *Base) unblock() {
	if b.cfg.Player != nil && b.cfg.Player.IsBlocked() {
		b.cfg.Player.Unblock()
	}
}

func (b *Base) block() {
	if b.cfg.Player != nil && !b.cfg.Player.IsBlocked() {
		b.cfg.Player.Block()
	}
}

// fire toggles the hook on.
func (b *Base) fire() { b.cfg.Hook.ToggleGrapplingHook(true) }

// leftIdle finishes once the hook has left Idle, or once the idle gate has
// reset it and it will never leave.
func (b *Base) leftIdle() task.Routine {
	h := b.cfg.Hook
	return task.Until(func() bool {
		return !h.IsIdle() || !h.IsActive()
	})
}

func (b *Base) whileDeployed() task.Routine {
	return task.While(b.cfg.Hook.IsDeployed)
}

// guard halts seq through fail when ok reports false.
func guard(seq **task.Sequence, ok func() bool, fail func()) task.Routine {
	return task.Do(func() {
		if ok() {
			return
		}
		if fail != nil {
			fail()
		}
		(*seq).Halt()
	})
}

// Short pauses between choreography beats, in real seconds.
const (
	beat     = 0.05
	longBeat = 0.15
)
