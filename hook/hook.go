// Package hook implements the grappling hook: its state machine, deploy and
// retract travel, the spring-damper swing and the waypoint tow.
//
// The hook is driven by the host once per frame through Update and once per
// physics tick through FixedUpdate. Everything runs on the caller's goroutine.
package hook

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/task"
)

// Options wires a hook to its collaborators. Only Character and Targets are
// required for the hook to do anything useful.
type Options struct {
	Character Character
	Targets   Targets
	Caster    PathCaster
	Time      TimeController
	Tuning    Tuning
	Setting   Setting
}

type GrapplingHook struct {
	// Setting is replaced by the ability before each activation.
	Setting Setting

	tuning    Tuning
	character Character
	targets   Targets
	caster    PathCaster
	timeCtl   TimeController
	sched     *task.Scheduler

	current     hookState
	transitions uint64
	active      bool

	target            TargetID
	targetPosition    cp.Vector
	hitTarget         TargetID
	wasAttachedBefore bool

	// swing
	swinging            bool
	ropeLength          float64
	lastVelocity        cp.Vector
	swingStartReflected cp.Vector
	fixedDelta          float64

	retracting bool

	// hook body
	pos         cp.Vector
	angle       float64
	parented    bool
	localOffset cp.Vector
	localAngle  float64
	rope        []cp.Vector

	deployTask       *task.Handle
	retractTask      *task.Handle
	towTask          *task.Handle
	detachTask       *task.Handle
	launchDetachTask *task.Handle
}

func New(opts Options) *GrapplingHook {
	h := &GrapplingHook{
		Setting:     opts.Setting,
		tuning:      opts.Tuning,
		character:   opts.Character,
		targets:     opts.Targets,
		caster:      opts.Caster,
		timeCtl:     opts.Time,
		sched:       task.NewScheduler(),
		current:     hookStateIdle,
		parented:    true,
		localOffset: opts.Tuning.RestOffset,
		localAngle:  opts.Tuning.RestAngle,
		fixedDelta:  opts.Tuning.FixedDelta,
	}
	if h.fixedDelta <= 0 {
		h.fixedDelta = 1.0 / 60.0
	}
	h.followLauncher()
	return h
}

func (h *GrapplingHook) IsIdle() bool       { return h.current == hookStateIdle }
func (h *GrapplingHook) IsDeployed() bool   { return h.current == hookStateDeploy }
func (h *GrapplingHook) IsAttached() bool   { return h.current == hookStateAttach }
func (h *GrapplingHook) IsRetracting() bool { return h.current == hookStateRetract }
func (h *GrapplingHook) IsSwinging() bool   { return h.current == hookStateSwing }

// State returns the active state variant.
func (h *GrapplingHook) State() State { return h.current.Kind() }

// IsActive reports whether the current state's Update runs each frame.
func (h *GrapplingHook) IsActive() bool { return h.active }

// HitTarget returns the object struck during the current deploy, or zero.
func (h *GrapplingHook) HitTarget() TargetID { return h.hitTarget }

// Target returns the current target handle, or zero.
func (h *GrapplingHook) Target() TargetID { return h.target }

func (h *GrapplingHook) WasAttachedBefore() bool { return h.wasAttachedBefore }

// Character returns the character the hook drives.
func (h *GrapplingHook) Character() Character { return h.character }

// Position returns the hook's world position.
func (h *GrapplingHook) Position() cp.Vector { return h.pos }

// Angle returns the hook's world rotation in radians.
func (h *GrapplingHook) Angle() float64 { return h.angle }

// Parented reports whether the hook sits on its launcher.
func (h *GrapplingHook) Parented() bool { return h.parented }

// LocalTransform returns the hook's offset and angle relative to the launcher.
func (h *GrapplingHook) LocalTransform() (cp.Vector, float64) {
	return h.localOffset, h.localAngle
}

// Rope returns the rope render points. It is empty or [start, end].
func (h *GrapplingHook) Rope() []cp.Vector {
	if len(h.rope) == 0 {
		return nil
	}
	return append([]cp.Vector(nil), h.rope...)
}

// SwingStartReflected is the swing-start position mirrored across the anchor
// at equal elevation, where a swing stops.
func (h *GrapplingHook) SwingStartReflected() cp.Vector { return h.swingStartReflected }

func (h *GrapplingHook) LastVelocity() cp.Vector { return h.lastVelocity }

func (h *GrapplingHook) RopeLength() float64 { return h.ropeLength }

// SetTarget records the target and snapshots its anchor. It reports false
// when the handle does not resolve.
func (h *GrapplingHook) SetTarget(id TargetID) bool {
	t, ok := h.lookup(id)
	if !ok {
		return false
	}
	h.target = id
	h.targetPosition = t.AnchorPosition()
	return true
}

// ToggleGrapplingHook enables or disables per-frame state updates.
func (h *GrapplingHook) ToggleGrapplingHook(on bool) {
	h.active = on
}

// SwitchState exits the current state and enters next. The hook is inactive
// during the pair and afterwards stays inactive when deactivate is set. When
// entering next already switched state again, that switch wins.
func (h *GrapplingHook) SwitchState(next State, deactivate bool) {
	h.switchState(stateFor(next), deactivate)
}

func (h *GrapplingHook) switchState(next hookState, deactivate bool) {
	wasActive := h.active
	h.active = false
	h.transitions++
	mine := h.transitions

	if h.current != nil {
		h.current.Exit(h)
	}
	h.current = next
	next.Enter(h)

	if h.transitions != mine {
		return
	}
	h.active = wasActive && !deactivate
}

// ResetHook returns the hook to Idle from any state, cancelling everything
// in flight. It is safe to call repeatedly.
func (h *GrapplingHook) ResetHook() {
	h.active = false

	if h.swinging {
		h.wasAttachedBefore = false
		h.stopSwinging(false)
	}

	// travel, tow and both detach delays, including the retract a swing
	// stop just started
	h.sched.CancelAll()
	h.deployTask, h.retractTask, h.towTask = nil, nil, nil
	h.detachTask, h.launchDetachTask = nil, nil
	h.retracting = false
	h.resetToParent()

	if h.character != nil {
		h.character.Unblock()
	}
	h.hitTarget = 0
	h.target = 0
	h.targetPosition = cp.Vector{}

	h.switchState(hookStateIdle, true)
}

// DelayedDetach moves an attached hook to Retracting after delay seconds. It
// does nothing unless the hook is attached, both now and when the delay ends.
func (h *GrapplingHook) DelayedDetach(delay float64) {
	if !h.IsAttached() {
		return
	}
	if delay <= 0 {
		h.detach()
		return
	}
	h.detachTask.Cancel()
	h.detachTask = h.sched.After(delay, h.detach)
}

func (h *GrapplingHook) detach() {
	h.detachTask = nil
	if !h.IsAttached() {
		return
	}
	h.SwitchState(StateRetract, true)
}

// LaunchPlayer throws the character along dir scaled by PullStrength and
// detaches one second later. A zero dir aims at the anchor.
func (h *GrapplingHook) LaunchPlayer(dir cp.Vector) {
	if h.character == nil {
		return
	}
	var v cp.Vector
	if dir.LengthSq() == 0 {
		anchor, _ := h.effectiveAnchor()
		v = normalize(anchor.Sub(h.character.Position())).Mult(h.Setting.PullStrength)
	} else {
		v = normalize(dir).Mult(h.Setting.PullStrength)
	}
	h.character.Launch(v)

	h.launchDetachTask.Cancel()
	h.launchDetachTask = h.sched.After(1, func() {
		h.launchDetachTask = nil
		h.DelayedDetach(0)
	})
}

// OnHit is the hook trigger callback. Hits only count while deploying and
// the first one wins.
func (h *GrapplingHook) OnHit(owner TargetID) {
	if !h.IsDeployed() || h.target == 0 || owner == 0 || h.hitTarget != 0 {
		return
	}
	h.hitTarget = owner
}

// OnRetractTrigger is called when the retracting hook reaches the launcher.
func (h *GrapplingHook) OnRetractTrigger() {
	h.retracting = false
}

// IsPathClear sweeps a half-height circle from the player's center toward
// the anchor. The path is clear when nothing is hit or the first thing hit is
// the target itself.
func (h *GrapplingHook) IsPathClear() bool {
	if h.character == nil {
		return false
	}
	anchor, ok := h.effectiveAnchor()
	if !ok {
		return false
	}
	if h.caster == nil {
		return true
	}

	center := h.playerCenter()
	radius := h.character.Height() * 0.5
	reach := center.Distance(anchor) - radius
	if reach <= 0 {
		return true
	}
	to := center.Add(normalize(anchor.Sub(center)).Mult(reach))
	hit := h.caster.ShapeCast(center, to, radius, h.Setting.ObstacleMask)
	if !hit.Hit {
		return true
	}
	return hit.Owner != 0 && hit.Owner == h.target
}

// HasMinDistance reports whether the anchor is farther than MinTravelDistance
// from the player's center.
func (h *GrapplingHook) HasMinDistance() bool {
	if h.character == nil {
		return false
	}
	anchor, ok := h.effectiveAnchor()
	if !ok {
		return false
	}
	return h.playerCenter().Distance(anchor) > h.Setting.MinTravelDistance
}

// ReachedMaxDistance reports whether the hook is MaxTravelDistance or more
// away from the rope start.
func (h *GrapplingHook) ReachedMaxDistance() bool {
	return h.ropeStart().Distance(h.pos) >= h.Setting.MaxTravelDistance
}

func (h *GrapplingHook) HitCorrectTarget() bool {
	return h.hitTarget != 0 && h.hitTarget == h.target
}

// CanActivate runs the Idle gate without side effects.
func (h *GrapplingHook) CanActivate() bool {
	return h.IsPathClear() && h.HasMinDistance()
}

// CanTarget runs the Idle gate against id as if it had been set with s.
// The hook's target and setting are left as they were.
func (h *GrapplingHook) CanTarget(id TargetID, s Setting) bool {
	target, targetPosition, setting := h.target, h.targetPosition, h.Setting
	defer func() {
		h.target, h.targetPosition, h.Setting = target, targetPosition, setting
	}()
	if !h.SetTarget(id) {
		return false
	}
	h.Setting = s
	return h.CanActivate()
}

// Update advances travel, tow and delay routines, keeps the hook visuals
// pinned and runs the active state.
func (h *GrapplingHook) Update(dt float64) {
	h.sched.Update(dt)

	h.followLauncher()
	if h.IsAttached() || h.IsSwinging() {
		if anchor, ok := h.effectiveAnchor(); ok {
			h.pos = anchor
		}
		h.updateRope()
	}

	if h.active {
		h.current.Update(h)
	}
}

// FixedUpdate runs the swing integrator once per physics tick.
func (h *GrapplingHook) FixedUpdate(dt float64) {
	if dt > 0 {
		h.fixedDelta = dt
	}
	if h.swinging {
		h.integrateSwing(dt)
	}
}

func (h *GrapplingHook) lookup(id TargetID) (Target, bool) {
	if id == 0 || h.targets == nil {
		return nil, false
	}
	t, ok := h.targets.Target(id)
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

func (h *GrapplingHook) currentTarget() (Target, bool) {
	return h.lookup(h.target)
}

// effectiveAnchor is the snapshot for relative anchors and the live anchor
// otherwise.
func (h *GrapplingHook) effectiveAnchor() (cp.Vector, bool) {
	t, ok := h.currentTarget()
	if !ok {
		return h.targetPosition, false
	}
	if t.IsAnchorRelative() {
		return h.targetPosition, true
	}
	return t.AnchorPosition(), true
}

func (h *GrapplingHook) playerCenter() cp.Vector {
	if h.character == nil {
		return cp.Vector{}
	}
	return h.character.Position().Add(h.up().Mult(h.character.Height() * 0.5))
}

// up is the negated gravity direction.
func (h *GrapplingHook) up() cp.Vector {
	if h.character == nil {
		return cp.Vector{Y: -1}
	}
	g := normalize(h.character.GravityDirection())
	if g.LengthSq() == 0 {
		return cp.Vector{Y: -1}
	}
	return g.Neg()
}

func (h *GrapplingHook) ropeStart() cp.Vector {
	return h.playerCenter().Add(h.tuning.LaunchOffset)
}

func (h *GrapplingHook) ropeEnd() cp.Vector {
	return h.pos.Add(h.tuning.RopeEndOffset.Rotate(cp.ForAngle(h.angle)))
}

func (h *GrapplingHook) updateRope() {
	if len(h.rope) != 2 {
		h.rope = make([]cp.Vector, 2)
	}
	h.rope[0] = h.ropeStart()
	h.rope[1] = h.ropeEnd()
}

func (h *GrapplingHook) clearRope() {
	h.rope = h.rope[:0]
}

func (h *GrapplingHook) followLauncher() {
	if !h.parented {
		return
	}
	h.pos = h.ropeStart().Add(h.localOffset)
	h.angle = h.localAngle
}
