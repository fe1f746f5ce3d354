package ability

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
)

func TestActivateGuards(t *testing.T) {
	r := newRig(cp.Vector{})
	crate := r.crate(cp.Vector{X: 10})
	crate.CanPull = true
	crateID := r.reg.Add(crate)
	swingID := r.reg.Add(hookable.NewBase("bar", hookable.KindSwing, nil, cp.Vector{X: 4, Y: -5}))
	spent := hookable.NewBase("spent", hookable.KindSwing, nil, cp.Vector{Y: -8})
	spent.SetHookable(false)
	spentID := r.reg.Add(spent)

	pull := NewPull(r.config("pull"))
	swing := NewSwing(r.config("swing"))

	cases := []struct {
		name string
		try  func() bool
	}{
		{"unknown_target", func() bool { return pull.Activate(99) }},
		{"pull_needs_combat", func() bool { return pull.Activate(swingID) }},
		{"swing_needs_swing_kind", func() bool { return swing.Activate(crateID) }},
		{"unhookable", func() bool { return swing.Activate(spentID) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.try() {
				t.Fatalf("activation should be refused")
			}
			if r.hook.Target() != 0 {
				t.Fatalf("refused activation touched the hook")
			}
		})
	}

	r.player.grounded = true
	if swing.Activate(swingID) {
		t.Fatalf("airborne-only swing activated on the ground")
	}
	swing.AirborneOnly = false
	r.use(swing)
	if !swing.Activate(swingID) {
		t.Fatalf("swing refused with the airborne constraint off")
	}
	if swing.Activate(swingID) {
		t.Fatalf("second activation while running")
	}
	if r.runUntil(60, func() bool { return !r.hook.IsIdle() }) < 0 {
		t.Fatalf("hook never left idle")
	}
	if pull.Activate(crateID) {
		t.Fatalf("pull activated while another ability owns the hook")
	}
}

func TestPullYanksTarget(t *testing.T) {
	r := newRig(cp.Vector{})
	crate := r.crate(cp.Vector{X: 10})
	crate.CanPull = true
	id := r.reg.Add(crate)

	pull := NewPull(r.config("pull"))
	pull.DetachDelay = 0.2
	r.use(pull)
	if !pull.Activate(id) {
		t.Fatalf("pull refused")
	}
	if r.hook.Setting != testSetting() {
		t.Fatalf("activation did not hand over the setting")
	}

	sawBlocked := false
	frames := r.runUntil(300, func() bool {
		sawBlocked = sawBlocked || r.player.blocked
		return !pull.Running()
	})
	if frames < 0 {
		t.Fatalf("pull never finished, hook %s", r.hook.State())
	}
	if !sawBlocked || r.player.blocked {
		t.Fatalf("player should be blocked during the pull and released after")
	}
	if v := crate.Body().Velocity(); v.Distance(cp.Vector{X: -10, Y: -0.1}) > 1e-9 {
		t.Fatalf("crate velocity %v, want (-10,-0.1)", v)
	}
	if crate.IsHookable() {
		t.Fatalf("pulled crate still hookable")
	}
	if len(r.time.requests) != 1 || r.time.requests[0] != (timeRequest{0.5, 0.2}) {
		t.Fatalf("time requests %v", r.time.requests)
	}
	if !pull.CoolingDown() {
		t.Fatalf("cooldown not started")
	}
	if r.runUntil(60, r.hook.IsIdle) < 0 {
		t.Fatalf("hook never detached, state %s", r.hook.State())
	}
}

func TestPullCooldown(t *testing.T) {
	r := newRig(cp.Vector{})
	crate := r.crate(cp.Vector{X: 10})
	crate.CanPull = true
	crate.UsableAfterPull = true
	id := r.reg.Add(crate)

	pull := NewPull(r.config("pull"))
	r.use(pull)
	pull.Activate(id)
	if r.runUntil(300, func() bool { return !pull.Running() }) < 0 {
		t.Fatalf("pull never finished")
	}
	if r.runUntil(60, r.hook.IsIdle) < 0 {
		t.Fatalf("hook never returned")
	}
	if !pull.CoolingDown() || pull.Activate(id) {
		t.Fatalf("activation allowed during cooldown")
	}
	r.runUntil(60, func() bool { return false })
	if !pull.Activate(id) {
		t.Fatalf("activation refused after cooldown")
	}
}

// refused checks that a refused activation left no trace on the hook, the
// player or the ability.
func refused(t *testing.T, r *rig, a Ability) {
	t.Helper()
	if a.Running() {
		t.Fatalf("refused activation started a routine")
	}
	if h := r.hook; !h.IsIdle() || h.IsActive() || h.Target() != 0 || !h.Parented() {
		t.Fatalf("refused activation touched the hook: state=%s active=%v target=%d", h.State(), h.IsActive(), h.Target())
	}
	if r.hook.Setting != (hook.Setting{}) {
		t.Fatalf("refused activation handed over its setting")
	}
	if r.player.blocked {
		t.Fatalf("refused activation blocked the player")
	}
	if c, ok := a.(interface{ CoolingDown() bool }); ok && c.CoolingDown() {
		t.Fatalf("refused activation started the cooldown")
	}
}

func TestActivateRefusesTargetTooClose(t *testing.T) {
	r := newRig(cp.Vector{})
	// the player's center is (0,-1), about 3.2 from the crate
	crate := r.crate(cp.Vector{X: 3})
	crate.CanPull = true
	id := r.reg.Add(crate)

	pull := NewPull(r.config("pull"))
	r.use(pull)
	if pull.Activate(id) {
		t.Fatalf("pull activated on a target inside MinTravelDistance")
	}
	refused(t, r, pull)

	r.runUntil(30, func() bool { return false })
	refused(t, r, pull)
	if crate.Body().Velocity().LengthSq() != 0 {
		t.Fatalf("refused pull moved the crate")
	}
}

func TestActivateRefusesBlockedPath(t *testing.T) {
	r := newRig(cp.Vector{X: -4})
	id := r.reg.Add(hookable.NewBase("bar", hookable.KindSwing, nil, cp.Vector{Y: -5}))
	swing := NewSwing(r.config("swing"))
	r.use(swing)

	r.caster.hit = hook.CastHit{Hit: true, Point: cp.Vector{X: -2, Y: -3}}
	if swing.Activate(id) {
		t.Fatalf("swing activated through an obstacle")
	}
	refused(t, r, swing)

	r.caster.hit = hook.CastHit{}
	if !swing.Activate(id) {
		t.Fatalf("swing refused once the path cleared")
	}
}

func TestAbilityAbortsWhenGateResets(t *testing.T) {
	r := newRig(cp.Vector{})
	crate := r.crate(cp.Vector{X: 10})
	crate.CanPull = true
	id := r.reg.Add(crate)

	pull := NewPull(r.config("pull"))
	r.use(pull)
	if !pull.Activate(id) {
		t.Fatalf("pull refused")
	}
	// something moves in the way during the wind-up
	r.caster.hit = hook.CastHit{Hit: true}
	if r.runUntil(60, func() bool { return !pull.Running() }) < 0 {
		t.Fatalf("pull kept waiting on a hook the gate reset")
	}
	if r.player.blocked || !r.hook.IsIdle() || r.hook.IsActive() {
		t.Fatalf("abort left blocked=%v state=%s active=%v", r.player.blocked, r.hook.State(), r.hook.IsActive())
	}
	if crate.Body().Velocity().LengthSq() != 0 {
		t.Fatalf("aborted pull moved the crate")
	}
}

func TestCancelResetsHook(t *testing.T) {
	r := newRig(cp.Vector{})
	crate := r.crate(cp.Vector{X: 15})
	crate.CanPull = true
	id := r.reg.Add(crate)

	pull := NewPull(r.config("pull"))
	r.use(pull)
	pull.Activate(id)
	if r.runUntil(60, r.hook.IsDeployed) < 0 {
		t.Fatalf("hook never deployed")
	}
	pull.Cancel()
	if !r.hook.IsIdle() || !r.hook.Parented() {
		t.Fatalf("cancel left the hook %s", r.hook.State())
	}
	if r.runUntil(30, func() bool { return !pull.Running() }) < 0 {
		t.Fatalf("routine survived the cancel")
	}
	if r.player.blocked {
		t.Fatalf("player left blocked")
	}
}

func TestSwingLaunchesPlayer(t *testing.T) {
	r := newRig(cp.Vector{X: -4})
	id := r.reg.Add(hookable.NewBase("bar", hookable.KindSwing, nil, cp.Vector{Y: -5}))

	swing := NewSwing(r.config("swing"))
	r.use(swing)
	if !swing.Activate(id) {
		t.Fatalf("swing refused")
	}
	if r.runUntil(120, r.hook.IsSwinging) < 0 {
		t.Fatalf("never started swinging, state %s", r.hook.State())
	}
	if !r.player.blocked || r.player.movement != hook.MovementFlying {
		t.Fatalf("swinging player should be blocked and flying")
	}
	if r.runUntil(600, func() bool { return !swing.Running() }) < 0 {
		t.Fatalf("swing never finished")
	}
	if len(r.player.launches) != 1 {
		t.Fatalf("expected one launch, got %v", r.player.launches)
	}
	if got := r.player.launches[0].Length(); math.Abs(got-10) > 1e-6 {
		t.Fatalf("launch speed %.3f, want 10", got)
	}
	if r.player.blocked || r.player.movement != hook.MovementFalling {
		t.Fatalf("swing end left blocked=%v movement=%s", r.player.blocked, r.player.movement)
	}
}

func TestSwingAbortsWithoutAttach(t *testing.T) {
	r := newRig(cp.Vector{X: -4})
	bar := hookable.NewBase("bar", hookable.KindSwing, nil, cp.Vector{Y: -5})
	id := r.reg.Add(bar)

	swing := NewSwing(r.config("swing"))
	r.use(swing)
	swing.Activate(id)
	if r.runUntil(60, r.hook.IsDeployed) < 0 {
		t.Fatalf("hook never deployed")
	}
	r.reg.Remove(id)
	if r.runUntil(120, func() bool { return !swing.Running() }) < 0 {
		t.Fatalf("swing never gave up")
	}
	if len(r.player.launches) != 0 || r.player.blocked {
		t.Fatalf("failed swing launched or kept the player blocked")
	}
}

func TestSpinThrowsTarget(t *testing.T) {
	r := newRig(cp.Vector{})
	crate := r.crate(cp.Vector{X: 10})
	crate.CanThrow = true
	id := r.reg.Add(crate)

	spin := NewSpin(r.config("spin"))
	spin.Spins = 1
	spin.SpinTime = 0.5
	carried := 0
	spin.OnCarry = func(c *hookable.Combat) { carried++ }
	r.use(spin)
	if !spin.Activate(id) {
		t.Fatalf("spin refused")
	}

	center := cp.Vector{Y: -1}
	maxOff := 0.0
	frames := r.runUntil(300, func() bool {
		if carried > 0 && !crate.Thrown() {
			d := crate.Body().Position().Distance(center)
			maxOff = math.Max(maxOff, math.Abs(d-5))
		}
		return !spin.Running()
	})
	if frames < 0 {
		t.Fatalf("spin never finished, hook %s", r.hook.State())
	}
	if carried != 1 {
		t.Fatalf("OnCarry ran %d times", carried)
	}
	if maxOff > 1e-6 {
		t.Fatalf("carried crate left the spin radius by %.4f", maxOff)
	}
	if !crate.Thrown() || !crate.Destroyed() {
		t.Fatalf("crate was not thrown")
	}
	if v := crate.Body().Velocity().Length(); math.Abs(v-5) > 1e-6 {
		t.Fatalf("throw speed %.3f, want 5", v)
	}
	if r.player.blocked || r.player.rotation != hook.RotationOrientToMovement {
		t.Fatalf("spin end left blocked=%v rotation=%d", r.player.blocked, r.player.rotation)
	}
	if r.runUntil(60, r.hook.IsIdle) < 0 {
		t.Fatalf("hook never detached after the throw")
	}
}

func TestToPointTowsPlayer(t *testing.T) {
	r := newRig(cp.Vector{})
	ledge := hookable.NewToPoint("ledge", r.space.AddShape(cp.NewBox2(r.space.StaticBody, cp.BB{L: 6, B: -8, R: 12, T: -4}, 0)), cp.Vector{X: 6, Y: -8})
	id := r.reg.Add(ledge)

	tp := NewToPoint(r.config("to_point"))
	r.use(tp)
	if !tp.Activate(id) {
		t.Fatalf("to-point refused")
	}
	want := cp.Vector{X: 6, Y: -6}
	if wps := tp.Waypoints(); len(wps) == 0 || wps[len(wps)-1] != want {
		t.Fatalf("waypoints %v, want to end at %v", wps, want)
	}
	if r.runUntil(120, r.hook.Towing) < 0 {
		t.Fatalf("tow never started, state %s", r.hook.State())
	}
	if !r.player.blocked {
		t.Fatalf("towed player should be blocked")
	}
	if r.runUntil(300, r.hook.IsIdle) < 0 {
		t.Fatalf("hook never returned after the tow")
	}
	if d := r.player.pos.Distance(want); d > 0.25 {
		t.Fatalf("player ended at %v, %.3f from the ledge", r.player.pos, d)
	}
	if r.player.blocked {
		t.Fatalf("player still blocked after the tow")
	}
}

func TestToPointNeedsLedgeAbove(t *testing.T) {
	r := newRig(cp.Vector{})
	ledge := hookable.NewToPoint("pit", nil, cp.Vector{X: 6, Y: 8})
	id := r.reg.Add(ledge)
	if NewToPoint(r.config("to_point")).Activate(id) {
		t.Fatalf("activated on a ledge below the player")
	}
}

const detachScript = `
react := func(hook) {
	if hook.state == "attach" && hook.kind == "anchor" {
		hook.block()
		hook.detach(0.1)
	}
}
`

func TestScriptedReaction(t *testing.T) {
	r := newRig(cp.Vector{})
	id := r.reg.Add(hookable.NewBase("post", hookable.KindAnchor, nil, cp.Vector{X: 10}))

	a, err := NewScripted(r.config("scripted"), []byte(detachScript))
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}
	r.use(a)
	if !a.Activate(id) {
		t.Fatalf("scripted refused")
	}
	if r.runUntil(120, r.hook.IsAttached) < 0 {
		t.Fatalf("hook never attached")
	}
	if r.runUntil(120, func() bool { return !a.Running() }) < 0 {
		t.Fatalf("scripted ability never finished, state %s", r.hook.State())
	}
	if !r.hook.IsIdle() || r.player.blocked {
		t.Fatalf("script reaction left state=%s blocked=%v", r.hook.State(), r.player.blocked)
	}
}

func TestScriptedCompileError(t *testing.T) {
	r := newRig(cp.Vector{})
	if _, err := NewScripted(r.config("broken"), []byte("react := func(hook {")); err == nil {
		t.Fatalf("expected a compile error")
	}
}
