package hook

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func swingRig(t *testing.T) (*rig, cp.Vector) {
	t.Helper()
	r := newRig(cp.Vector{X: -4})
	anchor := cp.Vector{Y: -5}
	r.targets[1] = &fakeTarget{anchor: anchor}
	r.attachTo(t, 1)
	r.hook.StartSwinging()
	if !r.hook.IsSwinging() {
		t.Fatalf("expected swinging, got %s", r.hook.State())
	}
	return r, anchor
}

func TestStartSwingingSetsUpPendulum(t *testing.T) {
	r, anchor := swingRig(t)
	h := r.hook

	// the rope holds the head at (-4,-1)
	if !near(h.SwingStartReflected(), cp.Vector{X: 4, Y: -1}, 1e-9) {
		t.Fatalf("expected reflected point (4,-1), got %v", h.SwingStartReflected())
	}
	if want := anchor.Distance(cp.Vector{X: -4, Y: -1}); math.Abs(h.RopeLength()-want) > 1e-9 {
		t.Fatalf("expected rope length %.3f, got %.3f", want, h.RopeLength())
	}
	if !r.char.blocked || r.char.movement != MovementFlying || r.char.rotation != RotationOrientToView {
		t.Fatalf("character not set up for swinging: blocked=%v movement=%s", r.char.blocked, r.char.movement)
	}
	// starting at rest only the swing gravity tick remains
	if v := h.LastVelocity(); !near(v, cp.Vector{Y: 20 * dt}, 1e-9) {
		t.Fatalf("unexpected starting velocity %v", v)
	}
}

func TestStartSwingingRequiresAttach(t *testing.T) {
	r := newRig(cp.Vector{X: -4})
	r.targets[1] = &fakeTarget{anchor: cp.Vector{Y: -5}}
	r.hook.SetTarget(1)
	r.hook.StartSwinging()
	if r.hook.IsSwinging() || r.char.blocked {
		t.Fatalf("swing started without an attached hook")
	}
}

func TestSwingStopsAtMirroredElevation(t *testing.T) {
	r, anchor := swingRig(t)
	h := r.hook
	mirrored := normalize(anchor.Sub(h.SwingStartReflected()))

	idealTick, stopTick := -1, -1
	for tick := 1; tick <= 600 && stopTick < 0; tick++ {
		dir := normalize(anchor.Sub(r.char.head()))
		if inv := 1 - dir.Dot(mirrored); idealTick < 0 && inv > 0 && inv <= 0.01 {
			idealTick = tick
		}
		r.frame()
		if !h.IsSwinging() {
			stopTick = tick
			break
		}
		if speed := r.char.vel.Length(); speed > 20+1e-9 {
			t.Fatalf("tick %d: swing speed %.3f above clamp", tick, speed)
		}
	}

	if idealTick < 0 || stopTick < 0 {
		t.Fatalf("swing never reached the mirrored point (ideal=%d stop=%d)", idealTick, stopTick)
	}
	if d := stopTick - idealTick; d < 0 || d > 1 {
		t.Fatalf("stopped at tick %d, crossing at tick %d", stopTick, idealTick)
	}

	if len(r.char.launches) != 1 {
		t.Fatalf("expected one launch, got %d", len(r.char.launches))
	}
	want := normalize(h.LastVelocity()).Mult(10)
	if !near(r.char.launches[0], want, 1e-9) {
		t.Fatalf("launch %v, want %v", r.char.launches[0], want)
	}
	if len(r.time.requests) != 1 || r.time.requests[0] != (timeRequest{0.2, 0.3}) {
		t.Fatalf("unexpected time scale requests %v", r.time.requests)
	}
	if h.WasAttachedBefore() {
		t.Fatalf("wasAttachedBefore should be consumed by the launch")
	}
	if !h.IsRetracting() && !h.IsIdle() {
		t.Fatalf("expected retract after swing, got %s", h.State())
	}
	if r.char.blocked || r.char.movement != MovementFalling || r.char.rotation != RotationOrientToMovement {
		t.Fatalf("character not restored after swing")
	}
}

func TestGroundedSwingStopNeverLaunches(t *testing.T) {
	r, _ := swingRig(t)
	h := r.hook
	r.frame()
	r.frame()

	r.char.grounded = true
	r.frame()

	if h.IsSwinging() {
		t.Fatalf("grounded swing kept running")
	}
	if len(r.char.launches) != 0 || len(r.time.requests) != 0 {
		t.Fatalf("grounded stop launched the player")
	}
	if h.WasAttachedBefore() {
		t.Fatalf("grounded stop should clear wasAttachedBefore")
	}
	if r.char.blocked || r.char.movement != MovementFalling {
		t.Fatalf("character not restored after grounded stop")
	}
	if r.runUntil(120, h.IsIdle) < 0 {
		t.Fatalf("hook never returned to idle")
	}
}

func TestStopSwingingLaunchesOnlyAfterAttach(t *testing.T) {
	cases := []struct {
		name     string
		attached bool
		launches int
	}{
		{"attached", true, 1},
		{"not_attached", false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, _ := swingRig(t)
			r.frame()
			r.hook.wasAttachedBefore = c.attached
			r.hook.StopSwinging()
			if len(r.char.launches) != c.launches {
				t.Fatalf("expected %d launches, got %d", c.launches, len(r.char.launches))
			}
			if r.hook.IsSwinging() {
				t.Fatalf("still swinging")
			}
		})
	}
}

func TestResetDuringSwing(t *testing.T) {
	r, _ := swingRig(t)
	h := r.hook
	r.frame()

	h.ResetHook()
	if !h.IsIdle() || h.IsActive() {
		t.Fatalf("expected inactive idle, got %s", h.State())
	}
	if len(r.char.launches) != 0 {
		t.Fatalf("reset launched the player")
	}
	if r.char.blocked || r.char.movement != MovementFalling {
		t.Fatalf("character not restored after reset")
	}
	h.ResetHook()
	if !h.IsIdle() || !h.Parented() {
		t.Fatalf("second reset changed state")
	}
}

func TestStartSwingingCancelsTow(t *testing.T) {
	r := newRig(cp.Vector{X: -4})
	r.targets[1] = &fakeTarget{anchor: cp.Vector{Y: -5}}
	h := r.hook
	r.attachTo(t, 1)
	h.MovePlayerThroughWaypoints([]cp.Vector{{X: -3}, {X: -2}})
	r.frame()
	if !h.Towing() {
		t.Fatalf("expected tow")
	}

	h.StartSwinging()
	if h.Towing() {
		t.Fatalf("swing did not cancel tow")
	}
	if r.char.gravityOff {
		t.Fatalf("tow cleanup did not restore gravity")
	}
	if !r.char.blocked || !h.IsSwinging() {
		t.Fatalf("expected swing to hold the character")
	}
}

func TestLaunchPlayerDefaultsTowardAnchor(t *testing.T) {
	r := newRig(cp.Vector{X: -4})
	r.targets[1] = &fakeTarget{anchor: cp.Vector{X: -4, Y: -15}}
	h := r.hook
	r.attachTo(t, 1)

	h.LaunchPlayer(cp.Vector{})
	if len(r.char.launches) != 1 || !near(r.char.launches[0], cp.Vector{Y: -10}, 1e-9) {
		t.Fatalf("unexpected launch %v", r.char.launches)
	}
	r.char.vel = cp.Vector{}

	frames := r.runUntil(120, func() bool { return !h.IsAttached() })
	if frames < 59 || frames > 62 {
		t.Fatalf("launch detached after %d frames, want about 60", frames)
	}
}

func TestRopeLengthMeasuredFromHead(t *testing.T) {
	r := newRig(cp.Vector{Y: -1})
	r.hook.Setting.MinTravelDistance = 1
	r.targets[1] = &fakeTarget{anchor: cp.Vector{Y: -5}}
	r.attachTo(t, 1)
	if r.char.pos != (cp.Vector{}) {
		t.Fatalf("feet moved to %v before the swing", r.char.pos)
	}

	r.hook.StartSwinging()
	if !r.hook.IsSwinging() {
		t.Fatalf("expected swinging, got %s", r.hook.State())
	}
	// feet at the origin, head at (0,-2)
	if got := r.hook.RopeLength(); math.Abs(got-3) > 1e-9 {
		t.Fatalf("rope length %.3f, want 3", got)
	}
	if !near(r.hook.SwingStartReflected(), cp.Vector{Y: -2}, 1e-9) {
		t.Fatalf("reflected point %v, want the head", r.hook.SwingStartReflected())
	}
}
