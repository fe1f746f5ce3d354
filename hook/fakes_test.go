package hook

import "github.com/jakecoffman/cp"

const dt = 1.0 / 60.0

type fakeTarget struct {
	anchor     cp.Vector
	relative   bool
	unhookable bool
	forced     bool
}

func (t *fakeTarget) AnchorPosition() cp.Vector { return t.anchor }
func (t *fakeTarget) IsAnchorRelative() bool    { return t.relative }
func (t *fakeTarget) IsHookable() bool          { return !t.unhookable }
func (t *fakeTarget) ForcedMovement() bool      { return t.forced }

type fakeTargets map[TargetID]*fakeTarget

func (f fakeTargets) Target(id TargetID) (Target, bool) {
	t, ok := f[id]
	if !ok {
		return nil, false
	}
	return t, true
}

type fakeCharacter struct {
	pos      cp.Vector
	vel      cp.Vector
	height   float64
	gravity  cp.Vector
	grounded bool

	blocked    bool
	movement   MovementMode
	rotation   RotationMode
	gravityOff bool
	launches   []cp.Vector
}

// newFakeCharacter stands a character of height 2 with its center on center,
// so its feet are at center+(0,1) and its head at center-(0,1).
func newFakeCharacter(center cp.Vector) *fakeCharacter {
	return &fakeCharacter{pos: center.Add(cp.Vector{Y: 1}), height: 2, gravity: cp.Vector{Y: 1}, movement: MovementWalking}
}

func (c *fakeCharacter) head() cp.Vector {
	return c.pos.Add(cp.Vector{Y: -c.height})
}

func (c *fakeCharacter) Position() cp.Vector         { return c.pos }
func (c *fakeCharacter) SetPosition(p cp.Vector)     { c.pos = p }
func (c *fakeCharacter) Height() float64             { return c.height }
func (c *fakeCharacter) Velocity() cp.Vector         { return c.vel }
func (c *fakeCharacter) SetVelocity(v cp.Vector)     { c.vel = v }
func (c *fakeCharacter) GravityDirection() cp.Vector { return c.gravity }
func (c *fakeCharacter) IsOnGround() bool            { return c.grounded }
func (c *fakeCharacter) Block()                      { c.blocked = true }
func (c *fakeCharacter) Unblock()                    { c.blocked = false }
func (c *fakeCharacter) SetMovementMode(m MovementMode) {
	c.movement = m
}
func (c *fakeCharacter) SetRotationMode(m RotationMode) {
	c.rotation = m
}
func (c *fakeCharacter) EnableGravity(enabled bool) { c.gravityOff = !enabled }
func (c *fakeCharacter) Launch(v cp.Vector) {
	c.vel = v
	c.launches = append(c.launches, v)
}

// integrate moves the character by its velocity like a physics step would.
func (c *fakeCharacter) integrate(step float64) {
	c.pos = c.pos.Add(c.vel.Mult(step))
}

type castCall struct {
	from, to cp.Vector
	radius   float64
	mask     uint
}

type fakeCaster struct {
	hit   CastHit
	calls []castCall
}

func (f *fakeCaster) ShapeCast(from, to cp.Vector, radius float64, mask uint) CastHit {
	f.calls = append(f.calls, castCall{from: from, to: to, radius: radius, mask: mask})
	return f.hit
}

type timeRequest struct {
	scale, seconds float64
}

type fakeTime struct {
	requests []timeRequest
}

func (f *fakeTime) RequestTimeScale(scale, seconds float64) {
	f.requests = append(f.requests, timeRequest{scale, seconds})
}

type rig struct {
	hook    *GrapplingHook
	char    *fakeCharacter
	targets fakeTargets
	caster  *fakeCaster
	time    *fakeTime
}

func testSetting() Setting {
	return Setting{
		DeploySpeed:        50,
		RetractSpeed:       100,
		PullStrength:       10,
		ThrowSpeed:         5,
		MaxRopeLength:      6.5,
		MinTravelDistance:  5,
		MaxTravelDistance:  20,
		AnimateRetracting:  true,
		UseCurrentDistance: true,
		ObstacleMask:       1,
	}
}

func testTuning() Tuning {
	return Tuning{
		K:                     40,
		Damping:               4,
		MaxSwingVelocity:      20,
		ConstantSwingVelocity: 2,
		SwingGravityScale:     20,
		RestOffset:            cp.Vector{X: 1},
		RestAngle:             0.5,
		FixedDelta:            dt,
	}
}

// newRig builds a hook for a character centred on player.
func newRig(player cp.Vector) *rig {
	r := &rig{
		char:    newFakeCharacter(player),
		targets: fakeTargets{},
		caster:  &fakeCaster{},
		time:    &fakeTime{},
	}
	r.hook = New(Options{
		Character: r.char,
		Targets:   r.targets,
		Caster:    r.caster,
		Time:      r.time,
		Tuning:    testTuning(),
		Setting:   testSetting(),
	})
	return r
}

// frame runs one host tick: physics, integration, then the frame update.
func (r *rig) frame() {
	r.hook.FixedUpdate(dt)
	r.char.integrate(dt)
	r.hook.Update(dt)
}

// runUntil steps frames until cond holds and returns the frame count, or -1.
func (r *rig) runUntil(max int, cond func() bool) int {
	for i := 1; i <= max; i++ {
		r.frame()
		if cond() {
			return i
		}
	}
	return -1
}

// activate targets id and switches the hook on.
func (r *rig) activate(id TargetID) bool {
	if !r.hook.SetTarget(id) {
		return false
	}
	r.hook.ToggleGrapplingHook(true)
	return true
}
