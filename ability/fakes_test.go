package ability

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
)

const dt = 1.0 / 60.0

type fakePlayer struct {
	pos      cp.Vector
	vel      cp.Vector
	grounded bool

	blocked  bool
	rotation hook.RotationMode
	movement hook.MovementMode
	launches []cp.Vector
}

func (p *fakePlayer) Position() cp.Vector                 { return p.pos }
func (p *fakePlayer) SetPosition(v cp.Vector)             { p.pos = v }
func (p *fakePlayer) Height() float64                     { return 2 }
func (p *fakePlayer) Velocity() cp.Vector                 { return p.vel }
func (p *fakePlayer) SetVelocity(v cp.Vector)             { p.vel = v }
func (p *fakePlayer) GravityDirection() cp.Vector         { return cp.Vector{Y: 1} }
func (p *fakePlayer) IsOnGround() bool                    { return p.grounded }
func (p *fakePlayer) Block()                              { p.blocked = true }
func (p *fakePlayer) Unblock()                            { p.blocked = false }
func (p *fakePlayer) IsBlocked() bool                     { return p.blocked }
func (p *fakePlayer) SetMovementMode(m hook.MovementMode) { p.movement = m }
func (p *fakePlayer) SetRotationMode(m hook.RotationMode) { p.rotation = m }
func (p *fakePlayer) EnableGravity(bool)                  {}
func (p *fakePlayer) Launch(v cp.Vector) {
	p.vel = v
	p.launches = append(p.launches, v)
}

// fakeCaster reports hit for every sweep.
type fakeCaster struct {
	hit hook.CastHit
}

func (f *fakeCaster) ShapeCast(from, to cp.Vector, radius float64, mask uint) hook.CastHit {
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

func testSetting() hook.Setting {
	return hook.Setting{
		DeploySpeed:        50,
		RetractSpeed:       100,
		PullStrength:       10,
		ThrowSpeed:         5,
		MaxRopeLength:      6.5,
		MinTravelDistance:  5,
		MaxTravelDistance:  20,
		AnimateRetracting:  true,
		UseCurrentDistance: true,
	}
}

type rig struct {
	space  *cp.Space
	reg    *hookable.Registry
	player *fakePlayer
	caster *fakeCaster
	time   *fakeTime
	hook   *hook.GrapplingHook
	active []Ability
}

func newRig(player cp.Vector) *rig {
	r := &rig{
		space:  cp.NewSpace(),
		reg:    hookable.NewRegistry(),
		player: &fakePlayer{pos: player},
		caster: &fakeCaster{},
		time:   &fakeTime{},
	}
	r.hook = hook.New(hook.Options{
		Character: r.player,
		Targets:   r.reg,
		Caster:    r.caster,
		Time:      r.time,
		Tuning: hook.Tuning{
			K:                     40,
			Damping:               4,
			MaxSwingVelocity:      20,
			ConstantSwingVelocity: 2,
			SwingGravityScale:     20,
			RestOffset:            cp.Vector{X: 1},
			FixedDelta:            dt,
		},
	})
	return r
}

func (r *rig) config(name string) Config {
	return Config{
		Name:          name,
		Hook:          r.hook,
		Player:        r.player,
		Hookable:      r.reg,
		Time:          r.time,
		Setting:       testSetting(),
		Cooldown:      1,
		AnimationTime: 0.1,
	}
}

func (r *rig) use(a Ability) Ability {
	r.active = append(r.active, a)
	return a
}

func (r *rig) crate(pos cp.Vector) *hookable.Combat {
	body := r.space.AddBody(cp.NewBody(1, cp.MomentForBox(1, 1, 1)))
	body.SetPosition(pos)
	return hookable.NewCombat("crate", r.space.AddShape(cp.NewBox(body, 1, 1, 0)))
}

func (r *rig) frame() {
	r.hook.FixedUpdate(dt)
	r.player.pos = r.player.pos.Add(r.player.vel.Mult(dt))
	r.hook.Update(dt)
	for _, a := range r.active {
		a.Update(dt)
	}
	r.reg.Update(dt)
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
