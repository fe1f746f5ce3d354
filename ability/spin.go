package ability

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/task"
)

const spinDetachDelay = 0.5

// Spin hooks a combat object, swings it around the player and throws it.
type Spin struct {
	Base

	// Spins is the number of full turns made in SpinTime seconds.
	Spins    float64
	SpinTime float64
	// CounterClockwise reverses the spin direction on screen.
	CounterClockwise bool
	// ChangeDistance lets the object drift outward while spinning.
	ChangeDistance bool

	// ThrowAt, when set, picks the throw goal on release. A nil goal throws
	// along the spin tangent.
	ThrowAt func() (goal func() cp.Vector)
	// OnCarry runs once the object is held at the spin radius.
	OnCarry func(c *hookable.Combat)

	target   *hookable.Combat
	spun     bool
	dir      cp.Vector
	tangent  cp.Vector
	distance float64
}

func NewSpin(cfg Config) *Spin {
	return &Spin{Base: newBase(cfg), Spins: 2, SpinTime: 1}
}

func (s *Spin) Activate(id hook.TargetID) bool {
	target, ok := s.resolve(id)
	if !ok {
		return false
	}
	combat, ok := target.(*hookable.Combat)
	if !ok || !s.arm(id) {
		return false
	}
	s.target = combat
	s.spun = false
	endDistance := s.cfg.Player.Position().Distance(combat.AnchorPosition())

	h := s.cfg.Hook
	var seq *task.Sequence
	seq = task.Seq(
		task.Wait(s.cfg.AnimationTime),
		task.Do(s.fire),
		s.leftIdle(),
		guard(&seq, func() bool { return !h.IsIdle() }, s.finish),
		s.whileDeployed(),
		guard(&seq, h.IsAttached, s.finish),
		task.Wait(beat),
		task.Do(s.pullIn),
		task.While(combat.ForcedMovement),
		task.Do(func() {
			if s.OnCarry != nil {
				s.OnCarry(combat)
			}
			s.block()
			s.spun = true
		}),
		&spinRoutine{spin: s, endDistance: endDistance},
		task.Do(s.finish),
	)
	s.start(seq, s.finish)
	return true
}

// pullIn moves the object to the spin radius at the player's chest height.
func (s *Spin) pullIn() {
	s.cfg.Player.SetRotationMode(hook.RotationCustom)
	s.distance = s.cfg.Hook.Setting.MinTravelDistance

	s.dir = normalize(s.target.AnchorPosition().Sub(s.cfg.Player.Position()))
	if s.dir.LengthSq() == 0 {
		s.dir = cp.Vector{X: 1}
	}
	s.target.MoveTo(s.spinPoint(), beat)
}

// spinPoint is the carried object's place on the circle around the player.
func (s *Spin) spinPoint() cp.Vector {
	player := s.cfg.Player
	center := player.Position().Add(upOf(player).Mult(player.Height() * 0.5))
	return center.Add(s.dir.Mult(s.distance))
}

type spinRoutine struct {
	spin        *Spin
	endDistance float64
	elapsed     float64
}

func (r *spinRoutine) Step(dt float64) bool {
	s := r.spin
	if !s.cfg.Hook.IsAttached() || r.elapsed >= s.SpinTime || s.SpinTime <= 0 {
		return true
	}
	r.elapsed += dt

	sign := 1.0
	if s.CounterClockwise {
		sign = -1
	}
	rate := s.Spins * 2 * math.Pi / s.SpinTime * sign

	if s.ChangeDistance && s.distance < r.endDistance {
		step := (s.cfg.Hook.Setting.MaxTravelDistance - s.distance) / s.SpinTime
		s.distance = math.Min(s.distance+step*dt, r.endDistance)
	}

	s.dir = s.dir.Rotate(cp.ForAngle(rate * dt))
	s.tangent = s.dir.Perp().Mult(sign)
	s.target.MoveTo(s.spinPoint(), 0)
	return false
}

func (s *Spin) finish() {
	if s.spun {
		s.spun = false
		s.throw()
	}
	h := s.cfg.Hook
	if h.IsAttached() {
		h.DelayedDetach(spinDetachDelay)
	}
	s.startCooldown()
	s.unblock()
	s.cfg.Player.SetRotationMode(hook.RotationOrientToMovement)
}

func (s *Spin) throw() {
	var goal func() cp.Vector
	if s.ThrowAt != nil {
		goal = s.ThrowAt()
	}
	s.target.Throw(goal, s.tangent, s.cfg.Hook.Setting.ThrowSpeed)
}

func upOf(c hook.Character) cp.Vector {
	up := normalize(c.GravityDirection()).Neg()
	if up.LengthSq() == 0 {
		return cp.Vector{Y: -1}
	}
	return up
}

func normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}
