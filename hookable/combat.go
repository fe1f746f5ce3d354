package hookable

import "github.com/jakecoffman/cp"

// pullLift keeps pulled objects from dragging along the ground.
const pullLift = 0.01

// Combat is a hookable object with a body that can be pulled, carried and
// thrown.
type Combat struct {
	*Base

	CanPull  bool
	CanThrow bool
	// UsableAfterPull keeps the object hookable once it has been pulled.
	UsableAfterPull bool
	DestroyAfterUse bool

	// OnDestroy runs when the object is used up.
	OnDestroy func()

	throwing   bool
	throwGoal  func() cp.Vector
	throwDir   cp.Vector
	throwSpeed float64
	destroyed  bool
}

func NewCombat(name string, shape *cp.Shape) *Combat {
	c := &Combat{Base: NewBase(name, KindCombat, shape, cp.Vector{})}
	if c.body != nil {
		c.Anchor = c.body.Position()
	}
	return c
}

// Pull throws the object toward target with a velocity change of force. It
// reports false when the object cannot be pulled.
func (c *Combat) Pull(target cp.Vector, force float64) bool {
	if !c.CanPull || c.body == nil {
		return false
	}
	c.moving = false

	pos := c.body.Position()
	dir := normalize(target.Sub(pos))
	if dir.LengthSq() == 0 {
		dir = up
	}
	c.body.SetPosition(pos.Add(up.Mult(pullLift)))
	c.body.SetVelocityVector(c.body.Velocity().Add(dir.Add(up.Mult(pullLift)).Mult(force)))

	if c.DestroyAfterUse {
		c.destroy()
	} else {
		c.SetHookable(c.UsableAfterPull)
	}
	return true
}

// Throw sends the object at speed toward goal, or along dir when goal is
// nil. Thrown objects are used up.
func (c *Combat) Throw(goal func() cp.Vector, dir cp.Vector, speed float64) {
	if !c.CanThrow || c.body == nil {
		return
	}
	if goal == nil && dir.LengthSq() == 0 {
		return
	}
	c.moving = false
	c.throwing = true
	c.throwGoal = goal
	c.throwDir = normalize(dir)
	c.throwSpeed = speed
	c.destroy()
}

// Thrown reports whether the object is in flight after a Throw.
func (c *Combat) Thrown() bool { return c.throwing }

func (c *Combat) Destroyed() bool { return c.destroyed }

func (c *Combat) Update(dt float64) {
	c.Base.Update(dt)
	if !c.throwing || c.body == nil {
		return
	}

	pos := c.body.Position()
	var v cp.Vector
	if c.throwGoal != nil {
		goal := c.throwGoal()
		if goal.Distance(pos) <= c.throwSpeed*dt {
			c.throwing = false
			c.placeAt(goal)
			return
		}
		v = normalize(goal.Sub(pos)).Mult(c.throwSpeed)
	} else {
		v = c.throwDir.Mult(c.throwSpeed)
	}
	c.body.SetVelocityVector(v)
}

func (c *Combat) destroy() {
	c.SetHookable(false)
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.OnDestroy != nil {
		c.OnDestroy()
	}
}
