package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
)

// Character is a box body with a ground sensor, driven by the
// player and by the hook.
type Character struct {
	world       *World
	body        *cp.Body
	shape       *cp.Shape
	groundShape *cp.Shape

	width, height float64

	grounded       bool
	blocked        bool
	gravityEnabled bool
	movement       hook.MovementMode
	rotation       hook.RotationMode
}

// NewCharacter adds a width x height character standing with its feet on
// pos. It collides with everything but plain hook anchors.
func (w *World) NewCharacter(pos cp.Vector, width, height float64) *Character {
	c := &Character{
		world:          w,
		width:          width,
		height:         height,
		gravityEnabled: true,
		movement:       hook.MovementWalking,
	}

	body := cp.NewBody(1, math.Inf(1))
	c.body = body
	c.SetPosition(pos)
	body.SetAngle(0)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if !c.gravityActive() {
			gravity = cp.Vector{}
		}
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
	})

	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: LayerPlayer, Mask: cp.ALL_CATEGORIES &^ (LayerHook | LayerHookable)}
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(filter)

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypeGroundSensor)
	groundShape.SetFilter(filter)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.space.AddShape(groundShape)

	c.shape = shape
	c.groundShape = groundShape
	w.characters[groundShape] = c
	return c
}

func (c *Character) beginStep() {
	c.grounded = false
}

func (c *Character) gravityActive() bool {
	return c.gravityEnabled && c.movement != hook.MovementFlying
}

// Body returns the cp body.
func (c *Character) Body() *cp.Body { return c.body }

// Shape returns the main collision shape.
func (c *Character) Shape() *cp.Shape { return c.shape }

func (c *Character) Width() float64 { return c.width }

// Position is the character's feet.
func (c *Character) Position() cp.Vector { return c.body.Position().Add(c.feet()) }

func (c *Character) SetPosition(p cp.Vector) {
	c.body.SetPosition(p.Sub(c.feet()))
}

// Center is the middle of the collider.
func (c *Character) Center() cp.Vector { return c.body.Position() }

// feet runs from the body's center down to its feet.
func (c *Character) feet() cp.Vector {
	down := c.GravityDirection()
	if down.LengthSq() == 0 {
		down = cp.Vector{Y: 1}
	}
	return down.Mult(c.height * 0.5)
}

func (c *Character) Height() float64 { return c.height }

func (c *Character) Velocity() cp.Vector { return c.body.Velocity() }

func (c *Character) SetVelocity(v cp.Vector) {
	c.body.SetVelocityVector(v)
}

func (c *Character) GravityDirection() cp.Vector {
	return normalize(c.world.gravity)
}

func (c *Character) IsOnGround() bool { return c.grounded }

func (c *Character) Block() { c.blocked = true }

func (c *Character) Unblock() { c.blocked = false }

func (c *Character) IsBlocked() bool { return c.blocked }

func (c *Character) SetMovementMode(mode hook.MovementMode) {
	c.movement = mode
}

func (c *Character) MovementMode() hook.MovementMode { return c.movement }

func (c *Character) SetRotationMode(mode hook.RotationMode) {
	c.rotation = mode
}

func (c *Character) RotationMode() hook.RotationMode { return c.rotation }

func (c *Character) EnableGravity(enabled bool) {
	c.gravityEnabled = enabled
}

func (c *Character) GravityEnabled() bool { return c.gravityActive() }

// Launch replaces the velocity and leaves the ground.
func (c *Character) Launch(v cp.Vector) {
	c.grounded = false
	if c.movement == hook.MovementWalking {
		c.movement = hook.MovementFalling
	}
	c.body.SetVelocityVector(v)
}

// Move sets the horizontal speed unless input is blocked.
func (c *Character) Move(speed float64) {
	if c.blocked {
		return
	}
	v := c.body.Velocity()
	c.body.SetVelocity(speed, v.Y)
}

// Jump leaves the ground with the given speed. It reports false when input
// is blocked or the character is airborne.
func (c *Character) Jump(speed float64) bool {
	if c.blocked || !c.grounded {
		return false
	}
	v := c.body.Velocity()
	c.body.SetVelocity(v.X, -speed)
	c.grounded = false
	return true
}

// Settle returns a walking character after it lands.
func (c *Character) Settle() {
	if c.grounded && c.movement == hook.MovementFalling {
		c.movement = hook.MovementWalking
	}
}
