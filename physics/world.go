// Package physics adapts a jakecoffman/cp space to the hook's collaborators:
// the character body, the obstacle shape cast and the hook trigger sensing.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeGroundSensor
	collisionTypeSolid
)

// castSkin shrinks swept shapes so surfaces the caster already touches,
// like the ground under the character, do not count as hits.
const castSkin = 1.0

// World owns the cp space, the characters in it and the mapping from shapes
// to the hook targets they belong to.
type World struct {
	space         *cp.Space
	gravity       cp.Vector
	handlersReady bool

	characters map[*cp.Shape]*Character
	owners     map[*cp.Shape]hook.TargetID
}

// NewWorld creates a space with gravity pointing down the screen.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	g := cp.Vector{X: 0, Y: gravity}
	space.SetGravity(g)

	w := &World{
		space:      space,
		gravity:    g,
		characters: make(map[*cp.Shape]*Character),
		owners:     make(map[*cp.Shape]hook.TargetID),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying cp space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Gravity returns the world gravity vector.
func (w *World) Gravity() cp.Vector {
	return w.gravity
}

func filterFor(categories uint) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categories, Mask: cp.ALL_CATEGORIES}
}

func queryFilter(mask uint) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask}
}

// AddBox adds a static box in the given layers. bb uses screen coordinates,
// so B is the top edge and T the bottom one.
func (w *World) AddBox(bb cp.BB, layers uint) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filterFor(layers))
	w.space.AddShape(shape)
	return shape
}

// AddBounds encloses a width x height level with static segments.
func (w *World) AddBounds(width, height float64) []*cp.Shape {
	if width <= 0 || height <= 0 {
		return nil
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},          // left
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},  // right
	}

	shapes := make([]*cp.Shape, 0, len(segments))
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filterFor(LayerGround))
		w.space.AddShape(shape)
		shapes = append(shapes, shape)
	}
	return shapes
}

// AddCircleBody adds a dynamic circle, used for throwable hookables.
func (w *World) AddCircleBody(pos cp.Vector, radius, mass float64, layers uint) (*cp.Body, *cp.Shape) {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filterFor(layers))
	w.space.AddBody(body)
	w.space.AddShape(shape)
	return body, shape
}

// SetOwner records which hook target a shape belongs to.
func (w *World) SetOwner(shape *cp.Shape, id hook.TargetID) {
	if w == nil || shape == nil {
		return
	}
	if id == 0 {
		delete(w.owners, shape)
		return
	}
	w.owners[shape] = id
}

// Owner returns the hook target a shape belongs to.
func (w *World) Owner(shape *cp.Shape) (hook.TargetID, bool) {
	if w == nil || shape == nil {
		return 0, false
	}
	id, ok := w.owners[shape]
	return id, ok
}

// Remove takes a shape out of the space along with its body when the body is
// not the static one.
func (w *World) Remove(shape *cp.Shape) {
	if w == nil || shape == nil {
		return
	}
	body := shape.Body()
	w.space.RemoveShape(shape)
	delete(w.owners, shape)
	if body != nil && body != w.space.StaticBody {
		w.space.RemoveBody(body)
	}
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, c := range w.characters {
		c.beginStep()
	}
	w.space.Step(dt)
}

// ShapeCast sweeps a circle from one point to another and reports the first
// shape in mask it runs into.
func (w *World) ShapeCast(from, to cp.Vector, radius float64, mask uint) hook.CastHit {
	if w == nil || w.space == nil {
		return hook.CastHit{}
	}
	r := radius - castSkin
	if r < 0 {
		r = 0
	}

	var shape *cp.Shape
	var point cp.Vector
	if from == to {
		info := w.space.PointQueryNearest(from, r, queryFilter(mask))
		if info == nil || info.Shape == nil {
			return hook.CastHit{}
		}
		shape, point = info.Shape, info.Point
	} else {
		info := w.space.SegmentQueryFirst(from, to, r, queryFilter(mask))
		if info.Shape == nil {
			return hook.CastHit{}
		}
		shape, point = info.Shape, info.Point
	}

	owner, _ := w.Owner(shape)
	return hook.CastHit{Hit: true, Point: point, Owner: owner}
}

// OwnerAt returns the hook target whose shape in mask is nearest to p, within
// maxDistance.
func (w *World) OwnerAt(p cp.Vector, maxDistance float64, mask uint) (hook.TargetID, bool) {
	if w == nil || w.space == nil {
		return 0, false
	}
	info := w.space.PointQueryNearest(p, maxDistance, queryFilter(mask))
	if info == nil || info.Shape == nil {
		return 0, false
	}
	return w.Owner(info.Shape)
}

func (w *World) setupHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		c, okA := world.characters[shapeA]
		if !okA {
			var okB bool
			c, okB = world.characters[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// the sensor sits under the body, so ground contacts point down the screen
		if n.Dot(normalize(world.gravity)) <= 0.5 {
			return true
		}
		c.grounded = true
		return true
	}

	w.handlersReady = true
}

func normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}
