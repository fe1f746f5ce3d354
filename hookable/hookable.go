// Package hookable holds the objects the grappling hook can attach to and the
// registry that hands out their handles.
package hookable

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
)

// Kind tells abilities what a hookable is for.
type Kind int

const (
	KindAnchor Kind = iota
	KindSwing
	KindCombat
	KindToPoint
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindSwing:
		return "swing"
	case KindCombat:
		return "combat"
	case KindToPoint:
		return "to_point"
	default:
		return "unknown"
	}
}

var ErrUnknownKind = errors.New("hookable: unknown kind")

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	for k := KindAnchor; k <= KindToPoint; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

// Hookable is a hook target the registry can hold.
type Hookable interface {
	hook.Target
	Name() string
	Kind() Kind
	// Update advances scripted movement by dt seconds.
	Update(dt float64)
}

// Player is the view of the player a relative anchor needs. Position is the
// player's feet.
type Player interface {
	Position() cp.Vector
	Height() float64
}

// up is screen up.
var up = cp.Vector{Y: -1}

// Base is a hookable anchored on a cp shape. Without a dynamic body the anchor
// is the fixed Anchor point.
type Base struct {
	name string
	kind Kind

	shape *cp.Shape
	body  *cp.Body

	// Anchor is used when the hookable has no dynamic body.
	Anchor cp.Vector
	// AnchorOffset is added to a dynamic body's position.
	AnchorOffset cp.Vector

	// Relative anchors sit on the collider point closest to the player.
	Relative bool
	Player   Player
	// Aim, when set, steers relative anchors toward the aim direction.
	Aim func() cp.Vector

	disabled bool

	moving    bool
	next      cp.Vector
	moveSpeed float64
}

// NewBase creates a hookable on shape. A shape on a dynamic body makes the
// anchor follow the body.
func NewBase(name string, kind Kind, shape *cp.Shape, anchor cp.Vector) *Base {
	b := &Base{name: name, kind: kind, shape: shape, Anchor: anchor}
	if shape != nil {
		if body := shape.Body(); body != nil && body.GetType() == cp.BODY_DYNAMIC {
			b.body = body
		}
	}
	return b
}

func (b *Base) Name() string { return b.name }

func (b *Base) Kind() Kind { return b.kind }

// Shape returns the collider the hookable is anchored on.
func (b *Base) Shape() *cp.Shape { return b.shape }

// Body returns the dynamic body, or nil for static hookables.
func (b *Base) Body() *cp.Body { return b.body }

func (b *Base) IsAnchorRelative() bool { return b.Relative }

func (b *Base) IsHookable() bool { return !b.disabled }

// ForcedMovement reports whether a MoveTo is in progress.
func (b *Base) ForcedMovement() bool { return b.moving }

// SetHookable toggles whether the hook may target this object.
func (b *Base) SetHookable(on bool) { b.disabled = !on }

// Origin is the hookable's own position.
func (b *Base) Origin() cp.Vector {
	if b.body != nil {
		return b.body.Position()
	}
	if b.shape != nil {
		bb := b.shape.BB()
		return cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
	}
	return b.Anchor
}

func (b *Base) AnchorPosition() cp.Vector {
	if b.Relative && b.shape != nil && b.Player != nil {
		return b.relativePosition()
	}
	if b.body != nil {
		return b.body.Position().Add(b.AnchorOffset)
	}
	return b.Anchor
}

func (b *Base) relativePosition() cp.Vector {
	player := b.Player.Position().Add(up.Mult(b.Player.Height() * 0.5))
	closest := b.shape.PointQuery(player).Point
	if b.Aim == nil {
		return closest
	}
	aim := normalize(b.Aim())
	if aim.LengthSq() == 0 {
		return closest
	}
	if normalize(closest.Sub(player)).Dot(aim) > 0.9 {
		return closest
	}
	distance := closest.Distance(player)
	return b.shape.PointQuery(player.Add(aim.Mult(distance))).Point
}

// MoveTo carries the hookable to target over seconds. Only hookables with a
// body can move.
func (b *Base) MoveTo(target cp.Vector, seconds float64) {
	if b.body == nil {
		return
	}
	b.next = target
	dist := b.body.Position().Distance(target)
	if seconds <= 0 || dist == 0 {
		b.placeAt(target)
		b.moving = false
		return
	}
	b.moveSpeed = dist / seconds
	b.moving = true
}

func (b *Base) Update(dt float64) {
	if !b.moving || b.body == nil {
		return
	}
	pos := moveTowards(b.body.Position(), b.next, b.moveSpeed*dt)
	b.placeAt(pos)
	if pos == b.next {
		b.moving = false
	}
}

// placeAt teleports the body and drops its momentum.
func (b *Base) placeAt(p cp.Vector) {
	b.body.SetPosition(p)
	b.body.SetVelocityVector(cp.Vector{})
}

func normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

func moveTowards(current, target cp.Vector, maxDelta float64) cp.Vector {
	delta := target.Sub(current)
	dist := delta.Length()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(delta.Mult(maxDelta / dist))
}
