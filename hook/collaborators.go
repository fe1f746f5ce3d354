package hook

import "github.com/jakecoffman/cp"

// TargetID is a non-owning handle to a hookable target. Zero means none.
type TargetID uint64

// Target is anything the hook can attach to.
type Target interface {
	// AnchorPosition is the world point the hook attaches to.
	AnchorPosition() cp.Vector
	// IsAnchorRelative reports whether the anchor is computed relative to the
	// player. Relative anchors are snapshotted once in SetTarget.
	IsAnchorRelative() bool
	IsHookable() bool
	// ForcedMovement reports whether the target is busy being moved.
	ForcedMovement() bool
}

// Targets resolves handles to live targets. A target that has been removed
// simply stops resolving.
type Targets interface {
	Target(id TargetID) (Target, bool)
}

// MovementMode mirrors the character controller's locomotion modes.
type MovementMode int

const (
	MovementWalking MovementMode = iota
	MovementFalling
	// MovementFlying suppresses the controller's own gravity.
	MovementFlying
	MovementCustom
)

func (m MovementMode) String() string {
	switch m {
	case MovementWalking:
		return "walking"
	case MovementFalling:
		return "falling"
	case MovementFlying:
		return "flying"
	case MovementCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// RotationMode mirrors the character controller's facing modes.
type RotationMode int

const (
	RotationOrientToMovement RotationMode = iota
	RotationOrientToView
	RotationCustom
)

// Character is the player controller the hook drives. Exactly one routine
// holds Block at a time and is responsible for the matching Unblock.
//
// Position is the character's feet: the bottom of its collider along the
// gravity direction. The center sits Height/2 above it and the head, where
// the rope pulls during a swing, a full Height above.
type Character interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Height() float64
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	GravityDirection() cp.Vector
	IsOnGround() bool
	Block()
	Unblock()
	SetMovementMode(mode MovementMode)
	SetRotationMode(mode RotationMode)
	EnableGravity(enabled bool)
	// Launch hands the character an impulse-style velocity, releasing any
	// ground constraint first.
	Launch(v cp.Vector)
}

// CastHit is the first obstacle a shape cast ran into.
type CastHit struct {
	Hit   bool
	Point cp.Vector
	// Owner is the target the struck shape belongs to, if any.
	Owner TargetID
}

// PathCaster sweeps a circle of radius from one point to another against the
// layers in mask.
type PathCaster interface {
	ShapeCast(from, to cp.Vector, radius float64, mask uint) CastHit
}

// TimeController receives slow-motion requests.
type TimeController interface {
	RequestTimeScale(scale, seconds float64)
}
