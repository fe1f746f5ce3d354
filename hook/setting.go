package hook

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// Setting is the per-activation configuration an ability hands to the hook.
// The hook only reads it.
type Setting struct {
	DeploySpeed  float64
	RetractSpeed float64
	// PullStrength is interpreted per behaviour: launch speed after a swing,
	// tow speed, pull force on targets.
	PullStrength      float64
	ThrowSpeed        float64
	MaxRopeLength     float64
	MinTravelDistance float64
	MaxTravelDistance float64
	AnimateRetracting bool
	// UseCurrentDistance fixes the swing rope length to the distance at swing
	// start instead of MaxRopeLength.
	UseCurrentDistance bool
	// ObstacleMask selects the layers that block IsPathClear.
	ObstacleMask uint
}

var ErrInvalidSetting = errors.New("hook: invalid setting")

// Validate rejects settings the travel routines cannot make progress with.
func (s Setting) Validate() error {
	switch {
	case s.DeploySpeed <= 0:
		return fmt.Errorf("%w: deploy speed %.2f", ErrInvalidSetting, s.DeploySpeed)
	case s.RetractSpeed <= 0:
		return fmt.Errorf("%w: retract speed %.2f", ErrInvalidSetting, s.RetractSpeed)
	case s.PullStrength <= 0:
		return fmt.Errorf("%w: pull strength %.2f", ErrInvalidSetting, s.PullStrength)
	case s.MaxTravelDistance <= 0:
		return fmt.Errorf("%w: max travel distance %.2f", ErrInvalidSetting, s.MaxTravelDistance)
	case s.MinTravelDistance > s.MaxTravelDistance:
		return fmt.Errorf("%w: min travel distance %.2f exceeds max %.2f", ErrInvalidSetting, s.MinTravelDistance, s.MaxTravelDistance)
	}
	return nil
}

// Tuning holds the swing integrator constants and the launcher rig. Unlike
// Setting it belongs to the hook itself and does not change per activation.
type Tuning struct {
	// K is the spring constant pulling the swinger back to the rope length.
	K       float64
	Damping float64
	// MaxSwingVelocity clamps the swing speed.
	MaxSwingVelocity float64
	// ConstantSwingVelocity is added along the tangent every physics tick.
	ConstantSwingVelocity float64
	// SwingGravityScale replaces the gravity the flying movement mode drops.
	SwingGravityScale float64

	// LaunchOffset places the rope start relative to the character position.
	LaunchOffset cp.Vector
	// RestOffset and RestAngle are the hook's local transform while it sits
	// on the launcher.
	RestOffset cp.Vector
	RestAngle  float64
	// RopeEndOffset is where the rope meets the hook, in hook-local space.
	RopeEndOffset cp.Vector

	// FixedDelta seeds the physics step used before the first FixedUpdate.
	FixedDelta float64
}

// DefaultTuning returns the values the demo level was tuned with.
func DefaultTuning() Tuning {
	return Tuning{
		K:                     40,
		Damping:               4,
		MaxSwingVelocity:      900,
		ConstantSwingVelocity: 12,
		SwingGravityScale:     1800,
		LaunchOffset:          cp.Vector{X: 0, Y: -24},
		RestOffset:            cp.Vector{X: 10, Y: 0},
		FixedDelta:            1.0 / 60.0,
	}
}
