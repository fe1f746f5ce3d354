package hook

import "github.com/jakecoffman/cp"

// swingStopThreshold bounds 1 - cos of the angle between the current rope
// direction and the mirrored start direction.
const swingStopThreshold = 0.01

// Slow motion applied when a finished swing launches the player.
const (
	launchTimeScale    = 0.2
	launchTimeDuration = 0.3
)

// StartSwinging turns an attached hook into a pendulum around the anchor.
// It cancels a running tow.
func (h *GrapplingHook) StartSwinging() {
	if h.swinging || !h.IsAttached() || h.character == nil {
		return
	}
	anchor, ok := h.effectiveAnchor()
	if !ok {
		return
	}

	h.towTask.Cancel()
	h.towTask = nil

	h.character.Block()

	swinger := h.swingerPosition()
	up := h.up()
	reflectionPoint := anchor.Sub(up.Mult(anchor.Sub(swinger).Dot(up)))
	h.swingStartReflected = swinger.Add(reflectionPoint.Sub(swinger).Mult(2))

	h.character.SetRotationMode(RotationOrientToView)
	h.character.SetMovementMode(MovementFlying)
	h.swinging = true
	h.SwitchState(StateSwing, false)
}

// StopSwinging ends the swing, launching the player when the hook had
// attached this activation, and retracts.
func (h *GrapplingHook) StopSwinging() {
	h.stopSwinging(true)
}

func (h *GrapplingHook) stopSwinging(allowLaunch bool) {
	if !h.swinging {
		return
	}
	h.swinging = false

	if h.character != nil {
		h.character.Unblock()
		h.character.SetRotationMode(RotationOrientToMovement)
		h.character.SetMovementMode(MovementFalling)
	}

	h.DelayedDetach(0)
	if allowLaunch && h.wasAttachedBefore {
		if h.timeCtl != nil {
			h.timeCtl.RequestTimeScale(launchTimeScale, launchTimeDuration)
		}
		h.LaunchPlayer(h.lastVelocity)
	}
	h.wasAttachedBefore = false

	if h.IsSwinging() {
		h.SwitchState(StateRetract, true)
	}
}

// swingerPosition is the character's head, where the rope holds it.
func (h *GrapplingHook) swingerPosition() cp.Vector {
	if h.character == nil {
		return cp.Vector{}
	}
	return h.character.Position().Add(h.up().Mult(h.character.Height()))
}

// setStartingVelocity fixes the rope length and seeds the swing with a
// tangential push plus one tick of swing gravity.
func (h *GrapplingHook) setStartingVelocity() {
	if h.character == nil {
		return
	}
	anchor, _ := h.effectiveAnchor()
	toTarget := anchor.Sub(h.swingerPosition())
	if h.Setting.UseCurrentDistance {
		h.ropeLength = toTarget.Length()
	} else {
		h.ropeLength = h.Setting.MaxRopeLength
	}

	v := h.character.Velocity()
	gravity := normalize(h.character.GravityDirection()).Mult(h.tuning.SwingGravityScale)
	orth := normalize(v.Sub(project(v, toTarget))).Mult(h.tuning.ConstantSwingVelocity)
	h.lastVelocity = orth.Add(gravity.Mult(h.fixedDelta))
}

func (h *GrapplingHook) integrateSwing(dt float64) {
	if h.character == nil || h.character.IsOnGround() {
		h.stopSwinging(false)
		return
	}
	anchor, ok := h.effectiveAnchor()
	if !ok {
		h.stopSwinging(false)
		return
	}
	t := h.tuning

	v := h.lastVelocity
	toTarget := anchor.Sub(h.swingerPosition())
	currentDistance := toTarget.Length()
	dir := normalize(toTarget)

	springForce := -t.K * (h.ropeLength - currentDistance)
	springDamping := -t.Damping * v.Dot(dir)
	if currentDistance > h.Setting.MaxRopeLength {
		v = v.Add(dir.Mult((springForce + springDamping) * dt))
	}

	gravity := normalize(h.character.GravityDirection()).Mult(t.SwingGravityScale)
	v = v.Add(gravity.Mult(dt))

	orth := normalize(v.Sub(project(v, toTarget)))
	v = v.Add(orth.Mult(t.ConstantSwingVelocity))

	if v.Length() > t.MaxSwingVelocity {
		v = normalize(v).Mult(t.MaxSwingVelocity)
	}

	mirrored := normalize(anchor.Sub(h.swingStartReflected))
	inverseDot := 1 - dir.Dot(mirrored)
	if inverseDot > 0 && inverseDot <= swingStopThreshold {
		h.stopSwinging(true)
		return
	}

	h.lastVelocity = v
	h.character.SetVelocity(v)
}
