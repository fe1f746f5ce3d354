package hook

// InitialPlacement detaches the hook from its launcher and puts it on the
// rope start, ready to travel.
func (h *GrapplingHook) InitialPlacement() {
	h.parented = false
	h.pos = h.ropeStart()
}

// Deploy starts the travel toward the anchor. It reports false when a travel
// routine is already running or the hook still sits on the launcher.
func (h *GrapplingHook) Deploy() bool {
	if h.deployTask.Running() || h.retractTask.Running() || h.parented {
		return false
	}
	h.hitTarget = 0
	h.updateRope()
	h.deployTask = h.sched.Start(&deployTravel{h: h}, nil)
	return true
}

// Retract cancels any deploy and reels the hook back to the rope start. With
// AnimateRetracting off or no rope drawn the hook snaps back immediately.
func (h *GrapplingHook) Retract() {
	h.stopDeploy()
	if h.retractTask.Running() {
		return
	}
	h.retracting = true
	if !h.Setting.AnimateRetracting || len(h.rope) == 0 {
		h.finishRetract()
		return
	}
	h.retractTask = h.sched.Start(&retractTravel{h: h}, func() {
		h.retracting = false
		h.resetToParent()
	})
}

func (h *GrapplingHook) stopDeploy() {
	h.deployTask.Cancel()
	h.deployTask = nil
}

func (h *GrapplingHook) finishRetract() {
	h.retractTask = nil
	h.retracting = false
	h.active = false
	h.switchState(hookStateIdle, true)
	h.resetToParent()
}

// resetToParent puts the hook back on the launcher with its rest transform
// and hides the rope.
func (h *GrapplingHook) resetToParent() {
	h.parented = true
	h.localOffset = h.tuning.RestOffset
	h.localAngle = h.tuning.RestAngle
	h.followLauncher()
	h.clearRope()
}

type deployTravel struct {
	h *GrapplingHook
}

func (d *deployTravel) Step(dt float64) bool {
	h := d.h
	if h.hitTarget != 0 {
		h.deployTask = nil
		return true
	}
	anchor, ok := h.effectiveAnchor()
	if !ok {
		h.deployTask = nil
		return true
	}

	if dir := anchor.Sub(h.pos); dir.LengthSq() > 0 {
		h.angle = dir.ToAngle()
	}
	h.pos = moveTowards(h.pos, anchor, h.Setting.DeploySpeed*dt)
	h.updateRope()

	if h.pos == anchor {
		// a hook that lands on the anchor has struck its target
		h.OnHit(h.target)
		h.deployTask = nil
		return true
	}
	return false
}

type retractTravel struct {
	h *GrapplingHook
}

func (r *retractTravel) Step(dt float64) bool {
	h := r.h
	if !h.retracting || len(h.rope) == 0 || !h.Setting.AnimateRetracting {
		h.finishRetract()
		return true
	}

	end := h.ropeStart()
	h.pos = moveTowards(h.pos, end, h.Setting.RetractSpeed*dt)
	h.updateRope()

	if h.pos == end {
		h.finishRetract()
		return true
	}
	return false
}
