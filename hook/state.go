package hook

// State identifies which hook state variant is active.
type State int

const (
	StateIdle State = iota
	StateDeploy
	StateAttach
	StateRetract
	StateSwing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDeploy:
		return "deploy"
	case StateAttach:
		return "attach"
	case StateRetract:
		return "retract"
	case StateSwing:
		return "swing"
	default:
		return "unknown"
	}
}

// hookState is one variant of the hook state machine. Update only runs while
// the hook is active.
type hookState interface {
	Name() string
	Kind() State
	Enter(h *GrapplingHook)
	Update(h *GrapplingHook)
	Exit(h *GrapplingHook)
}

// Hook state singletons (avoid allocations on transitions).
var (
	hookStateIdle    hookState = &hookIdleState{}
	hookStateDeploy  hookState = &hookDeployState{}
	hookStateAttach  hookState = &hookAttachState{}
	hookStateRetract hookState = &hookRetractState{}
	hookStateSwing   hookState = &hookSwingState{}
)

func stateFor(s State) hookState {
	switch s {
	case StateDeploy:
		return hookStateDeploy
	case StateAttach:
		return hookStateAttach
	case StateRetract:
		return hookStateRetract
	case StateSwing:
		return hookStateSwing
	default:
		return hookStateIdle
	}
}

type hookIdleState struct{}

type hookDeployState struct{}

type hookAttachState struct{}

type hookRetractState struct{}

type hookSwingState struct{}

func (hookIdleState) Name() string           { return "idle" }
func (hookIdleState) Kind() State            { return StateIdle }
func (hookIdleState) Enter(h *GrapplingHook) {}
func (hookIdleState) Exit(h *GrapplingHook)  {}
func (hookIdleState) Update(h *GrapplingHook) {
	// activation gate
	if !h.IsPathClear() || !h.HasMinDistance() {
		h.ResetHook()
		return
	}
	h.SwitchState(StateDeploy, false)
}

func (hookDeployState) Name() string { return "deploy" }
func (hookDeployState) Kind() State  { return StateDeploy }
func (hookDeployState) Enter(h *GrapplingHook) {
	h.InitialPlacement()
	if !h.Deploy() {
		h.ResetHook()
	}
}
func (hookDeployState) Exit(h *GrapplingHook) {
	h.stopDeploy()
}
func (hookDeployState) Update(h *GrapplingHook) {
	if _, ok := h.currentTarget(); !ok {
		h.wasAttachedBefore = false
		h.SwitchState(StateRetract, false)
		return
	}
	if h.hitTarget == 0 && h.ReachedMaxDistance() {
		h.wasAttachedBefore = false
		h.SwitchState(StateRetract, false)
		return
	}
	if h.hitTarget == 0 {
		return
	}
	if !h.HitCorrectTarget() {
		h.wasAttachedBefore = false
		h.SwitchState(StateRetract, false)
		return
	}
	h.wasAttachedBefore = true
	h.SwitchState(StateAttach, false)
}

func (hookAttachState) Name() string            { return "attach" }
func (hookAttachState) Kind() State             { return StateAttach }
func (hookAttachState) Enter(h *GrapplingHook)  {}
func (hookAttachState) Exit(h *GrapplingHook)   {}
func (hookAttachState) Update(h *GrapplingHook) {}

func (hookRetractState) Name() string { return "retract" }
func (hookRetractState) Kind() State  { return StateRetract }
func (hookRetractState) Enter(h *GrapplingHook) {
	h.Retract()
}
func (hookRetractState) Exit(h *GrapplingHook)   {}
func (hookRetractState) Update(h *GrapplingHook) {}

func (hookSwingState) Name() string { return "swing" }
func (hookSwingState) Kind() State  { return StateSwing }
func (hookSwingState) Enter(h *GrapplingHook) {
	h.setStartingVelocity()
}
func (hookSwingState) Exit(h *GrapplingHook)   {}
func (hookSwingState) Update(h *GrapplingHook) {}
