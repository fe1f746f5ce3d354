// Package scene assembles a playable hook sandbox from the prefabs: the cp
// world and level geometry, the player body, the hook with its sensor, the
// hookables and the ability loadout. The demo and cmd/swingtrace both drive
// a Scene one frame at a time.
package scene

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/ability"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/physics"
	"github.com/milk9111/grapplinghook/prefabs"
	"github.com/milk9111/grapplinghook/telemetry"
	"github.com/milk9111/grapplinghook/timescale"
)

// debrisLifetime is how long a used-up combat object stays in the world.
const debrisLifetime = 1.5

type Scene struct {
	Level    *prefabs.LevelSpec
	HookSpec *prefabs.HookSpec

	World     *physics.World
	Player    *physics.Character
	Hook      *hook.GrapplingHook
	Sensor    *physics.HookSensor
	Hookables *hookable.Registry
	Abilities *ability.Set
	Time      *timescale.Manager

	Frame int
	// Elapsed is real time since the scene was built.
	Elapsed float64

	abilitySpecs *prefabs.AbilitiesSpec
	names        map[string]hook.TargetID
	shapes       map[hook.TargetID]*cp.Shape
	doomed       map[hook.TargetID]float64
}

// Load builds the scene from the level, hook and ability prefabs.
func Load() (*Scene, error) {
	level, err := prefabs.LoadLevelSpec()
	if err != nil {
		return nil, err
	}
	hookSpec, err := prefabs.LoadHookSpec()
	if err != nil {
		return nil, err
	}
	abilities, err := prefabs.LoadAbilitiesSpec()
	if err != nil {
		return nil, err
	}
	return New(level, hookSpec, abilities)
}

func New(level *prefabs.LevelSpec, hookSpec *prefabs.HookSpec, abilities *prefabs.AbilitiesSpec) (*Scene, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	mask, err := hookSpec.HitMask()
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Level:     level,
		HookSpec:  hookSpec,
		World:     physics.NewWorld(level.Gravity),
		Hookables: hookable.NewRegistry(),
		Time:      timescale.NewManager(),
		names:     make(map[string]hook.TargetID),
		shapes:    make(map[hook.TargetID]*cp.Shape),
		doomed:    make(map[hook.TargetID]float64),
	}

	s.World.AddBounds(level.Width, level.Height)
	for _, solid := range level.Solids {
		s.World.AddBox(solid.BB(), physics.LayerGround)
	}
	s.Player = s.World.NewCharacter(level.Spawn.Vector(), level.Player.Width, level.Player.Height)

	s.Hook = hook.New(hook.Options{
		Character: s.Player,
		Targets:   s.Hookables,
		Caster:    s.World,
		Time:      s.Time,
		Tuning:    hookSpec.Tuning(),
	})
	s.Sensor = s.World.NewHookSensor(s.Hook, s.Player, hookSpec.SensorRadius, mask)
	if hookSpec.RetractRadius > 0 {
		s.Sensor.RetractRadius = hookSpec.RetractRadius
	}

	for _, spec := range level.Hookables {
		if err := s.addHookable(spec); err != nil {
			return nil, fmt.Errorf("scene: %s: %w", level.Name, err)
		}
	}

	if err := s.ReloadAbilities(abilities); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) addHookable(spec prefabs.HookableSpec) error {
	kind, err := hookable.ParseKind(spec.Kind)
	if err != nil {
		return fmt.Errorf("hookable %s: %w", spec.Name, err)
	}

	var (
		h     hookable.Hookable
		shape *cp.Shape
		base  *hookable.Base
	)
	switch kind {
	case hookable.KindCombat:
		_, shape = s.World.AddCircleBody(spec.Position.Vector(), spec.Radius, spec.Mass, spec.Layers())
		c := hookable.NewCombat(spec.Name, shape)
		c.CanPull = spec.CanPull
		c.CanThrow = spec.CanThrow
		c.UsableAfterPull = spec.UsableAfterPull
		c.DestroyAfterUse = spec.DestroyAfterUse
		h, base = c, c.Base
	case hookable.KindToPoint:
		shape = s.World.AddBox(spec.Box.BB(), spec.Layers())
		t := hookable.NewToPoint(spec.Name, shape, spec.AnchorPoint())
		t.HeightOffset = spec.HeightOffset
		t.LedgeOffset = spec.LedgeOffset
		if spec.Accuracy > 0 {
			t.Accuracy = spec.Accuracy
		}
		if spec.Curve != nil {
			if err := t.SetCurve(spec.Curve.Xs, spec.Curve.Ys); err != nil {
				return fmt.Errorf("hookable %s: %w", spec.Name, err)
			}
		}
		h, base = t, t.Base
	default:
		shape = s.World.AddBox(spec.Box.BB(), spec.Layers())
		base = hookable.NewBase(spec.Name, kind, shape, spec.AnchorPoint())
		h = base
	}
	base.Relative = spec.Relative
	base.Player = s.Player

	id := s.Hookables.Add(h)
	s.World.SetOwner(shape, id)
	s.names[spec.Name] = id
	s.shapes[id] = shape

	if c, ok := h.(*hookable.Combat); ok {
		c.OnDestroy = func() { s.doomed[id] = s.Elapsed + debrisLifetime }
	}
	return nil
}

// ReloadAbilities rebuilds the loadout from specs. The current activation
// is reset first so no routine is left holding the player.
func (s *Scene) ReloadAbilities(specs *prefabs.AbilitiesSpec) error {
	set, err := ability.LoadSet(specs, ability.Config{
		Hook:     s.Hook,
		Player:   s.Player,
		Hookable: s.Hookables,
		Time:     s.Time,
	})
	if err != nil {
		return fmt.Errorf("scene: abilities: %w", err)
	}
	if s.Abilities != nil {
		s.Reset()
	}
	s.Abilities = set
	s.abilitySpecs = specs
	return nil
}

// AbilitySpecs returns the specs the loadout was built from, for key
// bindings.
func (s *Scene) AbilitySpecs() []prefabs.AbilitySpec {
	if s.abilitySpecs == nil {
		return nil
	}
	return s.abilitySpecs.Abilities
}

// Step advances the scene by dt seconds of real time. Physics, the swing
// integrator and the hookables run on scaled time. Hook travel, the waypoint
// tow, ability routines and the time scale itself run on real time, so slow
// motion never slows the rope down.
func (s *Scene) Step(dt float64) {
	if dt <= 0 {
		return
	}
	gdt := s.Time.Scaled(dt)

	s.World.Step(gdt)
	s.Player.Settle()
	s.Hook.FixedUpdate(gdt)
	s.Hook.Update(dt)
	s.Sensor.Update()
	s.Abilities.Update(dt)
	s.Hookables.Update(gdt)
	s.Time.Update(dt)

	s.Frame++
	s.Elapsed += dt
	s.reap()
}

func (s *Scene) reap() {
	for id, at := range s.doomed {
		if s.Elapsed < at {
			continue
		}
		delete(s.doomed, id)
		s.removeHookable(id)
	}
}

func (s *Scene) removeHookable(id hook.TargetID) {
	if shape, ok := s.shapes[id]; ok {
		s.World.Remove(shape)
		delete(s.shapes, id)
	}
	if h, ok := s.Hookables.Get(id); ok {
		delete(s.names, h.Name())
	}
	s.Hookables.Remove(id)
}

// Activate starts the named ability on target.
func (s *Scene) Activate(name string, target hook.TargetID) bool {
	a, ok := s.Abilities.Get(name)
	if !ok {
		return false
	}
	return a.Activate(target)
}

// TargetID returns the handle of the hookable called name.
func (s *Scene) TargetID(name string) (hook.TargetID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// TargetAt picks the hookable nearest to p within radius.
func (s *Scene) TargetAt(p cp.Vector, radius float64) (hook.TargetID, bool) {
	return s.World.OwnerAt(p, radius, physics.LayerHookable)
}

// Shape returns the collider of a live hookable.
func (s *Scene) Shape(id hook.TargetID) (*cp.Shape, bool) {
	shape, ok := s.shapes[id]
	return shape, ok
}

// MovePlayer applies walking input. dir is -1, 0 or 1. The hook owns the
// body while it swings or tows.
func (s *Scene) MovePlayer(dir float64) {
	switch s.Player.MovementMode() {
	case hook.MovementWalking, hook.MovementFalling:
		s.Player.Move(dir * s.Level.Player.MoveSpeed)
	}
}

func (s *Scene) Jump() bool {
	return s.Player.Jump(s.Level.Player.JumpSpeed)
}

// Reset cancels every activation and puts the hook back on the launcher.
func (s *Scene) Reset() {
	if s.Abilities != nil {
		s.Abilities.CancelAll()
	}
	s.Hook.ResetHook()
	s.Time.Reset()
	if s.Player.IsBlocked() {
		s.Player.Unblock()
	}
	log.Printf("scene: reset hook at frame %d", s.Frame)
}

// Sample captures the current frame for a trace.
func (s *Scene) Sample() telemetry.Sample {
	return telemetry.Capture(s.Frame, s.Elapsed, s.Hook, s.Time.Scale())
}
