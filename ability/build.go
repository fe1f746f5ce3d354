package ability

import (
	"fmt"

	"github.com/milk9111/grapplinghook/prefabs"
)

// FromSpec builds the ability described by spec. base supplies the hook and
// its collaborators; name, setting and timings come from spec.
func FromSpec(spec prefabs.AbilitySpec, base Config) (Ability, error) {
	setting, err := spec.Setting.Setting()
	if err != nil {
		return nil, fmt.Errorf("ability: %s: %w", spec.Name, err)
	}
	cfg := base
	cfg.Name = spec.Name
	cfg.Setting = setting
	cfg.Cooldown = spec.Cooldown
	cfg.AnimationTime = spec.AnimationTime

	switch spec.Kind {
	case "pull":
		p := NewPull(cfg)
		p.DetachDelay = spec.DetachDelay
		return p, nil
	case "swing":
		s := NewSwing(cfg)
		if spec.AirborneOnly != nil {
			s.AirborneOnly = *spec.AirborneOnly
		}
		return s, nil
	case "spin":
		s := NewSpin(cfg)
		if spec.Spins > 0 {
			s.Spins = spec.Spins
		}
		if spec.SpinTime > 0 {
			s.SpinTime = spec.SpinTime
		}
		s.CounterClockwise = spec.CounterClockwise
		s.ChangeDistance = spec.ChangeDistance
		return s, nil
	case "to_point":
		return NewToPoint(cfg), nil
	case "scripted":
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("ability: %s: load script %s: %w", spec.Name, spec.Script, err)
		}
		return NewScripted(cfg, src)
	default:
		return nil, fmt.Errorf("ability: %s: unknown kind %q", spec.Name, spec.Kind)
	}
}

// Set is the player's loadout, in activation priority order.
type Set struct {
	abilities []Ability
	byName    map[string]Ability
}

// LoadSet builds every ability in specs.
func LoadSet(specs *prefabs.AbilitiesSpec, base Config) (*Set, error) {
	set := &Set{byName: make(map[string]Ability)}
	for _, spec := range specs.Abilities {
		a, err := FromSpec(spec, base)
		if err != nil {
			return nil, err
		}
		set.abilities = append(set.abilities, a)
		set.byName[spec.Name] = a
	}
	return set, nil
}

func (s *Set) Get(name string) (Ability, bool) {
	a, ok := s.byName[name]
	return a, ok
}

func (s *Set) All() []Ability { return s.abilities }

func (s *Set) Update(dt float64) {
	for _, a := range s.abilities {
		a.Update(dt)
	}
}

// Busy reports whether any ability is running.
func (s *Set) Busy() bool {
	for _, a := range s.abilities {
		if a.Running() {
			return true
		}
	}
	return false
}

// CancelAll resets the hook through every running ability.
func (s *Set) CancelAll() {
	for _, a := range s.abilities {
		if a.Running() {
			a.Cancel()
		}
	}
}
