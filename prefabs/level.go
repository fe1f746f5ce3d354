package prefabs

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/physics"
)

var ErrInvalidLevel = errors.New("prefabs: invalid level")

// BoxSpec is an axis-aligned box in screen coordinates, y growing down.
type BoxSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// BB converts the box to the cp bounding box the physics package expects.
func (b BoxSpec) BB() cp.BB {
	return cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H}
}

func (b BoxSpec) Center() cp.Vector {
	return cp.Vector{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

func (b BoxSpec) empty() bool { return b.W <= 0 || b.H <= 0 }

type CurveSpec struct {
	Xs []float64 `yaml:"xs"`
	Ys []float64 `yaml:"ys"`
}

type PlayerSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

// HookableSpec places one hook target. Combat targets are dynamic circles
// at Position; every other kind sits on the static Box.
type HookableSpec struct {
	Name string  `yaml:"name"`
	Kind string  `yaml:"kind"`
	Box  BoxSpec `yaml:"box"`
	// Anchor defaults to the box center.
	Anchor   *VectorSpec `yaml:"anchor"`
	Relative bool        `yaml:"relative"`
	// Solid puts the target on the ground layer too, so the player can stand
	// on it.
	Solid bool `yaml:"solid"`

	Position VectorSpec `yaml:"position"`
	Radius   float64    `yaml:"radius"`
	Mass     float64    `yaml:"mass"`

	CanPull         bool `yaml:"can_pull"`
	CanThrow        bool `yaml:"can_throw"`
	UsableAfterPull bool `yaml:"usable_after_pull"`
	DestroyAfterUse bool `yaml:"destroy_after_use"`

	HeightOffset float64    `yaml:"height_offset"`
	LedgeOffset  float64    `yaml:"ledge_offset"`
	Accuracy     int        `yaml:"accuracy"`
	Curve        *CurveSpec `yaml:"curve"`
}

func (h HookableSpec) AnchorPoint() cp.Vector {
	if h.Anchor != nil {
		return h.Anchor.Vector()
	}
	return h.Box.Center()
}

// Layers returns the collision categories of the target's shape.
func (h HookableSpec) Layers() uint {
	if h.Solid {
		return physics.LayerHookable | physics.LayerGround
	}
	return physics.LayerHookable
}

// LevelSpec is a single-screen test level for the hook.
type LevelSpec struct {
	Name    string  `yaml:"name"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gravity float64 `yaml:"gravity"`
	// Spawn is where the player's feet start.
	Spawn     VectorSpec     `yaml:"spawn"`
	Player    PlayerSpec     `yaml:"player"`
	Solids    []BoxSpec      `yaml:"solids"`
	Hookables []HookableSpec `yaml:"hookables"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](LevelFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects levels the scene cannot build.
func (l *LevelSpec) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %s size %.0fx%.0f", ErrInvalidLevel, l.Name, l.Width, l.Height)
	}
	if l.Player.Width <= 0 || l.Player.Height <= 0 {
		return fmt.Errorf("%w: %s player size %.0fx%.0f", ErrInvalidLevel, l.Name, l.Player.Width, l.Player.Height)
	}
	for i, s := range l.Solids {
		if s.empty() {
			return fmt.Errorf("%w: %s solid %d is empty", ErrInvalidLevel, l.Name, i)
		}
	}

	seen := make(map[string]bool, len(l.Hookables))
	for _, h := range l.Hookables {
		if h.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed hookable", ErrInvalidLevel, l.Name)
		}
		if seen[h.Name] {
			return fmt.Errorf("%w: %s hookable %q defined twice", ErrInvalidLevel, l.Name, h.Name)
		}
		seen[h.Name] = true

		if h.Kind == "combat" {
			if h.Radius <= 0 {
				return fmt.Errorf("%w: %s combat %q needs a radius", ErrInvalidLevel, l.Name, h.Name)
			}
			continue
		}
		if h.Box.empty() {
			return fmt.Errorf("%w: %s hookable %q has an empty box", ErrInvalidLevel, l.Name, h.Name)
		}
	}
	return nil
}

// Find returns the hookable called name.
func (l *LevelSpec) Find(name string) (HookableSpec, bool) {
	for _, h := range l.Hookables {
		if h.Name == name {
			return h, true
		}
	}
	return HookableSpec{}, false
}
