package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/physics"
	"gopkg.in/yaml.v3"
)

const (
	HookFile      = "grappling_hook.yaml"
	AbilitiesFile = "abilities.yaml"
	LevelFile     = "arena.yaml"
)

var ErrUnknownSetting = errors.New("prefabs: unknown setting")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

type SwingSpec struct {
	K                     float64 `yaml:"k"`
	Damping               float64 `yaml:"damping"`
	MaxSwingVelocity      float64 `yaml:"max_swing_velocity"`
	ConstantSwingVelocity float64 `yaml:"constant_swing_velocity"`
	GravityScale          float64 `yaml:"gravity_scale"`
}

// HookSpec is the hook rig: swing integrator constants, launcher offsets and
// how the demo senses and draws the hook.
type HookSpec struct {
	Name          string     `yaml:"name"`
	Swing         SwingSpec  `yaml:"swing"`
	LaunchOffset  VectorSpec `yaml:"launch_offset"`
	RestOffset    VectorSpec `yaml:"rest_offset"`
	RestAngle     float64    `yaml:"rest_angle"`
	RopeEndOffset VectorSpec `yaml:"rope_end_offset"`
	FixedDelta    float64    `yaml:"fixed_delta"`
	SensorRadius  float64    `yaml:"sensor_radius"`
	RetractRadius float64    `yaml:"retract_radius"`
	HitLayers     []string   `yaml:"hit_layers"`
	RopeWidth     float32    `yaml:"rope_width"`
	RopeColor     *YAMLColor `yaml:"rope_color"`
	HookColor     *YAMLColor `yaml:"hook_color"`
}

func LoadHookSpec() (*HookSpec, error) {
	spec, err := LoadSpec[HookSpec](HookFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *HookSpec) Tuning() hook.Tuning {
	return hook.Tuning{
		K:                     s.Swing.K,
		Damping:               s.Swing.Damping,
		MaxSwingVelocity:      s.Swing.MaxSwingVelocity,
		ConstantSwingVelocity: s.Swing.ConstantSwingVelocity,
		SwingGravityScale:     s.Swing.GravityScale,
		LaunchOffset:          s.LaunchOffset.Vector(),
		RestOffset:            s.RestOffset.Vector(),
		RestAngle:             s.RestAngle,
		RopeEndOffset:         s.RopeEndOffset.Vector(),
		FixedDelta:            s.FixedDelta,
	}
}

// HitMask resolves HitLayers. Unknown names are an error.
func (s *HookSpec) HitMask() (uint, error) {
	mask, err := physics.LayerMask(s.HitLayers...)
	if err != nil {
		return 0, fmt.Errorf("prefabs: %s hit layers: %w", s.Name, err)
	}
	return mask, nil
}

type SettingSpec struct {
	DeploySpeed        float64  `yaml:"deploy_speed"`
	RetractSpeed       float64  `yaml:"retract_speed"`
	PullStrength       float64  `yaml:"pull_strength"`
	ThrowSpeed         float64  `yaml:"throw_speed"`
	MaxRopeLength      float64  `yaml:"max_rope_length"`
	MinTravelDistance  float64  `yaml:"min_travel_distance"`
	MaxTravelDistance  float64  `yaml:"max_travel_distance"`
	AnimateRetracting  bool     `yaml:"animate_retracting"`
	UseCurrentDistance bool     `yaml:"use_current_distance"`
	ObstacleLayers     []string `yaml:"obstacle_layers"`
}

// Setting converts the spec into a validated hook.Setting.
func (s SettingSpec) Setting() (hook.Setting, error) {
	mask, err := physics.LayerMask(s.ObstacleLayers...)
	if err != nil {
		return hook.Setting{}, err
	}
	setting := hook.Setting{
		DeploySpeed:        s.DeploySpeed,
		RetractSpeed:       s.RetractSpeed,
		PullStrength:       s.PullStrength,
		ThrowSpeed:         s.ThrowSpeed,
		MaxRopeLength:      s.MaxRopeLength,
		MinTravelDistance:  s.MinTravelDistance,
		MaxTravelDistance:  s.MaxTravelDistance,
		AnimateRetracting:  s.AnimateRetracting,
		UseCurrentDistance: s.UseCurrentDistance,
		ObstacleMask:       mask,
	}
	if err := setting.Validate(); err != nil {
		return hook.Setting{}, err
	}
	return setting, nil
}

// AbilitySpec configures one ability. Fields past Setting only apply to the
// kinds that read them.
type AbilitySpec struct {
	Name          string      `yaml:"name"`
	Kind          string      `yaml:"kind"`
	Key           string      `yaml:"key"`
	Cooldown      float64     `yaml:"cooldown"`
	AnimationTime float64     `yaml:"animation_time"`
	Setting       SettingSpec `yaml:"setting"`

	DetachDelay      float64 `yaml:"detach_delay"`
	AirborneOnly     *bool   `yaml:"airborne_only"`
	Spins            float64 `yaml:"spins"`
	SpinTime         float64 `yaml:"spin_time"`
	CounterClockwise bool    `yaml:"counter_clockwise"`
	ChangeDistance   bool    `yaml:"change_distance"`
	Script           string  `yaml:"script"`
}

type AbilitiesSpec struct {
	Abilities []AbilitySpec `yaml:"abilities"`
}

func LoadAbilitiesSpec() (*AbilitiesSpec, error) {
	spec, err := LoadSpec[AbilitiesSpec](AbilitiesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Find returns the ability called name.
func (s *AbilitiesSpec) Find(name string) (AbilitySpec, error) {
	for _, a := range s.Abilities {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return AbilitySpec{}, fmt.Errorf("%w %q", ErrUnknownSetting, name)
}

// Setting resolves the hook setting of the ability called name.
func (s *AbilitiesSpec) Setting(name string) (hook.Setting, error) {
	a, err := s.Find(name)
	if err != nil {
		return hook.Setting{}, err
	}
	setting, err := a.Setting.Setting()
	if err != nil {
		return hook.Setting{}, fmt.Errorf("prefabs: ability %s: %w", name, err)
	}
	return setting, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns c, or fallback when c is unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
