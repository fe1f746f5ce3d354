package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/prefabs"
)

type binding struct {
	key     ebiten.Key
	ability string
}

// bindingsFor maps each ability's key name to an ebiten key. Abilities with
// an unknown key are left unbound.
func bindingsFor(specs []prefabs.AbilitySpec) []binding {
	bindings := make([]binding, 0, len(specs))
	for _, spec := range specs {
		if spec.Key == "" {
			continue
		}
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(spec.Key)); err != nil {
			log.Printf("input: ability %s: %v", spec.Name, err)
			continue
		}
		bindings = append(bindings, binding{key: key, ability: spec.Name})
	}
	return bindings
}

// Input holds the current frame's input state.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed  bool
	PausePressed bool
	ResetPressed bool
	DebugPressed bool
	// Mouse is the cursor in screen coordinates.
	Mouse cp.Vector
	// Abilities lists the abilities whose key went down this frame.
	Abilities []string

	bindings []binding
}

func NewInput(specs []prefabs.AbilitySpec) *Input {
	return &Input{bindings: bindingsFor(specs)}
}

// Rebind replaces the ability key bindings.
func (i *Input) Rebind(specs []prefabs.AbilitySpec) {
	i.bindings = bindingsFor(specs)
}

func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	i.Mouse = cp.Vector{X: float64(mx), Y: float64(my)}

	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	i.MoveX = moveX

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)

	i.Abilities = i.Abilities[:0]
	for _, b := range i.bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			i.Abilities = append(i.Abilities, b.ability)
		}
	}
}
