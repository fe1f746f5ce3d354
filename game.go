package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/prefabs"
	"github.com/milk9111/grapplinghook/scene"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	frameDelta = 1.0 / 60.0
	// aimRadius is how far from the cursor a hookable can be picked.
	aimRadius = 24
)

type Game struct {
	frames int

	scene   *scene.Scene
	input   *Input
	watcher *prefabs.Watcher

	paused  bool
	pauseUI *ebitenui.UI
	debug   bool

	aim    hook.TargetID
	status string

	ropeColor color.Color
	hookColor color.Color
}

func NewGame(debug bool) (*Game, error) {
	sc, err := scene.Load()
	if err != nil {
		return nil, err
	}

	g := &Game{
		scene: sc,
		input: NewInput(sc.AbilitySpecs()),
		debug: debug,
	}
	g.applyColors()
	g.pauseUI = NewPauseUI(g)

	watcher, err := prefabs.WatchDisk()
	if err != nil {
		log.Printf("game: hot reload disabled: %v", err)
	}
	g.watcher = watcher
	return g, nil
}

func (g *Game) applyColors() {
	g.ropeColor = g.scene.HookSpec.RopeColor.ColorOr(colornames.Burlywood)
	g.hookColor = g.scene.HookSpec.HookColor.ColorOr(colornames.Lightgrey)
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	g.input.Update()
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if g.input.ResetPressed {
		g.resetHook()
	}

	g.scene.MovePlayer(g.input.MoveX)
	if g.input.JumpPressed {
		g.scene.Jump()
	}

	g.aim, _ = g.scene.TargetAt(g.input.Mouse, aimRadius)
	for _, name := range g.input.Abilities {
		g.activate(name)
	}

	g.scene.Step(frameDelta)
	return nil
}

func (g *Game) activate(name string) {
	if g.aim == 0 {
		g.status = name + ": no target under the cursor"
		return
	}
	target := g.targetName(g.aim)
	if g.scene.Activate(name, g.aim) {
		g.status = fmt.Sprintf("%s -> %s", name, target)
		return
	}
	g.status = fmt.Sprintf("%s refused on %s", name, target)
}

func (g *Game) targetName(id hook.TargetID) string {
	if h, ok := g.scene.Hookables.Get(id); ok {
		return h.Name()
	}
	return "none"
}

func (g *Game) resetHook() {
	g.scene.Reset()
	g.status = "hook reset"
}

// pollReload applies prefab changes picked up by the watcher.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			g.reload(name)
		case err := <-g.watcher.Errors:
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case name == prefabs.AbilitiesFile || filepath.Ext(name) == ".tengo":
		g.reloadAbilities()
	case name == prefabs.HookFile || name == prefabs.LevelFile:
		g.reloadScene()
	}
}

func (g *Game) reloadAbilities() {
	specs, err := prefabs.LoadAbilitiesSpec()
	if err != nil {
		log.Printf("game: reload abilities: %v", err)
		return
	}
	if err := g.scene.ReloadAbilities(specs); err != nil {
		log.Printf("game: reload abilities: %v", err)
		return
	}
	g.input.Rebind(specs.Abilities)
	g.status = "abilities reloaded"
	log.Printf("game: reloaded %d abilities", len(specs.Abilities))
}

// reloadScene rebuilds the level and the hook. The old scene stays when the
// new one fails to load.
func (g *Game) reloadScene() {
	sc, err := scene.Load()
	if err != nil {
		log.Printf("game: reload scene: %v", err)
		return
	}
	g.scene = sc
	g.aim = 0
	g.input.Rebind(sc.AbilitySpecs())
	g.applyColors()
	g.status = "scene reloaded"
	log.Printf("game: reloaded scene %s", sc.Level.Name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x14, G: 0x16, B: 0x22, A: 0xff})

	drawSpace(screen, g.scene.World)
	if shape, ok := g.scene.Shape(g.aim); ok {
		drawAim(screen, shape)
	}
	drawHook(screen, g.scene.Hook, g.ropeColor, g.hookColor, g.scene.HookSpec.RopeWidth)
	if g.debug {
		drawDebug(screen, g.scene)
	}

	ebitenutil.DebugPrint(screen, g.hud())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud() string {
	s := g.scene
	text := fmt.Sprintf("Frames: %d    FPS: %.2f    time scale: %.2f\n", g.frames, ebiten.ActualFPS(), s.Time.Scale())
	text += fmt.Sprintf("hook: %s    target: %s    aim: %s\n", s.Hook.State(), g.targetName(s.Hook.Target()), g.targetName(g.aim))
	for _, spec := range s.AbilitySpecs() {
		a, ok := s.Abilities.Get(spec.Name)
		if !ok {
			continue
		}
		state := "ready"
		switch {
		case a.Running():
			state = "running"
		case coolingDown(a):
			state = "cooldown"
		}
		text += fmt.Sprintf("[%s] %s: %s\n", spec.Key, spec.Name, state)
	}
	text += "A/D move  Space jump  Backspace reset  F1 debug  Esc pause\n"
	if g.status != "" {
		text += g.status + "\n"
	}
	return text
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func coolingDown(a interface{ Running() bool }) bool {
	c, ok := a.(interface{ CoolingDown() bool })
	return ok && c.CoolingDown()
}
