package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/ability"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/physics"
	"github.com/milk9111/grapplinghook/scene"
	"golang.org/x/image/colornames"
)

// drawSpace renders the cp shapes: level geometry, hookables and bodies.
func drawSpace(screen *ebiten.Image, w *physics.World) {
	if w == nil || w.Space() == nil || screen == nil {
		return
	}
	cp.DrawSpace(w.Space(), &spaceDrawer{screen: screen})
}

type spaceDrawer struct {
	screen *ebiten.Image
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	vector.StrokeCircle(d.screen, float32(pos.X), float32(pos.Y), float32(radius), 1.5, c, true)
	// angle indicator
	ax := pos.X + math.Cos(angle)*radius
	ay := pos.Y + math.Sin(angle)*radius
	vector.StrokeLine(d.screen, float32(pos.X), float32(pos.Y), float32(ax), float32(ay), 1, c, true)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, fcolorToRGBA(fill), true)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	width := float32(math.Max(1, radius*2))
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, fcolorToRGBA(fill), true)
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(fill)
	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1.5, c, true)
	}
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	vector.FillCircle(d.screen, float32(pos.X), float32(pos.Y), float32(size/2), fcolorToRGBA(fill), true)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor colours shapes by collision layer.
func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 0.4}
	}
	layers := shape.Filter.Categories
	switch {
	case layers&physics.LayerPlayer != 0:
		return cp.FColor{R: 0.86, G: 0.08, B: 0.24, A: 1.0}
	case layers&physics.LayerHookable != 0:
		return cp.FColor{R: 1.0, G: 0.75, B: 0.2, A: 1.0}
	case layers&physics.LayerGround != 0:
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// drawAim rings the hookable under the cursor.
func drawAim(screen *ebiten.Image, shape *cp.Shape) {
	bb := shape.BB()
	c := bb.Center()
	r := math.Max(bb.R-bb.L, bb.T-bb.B)/2 + 6
	vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(r), 2, colornames.White, true)
}

// drawHook draws the rope through its render points and the hook head.
func drawHook(screen *ebiten.Image, h *hook.GrapplingHook, rope, head color.Color, width float32) {
	if width <= 0 {
		width = 2
	}
	points := h.Rope()
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, rope, true)
	}
	pos := h.Position()
	vector.FillCircle(screen, float32(pos.X), float32(pos.Y), 3, head, true)
}

// drawDebug marks where a swing will stop and the tow path of a running
// to-point activation.
func drawDebug(screen *ebiten.Image, s *scene.Scene) {
	if s.Hook.IsSwinging() {
		p := s.Hook.SwingStartReflected()
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), 5, 1, colornames.Orangered, true)
	}
	for _, a := range s.Abilities.All() {
		tow, ok := a.(*ability.ToPoint)
		if !ok || !tow.Running() {
			continue
		}
		for _, p := range tow.Waypoints() {
			vector.FillCircle(screen, float32(p.X), float32(p.Y), 2, colornames.Lime, true)
		}
	}
}
