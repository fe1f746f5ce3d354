package hookable

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/interp"
)

const defaultAccuracy = 25

// ToPoint is a ledge the player is towed onto along a lifted path.
type ToPoint struct {
	*Base

	// HeightOffset raises the landing point above the hookable's origin.
	HeightOffset float64
	// LedgeOffset pushes the landing point past the ledge, away from the
	// player.
	LedgeOffset float64
	// Accuracy is the number of waypoints generated, the last one being the
	// landing point.
	Accuracy int

	curve interp.PiecewiseLinear
	xs    []float64
}

func NewToPoint(name string, shape *cp.Shape, anchor cp.Vector) *ToPoint {
	t := &ToPoint{
		Base:     NewBase(name, KindToPoint, shape, anchor),
		Accuracy: defaultAccuracy,
	}
	// flat curve: a straight tow
	if err := t.SetCurve([]float64{0, 1}, []float64{1, 1}); err != nil {
		panic("hookable: default curve: " + err.Error())
	}
	return t
}

// SetCurve sets the lift curve. xs are path fractions in [0,1], ys scale
// the rise of each waypoint relative to the straight line.
func (t *ToPoint) SetCurve(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("hookable: fit curve for %s: %d xs for %d ys", t.name, len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("hookable: fit curve for %s: xs not increasing at %d", t.name, i)
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return fmt.Errorf("hookable: fit curve for %s: %w", t.name, err)
	}
	t.curve = pl
	t.xs = append(t.xs[:0], xs...)
	return nil
}

func (t *ToPoint) lift(frac float64) float64 {
	if len(t.xs) == 0 {
		return 1
	}
	if frac < t.xs[0] {
		frac = t.xs[0]
	}
	if last := t.xs[len(t.xs)-1]; frac > last {
		frac = last
	}
	return t.curve.Predict(frac)
}

// TargetPoint is where the tow lands the player.
func (t *ToPoint) TargetPoint() cp.Vector {
	target := t.AnchorPosition()
	target.Y = t.Origin().Y - t.HeightOffset

	if t.Player == nil {
		return target
	}
	dir := normalize(cp.Vector{X: target.X - t.Player.Position().X})
	return target.Add(dir.Mult(t.LedgeOffset))
}

// Waypoints samples the path from the player to TargetPoint.
func (t *ToPoint) Waypoints() []cp.Vector {
	if t.Player == nil {
		return nil
	}
	n := t.Accuracy
	if n < 2 {
		n = 2
	}
	start := t.Player.Position()
	target := t.TargetPoint()
	full := start.Distance(target)
	dir := normalize(target.Sub(start))

	points := make([]cp.Vector, n)
	for i := 1; i < n; i++ {
		frac := float64(i) / float64(n)
		p := start.Add(dir.Mult(full * frac))
		p.Y = start.Y + (p.Y-start.Y)*t.lift(frac)
		points[i-1] = p
	}
	points[n-1] = target
	return points
}
