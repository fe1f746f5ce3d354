package hook

import "github.com/jakecoffman/cp"

const arriveEpsilon = 1e-9

// normalize returns the unit vector of v, or the zero vector for zero input.
func normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// project returns the projection of v onto onto.
func project(v, onto cp.Vector) cp.Vector {
	d := onto.Dot(onto)
	if d == 0 {
		return cp.Vector{}
	}
	return onto.Mult(v.Dot(onto) / d)
}

// moveTowards steps from current toward target by at most maxDelta and lands
// exactly on target once it is within reach.
func moveTowards(current, target cp.Vector, maxDelta float64) cp.Vector {
	delta := target.Sub(current)
	dist := delta.Length()
	if dist <= maxDelta+arriveEpsilon || dist == 0 {
		return target
	}
	return current.Add(delta.Mult(maxDelta / dist))
}
