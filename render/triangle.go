package render

import "gonum.org/v1/gonum/spatial/r3"

// Triangle3 is a triangle in 3D space defined by its three vertices,
// wound counter-clockwise when viewed from the outward-facing side.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit outward normal of the triangle computed from
// its vertex winding.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if any two vertices of the triangle are
// within tol of each other, meaning it has no well defined normal.
func (t Triangle3) Degenerate(tol float64) bool {
	return r3.Norm(r3.Sub(t.V[0], t.V[1])) <= tol ||
		r3.Norm(r3.Sub(t.V[1], t.V[2])) <= tol ||
		r3.Norm(r3.Sub(t.V[2], t.V[0])) <= tol
}

// Centroid returns the arithmetic mean of the triangle's vertices.
func (t Triangle3) Centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(t.V[0], r3.Add(t.V[1], t.V[2])))
}
