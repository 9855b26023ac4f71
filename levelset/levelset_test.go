package levelset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

type sphereSDF struct {
	center r3.Vec
	radius float64
}

func (s sphereSDF) Evaluate(p r3.Vec) float64 { return s.radius - r3.Norm(r3.Sub(p, s.center)) }
func (s sphereSDF) Bounds() r3.Box {
	d := r3.Vec{X: s.radius, Y: s.radius, Z: s.radius}
	return r3.Box{Min: r3.Sub(s.center, d), Max: r3.Add(s.center, d)}
}

type cubeSDF struct{ halfSide float64 }

func (c cubeSDF) Evaluate(p r3.Vec) float64 {
	return c.halfSide - math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z)))
}
func (c cubeSDF) Bounds() r3.Box {
	d := r3.Vec{X: c.halfSide, Y: c.halfSide, Z: c.halfSide}
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}

type twoSpheresSDF struct{ a, b sphereSDF }

func (t twoSpheresSDF) Evaluate(p r3.Vec) float64 {
	return math.Max(t.a.Evaluate(p), t.b.Evaluate(p))
}
func (t twoSpheresSDF) Bounds() r3.Box { return r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}} }

type torusSDF struct{ major, minor float64 }

func (t torusSDF) Evaluate(p r3.Vec) float64 {
	q := math.Hypot(p.X, p.Y) - t.major
	return t.minor - math.Hypot(q, p.Z)
}
func (t torusSDF) Bounds() r3.Box {
	d := t.major + t.minor
	return r3.Box{Min: r3.Vec{X: -d, Y: -d, Z: -t.minor}, Max: r3.Vec{X: d, Y: d, Z: t.minor}}
}

func box(lo, hi float64) r3.Box {
	return r3.Box{Min: r3.Vec{X: lo, Y: lo, Z: lo}, Max: r3.Vec{X: hi, Y: hi, Z: hi}}
}

// checkManifold verifies every triangle index is in range and every mesh
// edge is shared by exactly two triangles.
func checkManifold(t *testing.T, m Mesh) {
	t.Helper()
	if len(m.TriVerts) == 0 {
		t.Fatal("expected a non-empty mesh")
	}
	type edge struct{ a, b uint32 }
	counts := make(map[edge]int, len(m.TriVerts)*3)
	addEdge := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		counts[edge{a, b}]++
	}
	nv := uint32(len(m.VertPos))
	for _, tri := range m.TriVerts {
		for _, idx := range tri {
			if idx >= nv {
				t.Fatalf("triangle index %d out of range [0,%d)", idx, nv)
			}
		}
		addEdge(tri[0], tri[1])
		addEdge(tri[1], tri[2])
		addEdge(tri[2], tri[0])
	}
	for e, n := range counts {
		if n != 2 {
			t.Fatalf("edge (%d,%d) used %d times, want exactly 2", e.a, e.b, n)
		}
	}
}

func TestLevelSetSphere(t *testing.T) {
	sdf := sphereSDF{radius: 1}
	mesh := LevelSet(sdf, box(-1.5, 1.5), 0.25, 0)
	checkManifold(t, mesh)
	if n := len(mesh.VertPos); n < 300 || n > 1500 {
		t.Errorf("vertex count %d outside expected [300,1500]", n)
	}
	const tol = 0.2
	for _, v := range mesh.VertPos {
		d := math.Abs(r3.Norm(v) - sdf.radius)
		if d > tol {
			t.Errorf("vertex %v deviates from sphere by %f, want <%f", v, d, tol)
		}
	}
}

func TestLevelSetCube(t *testing.T) {
	sdf := cubeSDF{halfSide: 0.5}
	mesh := LevelSet(sdf, box(-1, 1), 0.1, 0)
	checkManifold(t, mesh)

	const spacing = 0.1
	min, max := mesh.VertPos[0], mesh.VertPos[0]
	for _, v := range mesh.VertPos {
		min = r3.Vec{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
		max = r3.Vec{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
	}
	for _, got := range []float64{min.X, min.Y, min.Z} {
		if got < -0.5-spacing || got > -0.5+spacing {
			t.Errorf("min bound %f outside -0.5 +- spacing", got)
		}
	}
	for _, got := range []float64{max.X, max.Y, max.Z} {
		if got < 0.5-spacing || got > 0.5+spacing {
			t.Errorf("max bound %f outside 0.5 +- spacing", got)
		}
	}
}

func TestLevelSetTwoDisjointSpheres(t *testing.T) {
	sdf := twoSpheresSDF{
		a: sphereSDF{center: r3.Vec{X: -0.5}, radius: 0.2},
		b: sphereSDF{center: r3.Vec{X: 0.5}, radius: 0.2},
	}
	mesh := LevelSet(sdf, box(-1, 1), 0.05, 0)
	checkManifold(t, mesh)

	// Flood-fill over the triangle adjacency graph to count components.
	adj := make(map[uint32][]uint32, len(mesh.VertPos))
	addAdj := func(a, b uint32) { adj[a] = append(adj[a], b); adj[b] = append(adj[b], a) }
	for _, tri := range mesh.TriVerts {
		addAdj(tri[0], tri[1])
		addAdj(tri[1], tri[2])
		addAdj(tri[2], tri[0])
	}
	seen := make(map[uint32]bool, len(mesh.VertPos))
	components := 0
	for v := range adj {
		if seen[v] {
			continue
		}
		components++
		stack := []uint32{v}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[cur] {
				continue
			}
			seen[cur] = true
			for _, nb := range adj[cur] {
				if !seen[nb] {
					stack = append(stack, nb)
				}
			}
		}
	}
	if components != 2 {
		t.Errorf("got %d connected components, want 2", components)
	}
}

func TestLevelSetTorusGenus(t *testing.T) {
	sdf := torusSDF{major: 0.7, minor: 0.25}
	mesh := LevelSet(sdf, box(-1.2, 1.2), 0.05, 0)
	checkManifold(t, mesh)

	// Euler characteristic V - E + F = 0 for a genus-1 closed surface.
	type edge struct{ a, b uint32 }
	edges := make(map[edge]bool, len(mesh.TriVerts)*3)
	addEdge := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		edges[edge{a, b}] = true
	}
	for _, tri := range mesh.TriVerts {
		addEdge(tri[0], tri[1])
		addEdge(tri[1], tri[2])
		addEdge(tri[2], tri[0])
	}
	euler := len(mesh.VertPos) - len(edges) + len(mesh.TriVerts)
	if euler != 0 {
		t.Errorf("Euler characteristic %d, want 0 (genus 1)", euler)
	}
}

func TestLevelSetOversizedSphereCaps(t *testing.T) {
	sdf := sphereSDF{radius: 1.5}
	mesh := LevelSet(sdf, box(-1, 1), 0.1, 0)
	checkManifold(t, mesh)
}

func TestLevelSetInsetSphere(t *testing.T) {
	sdf := sphereSDF{radius: 1}
	mesh := LevelSet(sdf, box(-1.5, 1.5), 0.25, 0.2)
	checkManifold(t, mesh)
	const want = 0.8
	const tol = 0.25
	for _, v := range mesh.VertPos {
		d := math.Abs(r3.Norm(v) - want)
		if d > tol {
			t.Errorf("inset vertex %v deviates from radius %f by %f, want <%f", v, want, d, tol)
		}
	}
}

func TestLevelSetNormalsPointOutward(t *testing.T) {
	sdf := sphereSDF{radius: 1}
	mesh := LevelSet(sdf, box(-1.5, 1.5), 0.3, 0)
	checkManifold(t, mesh)
	const eps = 1e-3
	for _, tri := range mesh.TriVerts {
		v0, v1, v2 := mesh.VertPos[tri[0]], mesh.VertPos[tri[1]], mesh.VertPos[tri[2]]
		centroid := r3.Scale(1./3., r3.Add(v0, r3.Add(v1, v2)))
		normal := r3.Unit(r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0)))
		inside := sdf.Evaluate(r3.Sub(centroid, r3.Scale(eps, normal)))
		outside := sdf.Evaluate(r3.Add(centroid, r3.Scale(eps, normal)))
		if inside < outside {
			t.Errorf("triangle %v normal does not point away from the interior", tri)
		}
	}
}

func TestLevelSetPanicsOnNonPositiveEdgeLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive edgeLength")
		}
	}()
	LevelSet(sphereSDF{radius: 1}, box(-1, 1), 0, 0)
}
