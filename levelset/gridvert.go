package levelset

import "math"

// openKey is the sentinel key value denoting an empty hash table slot.
const openKey = ^uint64(0)

// GridVert is the per-vertex record materialized only for grid points that
// straddle the surface or border a straddling edge.
type GridVert struct {
	// Key is the vertex's Morton code, or openKey for a synthetic sentinel.
	Key uint64
	// Distance is the bounded SDF value sampled at this grid point.
	Distance float64
	// EdgeVerts holds the output vertex index on each of the 7 owned edges,
	// or -1 if that edge does not cross the surface.
	EdgeVerts [7]int32
}

// emptyGridVert returns the synthetic record used for lookups that fall
// outside the domain: it reports as outside and crosses no edges.
func emptyGridVert() GridVert {
	return GridVert{
		Key:       openKey,
		Distance:  math.NaN(),
		EdgeVerts: [7]int32{-1, -1, -1, -1, -1, -1, -1},
	}
}

// Inside reports the sign of the vertex: +1 if strictly inside, -1 otherwise.
func (g GridVert) Inside() int {
	if g.Distance > 0 {
		return 1
	}
	return -1
}

// NeighborInside returns the sign of the neighbor reached across owned edge
// i: the same sign as g if that edge does not cross the surface, the
// opposite sign if it does.
func (g GridVert) NeighborInside(i int) int {
	sign := 1
	if g.EdgeVerts[i] >= 0 {
		sign = -1
	}
	return g.Inside() * sign
}
