package levelset

import (
	"github.com/soypat/bccsurf/internal/morton"
	"gonum.org/v1/gonum/spatial/r3"
)

// ownedNeighbors lists the 7 BCC neighbor offsets (dx, dy, dz, dw) each grid
// vertex is responsible for, avoiding double-counting across the 14 nearest
// neighbors of the full BCC lattice.
var ownedNeighbors = [7][4]int32{
	{0, 0, 0, 1},
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{-1, 0, 0, 1},
	{0, -1, 0, 1},
	{0, 0, -1, 1},
}

// next3 and prev3 cycle through the three axes; used to enumerate the six
// tetrahedra sharing a BCC edge.
var next3 = [3]int{1, 2, 0}
var prev3 = [3]int{2, 0, 1}

// gridIndex is a signed 4-tuple BCC lattice coordinate: w=0 selects the base
// cubic lattice, w=1 the body-centered lattice.
type gridIndex struct {
	x, y, z, w int32
}

// at returns the axis-th spatial component (0=x, 1=y, 2=z).
func (g gridIndex) at(axis int) int32 {
	switch axis {
	case 0:
		return g.x
	case 1:
		return g.y
	default:
		return g.z
	}
}

// neighbor returns the i-th owned neighbor of g, applying the canonical
// fix-up that folds w=2 back onto the base lattice.
func (g gridIndex) neighbor(i int) gridIndex {
	off := ownedNeighbors[i]
	n := gridIndex{g.x + off[0], g.y + off[1], g.z + off[2], g.w + off[3]}
	if n.w == 2 {
		n.x++
		n.y++
		n.z++
		n.w = 0
	}
	return n
}

// mortonKey encodes g as a 64-bit Morton code. Callers must ensure the
// spatial components are non-negative.
func mortonKey(g gridIndex) uint64 {
	return morton.Encode(uint32(g.x), uint32(g.y), uint32(g.z), uint32(g.w))
}

// decodeGridIndex is the inverse of mortonKey.
func decodeGridIndex(key uint64) gridIndex {
	x, y, z, w := morton.Decode(key)
	return gridIndex{int32(x), int32(y), int32(z), int32(w)}
}

// leadEdge returns the partner vertex across owned edge 0, the (1,1,1)/2
// diagonal neighbor in BCC terms.
func leadEdge(g gridIndex) gridIndex {
	if g.w == 0 {
		return gridIndex{g.x, g.y, g.z, 1}
	}
	return gridIndex{g.x + 1, g.y + 1, g.z + 1, 0}
}

// position maps a grid index to a world-space point given the extractor's
// origin and per-axis spacing.
func position(g gridIndex, origin, spacing r3.Vec) r3.Vec {
	off := -0.5
	if g.w == 1 {
		off = 0
	}
	return r3.Vec{
		X: origin.X + spacing.X*(float64(g.x)+off),
		Y: origin.Y + spacing.Y*(float64(g.y)+off),
		Z: origin.Z + spacing.Z*(float64(g.z)+off),
	}
}
