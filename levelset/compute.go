package levelset

import (
	"math"
	"sync/atomic"

	"github.com/soypat/bccsurf/internal/morton"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF is the minimal surface an isosurface source must provide: a pure,
// concurrency-safe distance function and the region it is defined over.
// Positive values are inside, negative outside.
type SDF interface {
	Evaluate(p r3.Vec) float64
	Bounds() r3.Box
}

// computeVerts is the pass-1 worker: for each candidate grid index it
// evaluates the bounded SDF, detects surface-crossing owned edges, emits an
// interpolated vertex per crossing, and inserts a GridVert for any vertex
// that kept at least one crossing.
type computeVerts struct {
	vertPos   []r3.Vec
	vertIndex *atomic.Int32
	table     *HashTable
	sdf       SDF
	origin    r3.Vec
	gridSize  [3]int32 // grid dimensions before padding
	spacing   r3.Vec
	level     float64
}

// boundedSDF evaluates the SDF at g and clamps it to non-positive on the
// outer padding layer, so the extracted surface always closes on the box
// boundary.
func (c *computeVerts) boundedSDF(g gridIndex) float64 {
	d := c.sdf.Evaluate(position(g, c.origin, c.spacing)) - c.level

	onLower := g.x <= 0 || g.y <= 0 || g.z <= 0
	onUpper := g.x >= c.gridSize[0] || g.y >= c.gridSize[1] || g.z >= c.gridSize[2]
	onHalf := g.w == 1 && (g.x >= c.gridSize[0]-1 || g.y >= c.gridSize[1]-1 || g.z >= c.gridSize[2]-1)
	if onLower || onUpper || onHalf {
		return math.Min(d, 0)
	}
	return d
}

// run processes one Morton code from the [0, maxMorton] domain.
func (c *computeVerts) run(m uint64) {
	if c.table.Full() {
		return
	}
	x, y, z, w := morton.Decode(m)
	g := gridIndex{int32(x), int32(y), int32(z), int32(w)}
	if g.x > c.gridSize[0]+1 || g.y > c.gridSize[1]+1 || g.z > c.gridSize[2]+1 {
		return
	}

	pos := position(g, c.origin, c.spacing)
	d := c.boundedSDF(g)

	gv := GridVert{Key: m, Distance: d, EdgeVerts: [7]int32{-1, -1, -1, -1, -1, -1, -1}}
	keep := false
	for i := 0; i < 7; i++ {
		n := g.neighbor(i)
		v := c.boundedSDF(n)
		if (v > 0) == (d > 0) {
			continue
		}
		keep = true
		idx := c.vertIndex.Add(1) - 1
		np := position(n, c.origin, c.spacing)
		c.vertPos[idx] = r3.Scale(1/(v-d), r3.Sub(r3.Scale(v, pos), r3.Scale(d, np)))
		gv.EdgeVerts[i] = idx
	}
	if keep {
		c.table.Insert(gv)
	}
}
