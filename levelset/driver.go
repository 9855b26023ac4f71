// Package levelset extracts closed, 2-manifold triangle meshes from signed
// distance fields using parallel marching tetrahedra over a body-centered
// cubic lattice. The algorithm samples a dense integer domain in two
// data-parallel passes separated by a barrier: ComputeVerts finds
// surface-crossing edges and emits interpolated vertices into a lock-free
// hash table, then BuildTris walks the table classifying each vertex's six
// owned tetrahedra into triangles via a fixed 16-case lookup table.
package levelset

import (
	"math"
	"sync/atomic"

	"github.com/soypat/bccsurf/internal/morton"
	"gonum.org/v1/gonum/spatial/r3"
)

// LevelSet extracts a closed, 2-manifold triangle mesh approximating the
// isosurface of sdf at the given level, over bounds, at approximately
// edgeLength resolution. Smaller edgeLength gives a finer mesh. A positive
// level insets the surface, negative outsets it.
//
// sdf must be safe to call concurrently from many goroutines and must be
// defined over a slight dilation of bounds.
func LevelSet(sdf SDF, bounds r3.Box, edgeLength, level float64) Mesh {
	if edgeLength <= 0 {
		panic("levelset: edgeLength must be positive")
	}
	dim := r3.Sub(bounds.Max, bounds.Min)
	if dim.X <= 0 || dim.Y <= 0 || dim.Z <= 0 {
		panic("levelset: bounds must have positive extent on every axis")
	}

	gridSize := [3]int32{
		int32(dim.X / edgeLength),
		int32(dim.Y / edgeLength),
		int32(dim.Z / edgeLength),
	}
	for i := range gridSize {
		if gridSize[i] < 1 {
			gridSize[i] = 1
		}
	}
	spacing := r3.Vec{
		X: dim.X / float64(gridSize[0]),
		Y: dim.Y / float64(gridSize[1]),
		Z: dim.Z / float64(gridSize[2]),
	}
	maxMorton := morton.Encode(uint32(gridSize[0]+1), uint32(gridSize[1]+1), uint32(gridSize[2]+1), 1)

	// Heuristic: surface vertex count scales as the 2/3 power of volume.
	tableSize := uint32(math.Min(float64(2*maxMorton), 10*math.Pow(float64(maxMorton), 2.0/3.0)))
	if tableSize < 2 {
		tableSize = 2
	}

	var (
		table     *HashTable
		vertPos   []r3.Vec
		vertIndex atomic.Int32
	)
	for {
		table = NewHashTable(tableSize)
		vertPos = make([]r3.Vec, table.Size()*7)
		vertIndex.Store(0)

		cv := &computeVerts{
			vertPos:   vertPos,
			vertIndex: &vertIndex,
			table:     table,
			sdf:       sdf,
			origin:    bounds.Min,
			gridSize:  gridSize,
			spacing:   spacing,
			level:     level,
		}
		parallelFor(maxMorton+1, cv.run)

		if !table.Full() {
			break
		}
		tableSize = nextTableSize(tableSize, maxMorton, vertPos, int(vertIndex.Load()), bounds.Min, spacing)
	}

	vertPos = vertPos[:vertIndex.Load()]

	triVerts := make([][3]uint32, table.Entries()*12) // worst case
	var triIndex atomic.Int32
	bt := &buildTris{
		triVerts: triVerts,
		triIndex: &triIndex,
		table:    table,
	}
	parallelFor(uint64(table.Size()), func(i uint64) { bt.run(uint32(i)) })
	triVerts = triVerts[:triIndex.Load()]

	return Mesh{VertPos: vertPos, TriVerts: triVerts}
}

// nextTableSize estimates a new table capacity after saturation, from the
// fraction of the Morton domain pass 1 managed to cover before bailing out.
// The last emitted vertex is used as a racy but cheap high-water mark; any
// deterministic estimate only changes resize efficiency, not correctness.
func nextTableSize(current uint32, maxMorton uint64, vertPos []r3.Vec, n int, origin, spacing r3.Vec) uint32 {
	lastMorton := uint64(1)
	if n > 0 {
		rel := r3.Sub(vertPos[n-1], origin)
		g := gridIndex{
			x: int32(rel.X / spacing.X),
			y: int32(rel.Y / spacing.Y),
			z: int32(rel.Z / spacing.Z),
			w: 1,
		}
		if g.x >= 0 && g.y >= 0 && g.z >= 0 {
			lastMorton = mortonKey(g)
		}
	}
	if lastMorton == 0 {
		lastMorton = 1
	}
	ratio := float64(maxMorton) / float64(lastMorton)
	if ratio > 1000 || ratio <= 1 {
		return current * 2
	}
	next := uint32(float64(current) * ratio)
	if next <= current {
		next = current * 2
	}
	return next
}
