package levelset

import "sync/atomic"

// tetTri0 and tetTri1 are the standard marching-tetrahedra case tables: for
// each of the 16 corner-sign combinations they give up to two triangles as
// triples of indices into a tet's local 6-edge array. -1 marks "no triangle".
// Case 0 and 15 (uniform sign) yield none; cases 3, 5, 6, 9, 10, 12 yield two.
var tetTri0 = [16][3]int32{
	{-1, -1, -1},
	{0, 3, 4},
	{0, 1, 5},
	{1, 5, 3},
	{1, 4, 2},
	{1, 0, 3},
	{2, 5, 0},
	{5, 3, 2},
	{2, 3, 5},
	{0, 5, 2},
	{3, 0, 1},
	{2, 4, 1},
	{3, 5, 1},
	{5, 1, 0},
	{4, 3, 0},
	{-1, -1, -1},
}

var tetTri1 = [16][3]int32{
	{-1, -1, -1},
	{-1, -1, -1},
	{-1, -1, -1},
	{3, 4, 1},
	{-1, -1, -1},
	{3, 2, 1},
	{0, 4, 2},
	{-1, -1, -1},
	{-1, -1, -1},
	{2, 4, 0},
	{1, 2, 3},
	{-1, -1, -1},
	{1, 4, 3},
	{-1, -1, -1},
	{-1, -1, -1},
	{-1, -1, -1},
}

// buildTris is the pass-2 worker: for each occupied table slot it classifies
// the six tetrahedra that share the edge from that vertex to its lead
// partner, and emits 0-2 triangles per tet via the case tables.
type buildTris struct {
	triVerts [][3]uint32
	triIndex *atomic.Int32
	table    *HashTable
}

// createTri emits the triangle named by tri (indices into edges), unless its
// first entry is negative, meaning this case has no triangle in that slot.
func (b *buildTris) createTri(tri [3]int32, edges [6]int32) {
	if tri[0] < 0 {
		return
	}
	idx := b.triIndex.Add(1) - 1
	b.triVerts[idx] = [3]uint32{
		uint32(edges[tri[0]]),
		uint32(edges[tri[1]]),
		uint32(edges[tri[2]]),
	}
}

// createTris classifies a tet's four corner signs into a case index and
// emits its (up to two) triangles.
func (b *buildTris) createTris(tet [4]int, edges [6]int32) {
	i := 0
	if tet[0] > 0 {
		i += 1
	}
	if tet[1] > 0 {
		i += 2
	}
	if tet[2] > 0 {
		i += 4
	}
	if tet[3] > 0 {
		i += 8
	}
	b.createTri(tetTri0[i], edges)
	b.createTri(tetTri1[i], edges)
}

// run processes one occupied (or empty) table slot.
func (b *buildTris) run(idx uint32) {
	base := b.table.At(idx)
	if base.Key == openKey {
		return
	}

	baseIndex := decodeGridIndex(base.Key)
	lead := leadEdge(baseIndex)

	// base is in charge of the 6 tetrahedra surrounding the edge from
	// baseIndex to lead (owned edge 0).
	tet := [4]int{base.NeighborInside(0), base.Inside(), -2, -2}

	thisIndex := baseIndex
	thisIndex.x++
	thisVert := b.table.Lookup(mortonKey(thisIndex))

	tet[2] = base.NeighborInside(1)
	for i := 0; i < 3; i++ {
		p3 := prev3[i]
		thisIndex = lead
		switch p3 {
		case 0:
			thisIndex.x--
		case 1:
			thisIndex.y--
		default:
			thisIndex.z--
		}
		var nextVert GridVert
		if thisIndex.at(p3) < 0 {
			nextVert = emptyGridVert()
		} else {
			nextVert = b.table.Lookup(mortonKey(thisIndex))
		}
		tet[3] = base.NeighborInside(p3 + 4)

		n3 := next3[i]
		edges1 := [6]int32{
			base.EdgeVerts[0],
			base.EdgeVerts[i+1],
			nextVert.EdgeVerts[n3+4],
			nextVert.EdgeVerts[p3+1],
			thisVert.EdgeVerts[i+4],
			base.EdgeVerts[p3+4],
		}
		thisVert = nextVert
		b.createTris(tet, edges1)

		thisIndex = baseIndex
		switch n3 {
		case 0:
			thisIndex.x++
		case 1:
			thisIndex.y++
		default:
			thisIndex.z++
		}
		nextVert = b.table.Lookup(mortonKey(thisIndex))
		tet[2] = tet[3]
		tet[3] = base.NeighborInside(n3 + 1)

		edges2 := [6]int32{
			base.EdgeVerts[0],
			edges1[5],
			thisVert.EdgeVerts[i+4],
			nextVert.EdgeVerts[n3+4],
			edges1[3],
			base.EdgeVerts[n3+1],
		}
		thisVert = nextVert
		b.createTris(tet, edges2)

		tet[2] = tet[3]
	}
}
