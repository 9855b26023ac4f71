package levelset

import "gonum.org/v1/gonum/spatial/r3"

// Mesh is the flat output of LevelSet: a vertex position buffer and a
// triangle index buffer referencing it. Winding is outward-facing.
type Mesh struct {
	VertPos  []r3.Vec
	TriVerts [][3]uint32
}
