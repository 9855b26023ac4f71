package render

import (
	"io"

	"github.com/soypat/bccsurf/levelset"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshRenderer streams the triangles of a levelset.Mesh, implementing
// Renderer so a Mesh produced by levelset.LevelSet can feed CreateSTL or
// NewKDSDF without an intermediate triangle slice.
type MeshRenderer struct {
	mesh levelset.Mesh
	next int
}

// NewMeshRenderer wraps mesh for streaming via Renderer.
func NewMeshRenderer(mesh levelset.Mesh) *MeshRenderer {
	return &MeshRenderer{mesh: mesh}
}

// ReadTriangles fills t with up to len(t) triangles and returns how many
// were written. It returns io.EOF once every triangle has been read.
func (m *MeshRenderer) ReadTriangles(t []Triangle3) (int, error) {
	remaining := len(m.mesh.TriVerts) - m.next
	if remaining <= 0 {
		return 0, io.EOF
	}
	n := len(t)
	if n > remaining {
		n = remaining
	}
	for i := 0; i < n; i++ {
		tri := m.mesh.TriVerts[m.next+i]
		t[i] = Triangle3{V: [3]r3.Vec{
			m.mesh.VertPos[tri[0]],
			m.mesh.VertPos[tri[1]],
			m.mesh.VertPos[tri[2]],
		}}
	}
	m.next += n
	var err error
	if m.next >= len(m.mesh.TriVerts) {
		err = io.EOF
	}
	return n, err
}

// ToTriangle3s flattens a levelset.Mesh into a plain triangle slice.
func ToTriangle3s(mesh levelset.Mesh) []Triangle3 {
	out := make([]Triangle3, len(mesh.TriVerts))
	for i, tri := range mesh.TriVerts {
		out[i] = Triangle3{V: [3]r3.Vec{
			mesh.VertPos[tri[0]],
			mesh.VertPos[tri[1]],
			mesh.VertPos[tri[2]],
		}}
	}
	return out
}
