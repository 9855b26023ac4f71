package render

import (
	"testing"
	"time"

	sdf "github.com/soypat/bccsurf"
	"github.com/soypat/bccsurf/levelset"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestKDLookup(t *testing.T) {
	s := sdf.Sphere3D(1)
	mesh := levelset.LevelSet(s, s.Bounds(), 0.1, 0)
	model := ToTriangle3s(mesh)
	mykd := make(kdTriangles, len(model))
	for i := range mykd {
		mykd[i] = kdTriangle(model[i])
	}
	v := kdtree.New(mykd, true)
	start := time.Now()
	out, d := v.Nearest(kdTriangle{
		V: [3]r3.Vec{
			{X: 1},
			{X: 1},
			{X: 1},
		},
	})
	result := out.(kdTriangle)
	t.Log(len(model), time.Since(start), result, d)
}

func TestNewKDSDF(t *testing.T) {
	s := sdf.Sphere3D(1)
	mesh := levelset.LevelSet(s, s.Bounds(), 0.1, 0)
	model := ToTriangle3s(mesh)
	kd := NewKDSDF(model)
	const tol = 0.15
	for _, p := range []r3.Vec{{X: 1}, {Y: 1}, {Z: -1}} {
		d := kd.Evaluate(p)
		if d < -tol || d > tol {
			t.Errorf("Evaluate(%v) = %f, want close to the unit sphere surface", p, d)
		}
	}
}
