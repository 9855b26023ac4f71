package render_test

import (
	"os"
	"runtime/pprof"
	"testing"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	sdf "github.com/soypat/bccsurf"
	"github.com/soypat/bccsurf/internal/d3"
	"github.com/soypat/bccsurf/levelset"
	"github.com/soypat/bccsurf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	benchQuality = 300
)

// sdfxAdapter lets a github.com/deadsy/sdfx SDF3 stand in for this module's
// SDF, so the two libraries' output can be compared against the same shape.
type sdfxAdapter struct{ s sdfx.SDF3 }

func (a sdfxAdapter) Evaluate(p r3.Vec) float64 {
	return a.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a sdfxAdapter) Bounds() r3.Box {
	bb := a.s.BoundingBox()
	return r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

func BenchmarkSDFXSphereOctree(b *testing.B) {
	object, err := sdfx.Sphere3D(20)
	if err != nil {
		b.Fatal(err)
	}
	output := b.TempDir() + "/sdfx_sphere.stl"
	for i := 0; i < b.N; i++ {
		err := sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLevelSetSphereEquivalent(b *testing.B) {
	object, err := sdfx.Sphere3D(20)
	if err != nil {
		b.Fatal(err)
	}
	adapted := sdfxAdapter{s: object}
	output := b.TempDir() + "/our_sphere.stl"
	for i := 0; i < b.N; i++ {
		mesh := levelset.LevelSet(adapted, adapted.Bounds(), 1.0, 0)
		err := render.CreateSTL(output, render.NewMeshRenderer(mesh))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func testStressProfile(t *testing.T) {
	dir := t.TempDir()
	startProf(t, dir+"/stress.prof")
	stlStressTest(t, dir+"/stress.stl")
	defer pprof.StopCPUProfile()
	stlToPNG(t, dir+"/stress.stl", dir+"/stress.png", viewConfig{
		up:     r3.Vec{Z: 1},
		eyepos: d3.Elem(3),
		near:   1,
		far:    10,
	})
}

func stlStressTest(t testing.TB, filename string) {
	object := sdf.Torus3D(16, 2)
	mesh := levelset.LevelSet(object, object.Bounds(), 0.2, 0)
	err := render.CreateSTL(filename, render.NewMeshRenderer(mesh))
	if err != nil {
		t.Fatal(err)
	}
}

func startProf(t testing.TB, name string) {
	fp, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	err = pprof.StartCPUProfile(fp)
	if err != nil {
		t.Fatal(err)
	}
}
