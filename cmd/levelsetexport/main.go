// Command levelsetexport extracts a triangle mesh from a signed distance
// field and writes it to an STL file.
package main

import (
	"flag"
	"log"
	"time"

	sdf "github.com/soypat/bccsurf"
	"github.com/soypat/bccsurf/levelset"
	"github.com/soypat/bccsurf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func main() {
	var (
		shape      = flag.String("shape", "sphere", "shape to extract: sphere, box, torus, dumbbell")
		edgeLength = flag.Float64("edge", 0.05, "target grid edge length")
		out        = flag.String("o", "out.stl", "output STL path")
	)
	flag.Parse()

	object, err := makeShape(*shape)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	mesh := levelset.LevelSet(object, object.Bounds(), *edgeLength, 0)
	log.Printf("extracted %d vertices, %d triangles in %s", len(mesh.VertPos), len(mesh.TriVerts), time.Since(start))

	if err := render.CreateSTL(*out, render.NewMeshRenderer(mesh)); err != nil {
		log.Fatal(err)
	}
}

func makeShape(name string) (sdf.SDF3, error) {
	switch name {
	case "sphere":
		return sdf.Sphere3D(1), nil
	case "box":
		return sdf.Box3D(r3.Vec{X: 1.5, Y: 1, Z: 0.75}, 0.1), nil
	case "torus":
		return sdf.Torus3D(1, 0.35), nil
	case "dumbbell":
		a := sdf.Sphere3D(0.6)
		b := sdf.Transform3D(sdf.Sphere3D(0.6), sdf.Translate3D(r3.Vec{X: 1.5}))
		bar := sdf.Transform3D(sdf.Box3D(r3.Vec{X: 1.5, Y: 0.2, Z: 0.2}, 0.05), sdf.Translate3D(r3.Vec{X: 0.75}))
		return sdf.Union3D(a, b, bar), nil
	default:
		return sdf.Sphere3D(1), nil
	}
}
