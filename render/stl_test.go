package render_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	sdf "github.com/soypat/bccsurf"
	"github.com/soypat/bccsurf/levelset"
	"github.com/soypat/bccsurf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLCreateWriteRead(t *testing.T) {
	box := sdf.Box3D(r3.Vec{X: 3, Y: 2, Z: 1}, 0.1)
	mesh := levelset.LevelSet(box, box.Bounds(), 0.2, 0)

	path := filepath.Join(t.TempDir(), "box.stl")
	if err := render.CreateSTL(path, render.NewMeshRenderer(mesh)); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	bfile, err := io.ReadAll(fp)
	if err != nil {
		t.Fatal(err)
	}

	model := render.ToTriangle3s(mesh)
	var b bytes.Buffer
	if err := render.WriteSTL(&b, model); err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}

	rd, err := render.ReadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	readBack, err := render.RenderAll(rd)
	if err != nil {
		t.Fatal(err)
	}
	if len(readBack) != len(model) {
		t.Fatalf("ReadSTL got %d triangles, want %d", len(readBack), len(model))
	}
}
