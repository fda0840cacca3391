package models

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// facesOutwards checks that every face normal points away from center.
func facesOutwards(t *testing.T, obj *scene.Object, center math3d.Vec3) {
	t.Helper()
	for i, tri := range obj.Triangles {
		mid := tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Scale(1.0 / 3)
		if tri.Normal.Dot(mid.Sub(center)) <= 0 {
			t.Errorf("triangle %d normal %v points inwards", i, tri.Normal)
		}
	}
}

func TestQuad(t *testing.T) {
	m := Quad(math3d.V3(0, 0, 0), math3d.V3(2, 0, 0), math3d.V3(0, 1, 0), scene.Red)
	if m.TriangleCount() != 2 || m.VertexCount() != 4 {
		t.Fatalf("got %d faces, %d vertices, want 2 and 4", m.TriangleCount(), m.VertexCount())
	}
	obj := m.ToObject("", scene.Flat{}, true)
	if obj.Name != "quad" {
		t.Errorf("Name = %q, want quad", obj.Name)
	}
	for i, tri := range obj.Triangles {
		if tri.Normal != math3d.V3(0, 0, 1) {
			t.Errorf("triangle %d normal = %v, want +Z", i, tri.Normal)
		}
		if tri.Color != scene.Red {
			t.Errorf("triangle %d color = %v, want red", i, tri.Color)
		}
	}
	if m.Size() != math3d.V3(2, 1, 0) {
		t.Errorf("Size() = %v, want (2, 1, 0)", m.Size())
	}
}

func TestBox(t *testing.T) {
	lo, hi := math3d.V3(-1, 0, 2), math3d.V3(1, 3, 4)
	m := Box(lo, hi, scene.White)
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", m.TriangleCount())
	}
	if m.BoundsMin != lo || m.BoundsMax != hi {
		t.Errorf("bounds = %v..%v, want %v..%v", m.BoundsMin, m.BoundsMax, lo, hi)
	}
	facesOutwards(t, m.ToObject("box", scene.Flat{}, true), m.Center())
}

func TestSphere(t *testing.T) {
	center := math3d.V3(1, 2, 3)
	m := Sphere(center, 0.5, 16, 8, scene.White)

	// Pole rings contribute one triangle per segment, the others two.
	if got, want := m.TriangleCount(), 2*16*(8-1); got != want {
		t.Errorf("TriangleCount() = %d, want %d", got, want)
	}
	for i, v := range m.Vertices {
		if d := v.Position.Distance(center); math.Abs(d-0.5) > 1e-12 {
			t.Errorf("vertex %d at distance %v, want 0.5", i, d)
		}
	}
	obj := m.ToObject("sphere", scene.Flat{}, true)
	facesOutwards(t, obj, center)
	for i, tri := range obj.Triangles {
		if tri.FaceNormal() == (math3d.Vec3{}) {
			t.Errorf("triangle %d is degenerate", i)
		}
	}
}

func TestToObjectTextureCoordinates(t *testing.T) {
	m := Quad(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), scene.White)
	m.Texture = scene.NewCheckerTexture(64, 32, 8, scene.White, scene.Black)

	obj := m.ToObject("tiles", scene.Flat{}, true)
	if obj.Texture != m.Texture {
		t.Error("object does not carry the mesh texture")
	}
	// The quad's corner is the bottom left of the image.
	want := [3]math3d.Vec2{math3d.V2(0, 32), math3d.V2(64, 32), math3d.V2(64, 0)}
	if obj.Triangles[0].UV != want {
		t.Errorf("UV = %v, want %v", obj.Triangles[0].UV, want)
	}
}

func TestMeshNormalize(t *testing.T) {
	m := Box(math3d.V3(2, 2, 2), math3d.V3(6, 4, 3), scene.White)
	m.Normalize(2)
	assertNear(t, "BoundsMin", m.BoundsMin, math3d.V3(-1, -0.5, -0.25))
	assertNear(t, "BoundsMax", m.BoundsMax, math3d.V3(1, 0.5, 0.25))
}

func TestMeshClone(t *testing.T) {
	m := Box(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1), scene.White)
	c := m.Clone()
	c.Transform(math3d.Translate(math3d.V3(5, 0, 0)))
	if m.BoundsMin != math3d.V3(0, 0, 0) {
		t.Errorf("original moved to %v", m.BoundsMin)
	}
	if c.BoundsMin != math3d.V3(5, 0, 0) {
		t.Errorf("clone BoundsMin = %v, want (5, 0, 0)", c.BoundsMin)
	}
}

func TestCornellBox(t *testing.T) {
	s := CornellBox(render.DefaultConfig())

	if got := len(s.Scene.Objects); got != 8 {
		t.Fatalf("got %d objects, want 8", got)
	}
	for i, o := range s.Scene.Objects {
		if o.ID() != scene.ObjectID(i) {
			t.Errorf("object %s has id %d, want %d", o.Name, o.ID(), i)
		}
	}

	sphere, ok := s.Scene.ObjectByName("sphere")
	if !ok {
		t.Fatal("no sphere")
	}
	if sphere.Shadows {
		t.Error("sphere casts shadows")
	}
	if _, ok := sphere.Material.(scene.GlassPhong); !ok {
		t.Errorf("sphere material = %T, want GlassPhong", sphere.Material)
	}
	left, _ := s.Scene.ObjectByName("leftWall")
	if left.Triangles[0].Normal != math3d.V3(1, 0, 0) {
		t.Errorf("left wall normal = %v, want +X", left.Triangles[0].Normal)
	}

	pos := math3d.V3(-3*math.Sin(deg(5)), 0, 3*math.Cos(deg(5)))
	assertNear(t, "camera position", s.Camera.Position, pos)
	assertNear(t, "camera forward", s.Camera.Forward(), pos.Scale(1.0/3))
	if s.Light.Kind != scene.PointLight || s.Light.Position != math3d.V3(0, 0, 1) {
		t.Errorf("light = %+v, want point light at (0, 0, 1)", s.Light)
	}
	if s.Light.Strength != 10 || s.Light.Ambient != 0.3 {
		t.Errorf("light strength/ambient = %v/%v, want 10/0.3", s.Light.Strength, s.Light.Ambient)
	}
}

func BenchmarkSphere(b *testing.B) {
	for b.Loop() {
		Sphere(math3d.Zero3(), 1, 64, 32, scene.White).ToObject("sphere", scene.SmoothPhong{}, true)
	}
}
