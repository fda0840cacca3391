package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

func parse(t *testing.T, src string) *Setup {
	t.Helper()
	s, err := ParseScene(strings.NewReader(src), "")
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	return s
}

func TestParseSceneEmpty(t *testing.T) {
	s := parse(t, "")
	if diff := cmp.Diff(render.DefaultConfig(), s.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if len(s.Scene.Objects) != 0 {
		t.Errorf("got %d objects, want none", len(s.Scene.Objects))
	}
	if s.Camera.Position != math3d.V3(0, 0, 3) {
		t.Errorf("camera at %v, want (0, 0, 3)", s.Camera.Position)
	}
	if s.Timeline != nil {
		t.Error("timeline without an animation section")
	}
}

func TestParseScenePreset(t *testing.T) {
	s := parse(t, `
preset: cornell
render:
  width: 320
  height: 240
  max_depth: 4
light:
  kind: area
  position: [0, 0.9, 0]
  samples_u: 2
  samples_v: 3
`)

	if s.Config.Width != 320 || s.Config.Height != 240 || s.Config.MaxDepth != 4 {
		t.Errorf("config = %+v, want 320x240 depth 4", s.Config)
	}
	if s.Config.FocalLength != 4 {
		t.Errorf("FocalLength = %v, want the default 4", s.Config.FocalLength)
	}
	if len(s.Scene.Objects) != 8 {
		t.Errorf("got %d objects, want the 8 of the Cornell box", len(s.Scene.Objects))
	}
	if s.Light.Kind != scene.AreaLight {
		t.Errorf("light kind = %v, want area", s.Light.Kind)
	}
	assertNear(t, "light centre", s.Light.Center(), math3d.V3(0, 0.9, 0))
	if s.Light.Strength != 10 || s.Light.Ambient != 0.3 {
		t.Errorf("light strength/ambient = %v/%v, want the preset's 10/0.3", s.Light.Strength, s.Light.Ambient)
	}
	if s.Light.SamplesU != 2 || s.Light.SamplesV != 3 {
		t.Errorf("samples = %dx%d, want 2x3", s.Light.SamplesU, s.Light.SamplesV)
	}
}

func TestParseSceneShapes(t *testing.T) {
	s := parse(t, `
camera:
  position: [0, 0, 5]
  look_at: [0, 0, 0]
light:
  position: [1, 2, 3]
  strength: 4
objects:
  - name: block
    shape: {kind: box, min: [0, 0, 0], max: [1, 1, 1]}
    color: [0, 255, 0]
    material: mirror
    reflectivity: 0.5
    translate: [2, 0, 0]
  - name: ball
    shape: {kind: sphere, center: [0, 0, 0], radius: 1, segments: 8, rings: 4}
    material: glass
    ior: 1.3
    shadows: false
  - name: tiles
    shape: {kind: quad, corner: [-1, -1, 0], u: [2, 0, 0], v: [0, 2, 0]}
    texture: checker
`)

	if got := len(s.Scene.Objects); got != 3 {
		t.Fatalf("got %d objects, want 3", got)
	}
	if s.Light.Kind != scene.PointLight || s.Light.Position != math3d.V3(1, 2, 3) || s.Light.Strength != 4 {
		t.Errorf("light = %+v, want point light of strength 4 at (1, 2, 3)", s.Light)
	}
	assertNear(t, "camera forward", s.Camera.Forward(), math3d.V3(0, 0, 1))

	block, _ := s.Scene.ObjectByName("block")
	if diff := cmp.Diff(scene.Material(scene.Mirror{Reflectivity: 0.5, Exponent: scene.MirrorExponent}), block.Material); diff != "" {
		t.Errorf("block material mismatch (-want +got):\n%s", diff)
	}
	if block.Triangles[0].Color != scene.RGB(0, 255, 0) {
		t.Errorf("block color = %v, want green", block.Triangles[0].Color)
	}
	if b := block.Bounds(); b.Min != math3d.V3(2, 0, 0) || b.Max != math3d.V3(3, 1, 1) {
		t.Errorf("block bounds = %v, want (2,0,0)..(3,1,1)", b)
	}

	ball, _ := s.Scene.ObjectByName("ball")
	if ball.Shadows {
		t.Error("ball casts shadows")
	}
	glass, ok := ball.Material.(scene.Glass)
	if !ok || glass.IOR != 1.3 || glass.Transmission != scene.GlassTransmission {
		t.Errorf("ball material = %+v, want glass with IOR 1.3", ball.Material)
	}
	if got, want := len(ball.Triangles), 2*8*3; got != want {
		t.Errorf("ball has %d triangles, want %d", got, want)
	}

	tiles, _ := s.Scene.ObjectByName("tiles")
	if tiles.Texture == nil {
		t.Error("tiles have no texture")
	}
	if tiles.Triangles[0].Color != DefaultColor {
		t.Errorf("tiles color = %v, want %v", tiles.Triangles[0].Color, DefaultColor)
	}
}

func TestParseSceneAnimation(t *testing.T) {
	s := parse(t, `
objects:
  - name: block
    shape: {kind: box, min: [0, 0, 0], max: [1, 1, 1]}
animation:
  tracks:
    - target: camera
      look_at: [0, 0, 0]
      steps:
        - {op: rotate_position, by: [0, 90, 0], seconds: 2, easing: spring}
    - target: light
      steps:
        - {op: light, light: area}
    - target: block
      steps:
        - {op: wait, seconds: 0.5}
        - {op: material, material: glass_phong}
    - steps:
        - {op: switch}
`)

	tl := s.Timeline
	if tl == nil {
		t.Fatal("no timeline")
	}
	if tl.Tracks() != 4 {
		t.Errorf("Tracks() = %d, want 4", tl.Tracks())
	}
	// Two seconds at the camera's default 10 fps.
	if tl.Frames() != 20 {
		t.Errorf("Frames() = %d, want 20", tl.Frames())
	}

	var switches int
	for !tl.Done() {
		if tl.Step() {
			switches++
		}
	}
	if switches != 1 {
		t.Errorf("got %d pipeline switches, want 1", switches)
	}
	assertNear(t, "camera position", s.Camera.Position, math3d.V3(-3, 0, 0))
	assertNear(t, "camera forward", s.Camera.Forward(), math3d.V3(-1, 0, 0))
	if s.Light.Kind != scene.AreaLight {
		t.Error("light was not switched to an area light")
	}
	block, _ := s.Scene.ObjectByName("block")
	if _, ok := block.Material.(scene.GlassPhong); !ok {
		t.Errorf("block material = %T, want GlassPhong", block.Material)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "colour: red\n", "colour"},
		{"unknown render field", "render: {widht: 10}\n", "widht"},
		{"invalid config", "render: {width: 0}\n", "canvas size"},
		{"unknown preset", "preset: sponza\n", "sponza"},
		{"unknown light", "light: {kind: spot}\n", "spot"},
		{"negative strength", "light: {strength: -1}\n", "negative"},
		{"no source", "objects: [{name: a}]\n", "exactly one"},
		{"two sources", "objects: [{name: a, obj: a.obj, gltf: a.glb}]\n", "exactly one"},
		{"unknown shape", "objects: [{name: a, shape: {kind: torus}}]\n", "torus"},
		{"flat sphere", "objects: [{name: a, shape: {kind: sphere}}]\n", "radius"},
		{"unknown material", "objects: [{name: a, material: chrome, shape: {kind: box}}]\n", "chrome"},
		{"missing model", "objects: [{name: a, obj: missing.obj}]\n", "missing.obj"},
		{"unknown target", "animation: {tracks: [{target: ghost, steps: [{op: wait}]}]}\n", "ghost"},
		{"unknown op", "animation: {tracks: [{target: camera, steps: [{op: jump}]}]}\n", "jump"},
		{"unsupported op", "animation: {tracks: [{target: camera, steps: [{op: scale, by: [2, 2, 2]}]}]}\n", "camera does not support scale"},
		{"targetless move", "animation: {tracks: [{steps: [{op: translate, by: [1, 0, 0]}]}]}\n", "needs a target"},
		{"bad easing", "animation: {tracks: [{target: camera, steps: [{op: rotate, easing: bounce}]}]}\n", "bounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.src), t.TempDir())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadSceneResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"models/pair.obj": testOBJ,
		"models/pair.mtl": testMTL,
		"scene.yaml": `
objects:
  - obj: models/pair.obj
    mtl: models/pair.mtl
    normalize: 1
    material: smooth_phong
`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := LoadScene(filepath.Join(dir, "scene.yaml"))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	obj, ok := s.Scene.ObjectByName("pair")
	if !ok {
		t.Fatal("object not named after its model file")
	}
	if obj.Triangles[0].Color != scene.RGB(255, 127, 63) {
		t.Errorf("color = %v, want the palette's red", obj.Triangles[0].Color)
	}
	b := obj.Bounds()
	assertNear(t, "bounds min", b.Min, math3d.V3(-0.5, -0.5, 0))
	assertNear(t, "bounds max", b.Max, math3d.V3(0.5, 0.5, 0))

	if _, err := LoadScene(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing scene file")
	}
}
