package models

import (
	"github.com/taigrr/prism/pkg/anim"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// Setup is everything needed to render a frame: configuration, scene,
// camera, light and an optional animation.
type Setup struct {
	Config   render.Config
	Scene    *scene.Scene
	Camera   *render.Camera
	Light    *scene.Light
	Timeline *anim.Timeline // nil without an animation section
}

// Cornell box palette.
var (
	cornellWhite = scene.RGB(178, 178, 178)
	cornellRed   = scene.RGB(255, 0, 0)
	cornellGreen = scene.RGB(0, 255, 0)
	cornellBlue  = scene.RGB(0, 0, 255)
)

// CornellBox builds the reference scene: a box open towards +Z spanning
// [-1, 1] on every axis with red and green side walls, a tall red box, a
// short blue box and a glass sphere resting on it. The camera sits at z=3,
// orbited 5 degrees about Y and facing the origin. A point light of strength
// 10 and ambient 0.3 hangs at (0, 0, 1).
func CornellBox(cfg render.Config) *Setup {
	walls := []struct {
		name   string
		corner math3d.Vec3
		u, v   math3d.Vec3
		color  scene.Color
	}{
		{"leftWall", math3d.V3(-1, -1, -1), math3d.V3(0, 2, 0), math3d.V3(0, 0, 2), cornellRed},
		{"rightWall", math3d.V3(1, -1, -1), math3d.V3(0, 0, 2), math3d.V3(0, 2, 0), cornellGreen},
		{"backWall", math3d.V3(-1, -1, -1), math3d.V3(2, 0, 0), math3d.V3(0, 2, 0), cornellWhite},
		{"ceiling", math3d.V3(-1, 1, -1), math3d.V3(2, 0, 0), math3d.V3(0, 0, 2), cornellWhite},
		{"floor", math3d.V3(-1, -1, -1), math3d.V3(0, 0, 2), math3d.V3(2, 0, 0), cornellWhite},
	}

	specular := scene.FlatSpecular{Exponent: scene.FlatExponent}
	scn := scene.New(
		Box(math3d.V3(-0.75, -1, -0.6), math3d.V3(-0.15, 0.2, 0), cornellRed).ToObject("redBox", specular, true),
		Box(math3d.V3(0.15, -1, -0.2), math3d.V3(0.7, -0.4, 0.35), cornellBlue).ToObject("blueBox", specular, true),
	)
	for _, w := range walls {
		scn.Add(Quad(w.corner, w.u, w.v, w.color).ToObject(w.name, specular, true))
	}
	glass := scene.GlassPhong{
		Transmission: scene.GlassPhongTransmission,
		Bias:         scene.GlassInterpolateBias,
		Exponent:     scene.GlassExponent,
	}
	scn.Add(Sphere(math3d.V3(0.42, -0.1, 0.07), 0.3, 24, 12, scene.White).ToObject("sphere", glass, false))

	cam := render.NewCamera(math3d.V3(0, 0, 3), cfg.FocalLength)
	cam.PixelScale = cfg.PixelScale
	cam.RotatePosition(0, 5, 0)
	cam.LookAt(math3d.Zero3())

	return &Setup{
		Config: cfg,
		Scene:  scn,
		Camera: cam,
		Light:  scene.NewPointLight(math3d.V3(0, 0, 1), 10, 0.3),
	}
}
