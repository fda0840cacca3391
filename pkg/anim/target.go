package anim

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// Target is something a track animates.
type Target interface {
	Name() string
	// Supports reports whether Apply understands op. Wait and Switch are
	// handled by the timeline and never reach a target.
	Supports(op Op) bool
	Apply(a Action)
}

// CameraTarget moves a camera. When LookAt is set the camera turns to face
// it after every orbit step.
type CameraTarget struct {
	Camera *render.Camera
	LookAt *math3d.Vec3
}

func (CameraTarget) Name() string { return "camera" }

func (CameraTarget) Supports(op Op) bool {
	switch op {
	case Translate, Rotate, RotatePosition:
		return true
	}
	return false
}

func (t CameraTarget) Apply(a Action) {
	switch a.Op {
	case Translate:
		t.Camera.Translate(a.Delta)
	case Rotate:
		t.Camera.Rotate(a.Delta.X, a.Delta.Y, a.Delta.Z)
	case RotatePosition:
		t.Camera.RotatePosition(a.Delta.X, a.Delta.Y, a.Delta.Z)
		if t.LookAt != nil {
			t.Camera.LookAt(*t.LookAt)
		}
	}
}

// LightTarget moves the light and switches it between point and area.
// Rotation turns its location about the origin.
type LightTarget struct {
	Light *scene.Light
}

func (LightTarget) Name() string { return "light" }

func (LightTarget) Supports(op Op) bool {
	switch op {
	case Translate, Rotate, RotatePosition, SetLight:
		return true
	}
	return false
}

func (t LightTarget) Apply(a Action) {
	switch a.Op {
	case Translate:
		t.Light.Translate(a.Delta)
	case Rotate, RotatePosition:
		t.Light.Rotate(a.Delta.X, a.Delta.Y, a.Delta.Z)
	case SetLight:
		t.Light.SetKind(a.Light)
	}
}

// ObjectTarget transforms a scene object about the origin and switches its
// material.
type ObjectTarget struct {
	Object *scene.Object
}

func (t ObjectTarget) Name() string { return t.Object.Name }

func (ObjectTarget) Supports(op Op) bool {
	switch op {
	case Translate, Rotate, Scale, SetMaterial:
		return true
	}
	return false
}

func (t ObjectTarget) Apply(a Action) {
	switch a.Op {
	case Translate:
		t.Object.Translate(a.Delta)
	case Rotate:
		t.Object.Rotate(a.Delta.X, a.Delta.Y, a.Delta.Z)
	case Scale:
		t.Object.Scale(a.Delta)
	case SetMaterial:
		t.Object.SetMaterial(a.Material)
	}
}
