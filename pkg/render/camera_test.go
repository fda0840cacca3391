package render

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/taigrr/prism/pkg/math3d"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestLookAt(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, 3), 4)
	cam.LookAt(math3d.Zero3())
	if diff := cmp.Diff(math3d.Identity3(), cam.Orientation, approx); diff != "" {
		t.Errorf("orientation mismatch (-want +got):\n%s", diff)
	}

	cam = NewCamera(math3d.V3(3, 0, 0), 4)
	cam.LookAt(math3d.Zero3())
	if diff := cmp.Diff(math3d.V3(1, 0, 0), cam.Forward(), approx); diff != "" {
		t.Errorf("forward mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(math3d.V3(0, 1, 0), cam.Up(), approx); diff != "" {
		t.Errorf("up mismatch (-want +got):\n%s", diff)
	}
}

func TestLookAtStraightDown(t *testing.T) {
	tests := []struct {
		name      string
		pos       math3d.Vec3
		roll      float64
		wantRight math3d.Vec3
		wantUp    math3d.Vec3
	}{
		{"from above", math3d.V3(0, 3, 0), 0, math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{"from below", math3d.V3(0, -3, 0), 0, math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		{"right axis parallel", math3d.V3(0, 3, 0), 90, math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(tc.pos, 4)
			cam.Rotate(0, 0, tc.roll)
			cam.LookAt(math3d.Zero3())
			if diff := cmp.Diff(tc.wantRight, cam.Right(), approx); diff != "" {
				t.Errorf("right mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantUp, cam.Up(), approx); diff != "" {
				t.Errorf("up mismatch (-want +got):\n%s", diff)
			}
			if det := cam.Orientation.Determinant(); math.Abs(det-1) > 1e-9 {
				t.Errorf("determinant = %v, want 1", det)
			}
			if diff := cmp.Diff(tc.pos.Scale(-1.0/3), cam.PrimaryRay(320, 240, 640, 480), approx); diff != "" {
				t.Errorf("centre ray mismatch (-want +got):\n%s", diff)
			}
		})
	}

	cam := NewCamera(math3d.V3(0, 3, 0), 4)
	cam.LookAt(math3d.Zero3())
	got, ok := cam.Project(math3d.V3(0.5, 0, 0.5), 640, 480)
	if !ok {
		t.Fatal("point below the camera should be visible")
	}
	want := CanvasPoint{X: 320 + 200.0/3, Y: 240 + 200.0/3, Depth: 1.0 / 3}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", diff)
	}
	dir := cam.PrimaryRay(got.X, got.Y, 640, 480)
	if diff := cmp.Diff(math3d.V3(0.5, -3, 0.5).Normalize(), dir, approx); diff != "" {
		t.Errorf("ray mismatch (-want +got):\n%s", diff)
	}
}

func TestProject(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, 3), 4)
	tests := []struct {
		name string
		p    math3d.Vec3
		want CanvasPoint
		ok   bool
	}{
		{"origin", math3d.Zero3(), CanvasPoint{X: 320, Y: 240, Depth: 1.0 / 3}, true},
		{"right", math3d.V3(1, 0, 0), CanvasPoint{X: 320 + 400.0/3, Y: 240, Depth: 1.0 / 3}, true},
		{"up is canvas up", math3d.V3(0, 1, 0), CanvasPoint{X: 320, Y: 240 - 400.0/3, Depth: 1.0 / 3}, true},
		{"behind", math3d.V3(0, 0, 4), CanvasPoint{}, false},
		{"on camera plane", math3d.V3(1, 0, 3), CanvasPoint{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := cam.Project(tc.p, 640, 480)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if diff := cmp.Diff(tc.want, got, approx); diff != "" {
				t.Errorf("projection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrimaryRayInvertsProject(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, 3), 4)
	cam.RotatePosition(0, 5, 0)
	cam.LookAt(math3d.Zero3())

	for _, px := range [][2]float64{{320, 240}, {0, 0}, {639, 17}, {100, 400}} {
		dir := cam.PrimaryRay(px[0], px[1], 640, 480)
		if l := dir.Len(); math.Abs(l-1) > 1e-9 {
			t.Errorf("ray length = %v, want 1", l)
		}
		got, ok := cam.Project(cam.Position.Add(dir.Scale(5)), 640, 480)
		if !ok {
			t.Fatalf("point along ray %v not in front of camera", px)
		}
		if math.Abs(got.X-px[0]) > 1e-6 || math.Abs(got.Y-px[1]) > 1e-6 {
			t.Errorf("ray through %v projects to (%v, %v)", px, got.X, got.Y)
		}
	}
}

func TestCameraRotate(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 4)
	cam.Rotate(0, 90, 0)
	// Forward (0,0,1) turns towards -X under +90 degrees about Y.
	if diff := cmp.Diff(math3d.V3(-1, 0, 0), cam.Forward(), approx); diff != "" {
		t.Errorf("forward mismatch (-want +got):\n%s", diff)
	}
}

func TestRotatePosition(t *testing.T) {
	cam := NewCamera(math3d.V3(3, 0, 0), 4)
	cam.RotatePosition(0, 90, 0)
	if diff := cmp.Diff(math3d.V3(0, 0, 3), cam.Position, approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}
