package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/taigrr/prism/pkg/math3d"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestNewAreaLightStoresCorner(t *testing.T) {
	l := NewAreaLight(math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), 4, 2, 10, 0.3)

	if diff := cmp.Diff(math3d.V3(-0.5, 1, -0.5), l.Position, approx); diff != "" {
		t.Errorf("corner mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(math3d.V3(0, 1, 0), l.Center(), approx); diff != "" {
		t.Errorf("centre mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		u, v float64
		want math3d.Vec3
	}{
		{0, 0, math3d.V3(-0.5, 1, -0.5)},
		{1, 0, math3d.V3(0.5, 1, -0.5)},
		{1, 1, math3d.V3(0.5, 1, 0.5)},
		{0.5, 0.5, math3d.V3(0, 1, 0)},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, l.SamplePoint(tt.u, tt.v), approx); diff != "" {
			t.Errorf("SamplePoint(%v, %v) mismatch (-want +got):\n%s", tt.u, tt.v, diff)
		}
	}
}

func TestPointLightSamplePoint(t *testing.T) {
	l := NewPointLight(math3d.V3(1, 2, 3), 10, 0.3)
	if got := l.SamplePoint(0.9, 0.1); got != l.Position {
		t.Errorf("SamplePoint = %v, want %v", got, l.Position)
	}
	if got := l.Center(); got != l.Position {
		t.Errorf("Center = %v, want %v", got, l.Position)
	}
}

func TestLightSetKindKeepsCenter(t *testing.T) {
	center := math3d.V3(0, 1, 0)
	l := NewPointLight(center, 10, 0.3)

	l.SetKind(AreaLight)
	if l.Kind != AreaLight {
		t.Fatalf("Kind = %v, want area", l.Kind)
	}
	if diff := cmp.Diff(math3d.V3(-0.125, 1, -0.125), l.Position, approx); diff != "" {
		t.Errorf("corner mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(center, l.Center(), approx); diff != "" {
		t.Errorf("centre mismatch (-want +got):\n%s", diff)
	}

	// Switching to the kind it already has changes nothing.
	before := *l
	l.SetKind(AreaLight)
	if *l != before {
		t.Errorf("SetKind(area) on an area light changed it to %+v", *l)
	}

	l.SetKind(PointLight)
	if diff := cmp.Diff(center, l.Position, approx); diff != "" {
		t.Errorf("point position mismatch (-want +got):\n%s", diff)
	}
}

func TestLightSetKindRestoresZeroSpans(t *testing.T) {
	l := &Light{Kind: PointLight, Position: math3d.V3(2, 0, 0)}
	l.SetKind(AreaLight)
	if l.SpanU != DefaultSpanU || l.SpanV != DefaultSpanV {
		t.Errorf("spans = %v, %v, want defaults", l.SpanU, l.SpanV)
	}
	if diff := cmp.Diff(math3d.V3(2, 0, 0), l.Center(), approx); diff != "" {
		t.Errorf("centre mismatch (-want +got):\n%s", diff)
	}
}

func TestLightRotate(t *testing.T) {
	tests := []struct {
		name  string
		light *Light
	}{
		{"point", NewPointLight(math3d.V3(0, 1, 2), 10, 0.3)},
		{"area", NewAreaLight(math3d.V3(0, 1, 2), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), 2, 2, 10, 0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.light
			l.Rotate(0, 90, 0)
			// +90 degrees about Y turns +Z towards -X.
			if diff := cmp.Diff(math3d.V3(-2, 1, 0), l.Center(), approx); diff != "" {
				t.Errorf("centre mismatch (-want +got):\n%s", diff)
			}
			if l.Kind != AreaLight {
				return
			}
			if diff := cmp.Diff(math3d.V3(0, 0, 1), l.SpanU, approx); diff != "" {
				t.Errorf("SpanU mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(math3d.V3(-1, 0, 0), l.SpanV, approx); diff != "" {
				t.Errorf("SpanV mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLightTranslate(t *testing.T) {
	l := NewAreaLight(math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), 2, 2, 10, 0.3)
	l.Translate(math3d.V3(1, 0, -1))
	if diff := cmp.Diff(math3d.V3(1, 1, -1), l.Center(), approx); diff != "" {
		t.Errorf("centre mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLightKind(t *testing.T) {
	tests := []struct {
		in      string
		want    LightKind
		wantErr bool
	}{
		{"point", PointLight, false},
		{"", PointLight, false},
		{" Area ", AreaLight, false},
		{"spot", PointLight, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLightKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLightKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLightKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if got := LightKind(7).String(); got != "LightKind(7)" {
		t.Errorf("String() = %q", got)
	}
}
