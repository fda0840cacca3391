package scene

import (
	"fmt"
	"strings"

	"github.com/taigrr/prism/pkg/math3d"
)

// LightKind selects point or rectangular area lighting.
type LightKind int

const (
	PointLight LightKind = iota
	AreaLight
)

func (k LightKind) String() string {
	switch k {
	case PointLight:
		return "point"
	case AreaLight:
		return "area"
	}
	return fmt.Sprintf("LightKind(%d)", int(k))
}

// ParseLightKind parses "point" or "area".
func ParseLightKind(s string) (LightKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "":
		return PointLight, nil
	case "area":
		return AreaLight, nil
	}
	return PointLight, fmt.Errorf("unknown light kind %q", s)
}

// Default area light footprint used when a point light is switched to an
// area light without spans of its own.
var (
	DefaultSpanU = math3d.V3(0.25, 0, 0)
	DefaultSpanV = math3d.V3(0, 0, 0.25)
)

// Light is a white point or area light.
//
// For an area light, Position is the corner of the rectangle: the light
// covers Position + u*SpanU + v*SpanV for u, v in [0, 1], centred on the
// nominal light location.
type Light struct {
	Kind     LightKind
	Position math3d.Vec3
	Strength float64
	Ambient  float64

	SpanU, SpanV       math3d.Vec3
	SamplesU, SamplesV int
}

// NewPointLight creates a point light.
func NewPointLight(pos math3d.Vec3, strength, ambient float64) *Light {
	return &Light{
		Kind:     PointLight,
		Position: pos,
		Strength: strength,
		Ambient:  ambient,
		SpanU:    DefaultSpanU,
		SpanV:    DefaultSpanV,
	}
}

// NewAreaLight creates a rectangular light centred on center, sampled on a
// samplesU x samplesV jittered grid.
func NewAreaLight(center, spanU, spanV math3d.Vec3, samplesU, samplesV int, strength, ambient float64) *Light {
	return &Light{
		Kind:     AreaLight,
		Position: center.Sub(spanU.Scale(0.5)).Sub(spanV.Scale(0.5)),
		Strength: strength,
		Ambient:  ambient,
		SpanU:    spanU,
		SpanV:    spanV,
		SamplesU: samplesU,
		SamplesV: samplesV,
	}
}

// Center returns the nominal light location.
func (l *Light) Center() math3d.Vec3 {
	if l.Kind == AreaLight {
		return l.Position.Add(l.SpanU.Scale(0.5)).Add(l.SpanV.Scale(0.5))
	}
	return l.Position
}

// SamplePoint returns the point at (u, v) on the light's rectangle. Point
// lights always return their position.
func (l *Light) SamplePoint(u, v float64) math3d.Vec3 {
	if l.Kind != AreaLight {
		return l.Position
	}
	return l.Position.Add(l.SpanU.Scale(u)).Add(l.SpanV.Scale(v))
}

// SetKind switches between point and area lighting, keeping the nominal
// location fixed.
func (l *Light) SetKind(k LightKind) {
	if k == l.Kind {
		return
	}
	center := l.Center()
	l.Kind = k
	if k == AreaLight {
		if l.SpanU == (math3d.Vec3{}) && l.SpanV == (math3d.Vec3{}) {
			l.SpanU, l.SpanV = DefaultSpanU, DefaultSpanV
		}
		l.Position = center.Sub(l.SpanU.Scale(0.5)).Sub(l.SpanV.Scale(0.5))
		return
	}
	l.Position = center
}

// Translate moves the light by d.
func (l *Light) Translate(d math3d.Vec3) {
	l.Position = l.Position.Add(d)
}

// Rotate rotates the light's nominal location about the origin by Euler
// angles in degrees. Area light spans rotate with it.
func (l *Light) Rotate(xDeg, yDeg, zDeg float64) {
	r := math3d.Rotate3(xDeg, yDeg, zDeg)
	center := r.MulVec3(l.Center())
	l.SpanU = r.MulVec3(l.SpanU)
	l.SpanV = r.MulVec3(l.SpanV)
	if l.Kind == AreaLight {
		l.Position = center.Sub(l.SpanU.Scale(0.5)).Sub(l.SpanV.Scale(0.5))
		return
	}
	l.Position = center
}
