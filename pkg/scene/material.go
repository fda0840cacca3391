package scene

import (
	"fmt"
	"strings"
)

// Material selects how a surface is shaded. The set of implementations is
// closed: only the variants in this file satisfy the interface. Zero-valued
// parameters fall back to the defaults below.
type Material interface {
	// Name returns the lowercase identifier used in scene files.
	Name() string
	material()
}

// Flat is diffuse plus ambient lighting using the face normal.
type Flat struct{}

// FlatSpecular is Flat plus a white Phong highlight.
type FlatSpecular struct {
	Exponent float64
}

// SmoothGouraud evaluates lighting at the three vertex normals and blends the
// results across the face.
type SmoothGouraud struct {
	Exponent float64
}

// SmoothPhong interpolates the vertex normals and lights the hit point once.
type SmoothPhong struct {
	Exponent float64
}

// Mirror reflects the view ray about the face normal.
type Mirror struct {
	Reflectivity float64
	Exponent     float64
}

// MirrorPhong reflects about the interpolated vertex normal.
type MirrorPhong struct {
	Reflectivity float64
	Exponent     float64
}

// Glass refracts and reflects about the face normal, mixed by Fresnel
// reflectance. A zero IOR defers to the render configuration.
type Glass struct {
	IOR          float64
	Transmission float64
	Bias         float64
	Exponent     float64
}

// GlassPhong is Glass using the interpolated vertex normal.
type GlassPhong struct {
	IOR          float64
	Transmission float64
	Bias         float64
	Exponent     float64
}

// Emitter is visible light-source geometry. It is drawn plain white and is
// not lit.
type Emitter struct{}

func (Flat) material()          {}
func (FlatSpecular) material()  {}
func (SmoothGouraud) material() {}
func (SmoothPhong) material()   {}
func (Mirror) material()        {}
func (MirrorPhong) material()   {}
func (Glass) material()         {}
func (GlassPhong) material()    {}
func (Emitter) material()       {}

func (Flat) Name() string          { return "flat" }
func (FlatSpecular) Name() string  { return "flat_specular" }
func (SmoothGouraud) Name() string { return "smooth_gouraud" }
func (SmoothPhong) Name() string   { return "smooth_phong" }
func (Mirror) Name() string        { return "mirror" }
func (MirrorPhong) Name() string   { return "mirror_phong" }
func (Glass) Name() string         { return "glass" }
func (GlassPhong) Name() string    { return "glass_phong" }
func (Emitter) Name() string       { return "light" }

// Default material parameters.
const (
	FlatExponent           = 256
	SmoothExponent         = 16
	MirrorExponent         = 512
	MirrorPhongExponent    = 256
	GlassExponent          = 256
	DefaultReflectivity    = 0.8
	GlassTransmission      = 0.8
	GlassPhongTransmission = 0.98
	GlassFaceBias          = 1e-4
	GlassInterpolateBias   = 1e-2
)

// ParseMaterial returns the default-valued variant for a material name.
func ParseMaterial(name string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat":
		return Flat{}, nil
	case "flat_specular":
		return FlatSpecular{Exponent: FlatExponent}, nil
	case "smooth_gouraud", "gouraud":
		return SmoothGouraud{Exponent: SmoothExponent}, nil
	case "smooth_phong", "phong":
		return SmoothPhong{Exponent: SmoothExponent}, nil
	case "mirror":
		return Mirror{Reflectivity: DefaultReflectivity, Exponent: MirrorExponent}, nil
	case "mirror_phong":
		return MirrorPhong{Reflectivity: DefaultReflectivity, Exponent: MirrorPhongExponent}, nil
	case "glass":
		return Glass{Transmission: GlassTransmission, Bias: GlassFaceBias, Exponent: GlassExponent}, nil
	case "glass_phong":
		return GlassPhong{Transmission: GlassPhongTransmission, Bias: GlassInterpolateBias, Exponent: GlassExponent}, nil
	case "light", "emitter":
		return Emitter{}, nil
	}
	return nil, fmt.Errorf("unknown material %q", name)
}

// SmoothNormals reports whether a material reads per-vertex normals.
func SmoothNormals(m Material) bool {
	switch m.(type) {
	case SmoothGouraud, SmoothPhong, MirrorPhong, GlassPhong:
		return true
	}
	return false
}
