package models

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/prism/pkg/anim"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// Default frame rates for animation tracks without an fps of their own.
const (
	CameraFPS = 10
	LightFPS  = 15
	ObjectFPS = 10
)

// Vec is a YAML [x, y, z] triple.
type Vec [3]float64

func (v Vec) vec3() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

// SceneFile is the YAML scene description.
//
//	preset: cornell
//	render: {width: 320, height: 240}
//	camera: {position: [0, 0, 4], look_at: [0, 0, 0]}
//	light: {kind: area, position: [0, 0.9, 0]}
//	objects:
//	  - name: teapot
//	    obj: teapot.obj
//	    mtl: teapot.mtl
//	    material: smooth_phong
//	animation:
//	  tracks:
//	    - target: camera
//	      look_at: [0, 0, 0]
//	      steps:
//	        - {op: rotate_position, by: [0, 90, 0], seconds: 3, easing: spring}
type SceneFile struct {
	Preset    string         `yaml:"preset"`
	Render    render.Config  `yaml:"render"`
	Camera    *CameraSpec    `yaml:"camera"`
	Light     *LightSpec     `yaml:"light"`
	Objects   []ObjectSpec   `yaml:"objects"`
	Animation *AnimationSpec `yaml:"animation"`
}

// CameraSpec positions the camera. The operations run in field order.
type CameraSpec struct {
	Position       *Vec `yaml:"position"`
	RotatePosition *Vec `yaml:"rotate_position"`
	Rotate         *Vec `yaml:"rotate"`
	LookAt         *Vec `yaml:"look_at"`
}

// LightSpec describes the scene's light. Position is the light's centre.
type LightSpec struct {
	Kind     string   `yaml:"kind"`
	Position *Vec     `yaml:"position"`
	Strength *float64 `yaml:"strength"`
	Ambient  *float64 `yaml:"ambient"`
	SpanU    *Vec     `yaml:"span_u"`
	SpanV    *Vec     `yaml:"span_v"`
	SamplesU int      `yaml:"samples_u"`
	SamplesV int      `yaml:"samples_v"`
}

// ObjectSpec adds one object, read from a model file or built from a shape.
type ObjectSpec struct {
	Name      string     `yaml:"name"`
	OBJ       string     `yaml:"obj"`
	MTL       string     `yaml:"mtl"`
	GLTF      string     `yaml:"gltf"`
	Shape     *ShapeSpec `yaml:"shape"`
	Scale     float64    `yaml:"scale"`
	Normalize float64    `yaml:"normalize"`

	Material     string  `yaml:"material"`
	Exponent     float64 `yaml:"exponent"`
	Reflectivity float64 `yaml:"reflectivity"`
	IOR          float64 `yaml:"ior"`
	Transmission float64 `yaml:"transmission"`
	Shadows      *bool   `yaml:"shadows"`
	Color        *Vec    `yaml:"color"`
	Texture      string  `yaml:"texture"` // image path or "checker"
	Translate    *Vec    `yaml:"translate"`
	Rotate       *Vec    `yaml:"rotate"`
}

// ShapeSpec selects a procedural primitive: quad, box or sphere.
type ShapeSpec struct {
	Kind     string  `yaml:"kind"`
	Corner   Vec     `yaml:"corner"`
	U        Vec     `yaml:"u"`
	V        Vec     `yaml:"v"`
	Min      Vec     `yaml:"min"`
	Max      Vec     `yaml:"max"`
	Center   Vec     `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Segments int     `yaml:"segments"`
	Rings    int     `yaml:"rings"`
}

// AnimationSpec lists tracks played in parallel.
type AnimationSpec struct {
	Tracks []TrackSpec `yaml:"tracks"`
}

// TrackSpec is one track. Target is "camera", "light", an object name, or
// empty for a track that only waits and switches pipelines.
type TrackSpec struct {
	Target string     `yaml:"target"`
	FPS    float64    `yaml:"fps"`
	LookAt *Vec       `yaml:"look_at"`
	Steps  []StepSpec `yaml:"steps"`
}

// StepSpec is one step of a track.
type StepSpec struct {
	Op       string  `yaml:"op"`
	By       Vec     `yaml:"by"`
	Seconds  float64 `yaml:"seconds"`
	Easing   string  `yaml:"easing"`
	Material string  `yaml:"material"`
	Light    string  `yaml:"light"`
}

// LoadScene reads a scene file. Model and texture paths are relative to the
// file's directory.
func LoadScene(path string) (*Setup, error) {
	return LoadSceneConfig(path, render.DefaultConfig())
}

// LoadSceneConfig reads a scene file whose render section overrides cfg.
func LoadSceneConfig(path string, cfg render.Config) (*Setup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open scene")
	}
	defer f.Close()

	s, err := readScene(f, filepath.Dir(path), cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return s, nil
}

// ParseScene decodes a scene description and builds it. Relative paths are
// resolved against dir. Unknown fields are an error.
func ParseScene(r io.Reader, dir string) (*Setup, error) {
	return readScene(r, dir, render.DefaultConfig())
}

func readScene(r io.Reader, dir string, cfg render.Config) (*Setup, error) {
	sf := SceneFile{Render: cfg}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode scene")
	}
	return sf.Build(dir)
}

// Build turns the description into a renderable setup.
func (sf *SceneFile) Build(dir string) (*Setup, error) {
	cfg := sf.Render
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "render")
	}

	var setup *Setup
	switch sf.Preset {
	case "cornell":
		setup = CornellBox(cfg)
	case "":
		cam := render.NewCamera(math3d.V3(0, 0, 3), cfg.FocalLength)
		cam.PixelScale = cfg.PixelScale
		setup = &Setup{
			Config: cfg,
			Scene:  scene.New(),
			Camera: cam,
			Light:  scene.NewPointLight(math3d.V3(0, 0, 1), 10, 0.3),
		}
	default:
		return nil, errors.Errorf("unknown preset %q", sf.Preset)
	}

	if sf.Camera != nil {
		sf.Camera.apply(setup.Camera)
	}
	if sf.Light != nil {
		light, err := sf.Light.build(setup.Light)
		if err != nil {
			return nil, errors.Wrap(err, "light")
		}
		setup.Light = light
	}

	for i, spec := range sf.Objects {
		obj, err := spec.build(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "object %d (%s)", i, spec.Name)
		}
		setup.Scene.Add(obj)
	}

	if sf.Animation != nil {
		tl, err := sf.Animation.build(setup)
		if err != nil {
			return nil, errors.Wrap(err, "animation")
		}
		setup.Timeline = tl
	}
	return setup, nil
}

func (c *CameraSpec) apply(cam *render.Camera) {
	if c.Position != nil {
		cam.Position = c.Position.vec3()
	}
	if c.RotatePosition != nil {
		cam.RotatePosition(c.RotatePosition[0], c.RotatePosition[1], c.RotatePosition[2])
	}
	if c.Rotate != nil {
		cam.Rotate(c.Rotate[0], c.Rotate[1], c.Rotate[2])
	}
	if c.LookAt != nil {
		cam.LookAt(c.LookAt.vec3())
	}
}

// build creates the light, taking unset values from base.
func (l *LightSpec) build(base *scene.Light) (*scene.Light, error) {
	kind, err := scene.ParseLightKind(l.Kind)
	if err != nil {
		return nil, err
	}
	center := base.Center()
	if l.Position != nil {
		center = l.Position.vec3()
	}
	strength, ambient := base.Strength, base.Ambient
	if l.Strength != nil {
		strength = *l.Strength
	}
	if l.Ambient != nil {
		ambient = *l.Ambient
	}
	if strength < 0 || ambient < 0 {
		return nil, errors.New("strength and ambient must not be negative")
	}

	spanU, spanV := base.SpanU, base.SpanV
	if l.SpanU != nil {
		spanU = l.SpanU.vec3()
	}
	if l.SpanV != nil {
		spanV = l.SpanV.vec3()
	}

	light := scene.NewAreaLight(center, spanU, spanV, l.SamplesU, l.SamplesV, strength, ambient)
	light.SetKind(kind)
	return light, nil
}

func (o *ObjectSpec) build(dir string) (*scene.Object, error) {
	mesh, err := o.mesh(dir)
	if err != nil {
		return nil, err
	}
	if o.Normalize > 0 {
		mesh.Normalize(o.Normalize)
	}
	if o.Texture != "" {
		tex, err := loadTexture(o.Texture, dir)
		if err != nil {
			return nil, err
		}
		mesh.Texture = tex
	}

	mat := scene.Material(scene.Flat{})
	if o.Material != "" {
		m, err := scene.ParseMaterial(o.Material)
		if err != nil {
			return nil, err
		}
		mat = o.override(m)
	}
	shadows := true
	if o.Shadows != nil {
		shadows = *o.Shadows
	}

	obj := mesh.ToObject(o.Name, mat, shadows)
	if o.Rotate != nil {
		obj.Rotate(o.Rotate[0], o.Rotate[1], o.Rotate[2])
	}
	if o.Translate != nil {
		obj.Translate(o.Translate.vec3())
	}
	return obj, nil
}

func (o *ObjectSpec) mesh(dir string) (*Mesh, error) {
	scale := o.Scale
	if scale == 0 {
		scale = 1
	}
	color := DefaultColor
	if o.Color != nil {
		color = scene.RGB(o.Color[0], o.Color[1], o.Color[2])
	}

	sources := 0
	for _, set := range []bool{o.OBJ != "", o.GLTF != "", o.Shape != nil} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.New("exactly one of obj, gltf and shape must be set")
	}

	switch {
	case o.OBJ != "":
		mtl := ""
		if o.MTL != "" {
			mtl = resolve(dir, o.MTL)
		}
		return LoadOBJ(resolve(dir, o.OBJ), mtl, scale)
	case o.GLTF != "":
		l := NewGLTFLoader()
		l.Scale = scale
		return l.Load(resolve(dir, o.GLTF))
	}

	s := o.Shape
	var m *Mesh
	switch s.Kind {
	case "quad":
		m = Quad(s.Corner.vec3(), s.U.vec3(), s.V.vec3(), color)
	case "box":
		m = Box(s.Min.vec3(), s.Max.vec3(), color)
	case "sphere":
		if s.Radius <= 0 {
			return nil, errors.Errorf("sphere radius must be positive, got %v", s.Radius)
		}
		segments, rings := s.Segments, s.Rings
		if segments == 0 {
			segments = 24
		}
		if rings == 0 {
			rings = 12
		}
		m = Sphere(s.Center.vec3(), s.Radius, segments, rings, color)
	default:
		return nil, errors.Errorf("unknown shape %q", s.Kind)
	}
	if scale != 1 {
		m.Transform(math3d.Scale(math3d.V3(scale, scale, scale)))
	}
	return m, nil
}

// override replaces the default parameters of m with those set on the spec.
func (o *ObjectSpec) override(m scene.Material) scene.Material {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	switch v := m.(type) {
	case scene.FlatSpecular:
		set(&v.Exponent, o.Exponent)
		return v
	case scene.SmoothGouraud:
		set(&v.Exponent, o.Exponent)
		return v
	case scene.SmoothPhong:
		set(&v.Exponent, o.Exponent)
		return v
	case scene.Mirror:
		set(&v.Exponent, o.Exponent)
		set(&v.Reflectivity, o.Reflectivity)
		return v
	case scene.MirrorPhong:
		set(&v.Exponent, o.Exponent)
		set(&v.Reflectivity, o.Reflectivity)
		return v
	case scene.Glass:
		set(&v.Exponent, o.Exponent)
		set(&v.IOR, o.IOR)
		set(&v.Transmission, o.Transmission)
		return v
	case scene.GlassPhong:
		set(&v.Exponent, o.Exponent)
		set(&v.IOR, o.IOR)
		set(&v.Transmission, o.Transmission)
		return v
	}
	return m
}

func loadTexture(name, dir string) (*scene.Texture, error) {
	if name == "checker" {
		return scene.NewCheckerTexture(64, 64, 8, scene.White, scene.Black), nil
	}
	return scene.LoadTexture(resolve(dir, name))
}

func (a *AnimationSpec) build(s *Setup) (*anim.Timeline, error) {
	tl := anim.NewTimeline()
	for i, ts := range a.Tracks {
		track, err := ts.build(s)
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		tl.Add(track)
	}
	return tl, nil
}

func (ts *TrackSpec) build(s *Setup) (*anim.Track, error) {
	var (
		target anim.Target
		fps    float64
	)
	switch ts.Target {
	case "":
		fps = ObjectFPS
	case "camera":
		ct := anim.CameraTarget{Camera: s.Camera}
		if ts.LookAt != nil {
			p := ts.LookAt.vec3()
			ct.LookAt = &p
		}
		target, fps = ct, CameraFPS
	case "light":
		target, fps = anim.LightTarget{Light: s.Light}, LightFPS
	default:
		obj, ok := s.Scene.ObjectByName(ts.Target)
		if !ok {
			return nil, errors.Errorf("no object named %q", ts.Target)
		}
		target, fps = anim.ObjectTarget{Object: obj}, ObjectFPS
	}
	if ts.FPS > 0 {
		fps = ts.FPS
	}

	track := anim.NewTrack(target, fps)
	for i, ss := range ts.Steps {
		step, err := ss.step()
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		if err := track.Add(step); err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
	}
	return track, nil
}

func (ss *StepSpec) step() (anim.Step, error) {
	op, err := anim.ParseOp(ss.Op)
	if err != nil {
		return anim.Step{}, err
	}
	easing, err := anim.ParseEasing(ss.Easing)
	if err != nil {
		return anim.Step{}, err
	}
	step := anim.Step{Op: op, Delta: ss.By.vec3(), Seconds: ss.Seconds, Easing: easing}

	switch op {
	case anim.SetMaterial:
		if step.Material, err = scene.ParseMaterial(ss.Material); err != nil {
			return anim.Step{}, err
		}
	case anim.SetLight:
		if step.Light, err = scene.ParseLightKind(ss.Light); err != nil {
			return anim.Step{}, err
		}
	}
	return step, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
