// Package anim drives frame-stepped animation: parallel tracks of timed
// steps that move the camera, the light and scene objects a little every
// frame.
package anim

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Op is the kind of change a step makes.
type Op int

const (
	Translate Op = iota
	Rotate
	Scale
	RotatePosition
	Wait
	SetMaterial
	SetLight
	Switch
)

var opNames = [...]string{
	Translate:      "translate",
	Rotate:         "rotate",
	Scale:          "scale",
	RotatePosition: "rotate_position",
	Wait:           "wait",
	SetMaterial:    "material",
	SetLight:       "light",
	Switch:         "switch",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp parses an op name as written in scene files.
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range opNames {
		if name == s {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", s)
}

// continuous reports whether the op is spread over the step's frames.
func (o Op) continuous() bool {
	switch o {
	case Translate, Rotate, Scale, RotatePosition:
		return true
	}
	return false
}

// Easing shapes how a continuous step is spread over its frames.
type Easing int

const (
	Linear Easing = iota
	Spring
)

// ParseEasing parses "linear" (or empty) and "spring".
func ParseEasing(s string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "spring":
		return Spring, nil
	}
	return Linear, fmt.Errorf("unknown easing %q", s)
}

// Step is one timed change on a track.
//
// Delta is an offset for Translate, Euler degrees for Rotate and
// RotatePosition, and per-axis factors for Scale. Continuous steps last
// round(Seconds*fps) frames, at least one; Wait lasts that many frames and
// may last none. SetMaterial, SetLight and Switch take a single frame.
type Step struct {
	Op       Op
	Delta    math3d.Vec3
	Seconds  float64
	Easing   Easing
	Material scene.Material
	Light    scene.LightKind
}

// Action is the change applied to a target in a single frame.
type Action struct {
	Op       Op
	Delta    math3d.Vec3
	Material scene.Material
	Light    scene.LightKind
}

// frames returns how many frames a step occupies at fps.
func (s Step) frames(fps float64) int {
	n := int(math.Round(s.Seconds * fps))
	switch {
	case s.Op == Wait:
		return max(n, 0)
	case s.Op.continuous():
		return max(n, 1)
	}
	return 1
}

// expand splits a step into per-frame actions. The increments of a
// continuous step compose exactly to Delta: offsets and angles add up to it
// and scale factors multiply to it.
func (s Step) expand(fps float64) ([]Action, error) {
	n := s.frames(fps)
	if !s.Op.continuous() {
		if s.Op == SetMaterial && s.Material == nil {
			return nil, fmt.Errorf("material step without a material")
		}
		actions := make([]Action, n)
		for i := range actions {
			actions[i] = Action{Op: s.Op, Material: s.Material, Light: s.Light}
		}
		return actions, nil
	}
	if s.Op == Scale && (s.Delta.X <= 0 || s.Delta.Y <= 0 || s.Delta.Z <= 0) {
		return nil, fmt.Errorf("scale factors must be positive, got %v", s.Delta)
	}

	progress := linearProgress(n)
	if s.Easing == Spring {
		progress = springProgress(n, fps, s.Seconds)
	}

	actions := make([]Action, n)
	prev := 0.0
	for i, p := range progress {
		var d math3d.Vec3
		if s.Op == Scale {
			one := math3d.V3(1, 1, 1)
			from := one.Add(s.Delta.Sub(one).Scale(prev))
			to := one.Add(s.Delta.Sub(one).Scale(p))
			d = math3d.V3(to.X/from.X, to.Y/from.Y, to.Z/from.Z)
		} else {
			d = s.Delta.Scale(p - prev)
		}
		actions[i] = Action{Op: s.Op, Delta: d}
		prev = p
	}
	return actions, nil
}

// linearProgress returns the cumulative fraction after each of n frames.
func linearProgress(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i+1) / float64(n)
	}
	return out
}

// springProgress follows a critically damped spring from 0 towards 1 and
// rescales it to land on 1 at the last frame. The spring's frequency is
// tied to the step length so every step has the same ease-out shape.
func springProgress(n int, fps, seconds float64) []float64 {
	if n < 2 || seconds <= 0 {
		return linearProgress(n)
	}
	spring := harmonica.NewSpring(harmonica.FPS(max(1, int(math.Round(fps)))), 6/seconds, 1.0)

	out := make([]float64, n)
	var pos, vel float64
	for i := range out {
		pos, vel = spring.Update(pos, vel, 1)
		out[i] = pos
	}
	last := out[n-1]
	if last <= 0 {
		return linearProgress(n)
	}
	for i := range out {
		out[i] /= last
	}
	out[n-1] = 1
	return out
}
