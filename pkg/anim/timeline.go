package anim

import "fmt"

// DefaultFPS is the frame rate used to expand steps when a track has none.
const DefaultFPS = 10

// Track is a sequence of steps applied one after another to a single target.
type Track struct {
	Target  Target // nil for tracks that only wait and switch
	FPS     float64
	actions []Action
}

// NewTrack creates an empty track. A non-positive fps uses DefaultFPS.
func NewTrack(target Target, fps float64) *Track {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Track{Target: target, FPS: fps}
}

// Add appends a step, expanded into per-frame actions.
func (t *Track) Add(s Step) error {
	if s.Op != Wait && s.Op != Switch {
		if t.Target == nil {
			return fmt.Errorf("%s step needs a target", s.Op)
		}
		if !t.Target.Supports(s.Op) {
			return fmt.Errorf("%s does not support %s", t.Target.Name(), s.Op)
		}
	}
	actions, err := s.expand(t.FPS)
	if err != nil {
		return fmt.Errorf("%s step: %w", s.Op, err)
	}
	t.actions = append(t.actions, actions...)
	return nil
}

// Len returns the number of frames the track lasts.
func (t *Track) Len() int {
	return len(t.actions)
}

// Timeline plays tracks in parallel, one action per track per frame. Tracks
// of different lengths simply run out at different frames.
type Timeline struct {
	tracks []*Track
	frame  int
}

// NewTimeline creates a timeline from tracks.
func NewTimeline(tracks ...*Track) *Timeline {
	return &Timeline{tracks: tracks}
}

// Add appends a track.
func (tl *Timeline) Add(t *Track) {
	tl.tracks = append(tl.tracks, t)
}

// Tracks returns the number of tracks.
func (tl *Timeline) Tracks() int {
	return len(tl.tracks)
}

// Frames returns the length of the longest track.
func (tl *Timeline) Frames() int {
	n := 0
	for _, t := range tl.tracks {
		n = max(n, t.Len())
	}
	return n
}

// Frame returns the index of the next frame to be applied.
func (tl *Timeline) Frame() int {
	return tl.frame
}

// Done reports whether every frame has been applied.
func (tl *Timeline) Done() bool {
	return tl.frame >= tl.Frames()
}

// Step applies the current frame of every track and advances. It reports
// whether the frame asks for the rendering pipeline to be switched, which
// happens when an odd number of tracks switch in the same frame.
func (tl *Timeline) Step() (switchPipeline bool) {
	if tl.Done() {
		return false
	}
	for _, t := range tl.tracks {
		if tl.frame >= len(t.actions) {
			continue
		}
		a := t.actions[tl.frame]
		switch a.Op {
		case Wait:
		case Switch:
			switchPipeline = !switchPipeline
		default:
			t.Target.Apply(a)
		}
	}
	tl.frame++
	return switchPipeline
}
