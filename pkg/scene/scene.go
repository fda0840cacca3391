// Package scene holds the in-memory scene model: triangles grouped into
// objects, materials, lights and textures.
package scene

// Scene exclusively owns its objects. The renderers only read it; all
// mutation happens between frames.
type Scene struct {
	Objects []*Object
}

// New creates a scene from objects, assigning their handles in order.
func New(objs ...*Object) *Scene {
	s := &Scene{}
	for _, o := range objs {
		s.Add(o)
	}
	return s
}

// Add appends an object and returns its handle.
func (s *Scene) Add(o *Object) ObjectID {
	o.id = ObjectID(len(s.Objects))
	o.stamp()
	s.Objects = append(s.Objects, o)
	return o.id
}

// Object returns the object with the given handle, or nil.
func (s *Scene) Object(id ObjectID) *Object {
	if id < 0 || int(id) >= len(s.Objects) {
		return nil
	}
	return s.Objects[id]
}

// ObjectByName returns the first object with the given name.
func (s *Scene) ObjectByName(name string) (*Object, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// TriangleCount returns the number of triangles across all objects.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, o := range s.Objects {
		n += len(o.Triangles)
	}
	return n
}

// Bounds returns the box around every object.
func (s *Scene) Bounds() Bounds {
	b := EmptyBounds()
	for _, o := range s.Objects {
		b = b.Union(o.Bounds())
	}
	return b
}
