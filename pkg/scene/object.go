package scene

import "github.com/taigrr/prism/pkg/math3d"

// Object is a named group of triangles sharing a material and shadow flag.
// Objects are built once at load time and transformed in place between
// frames.
//
// Material and Shadows are copied onto every triangle. Change them with
// SetMaterial and SetShadows; assigning the fields leaves the triangles stale.
type Object struct {
	Name      string
	Material  Material // Read-only; see SetMaterial
	Shadows   bool     // Read-only; see SetShadows
	Texture   *Texture
	Triangles []Triangle

	id ObjectID
}

// NewObject groups triangles into an object, stamps the material and shadow
// flag onto each triangle and computes normals.
func NewObject(name string, tris []Triangle, m Material, shadows bool) *Object {
	if m == nil {
		m = Flat{}
	}
	o := &Object{
		Name:      name,
		Material:  m,
		Shadows:   shadows,
		Triangles: tris,
		id:        NoObject,
	}
	o.stamp()
	o.CalculateNormals()
	return o
}

// ID returns the handle assigned by Scene.Add, or NoObject.
func (o *Object) ID() ObjectID {
	return o.id
}

// SetMaterial switches the object's material. Vertex normals are rebuilt
// when the new material needs them.
func (o *Object) SetMaterial(m Material) {
	o.Material = m
	o.stamp()
	o.CalculateNormals()
}

// SetShadows sets whether the object occludes light.
func (o *Object) SetShadows(shadows bool) {
	o.Shadows = shadows
	o.stamp()
}

func (o *Object) stamp() {
	for i := range o.Triangles {
		t := &o.Triangles[i]
		t.Material = o.Material
		t.Shadows = o.Shadows
		t.Object = o.id
	}
}

// CalculateNormals recomputes face normals. Materials that interpolate
// normals also get vertex normals: the normalized sum of the face normals of
// every triangle sharing that exact vertex position. Otherwise each vertex
// normal is the face normal.
func (o *Object) CalculateNormals() {
	smooth := SmoothNormals(o.Material)
	var sums map[math3d.Vec3]math3d.Vec3
	if smooth {
		sums = make(map[math3d.Vec3]math3d.Vec3, len(o.Triangles)*3)
	}

	for i := range o.Triangles {
		t := &o.Triangles[i]
		t.Normal = t.FaceNormal()
		if !smooth {
			t.Normals = [3]math3d.Vec3{t.Normal, t.Normal, t.Normal}
			continue
		}
		for _, v := range t.Vertices {
			sums[v] = sums[v].Add(t.Normal)
		}
	}
	if !smooth {
		return
	}

	for i := range o.Triangles {
		t := &o.Triangles[i]
		for j, v := range t.Vertices {
			t.Normals[j] = sums[v].Normalize()
		}
	}
}

// Translate moves every vertex by d.
func (o *Object) Translate(d math3d.Vec3) {
	for i := range o.Triangles {
		for j := range o.Triangles[i].Vertices {
			o.Triangles[i].Vertices[j] = o.Triangles[i].Vertices[j].Add(d)
		}
	}
}

// Rotate rotates every vertex about the origin by Euler angles in degrees.
func (o *Object) Rotate(xDeg, yDeg, zDeg float64) {
	o.Transform(math3d.EulerRotate(xDeg, yDeg, zDeg))
}

// Scale scales every vertex about the origin.
func (o *Object) Scale(s math3d.Vec3) {
	o.Transform(math3d.Scale(s))
}

// Transform applies m to every vertex and recomputes normals.
func (o *Object) Transform(m math3d.Mat4) {
	for i := range o.Triangles {
		t := &o.Triangles[i]
		for j := range t.Vertices {
			t.Vertices[j] = m.MulVec3(t.Vertices[j])
		}
	}
	o.CalculateNormals()
}

// Bounds returns the axis-aligned box around every vertex.
func (o *Object) Bounds() Bounds {
	b := EmptyBounds()
	for i := range o.Triangles {
		for _, v := range o.Triangles[i].Vertices {
			b = b.Extend(v)
		}
	}
	return b
}

// Clone creates a deep copy of the object. The copy is not part of any scene.
func (o *Object) Clone() *Object {
	clone := &Object{
		Name:      o.Name,
		Material:  o.Material,
		Shadows:   o.Shadows,
		Texture:   o.Texture,
		Triangles: make([]Triangle, len(o.Triangles)),
		id:        NoObject,
	}
	copy(clone.Triangles, o.Triangles)
	clone.stamp()
	return clone
}
