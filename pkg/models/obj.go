package models

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Palette maps material names from an MTL file to their materials.
type Palette map[string]Material

// ReadMTL parses material definitions. Only newmtl, Kd and map_Kd are read;
// Kd channels are scaled to 0-255 and truncated. Texture paths are recorded
// as written and not loaded.
func ReadMTL(r io.Reader) (Palette, error) {
	palette := make(Palette)
	var current string

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, errors.Errorf("line %d: newmtl without a name", n)
			}
			current = fields[1]
			palette[current] = Material{Name: current, Color: scene.White}
		case "Kd":
			if current == "" {
				return nil, errors.Errorf("line %d: Kd before newmtl", n)
			}
			rgb, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: Kd", n)
			}
			m := palette[current]
			m.Color = scene.RGB(
				float64(int(rgb[0]*255)),
				float64(int(rgb[1]*255)),
				float64(int(rgb[2]*255)))
			palette[current] = m
		case "map_Kd":
			if current == "" {
				return nil, errors.Errorf("line %d: map_Kd before newmtl", n)
			}
			if len(fields) < 2 {
				return nil, errors.Errorf("line %d: map_Kd without a path", n)
			}
			m := palette[current]
			m.TexturePath = fields[len(fields)-1]
			palette[current] = m
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read mtl")
	}
	return palette, nil
}

// LoadMTL reads an MTL file and loads the textures it names, resolving their
// paths against the file's directory.
func LoadMTL(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mtl")
	}
	defer f.Close()

	palette, err := ReadMTL(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	dir := filepath.Dir(path)
	for name, m := range palette {
		if m.TexturePath == "" {
			continue
		}
		if !filepath.IsAbs(m.TexturePath) {
			m.TexturePath = filepath.Join(dir, m.TexturePath)
		}
		m.Texture, err = scene.LoadTexture(m.TexturePath)
		if err != nil {
			return nil, errors.Wrapf(err, "material %s", name)
		}
		palette[name] = m
	}
	return palette, nil
}

// ReadOBJ parses a Wavefront OBJ stream. Vertex positions are multiplied by
// scale. Faces must be triangles; of each a/b/c reference the position and
// texture indices are used, 1-based, with negative values counting back from
// the latest entry. usemtl selects from palette; without a palette it is
// ignored and every face gets DefaultColor.
func ReadOBJ(r io.Reader, palette Palette, scale float64) (*Mesh, error) {
	mesh := NewMesh("")
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		current   = -1
		matIndex  = make(map[string]int)
		corners   = make(map[[2]int]int)
	)

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: vertex", n)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]).Scale(scale))

		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: texture vertex", n)
			}
			// OBJ puts V=0 at the bottom of the image.
			uvs = append(uvs, math3d.V2(t[0], 1-t[1]))

		case "f":
			refs := fields[1:]
			if len(refs) != 3 {
				return nil, errors.Errorf("line %d: face has %d vertices, only triangles are supported", n, len(refs))
			}
			var face Face
			face.Material = current
			for i, ref := range refs {
				pi, ti, err := parseFaceRef(ref, len(positions), len(uvs))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", n)
				}
				key := [2]int{pi, ti}
				idx, ok := corners[key]
				if !ok {
					v := MeshVertex{Position: positions[pi]}
					if ti >= 0 {
						v.UV = uvs[ti]
					}
					idx = len(mesh.Vertices)
					mesh.Vertices = append(mesh.Vertices, v)
					corners[key] = idx
				}
				face.V[i] = idx
			}
			mesh.Faces = append(mesh.Faces, face)

		case "usemtl":
			if palette == nil {
				continue
			}
			if len(fields) < 2 {
				return nil, errors.Errorf("line %d: usemtl without a name", n)
			}
			name := fields[1]
			idx, ok := matIndex[name]
			if !ok {
				m, found := palette[name]
				if !found {
					return nil, errors.Errorf("line %d: unknown material %q", n, name)
				}
				idx = len(mesh.Materials)
				mesh.Materials = append(mesh.Materials, m)
				matIndex[name] = idx
			}
			current = idx
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read obj")
	}

	mesh.useMaterialTexture()
	mesh.CalculateBounds()
	return mesh, nil
}

// LoadOBJ reads an OBJ file and, when mtlPath is set, its MTL palette.
func LoadOBJ(objPath, mtlPath string, scale float64) (*Mesh, error) {
	var palette Palette
	if mtlPath != "" {
		var err error
		if palette, err = LoadMTL(mtlPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(objPath)
	if err != nil {
		return nil, errors.Wrap(err, "open obj")
	}
	defer f.Close()

	mesh, err := ReadOBJ(f, palette, scale)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", objPath)
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(objPath), filepath.Ext(objPath))
	return mesh, nil
}

// parseFaceRef resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference to
// zero-based position and texture indices. A missing texture index is -1.
func parseFaceRef(ref string, numPos, numUV int) (pos, uv int, err error) {
	parts := strings.Split(ref, "/")
	pos, err = resolveIndex(parts[0], numPos)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "vertex %q", ref)
	}
	uv = -1
	if len(parts) > 1 && parts[1] != "" {
		uv, err = resolveIndex(parts[1], numUV)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "texture vertex %q", ref)
		}
	}
	return pos, uv, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(err, "bad index")
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, errors.New("index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, errors.Errorf("index out of range (have %d)", count)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, errors.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out[i] = v
	}
	return out, nil
}
