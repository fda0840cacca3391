package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	Scale        float64
	LoadTextures bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Scale:        1,
		LoadTextures: true,
	}
}

// LoadGLB loads a binary or JSON glTF file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads every triangle primitive of every mesh in the document into a
// single Mesh. Each primitive's PBR base colour factor becomes a material.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	materials := make(map[int]int)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh, materials); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.LoadTextures {
		for i := range mesh.Materials {
			mat := &mesh.Materials[i]
			if mat.TexturePath == "" {
				continue
			}
			tex, err := loadImage(doc, filepath.Dir(path), mat.TexturePath)
			if err != nil {
				return nil, fmt.Errorf("material %q: %w", mat.Name, err)
			}
			mat.Texture = tex
		}
	}

	mesh.useMaterialTexture()
	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh, materials map[int]int) error {
	scale := l.Scale
	if scale == 0 {
		scale = 1
	}

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		matIdx := -1
		if prim.Material != nil {
			matIdx = primitiveMaterial(doc, *prim.Material, mesh, materials)
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{
				Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])).Scale(scale),
			}
			if i < len(uvs) {
				// glTF already uses a top-left origin.
				v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			face := Face{Material: matIdx}
			for j := range 3 {
				idx := int(indices[i+j])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range (have %d vertices)", idx, len(positions))
				}
				face.V[j] = baseVertex + idx
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

// primitiveMaterial returns the mesh material index for document material
// docIdx, adding it on first use.
func primitiveMaterial(doc *gltf.Document, docIdx int, mesh *Mesh, materials map[int]int) int {
	if idx, ok := materials[docIdx]; ok {
		return idx
	}
	if docIdx < 0 || docIdx >= len(doc.Materials) {
		return -1
	}

	src := doc.Materials[docIdx]
	mat := Material{Name: src.Name, Color: scene.White}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		f := pbr.BaseColorFactorOrDefault()
		mat.Color = scene.RGB(f[0]*255, f[1]*255, f[2]*255)
		if pbr.BaseColorTexture != nil {
			mat.TexturePath = textureRef(doc, pbr.BaseColorTexture.Index)
		}
	}

	idx := len(mesh.Materials)
	mesh.Materials = append(mesh.Materials, mat)
	materials[docIdx] = idx
	return idx
}

// textureRef names a texture's image: "#<n>" for image n of the document.
func textureRef(doc *gltf.Document, texIdx int) string {
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return ""
	}
	return fmt.Sprintf("#%d", *doc.Textures[texIdx].Source)
}

// loadImage decodes the image a texture reference points at, either
// embedded in a buffer view or stored next to the document.
func loadImage(doc *gltf.Document, dir, ref string) (*scene.Texture, error) {
	var n int
	if _, err := fmt.Sscanf(ref, "#%d", &n); err != nil || n < 0 || n >= len(doc.Images) {
		return nil, fmt.Errorf("bad image reference %q", ref)
	}
	img := doc.Images[n]

	var data []byte
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, fmt.Errorf("image %d: buffer has no data", n)
		}
		data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	case img.URI != "":
		var err error
		data, err = os.ReadFile(filepath.Join(dir, img.URI))
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	default:
		return nil, fmt.Errorf("image %d has no data", n)
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %d: %w", n, err)
	}
	return scene.TextureFromImage(decoded), nil
}
