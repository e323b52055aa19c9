// Package assets imports external content into the engine's CPU-side data
// model. Importers never touch the GPU; upload goes through the graphics
// managers on the render thread.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
)

// NamedImage is a decoded texture image awaiting GPU upload.
type NamedImage struct {
	Name  string
	Image image.Image
}

// Instance places one imported mesh in the scene with its composed
// world-space node transform.
type Instance struct {
	MeshName  string
	Transform mgl32.Mat4
	// BaseColor and TextureName come from the primitive's material.
	BaseColor   core.Color
	TextureName string
}

// ImportResult is the flattened content of a glTF file.
type ImportResult struct {
	Meshes    []*core.MeshData
	Images    []NamedImage
	Instances []Instance
}

// LoadGLTF opens a .glb or .gltf file and flattens its scene into meshes,
// decoded images, and placed instances. The node hierarchy is composed into
// world-space transforms; animation and skinning are ignored.
func LoadGLTF(path string) (*ImportResult, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gltf %q: %w", path, err)
	}
	result := &ImportResult{}

	texNames := loadImages(doc, filepath.Dir(path), result)

	// Mesh primitives, one MeshData per primitive.
	primNames := make([][]string, len(doc.Meshes))
	primMats := make([][]int, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			data, err := readPrimitive(doc, gm.Name, mi, pi, *prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			result.Meshes = append(result.Meshes, data)
			primNames[mi] = append(primNames[mi], data.Name)
			mat := -1
			if prim.Material != nil {
				mat = *prim.Material
			}
			primMats[mi] = append(primMats[mi], mat)
		}
	}

	// Walk the node tree composing transforms into world space.
	var visit func(idx int, parent mgl32.Mat4)
	visit = func(idx int, parent mgl32.Mat4) {
		if idx < 0 || idx >= len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[idx]
		world := parent.Mul4(nodeTransform(gn))
		if gn.Mesh != nil && *gn.Mesh < len(primNames) {
			for pi, name := range primNames[*gn.Mesh] {
				inst := Instance{
					MeshName:  name,
					Transform: world,
					BaseColor: core.ColorWhite,
				}
				if mat := primMats[*gn.Mesh][pi]; mat >= 0 && mat < len(doc.Materials) {
					applyMaterial(doc.Materials[mat], texNames, &inst)
				}
				result.Instances = append(result.Instances, inst)
			}
		}
		for _, child := range gn.Children {
			visit(child, world)
		}
	}
	for _, root := range rootNodes(doc) {
		visit(root, mgl32.Ident4())
	}

	return result, nil
}

// loadImages decodes every referenced image and returns the per-texture
// names for material lookup. Undecodable images are skipped; the instance
// falls back to its base color.
func loadImages(doc *gltf.Document, dir string, result *ImportResult) []string {
	names := make([]string, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		src := doc.Images[*gt.Source]
		name := src.Name
		if name == "" {
			name = fmt.Sprintf("gltf/image_%d", *gt.Source)
		}

		var img image.Image
		var err error
		switch {
		case src.BufferView != nil:
			var raw []byte
			raw, err = modeler.ReadBufferView(doc, doc.BufferViews[*src.BufferView])
			if err == nil {
				img, _, err = image.Decode(bytes.NewReader(raw))
			}
		case src.URI != "" && !src.IsEmbeddedResource():
			img, err = decodeFile(filepath.Join(dir, src.URI))
		default:
			continue
		}
		if err != nil {
			continue
		}
		names[i] = name
		result.Images = append(result.Images, NamedImage{Name: name, Image: img})
	}
	return names
}

func applyMaterial(gm *gltf.Material, texNames []string, inst *Instance) {
	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return
	}
	cf := pbr.BaseColorFactorOrDefault()
	inst.BaseColor = core.Color{
		R: float32(cf[0]), G: float32(cf[1]),
		B: float32(cf[2]), A: float32(cf[3]),
	}
	if pbr.BaseColorTexture != nil {
		idx := int(pbr.BaseColorTexture.Index)
		if idx >= 0 && idx < len(texNames) {
			inst.TextureName = texNames[idx]
		}
	}
}

func readPrimitive(doc *gltf.Document, meshName string, meshIdx, primIdx int, prim gltf.Primitive) (*core.MeshData, error) {
	if meshName == "" {
		meshName = fmt.Sprintf("gltf/mesh_%d", meshIdx)
	}
	name := fmt.Sprintf("%s/p%d", meshName, primIdx)

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	data := &core.MeshData{Name: name, Vertices: make([]core.Vertex, len(positions))}
	for i, p := range positions {
		v := core.Vertex{
			Position: mgl32.Vec3{p[0], p[1], p[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		data.Vertices[i] = v
	}

	if prim.Indices != nil {
		data.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	}
	return data, nil
}

func nodeTransform(gn *gltf.Node) mgl32.Mat4 {
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	sc := gn.ScaleOrDefault()
	tr := core.Transform{
		Position: mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
		Rotation: mgl32.Quat{
			W: float32(r[3]),
			V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
		},
		Scale: mgl32.Vec3{float32(sc[0]), float32(sc[1]), float32(sc[2])},
	}
	return tr.Matrix()
}

func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
