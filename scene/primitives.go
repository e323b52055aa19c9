package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
)

// Procedural mesh generators. All return CPU-side data; upload happens
// through the mesh manager.

// CubeData builds an axis-aligned cube of the given edge length centred on
// the origin, with per-face normals and UVs.
func CubeData(name string, size float32) *core.MeshData {
	h := size / 2
	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	data := &core.MeshData{Name: name}
	for _, f := range faces {
		base := uint32(len(data.Vertices))
		for i, p := range f.corners {
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: p,
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    core.ColorWhite,
			})
		}
		data.Indices = append(data.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return data
}

// SkyboxData builds a unit cube wound to be drawn from the inside with
// front-face culling. Positions double as the cubemap sample direction.
func SkyboxData(name string) *core.MeshData {
	data := CubeData(name, 2)
	for i := range data.Vertices {
		data.Vertices[i].Normal = data.Vertices[i].Position.Normalize().Mul(-1)
	}
	return data
}

// GridData builds a flat XZ plane of width x depth world units subdivided
// into segsX x segsZ quads, centred on the origin at y=0. This is the base
// mesh that wave displacement shaders deform.
func GridData(name string, width, depth float32, segsX, segsZ int) *core.MeshData {
	if segsX < 1 {
		segsX = 1
	}
	if segsZ < 1 {
		segsZ = 1
	}
	data := &core.MeshData{Name: name}
	for z := 0; z <= segsZ; z++ {
		for x := 0; x <= segsX; x++ {
			fx := float32(x) / float32(segsX)
			fz := float32(z) / float32(segsZ)
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: mgl32.Vec3{(fx - 0.5) * width, 0, (fz - 0.5) * depth},
				Normal:   mgl32.Vec3{0, 1, 0},
				UV:       mgl32.Vec2{fx, fz},
				Color:    core.ColorWhite,
			})
		}
	}
	stride := uint32(segsX + 1)
	for z := 0; z < segsZ; z++ {
		for x := 0; x < segsX; x++ {
			i := uint32(z)*stride + uint32(x)
			data.Indices = append(data.Indices,
				i, i+stride, i+1,
				i+1, i+stride, i+stride+1)
		}
	}
	return data
}

// SphereData builds a UV sphere with the given ring and sector counts.
func SphereData(name string, radius float32, rings, sectors int) *core.MeshData {
	if rings < 3 {
		rings = 3
	}
	if sectors < 3 {
		sectors = 3
	}
	data := &core.MeshData{Name: name}
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= sectors; s++ {
			theta := 2 * math.Pi * float64(s) / float64(sectors)
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       mgl32.Vec2{float32(s) / float32(sectors), float32(r) / float32(rings)},
				Color:    core.ColorWhite,
			})
		}
	}
	stride := uint32(sectors + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			i := uint32(r)*stride + uint32(s)
			data.Indices = append(data.Indices,
				i, i+stride, i+1,
				i+1, i+stride, i+stride+1)
		}
	}
	return data
}

// QuadData builds a unit quad in the XY plane facing +Z, for UI and
// billboard drawing.
func QuadData(name string) *core.MeshData {
	return &core.MeshData{
		Name: name,
		Vertices: []core.Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
