package graphics

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
)

// Mesh owns the GL buffer objects for one uploaded mesh. CPU-side data is
// released after upload; only counts and bounds are retained.
type Mesh struct {
	Name        string
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IndexCount  int32
	VertexCount int32
	HasIndices  bool

	// Radius of the origin-centred bounding sphere, used for distance culling.
	Radius float32
}

// NewMesh uploads CPU-side mesh data to the GPU.
// Vertex layout: position(0), normal(1), uv(2), color(3).
func NewMesh(data *core.MeshData) *Mesh {
	m := &Mesh{
		Name:        data.Name,
		IndexCount:  int32(len(data.Indices)),
		VertexCount: int32(len(data.Vertices)),
		HasIndices:  len(data.Indices) > 0,
		Radius:      data.BoundingRadius(),
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)
	gl.BindVertexArray(m.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(data.Vertices)*int(stride),
		gl.Ptr(data.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if m.HasIndices {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(data.Indices)*4,
			gl.Ptr(data.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return m
}

// Draw issues the draw call for the whole mesh. The caller is responsible
// for having bound the shader and material state.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	if m.HasIndices {
		gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
	}
	gl.BindVertexArray(0)
}

// Vertices reports the number of vertices processed per draw, for frame stats.
func (m *Mesh) Vertices() int {
	if m.HasIndices {
		return int(m.IndexCount)
	}
	return int(m.VertexCount)
}

// Destroy frees the GL buffers. Safe to call more than once.
func (m *Mesh) Destroy() {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
		m.EBO = 0
	}
}
