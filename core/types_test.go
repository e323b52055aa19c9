package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestColorLerpClamps(t *testing.T) {
	black := ColorBlack
	white := ColorWhite

	mid := black.Lerp(white, 0.5)
	assert.InDelta(t, 0.5, float64(mid.R), 1e-6)

	assert.Equal(t, black, black.Lerp(white, -1), "t below range clamps to start")
	assert.Equal(t, white, black.Lerp(white, 2), "t above range clamps to end")
}

func TestColorVectors(t *testing.T) {
	c := Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, c.Vec3())
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 0.4}, c.Vec4())
}

func TestBoundingRadius(t *testing.T) {
	data := &MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, -3, 0}},
			{Position: mgl32.Vec3{0, 0, 2}},
		},
	}
	assert.InDelta(t, 3, float64(data.BoundingRadius()), 1e-6)

	empty := &MeshData{}
	assert.Zero(t, empty.BoundingRadius())
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{2, 4, 6}

	m := tr.Matrix()
	assert.Equal(t, float32(2), m[12])
	assert.Equal(t, float32(4), m[13])
	assert.Equal(t, float32(6), m[14])

	// Identity rotation keeps the local axes global.
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, tr.Forward())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, tr.Right())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, tr.Up())
}

func TestTransformScale(t *testing.T) {
	tr := NewTransform()
	tr.Scale = mgl32.Vec3{2, 2, 2}
	m := tr.Matrix()
	p := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{2, 2, 2, 1}, p)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.WindowWidth)
	assert.Positive(t, cfg.FOV)
	assert.Greater(t, cfg.FarPlane, cfg.NearPlane)
	assert.Positive(t, cfg.MaxRenderDistance)
}
