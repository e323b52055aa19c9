package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeData(t *testing.T) {
	cube := CubeData("cube", 2)
	assert.Len(t, cube.Vertices, 24, "4 vertices per face")
	assert.Len(t, cube.Indices, 36)

	for _, v := range cube.Vertices {
		assert.InDelta(t, 1, float64(v.Normal.Len()), 1e-5)
	}
	// Half extent 1 on every axis: corner radius sqrt(3).
	assert.InDelta(t, 1.7320508, float64(cube.BoundingRadius()), 1e-4)
}

func TestGridData(t *testing.T) {
	grid := GridData("grid", 100, 50, 10, 5)
	assert.Len(t, grid.Vertices, 11*6)
	assert.Len(t, grid.Indices, 10*5*6)

	for _, v := range grid.Vertices {
		assert.Zero(t, v.Position.Y(), "grid is flat at rest")
		assert.GreaterOrEqual(t, v.Position.X(), float32(-50))
		assert.LessOrEqual(t, v.Position.X(), float32(50))
	}
	for _, i := range grid.Indices {
		require.Less(t, int(i), len(grid.Vertices), "index out of range")
	}
}

func TestGridDataClampsSegments(t *testing.T) {
	grid := GridData("tiny", 10, 10, 0, -3)
	assert.Len(t, grid.Vertices, 4)
	assert.Len(t, grid.Indices, 6)
}

func TestSphereData(t *testing.T) {
	sphere := SphereData("sphere", 3, 8, 12)
	for _, v := range sphere.Vertices {
		assert.InDelta(t, 3, float64(v.Position.Len()), 1e-4)
		assert.InDelta(t, 1, float64(v.Normal.Len()), 1e-5)
	}
	for _, i := range sphere.Indices {
		require.Less(t, int(i), len(sphere.Vertices))
	}
}

func TestSkyboxNormalsPointInward(t *testing.T) {
	sky := SkyboxData("sky")
	for _, v := range sky.Vertices {
		// Inward normal opposes the position direction.
		assert.Negative(t, v.Normal.Dot(v.Position))
	}
}

func TestQuadData(t *testing.T) {
	quad := QuadData("quad")
	assert.Len(t, quad.Vertices, 4)
	assert.Len(t, quad.Indices, 6)
}
