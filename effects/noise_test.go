package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractalNoiseDeterministic(t *testing.T) {
	a := FractalNoise3(0.3, 0.7, 0.1, 4, 42)
	b := FractalNoise3(0.3, 0.7, 0.1, 4, 42)
	assert.Equal(t, a, b)

	c := FractalNoise3(0.3, 0.7, 0.1, 4, 43)
	assert.NotEqual(t, a, c, "seed changes the field")
}

func TestFractalNoiseRange(t *testing.T) {
	for x := 0.0; x < 1.0; x += 0.13 {
		for y := 0.0; y < 1.0; y += 0.17 {
			v := FractalNoise3(x, y, x*y, 4, 7)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

// The field must tile over the unit cube so REPEAT sampling shows no seam.
func TestFractalNoiseTiles(t *testing.T) {
	for _, p := range [][2]float64{{0.25, 0.5}, {0.9, 0.1}, {0.0, 0.0}} {
		assert.InDelta(t,
			FractalNoise3(0, p[0], p[1], 4, 9),
			FractalNoise3(1, p[0], p[1], 4, 9), 1e-9, "x seam at %v", p)
		assert.InDelta(t,
			FractalNoise3(p[0], 0, p[1], 4, 9),
			FractalNoise3(p[0], 1, p[1], 4, 9), 1e-9, "y seam at %v", p)
		assert.InDelta(t,
			FractalNoise3(p[0], p[1], 0, 4, 9),
			FractalNoise3(p[0], p[1], 1, 4, 9), 1e-9, "z seam at %v", p)
	}
}

func TestBakeFogVolume(t *testing.T) {
	const size = 16
	voxels := BakeFogVolume(size, 5)
	require.Len(t, voxels, size*size*size)

	var sum float64
	for _, v := range voxels {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
		sum += float64(v)
	}
	mean := sum / float64(len(voxels))
	assert.Greater(t, mean, 0.2, "volume is not empty")
	assert.Less(t, mean, 0.8, "volume is not saturated")
}

func TestSampleFogVolumeWraps(t *testing.T) {
	voxels := BakeFogVolume(16, 11)
	a := SampleFogVolume(voxels, 16, 0.3, 0.6, 0.9)
	b := SampleFogVolume(voxels, 16, 1.3, -0.4, 1.9)
	assert.InDelta(t, float64(a), float64(b), 1e-6, "REPEAT wrapping in all axes")
}

func TestSampleFogVolumeAtVoxelCenter(t *testing.T) {
	const size = 4
	voxels := make([]float32, size*size*size)
	voxels[(2*size+1)*size+3] = 1 // x=3, y=1, z=2

	// Voxel centers sit at (i + 0.5) / size.
	got := SampleFogVolume(voxels, size, 3.5/size, 1.5/size, 2.5/size)
	assert.InDelta(t, 1, float64(got), 1e-6)
}
