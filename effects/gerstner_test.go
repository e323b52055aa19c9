package effects

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGerstnerWaveValidation(t *testing.T) {
	_, err := NewGerstnerWave(mgl32.Vec2{1, 0}, 1, 0, 1, 0.5)
	assert.Error(t, err, "zero wavelength")

	_, err = NewGerstnerWave(mgl32.Vec2{1, 0}, -1, 10, 1, 0.5)
	assert.Error(t, err, "negative amplitude")

	_, err = NewGerstnerWave(mgl32.Vec2{1, 0}, 1, 10, 1, 1.5)
	assert.Error(t, err, "steepness above 1")

	w, err := NewGerstnerWave(mgl32.Vec2{3, 4}, 1, 10, 1, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1, float64(w.Direction.Len()), 1e-6, "direction normalized")

	w, err = NewGerstnerWave(mgl32.Vec2{}, 1, 10, 1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{1, 0}, w.Direction, "zero direction defaults to +X")
}

func TestUpdateParameters(t *testing.T) {
	w, err := NewGerstnerWave(mgl32.Vec2{1, 0}, 1, 10, 1, 0.5)
	require.NoError(t, err)
	w.Phase = 0.25

	require.NoError(t, w.UpdateParameters(mgl32.Vec2{0, 2}, 2, 20, 3, 0.8))
	assert.Equal(t, mgl32.Vec2{0, 1}, w.Direction, "direction renormalized")
	assert.Equal(t, float32(2), w.Amplitude)
	assert.Equal(t, float32(20), w.Length)
	assert.Equal(t, float32(0.25), w.Phase, "phase preserved across update")

	assert.Error(t, w.UpdateParameters(mgl32.Vec2{1, 0}, -1, 20, 3, 0.8))
	assert.Equal(t, float32(2), w.Amplitude, "wave unchanged after rejected update")
}

func TestWavenumber(t *testing.T) {
	w, _ := NewGerstnerWave(mgl32.Vec2{1, 0}, 1, 10, 1, 0.5)
	assert.InDelta(t, 2*math.Pi/10, float64(w.Wavenumber()), 1e-6)
}

// At phase π/2 the point sits on the crest: full vertical displacement and
// no horizontal shift. At phase 0 it is at maximum horizontal displacement
// with no lift.
func TestDisplacementAtKnownPhases(t *testing.T) {
	crest, _ := NewGerstnerWave(mgl32.Vec2{1, 0}, 2, 10, 0, 0.8)
	crest.Phase = math.Pi / 2
	d := crest.Displace(0, 0, 0)
	assert.InDelta(t, 2, float64(d.Y()), 1e-5)
	assert.InDelta(t, 0, float64(d.X()), 1e-5)
	assert.InDelta(t, 0, float64(d.Z()), 1e-5)

	side, _ := NewGerstnerWave(mgl32.Vec2{1, 0}, 2, 10, 0, 0.8)
	d = side.Displace(0, 0, 0)
	q := side.Steepness / (side.Wavenumber() * side.Amplitude)
	assert.InDelta(t, 0, float64(d.Y()), 1e-5)
	assert.InDelta(t, float64(q*side.Amplitude), float64(d.X()), 1e-5)
}

func TestZeroAmplitudeIsFlat(t *testing.T) {
	w := GerstnerWave{Direction: mgl32.Vec2{1, 0}, Length: 10}
	assert.Equal(t, mgl32.Vec3{}, w.Displace(3, 4, 5))

	f := &WaveField{Waves: []GerstnerWave{w}}
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, f.NormalAt(3, 4, 5))
	assert.Zero(t, f.HeightAt(3, 4, 5))
}

func TestNormalsAreUnitLength(t *testing.T) {
	field := DefaultOcean()
	for _, p := range [][2]float32{{0, 0}, {13.7, -4.2}, {100, 250}, {-31, 8}} {
		n := field.NormalAt(p[0], p[1], 2.5)
		assert.InDelta(t, 1, float64(n.Len()), 1e-5, "at %v", p)
		assert.Positive(t, n.Y(), "ocean normal never flips downward at %v", p)
	}
}

func TestNormalMatchesFiniteDifference(t *testing.T) {
	field := DefaultOcean()
	const eps = 1e-3
	x, z, tm := float32(7.3), float32(-2.1), float32(1.4)

	px := field.SurfaceAt(x+eps, z, tm).Sub(field.SurfaceAt(x-eps, z, tm))
	pz := field.SurfaceAt(x, z+eps, tm).Sub(field.SurfaceAt(x, z-eps, tm))
	numeric := pz.Cross(px).Normalize()

	analytic := field.NormalAt(x, z, tm)
	assert.InDelta(t, 1, float64(numeric.Dot(analytic)), 1e-3)
}

func TestFoamRange(t *testing.T) {
	field := DefaultOcean()
	for x := float32(-50); x <= 50; x += 7 {
		foam := field.FoamAt(x, x*0.5, 3)
		assert.GreaterOrEqual(t, foam, float32(0))
		assert.LessOrEqual(t, foam, float32(1))
	}
}

func TestWavePropagates(t *testing.T) {
	w, _ := NewGerstnerWave(mgl32.Vec2{1, 0}, 1, 20, 2, 0.5)
	early := w.Displace(5, 0, 0).Y()
	later := w.Displace(5, 0, 1).Y()
	assert.NotEqual(t, early, later, "surface moves with time")
}
