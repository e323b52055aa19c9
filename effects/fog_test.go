package effects

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
)

// newCPUFog builds a fog pass without GPU resources; the march and density
// paths are pure CPU math.
func newCPUFog(settings FogSettings) *VolumetricFog {
	return &VolumetricFog{
		Settings: settings,
		voxels:   BakeFogVolume(fogVolumeSize, 1337),
	}
}

func testRadiance() Radiance {
	return Radiance{
		SunDirection: mgl32.Vec3{0, 1, 0},
		SunColor:     core.ColorWhite,
		Intensity:    1,
	}
}

func TestFogSettingsValidate(t *testing.T) {
	ok := DefaultFogSettings()
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Density = -1
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Anisotropy = 1
	assert.Error(t, bad.Validate())

	bad = ok
	bad.StepCount = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.MaxDistance = 0
	assert.Error(t, bad.Validate())
}

func TestHenyeyGreensteinIsotropic(t *testing.T) {
	// g = 0 collapses to the isotropic phase 1/4π for every angle.
	want := float32(1 / (4 * math.Pi))
	for _, c := range []float32{-1, -0.5, 0, 0.5, 1} {
		assert.InDelta(t, float64(want), float64(HenyeyGreenstein(c, 0)), 1e-6)
	}
}

func TestHenyeyGreensteinForwardScattering(t *testing.T) {
	forward := HenyeyGreenstein(1, 0.6)
	backward := HenyeyGreenstein(-1, 0.6)
	assert.Greater(t, forward, backward)
}

func TestRayleighPhase(t *testing.T) {
	perpendicular := RayleighPhase(0)
	assert.InDelta(t, 3.0/(16*math.Pi), float64(perpendicular), 1e-6)
	assert.InDelta(t, float64(RayleighPhase(1)), float64(RayleighPhase(-1)), 1e-6,
		"Rayleigh is symmetric")
}

func TestZeroDensityPassesThrough(t *testing.T) {
	s := DefaultFogSettings()
	s.Density = 0
	fog := newCPUFog(s)

	trans, inscatter := fog.EvaluateRay(
		mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 0, -1}, s.MaxDistance, testRadiance(), 0.5)

	// Zero density means zero extinction and zero scattering: the scene
	// sample passes through unchanged even over the full march range.
	assert.Equal(t, float32(1), trans)
	assert.Equal(t, mgl32.Vec3{}, inscatter)
}

func TestDenseFogEarlyOut(t *testing.T) {
	s := DefaultFogSettings()
	s.Density = 10
	s.NoiseStrength = 0
	fog := newCPUFog(s)

	trans, inscatter := fog.EvaluateRay(
		mgl32.Vec3{0, 0.1, 0}, mgl32.Vec3{1, 0, 0}, 300, testRadiance(), 0)

	assert.Less(t, trans, float32(0.01), "march terminates fully extinct")
	assert.Positive(t, inscatter.Len())
}

func TestEvaluateRayClampsToMaxDistance(t *testing.T) {
	s := DefaultFogSettings()
	s.NoiseStrength = 0
	fog := newCPUFog(s)
	r := testRadiance()

	atLimit, _ := fog.EvaluateRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, s.MaxDistance, r, 0)
	beyond, _ := fog.EvaluateRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, s.MaxDistance*10, r, 0)
	assert.InDelta(t, float64(atLimit), float64(beyond), 1e-6)
}

func TestDensityFallsWithAltitude(t *testing.T) {
	s := DefaultFogSettings()
	s.NoiseStrength = 0 // isolate the height term
	fog := newCPUFog(s)

	low := fog.DensityAt(mgl32.Vec3{0, 0, 0}, 0)
	high := fog.DensityAt(mgl32.Vec3{0, 50, 0}, 0)
	assert.Greater(t, low, high)
	assert.InDelta(t, float64(s.Density), float64(low), 1e-6, "sea level density is the base value")
}

func TestTransmittanceMonotonicInDistance(t *testing.T) {
	s := DefaultFogSettings()
	s.NoiseStrength = 0
	fog := newCPUFog(s)
	r := testRadiance()

	near, _ := fog.EvaluateRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, 20, r, 0)
	far, _ := fog.EvaluateRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, 200, r, 0)
	assert.Greater(t, near, far, "longer paths extinguish more light")
}
