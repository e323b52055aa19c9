package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkyInputClamping(t *testing.T) {
	sky := NewHosekWilkieSky(99, -2)
	assert.Equal(t, float32(10), sky.Turbidity())
	assert.Equal(t, float32(0), sky.Albedo())

	sky.SetTurbidity(0)
	assert.Equal(t, float32(1), sky.Turbidity())
	sky.SetAlbedo(7)
	assert.Equal(t, float32(1), sky.Albedo())
}

func TestTimeOfDayWraps(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)

	sky.SetTimeOfDay(25)
	assert.InDelta(t, 1, float64(sky.TimeOfDay()), 1e-5)

	sky.SetTimeOfDay(-1)
	assert.InDelta(t, 23, float64(sky.TimeOfDay()), 1e-5)

	sky.SetTimeOfDay(24)
	assert.InDelta(t, 0, float64(sky.TimeOfDay()), 1e-5)
}

func TestAdvanceWraps(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)
	sky.SetTimeOfDay(23)
	sky.Advance(7200, 0.001) // 7.2 hours of sky time
	assert.InDelta(t, 6.2, float64(sky.TimeOfDay()), 1e-3)
}

func TestSunHighestAtNoon(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)

	sky.SetTimeOfDay(12)
	noon := sky.SunDirection().Y()

	sky.SetTimeOfDay(8)
	morning := sky.SunDirection().Y()

	sky.SetTimeOfDay(0)
	midnight := sky.SunDirection().Y()

	assert.Greater(t, noon, morning)
	assert.Negative(t, midnight, "sun below the horizon at midnight")
}

func TestSunDirectionIsUnit(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)
	for h := float32(0); h < 24; h += 1.5 {
		sky.SetTimeOfDay(h)
		assert.InDelta(t, 1, float64(sky.SunDirection().Len()), 1e-5, "hour %v", h)
	}
}

func TestSunColorBands(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)

	sky.SetTimeOfDay(12)
	noon := sky.SunColor()
	assert.InDelta(t, float64(sunDay.B), float64(noon.B), 1e-2, "high sun reaches the day band")

	sky.SetTimeOfDay(18)
	dusk := sky.SunColor()
	assert.InDelta(t, float64(sunSunset.R), float64(dusk.R), 1e-3)
	assert.InDelta(t, float64(sunSunset.B), float64(dusk.B), 1e-3, "horizon sun sits on the sunset band")

	sky.SetTimeOfDay(0)
	assert.Equal(t, sunNight, sky.SunColor(), "sun well below the horizon is the night band")
}

func TestSunIntensityExtinction(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)

	sky.SetTimeOfDay(12)
	noon := sky.SunIntensity()
	sky.SetTimeOfDay(17.5)
	dusk := sky.SunIntensity()
	assert.Greater(t, noon, dusk, "longer dusk air mass extinguishes more light")

	// Below the horizon the air mass caps at 1/0.01.
	sky.SetTimeOfDay(0)
	assert.InDelta(t, math.Exp(-10), float64(sky.SunIntensity()), 1e-6)
}

func TestSunReddensTowardDusk(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)

	sky.SetTimeOfDay(12)
	noon := sky.SunColor()
	sky.SetTimeOfDay(17.5)
	dusk := sky.SunColor()

	assert.Greater(t, noon.B/noon.R, dusk.B/dusk.R,
		"blue attenuates faster through the longer dusk air mass")
}

func TestRadianceDayNight(t *testing.T) {
	sky := NewHosekWilkieSky(3, 0.1)

	sky.SetTimeOfDay(12)
	day := sky.Evaluate()
	sky.SetTimeOfDay(0)
	night := sky.Evaluate()

	assert.Greater(t, day.Intensity, night.Intensity)
	assert.Greater(t, day.ZenithColor.B, night.ZenithColor.B)
	assert.GreaterOrEqual(t, night.Intensity, float32(0.02), "night keeps a moonlight floor")
}

func TestTurbidityWashesZenith(t *testing.T) {
	clear := NewHosekWilkieSky(1, 0.1)
	hazy := NewHosekWilkieSky(10, 0.1)
	clear.SetTimeOfDay(12)
	hazy.SetTimeOfDay(12)

	// Haze pulls the zenith toward the brighter horizon tint.
	assert.Greater(t, hazy.Evaluate().ZenithColor.R, clear.Evaluate().ZenithColor.R)
}
