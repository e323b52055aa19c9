package effects

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

// HosekWilkieSky is an analytic daylight model driven by turbidity, ground
// albedo, and time of day. It produces the sun direction and a reduced set
// of radiance parameters that the sky shader turns into a full dome; the
// same values feed scene lighting so objects match the sky.
type HosekWilkieSky struct {
	turbidity float32 // atmospheric haze, [1, 10]
	albedo    float32 // ground reflectance, [0, 1]
	timeOfDay float32 // hours, [0, 24)
}

// NewHosekWilkieSky builds a sky with inputs clamped to their model ranges.
func NewHosekWilkieSky(turbidity, albedo float32) *HosekWilkieSky {
	return &HosekWilkieSky{
		turbidity: clamp(turbidity, 1, 10),
		albedo:    clamp(albedo, 0, 1),
		timeOfDay: 12,
	}
}

// SetTurbidity sets atmospheric haze, clamped to [1, 10].
func (s *HosekWilkieSky) SetTurbidity(t float32) { s.turbidity = clamp(t, 1, 10) }

// Turbidity returns the current haze value.
func (s *HosekWilkieSky) Turbidity() float32 { return s.turbidity }

// SetAlbedo sets ground reflectance, clamped to [0, 1].
func (s *HosekWilkieSky) SetAlbedo(a float32) { s.albedo = clamp(a, 0, 1) }

// Albedo returns the current ground reflectance.
func (s *HosekWilkieSky) Albedo() float32 { return s.albedo }

// SetTimeOfDay sets the solar hour, wrapped into [0, 24).
func (s *HosekWilkieSky) SetTimeOfDay(hours float32) {
	h := float32(math.Mod(float64(hours), 24))
	if h < 0 {
		h += 24
	}
	s.timeOfDay = h
}

// TimeOfDay returns the current hour in [0, 24).
func (s *HosekWilkieSky) TimeOfDay() float32 { return s.timeOfDay }

// Advance moves the clock forward by dt seconds at the given speedup
// (hours of sky time per real second).
func (s *HosekWilkieSky) Advance(dt, hoursPerSecond float32) {
	s.SetTimeOfDay(s.timeOfDay + dt*hoursPerSecond)
}

// solarAngle maps the hour to the sun's angle past zenith: 0 at noon,
// ±π/2 at 06:00 and 18:00.
func (s *HosekWilkieSky) solarAngle() float64 {
	return float64(s.timeOfDay-12) * math.Pi / 12
}

// SunDirection returns the unit vector from the origin toward the sun. The
// sun travels an east-to-west arc in the XY plane with a slight southward
// lean.
func (s *HosekWilkieSky) SunDirection() mgl32.Vec3 {
	a := s.solarAngle()
	dir := mgl32.Vec3{
		float32(math.Sin(a)),
		float32(math.Cos(a)),
		-0.3,
	}
	return dir.Normalize()
}

// SunElevation returns the sun's elevation above the horizon in radians;
// negative when the sun is below the horizon.
func (s *HosekWilkieSky) SunElevation() float32 {
	d := s.SunDirection()
	return float32(math.Asin(float64(d.Y())))
}

// sunHeight is the sine of the sun's elevation, the key the color bands and
// air mass are derived from.
func (s *HosekWilkieSky) sunHeight() float32 {
	return s.SunDirection().Y()
}

// airMass approximates the relative optical path length through the
// atmosphere, 1/max(sunHeight, 0.01), capped near and below the horizon.
func (s *HosekWilkieSky) airMass() float32 {
	h := s.sunHeight()
	if h < 0.01 {
		h = 0.01
	}
	return 1 / h
}

// SunIntensity returns the direct sun strength after atmospheric
// extinction, exp(-0.1·airMass). Roughly 0.9 overhead, falling toward zero
// as the path length through the atmosphere grows at the horizon.
func (s *HosekWilkieSky) SunIntensity() float32 {
	return float32(math.Exp(-0.1 * float64(s.airMass())))
}

// Sun color bands, interpolated piecewise on sun height: full day well
// above the horizon, reddened sunset crossing it, near-black night below.
var (
	sunDay    = core.Color{R: 1, G: 0.96, B: 0.88, A: 1}
	sunSunset = core.Color{R: 1, G: 0.45, B: 0.15, A: 1}
	sunNight  = core.Color{R: 0.02, G: 0.03, B: 0.08, A: 1}
)

// SunColor returns the direct sun color for the current sun height:
// sunset → day above the horizon, night → sunset in the twilight band
// (height in (-0.2, 0]), plain night below.
func (s *HosekWilkieSky) SunColor() core.Color {
	h := s.sunHeight()
	switch {
	case h > 0:
		return sunSunset.Lerp(sunDay, clamp(h*2.5, 0, 1))
	case h > -0.2:
		return sunNight.Lerp(sunSunset, (h+0.2)/0.2)
	default:
		return sunNight
	}
}

// turbidityScale is the simplified coefficient response 1 + (T − 3) · 0.1,
// anchored at the model's reference turbidity of 3.
func (s *HosekWilkieSky) turbidityScale() float32 {
	return 1 + (s.turbidity-3)*0.1
}

// Radiance holds the reduced per-frame sky parameters uploaded as uniforms.
type Radiance struct {
	SunDirection mgl32.Vec3
	SunColor     core.Color
	ZenithColor  core.Color
	HorizonColor core.Color
	// Intensity scales the whole dome; falls toward zero at night.
	Intensity float32
}

// Evaluate computes the current radiance parameters.
func (s *HosekWilkieSky) Evaluate() Radiance {
	elev := s.SunElevation()
	day := clamp(elev*4+0.2, 0, 1)
	scale := s.turbidityScale()

	// Higher turbidity washes the zenith toward the horizon tint and
	// brightens the horizon band; albedo bounces light back into the dome.
	zenith := core.Color{R: 0.05, G: 0.18, B: 0.42, A: 1}
	horizon := core.Color{R: 0.45, G: 0.55, B: 0.68, A: 1}
	zenith = zenith.Lerp(horizon, clamp((scale-1)*0.8, 0, 0.6))
	bounce := s.albedo * 0.15
	horizon = core.Color{
		R: clamp(horizon.R*scale+bounce, 0, 1),
		G: clamp(horizon.G*scale+bounce, 0, 1),
		B: clamp(horizon.B*scale+bounce, 0, 1),
		A: 1,
	}

	// Dusk pulls the horizon toward the reddened sun color.
	sun := s.SunColor()
	duskMix := clamp(1-float32(math.Abs(float64(elev)))*3, 0, 1) * day
	horizon = horizon.Lerp(core.Color{R: sun.R, G: sun.G * 0.6, B: sun.B * 0.4, A: 1}, duskMix)

	night := core.Color{R: 0.01, G: 0.012, B: 0.03, A: 1}
	return Radiance{
		SunDirection: s.SunDirection(),
		SunColor:     sun,
		ZenithColor:  night.Lerp(zenith, day),
		HorizonColor: night.Lerp(horizon, day),
		Intensity:    0.02 + 0.98*day,
	}
}

// Apply uploads the current radiance parameters to a bound sky shader.
func (s *HosekWilkieSky) Apply(sh *graphics.Shader) {
	r := s.Evaluate()
	sh.SetVec3("sunDirection", r.SunDirection)
	sh.SetVec3("sunColor", r.SunColor.Vec3())
	sh.SetVec3("zenithColor", r.ZenithColor.Vec3())
	sh.SetVec3("horizonColor", r.HorizonColor.Vec3())
	sh.SetFloat("skyIntensity", r.Intensity)
	sh.SetFloat("turbidity", s.turbidity)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
