package effects

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GerstnerWave describes one trochoidal wave component. Several waves are
// superposed by a WaveField to produce an ocean surface; evaluation is pure
// CPU math, usable for buoyancy queries as well as for mirroring the vertex
// shader.
type GerstnerWave struct {
	Direction mgl32.Vec2 // horizontal travel direction, normalized
	Amplitude float32    // crest height in world units
	Length    float32    // wavelength in world units
	Speed     float32    // phase speed in units per second
	Steepness float32    // 0 = pure sine, 1 = sharp crests
	Phase     float32    // initial phase offset, radians
}

// NewGerstnerWave validates and normalizes a wave component.
func NewGerstnerWave(dir mgl32.Vec2, amplitude, length, speed, steepness float32) (GerstnerWave, error) {
	if length <= 0 {
		return GerstnerWave{}, fmt.Errorf("gerstner wave: wavelength must be positive, got %v", length)
	}
	if amplitude < 0 {
		return GerstnerWave{}, fmt.Errorf("gerstner wave: amplitude must be non-negative, got %v", amplitude)
	}
	if steepness < 0 || steepness > 1 {
		return GerstnerWave{}, fmt.Errorf("gerstner wave: steepness must be in [0,1], got %v", steepness)
	}
	if dir.LenSqr() == 0 {
		dir = mgl32.Vec2{1, 0}
	}
	return GerstnerWave{
		Direction: dir.Normalize(),
		Amplitude: amplitude,
		Length:    length,
		Speed:     speed,
		Steepness: steepness,
	}, nil
}

// UpdateParameters replaces the wave's tunables in place, applying the same
// validation and normalization as NewGerstnerWave. On error the wave is left
// unchanged.
func (w *GerstnerWave) UpdateParameters(dir mgl32.Vec2, amplitude, length, speed, steepness float32) error {
	next, err := NewGerstnerWave(dir, amplitude, length, speed, steepness)
	if err != nil {
		return err
	}
	next.Phase = w.Phase
	*w = next
	return nil
}

// Wavenumber returns k = 2π / wavelength.
func (w GerstnerWave) Wavenumber() float32 {
	return 2 * math.Pi / w.Length
}

// theta returns the phase argument k·(dir·[x,z]) − ω·t + phase, with
// angular frequency ω = k · speed.
func (w GerstnerWave) theta(x, z, t float32) float64 {
	k := w.Wavenumber()
	d := w.Direction.X()*x + w.Direction.Y()*z
	return float64(k*d - k*w.Speed*t + w.Phase)
}

// Displace returns the displacement of the rest point (x, z) at time t.
// Horizontal displacement is scaled by Q = steepness / (k · amplitude) so
// crests sharpen without self-intersecting.
func (w GerstnerWave) Displace(x, z, t float32) mgl32.Vec3 {
	if w.Amplitude == 0 {
		return mgl32.Vec3{}
	}
	k := w.Wavenumber()
	q := w.Steepness / (k * w.Amplitude)
	th := w.theta(x, z, t)
	cosT := float32(math.Cos(th))
	sinT := float32(math.Sin(th))
	qa := q * w.Amplitude
	return mgl32.Vec3{
		qa * w.Direction.X() * cosT,
		w.Amplitude * sinT,
		qa * w.Direction.Y() * cosT,
	}
}

// derivatives returns ∂offset/∂x and ∂offset/∂z at (x, z, t), used to build
// the surface tangent basis analytically.
func (w GerstnerWave) derivatives(x, z, t float32) (dx, dz mgl32.Vec3) {
	if w.Amplitude == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	k := w.Wavenumber()
	q := w.Steepness / (k * w.Amplitude)
	th := w.theta(x, z, t)
	cosT := float32(math.Cos(th))
	sinT := float32(math.Sin(th))
	wx, wz := w.Direction.X(), w.Direction.Y()
	qak := q * w.Amplitude * k
	ak := w.Amplitude * k
	dx = mgl32.Vec3{-qak * wx * wx * sinT, ak * wx * cosT, -qak * wx * wz * sinT}
	dz = mgl32.Vec3{-qak * wx * wz * sinT, ak * wz * cosT, -qak * wz * wz * sinT}
	return dx, dz
}

// Foam returns the foam contribution of this wave at (x, z, t):
// ((cos θ + 1) / 2) · steepness² · amplitude, peaking at crests of steep
// high waves.
func (w GerstnerWave) Foam(x, z, t float32) float32 {
	crest := (float32(math.Cos(w.theta(x, z, t))) + 1) / 2
	return crest * w.Steepness * w.Steepness * w.Amplitude
}

// ── WaveField ─────────────────────────────────────────────────────────────────

// WaveField superposes Gerstner waves into one ocean surface.
type WaveField struct {
	Waves []GerstnerWave
}

// DefaultOcean returns a four-wave field tuned for open sea swell.
func DefaultOcean() *WaveField {
	mk := func(dx, dz, a, l, s, q float32) GerstnerWave {
		w, _ := NewGerstnerWave(mgl32.Vec2{dx, dz}, a, l, s, q)
		return w
	}
	return &WaveField{Waves: []GerstnerWave{
		mk(1, 0.3, 0.8, 45, 6, 0.55),
		mk(0.7, -1, 0.4, 23, 4.2, 0.45),
		mk(-0.2, 1, 0.2, 11, 3.1, 0.35),
		mk(1, 1, 0.09, 5.5, 2.4, 0.25),
	}}
}

// SurfaceAt evaluates the displaced surface position at rest point (x, z).
func (f *WaveField) SurfaceAt(x, z, t float32) mgl32.Vec3 {
	p := mgl32.Vec3{x, 0, z}
	for _, w := range f.Waves {
		p = p.Add(w.Displace(x, z, t))
	}
	return p
}

// HeightAt returns the vertical displacement at rest point (x, z). Note the
// actual surface above (x, z) differs slightly because Gerstner waves also
// displace horizontally; this is adequate for buoyancy.
func (f *WaveField) HeightAt(x, z, t float32) float32 {
	var y float32
	for _, w := range f.Waves {
		y += w.Displace(x, z, t).Y()
	}
	return y
}

// NormalAt returns the unit surface normal at rest point (x, z), from the
// cross product of the analytic tangent and binormal.
func (f *WaveField) NormalAt(x, z, t float32) mgl32.Vec3 {
	tangent := mgl32.Vec3{1, 0, 0}
	binormal := mgl32.Vec3{0, 0, 1}
	for _, w := range f.Waves {
		dx, dz := w.derivatives(x, z, t)
		tangent = tangent.Add(dx)
		binormal = binormal.Add(dz)
	}
	return binormal.Cross(tangent).Normalize()
}

// FoamAt returns the summed foam intensity at rest point (x, z), clamped
// to [0,1].
func (f *WaveField) FoamAt(x, z, t float32) float32 {
	var foam float32
	for _, w := range f.Waves {
		foam += w.Foam(x, z, t)
	}
	if foam > 1 {
		foam = 1
	}
	return foam
}
