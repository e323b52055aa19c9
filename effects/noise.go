package effects

import "math"

// Seamless 3D value noise for the fog density volume. The lattice hash is
// SplitMix64, so the volume is fully deterministic for a given seed, and
// lattice coordinates wrap at each octave's frequency so the baked texture
// tiles under REPEAT sampling.

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// latticeValue hashes an integer lattice point to [0, 1).
func latticeValue(x, y, z int, seed uint64) float64 {
	h := splitmix64(seed ^ uint64(x)*0x9E3779B97F4A7C15)
	h = splitmix64(h ^ uint64(y)*0xC2B2AE3D27D4EB4F)
	h = splitmix64(h ^ uint64(z)*0x165667B19E3779F9)
	return float64(h>>11) / float64(1<<53)
}

func wrap(i, period int) int {
	i %= period
	if i < 0 {
		i += period
	}
	return i
}

// fade is the quintic smoothstep used for lattice interpolation.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// valueNoise3 samples tileable value noise at p (in lattice units), wrapping
// lattice coordinates at period.
func valueNoise3(x, y, z float64, period int, seed uint64) float64 {
	x0, y0, z0 := int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))
	fx, fy, fz := x-float64(x0), y-float64(y0), z-float64(z0)
	ux, uy, uz := fade(fx), fade(fy), fade(fz)

	v := func(dx, dy, dz int) float64 {
		return latticeValue(wrap(x0+dx, period), wrap(y0+dy, period), wrap(z0+dz, period), seed)
	}
	return lerp(
		lerp(
			lerp(v(0, 0, 0), v(1, 0, 0), ux),
			lerp(v(0, 1, 0), v(1, 1, 0), ux),
			uy),
		lerp(
			lerp(v(0, 0, 1), v(1, 0, 1), ux),
			lerp(v(0, 1, 1), v(1, 1, 1), ux),
			uy),
		uz)
}

const fogNoiseOctaves = 4

// FractalNoise3 sums octaves of tileable value noise over the unit cube.
// p components are in [0, 1); the result is normalized to [0, 1].
func FractalNoise3(x, y, z float64, baseFrequency int, seed uint64) float64 {
	var sum, norm float64
	amp := 1.0
	freq := baseFrequency
	for o := 0; o < fogNoiseOctaves; o++ {
		f := float64(freq)
		sum += amp * valueNoise3(x*f, y*f, z*f, freq, seed+uint64(o))
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

// BakeFogVolume fills a size³ density volume with fractal noise, laid out
// for graphics.TextureManager.CreateVolume. The result tiles in all three
// axes.
func BakeFogVolume(size int, seed uint64) []float32 {
	voxels := make([]float32, size*size*size)
	inv := 1 / float64(size)
	i := 0
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				voxels[i] = float32(FractalNoise3(
					float64(x)*inv, float64(y)*inv, float64(z)*inv, 4, seed))
				i++
			}
		}
	}
	return voxels
}

// SampleFogVolume reads the baked volume with trilinear filtering and REPEAT
// wrapping, matching how the GPU samples the 3D texture. Coordinates are in
// volume UVW space, so [0, 1) spans the texture once.
func SampleFogVolume(voxels []float32, size int, u, v, w float64) float32 {
	fx := u*float64(size) - 0.5
	fy := v*float64(size) - 0.5
	fz := w*float64(size) - 0.5
	x0, y0, z0 := int(math.Floor(fx)), int(math.Floor(fy)), int(math.Floor(fz))
	tx, ty, tz := fx-float64(x0), fy-float64(y0), fz-float64(z0)

	at := func(dx, dy, dz int) float64 {
		x := wrap(x0+dx, size)
		y := wrap(y0+dy, size)
		z := wrap(z0+dz, size)
		return float64(voxels[(z*size+y)*size+x])
	}
	return float32(lerp(
		lerp(
			lerp(at(0, 0, 0), at(1, 0, 0), tx),
			lerp(at(0, 1, 0), at(1, 1, 0), tx),
			ty),
		lerp(
			lerp(at(0, 0, 1), at(1, 0, 1), tx),
			lerp(at(0, 1, 1), at(1, 1, 1), tx),
			ty),
		tz))
}
