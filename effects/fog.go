package effects

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

const fogVertexSrc = `
#version 410 core
out vec2 vUV;

// Single oversized triangle; no vertex buffer needed.
void main() {
	vec2 pos = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
	vUV = pos;
	gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

const fogFragmentSrc = `
#version 410 core
in vec2 vUV;
out vec4 fragColor;

uniform sampler2D sceneColor;
uniform sampler2D sceneDepth;
uniform sampler3D noiseVolume;

uniform mat4 invProjection;
uniform mat4 invView;
uniform vec3 cameraPos;
uniform vec3 sunDirection;
uniform vec3 sunColor;
uniform vec3 fogColor;

uniform float density;
uniform float heightFalloff;
uniform float anisotropy;
uniform float maxDistance;
uniform float noiseScale;
uniform float noiseStrength;
uniform vec3 wind;
uniform float time;
uniform int stepCount;

const float PI = 3.14159265359;

vec3 worldPosition(vec2 uv, float depth) {
	vec4 ndc = vec4(uv * 2.0 - 1.0, depth * 2.0 - 1.0, 1.0);
	vec4 view = invProjection * ndc;
	view /= view.w;
	return (invView * view).xyz;
}

float phaseHG(float cosTheta, float g) {
	float g2 = g * g;
	return (1.0 - g2) / (4.0 * PI * pow(1.0 + g2 - 2.0 * g * cosTheta, 1.5));
}

float phaseRayleigh(float cosTheta) {
	return 3.0 / (16.0 * PI) * (1.0 + cosTheta * cosTheta);
}

// Interleaved gradient noise breaks up step banding.
float dither(vec2 p) {
	return fract(52.9829189 * fract(dot(p, vec2(0.06711056, 0.00583715))));
}

float sampleDensity(vec3 p) {
	float h = exp(-heightFalloff * max(p.y, 0.0));
	vec3 uvw = p * noiseScale + wind * time;
	float n = texture(noiseVolume, uvw).r;
	return density * h * mix(1.0, n, noiseStrength);
}

void main() {
	vec3 scene = texture(sceneColor, vUV).rgb;
	float depth = texture(sceneDepth, vUV).r;
	vec3 target = worldPosition(vUV, depth);

	vec3 toTarget = target - cameraPos;
	float dist = min(length(toTarget), maxDistance);
	vec3 dir = normalize(toTarget);

	float stepLen = dist / float(stepCount);
	float offset = dither(gl_FragCoord.xy);
	vec3 sunDir = normalize(sunDirection);
	float cosTheta = dot(dir, sunDir);
	float phase = mix(phaseRayleigh(cosTheta), phaseHG(cosTheta, anisotropy), 0.7);

	float transmittance = 1.0;
	vec3 inscatter = vec3(0.0);
	for (int i = 0; i < stepCount; i++) {
		vec3 p = cameraPos + dir * ((float(i) + offset) * stepLen);
		float d = sampleDensity(p);
		// Raw density in the exponent so zero density leaves the ray
		// untouched; the floor only guards the normalization below.
		float stepTrans = exp(-d * stepLen);
		vec3 light = sunColor * phase + fogColor * 0.25;
		// Energy-conserving integration of scattering across the step.
		inscatter += transmittance * light * (d / max(d, 0.001)) * (1.0 - stepTrans);
		transmittance *= stepTrans;
		if (transmittance < 0.01) {
			break;
		}
	}

	fragColor = vec4(scene * transmittance + inscatter, 1.0);
}
`

// FogSettings are the tunable parameters of the volumetric fog march. Zero
// value is unusable; start from DefaultFogSettings.
type FogSettings struct {
	Density       float32 // base extinction at sea level
	HeightFalloff float32 // exponential thinning with altitude
	Anisotropy    float32 // Henyey-Greenstein g, (-1, 1)
	MaxDistance   float32 // march range in world units
	StepCount     int     // fixed march steps per pixel
	NoiseScale    float32 // world units to volume UVW
	NoiseStrength float32 // 0 = uniform fog, 1 = fully modulated
	Wind          mgl32.Vec3
	Color         mgl32.Vec3 // ambient inscatter tint
}

// DefaultFogSettings returns a light marine haze.
func DefaultFogSettings() FogSettings {
	return FogSettings{
		Density:       0.015,
		HeightFalloff: 0.08,
		Anisotropy:    0.6,
		MaxDistance:   300,
		StepCount:     48,
		NoiseScale:    0.01,
		NoiseStrength: 0.5,
		Wind:          mgl32.Vec3{0.01, 0, 0.004},
		Color:         mgl32.Vec3{0.55, 0.62, 0.7},
	}
}

// Validate reports the first out-of-range setting.
func (s FogSettings) Validate() error {
	if s.Density < 0 {
		return fmt.Errorf("fog: density must be non-negative, got %v", s.Density)
	}
	if s.Anisotropy <= -1 || s.Anisotropy >= 1 {
		return fmt.Errorf("fog: anisotropy must be in (-1, 1), got %v", s.Anisotropy)
	}
	if s.StepCount < 1 {
		return fmt.Errorf("fog: step count must be at least 1, got %d", s.StepCount)
	}
	if s.MaxDistance <= 0 {
		return fmt.Errorf("fog: max distance must be positive, got %v", s.MaxDistance)
	}
	return nil
}

const fogVolumeSize = 64

// VolumetricFog is a fullscreen post pass that ray-marches height fog with
// noise modulation over the finished scene. It reads the scene color and
// depth textures and writes the composited result to the bound target.
type VolumetricFog struct {
	Settings FogSettings

	shaders  *graphics.ShaderManager
	textures *graphics.TextureManager
	shader   *graphics.Shader
	noise    *graphics.Texture
	voxels   []float32 // kept for CPU-side evaluation

	vao  uint32
	time float32
}

// NewVolumetricFog bakes the density volume, uploads it, and compiles the
// march shader.
func NewVolumetricFog(shaders *graphics.ShaderManager, textures *graphics.TextureManager, settings FogSettings) (*VolumetricFog, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	shader, err := shaders.Create("fog/march", fogVertexSrc, fogFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("creating fog shader: %w", err)
	}
	voxels := BakeFogVolume(fogVolumeSize, 1337)
	noise, err := textures.CreateVolume("fog/noise", fogVolumeSize, voxels)
	if err != nil {
		shaders.Release("fog/march")
		return nil, fmt.Errorf("creating fog noise volume: %w", err)
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)

	return &VolumetricFog{
		Settings: settings,
		shaders:  shaders,
		textures: textures,
		shader:   shader,
		noise:    noise,
		voxels:   voxels,
		vao:      vao,
	}, nil
}

// Update advances the wind scroll clock.
func (f *VolumetricFog) Update(dt float32) {
	f.time += dt
}

// Draw composites fog over the scene. sceneColor and sceneDepth are the
// finished frame's attachment handles (graphics.Framebuffer.ColorTextures
// and DepthTexture); the result lands in whatever framebuffer is currently
// bound.
func (f *VolumetricFog) Draw(cam FogCamera, sky Radiance, sceneColor, sceneDepth uint32) {
	s := f.Settings
	f.shader.Bind()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, sceneColor)
	f.shader.SetInt("sceneColor", 0)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, sceneDepth)
	f.shader.SetInt("sceneDepth", 1)
	f.noise.Bind(2)
	f.shader.SetInt("noiseVolume", 2)

	f.shader.SetMat4("invProjection", cam.InvProjection)
	f.shader.SetMat4("invView", cam.InvView)
	f.shader.SetVec3("cameraPos", cam.Position)
	f.shader.SetVec3("sunDirection", sky.SunDirection)
	f.shader.SetVec3("sunColor", sky.SunColor.Vec3())
	f.shader.SetVec3("fogColor", s.Color)

	f.shader.SetFloat("density", s.Density)
	f.shader.SetFloat("heightFalloff", s.HeightFalloff)
	f.shader.SetFloat("anisotropy", s.Anisotropy)
	f.shader.SetFloat("maxDistance", s.MaxDistance)
	f.shader.SetFloat("noiseScale", s.NoiseScale)
	f.shader.SetFloat("noiseStrength", s.NoiseStrength)
	f.shader.SetVec3("wind", s.Wind)
	f.shader.SetFloat("time", f.time)
	f.shader.SetInt("stepCount", int32(s.StepCount))

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(f.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)

	f.shader.Unbind()
}

// Destroy releases the pass's GPU resources.
func (f *VolumetricFog) Destroy() {
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
		f.vao = 0
	}
	if f.shaders != nil {
		f.shaders.Release(f.shader.Name)
	}
	if f.textures != nil {
		f.textures.Release(f.noise.Name)
	}
}

// FogCamera is the camera state the fog pass needs for depth reconstruction.
type FogCamera struct {
	Position      mgl32.Vec3
	InvProjection mgl32.Mat4
	InvView       mgl32.Mat4
}

// ── CPU reference ─────────────────────────────────────────────────────────────

// HenyeyGreenstein evaluates the HG phase function for scattering angle
// cosine cosTheta and anisotropy g.
func HenyeyGreenstein(cosTheta, g float32) float32 {
	g2 := float64(g * g)
	denom := math.Pow(1+g2-2*float64(g)*float64(cosTheta), 1.5)
	return float32((1 - g2) / (4 * math.Pi * denom))
}

// RayleighPhase evaluates the Rayleigh phase function.
func RayleighPhase(cosTheta float32) float32 {
	c := float64(cosTheta)
	return float32(3 / (16 * math.Pi) * (1 + c*c))
}

// DensityAt evaluates the fog density at a world point, mirroring the
// shader's sampleDensity.
func (f *VolumetricFog) DensityAt(p mgl32.Vec3, time float32) float32 {
	s := f.Settings
	h := float32(math.Exp(float64(-s.HeightFalloff * max32(p.Y(), 0))))
	uvw := p.Mul(s.NoiseScale).Add(s.Wind.Mul(time))
	n := SampleFogVolume(f.voxels, fogVolumeSize, float64(uvw.X()), float64(uvw.Y()), float64(uvw.Z()))
	return s.Density * h * (1 + s.NoiseStrength*(n-1))
}

// EvaluateRay marches a ray on the CPU exactly as the shader does and
// returns the remaining transmittance and the inscattered light. dither in
// [0, 1) offsets the first sample.
func (f *VolumetricFog) EvaluateRay(origin, dir mgl32.Vec3, dist float32, sky Radiance, dither float32) (transmittance float32, inscatter mgl32.Vec3) {
	s := f.Settings
	if dist > s.MaxDistance {
		dist = s.MaxDistance
	}
	stepLen := dist / float32(s.StepCount)
	cosTheta := dir.Dot(sky.SunDirection)
	phase := RayleighPhase(cosTheta)*(0.3) + HenyeyGreenstein(cosTheta, s.Anisotropy)*0.7

	transmittance = 1
	sunCol := sky.SunColor.Vec3()
	for i := 0; i < s.StepCount; i++ {
		p := origin.Add(dir.Mul((float32(i) + dither) * stepLen))
		d := f.DensityAt(p, f.time)
		// Raw density in the exponent so zero density leaves the ray
		// untouched; the floor only guards the normalization below.
		stepTrans := float32(math.Exp(float64(-d * stepLen)))
		light := sunCol.Mul(phase).Add(s.Color.Mul(0.25))
		inscatter = inscatter.Add(light.Mul(transmittance * (d / max32(d, 0.001)) * (1 - stepTrans)))
		transmittance *= stepTrans
		if transmittance < 0.01 {
			break
		}
	}
	return transmittance, inscatter
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
