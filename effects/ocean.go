package effects

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/materials"
)

// maxShaderWaves is sized to the vertex shader's uniform array.
const maxShaderWaves = 8

const oceanVertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

struct Wave {
	vec2 direction;
	float amplitude;
	float wavenumber;
	float speed;
	float steepness;
	float phase;
};

uniform mat4 model;
uniform mat4 viewProj;
uniform float time;
uniform int waveCount;
uniform Wave waves[8];

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;
out float vFoam;

void main() {
	vec3 rest = (model * vec4(aPos, 1.0)).xyz;
	vec3 pos = rest;
	vec3 tangent = vec3(1.0, 0.0, 0.0);
	vec3 binormal = vec3(0.0, 0.0, 1.0);
	float foam = 0.0;

	for (int i = 0; i < waveCount; i++) {
		Wave w = waves[i];
		float k = w.wavenumber;
		float q = w.amplitude > 0.0 ? w.steepness / (k * w.amplitude) : 0.0;
		float theta = k * dot(w.direction, rest.xz) - k * w.speed * time + w.phase;
		float c = cos(theta);
		float s = sin(theta);

		pos += vec3(q * w.amplitude * w.direction.x * c,
		            w.amplitude * s,
		            q * w.amplitude * w.direction.y * c);

		float qak = q * w.amplitude * k;
		float ak = w.amplitude * k;
		tangent += vec3(-qak * w.direction.x * w.direction.x * s,
		                ak * w.direction.x * c,
		                -qak * w.direction.x * w.direction.y * s);
		binormal += vec3(-qak * w.direction.x * w.direction.y * s,
		                 ak * w.direction.y * c,
		                 -qak * w.direction.y * w.direction.y * s);

		foam += ((c + 1.0) * 0.5) * w.steepness * w.steepness * w.amplitude;
	}

	vWorldPos = pos;
	vNormal = normalize(cross(binormal, tangent));
	vUV = aUV;
	vFoam = clamp(foam, 0.0, 1.0);
	gl_Position = viewProj * vec4(pos, 1.0);
}
`

const oceanFragmentSrc = `
#version 410 core
in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;
in float vFoam;
out vec4 fragColor;

uniform vec3 cameraPos;
uniform vec3 sunDirection;
uniform vec3 sunColor;
uniform vec4 color;
uniform vec4 foamColor;
uniform float specularPower;

void main() {
	vec3 n = normalize(vNormal);
	vec3 sun = normalize(sunDirection);
	vec3 view = normalize(cameraPos - vWorldPos);

	float diffuse = max(dot(n, sun), 0.0);
	vec3 halfway = normalize(sun + view);
	float spec = pow(max(dot(n, halfway), 0.0), specularPower);

	// Fresnel-ish rim brightening toward grazing angles.
	float fresnel = pow(1.0 - max(dot(n, view), 0.0), 3.0);

	vec3 base = color.rgb * (0.25 + 0.75 * diffuse);
	base += sunColor * spec;
	base = mix(base, foamColor.rgb, vFoam * foamColor.a);
	base = mix(base, sunColor * 0.8, fresnel * 0.3);

	fragColor = vec4(base, color.a);
}
`

// Ocean is the animated sea surface: a flat grid displaced by Gerstner
// waves in the vertex shader, lit against the sky. The same WaveField is
// evaluated on the CPU for buoyancy queries, so gameplay and rendering
// agree on the surface.
type Ocean struct {
	Waves *WaveField

	meshes   *graphics.MeshManager
	shaders  *graphics.ShaderManager
	mesh     *graphics.Mesh
	material *materials.Material
	time     float32
}

// NewOcean uploads the grid and compiles the wave shader. grid should come
// from scene.GridData sized to taste.
func NewOcean(meshes *graphics.MeshManager, shaders *graphics.ShaderManager, grid *core.MeshData, waves *WaveField) (*Ocean, error) {
	if waves == nil {
		waves = DefaultOcean()
	}
	if len(waves.Waves) > maxShaderWaves {
		return nil, fmt.Errorf("ocean: at most %d waves supported, got %d", maxShaderWaves, len(waves.Waves))
	}
	shader, err := shaders.Create("ocean/surface", oceanVertexSrc, oceanFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("creating ocean shader: %w", err)
	}
	mesh := meshes.Create(grid)
	mat := materials.Builder{
		Name:   "ocean/surface",
		Type:   materials.TypeOcean,
		Shader: shader,
	}.Build()
	return &Ocean{
		Waves:    waves,
		meshes:   meshes,
		shaders:  shaders,
		mesh:     mesh,
		material: mat,
	}, nil
}

// Update advances the wave clock.
func (o *Ocean) Update(dt float32) {
	o.time += dt
}

// Material exposes the surface material for tuning (color, foam, specular).
func (o *Ocean) Material() *materials.Material { return o.material }

// Draw renders the surface. Call between the opaque queue and the sky so
// the transparent water blends over whatever is beneath it.
func (o *Ocean) Draw(model, viewProj mgl32.Mat4, cameraPos mgl32.Vec3, sky Radiance) {
	o.material.Bind()
	sh := o.material.Shader()
	sh.SetMat4("model", model)
	sh.SetMat4("viewProj", viewProj)
	sh.SetFloat("time", o.time)
	sh.SetVec3("cameraPos", cameraPos)
	sh.SetVec3("sunDirection", sky.SunDirection)
	sh.SetVec3("sunColor", sky.SunColor.Vec3())

	sh.SetInt("waveCount", int32(len(o.Waves.Waves)))
	for i, w := range o.Waves.Waves {
		prefix := fmt.Sprintf("waves[%d].", i)
		sh.SetVec2(prefix+"direction", w.Direction)
		sh.SetFloat(prefix+"amplitude", w.Amplitude)
		sh.SetFloat(prefix+"wavenumber", w.Wavenumber())
		sh.SetFloat(prefix+"speed", w.Speed)
		sh.SetFloat(prefix+"steepness", w.Steepness)
		sh.SetFloat(prefix+"phase", w.Phase)
	}

	o.mesh.Draw()
	o.material.Unbind()
}

// Destroy releases the grid and shader references.
func (o *Ocean) Destroy() {
	o.shaders.Release("ocean/surface")
	o.meshes.Release(o.mesh.Name)
}
