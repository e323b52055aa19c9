package effects

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

const skyVertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 view;
uniform mat4 projection;

out vec3 vDirection;

void main() {
	vDirection = aPos;
	// Strip translation so the dome follows the camera.
	mat4 rotView = mat4(mat3(view));
	vec4 pos = projection * rotView * vec4(aPos, 1.0);
	// xyww pins depth to the far plane; the dome passes LEQUAL exactly there.
	gl_Position = pos.xyww;
}
`

const skyFragmentSrc = `
#version 410 core
in vec3 vDirection;
out vec4 fragColor;

uniform vec3 sunDirection;
uniform vec3 sunColor;
uniform vec3 zenithColor;
uniform vec3 horizonColor;
uniform float skyIntensity;
uniform float turbidity;

void main() {
	vec3 dir = normalize(vDirection);
	float h = clamp(dir.y, 0.0, 1.0);
	// Turbidity flattens the zenith-to-horizon gradient.
	float curve = mix(1.4, 0.7, clamp((turbidity - 1.0) / 9.0, 0.0, 1.0));
	vec3 dome = mix(horizonColor, zenithColor, pow(h, curve));

	float cosSun = dot(dir, normalize(sunDirection));
	float disc = smoothstep(0.9995, 0.9999, cosSun);
	float halo = pow(max(cosSun, 0.0), 64.0) * 0.25;

	vec3 color = dome * skyIntensity + sunColor * (disc + halo);
	fragColor = vec4(color, 1.0);
}
`

// DynamicSky owns the sky dome pass: a Hosek-Wilkie model for radiance, a
// unit cube drawn at the far plane, and a simulated clock. Draw it after
// the opaque queue so depth testing skips covered pixels.
type DynamicSky struct {
	Model *HosekWilkieSky

	meshes  *graphics.MeshManager
	shaders *graphics.ShaderManager
	mesh    *graphics.Mesh
	shader  *graphics.Shader

	// HoursPerSecond is the clock speedup; 0 freezes the sun.
	HoursPerSecond float32
}

// NewDynamicSky compiles the dome shader and uploads the cube mesh through
// the managers, so the resources participate in normal refcounting.
func NewDynamicSky(meshes *graphics.MeshManager, shaders *graphics.ShaderManager, cube *core.MeshData) (*DynamicSky, error) {
	shader, err := shaders.Create("sky/dome", skyVertexSrc, skyFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("creating sky shader: %w", err)
	}
	mesh := meshes.Create(cube)
	return &DynamicSky{
		Model:          NewHosekWilkieSky(3, 0.1),
		meshes:         meshes,
		shaders:        shaders,
		mesh:           mesh,
		shader:         shader,
		HoursPerSecond: 0.02,
	}, nil
}

// Update advances the sky clock.
func (s *DynamicSky) Update(dt float32) {
	s.Model.Advance(dt, s.HoursPerSecond)
}

// Radiance exposes the current sky parameters for scene lighting and fog.
func (s *DynamicSky) Radiance() Radiance {
	return s.Model.Evaluate()
}

// Draw renders the dome. The cube is wound for outside viewing, so front
// faces are culled while the camera sits inside it.
func (s *DynamicSky) Draw(view, projection mgl32.Mat4) {
	s.shader.Bind()
	s.shader.SetMat4("view", view)
	s.shader.SetMat4("projection", projection)
	s.Model.Apply(s.shader)

	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
	gl.CullFace(gl.FRONT)
	s.mesh.Draw()
	gl.CullFace(gl.BACK)
	gl.DepthMask(true)

	s.shader.Unbind()
}

// Destroy releases the dome's shader and mesh references.
func (s *DynamicSky) Destroy() {
	if s.shaders != nil {
		s.shaders.Release(s.shader.Name)
	}
	if s.meshes != nil {
		s.meshes.Release(s.mesh.Name)
	}
}
