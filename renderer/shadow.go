package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

const shadowVertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 lightViewProj;
uniform mat4 model;

void main() {
	gl_Position = lightViewProj * model * vec4(aPos, 1.0);
}
`

const shadowFragmentSrc = `
#version 410 core

void main() {
	// depth only
}
`

// ShadowPass renders shadow casters into a depth-only target from the sun's
// point of view. The resulting depth texture and light matrix are consumed
// by scene shaders that sample shadows.
type ShadowPass struct {
	size    int
	target  *graphics.Framebuffer
	shader  *graphics.Shader
	shaders *graphics.ShaderManager
	fbs     *graphics.FramebufferManager

	LightViewProj mgl32.Mat4
}

// NewShadowPass allocates the depth target and compiles the depth shader.
// The target is registered under "shadow/sun" and skipped by window resizes.
func NewShadowPass(r *Renderer, size int) (*ShadowPass, error) {
	target, err := r.Framebuffers.CreateShadowMap("shadow/sun", size)
	if err != nil {
		return nil, fmt.Errorf("creating shadow target: %w", err)
	}
	shader, err := r.Shaders.Create("shadow/depth", shadowVertexSrc, shadowFragmentSrc)
	if err != nil {
		r.Framebuffers.Release("shadow/sun")
		return nil, fmt.Errorf("creating shadow shader: %w", err)
	}
	return &ShadowPass{
		size:          size,
		target:        target,
		shader:        shader,
		shaders:       r.Shaders,
		fbs:           r.Framebuffers,
		LightViewProj: mgl32.Ident4(),
	}, nil
}

// DepthTexture returns the shadow map's GL texture handle for sampling in
// scene shaders.
func (p *ShadowPass) DepthTexture() uint32 {
	return p.target.DepthTexture
}

// SunViewProjection builds an orthographic light matrix covering extent
// world units around center, looking along sunDir.
func SunViewProjection(sunDir, center mgl32.Vec3, extent float32) mgl32.Mat4 {
	eye := center.Add(sunDir.Normalize().Mul(extent))
	up := mgl32.Vec3{0, 1, 0}
	if abs32(sunDir.Normalize().Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(eye, center, up)
	proj := mgl32.Ortho(-extent, extent, -extent, extent, 0.1, extent*3)
	return proj.Mul4(view)
}

// Render draws every valid shadow-casting command into the depth target.
// Front faces are culled to reduce acne on closed meshes. The caller is
// responsible for rebinding its scene target and viewport afterwards.
func (p *ShadowPass) Render(cmds []*Command, lightViewProj mgl32.Mat4) {
	p.LightViewProj = lightViewProj

	p.target.Bind()
	gl.Viewport(0, 0, int32(p.size), int32(p.size))
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	p.shader.Bind()
	p.shader.SetMat4("lightViewProj", lightViewProj)
	gl.CullFace(gl.FRONT)

	for _, cmd := range cmds {
		if !cmd.CastShadow || !cmd.IsValid() {
			continue
		}
		p.shader.SetMat4("model", cmd.Transform)
		cmd.Mesh.Draw()
	}

	gl.CullFace(gl.BACK)
	p.shader.Unbind()
	p.target.Unbind()
}

// Destroy releases the depth target and shader references.
func (p *ShadowPass) Destroy() {
	p.shaders.Release("shadow/depth")
	p.fbs.Release("shadow/sun")
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
