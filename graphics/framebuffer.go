package graphics

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ColorAttachment describes one color texture attached to a framebuffer.
type ColorAttachment struct {
	InternalFormat int32  // e.g. gl.RGBA8, gl.RGBA16F
	Format         uint32 // e.g. gl.RGBA
	Type           uint32 // e.g. gl.UNSIGNED_BYTE, gl.HALF_FLOAT
	Filter         int32  // gl.NEAREST or gl.LINEAR
	Wrap           int32  // gl.CLAMP_TO_EDGE or gl.REPEAT
	Mipmap         bool
}

// DepthAttachment describes the depth(+stencil) attachment.
// When TextureBacked is true the depth buffer is a sampleable texture
// (shadow maps, depth reconstruction); otherwise a renderbuffer is used.
type DepthAttachment struct {
	TextureBacked bool
	Stencil       bool // DEPTH24_STENCIL8 renderbuffer instead of plain depth
}

// Framebuffer owns one GL framebuffer object and all of its attachments.
// Built through FramebufferBuilder; GPU objects exist only between Create
// and Destroy.
type Framebuffer struct {
	Name   string
	ID     uint32
	Width  int32
	Height int32

	Multisample bool
	Samples     int32

	colorSpecs []ColorAttachment
	depthSpec  *DepthAttachment

	// Live GPU objects (zero until Create)
	ColorTextures []uint32
	DepthTexture  uint32
	depthRBO      uint32

	valid bool
}

// ── Builder ───────────────────────────────────────────────────────────────────

// FramebufferBuilder is a plain configuration struct; Build validates it and
// returns a Framebuffer with no GPU objects allocated yet.
type FramebufferBuilder struct {
	Name        string
	Width       int
	Height      int
	Multisample bool
	Samples     int

	Colors []ColorAttachment
	Depth  *DepthAttachment
}

// HDRColorAttachment returns the standard RGBA16F linear attachment used by
// scene and post-process targets.
func HDRColorAttachment() ColorAttachment {
	return ColorAttachment{
		InternalFormat: gl.RGBA16F,
		Format:         gl.RGBA,
		Type:           gl.HALF_FLOAT,
		Filter:         gl.LINEAR,
		Wrap:           gl.CLAMP_TO_EDGE,
	}
}

// Build validates the configuration. A framebuffer with no attachments at
// all is a programming error and is rejected here, before any GPU work.
func (b FramebufferBuilder) Build() (*Framebuffer, error) {
	if len(b.Colors) == 0 && b.Depth == nil {
		return nil, fmt.Errorf("framebuffer %q: no attachments configured", b.Name)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("framebuffer %q: invalid dimensions %dx%d", b.Name, b.Width, b.Height)
	}
	if b.Multisample {
		for i, spec := range b.Colors {
			if spec.Mipmap {
				return nil, fmt.Errorf("framebuffer %q: color attachment %d requests mipmaps on a multisample target", b.Name, i)
			}
		}
	}
	samples := int32(b.Samples)
	if b.Multisample && samples < 2 {
		samples = 4
	}
	return &Framebuffer{
		Name:        b.Name,
		Width:       int32(b.Width),
		Height:      int32(b.Height),
		Multisample: b.Multisample,
		Samples:     samples,
		colorSpecs:  b.Colors,
		depthSpec:   b.Depth,
	}, nil
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// Create allocates all GPU objects: color textures in declaration order at
// COLOR_ATTACHMENT0..N-1, then the depth attachment, then validates
// completeness. Incompleteness indicates a programming or driver-capability
// error and is returned as a non-recoverable error.
func (f *Framebuffer) Create() error {
	gl.GenFramebuffers(1, &f.ID)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.ID)

	f.ColorTextures = make([]uint32, 0, len(f.colorSpecs))
	drawBuffers := make([]uint32, 0, len(f.colorSpecs))

	// Every attachment must carry the same sample count or the framebuffer
	// is incomplete, so multisample targets allocate multisample storage
	// for colors and depth alike.
	texTarget := uint32(gl.TEXTURE_2D)
	if f.Multisample {
		texTarget = gl.TEXTURE_2D_MULTISAMPLE
	}

	for i, spec := range f.colorSpecs {
		var tex uint32
		gl.GenTextures(1, &tex)
		gl.BindTexture(texTarget, tex)
		if f.Multisample {
			gl.TexImage2DMultisample(texTarget, f.Samples,
				uint32(spec.InternalFormat), f.Width, f.Height, true)
		} else {
			gl.TexImage2D(texTarget, 0, spec.InternalFormat,
				f.Width, f.Height, 0, spec.Format, spec.Type, nil)
			gl.TexParameteri(texTarget, gl.TEXTURE_MIN_FILTER, spec.Filter)
			gl.TexParameteri(texTarget, gl.TEXTURE_MAG_FILTER, spec.Filter)
			gl.TexParameteri(texTarget, gl.TEXTURE_WRAP_S, spec.Wrap)
			gl.TexParameteri(texTarget, gl.TEXTURE_WRAP_T, spec.Wrap)
			if spec.Mipmap {
				gl.GenerateMipmap(texTarget)
			}
		}
		gl.BindTexture(texTarget, 0)

		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, texTarget, tex, 0)
		f.ColorTextures = append(f.ColorTextures, tex)
		drawBuffers = append(drawBuffers, attachment)
	}

	if len(drawBuffers) > 0 {
		gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])
	} else {
		// Depth-only target (shadow maps): no color output at all.
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}

	if f.depthSpec != nil {
		if f.depthSpec.TextureBacked {
			gl.GenTextures(1, &f.DepthTexture)
			gl.BindTexture(texTarget, f.DepthTexture)
			if f.Multisample {
				gl.TexImage2DMultisample(texTarget, f.Samples,
					gl.DEPTH_COMPONENT32F, f.Width, f.Height, true)
			} else {
				gl.TexImage2D(texTarget, 0, gl.DEPTH_COMPONENT32F,
					f.Width, f.Height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
				gl.TexParameteri(texTarget, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
				gl.TexParameteri(texTarget, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
				gl.TexParameteri(texTarget, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
				gl.TexParameteri(texTarget, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
			}
			gl.BindTexture(texTarget, 0)
			gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
				texTarget, f.DepthTexture, 0)
		} else {
			gl.GenRenderbuffers(1, &f.depthRBO)
			gl.BindRenderbuffer(gl.RENDERBUFFER, f.depthRBO)
			format := uint32(gl.DEPTH_COMPONENT24)
			attach := uint32(gl.DEPTH_ATTACHMENT)
			if f.depthSpec.Stencil {
				format = gl.DEPTH24_STENCIL8
				attach = gl.DEPTH_STENCIL_ATTACHMENT
			}
			if f.Multisample {
				gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, f.Samples,
					format, f.Width, f.Height)
			} else {
				gl.RenderbufferStorage(gl.RENDERBUFFER, format, f.Width, f.Height)
			}
			gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
			gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attach, gl.RENDERBUFFER, f.depthRBO)
		}
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		f.releaseGPU()
		return fmt.Errorf("framebuffer %q incomplete: status=0x%X", f.Name, status)
	}

	f.valid = true
	return nil
}

// IsValid reports whether Create succeeded and Destroy has not been called.
func (f *Framebuffer) IsValid() bool { return f.valid }

// Bind makes this framebuffer the render target and sets the viewport.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.ID)
	gl.Viewport(0, 0, f.Width, f.Height)
}

// Unbind restores the default framebuffer.
func (f *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears the currently configured attachments. Bind must have been
// called first.
func (f *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	mask := uint32(0)
	if len(f.ColorTextures) > 0 {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if f.depthSpec != nil {
		mask |= gl.DEPTH_BUFFER_BIT
		if f.depthSpec.Stencil {
			mask |= gl.STENCIL_BUFFER_BIT
		}
	}
	gl.Clear(mask)
}

// Resize destroys and recreates every attachment at the new dimensions.
// A resize to the current dimensions is a no-op: no GPU objects are touched.
func (f *Framebuffer) Resize(width, height int) error {
	if int32(width) == f.Width && int32(height) == f.Height {
		return nil
	}
	f.releaseGPU()
	f.Width = int32(width)
	f.Height = int32(height)
	return f.Create()
}

// BlitTo copies the pixel rectangle of this framebuffer into target.
// mask selects channels (gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT);
// filter is gl.NEAREST or gl.LINEAR. A nil target blits to the screen.
func (f *Framebuffer) BlitTo(target *Framebuffer, mask uint32, filter uint32) {
	dstID := uint32(0)
	dstW, dstH := f.Width, f.Height
	if target != nil {
		dstID = target.ID
		dstW, dstH = target.Width, target.Height
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.ID)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dstID)
	gl.BlitFramebuffer(0, 0, f.Width, f.Height, 0, 0, dstW, dstH, mask, filter)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BlitToScreen resolves this framebuffer's color to the default target at
// the given screen dimensions.
func (f *Framebuffer) BlitToScreen(width, height int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.ID)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, f.Width, f.Height, 0, 0, int32(width), int32(height),
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Destroy releases all GPU objects exactly once.
func (f *Framebuffer) Destroy() {
	f.releaseGPU()
}

func (f *Framebuffer) releaseGPU() {
	for i := range f.ColorTextures {
		if f.ColorTextures[i] != 0 {
			gl.DeleteTextures(1, &f.ColorTextures[i])
		}
	}
	f.ColorTextures = nil
	if f.DepthTexture != 0 {
		gl.DeleteTextures(1, &f.DepthTexture)
		f.DepthTexture = 0
	}
	if f.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &f.depthRBO)
		f.depthRBO = 0
	}
	if f.ID != 0 {
		gl.DeleteFramebuffers(1, &f.ID)
		f.ID = 0
	}
	f.valid = false
}
