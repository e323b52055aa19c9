package materials

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Render state is modelled as closed enum variants mapped to fixed GL
// config tuples through package-level dispatch tables. Adding a variant
// means adding a table row; no behavior lives on the enums themselves.

// ── BlendMode ─────────────────────────────────────────────────────────────────

// BlendMode selects a fixed source/destination blend factor pair.
type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAlpha
	BlendAdditive
	BlendMultiply
	BlendPremultiplied
)

type blendConfig struct {
	enabled  bool
	src, dst uint32
}

var blendTable = map[BlendMode]blendConfig{
	BlendNone:          {enabled: false},
	BlendAlpha:         {enabled: true, src: gl.SRC_ALPHA, dst: gl.ONE_MINUS_SRC_ALPHA},
	BlendAdditive:      {enabled: true, src: gl.SRC_ALPHA, dst: gl.ONE},
	BlendMultiply:      {enabled: true, src: gl.DST_COLOR, dst: gl.ZERO},
	BlendPremultiplied: {enabled: true, src: gl.ONE, dst: gl.ONE_MINUS_SRC_ALPHA},
}

// apply sets GL blend state for the mode.
func (b BlendMode) apply() {
	cfg := blendTable[b]
	if cfg.enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(cfg.src, cfg.dst)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// ── CullMode ──────────────────────────────────────────────────────────────────

// CullMode selects face culling.
type CullMode int

const (
	CullBack CullMode = iota
	CullFront
	CullNone
	CullFrontAndBack
)

var cullTable = map[CullMode]struct {
	enabled bool
	face    uint32
}{
	CullBack:         {enabled: true, face: gl.BACK},
	CullFront:        {enabled: true, face: gl.FRONT},
	CullNone:         {enabled: false},
	CullFrontAndBack: {enabled: true, face: gl.FRONT_AND_BACK},
}

func (c CullMode) apply() {
	cfg := cullTable[c]
	if cfg.enabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(cfg.face)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// ── DepthTest ─────────────────────────────────────────────────────────────────

// DepthTest selects the depth comparison function and write mask.
type DepthTest int

const (
	DepthDefault DepthTest = iota // LEQUAL, writes enabled
	DepthLess
	DepthEqual
	DepthGreater
	DepthGreaterEqual
	DepthNotEqual
	DepthAlways
	DepthReadOnly // LEQUAL, writes disabled (transparents, particles)
	DepthDisabled // no test, no writes (UI, post-process)
)

type depthConfig struct {
	enabled bool
	fn      uint32
	write   bool
}

var depthTable = map[DepthTest]depthConfig{
	DepthDefault:      {enabled: true, fn: gl.LEQUAL, write: true},
	DepthLess:         {enabled: true, fn: gl.LESS, write: true},
	DepthEqual:        {enabled: true, fn: gl.EQUAL, write: true},
	DepthGreater:      {enabled: true, fn: gl.GREATER, write: true},
	DepthGreaterEqual: {enabled: true, fn: gl.GEQUAL, write: true},
	DepthNotEqual:     {enabled: true, fn: gl.NOTEQUAL, write: true},
	DepthAlways:       {enabled: true, fn: gl.ALWAYS, write: true},
	DepthReadOnly:     {enabled: true, fn: gl.LEQUAL, write: false},
	DepthDisabled:     {enabled: false, fn: gl.LEQUAL, write: false},
}

func (d DepthTest) apply() {
	cfg := depthTable[d]
	if cfg.enabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(cfg.fn)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(cfg.write)
}

// resetBaseline restores the fixed GL baseline every Unbind returns to:
// blending off, back-face culling on, depth test LEQUAL with writes, solid
// fill. There is no state stack; callers re-bind a material before the
// next draw.
func resetBaseline() {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(true)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.LineWidth(1)
}
