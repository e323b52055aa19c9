package materials

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

// MaterialType tags a material with its role; each type seeds default
// render state and properties (see typeDefaults).
type MaterialType int

const (
	TypeOpaque MaterialType = iota
	TypeTransparent
	TypeCutout
	TypeOcean
	TypeShip
	TypeTerrain
	TypeSkybox
	TypeUI
	TypeParticle
	TypeShadow
	TypePostProcess
)

type materialDefaults struct {
	blend BlendMode
	cull  CullMode
	depth DepthTest
	props map[string]Property
}

// typeDefaults maps each material type to its seed state. Per-instance
// overrides go through the builder or SetProperty.
var typeDefaults = map[MaterialType]materialDefaults{
	TypeOpaque: {BlendNone, CullBack, DepthDefault, map[string]Property{
		"color": Vec4(mgl32.Vec4{1, 1, 1, 1}),
	}},
	TypeTransparent: {BlendAlpha, CullBack, DepthReadOnly, map[string]Property{
		"color": Vec4(mgl32.Vec4{1, 1, 1, 0.5}),
	}},
	TypeCutout: {BlendNone, CullNone, DepthDefault, map[string]Property{
		"color":       Vec4(mgl32.Vec4{1, 1, 1, 1}),
		"alphaCutoff": Float(0.5),
	}},
	TypeOcean: {BlendAlpha, CullNone, DepthDefault, map[string]Property{
		"color":         Vec4(mgl32.Vec4{0.05, 0.25, 0.4, 0.92}),
		"foamColor":     Vec3(mgl32.Vec3{0.95, 0.97, 1.0}),
		"specularPower": Float(96),
	}},
	TypeShip: {BlendNone, CullBack, DepthDefault, map[string]Property{
		"color":         Vec4(mgl32.Vec4{1, 1, 1, 1}),
		"specularPower": Float(32),
	}},
	TypeTerrain: {BlendNone, CullBack, DepthDefault, map[string]Property{
		"color": Vec4(mgl32.Vec4{1, 1, 1, 1}),
	}},
	TypeSkybox: {BlendNone, CullFront, DepthReadOnly, map[string]Property{
		"sunIntensity": Float(1),
	}},
	TypeUI: {BlendAlpha, CullNone, DepthDisabled, map[string]Property{
		"color": Vec4(mgl32.Vec4{1, 1, 1, 1}),
	}},
	TypeParticle: {BlendAdditive, CullNone, DepthReadOnly, map[string]Property{
		"color": Vec4(mgl32.Vec4{1, 1, 1, 1}),
	}},
	TypeShadow:      {BlendNone, CullFront, DepthLess, map[string]Property{}},
	TypePostProcess: {BlendNone, CullNone, DepthDisabled, map[string]Property{}},
}

// Material binds a shader, a texture set, a property bag, and render state
// into one reusable unit. Shader and textures are non-owning references
// managed by the resource managers; the material never frees them.
type Material struct {
	Name string
	Type MaterialType

	shader *graphics.Shader

	// Texture slot name → texture, and the unit each slot was assigned.
	// Unit assignment is sequential and stable for the material's lifetime:
	// a slot keeps its unit even when its texture is swapped.
	textures     map[string]*graphics.Texture
	textureUnits map[string]uint32
	nextUnit     uint32

	properties map[string]Property

	Blend     BlendMode
	Cull      CullMode
	Depth     DepthTest
	Wireframe bool
	LineWidth float32
}

// ── Builder ───────────────────────────────────────────────────────────────────

// TextureBinding names one texture slot. Order matters: units are assigned
// in declaration order.
type TextureBinding struct {
	Slot    string
	Texture *graphics.Texture
}

// Builder is a plain configuration struct for Material construction.
type Builder struct {
	Name     string
	Type     MaterialType
	Shader   *graphics.Shader
	Textures []TextureBinding
	// Properties override or extend the type's defaults.
	Properties map[string]Property
	// State overrides; nil means "use the type default".
	Blend     *BlendMode
	Cull      *CullMode
	Depth     *DepthTest
	Wireframe bool
	LineWidth float32
}

// Build creates the material, seeding defaults from the type and assigning
// texture units in declaration order.
func (b Builder) Build() *Material {
	defaults := typeDefaults[b.Type]

	m := &Material{
		Name:         b.Name,
		Type:         b.Type,
		shader:       b.Shader,
		textures:     make(map[string]*graphics.Texture),
		textureUnits: make(map[string]uint32),
		properties:   make(map[string]Property, len(defaults.props)+len(b.Properties)),
		Blend:        defaults.blend,
		Cull:         defaults.cull,
		Depth:        defaults.depth,
		Wireframe:    b.Wireframe,
		LineWidth:    b.LineWidth,
	}
	if m.LineWidth == 0 {
		m.LineWidth = 1
	}
	for k, v := range defaults.props {
		m.properties[k] = v
	}
	for k, v := range b.Properties {
		m.properties[k] = v
	}
	for _, tb := range b.Textures {
		m.SetTexture(tb.Slot, tb.Texture)
	}
	if b.Blend != nil {
		m.Blend = *b.Blend
	}
	if b.Cull != nil {
		m.Cull = *b.Cull
	}
	if b.Depth != nil {
		m.Depth = *b.Depth
	}
	return m
}

// ── Bind / Unbind ─────────────────────────────────────────────────────────────

// Bind activates the shader, applies the three render-state groups, binds
// every texture to its assigned unit, and pushes the property bag as shader
// parameters. Nil textures are tolerated (the slot is skipped).
func (m *Material) Bind() {
	if m.shader == nil {
		return
	}
	m.shader.Bind()

	m.Blend.apply()
	m.Cull.apply()
	m.Depth.apply()

	if m.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.LineWidth(m.LineWidth)

	for slot, tex := range m.textures {
		if tex == nil {
			continue
		}
		unit := m.textureUnits[slot]
		tex.Bind(unit)
		m.shader.SetInt(slot, int32(unit))
	}

	for name, prop := range m.properties {
		switch prop.Kind {
		case KindFloat:
			m.shader.SetFloat(name, prop.AsFloat(0))
		case KindInt:
			m.shader.SetInt(name, prop.AsInt(0))
		case KindBool:
			m.shader.SetBool(name, prop.AsBool(false))
		case KindVec2:
			m.shader.SetVec2(name, prop.AsVec2(mgl32.Vec2{}))
		case KindVec3:
			m.shader.SetVec3(name, prop.AsVec3(mgl32.Vec3{}))
		case KindVec4:
			m.shader.SetVec4(name, prop.AsVec4(mgl32.Vec4{}))
		}
	}
}

// Unbind resets GL state to the fixed baseline, not the previously bound
// material's state. Callers must Bind again before the next draw.
func (m *Material) Unbind() {
	resetBaseline()
	gl.UseProgram(0)
}

// ── Properties and textures ───────────────────────────────────────────────────

// SetProperty stores a property value, replacing any previous value.
func (m *Material) SetProperty(name string, value Property) {
	m.properties[name] = value
}

// GetProperty returns the stored property for name. The second result is
// false when the name is absent; reads never fail, callers use the As*
// accessors with defaults for type safety.
func (m *Material) GetProperty(name string) (Property, bool) {
	p, ok := m.properties[name]
	return p, ok
}

// FloatProperty reads a float property, returning def when the name is
// absent or holds a different kind.
func (m *Material) FloatProperty(name string, def float32) float32 {
	p, ok := m.properties[name]
	if !ok {
		return def
	}
	return p.AsFloat(def)
}

// Vec4Property reads a vec4 property with a default.
func (m *Material) Vec4Property(name string, def mgl32.Vec4) mgl32.Vec4 {
	p, ok := m.properties[name]
	if !ok {
		return def
	}
	return p.AsVec4(def)
}

// SetTexture assigns a texture to a named slot. The first assignment of a
// slot fixes its texture unit; later swaps reuse the same unit.
func (m *Material) SetTexture(slot string, tex *graphics.Texture) {
	if _, seen := m.textureUnits[slot]; !seen {
		m.textureUnits[slot] = m.nextUnit
		m.nextUnit++
	}
	m.textures[slot] = tex
}

// Texture returns the texture in a slot, or nil.
func (m *Material) Texture(slot string) *graphics.Texture {
	return m.textures[slot]
}

// TextureUnit returns the unit assigned to a slot and whether it exists.
func (m *Material) TextureUnit(slot string) (uint32, bool) {
	u, ok := m.textureUnits[slot]
	return u, ok
}

// Shader returns the material's shader reference.
func (m *Material) Shader() *graphics.Shader {
	return m.shader
}

// Clone returns a copy with its own property bag and texture-unit table.
// Property values (including vectors, which are value types) are copied, so
// mutating the clone never affects the original. The shader and textures
// remain shared non-owning references. An empty newName generates a unique
// one derived from the original.
func (m *Material) Clone(newName string) *Material {
	if newName == "" {
		newName = m.Name + "-" + uuid.NewString()[:8]
	}
	clone := &Material{
		Name:         newName,
		Type:         m.Type,
		shader:       m.shader,
		textures:     make(map[string]*graphics.Texture, len(m.textures)),
		textureUnits: make(map[string]uint32, len(m.textureUnits)),
		nextUnit:     m.nextUnit,
		properties:   make(map[string]Property, len(m.properties)),
		Blend:        m.Blend,
		Cull:         m.Cull,
		Depth:        m.Depth,
		Wireframe:    m.Wireframe,
		LineWidth:    m.LineWidth,
	}
	for k, v := range m.textures {
		clone.textures[k] = v
	}
	for k, v := range m.textureUnits {
		clone.textureUnits[k] = v
	}
	for k, v := range m.properties {
		clone.properties[k] = v
	}
	return clone
}
