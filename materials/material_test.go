package materials

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDefaults(t *testing.T) {
	cases := []struct {
		typ   MaterialType
		blend BlendMode
		cull  CullMode
		depth DepthTest
	}{
		{TypeOpaque, BlendNone, CullBack, DepthDefault},
		{TypeTransparent, BlendAlpha, CullBack, DepthReadOnly},
		{TypeOcean, BlendAlpha, CullNone, DepthDefault},
		{TypeSkybox, BlendNone, CullFront, DepthReadOnly},
		{TypeUI, BlendAlpha, CullNone, DepthDisabled},
		{TypeParticle, BlendAdditive, CullNone, DepthReadOnly},
		{TypeShadow, BlendNone, CullFront, DepthLess},
	}
	for _, tc := range cases {
		m := Builder{Name: "m", Type: tc.typ}.Build()
		assert.Equal(t, tc.blend, m.Blend, "%v blend", tc.typ)
		assert.Equal(t, tc.cull, m.Cull, "%v cull", tc.typ)
		assert.Equal(t, tc.depth, m.Depth, "%v depth", tc.typ)
	}
}

func TestOceanSeedProperties(t *testing.T) {
	m := Builder{Name: "sea", Type: TypeOcean}.Build()
	assert.Equal(t, float32(96), m.FloatProperty("specularPower", 0))

	color := m.Vec4Property("color", mgl32.Vec4{})
	assert.InDelta(t, 0.92, float64(color.W()), 1e-6, "ocean defaults translucent")
}

func TestBuilderOverrides(t *testing.T) {
	blend := BlendAdditive
	depth := DepthAlways
	m := Builder{
		Name:  "custom",
		Type:  TypeOpaque,
		Blend: &blend,
		Depth: &depth,
		Properties: map[string]Property{
			"color": Vec4(mgl32.Vec4{1, 0, 0, 1}),
		},
	}.Build()

	assert.Equal(t, BlendAdditive, m.Blend)
	assert.Equal(t, DepthAlways, m.Depth)
	assert.Equal(t, CullBack, m.Cull, "unset state keeps the type default")
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, m.Vec4Property("color", mgl32.Vec4{}))
	assert.Equal(t, float32(1), m.LineWidth, "zero line width normalized")
}

func TestTextureUnitAssignmentIsStable(t *testing.T) {
	m := Builder{Name: "hull", Type: TypeShip}.Build()
	m.SetTexture("albedo", nil)
	m.SetTexture("normalMap", nil)

	albedoUnit, ok := m.TextureUnit("albedo")
	require.True(t, ok)
	normalUnit, ok := m.TextureUnit("normalMap")
	require.True(t, ok)
	assert.Equal(t, uint32(0), albedoUnit)
	assert.Equal(t, uint32(1), normalUnit)

	// Re-assigning a slot must not move its unit.
	m.SetTexture("albedo", nil)
	unit, _ := m.TextureUnit("albedo")
	assert.Equal(t, uint32(0), unit)

	m.SetTexture("foam", nil)
	unit, _ = m.TextureUnit("foam")
	assert.Equal(t, uint32(2), unit)
}

func TestCloneIsolation(t *testing.T) {
	orig := Builder{Name: "base", Type: TypeOcean}.Build()
	clone := orig.Clone("variant")

	clone.SetProperty("specularPower", Float(8))
	clone.SetProperty("color", Vec4(mgl32.Vec4{1, 0, 0, 1}))

	assert.Equal(t, float32(96), orig.FloatProperty("specularPower", 0),
		"clone writes must not leak into the original")
	assert.Equal(t, float32(8), clone.FloatProperty("specularPower", 0))
	assert.Same(t, orig.Shader(), clone.Shader(), "shader reference is shared")
}

func TestCloneGeneratesName(t *testing.T) {
	orig := Builder{Name: "base", Type: TypeOpaque}.Build()
	a := orig.Clone("")
	b := orig.Clone("")
	assert.NotEmpty(t, a.Name)
	assert.NotEqual(t, a.Name, b.Name)
}

func TestCloneTextureUnitsPreserved(t *testing.T) {
	orig := Builder{Name: "base", Type: TypeShip}.Build()
	orig.SetTexture("albedo", nil)
	orig.SetTexture("normalMap", nil)

	clone := orig.Clone("copy")
	unit, ok := clone.TextureUnit("normalMap")
	require.True(t, ok)
	assert.Equal(t, uint32(1), unit)

	// New slots on the clone continue from the copied counter.
	clone.SetTexture("foam", nil)
	unit, _ = clone.TextureUnit("foam")
	assert.Equal(t, uint32(2), unit)
}
