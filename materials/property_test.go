package materials

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPropertyRoundTrip(t *testing.T) {
	assert.Equal(t, float32(2.5), Float(2.5).AsFloat(0))
	assert.Equal(t, int32(7), Int(7).AsInt(0))
	assert.True(t, Bool(true).AsBool(false))
	assert.Equal(t, mgl32.Vec2{1, 2}, Vec2(mgl32.Vec2{1, 2}).AsVec2(mgl32.Vec2{}))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, Vec3(mgl32.Vec3{1, 2, 3}).AsVec3(mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, Vec4(mgl32.Vec4{1, 2, 3, 4}).AsVec4(mgl32.Vec4{}))
}

func TestPropertyTagMismatchReturnsDefault(t *testing.T) {
	p := Float(3.14)
	assert.Equal(t, int32(42), p.AsInt(42))
	assert.Equal(t, mgl32.Vec4{9, 9, 9, 9}, p.AsVec4(mgl32.Vec4{9, 9, 9, 9}))
	assert.False(t, p.AsBool(false))

	v := Vec3(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, float32(-1), v.AsFloat(-1))
}
