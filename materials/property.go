package materials

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PropertyKind discriminates the value held by a Property.
type PropertyKind int

const (
	KindFloat PropertyKind = iota
	KindInt
	KindBool
	KindVec2
	KindVec3
	KindVec4
)

// Property is a tagged-union shader parameter value. Only the field matching
// Kind is meaningful; the reader accessors enforce the tag.
type Property struct {
	Kind PropertyKind
	f    float32
	i    int32
	b    bool
	v2   mgl32.Vec2
	v3   mgl32.Vec3
	v4   mgl32.Vec4
}

func Float(v float32) Property   { return Property{Kind: KindFloat, f: v} }
func Int(v int32) Property       { return Property{Kind: KindInt, i: v} }
func Bool(v bool) Property       { return Property{Kind: KindBool, b: v} }
func Vec2(v mgl32.Vec2) Property { return Property{Kind: KindVec2, v2: v} }
func Vec3(v mgl32.Vec3) Property { return Property{Kind: KindVec3, v3: v} }
func Vec4(v mgl32.Vec4) Property { return Property{Kind: KindVec4, v4: v} }

// AsFloat returns the float value, or def on a tag mismatch.
func (p Property) AsFloat(def float32) float32 {
	if p.Kind != KindFloat {
		return def
	}
	return p.f
}

// AsInt returns the integer value, or def on a tag mismatch.
func (p Property) AsInt(def int32) int32 {
	if p.Kind != KindInt {
		return def
	}
	return p.i
}

// AsBool returns the boolean value, or def on a tag mismatch.
func (p Property) AsBool(def bool) bool {
	if p.Kind != KindBool {
		return def
	}
	return p.b
}

// AsVec2 returns the 2D vector value, or def on a tag mismatch.
func (p Property) AsVec2(def mgl32.Vec2) mgl32.Vec2 {
	if p.Kind != KindVec2 {
		return def
	}
	return p.v2
}

// AsVec3 returns the 3D vector value, or def on a tag mismatch.
func (p Property) AsVec3(def mgl32.Vec3) mgl32.Vec3 {
	if p.Kind != KindVec3 {
		return def
	}
	return p.v3
}

// AsVec4 returns the 4D vector value, or def on a tag mismatch.
func (p Property) AsVec4(def mgl32.Vec4) mgl32.Vec4 {
	if p.Kind != KindVec4 {
		return def
	}
	return p.v4
}
