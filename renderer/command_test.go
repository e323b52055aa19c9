package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

func TestSetAlphaForcesTransparentQueue(t *testing.T) {
	cmd := NewCommand()
	assert.Equal(t, QueueOpaque, cmd.Queue)

	cmd.SetAlpha(0.5)
	assert.Equal(t, QueueTransparent, cmd.Queue)

	// Raising alpha back to 1 does not move the command again.
	cmd.SetAlpha(1)
	assert.Equal(t, QueueTransparent, cmd.Queue)
}

func TestSetAlphaPreservesUIQueue(t *testing.T) {
	cmd := NewCommand()
	cmd.Queue = QueueUI
	cmd.SetAlpha(0.3)
	assert.Equal(t, QueueUI, cmd.Queue)
}

func TestIsValid(t *testing.T) {
	mesh := &graphics.Mesh{}
	shader := &graphics.Shader{}

	cmd := NewCommand()
	assert.False(t, cmd.IsValid(), "nil mesh and shader")

	cmd.Mesh = mesh
	assert.False(t, cmd.IsValid(), "nil shader")

	cmd.Shader = shader
	assert.True(t, cmd.IsValid())

	cmd.Visible = false
	assert.False(t, cmd.IsValid(), "hidden commands are invalid")
}

func TestShouldCull(t *testing.T) {
	cmd := NewCommand()
	cmd.SetTransform(mgl32.Translate3D(100, 0, 0))
	cmd.Radius = 5

	camPos := mgl32.Vec3{}
	assert.False(t, cmd.ShouldCull(camPos, 0), "zero max distance disables culling")
	assert.False(t, cmd.ShouldCull(camPos, 96), "bounding sphere still intersects the range")
	assert.True(t, cmd.ShouldCull(camPos, 90))
}

func TestSetTransformCachesPosition(t *testing.T) {
	cmd := NewCommand()
	cmd.SetTransform(mgl32.Translate3D(3, -2, 7))
	assert.Equal(t, mgl32.Vec3{3, -2, 7}, cmd.Position)
}

func TestCommandBuilderDefaults(t *testing.T) {
	mesh := &graphics.Mesh{Radius: 4}
	cmd := CommandBuilder{
		Mesh:   mesh,
		Shader: &graphics.Shader{},
	}.Build()

	assert.True(t, cmd.Visible)
	assert.Equal(t, float32(1), cmd.Alpha, "unset alpha defaults to opaque")
	assert.Equal(t, QueueOpaque, cmd.Queue)
	assert.Equal(t, float32(4), cmd.Radius, "radius taken from the mesh")
	assert.Equal(t, mgl32.Ident4(), cmd.Transform)
}

func TestCommandBuilderAlphaRouting(t *testing.T) {
	cmd := CommandBuilder{
		Mesh:   &graphics.Mesh{},
		Shader: &graphics.Shader{},
		Alpha:  0.4,
	}.Build()
	assert.Equal(t, QueueTransparent, cmd.Queue)
	assert.Equal(t, float32(0.4), cmd.Alpha)
}
