package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
)

// Queue selects which render queue a command executes in. Queues run in a
// fixed order with different blend state; see Renderer.EndFrame.
type Queue int

const (
	QueueOpaque Queue = iota
	QueueTransparent
	QueueUI
)

func (q Queue) String() string {
	switch q {
	case QueueOpaque:
		return "opaque"
	case QueueTransparent:
		return "transparent"
	case QueueUI:
		return "ui"
	default:
		return fmt.Sprintf("queue(%d)", int(q))
	}
}

// Command describes one draw operation. Commands are value objects built
// fresh (or copied) each frame, submitted once, and discarded when the
// queues are cleared at the next BeginFrame. Mesh, shader, and textures are
// non-owning references into the resource managers.
type Command struct {
	Mesh     *graphics.Mesh
	Shader   *graphics.Shader
	Textures []*graphics.Texture

	Transform mgl32.Mat4
	// Position caches the transform's translation column for distance sorting.
	Position mgl32.Vec3

	Queue     Queue
	SortOrder int // tiebreak for equal camera distances within a queue

	Tint  core.Color
	Alpha float32

	CastShadow    bool
	ReceiveShadow bool
	Visible       bool

	// Radius of the mesh's bounding sphere in world units, used for
	// distance culling.
	Radius float32

	// Squared distance to the camera, recomputed each frame before the
	// transparent sort.
	CameraDistSq float32
}

// NewCommand returns a command with neutral defaults: visible, opaque,
// white tint, identity transform.
func NewCommand() *Command {
	return &Command{
		Transform: mgl32.Ident4(),
		Tint:      core.ColorWhite,
		Alpha:     1,
		Visible:   true,
	}
}

// SetTransform stores the model matrix and refreshes the cached translation.
func (c *Command) SetTransform(m mgl32.Mat4) {
	c.Transform = m
	c.Position = mgl32.Vec3{m[12], m[13], m[14]}
}

// SetAlpha sets the command's opacity. Any alpha below 1 forces the command
// into the transparent queue; a queue that is already non-opaque (UI) is
// preserved.
func (c *Command) SetAlpha(alpha float32) {
	c.Alpha = alpha
	if alpha < 1 && c.Queue == QueueOpaque {
		c.Queue = QueueTransparent
	}
}

// IsValid reports whether the command can be drawn. Invalid commands are
// accepted by Submit and skipped at draw time.
func (c *Command) IsValid() bool {
	return c.Visible && c.Mesh != nil && c.Shader != nil
}

// UpdateCameraDistance recomputes the squared distance from the camera used
// by the transparent back-to-front sort.
func (c *Command) UpdateCameraDistance(camPos mgl32.Vec3) {
	c.CameraDistSq = c.Position.Sub(camPos).LenSqr()
}

// ShouldCull reports whether the command's bounding sphere lies entirely
// beyond maxDist from the camera. maxDist <= 0 disables culling.
func (c *Command) ShouldCull(camPos mgl32.Vec3, maxDist float32) bool {
	if maxDist <= 0 {
		return false
	}
	limit := maxDist + c.Radius
	return c.Position.Sub(camPos).LenSqr() > limit*limit
}

// ── Builder ───────────────────────────────────────────────────────────────────

// CommandBuilder is a plain configuration struct for Command construction.
type CommandBuilder struct {
	Mesh      *graphics.Mesh
	Shader    *graphics.Shader
	Textures  []*graphics.Texture
	Transform mgl32.Mat4
	Queue     Queue
	SortOrder int
	Tint      core.Color
	Alpha     float32
	Radius    float32

	CastShadow    bool
	ReceiveShadow bool
}

// Build assembles the command, applying the alpha/queue invariant and the
// mesh's bounding radius when none was given.
func (b CommandBuilder) Build() *Command {
	cmd := NewCommand()
	cmd.Mesh = b.Mesh
	cmd.Shader = b.Shader
	cmd.Textures = b.Textures
	if b.Transform != (mgl32.Mat4{}) {
		cmd.SetTransform(b.Transform)
	}
	cmd.Queue = b.Queue
	cmd.SortOrder = b.SortOrder
	if b.Tint != (core.Color{}) {
		cmd.Tint = b.Tint
	}
	cmd.CastShadow = b.CastShadow
	cmd.ReceiveShadow = b.ReceiveShadow
	cmd.Radius = b.Radius
	if cmd.Radius == 0 && b.Mesh != nil {
		cmd.Radius = b.Mesh.Radius
	}
	alpha := b.Alpha
	if alpha == 0 {
		alpha = 1
	}
	cmd.SetAlpha(alpha)
	return cmd
}
