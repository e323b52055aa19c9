package renderer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/scene"
)

// Renderable is anything the scene can hand to Render for drawing.
type Renderable interface {
	RenderCommand() *Command
}

// World supplies the renderables visible this frame.
type World interface {
	VisibleRenderables() []Renderable
}

// Renderer owns the GL pipeline state, the resource managers, and the three
// render queues. All methods must be called from the render thread.
type Renderer struct {
	log    core.Logger
	config core.Config

	width  int
	height int

	Meshes       *graphics.MeshManager
	Textures     *graphics.TextureManager
	Shaders      *graphics.ShaderManager
	Framebuffers *graphics.FramebufferManager

	camera *scene.Camera

	opaque      []*Command
	transparent []*Command
	ui          []*Command

	stats      FrameStats
	frameStart time.Time
	clearColor core.Color

	blending    bool
	initialized bool
}

// New constructs a renderer. GL is not touched until Initialize.
func New(cfg core.Config, log core.Logger) *Renderer {
	if log == nil {
		log = core.NewLogger("renderer", cfg.Debug)
	}
	return &Renderer{
		log:        log,
		config:     cfg,
		width:      cfg.WindowWidth,
		height:     cfg.WindowHeight,
		clearColor: core.Color{R: 0.05, G: 0.07, B: 0.1, A: 1},
	}
}

// Initialize binds the GL function pointers, verifies the context version,
// and creates the resource managers and default camera. The calling
// goroutine must hold the GL context.
func (r *Renderer) Initialize() error {
	if r.initialized {
		return nil
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL bindings: %w", err)
	}
	version, err := graphics.CheckCapabilities()
	if err != nil {
		return fmt.Errorf("checking GL capabilities: %w", err)
	}
	r.log.Infof("OpenGL %s", version)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))

	r.Meshes = graphics.NewMeshManager(r.log)
	r.Textures = graphics.NewTextureManager(r.log, 4096)
	r.Shaders = graphics.NewShaderManager(r.log)
	r.Framebuffers = graphics.NewFramebufferManager(r.log)

	aspect := float32(r.width) / float32(r.height)
	r.camera = scene.NewCamera(r.config.FOV, aspect, r.config.NearPlane, r.config.FarPlane)

	r.initialized = true
	return nil
}

// Camera returns the active camera.
func (r *Renderer) Camera() *scene.Camera { return r.camera }

// SetCamera replaces the active camera. Nil is ignored.
func (r *Renderer) SetCamera(c *scene.Camera) {
	if c != nil {
		r.camera = c
	}
}

// SetClearColor sets the color buffer clear value for subsequent frames.
func (r *Renderer) SetClearColor(c core.Color) { r.clearColor = c }

// Stats returns the counters of the most recently completed frame.
func (r *Renderer) Stats() FrameStats { return r.stats }

// BeginFrame clears the backbuffer and resets the queues and counters.
func (r *Renderer) BeginFrame() {
	r.frameStart = time.Now()
	r.stats.reset()

	r.opaque = r.opaque[:0]
	r.transparent = r.transparent[:0]
	r.ui = r.ui[:0]

	gl.ClearColor(r.clearColor.R, r.clearColor.G, r.clearColor.B, r.clearColor.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Submit appends a command to its queue. Validation is deferred to draw
// time so submission stays O(1).
func (r *Renderer) Submit(cmd *Command) {
	if cmd == nil {
		return
	}
	r.stats.Submitted++
	switch cmd.Queue {
	case QueueTransparent:
		r.transparent = append(r.transparent, cmd)
	case QueueUI:
		r.ui = append(r.ui, cmd)
	default:
		r.opaque = append(r.opaque, cmd)
	}
}

// Queued returns the commands submitted to a queue this frame, in
// submission order. The slice is owned by the renderer; do not retain it.
func (r *Renderer) Queued(q Queue) []*Command {
	switch q {
	case QueueTransparent:
		return r.transparent
	case QueueUI:
		return r.ui
	default:
		return r.opaque
	}
}

// Render submits every visible renderable from world and draws the frame
// through cam. A nil cam keeps the current camera. This is a convenience
// over BeginFrame/Submit/EndFrame for callers with a world object.
func (r *Renderer) Render(world World, cam *scene.Camera) {
	r.SetCamera(cam)
	r.BeginFrame()
	if world != nil {
		for _, obj := range world.VisibleRenderables() {
			if cmd := obj.RenderCommand(); cmd != nil {
				r.Submit(cmd)
			}
		}
	}
	r.EndFrame()
}

// EndFrame executes the queues: opaque front-to-back state, then transparent
// sorted back-to-front with blending, then UI on top. Blending is toggled
// lazily so opaque-only frames never touch it. Callers that interleave
// effect passes between world and UI use EndScene and DrawUI directly.
func (r *Renderer) EndFrame() {
	r.EndScene()
	r.DrawUI()
}

// EndScene executes the opaque and transparent queues, leaving the UI queue
// untouched so effect passes (ocean, sky, fog) can render before DrawUI.
func (r *Renderer) EndScene() {
	camPos := r.camera.Position()
	viewProj := r.camera.ViewProjection()

	r.setBlending(false)
	r.executeQueue(r.opaque, camPos, viewProj)

	if len(r.transparent) > 0 {
		sortTransparent(r.transparent, camPos)
		r.setBlending(true)
		gl.DepthMask(false)
		r.executeQueue(r.transparent, camPos, viewProj)
		gl.DepthMask(true)
		r.setBlending(false)
	}
}

// DrawUI executes the UI queue over whatever is in the bound target and
// finalizes the frame counters. Call once per frame, after EndScene.
func (r *Renderer) DrawUI() {
	if len(r.ui) > 0 {
		camPos := r.camera.Position()
		viewProj := r.camera.ViewProjection()
		r.setBlending(true)
		gl.Disable(gl.DEPTH_TEST)
		r.executeQueue(r.ui, camPos, viewProj)
		gl.Enable(gl.DEPTH_TEST)
		r.setBlending(false)
	}

	r.stats.FrameTime = time.Since(r.frameStart)
	r.stats.FrameCount++
}

// sortTransparent orders commands back-to-front by squared camera distance.
// SortOrder breaks distance ties; the sort is stable so fully equal
// commands keep submission order.
func sortTransparent(cmds []*Command, camPos mgl32.Vec3) {
	for _, c := range cmds {
		c.UpdateCameraDistance(camPos)
	}
	sort.SliceStable(cmds, func(i, j int) bool {
		if cmds[i].CameraDistSq != cmds[j].CameraDistSq {
			return cmds[i].CameraDistSq > cmds[j].CameraDistSq
		}
		return cmds[i].SortOrder < cmds[j].SortOrder
	})
}

func (r *Renderer) executeQueue(cmds []*Command, camPos mgl32.Vec3, viewProj mgl32.Mat4) {
	for _, cmd := range cmds {
		if !cmd.IsValid() {
			r.stats.Skipped++
			continue
		}
		if cmd.Queue != QueueUI && cmd.ShouldCull(camPos, r.config.MaxRenderDistance) {
			r.stats.Culled++
			continue
		}
		r.draw(cmd, camPos, viewProj)
	}
}

func (r *Renderer) draw(cmd *Command, camPos mgl32.Vec3, viewProj mgl32.Mat4) {
	sh := cmd.Shader
	sh.Bind()
	sh.SetMat4("model", cmd.Transform)
	sh.SetMat4("viewProj", viewProj)
	sh.SetVec3("cameraPos", camPos)
	tint := cmd.Tint
	sh.SetVec4("tintColor", mgl32.Vec4{tint.R, tint.G, tint.B, tint.A * cmd.Alpha})

	for i, tex := range cmd.Textures {
		if tex == nil {
			continue
		}
		tex.Bind(uint32(i))
		sh.SetInt(fmt.Sprintf("texture%d", i), int32(i))
	}

	cmd.Mesh.Draw()
	r.stats.recordDraw(int(cmd.Mesh.VertexCount), int(cmd.Mesh.IndexCount))
}

func (r *Renderer) setBlending(on bool) {
	if on == r.blending {
		return
	}
	if on {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	r.blending = on
}

// OnWindowResize updates the viewport, camera aspect, and any framebuffers
// registered to track the window size.
func (r *Renderer) OnWindowResize(width, height int) {
	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return
	}
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetAspect(float32(width) / float32(height))
	if r.Framebuffers != nil {
		r.Framebuffers.ResizeAll(width, height, func(name string) bool {
			return !strings.HasPrefix(name, "shadow/")
		})
	}
}

// Destroy releases every GPU resource owned by the managers.
func (r *Renderer) Destroy() {
	if !r.initialized {
		return
	}
	r.Framebuffers.Destroy()
	r.Shaders.Destroy()
	r.Textures.Destroy()
	r.Meshes.Destroy()
	r.initialized = false
	r.log.Infof("renderer destroyed")
}
