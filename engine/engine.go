// Package engine assembles the window, renderer, and effect passes into one
// run loop. Applications submit render commands from the frame callback and
// the engine handles pass ordering, resizing, and shutdown.
package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/effects"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/graphics"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/internal/profiling"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/renderer"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/scene"
)

const sceneTargetName = "engine/scene-hdr"

// Engine owns the full frame pipeline:
//
//	shadow pass → scene queues → ocean → sky dome → fog composite → UI
//
// Every method must be called from the main thread; NewEngine locks it via
// the window package.
type Engine struct {
	cfg core.Config
	log core.Logger

	window   *core.Window
	renderer *renderer.Renderer

	sky    *effects.DynamicSky
	ocean  *effects.Ocean
	fog    *effects.VolumetricFog
	shadow *renderer.ShadowPass

	// sceneTarget is the HDR intermediate the fog pass reads from; nil when
	// fog is disabled and the scene renders straight to the backbuffer.
	sceneTarget *graphics.Framebuffer

	oceanTransform mgl32.Mat4
	lastFrame      time.Time
	running        bool
}

// NewEngine opens the window, initializes the renderer, and builds the
// effect passes the config enables.
func NewEngine(cfg core.Config) (*Engine, error) {
	log := core.NewLogger("engine", cfg.Debug)

	window, err := core.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	r := renderer.New(cfg, log)
	if err := r.Initialize(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}

	e := &Engine{
		cfg:            cfg,
		log:            log,
		window:         window,
		renderer:       r,
		oceanTransform: mgl32.Ident4(),
	}
	window.OnResize(e.onResize)

	if err := e.buildEffects(); err != nil {
		e.Destroy()
		return nil, err
	}
	return e, nil
}

func (e *Engine) buildEffects() error {
	cfg := e.cfg
	r := e.renderer
	var err error

	if cfg.SkyEnabled {
		e.sky, err = effects.NewDynamicSky(r.Meshes, r.Shaders, scene.SkyboxData("sky/cube"))
		if err != nil {
			return fmt.Errorf("building sky: %w", err)
		}
	}
	if cfg.OceanEnabled {
		grid := scene.GridData("ocean/grid", 1024, 1024, 256, 256)
		e.ocean, err = effects.NewOcean(r.Meshes, r.Shaders, grid, effects.DefaultOcean())
		if err != nil {
			return fmt.Errorf("building ocean: %w", err)
		}
	}
	if cfg.FogEnabled {
		e.fog, err = effects.NewVolumetricFog(r.Shaders, r.Textures, effects.DefaultFogSettings())
		if err != nil {
			return fmt.Errorf("building fog: %w", err)
		}
		e.sceneTarget, err = r.Framebuffers.CreateHDR(sceneTargetName, cfg.WindowWidth, cfg.WindowHeight)
		if err != nil {
			return fmt.Errorf("building scene target: %w", err)
		}
	}
	if cfg.ShadowMapSize > 0 {
		e.shadow, err = renderer.NewShadowPass(r, cfg.ShadowMapSize)
		if err != nil {
			return fmt.Errorf("building shadow pass: %w", err)
		}
	}
	return nil
}

// Renderer exposes the renderer for submissions and resource management.
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }

// Window exposes the window for input polling.
func (e *Engine) Window() *core.Window { return e.window }

// Camera returns the active camera.
func (e *Engine) Camera() *scene.Camera { return e.renderer.Camera() }

// Sky returns the sky pass, or nil when disabled.
func (e *Engine) Sky() *effects.DynamicSky { return e.sky }

// Ocean returns the ocean pass, or nil when disabled.
func (e *Engine) Ocean() *effects.Ocean { return e.ocean }

// Fog returns the fog pass, or nil when disabled.
func (e *Engine) Fog() *effects.VolumetricFog { return e.fog }

// Shadow returns the shadow pass, or nil when disabled.
func (e *Engine) Shadow() *renderer.ShadowPass { return e.shadow }

// Stop makes Run return after the current frame.
func (e *Engine) Stop() { e.running = false }

// Run drives the frame loop until the window closes or Stop is called.
// frame is invoked once per frame, after BeginFrame, so submissions land in
// the current frame's queues.
func (e *Engine) Run(frame func(dt float32)) {
	e.running = true
	e.lastFrame = time.Now()

	for e.running && !e.window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(e.lastFrame).Seconds())
		e.lastFrame = now

		profiling.ResetFrame()
		e.window.PollEvents()
		e.update(dt)
		e.renderFrame(dt, frame)
		e.window.SwapBuffers()
	}
}

func (e *Engine) update(dt float32) {
	defer profiling.Track("engine.update")()
	if e.sky != nil {
		e.sky.Update(dt)
	}
	if e.ocean != nil {
		e.ocean.Update(dt)
	}
	if e.fog != nil {
		e.fog.Update(dt)
	}
	e.renderer.Camera().Update(dt)
}

func (e *Engine) renderFrame(dt float32, frame func(dt float32)) {
	defer profiling.Track("engine.render")()
	r := e.renderer
	cam := r.Camera()

	if e.sceneTarget != nil {
		e.sceneTarget.Bind()
	}
	r.BeginFrame()
	if frame != nil {
		frame(dt)
	}

	radiance := e.radiance()

	if e.shadow != nil {
		light := renderer.SunViewProjection(radiance.SunDirection, cam.Position(), 200)
		e.shadow.Render(r.Queued(renderer.QueueOpaque), light)
		// The shadow pass rebinds its own target; restore the scene's.
		if e.sceneTarget != nil {
			e.sceneTarget.Bind()
		} else {
			gl.Viewport(0, 0, int32(e.window.Width), int32(e.window.Height))
		}
	}

	r.EndScene()

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	if e.ocean != nil {
		e.ocean.Draw(e.oceanTransform, cam.ViewProjection(), cam.Position(), radiance)
	}
	if e.sky != nil {
		e.sky.Draw(view, proj)
	}

	if e.fog != nil && e.sceneTarget != nil {
		e.sceneTarget.Unbind()
		gl.Viewport(0, 0, int32(e.window.Width), int32(e.window.Height))
		e.fog.Draw(effects.FogCamera{
			Position:      cam.Position(),
			InvProjection: proj.Inv(),
			InvView:       view.Inv(),
		}, radiance, e.sceneTarget.ColorTextures[0], e.sceneTarget.DepthTexture)
	}

	// UI goes on last so the sky dome cannot overdraw it and fog does not
	// tint it.
	r.DrawUI()
}

// radiance returns the current sky lighting, or a fixed noon-ish fallback
// when the sky pass is disabled.
func (e *Engine) radiance() effects.Radiance {
	if e.sky != nil {
		return e.sky.Radiance()
	}
	return effects.Radiance{
		SunDirection: mgl32.Vec3{0.3, 0.9, 0.2}.Normalize(),
		SunColor:     core.ColorWhite,
		ZenithColor:  core.Color{R: 0.05, G: 0.18, B: 0.42, A: 1},
		HorizonColor: core.Color{R: 0.45, G: 0.55, B: 0.68, A: 1},
		Intensity:    1,
	}
}

// SetOceanTransform positions the ocean grid (e.g. to follow the camera so
// the horizon never shows the grid edge).
func (e *Engine) SetOceanTransform(m mgl32.Mat4) { e.oceanTransform = m }

func (e *Engine) onResize(width, height int) {
	e.renderer.OnWindowResize(width, height)
}

// Destroy tears the engine down in reverse construction order.
func (e *Engine) Destroy() {
	if e.shadow != nil {
		e.shadow.Destroy()
		e.shadow = nil
	}
	if e.fog != nil {
		e.fog.Destroy()
		e.fog = nil
	}
	if e.sceneTarget != nil {
		e.renderer.Framebuffers.Release(sceneTargetName)
		e.sceneTarget = nil
	}
	if e.ocean != nil {
		e.ocean.Destroy()
		e.ocean = nil
	}
	if e.sky != nil {
		e.sky.Destroy()
		e.sky = nil
	}
	if e.renderer != nil {
		e.renderer.Destroy()
	}
	if e.window != nil {
		e.window.Destroy()
	}
}
