// Demo: a handful of crates bobbing on an open ocean under a moving sky.
// The same wave field that displaces the water in the vertex shader drives
// crate buoyancy on the CPU.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/engine"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/internal/profiling"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/renderer"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/scene"
)

const crateVertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;
layout (location = 3) in vec4 aColor;

uniform mat4 model;
uniform mat4 viewProj;

out vec3 vNormal;
out vec3 vWorldPos;
out vec4 vColor;

void main() {
	vec4 world = model * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(model) * aNormal;
	vColor = aColor;
	gl_Position = viewProj * world;
}
`

const crateFragmentSrc = `
#version 410 core
in vec3 vNormal;
in vec3 vWorldPos;
in vec4 vColor;
out vec4 fragColor;

uniform vec3 cameraPos;
uniform vec4 tintColor;
uniform vec3 sunDirection;
uniform vec3 sunColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 sun = normalize(sunDirection);
	float diffuse = max(dot(n, sun), 0.0) * 0.8 + 0.2;
	vec3 color = vColor.rgb * tintColor.rgb * sunColor * diffuse;
	fragColor = vec4(color, vColor.a * tintColor.a);
}
`

type crate struct {
	x, z float32
	size float32
	tint core.Color
}

func main() {
	cfg := core.DefaultConfig()
	flag.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width")
	flag.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height")
	flag.BoolVar(&cfg.FogEnabled, "fog", cfg.FogEnabled, "enable volumetric fog")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	timeOfDay := flag.Float64("hour", 10, "starting time of day")
	flag.Parse()
	cfg.Title = "Odyssey"

	if err := run(cfg, float32(*timeOfDay)); err != nil {
		fmt.Fprintln(os.Stderr, "odyssey:", err)
		os.Exit(1)
	}
}

func run(cfg core.Config, hour float32) error {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Destroy()

	// Ctrl-C from the terminal stops the loop like closing the window.
	closer.Bind(eng.Stop)

	if sky := eng.Sky(); sky != nil {
		sky.Model.SetTimeOfDay(hour)
	}

	r := eng.Renderer()
	shader, err := r.Shaders.Create("demo/crate", crateVertexSrc, crateFragmentSrc)
	if err != nil {
		return err
	}
	defer r.Shaders.Release("demo/crate")

	mesh := r.Meshes.Create(scene.CubeData("demo/crate", 1))
	defer r.Meshes.Release("demo/crate")

	crates := []crate{
		{x: 0, z: 0, size: 2, tint: core.Color{R: 0.72, G: 0.53, B: 0.3, A: 1}},
		{x: 9, z: -4, size: 1.4, tint: core.Color{R: 0.6, G: 0.44, B: 0.25, A: 1}},
		{x: -7, z: 6, size: 1, tint: core.Color{R: 0.55, G: 0.55, B: 0.58, A: 1}},
		{x: 4, z: 12, size: 1.8, tint: core.Color{R: 0.68, G: 0.5, B: 0.28, A: 1}},
	}

	cam := eng.Camera()
	cam.SetMode(scene.ModeOrbital)
	cam.SetTarget(mgl32.Vec3{0, 1, 0})
	cam.Rotate(35, -18)

	var elapsed float32
	eng.Run(func(dt float32) {
		defer profiling.Track("demo.frame")()
		elapsed += dt

		for _, c := range crates {
			y := float32(0)
			n := mgl32.Vec3{0, 1, 0}
			if oc := eng.Ocean(); oc != nil {
				y = oc.Waves.HeightAt(c.x, c.z, elapsed)
				n = oc.Waves.NormalAt(c.x, c.z, elapsed)
			}
			tilt := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, n)
			tr := core.Transform{
				Position: mgl32.Vec3{c.x, y + c.size*0.25, c.z},
				Rotation: tilt,
				Scale:    mgl32.Vec3{c.size, c.size, c.size},
			}
			cmd := renderer.CommandBuilder{
				Mesh:       mesh,
				Shader:     shader,
				Transform:  tr.Matrix(),
				Tint:       c.tint,
				CastShadow: true,
			}.Build()
			r.Submit(cmd)
		}

		// Slow orbit around the flotsam.
		cam.Rotate(dt*3, 0)

		// Light the crates to match the sky.
		rad := radianceOf(eng)
		shader.Bind()
		shader.SetVec3("sunDirection", rad.sunDir)
		shader.SetVec3("sunColor", rad.sunColor)

		// Keep the ocean grid centred under the camera.
		p := cam.Position()
		eng.SetOceanTransform(mgl32.Translate3D(snap(p.X(), 4), 0, snap(p.Z(), 4)))

		if stats := r.Stats(); stats.FrameCount%120 == 0 && stats.FrameCount > 0 {
			eng.Window().SetTitle(fmt.Sprintf("Odyssey | %d draws, %d verts, %.1fms | %s",
				stats.DrawCalls, stats.Vertices,
				float64(stats.FrameTime.Microseconds())/1000, profiling.TopN(3)))
		}
	})

	closer.Close()
	return nil
}

type demoRadiance struct {
	sunDir   mgl32.Vec3
	sunColor mgl32.Vec3
}

func radianceOf(eng *engine.Engine) demoRadiance {
	if sky := eng.Sky(); sky != nil {
		r := sky.Radiance()
		return demoRadiance{sunDir: r.SunDirection, sunColor: r.SunColor.Vec3()}
	}
	return demoRadiance{sunDir: mgl32.Vec3{0.3, 0.9, 0.2}.Normalize(), sunColor: mgl32.Vec3{1, 1, 1}}
}

// snap quantizes v to a grid so the ocean follows the camera without the
// waves visibly swimming.
func snap(v, grid float32) float32 {
	return float32(math.Floor(float64(v/grid))) * grid
}
