package core

// Config holds engine-wide settings. It is built once at startup and passed
// explicitly into engine.New / Renderer.Initialize — there is no global
// configuration state.
type Config struct {
	// Window
	WindowWidth  int
	WindowHeight int
	Title        string
	VSync        bool
	Fullscreen   bool

	// Camera
	FOV       float32 // vertical field of view in degrees
	NearPlane float32
	FarPlane  float32

	// Effects
	OceanEnabled bool
	SkyEnabled   bool
	FogEnabled   bool

	// Shadow map resolution; 0 disables the shadow pass.
	ShadowMapSize int

	// Culling distance for submitted commands (world units, 0 = disabled)
	MaxRenderDistance float32

	// Debug logging
	Debug bool
}

// DefaultConfig returns the settings used when the caller does not override
// anything.
func DefaultConfig() Config {
	return Config{
		WindowWidth:       1280,
		WindowHeight:      720,
		Title:             "Odyssey",
		VSync:             true,
		FOV:               70,
		NearPlane:         0.1,
		FarPlane:          2000,
		OceanEnabled:      true,
		SkyEnabled:        true,
		FogEnabled:        true,
		ShadowMapSize:     2048,
		MaxRenderDistance: 1500,
	}
}
