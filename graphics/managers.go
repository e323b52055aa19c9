package graphics

import (
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
)

// The managers are reference-counted caches over GPU resource handles,
// keyed by name. They are the sole owners of GPU objects: render commands
// and materials hold non-owning references acquired here, and every
// Create/Acquire must be paired with a Release.

// ── MeshManager ───────────────────────────────────────────────────────────────

// MeshManager caches uploaded meshes by name.
type MeshManager struct {
	cache *refCache[*Mesh]
	log   core.Logger

	fallback *Mesh // unit quad returned for unknown names
}

func NewMeshManager(log core.Logger) *MeshManager {
	return &MeshManager{
		cache: newRefCache[*Mesh](),
		log:   log,
	}
}

// Create uploads data and registers it under data.Name. If the name is
// already registered the existing mesh is returned with its refcount
// incremented and the data is not re-uploaded. An empty name is replaced by
// a generated one (readable via the returned mesh's Name).
func (m *MeshManager) Create(data *core.MeshData) *Mesh {
	if data.Name == "" {
		data.Name = uuid.NewString()
	}
	if mesh, ok := m.cache.acquire(data.Name); ok {
		return mesh
	}
	mesh := NewMesh(data)
	m.cache.insert(data.Name, mesh)
	return mesh
}

// Get returns the mesh registered under name, incrementing its refcount.
// Unknown names return a shared unit quad so a bad lookup renders as a
// visible placeholder instead of crashing.
func (m *MeshManager) Get(name string) *Mesh {
	if mesh, ok := m.cache.acquire(name); ok {
		return mesh
	}
	m.log.Warnf("mesh %q not found, using fallback quad", name)
	if m.fallback == nil {
		m.fallback = NewMesh(fallbackQuadData())
	}
	return m.fallback
}

// Release decrements the refcount for name, freeing GPU buffers at zero.
func (m *MeshManager) Release(name string) {
	m.cache.release(name)
}

// Destroy frees every cached mesh and the fallback. Shutdown only.
func (m *MeshManager) Destroy() {
	m.cache.destroyAll()
	if m.fallback != nil {
		m.fallback.Destroy()
		m.fallback = nil
	}
}

// fallbackQuadData is a unit XY quad at the origin.
func fallbackQuadData() *core.MeshData {
	white := core.ColorWhite
	return &core.MeshData{
		Name: "fallback-quad",
		Vertices: []core.Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: white},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: white},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: white},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: white},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// ── TextureManager ────────────────────────────────────────────────────────────

// TextureManager caches textures by name.
type TextureManager struct {
	cache   *refCache[*Texture]
	log     core.Logger
	maxSize int // CPU downscale limit for uploads, 0 = unlimited
}

func NewTextureManager(log core.Logger, maxSize int) *TextureManager {
	return &TextureManager{
		cache:   newRefCache[*Texture](),
		log:     log,
		maxSize: maxSize,
	}
}

// CreateFromImage uploads img under name, or returns the cached texture.
func (t *TextureManager) CreateFromImage(name string, img image.Image) (*Texture, error) {
	if name == "" {
		name = uuid.NewString()
	}
	if tex, ok := t.cache.acquire(name); ok {
		return tex, nil
	}
	tex, err := NewTexture2D(name, img, t.maxSize)
	if err != nil {
		return nil, err
	}
	t.cache.insert(name, tex)
	return tex, nil
}

// CreateSolid registers a 1×1 single-color texture.
func (t *TextureManager) CreateSolid(name string, r, g, b, a uint8) *Texture {
	if tex, ok := t.cache.acquire(name); ok {
		return tex
	}
	tex := NewSolidTexture(name, r, g, b, a)
	t.cache.insert(name, tex)
	return tex
}

// CreateVolume registers a 3D float volume texture (fog noise).
func (t *TextureManager) CreateVolume(name string, size int, voxels []float32) (*Texture, error) {
	if tex, ok := t.cache.acquire(name); ok {
		return tex, nil
	}
	tex, err := NewTexture3D(name, size, voxels)
	if err != nil {
		return nil, err
	}
	t.cache.insert(name, tex)
	return tex, nil
}

// Get returns the texture registered under name, or nil when unknown.
// Materials tolerate nil textures (the slot is simply not bound).
func (t *TextureManager) Get(name string) *Texture {
	if tex, ok := t.cache.acquire(name); ok {
		return tex
	}
	t.log.Warnf("texture %q not found", name)
	return nil
}

// Release decrements the refcount for name, deleting the texture at zero.
func (t *TextureManager) Release(name string) {
	t.cache.release(name)
}

// Destroy frees every cached texture. Shutdown only.
func (t *TextureManager) Destroy() {
	t.cache.destroyAll()
}

// ── ShaderManager ─────────────────────────────────────────────────────────────

// ShaderManager caches compiled programs by name.
type ShaderManager struct {
	cache *refCache[*Shader]
	log   core.Logger
}

func NewShaderManager(log core.Logger) *ShaderManager {
	return &ShaderManager{
		cache: newRefCache[*Shader](),
		log:   log,
	}
}

// Create compiles and registers a program, or returns the cached one.
// Compilation failure is a construction-time error: the sources are wrong
// and nothing that depends on the shader can run.
func (s *ShaderManager) Create(name, vertSrc, fragSrc string) (*Shader, error) {
	if shader, ok := s.cache.acquire(name); ok {
		return shader, nil
	}
	shader, err := NewShader(name, vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	s.cache.insert(name, shader)
	return shader, nil
}

// Get returns the shader registered under name, or nil when unknown.
// Commands referencing a nil shader are skipped at draw time.
func (s *ShaderManager) Get(name string) *Shader {
	if shader, ok := s.cache.acquire(name); ok {
		return shader
	}
	s.log.Warnf("shader %q not found", name)
	return nil
}

// Release decrements the refcount for name, deleting the program at zero.
func (s *ShaderManager) Release(name string) {
	s.cache.release(name)
}

// Destroy frees every cached program. Shutdown only.
func (s *ShaderManager) Destroy() {
	s.cache.destroyAll()
}

// ── FramebufferManager ────────────────────────────────────────────────────────

// FramebufferManager caches render targets by name so subsystems can share
// the same target (e.g. the scene HDR buffer read by the fog pass) without
// coordinating ownership.
type FramebufferManager struct {
	cache *refCache[*Framebuffer]
	log   core.Logger
}

func NewFramebufferManager(log core.Logger) *FramebufferManager {
	return &FramebufferManager{
		cache: newRefCache[*Framebuffer](),
		log:   log,
	}
}

// Create builds and allocates a framebuffer from the builder, or returns the
// cached instance registered under builder.Name with its refcount bumped.
func (f *FramebufferManager) Create(builder FramebufferBuilder) (*Framebuffer, error) {
	if fb, ok := f.cache.acquire(builder.Name); ok {
		return fb, nil
	}
	fb, err := builder.Build()
	if err != nil {
		return nil, err
	}
	if err := fb.Create(); err != nil {
		return nil, err
	}
	f.cache.insert(builder.Name, fb)
	return fb, nil
}

// CreateHDR builds a standard scene target: one RGBA16F color attachment
// plus a sampleable depth texture.
func (f *FramebufferManager) CreateHDR(name string, width, height int) (*Framebuffer, error) {
	return f.Create(FramebufferBuilder{
		Name:   name,
		Width:  width,
		Height: height,
		Colors: []ColorAttachment{HDRColorAttachment()},
		Depth:  &DepthAttachment{TextureBacked: true},
	})
}

// CreateShadowMap builds a depth-only square target for shadow rendering.
func (f *FramebufferManager) CreateShadowMap(name string, size int) (*Framebuffer, error) {
	return f.Create(FramebufferBuilder{
		Name:   name,
		Width:  size,
		Height: size,
		Depth:  &DepthAttachment{TextureBacked: true},
	})
}

// Get returns the framebuffer registered under name, or nil when unknown.
func (f *FramebufferManager) Get(name string) *Framebuffer {
	if fb, ok := f.cache.acquire(name); ok {
		return fb
	}
	f.log.Warnf("framebuffer %q not found", name)
	return nil
}

// Release decrements the refcount for name; at zero the framebuffer and all
// of its GPU attachments are destroyed. Unknown names are a no-op.
func (f *FramebufferManager) Release(name string) {
	f.cache.release(name)
}

// Count reports the number of live framebuffers (diagnostics and tests).
func (f *FramebufferManager) Count() int {
	return f.cache.len()
}

// ResizeAll resizes every cached screen-sized framebuffer. Shadow maps and
// other fixed-size targets are skipped by the predicate.
func (f *FramebufferManager) ResizeAll(width, height int, shouldResize func(name string) bool) {
	for name, e := range f.cache.entries {
		if shouldResize != nil && !shouldResize(name) {
			continue
		}
		if err := e.resource.Resize(width, height); err != nil {
			f.log.Errorf("resize framebuffer %q: %v", name, err)
		}
	}
}

// Destroy frees every cached framebuffer. Shutdown only.
func (f *FramebufferManager) Destroy() {
	f.cache.destroyAll()
}

// ── Capability check ──────────────────────────────────────────────────────────

// CheckCapabilities verifies the GL context meets the baseline feature level
// (GL 4.1 core: framebuffer objects, 3D textures, instanced draw). Returns
// the version string for logging, or an error when the context is unusable.
func CheckCapabilities() (string, error) {
	version := gl.GoStr(gl.GetString(gl.VERSION))
	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	if major < 4 || (major == 4 && minor < 1) {
		return version, &CapabilityError{Version: version, Major: major, Minor: minor}
	}
	return version, nil
}

// CapabilityError reports a GL context below the required feature level.
type CapabilityError struct {
	Version      string
	Major, Minor int32
}

func (e *CapabilityError) Error() string {
	return "OpenGL 4.1 required, context reports " + e.Version
}
