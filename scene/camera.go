package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMode selects how the camera derives its position and orientation.
type CameraMode int

const (
	// ModeFreeLook flies freely; movement follows the full look direction.
	ModeFreeLook CameraMode = iota
	// ModeFirstPerson walks on a plane; vertical movement is suppressed.
	ModeFirstPerson
	// ModeThirdPerson trails a target at a fixed offset with smoothing.
	ModeThirdPerson
	// ModeOrbital circles a pivot at a zoomable distance.
	ModeOrbital
	// ModeCinematic follows a scripted waypoint path.
	ModeCinematic
)

func (m CameraMode) String() string {
	switch m {
	case ModeFreeLook:
		return "freelook"
	case ModeFirstPerson:
		return "firstperson"
	case ModeThirdPerson:
		return "thirdperson"
	case ModeOrbital:
		return "orbital"
	case ModeCinematic:
		return "cinematic"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const (
	pitchLimit  = 89.0
	minOrbitals = 1.0
	maxOrbitals = 200.0
)

// Waypoint is one stop on a cinematic path.
type Waypoint struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Duration float32 // seconds to travel from the previous waypoint
}

// Camera produces the view and projection matrices for a frame. Matrices are
// recomputed lazily: mutators only mark them dirty, the getters rebuild.
// Not safe for concurrent use; drive it from the render thread.
type Camera struct {
	mode CameraMode

	position mgl32.Vec3
	worldUp  mgl32.Vec3
	yaw      float32 // degrees, -90 looks down -Z
	pitch    float32 // degrees, clamped to (-pitchLimit, pitchLimit)

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3

	// Follow state for first-person, third-person, orbital, and cinematic
	// modes. following is set once a target is supplied; until then
	// first-person cameras move freely.
	target       mgl32.Vec3
	following    bool
	offset       mgl32.Vec3 // third-person shoulder offset, target space
	distance     float32    // orbital radius
	smoothFactor float32    // 0 disables smoothing

	path        []Waypoint
	pathElapsed float32
	pathIndex   int

	fov    float32 // vertical, degrees
	aspect float32
	near   float32
	far    float32

	view      mgl32.Mat4
	proj      mgl32.Mat4
	viewProj  mgl32.Mat4
	viewDirty bool
	projDirty bool
}

// NewCamera builds a free-look camera at the origin looking down -Z.
func NewCamera(fovDegrees, aspect, near, far float32) *Camera {
	c := &Camera{
		mode:         ModeFreeLook,
		position:     mgl32.Vec3{0, 5, 10},
		worldUp:      mgl32.Vec3{0, 1, 0},
		yaw:          -90,
		offset:       mgl32.Vec3{0, 2.5, 6},
		distance:     12,
		smoothFactor: 0.15,
		fov:          fovDegrees,
		aspect:       aspect,
		near:         near,
		far:          far,
		viewDirty:    true,
		projDirty:    true,
	}
	c.updateVectors()
	return c
}

// ── Mutators ──────────────────────────────────────────────────────────────────

// SetMode switches camera behavior. Orientation carries over so the switch
// does not snap the view.
func (c *Camera) SetMode(m CameraMode) {
	if m == c.mode {
		return
	}
	c.mode = m
	c.pathElapsed = 0
	c.pathIndex = 0
	c.viewDirty = true
}

// Mode returns the active camera mode.
func (c *Camera) Mode() CameraMode { return c.mode }

// SetPosition teleports the camera. Ignored in orbital mode where position
// is derived from the pivot.
func (c *Camera) SetPosition(p mgl32.Vec3) {
	if c.mode == ModeOrbital {
		return
	}
	c.position = p
	c.viewDirty = true
}

// Position returns the camera's world position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Front returns the normalized look direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// SetTarget sets the followed point. First-person cameras snap to it each
// update; third-person and orbital cameras position themselves around it.
func (c *Camera) SetTarget(t mgl32.Vec3) {
	c.target = t
	c.following = true
	c.viewDirty = true
}

// SetFollowOffset sets the third-person shoulder offset.
func (c *Camera) SetFollowOffset(o mgl32.Vec3) {
	c.offset = o
	c.viewDirty = true
}

// SetSmoothing sets the follow smoothing factor; 0 snaps instantly.
func (c *Camera) SetSmoothing(f float32) {
	if f < 0 {
		f = 0
	}
	c.smoothFactor = f
}

// Rotate applies yaw and pitch deltas in degrees. Pitch is clamped short of
// the poles to keep the view basis well defined.
func (c *Camera) Rotate(deltaYaw, deltaPitch float32) {
	if c.mode == ModeCinematic {
		return
	}
	c.yaw += deltaYaw
	c.pitch += deltaPitch
	if c.pitch > pitchLimit {
		c.pitch = pitchLimit
	}
	if c.pitch < -pitchLimit {
		c.pitch = -pitchLimit
	}
	c.updateVectors()
	c.viewDirty = true
}

// Yaw returns the yaw angle in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// Move translates the camera along its basis vectors. In first-person mode
// movement stays on the horizontal plane. No-op for follow modes.
func (c *Camera) Move(forward, strafe, vertical, dt float32) {
	if c.mode != ModeFreeLook && c.mode != ModeFirstPerson {
		return
	}
	dir := c.front
	if c.mode == ModeFirstPerson {
		dir = mgl32.Vec3{c.front.X(), 0, c.front.Z()}
		if dir.LenSqr() > 0 {
			dir = dir.Normalize()
		}
		vertical = 0
	}
	delta := dir.Mul(forward * dt).
		Add(c.right.Mul(strafe * dt)).
		Add(c.worldUp.Mul(vertical * dt))
	c.position = c.position.Add(delta)
	c.viewDirty = true
}

// Zoom adjusts the orbital radius. Other modes ignore scroll zoom.
func (c *Camera) Zoom(delta float32) {
	if c.mode != ModeOrbital {
		return
	}
	c.distance -= delta
	if c.distance < minOrbitals {
		c.distance = minOrbitals
	}
	if c.distance > maxOrbitals {
		c.distance = maxOrbitals
	}
	c.viewDirty = true
}

// Distance returns the orbital radius.
func (c *Camera) Distance() float32 { return c.distance }

// SetPath replaces the cinematic waypoint path and restarts it.
func (c *Camera) SetPath(path []Waypoint) {
	c.path = path
	c.pathElapsed = 0
	c.pathIndex = 0
	c.viewDirty = true
}

// SetAspect updates the projection aspect ratio.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 && aspect != c.aspect {
		c.aspect = aspect
		c.projDirty = true
	}
}

// SetFOV updates the vertical field of view in degrees.
func (c *Camera) SetFOV(fovDegrees float32) {
	if fovDegrees > 0 && fovDegrees != c.fov {
		c.fov = fovDegrees
		c.projDirty = true
	}
}

// SetPlanes updates the near and far clip distances.
func (c *Camera) SetPlanes(near, far float32) {
	c.near = near
	c.far = far
	c.projDirty = true
}

// ── Per-frame update ──────────────────────────────────────────────────────────

// Update advances follow and path behavior by dt seconds. FreeLook cameras
// have nothing to integrate.
func (c *Camera) Update(dt float32) {
	switch c.mode {
	case ModeFirstPerson:
		// Head-mounted: no smoothing, the eye rides the target exactly.
		if c.following {
			c.position = c.target
			c.viewDirty = true
		}
	case ModeThirdPerson:
		desired := c.target.
			Add(c.right.Mul(c.offset.X())).
			Add(c.worldUp.Mul(c.offset.Y())).
			Sub(c.front.Mul(c.offset.Z()))
		c.position = smoothTo(c.position, desired, c.smoothFactor, dt)
		c.viewDirty = true
	case ModeOrbital:
		yawR := float64(mgl32.DegToRad(c.yaw))
		pitchR := float64(mgl32.DegToRad(c.pitch))
		desired := c.target.Add(mgl32.Vec3{
			float32(math.Cos(yawR) * math.Cos(pitchR)),
			float32(math.Sin(pitchR)),
			float32(math.Sin(yawR) * math.Cos(pitchR)),
		}.Mul(c.distance))
		c.position = smoothTo(c.position, desired, c.smoothFactor, dt)
		c.viewDirty = true
	case ModeCinematic:
		c.advancePath(dt)
	}
}

func (c *Camera) advancePath(dt float32) {
	if len(c.path) == 0 {
		return
	}
	if c.pathIndex >= len(c.path) {
		last := c.path[len(c.path)-1]
		c.position = last.Position
		c.target = last.LookAt
		c.viewDirty = true
		return
	}
	wp := c.path[c.pathIndex]
	c.pathElapsed += dt
	t := float32(1)
	if wp.Duration > 0 {
		t = c.pathElapsed / wp.Duration
	}
	if t >= 1 {
		c.position = wp.Position
		c.target = wp.LookAt
		c.pathIndex++
		c.pathElapsed = 0
	} else {
		from := c.position
		lookFrom := c.target
		if c.pathIndex > 0 {
			prev := c.path[c.pathIndex-1]
			from = prev.Position
			lookFrom = prev.LookAt
		}
		c.position = from.Add(wp.Position.Sub(from).Mul(t))
		c.target = lookFrom.Add(wp.LookAt.Sub(lookFrom).Mul(t))
	}
	c.viewDirty = true
}

// smoothTo moves current toward desired by an exponential factor normalized
// to a 60 Hz reference frame, so follow lag is frame-rate independent.
func smoothTo(current, desired mgl32.Vec3, factor, dt float32) mgl32.Vec3 {
	if factor <= 0 {
		return desired
	}
	t := factor * dt * 60
	if t > 1 {
		t = 1
	}
	return current.Add(desired.Sub(current).Mul(t))
}

// ── Matrices ──────────────────────────────────────────────────────────────────

func (c *Camera) updateVectors() {
	yawR := float64(mgl32.DegToRad(c.yaw))
	pitchR := float64(mgl32.DegToRad(c.pitch))
	c.front = mgl32.Vec3{
		float32(math.Cos(yawR) * math.Cos(pitchR)),
		float32(math.Sin(pitchR)),
		float32(math.Sin(yawR) * math.Cos(pitchR)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ViewMatrix returns the view matrix, rebuilding it only when camera state
// changed since the last call.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	if c.viewDirty || c.projDirty {
		center := c.position.Add(c.front)
		if c.mode == ModeThirdPerson || c.mode == ModeOrbital || c.mode == ModeCinematic {
			center = c.target
		}
		c.view = mgl32.LookAtV(c.position, center, c.worldUp)
		c.viewProj = c.projection().Mul4(c.view)
		c.viewDirty = false
	}
	return c.view
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection()
}

func (c *Camera) projection() mgl32.Mat4 {
	if c.projDirty {
		c.proj = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
		c.viewDirty = true // force the cached viewProj to refresh
		c.projDirty = false
	}
	return c.proj
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	c.ViewMatrix()
	return c.viewProj
}
