package renderer

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/core"
	"github.com/Whoisraeen/Odyssey-Pirate-Adventure-sub001/scene"
)

// Submission and sorting never touch GL, so they are tested against a bare
// (uninitialized) renderer.

func newTestRenderer() *Renderer {
	return New(core.DefaultConfig(), core.NewLogger("test", false))
}

func transparentAt(x float32) *Command {
	cmd := NewCommand()
	cmd.Queue = QueueTransparent
	cmd.SetTransform(mgl32.Translate3D(x, 0, 0))
	return cmd
}

func TestSubmitRoutesByQueue(t *testing.T) {
	r := newTestRenderer()

	opaque := NewCommand()
	transparent := NewCommand()
	transparent.Queue = QueueTransparent
	ui := NewCommand()
	ui.Queue = QueueUI

	r.Submit(opaque)
	r.Submit(transparent)
	r.Submit(ui)
	r.Submit(nil) // ignored

	assert.Len(t, r.Queued(QueueOpaque), 1)
	assert.Len(t, r.Queued(QueueTransparent), 1)
	assert.Len(t, r.Queued(QueueUI), 1)
	assert.Equal(t, 3, r.stats.Submitted)
}

func TestSubmitAlphaCommandLandsTransparent(t *testing.T) {
	r := newTestRenderer()
	cmd := NewCommand()
	cmd.SetAlpha(0.5)
	r.Submit(cmd)

	assert.Empty(t, r.Queued(QueueOpaque))
	require.Len(t, r.Queued(QueueTransparent), 1)
}

func TestSortTransparentBackToFront(t *testing.T) {
	cmds := []*Command{
		transparentAt(5),
		transparentAt(1),
		transparentAt(9),
	}
	sortTransparent(cmds, mgl32.Vec3{})

	assert.Equal(t, float32(9), cmds[0].Position.X())
	assert.Equal(t, float32(5), cmds[1].Position.X())
	assert.Equal(t, float32(1), cmds[2].Position.X())
}

func TestSortTransparentStableOnTies(t *testing.T) {
	first := transparentAt(1)
	second := transparentAt(1)
	far := transparentAt(9)
	cmds := []*Command{first, second, far}

	sortTransparent(cmds, mgl32.Vec3{})

	assert.Same(t, far, cmds[0])
	assert.Same(t, first, cmds[1], "equal distances keep submission order")
	assert.Same(t, second, cmds[2])
}

func TestSortTransparentDistanceBeatsSortOrder(t *testing.T) {
	near := transparentAt(1)
	near.SortOrder = 0
	far := transparentAt(9)
	far.SortOrder = 1

	cmds := []*Command{near, far}
	sortTransparent(cmds, mgl32.Vec3{})

	assert.Same(t, far, cmds[0], "farther commands draw first regardless of sort order")
}

func TestSortTransparentSortOrderBreaksTies(t *testing.T) {
	second := transparentAt(5)
	second.SortOrder = 2
	first := transparentAt(5)
	first.SortOrder = 1

	cmds := []*Command{second, first}
	sortTransparent(cmds, mgl32.Vec3{})

	assert.Same(t, first, cmds[0], "equal distances fall back to sort order")
	assert.Same(t, second, cmds[1])
}

func TestEndSceneLeavesUIForLateDraw(t *testing.T) {
	r := newTestRenderer()
	r.SetCamera(scene.NewCamera(70, 16.0/9.0, 0.1, 1000))

	ui := NewCommand()
	ui.Queue = QueueUI
	r.Submit(ui)
	r.Submit(NewCommand()) // no mesh or shader: skipped without GPU work

	r.EndScene()
	assert.Len(t, r.Queued(QueueUI), 1, "UI queue survives EndScene so effect passes can draw first")
	assert.Equal(t, 1, r.Stats().Skipped)
	assert.Equal(t, uint64(0), r.Stats().FrameCount, "frame finalizes in DrawUI")

	r.ui = r.ui[:0]
	r.DrawUI()
	assert.Equal(t, uint64(1), r.Stats().FrameCount)
}

func TestFrameStatsReset(t *testing.T) {
	var s FrameStats
	s.FrameCount = 41
	s.recordDraw(300, 450)
	s.FrameTime = time.Millisecond

	assert.Equal(t, 1, s.DrawCalls)
	assert.Equal(t, 300, s.Vertices)
	assert.Equal(t, 150, s.Triangles)

	s.reset()
	assert.Equal(t, uint64(41), s.FrameCount, "frame counter survives the reset")
	assert.Zero(t, s.DrawCalls)
	assert.Zero(t, s.FrameTime)
}

func TestFrameStatsUnindexedDraw(t *testing.T) {
	var s FrameStats
	s.recordDraw(9, 0)
	assert.Equal(t, 3, s.Triangles)
}
