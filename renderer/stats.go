package renderer

import "time"

// FrameStats accumulates per-frame counters. Reset at BeginFrame, finalized
// at DrawUI (the last stage of EndFrame).
type FrameStats struct {
	FrameCount uint64
	FrameTime  time.Duration

	Submitted int
	DrawCalls int
	Skipped   int // commands rejected by draw-time validation
	Culled    int // commands rejected by distance culling
	Vertices  int
	Triangles int
}

func (s *FrameStats) reset() {
	frame := s.FrameCount
	*s = FrameStats{FrameCount: frame}
}

func (s *FrameStats) recordDraw(vertices, indices int) {
	s.DrawCalls++
	s.Vertices += vertices
	if indices > 0 {
		s.Triangles += indices / 3
	} else {
		s.Triangles += vertices / 3
	}
}
