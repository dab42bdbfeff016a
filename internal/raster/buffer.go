package raster

import "github.com/chewxy/math32"

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float32 // NDC depth per pixel, len = W*H, initialized to +inf
}

// NewFrameBuffer allocates a transparent color buffer and +inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float32, n)
	for i := range zbuf {
		zbuf[i] = math32.Inf(1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Plot writes c at (x, y) when z is nearer than what the pixel holds.
// Smaller NDC depth is nearer.
func (fb *FrameBuffer) Plot(x, y int, z float32, c [4]uint8) bool {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return false
	}
	i := y*fb.Width + x
	if z >= fb.ZBuf[i] {
		return false
	}
	fb.ZBuf[i] = z
	copy(fb.Color[i*4:i*4+4], c[:])
	return true
}
