package raster

import (
	"image"

	"github.com/chewxy/math32"

	"slrm-camera/internal/tensor"
)

// Fragment is a point after the perspective divide, in pixel space.
type Fragment struct {
	X, Y float32
	Z    float32 // NDC depth in [-1, 1]
}

// Fragments perspective-divides batch entry b of clip-space points and
// maps the survivors to pixels of a size×size target. Points behind the
// camera (w <= 0) or outside the NDC cube are dropped. The projection
// matrices already flip y, so NDC y = -1 is the top row.
func Fragments(points *tensor.Points, b, size int) []Fragment {
	half := float32(size) / 2
	frags := make([]Fragment, 0, points.N)
	for i := 0; i < points.N; i++ {
		v := points.At(b, i)
		w := v[3]
		if !(w > 0) {
			continue
		}
		x, y, z := v[0]/w, v[1]/w, v[2]/w
		if math32.Abs(x) > 1 || math32.Abs(y) > 1 || math32.Abs(z) > 1 || math32.IsNaN(z) {
			continue
		}
		frags = append(frags, Fragment{
			X: (x + 1) * half,
			Y: (y + 1) * half,
			Z: z,
		})
	}
	return frags
}

// RenderClip splats batch entry b of clip-space points into a size×size
// NRGBA image. Each point covers a disc of the given radius and is
// coloured by its depth relative to the nearest and farthest visible point.
func RenderClip(points *tensor.Points, b, size, radius int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	frags := Fragments(points, b, size)
	if len(frags) == 0 {
		return img
	}

	zMin, zMax := math32.Inf(1), math32.Inf(-1)
	for _, f := range frags {
		zMin = math32.Min(zMin, f.Z)
		zMax = math32.Max(zMax, f.Z)
	}
	span := zMax - zMin
	if span < 1e-12 {
		span = 1
	}

	fb := NewFrameBuffer(size, size)
	r2 := radius * radius
	for _, f := range frags {
		c := DepthColor((f.Z - zMin) / span)
		cx, cy := int(f.X), int(f.Y)
		for dy := -radius + 1; dy < radius; dy++ {
			for dx := -radius + 1; dx < radius; dx++ {
				if dx*dx+dy*dy >= r2 {
					continue
				}
				fb.Plot(cx+dx, cy+dy, f.Z, c)
			}
		}
	}

	copy(img.Pix, fb.Color)
	return img
}

// DepthColor maps t in [0, 1] (0 = nearest) onto a warm-to-cool ramp.
func DepthColor(t float32) [4]uint8 {
	t = math32.Max(0, math32.Min(1, t))
	near := [3]float32{255, 200, 60}
	far := [3]float32{40, 70, 200}
	var c [4]uint8
	for k := 0; k < 3; k++ {
		c[k] = uint8(near[k] + (far[k]-near[k])*t + 0.5)
	}
	c[3] = 255
	return c
}
