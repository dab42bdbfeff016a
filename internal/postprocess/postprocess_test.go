package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestRemoveSmallClusters(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	white := color.NRGBA{255, 255, 255, 255}
	fill(img, image.Rect(2, 2, 12, 12), white) // 100 px
	img.SetNRGBA(18, 18, white)                // speckle
	// diagonal neighbour joins the big block
	img.SetNRGBA(12, 12, white)

	out := RemoveSmallClusters(img, 0.05)
	assert.Equal(t, uint8(0), out.NRGBAAt(18, 18).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(12, 12).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(5, 5).A)
	// input untouched
	assert.Equal(t, uint8(255), img.NRGBAAt(18, 18).A)
}

func TestRemoveSmallClustersNoop(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, img, RemoveSmallClusters(img, 0.1))

	img.SetNRGBA(1, 1, color.NRGBA{A: 255})
	assert.Same(t, img, RemoveSmallClusters(img, 0.1))
	assert.Same(t, img, RemoveSmallClusters(img, 0))
}

func TestDownsample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fill(img, img.Bounds(), color.NRGBA{200, 100, 50, 255})

	out := Downsample(img, 32)
	assert.Equal(t, image.Rect(0, 0, 32, 32), out.Bounds())
	c := out.NRGBAAt(16, 16)
	assert.InDelta(t, 200, int(c.R), 2)
	assert.InDelta(t, 100, int(c.G), 2)
	assert.Equal(t, uint8(255), c.A)

	assert.Same(t, out, Downsample(out, 32))
}
