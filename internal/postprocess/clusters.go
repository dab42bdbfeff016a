package postprocess

import "image"

// RemoveSmallClusters clears isolated groups of opaque pixels whose size
// is below minRatio of all opaque pixels. Groups are 8-connected.
// The input is not modified.
func RemoveSmallClusters(img *image.NRGBA, minRatio float64) *image.NRGBA {
	if minRatio <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	sets := newDisjointSet(w * h)
	opaque := func(x, y int) bool {
		return img.Pix[y*img.Stride+x*4+3] > 0
	}

	total := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !opaque(x, y) {
				continue
			}
			total++
			// Neighbours already visited in scan order.
			for _, d := range [4][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx >= 0 && nx < w && ny >= 0 && opaque(nx, ny) {
					sets.union(y*w+x, ny*w+nx)
				}
			}
		}
	}
	if total == 0 {
		return img
	}

	sizes := make(map[int]int)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if opaque(x, y) {
				sizes[sets.find(y*w+x)]++
			}
		}
	}
	if len(sizes) <= 1 {
		return img
	}

	minSize := int(float64(total) * minRatio)
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if opaque(x, y) && sizes[sets.find(y*w+x)] < minSize {
				i := y*out.Stride + x*4
				copy(out.Pix[i:i+4], []uint8{0, 0, 0, 0})
			}
		}
	}
	return out
}

type disjointSet []int

func newDisjointSet(n int) disjointSet {
	s := make(disjointSet, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func (s disjointSet) find(i int) int {
	for s[i] != i {
		s[i] = s[s[i]]
		i = s[i]
	}
	return i
}

func (s disjointSet) union(a, b int) {
	ra, rb := s.find(a), s.find(b)
	if ra != rb {
		s[ra] = rb
	}
}
