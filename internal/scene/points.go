package scene

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/seqsense/pcgol/pc"

	"slrm-camera/internal/tensor"
)

// LoadCloud reads the x/y/z fields of a PCD file as homogeneous points.
func LoadCloud(path string) ([][4]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	pp, err := pc.Unmarshal(f)
	if err != nil {
		return nil, fmt.Errorf("scene: decode %s: %w", path, err)
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}

	pts := make([][4]float32, 0, it.Len())
	for ; it.IsValid(); it.Incr() {
		v := it.Vec3()
		pts = append(pts, [4]float32{v[0], v[1], v[2], 1})
	}
	return pts, nil
}

// LoadPoints stacks the scene's clouds into a (batch, N, 4) tensor and
// returns the matching ortho scales. All clouds must have the same size.
func LoadPoints(s Scene, dev tensor.Device) (*tensor.Points, *tensor.Scales, error) {
	entries := make([][][4]float32, len(s.Clouds))
	for i, path := range s.Clouds {
		pts, err := LoadCloud(path)
		if err != nil {
			return nil, nil, err
		}
		entries[i] = pts
	}

	points, err := tensor.FromSlices(dev, entries...)
	if err != nil {
		return nil, nil, fmt.Errorf("scene: %s: %w", s.Name, err)
	}

	scales := s.OrthoScales
	if len(scales) == 0 {
		scales = make([]float32, len(s.Clouds))
		for i := range scales {
			scales[i] = 1
		}
	}
	return points, tensor.NewScales(dev, scales...), nil
}

// WriteClip writes batch entry b of a clip-space tensor as a binary PCD
// with float fields x, y, z and w.
func WriteClip(w io.Writer, points *tensor.Points, b int) error {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z", "w"},
			Size:      []int{4, 4, 4, 4},
			Type:      []string{"F", "F", "F", "F"},
			Count:     []int{1, 1, 1, 1},
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
			Width:     points.N,
			Height:    1,
		},
		Points: points.N,
	}
	pp.Data = make([]byte, points.N*pp.Stride())

	for i := 0; i < points.N; i++ {
		v := points.At(b, i)
		off := i * 16
		for k := 0; k < 4; k++ {
			binary.LittleEndian.PutUint32(pp.Data[off+k*4:], math.Float32bits(v[k]))
		}
	}

	if err := pc.Marshal(pp, w); err != nil {
		return fmt.Errorf("scene: encode clip points: %w", err)
	}
	return nil
}
