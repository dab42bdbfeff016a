package tensor

import "fmt"

// MatMulT returns points · transpose(mats) for every batch entry, i.e.
// each row vector p becomes M·p. A single matrix broadcasts across the
// batch; otherwise the matrix count must equal the points batch.
func MatMulT(points *Points, mats *Matrices) (*Points, error) {
	if points.Device != mats.Device {
		return nil, fmt.Errorf("tensor: matmul points on %s, matrices on %s: %w", points.Device, mats.Device, ErrDevice)
	}
	if mats.Len() != 1 && mats.Len() != points.Batch {
		return nil, fmt.Errorf("tensor: matmul batch %d with %d matrices: %w", points.Batch, mats.Len(), ErrShape)
	}

	out := NewPoints(points.Batch, points.N, points.Device)
	err := points.Device.forEach(points.Batch, func(b int) error {
		m := mats.Data[0]
		if mats.Len() > 1 {
			m = mats.Data[b]
		}
		for i := 0; i < points.N; i++ {
			out.Set(b, i, m.MulVec4(points.At(b, i)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScaleXY returns a new tensor whose x and y channels are divided by the
// entry's scale and multiplied by factor. z and w are copied unchanged.
func ScaleXY(points *Points, scales *Scales, factor float32) (*Points, error) {
	if points.Device != scales.Device {
		return nil, fmt.Errorf("tensor: scale points on %s, scales on %s: %w", points.Device, scales.Device, ErrDevice)
	}
	if scales.Len() != points.Batch {
		return nil, fmt.Errorf("tensor: scale batch %d with %d scales: %w", points.Batch, scales.Len(), ErrShape)
	}

	out := points.Clone()
	err := points.Device.forEach(points.Batch, func(b int) error {
		s := scales.Data[b]
		for i := 0; i < points.N; i++ {
			o := out.offset(b, i)
			out.Data[o] = out.Data[o] / s * factor
			out.Data[o+1] = out.Data[o+1] / s * factor
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PerspectiveDivide returns (x/w, y/w, z/w, w) for every point.
// A zero w yields Inf or NaN; callers drop such points.
func PerspectiveDivide(points *Points) *Points {
	out := points.Clone()
	for o := 0; o < len(out.Data); o += 4 {
		w := out.Data[o+3]
		out.Data[o] /= w
		out.Data[o+1] /= w
		out.Data[o+2] /= w
	}
	return out
}

