package camera

import (
	"fmt"

	"slrm-camera/internal/mathutil"
)

// Reference arguments of the standalone builders.
const (
	DefaultFrustumX = 0.1
	DefaultNear     = 1.0
	DefaultFar      = 50.0
)

// Perspective builds an OpenGL-style perspective matrix for a frustum
// with horizontal half-extent x at the near plane n and far plane f.
func Perspective(x, n, f float64) (mathutil.Mat4, error) {
	return PerspectiveNearPlane(x, n, f, n)
}

// PerspectiveNearPlane is Perspective with a separate near plane for the
// depth row. The x/y scale uses n, the depth terms use nearPlane.
// Entries are computed in float64 and rounded to float32 once.
func PerspectiveNearPlane(x, n, f, nearPlane float64) (mathutil.Mat4, error) {
	sx, err := mathutil.Div(n, x)
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: perspective x scale: %w", err)
	}
	sy, err := mathutil.Div(n, -x)
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: perspective y scale: %w", err)
	}
	a, err := mathutil.Div(-(f + nearPlane), f-nearPlane)
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: perspective depth scale: %w", err)
	}
	b, err := mathutil.Div(-(2 * f * nearPlane), f-nearPlane)
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: perspective depth offset: %w", err)
	}

	return mathutil.Mat4{
		float32(sx), 0, 0, 0,
		0, float32(sy), 0, 0,
		0, 0, float32(a), float32(b),
		0, 0, -1, 0,
	}, nil
}

// Orthographic builds an axis-aligned orthographic matrix between the
// near plane n and far plane f. The y axis is flipped.
func Orthographic(n, f float64) (mathutil.Mat4, error) {
	a, err := mathutil.Div(-2, f-n)
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: orthographic depth scale: %w", err)
	}
	b, err := mathutil.Div(-(f + n), f-n)
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: orthographic depth offset: %w", err)
	}

	return mathutil.Mat4{
		1, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, float32(a), float32(b),
		0, 0, 0, 1,
	}, nil
}
