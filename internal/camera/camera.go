package camera

import (
	"errors"
	"fmt"

	"slrm-camera/internal/mathutil"
	"slrm-camera/internal/tensor"
)

// ErrMissingScales is returned when an orthogonal projection is asked
// for without per-entry scales.
var ErrMissingScales = errors.New("orthogonal projection needs scales")

// Camera projects batches of homogeneous points into clip space.
// Implementations are immutable and safe for concurrent use.
type Camera interface {
	Kind() Kind
	// Matrix returns a copy of the projection matrix.
	Matrix() mathutil.Mat4
	// Device returns where the projection matrix lives.
	Device() tensor.Device
	// Project maps points of shape (batch, N, 4) to clip space without
	// the perspective divide. scales is ignored by perspective cameras
	// and required by orthogonal ones.
	Project(points *tensor.Points, scales *tensor.Scales) (*tensor.Points, error)
}

// New builds the camera selected by cfg.Kind.
func New(cfg Config) (Camera, error) {
	var (
		c   Camera
		err error
	)
	switch cfg.Kind {
	case KindPerspective:
		c, err = NewPerspective(cfg)
	case KindOrthogonal:
		c, err = NewOrthogonal(cfg)
	default:
		return nil, fmt.Errorf("camera: %v: %w", cfg.Kind, ErrUnknownKind)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PerspectiveCamera applies a fixed perspective matrix derived from a
// vertical field of view.
type PerspectiveCamera struct {
	fovY float64
	proj *tensor.Matrices
}

// NewPerspective builds a perspective camera. Only cfg.FovY and
// cfg.Device are used.
func NewPerspective(cfg Config) (*PerspectiveCamera, error) {
	cfg = cfg.withDefaults()
	focal := mathutil.HalfAngleTan(cfg.FovY)
	m, err := PerspectiveNearPlane(focal, perspectiveNear, perspectiveFar, perspectiveNearPlane)
	if err != nil {
		return nil, err
	}
	return &PerspectiveCamera{
		fovY: cfg.FovY,
		proj: tensor.NewMatrices(cfg.Device, m),
	}, nil
}

func (c *PerspectiveCamera) Kind() Kind { return KindPerspective }
func (c *PerspectiveCamera) Matrix() mathutil.Mat4 { return c.proj.Data[0] }
func (c *PerspectiveCamera) Device() tensor.Device { return c.proj.Device }
func (c *PerspectiveCamera) FovY() float64 { return c.fovY }

func (c *PerspectiveCamera) Project(points *tensor.Points, _ *tensor.Scales) (*tensor.Points, error) {
	out, err := tensor.MatMulT(points, c.proj)
	if err != nil {
		return nil, fmt.Errorf("camera: perspective project: %w", err)
	}
	return out, nil
}

// OrthogonalCamera applies a fixed orthographic matrix and then maps
// each entry's extent onto clip space using its scale.
type OrthogonalCamera struct {
	proj *tensor.Matrices
}

// NewOrthogonal builds an orthogonal camera. Only cfg.Device is used.
func NewOrthogonal(cfg Config) (*OrthogonalCamera, error) {
	cfg = cfg.withDefaults()
	m, err := Orthographic(orthoNear, orthoFar)
	if err != nil {
		return nil, err
	}
	return &OrthogonalCamera{proj: tensor.NewMatrices(cfg.Device, m)}, nil
}

func (c *OrthogonalCamera) Kind() Kind { return KindOrthogonal }
func (c *OrthogonalCamera) Matrix() mathutil.Mat4 { return c.proj.Data[0] }
func (c *OrthogonalCamera) Device() tensor.Device { return c.proj.Device }

// Project returns a new tensor whose x and y are divided by the entry's
// scale and doubled after the matrix is applied.
func (c *OrthogonalCamera) Project(points *tensor.Points, scales *tensor.Scales) (*tensor.Points, error) {
	if scales == nil {
		return nil, fmt.Errorf("camera: orthogonal project: %w", ErrMissingScales)
	}
	out, err := tensor.MatMulT(points, c.proj)
	if err != nil {
		return nil, fmt.Errorf("camera: orthogonal project: %w", err)
	}
	out, err = tensor.ScaleXY(out, scales, 2)
	if err != nil {
		return nil, fmt.Errorf("camera: orthogonal scale: %w", err)
	}
	return out, nil
}
