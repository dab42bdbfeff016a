package camera

import (
	"errors"
	"fmt"
	"strings"

	"slrm-camera/internal/tensor"
)

// Fixed frustum of the two cameras.
const (
	DefaultFovY = 49.0

	perspectiveFar       = 1000.0
	perspectiveNear      = 1.0
	perspectiveNearPlane = 0.1

	orthoFar  = 1000.0
	orthoNear = 0.1
)

// ErrUnknownKind is returned for a camera kind that is neither
// perspective nor orthogonal.
var ErrUnknownKind = errors.New("unknown camera kind")

// Kind selects a projection model.
type Kind int

const (
	KindPerspective Kind = iota
	KindOrthogonal
)

func (k Kind) String() string {
	switch k {
	case KindPerspective:
		return "perspective"
	case KindOrthogonal:
		return "orthogonal"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "perspective", "orthogonal" and "ortho".
// The empty string selects perspective.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "perspective", "persp":
		return KindPerspective, nil
	case "orthogonal", "ortho", "orthographic":
		return KindOrthogonal, nil
	}
	return 0, fmt.Errorf("camera: %q: %w", s, ErrUnknownKind)
}

// Config describes a camera.
type Config struct {
	Kind Kind
	// FovY is the vertical field of view in degrees. Perspective only.
	// Zero is a degenerate frustum; start from DefaultConfig.
	FovY float64
	// Device holds the projection matrix. Empty means tensor.DefaultDevice.
	Device tensor.Device
}

// DefaultConfig returns a perspective camera with a 49° field of view
// on the default device.
func DefaultConfig() Config {
	return Config{
		Kind:   KindPerspective,
		FovY:   DefaultFovY,
		Device: tensor.DefaultDevice,
	}
}

func (c Config) withDefaults() Config {
	if c.Device == "" {
		c.Device = tensor.DefaultDevice
	}
	return c
}
