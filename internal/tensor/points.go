package tensor

import (
	"errors"
	"fmt"

	"slrm-camera/internal/mathutil"
)

var (
	// ErrShape is returned when tensor shapes do not line up.
	ErrShape = errors.New("shape mismatch")
	// ErrDevice is returned when operands live on different devices.
	ErrDevice = errors.New("device mismatch")
)

// Points is a batch of homogeneous points with shape (Batch, N, 4),
// stored flat in row-major order for cache locality.
type Points struct {
	Batch  int
	N      int
	Data   []float32 // len = Batch*N*4
	Device Device
}

// NewPoints allocates a zeroed (batch, n, 4) tensor.
func NewPoints(batch, n int, dev Device) *Points {
	return &Points{
		Batch:  batch,
		N:      n,
		Data:   make([]float32, batch*n*4),
		Device: dev,
	}
}

// FromSlices stacks per-entry point lists into one tensor. Every entry
// must hold the same number of points.
func FromSlices(dev Device, entries ...[][4]float32) (*Points, error) {
	if len(entries) == 0 {
		return NewPoints(0, 0, dev), nil
	}
	n := len(entries[0])
	p := NewPoints(len(entries), n, dev)
	for b, e := range entries {
		if len(e) != n {
			return nil, fmt.Errorf("tensor: entry %d has %d points, want %d: %w", b, len(e), n, ErrShape)
		}
		for i, v := range e {
			p.Set(b, i, v)
		}
	}
	return p, nil
}

// Shape returns (batch, n, 4).
func (p *Points) Shape() [3]int {
	return [3]int{p.Batch, p.N, 4}
}

func (p *Points) offset(b, i int) int {
	return (b*p.N + i) * 4
}

// At returns point i of batch entry b.
func (p *Points) At(b, i int) mathutil.Vec4 {
	o := p.offset(b, i)
	return mathutil.Vec4{p.Data[o], p.Data[o+1], p.Data[o+2], p.Data[o+3]}
}

// Set overwrites point i of batch entry b.
func (p *Points) Set(b, i int, v [4]float32) {
	o := p.offset(b, i)
	copy(p.Data[o:o+4], v[:])
}

// Entry returns a copy of batch entry b as a batch-of-one tensor.
func (p *Points) Entry(b int) *Points {
	out := NewPoints(1, p.N, p.Device)
	copy(out.Data, p.Data[p.offset(b, 0):p.offset(b+1, 0)])
	return out
}

func (p *Points) Clone() *Points {
	out := NewPoints(p.Batch, p.N, p.Device)
	copy(out.Data, p.Data)
	return out
}

// Concat joins tensors along the batch dimension.
func Concat(ps ...*Points) (*Points, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("tensor: concat of nothing: %w", ErrShape)
	}
	n, dev := ps[0].N, ps[0].Device
	batch := 0
	for _, p := range ps {
		if p.N != n {
			return nil, fmt.Errorf("tensor: concat N %d with %d: %w", n, p.N, ErrShape)
		}
		if p.Device != dev {
			return nil, fmt.Errorf("tensor: concat %s with %s: %w", dev, p.Device, ErrDevice)
		}
		batch += p.Batch
	}
	out := &Points{Batch: batch, N: n, Device: dev, Data: make([]float32, 0, batch*n*4)}
	for _, p := range ps {
		out.Data = append(out.Data, p.Data...)
	}
	return out, nil
}

// Scales holds one float per batch entry, shape (Batch,).
type Scales struct {
	Data   []float32
	Device Device
}

func NewScales(dev Device, v ...float32) *Scales {
	return &Scales{Data: append([]float32(nil), v...), Device: dev}
}

func (s *Scales) Len() int {
	return len(s.Data)
}

// Matrices is a batch of 4×4 matrices. A batch of one broadcasts
// across any points batch.
type Matrices struct {
	Data   []mathutil.Mat4
	Device Device
}

func NewMatrices(dev Device, m ...mathutil.Mat4) *Matrices {
	return &Matrices{Data: append([]mathutil.Mat4(nil), m...), Device: dev}
}

func (m *Matrices) Len() int {
	return len(m.Data)
}
