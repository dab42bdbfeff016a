package tensor

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Device names where a tensor lives. It is chosen when the tensor is
// created and never changes.
type Device string

const (
	// Host runs every operation serially on the calling goroutine.
	Host Device = "cpu"
	// Accelerator spreads batch entries across all CPUs.
	Accelerator Device = "accelerator-default"

	DefaultDevice = Accelerator
)

// ParseDevice maps a device name to a Device. The empty string selects
// DefaultDevice.
func ParseDevice(s string) (Device, error) {
	switch Device(s) {
	case "":
		return DefaultDevice, nil
	case Host, Accelerator:
		return Device(s), nil
	case "cuda", "accelerator":
		return Accelerator, nil
	}
	return "", fmt.Errorf("tensor: unknown device %q: %w", s, ErrDevice)
}

// forEach calls fn for every batch index. On the accelerator the calls
// run concurrently; fn must only touch data owned by its index.
func (d Device) forEach(batch int, fn func(b int) error) error {
	if d != Accelerator || batch < 2 {
		for b := 0; b < batch; b++ {
			if err := fn(b); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for b := 0; b < batch; b++ {
		g.Go(func() error { return fn(b) })
	}
	return g.Wait()
}
