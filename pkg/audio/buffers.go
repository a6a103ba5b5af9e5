// Package audio owns the per-port, per-channel sample storage handed to a
// plugin's process() call, and the parallel pointer tables the ABI needs.
// Nothing here touches cgo: the C-side channel-pointer arrays are built by
// the caller (pkg/plugin) for the duration of a single process() call, from
// the Go slices this package allocates and owns.
package audio

import (
	"errors"
	"fmt"

	"github.com/clapval/clapval/pkg/prng"
)

// ErrInconsistentSampleCount is returned when a caller attempts to build
// Buffers from per-channel slices whose lengths disagree.
var ErrInconsistentSampleCount = errors.New("audio: inconsistent sample count across channels")

// Buffers owns the storage for every input and output port, indexed
// [port][channel][sample]. All per-channel sample counts across every
// input and output port are equal: the block size.
type Buffers struct {
	config    Config
	blockSize int
	inputs    [][][]float32
	outputs   [][][]float32
}

func newBuffers(config Config, blockSize int) (*Buffers, error) {
	if blockSize < 0 {
		return nil, fmt.Errorf("audio: negative block size %d", blockSize)
	}
	b := &Buffers{config: config, blockSize: blockSize}
	var err error
	if b.inputs, err = allocatePorts(config.Inputs, blockSize); err != nil {
		return nil, err
	}
	if b.outputs, err = allocatePorts(config.Outputs, blockSize); err != nil {
		return nil, err
	}
	var channels uint32
	for _, spec := range config.Inputs {
		channels += spec.ChannelCount
	}
	for _, spec := range config.Outputs {
		channels += spec.ChannelCount
	}
	if channels == 0 {
		b.blockSize = 0
	}
	return b, nil
}

func allocatePorts(specs []PortSpec, blockSize int) ([][][]float32, error) {
	ports := make([][][]float32, len(specs))
	for i, spec := range specs {
		channels := make([][]float32, spec.ChannelCount)
		for c := range channels {
			channels[c] = make([]float32, blockSize)
		}
		ports[i] = channels
	}
	return ports, nil
}

// FromChannels builds Buffers directly from caller-supplied per-channel
// sample slices (used by tests exercising the homogeneity invariant). All
// channels across both inputs and outputs must share the same length, or
// ErrInconsistentSampleCount is returned.
func FromChannels(inputs, outputs [][][]float32) (*Buffers, error) {
	blockSize := -1
	check := func(ports [][][]float32) error {
		for _, port := range ports {
			for _, ch := range port {
				if blockSize == -1 {
					blockSize = len(ch)
					continue
				}
				if len(ch) != blockSize {
					return ErrInconsistentSampleCount
				}
			}
		}
		return nil
	}
	if err := check(inputs); err != nil {
		return nil, err
	}
	if err := check(outputs); err != nil {
		return nil, err
	}
	if blockSize == -1 {
		blockSize = 0
	}
	return &Buffers{blockSize: blockSize, inputs: inputs, outputs: outputs}, nil
}

// Len returns the block size: the shared per-channel sample count. Zero
// when there are no ports, or no channels, at all.
func (b *Buffers) Len() int {
	return b.blockSize
}

// Config returns the port configuration these buffers were built from.
func (b *Buffers) Config() Config {
	return b.config
}

func (b *Buffers) ports(dir Direction) [][][]float32 {
	if dir == Input {
		return b.inputs
	}
	return b.outputs
}

// Port returns the per-channel sample slices for port index idx in the
// given direction. Mutating the returned slices mutates the buffer storage
// in place; this is the intended way for a driver to fill input samples or
// inspect output samples.
func (b *Buffers) Port(dir Direction, idx int) [][]float32 {
	return b.ports(dir)[idx]
}

// PortCount returns how many ports exist in the given direction.
func (b *Buffers) PortCount(dir Direction) int {
	return len(b.ports(dir))
}

// ChannelPointers returns, for every port in the given direction, a slice
// of pointers to each channel's first sample. The returned view is valid
// only until the buffer is mutated structurally (never, after
// construction, in this implementation — block size and port count are
// fixed between activate() and deactivate() per the port-configuration
// contract) and must be rebuilt by the caller if that ever changes.
//
// This is the Go-level table; pkg/plugin copies it into a C-owned pointer
// array immediately before each process() call, since cgo forbids storing
// Go pointers inside C memory beyond that call's lifetime unless the
// outer array itself is C-allocated.
func (b *Buffers) ChannelPointers(dir Direction) [][]*float32 {
	ports := b.ports(dir)
	out := make([][]*float32, len(ports))
	for i, port := range ports {
		channels := make([]*float32, len(port))
		for c := range port {
			if len(port[c]) == 0 {
				channels[c] = nil
				continue
			}
			channels[c] = &port[c][0]
		}
		out[i] = channels
	}
	return out
}

// Randomize fills every input channel with uniform samples in [-1, 1].
// Output channels are left untouched; a plugin is expected to overwrite
// them during process().
func (b *Buffers) Randomize(src *prng.Source) {
	for _, port := range b.inputs {
		for _, ch := range port {
			for i := range ch {
				ch[i] = src.UniformSample()
			}
		}
	}
}

// Clear zeroes every sample in both directions.
func (b *Buffers) Clear() {
	for _, ports := range [][][][]float32{b.inputs, b.outputs} {
		for _, port := range ports {
			for _, ch := range port {
				for i := range ch {
					ch[i] = 0
				}
			}
		}
	}
}

// Peak returns the maximum absolute sample value across every channel of
// the given port in the given direction, used by tests that want to assert
// a plugin produced non-silent output.
func (b *Buffers) Peak(dir Direction, idx int) float32 {
	var peak float32
	for _, ch := range b.Port(dir, idx) {
		for _, s := range ch {
			if s < 0 {
				s = -s
			}
			if s > peak {
				peak = s
			}
		}
	}
	return peak
}
