package audio

import "github.com/clapval/clapval/pkg/clap"

// Direction distinguishes a plugin's input side from its output side.
type Direction int

const (
	Input Direction = iota
	Output
)

// PortSpec describes one audio port as advertised by clap.audio-ports.
type PortSpec struct {
	ChannelCount uint32
	PortType     string // one of clap.PortMono, clap.PortStereo, ... or a vendor string
	// InPlacePair names the index of the paired port on the opposite
	// direction, or nil if this port has no in-place pair.
	InPlacePair *uint32
}

// Config is the fixed port layout a plugin holds between activate() and
// deactivate(). A zero-value Config (no ports at all) is legal.
type Config struct {
	Inputs  []PortSpec
	Outputs []PortSpec
}

func (c Config) ports(dir Direction) []PortSpec {
	if dir == Input {
		return c.Inputs
	}
	return c.Outputs
}

// CreateBuffers allocates a zeroed AudioBuffers for this configuration at
// the given block size. A Config with no ports at all is legal and
// produces buffers whose Len() is zero.
func (c Config) CreateBuffers(blockSize int) (*Buffers, error) {
	return newBuffers(c, blockSize)
}

// DefaultMonoInOut is a convenience single mono-in/mono-out configuration,
// used by test cases that don't care about port layout.
func DefaultMonoInOut() Config {
	return Config{
		Inputs:  []PortSpec{{ChannelCount: 1, PortType: clap.PortMono}},
		Outputs: []PortSpec{{ChannelCount: 1, PortType: clap.PortMono}},
	}
}

// DefaultStereoInOut mirrors the stereo in/stereo out layout most effect
// plugins advertise.
func DefaultStereoInOut() Config {
	return Config{
		Inputs:  []PortSpec{{ChannelCount: 2, PortType: clap.PortStereo}},
		Outputs: []PortSpec{{ChannelCount: 2, PortType: clap.PortStereo}},
	}
}
