package audio

import (
	"testing"

	"github.com/clapval/clapval/pkg/prng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuffersHomogeneousLen(t *testing.T) {
	inputs := [][][]float32{{make([]float32, 8), make([]float32, 8)}}
	outputs := [][][]float32{{make([]float32, 8), make([]float32, 8)}}

	bufs, err := FromChannels(inputs, outputs)
	require.NoError(t, err)
	assert.Equal(t, 8, bufs.Len())
}

func TestBuffersInconsistentSampleCount(t *testing.T) {
	inputs := [][][]float32{{make([]float32, 8), make([]float32, 7)}}
	outputs := [][][]float32{{make([]float32, 8), make([]float32, 8)}}

	_, err := FromChannels(inputs, outputs)
	assert.ErrorIs(t, err, ErrInconsistentSampleCount)
}

func TestBuffersNoPortsLenZero(t *testing.T) {
	bufs, err := Config{}.CreateBuffers(512)
	require.NoError(t, err)
	assert.Equal(t, 0, bufs.Len())
}

func TestBuffersZeroChannelPortIsLegal(t *testing.T) {
	cfg := Config{Inputs: []PortSpec{{ChannelCount: 0}}}
	bufs, err := cfg.CreateBuffers(256)
	require.NoError(t, err)
	assert.Equal(t, 0, len(bufs.Port(Input, 0)))
}

func TestChannelPointersAreDistinctPerDirection(t *testing.T) {
	bufs, err := DefaultStereoInOut().CreateBuffers(64)
	require.NoError(t, err)

	inPtrs := bufs.ChannelPointers(Input)
	outPtrs := bufs.ChannelPointers(Output)

	require.Len(t, inPtrs, 1)
	require.Len(t, outPtrs, 1)
	assert.NotEqual(t, inPtrs[0][0], outPtrs[0][0], "output pointer table must not alias the input table")

	*outPtrs[0][0] = 0.5
	assert.Equal(t, float32(0.5), bufs.Port(Output, 0)[0][0])
	assert.Equal(t, float32(0), bufs.Port(Input, 0)[0][0])
}

func TestRandomizeOnlyTouchesInputs(t *testing.T) {
	bufs, err := DefaultStereoInOut().CreateBuffers(32)
	require.NoError(t, err)

	src := prng.New(prng.FixedSeed)
	bufs.Randomize(src)

	for _, s := range bufs.Port(Output, 0)[0] {
		assert.Equal(t, float32(0), s)
	}
	var nonZero bool
	for _, s := range bufs.Port(Input, 0)[0] {
		if s != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero)
}

func TestBuffersHomogeneityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "blockSize")
		channels := rapid.IntRange(1, 4).Draw(t, "channels")

		port := make([][]float32, channels)
		for c := range port {
			port[c] = make([]float32, n)
		}
		bufs, err := FromChannels([][][]float32{port}, nil)
		require.NoError(t, err)
		assert.Equal(t, n, bufs.Len())
	})
}
