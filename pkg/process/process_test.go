package process

import (
	"testing"

	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/clap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newData(t *testing.T, sampleRate, tempo float64) *Data {
	bufs, err := audio.DefaultMonoInOut().CreateBuffers(512)
	require.NoError(t, err)
	return New(bufs, Config{SampleRate: sampleRate, Tempo: tempo, TimeSigNum: 4, TimeSigDenom: 4})
}

func TestTransportAdvanceExampleFromSpec(t *testing.T) {
	d := newData(t, 48000, 120)
	d.AdvanceTransport(24000)

	info := d.TransportInfo()
	assert.Equal(t, clap.SecTimeFactor/2, info.SongPosSeconds)
	assert.Equal(t, clap.BeatTimeFactor, info.SongPosBeats)
}

func TestTransportFlagsAlwaysSet(t *testing.T) {
	d := newData(t, 48000, 120)
	d.AdvanceTransport(512)
	info := d.TransportInfo()

	want := clap.TransportHasTempo | clap.TransportHasBeatsTimeline |
		clap.TransportHasSecondsTimeline | clap.TransportHasTimeSignature |
		clap.TransportIsPlaying
	assert.Equal(t, want, info.Flags)
}

func TestSteadyTimeMonotonic(t *testing.T) {
	d := newData(t, 44100, 100)
	for i := 0; i < 5; i++ {
		before := d.SteadyTime()
		d.AdvanceTransport(256)
		assert.Equal(t, before+256, d.SteadyTime())
	}
}

func TestTransportDeterminismProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sampleRate := rapid.Float64Range(8000, 192000).Draw(t, "sampleRate")
		tempo := rapid.Float64Range(20, 300).Draw(t, "tempo")
		blockSize := rapid.IntRange(1, 4096).Draw(t, "blockSize")

		bufs, err := audio.Config{}.CreateBuffers(0)
		require.NoError(t, err)

		a := New(bufs, Config{SampleRate: sampleRate, Tempo: tempo})
		b := New(bufs, Config{SampleRate: sampleRate, Tempo: tempo})

		for i := 0; i < 4; i++ {
			a.AdvanceTransport(blockSize)
			b.AdvanceTransport(blockSize)
			if a.TransportInfo() != b.TransportInfo() {
				t.Fatalf("divergent transport sequence at step %d", i)
			}
		}
	})
}
