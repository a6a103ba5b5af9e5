// Package process bundles audio buffers, event queues, and transport state
// into the ProcessData structure passed to a plugin's process() call, and
// advances transport/steady-time deterministically between blocks.
package process

import (
	"math"

	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/event"
)

// Config captures the fixed parameters a ProcessingTest run holds for its
// whole duration: sample rate and the initial transport signature.
type Config struct {
	SampleRate   float64
	Tempo        float64
	TimeSigNum   uint16
	TimeSigDenom uint16
}

// Data bundles everything one process() call needs: the audio buffers, the
// input/output event queues, and the transport/steady-time state that
// advances block by block.
type Data struct {
	Buffers *audio.Buffers
	Input   *event.Queue
	Output  *event.Queue

	cfg            Config
	samplePosition int64
	steadyTime     int64
	transport      event.TransportSnapshot
}

// New constructs a Data bundle. sample_position and steady_time both start
// at zero.
func New(buffers *audio.Buffers, cfg Config) *Data {
	d := &Data{
		Buffers: buffers,
		Input:   event.NewQueue(),
		Output:  event.NewQueue(),
		cfg:     cfg,
	}
	d.transport = d.computeTransport(0)
	return d
}

// TransportInfo returns the current transport snapshot.
func (d *Data) TransportInfo() event.TransportSnapshot {
	return d.transport
}

// SteadyTime returns the monotonically increasing sample counter that
// began at zero and grows by block size after every AdvanceTransport call.
func (d *Data) SteadyTime() int64 {
	return d.steadyTime
}

// SamplePosition returns the running transport sample position.
func (d *Data) SamplePosition() int64 {
	return d.samplePosition
}

// AdvanceTransport increments sample_position by n, recomputes
// song_pos_beats and song_pos_seconds deterministically from
// sample_position, sample_rate and tempo, and advances steady_time by the
// same n. Both transport timelines and the playing flag are marked
// present, matching the ProcessingTest driver's always-playing transport.
func (d *Data) AdvanceTransport(n int) {
	d.samplePosition += int64(n)
	d.transport = d.computeTransport(n)
	d.steadyTime += int64(n)
}

func (d *Data) computeTransport(blockSize int) event.TransportSnapshot {
	seconds := float64(d.samplePosition) / d.cfg.SampleRate
	beats := (seconds / 60.0) * d.cfg.Tempo

	flags := clap.TransportHasTempo | clap.TransportHasBeatsTimeline |
		clap.TransportHasSecondsTimeline | clap.TransportHasTimeSignature |
		clap.TransportIsPlaying

	return event.TransportSnapshot{
		Flags:          flags,
		SongPosBeats:   roundToFixed(beats, clap.BeatTimeFactor),
		SongPosSeconds: roundToFixed(seconds, clap.SecTimeFactor),
		Tempo:          d.cfg.Tempo,
		TimeSigNum:     d.cfg.TimeSigNum,
		TimeSigDenom:   d.cfg.TimeSigDenom,
	}
}

func roundToFixed(value float64, factor int64) int64 {
	return int64(math.Round(value * float64(factor)))
}
