// Package fuzz builds randomized parameter permutations and note events
// for the random-fuzz-params test case, drawing from a deterministic
// pkg/prng source so a reported failure reproduces exactly.
package fuzz

import (
	"github.com/clapval/clapval/pkg/event"
	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/prng"
)

// ValuesPerParam mirrors the original tool's sampling density: min, max,
// and four PRNG-drawn values in between.
const ValuesPerParam = 6

// SampleValues returns ValuesPerParam candidate values for a parameter,
// always including its min and max.
func SampleValues(info ext.ParamInfo, src *prng.Source) []float64 {
	values := make([]float64, 0, ValuesPerParam)
	values = append(values, info.Min, info.Max)
	for len(values) < ValuesPerParam {
		values = append(values, src.Float64Range(info.Min, info.Max))
	}
	return values
}

// Permutation is one randomized assignment of every parameter to a value
// drawn from its range, the unit of work random-fuzz-params replays
// FuzzRunsPerPermutation times.
type Permutation struct {
	Values map[uint32]float64
}

// BuildPermutations constructs n independent permutations, one value per
// parameter per permutation, drawn from src.
func BuildPermutations(params []ext.ParamInfo, n int, src *prng.Source) []Permutation {
	out := make([]Permutation, n)
	for i := range out {
		values := make(map[uint32]float64, len(params))
		for _, p := range params {
			values[p.ID] = src.Float64Range(p.Min, p.Max)
		}
		out[i] = Permutation{Values: values}
	}
	return out
}

// ParamValueEvents builds one ParamValue event per entry in the
// permutation, all at time zero, in the core event namespace.
func (p Permutation) ParamValueEvents() []event.Event {
	out := make([]event.Event, 0, len(p.Values))
	for id, v := range p.Values {
		out = append(out, event.ParamValue(0, 0, id, v))
	}
	return out
}

// RandomNoteEvents overlays a handful of random note-on/off pairs across
// the block, used by random-fuzz-params to additionally exercise note
// handling while parameters are being fuzzed.
func RandomNoteEvents(blockSize int, src *prng.Source) []event.Event {
	count := src.IntN(4)
	out := make([]event.Event, 0, count*2)
	for i := 0; i < count; i++ {
		key := int16(src.IntN(128))
		onTime := uint32(src.IntN(blockSize))
		offTime := onTime
		if blockSize > 0 {
			offTime = uint32(src.IntN(blockSize))
		}
		noteID := int32(i)
		velocity := src.Float64Range(0, 1)
		out = append(out, event.NoteOn(onTime, 0, 0, key, noteID, velocity))
		out = append(out, event.NoteOff(offTime, 0, 0, key, noteID, velocity))
	}
	return out
}
