package fuzz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/prng"
)

func TestSampleValuesIncludesMinAndMax(t *testing.T) {
	info := ext.ParamInfo{ID: 1, Min: -2, Max: 5}
	src := prng.New(1)

	values := SampleValues(info, src)

	require.Len(t, values, ValuesPerParam)
	assert.Equal(t, -2.0, values[0])
	assert.Equal(t, 5.0, values[1])
	for _, v := range values[2:] {
		assert.GreaterOrEqual(t, v, info.Min)
		assert.LessOrEqual(t, v, info.Max)
	}
}

func TestBuildPermutationsCoversEveryParam(t *testing.T) {
	params := []ext.ParamInfo{
		{ID: 1, Min: 0, Max: 1},
		{ID: 2, Min: -10, Max: 10},
	}
	src := prng.New(42)

	perms := BuildPermutations(params, 3, src)

	require.Len(t, perms, 3)
	for _, p := range perms {
		require.Len(t, p.Values, len(params))
		assert.Contains(t, p.Values, uint32(1))
		assert.Contains(t, p.Values, uint32(2))
	}
}

func TestPermutationParamValueEventsOneEventPerParam(t *testing.T) {
	perm := Permutation{Values: map[uint32]float64{1: 0.5, 2: -3}}

	events := perm.ParamValueEvents()

	require.Len(t, events, 2)
	seen := map[uint32]float64{}
	for _, e := range events {
		assert.Equal(t, uint32(0), e.Header.TimeSamples)
		seen[e.ParamID] = e.Value
	}
	assert.Equal(t, perm.Values, seen)
}

func TestRandomNoteEventsBalancedOnOff(t *testing.T) {
	src := prng.New(7)

	events := RandomNoteEvents(512, src)

	assert.Equal(t, 0, len(events)%2, "notes must come in on/off pairs")
}
