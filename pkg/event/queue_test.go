package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSortStability(t *testing.T) {
	q := NewQueue()
	q.Push(NoteOn(10, 0, 0, 1, 0, 1))
	q.Push(NoteOn(5, 0, 0, 2, 0, 1))
	q.Push(NoteOn(10, 0, 0, 3, 0, 1))
	q.Push(NoteOn(0, 0, 0, 4, 0, 1))

	q.Sort()

	keys := make([]int16, q.Len())
	for i := 0; i < q.Len(); i++ {
		keys[i] = q.Get(i).Key
	}
	assert.Equal(t, []int16{4, 2, 1, 3}, keys)
}

func TestDrainEmptiesQueue(t *testing.T) {
	q := NewQueue()
	q.Push(NoteOn(0, 0, 0, 1, 0, 1))
	out := q.Drain()
	assert.Len(t, out, 1)
	assert.Equal(t, 0, q.Len())
}

func TestSortMonotonicityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "n")
		q := NewQueue()
		for i := 0; i < n; i++ {
			ts := rapid.Uint32Range(0, 1000).Draw(t, "ts")
			q.Push(NoteOn(ts, 0, 0, int16(i), 0, 1))
		}
		q.Sort()
		assert.True(t, q.IsSorted())
		for i := 1; i < q.Len(); i++ {
			if q.Get(i-1).Header.TimeSamples > q.Get(i).Header.TimeSamples {
				t.Fatalf("not monotonic at %d", i)
			}
		}
	})
}
