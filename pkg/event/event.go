// Package event implements the host-side event queue: a time-sorted list
// of input events handed to a plugin each process() block, and the output
// sink a plugin appends to during that call.
package event

import "github.com/clapval/clapval/pkg/clap"

// Header is common to every event variant.
type Header struct {
	Size        uint32
	TimeSamples uint32
	SpaceID     uint16
	Type        uint16
	Flags       uint32
}

// Event is the tagged union of every event kind the core driver knows how
// to build and inspect. Exactly one of the typed fields below is
// meaningful, selected by Header.Type; unused fields are left zero.
type Event struct {
	Header Header

	// Note events: NoteOn, NoteOff, NoteChoke, NoteEnd.
	Port    int16
	Channel int16
	Key     int16
	NoteID  int32
	Velocity float64

	// ParamValue / ParamMod.
	ParamID uint32
	Value   float64
	Amount  float64

	// ParamGestureBegin / ParamGestureEnd carry only ParamID.

	// NoteExpression.
	ExpressionID int32

	// Transport.
	Transport TransportSnapshot
}

// TransportSnapshot mirrors clap_event_transport_t's payload.
type TransportSnapshot struct {
	Flags          uint32
	SongPosBeats   int64
	SongPosSeconds int64
	Tempo          float64
	TimeSigNum     uint16
	TimeSigDenom   uint16
	BarStart       int64
	BarNumber      int32
}

// NoteOn builds a core note-on event at the given sample offset.
func NoteOn(timeSamples uint32, port, channel, key int16, noteID int32, velocity float64) Event {
	return Event{
		Header:   Header{TimeSamples: timeSamples, SpaceID: clap.CoreEventSpaceID, Type: clap.EventNoteOn},
		Port:     port,
		Channel:  channel,
		Key:      key,
		NoteID:   noteID,
		Velocity: velocity,
	}
}

// NoteOff mirrors NoteOn for the note-off event type.
func NoteOff(timeSamples uint32, port, channel, key int16, noteID int32, velocity float64) Event {
	e := NoteOn(timeSamples, port, channel, key, noteID, velocity)
	e.Header.Type = clap.EventNoteOff
	return e
}

// ParamValue builds a core parameter-value event targeting a specific
// namespace. A conforming plugin must ignore the event if namespaceID is
// not clap.CoreEventSpaceID.
func ParamValue(timeSamples uint32, namespaceID uint16, paramID uint32, value float64) Event {
	return Event{
		Header:  Header{TimeSamples: timeSamples, SpaceID: namespaceID, Type: clap.EventParamValue},
		ParamID: paramID,
		Value:   value,
		Port:    -1,
		Channel: -1,
		Key:     -1,
		NoteID:  -1,
	}
}

// ParamMod builds a core parameter-modulation event.
func ParamMod(timeSamples uint32, paramID uint32, amount float64) Event {
	return Event{
		Header:  Header{TimeSamples: timeSamples, SpaceID: clap.CoreEventSpaceID, Type: clap.EventParamMod},
		ParamID: paramID,
		Amount:  amount,
		Port:    -1,
		Channel: -1,
		Key:     -1,
		NoteID:  -1,
	}
}

// Transport builds a core transport event from a snapshot.
func Transport(timeSamples uint32, snap TransportSnapshot) Event {
	return Event{
		Header:    Header{TimeSamples: timeSamples, SpaceID: clap.CoreEventSpaceID, Type: clap.EventTransport},
		Transport: snap,
	}
}
