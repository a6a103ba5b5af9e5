package plugin

/*
#include "../../include/clap/include/clap/clap.h"
#include <stdlib.h>

extern uint32_t goInEventsSize(clap_input_events_t *list);
extern clap_event_header_t *goInEventsGet(clap_input_events_t *list, uint32_t index);
extern bool goOutEventsTryPush(clap_output_events_t *list, clap_event_header_t *event);

static clap_input_events_t clapval_make_input_events(void *ctx) {
   clap_input_events_t ev;
   ev.ctx = ctx;
   ev.size = (uint32_t (*)(const struct clap_input_events *))goInEventsSize;
   ev.get = (const clap_event_header_t *(*)(const struct clap_input_events *, uint32_t))goInEventsGet;
   return ev;
}

static clap_output_events_t clapval_make_output_events(void *ctx) {
   clap_output_events_t ev;
   ev.ctx = ctx;
   ev.try_push = (bool (*)(const struct clap_output_events *, const clap_event_header_t *))goOutEventsTryPush;
   return ev;
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/event"
)

// eventsBridge owns, for the duration of exactly one process() call, the
// C-allocated event structures backing the input queue's ABI view and the
// collector for events the plugin pushes to the output queue.
type eventsBridge struct {
	inPtrs  []unsafe.Pointer // each points to a C-allocated event struct
	outSink *event.Queue

	inHandle  cgo.Handle
	outHandle cgo.Handle
}

func newEventsBridge(in *event.Queue, out *event.Queue) *eventsBridge {
	b := &eventsBridge{outSink: out}
	for _, e := range in.Iter() {
		b.inPtrs = append(b.inPtrs, marshalEvent(e))
	}
	b.inHandle = cgo.NewHandle(b)
	b.outHandle = cgo.NewHandle(b)
	return b
}

// inputEvents returns a clap_input_events_t suitable for embedding into a
// clap_process_t for this one call.
func (b *eventsBridge) inputEvents() C.clap_input_events_t {
	return C.clapval_make_input_events(unsafe.Pointer(uintptr(b.inHandle)))
}

// outputEvents returns a clap_output_events_t suitable for embedding into
// a clap_process_t for this one call.
func (b *eventsBridge) outputEvents() C.clap_output_events_t {
	return C.clapval_make_output_events(unsafe.Pointer(uintptr(b.outHandle)))
}

// free releases every C allocation and cgo.Handle this bridge owns. Must
// be called once, after the process() call returns.
func (b *eventsBridge) free() {
	for _, p := range b.inPtrs {
		C.free(p)
	}
	b.inHandle.Delete()
	b.outHandle.Delete()
}

func bridgeFromCtx(ctx unsafe.Pointer) *eventsBridge {
	if ctx == nil {
		return nil
	}
	return cgo.Handle(uintptr(ctx)).Value().(*eventsBridge)
}

func header(size uintptr, e event.Event) C.clap_event_header_t {
	return C.clap_event_header_t{
		size:     C.uint32_t(size),
		time:     C.uint32_t(e.Header.TimeSamples),
		space_id: C.uint16_t(e.Header.SpaceID),
		_type:    C.uint16_t(e.Header.Type),
		flags:    C.uint32_t(e.Header.Flags),
	}
}

// marshalEvent allocates a C struct of the correct variant size for e and
// fills it from the Go-side value. The returned pointer's first bytes are
// always a valid clap_event_header_t, as the ABI requires.
func marshalEvent(e event.Event) unsafe.Pointer {
	switch e.Header.Type {
	case clap.EventNoteOn, clap.EventNoteOff, clap.EventNoteChoke, clap.EventNoteEnd:
		p := (*C.clap_event_note_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_note_t{}))))
		p.header = header(unsafe.Sizeof(C.clap_event_note_t{}), e)
		p.note_id = C.int32_t(e.NoteID)
		p.port_index = C.int16_t(e.Port)
		p.channel = C.int16_t(e.Channel)
		p.key = C.int16_t(e.Key)
		p.velocity = C.double(e.Velocity)
		return unsafe.Pointer(p)
	case clap.EventParamValue:
		p := (*C.clap_event_param_value_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_param_value_t{}))))
		p.header = header(unsafe.Sizeof(C.clap_event_param_value_t{}), e)
		p.param_id = C.clap_id(e.ParamID)
		p.note_id = C.int32_t(e.NoteID)
		p.port_index = C.int16_t(e.Port)
		p.channel = C.int16_t(e.Channel)
		p.key = C.int16_t(e.Key)
		p.value = C.double(e.Value)
		return unsafe.Pointer(p)
	case clap.EventParamMod:
		p := (*C.clap_event_param_mod_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_param_mod_t{}))))
		p.header = header(unsafe.Sizeof(C.clap_event_param_mod_t{}), e)
		p.param_id = C.clap_id(e.ParamID)
		p.note_id = C.int32_t(e.NoteID)
		p.port_index = C.int16_t(e.Port)
		p.channel = C.int16_t(e.Channel)
		p.key = C.int16_t(e.Key)
		p.amount = C.double(e.Amount)
		return unsafe.Pointer(p)
	case clap.EventParamGestureBegin, clap.EventParamGestureEnd:
		p := (*C.clap_event_param_gesture_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_param_gesture_t{}))))
		p.header = header(unsafe.Sizeof(C.clap_event_param_gesture_t{}), e)
		p.param_id = C.clap_id(e.ParamID)
		return unsafe.Pointer(p)
	case clap.EventNoteExpression:
		p := (*C.clap_event_note_expression_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_note_expression_t{}))))
		p.header = header(unsafe.Sizeof(C.clap_event_note_expression_t{}), e)
		p.expression_id = C.int32_t(e.ExpressionID)
		p.note_id = C.int32_t(e.NoteID)
		p.port_index = C.int16_t(e.Port)
		p.channel = C.int16_t(e.Channel)
		p.key = C.int16_t(e.Key)
		p.value = C.double(e.Value)
		return unsafe.Pointer(p)
	case clap.EventTransport:
		p := (*C.clap_event_transport_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_transport_t{}))))
		p.header = header(unsafe.Sizeof(C.clap_event_transport_t{}), e)
		t := e.Transport
		p.flags = C.uint32_t(t.Flags)
		p.song_pos_beats = C.clap_beattime(t.SongPosBeats)
		p.song_pos_seconds = C.clap_sectime(t.SongPosSeconds)
		p.tempo = C.double(t.Tempo)
		p.bar_start = C.clap_beattime(t.BarStart)
		p.bar_number = C.int32_t(t.BarNumber)
		p.tsig_num = C.uint16_t(t.TimeSigNum)
		p.tsig_denom = C.uint16_t(t.TimeSigDenom)
		return unsafe.Pointer(p)
	default:
		p := (*C.clap_event_header_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_header_t{}))))
		*p = header(unsafe.Sizeof(C.clap_event_header_t{}), e)
		return unsafe.Pointer(p)
	}
}

// unmarshalEvent converts a C event the plugin pushed into our Go Event
// representation, for inspection by test cases.
func unmarshalEvent(hdr *C.clap_event_header_t) event.Event {
	h := event.Header{
		Size:        uint32(hdr.size),
		TimeSamples: uint32(hdr.time),
		SpaceID:     uint16(hdr.space_id),
		Type:        uint16(hdr._type),
		Flags:       uint32(hdr.flags),
	}
	e := event.Event{Header: h, Port: -1, Channel: -1, Key: -1, NoteID: -1}

	switch h.Type {
	case clap.EventNoteOn, clap.EventNoteOff, clap.EventNoteChoke, clap.EventNoteEnd:
		n := (*C.clap_event_note_t)(unsafe.Pointer(hdr))
		e.NoteID = int32(n.note_id)
		e.Port = int16(n.port_index)
		e.Channel = int16(n.channel)
		e.Key = int16(n.key)
		e.Velocity = float64(n.velocity)
	case clap.EventParamValue:
		v := (*C.clap_event_param_value_t)(unsafe.Pointer(hdr))
		e.ParamID = uint32(v.param_id)
		e.NoteID = int32(v.note_id)
		e.Port = int16(v.port_index)
		e.Channel = int16(v.channel)
		e.Key = int16(v.key)
		e.Value = float64(v.value)
	case clap.EventParamMod:
		m := (*C.clap_event_param_mod_t)(unsafe.Pointer(hdr))
		e.ParamID = uint32(m.param_id)
		e.NoteID = int32(m.note_id)
		e.Port = int16(m.port_index)
		e.Channel = int16(m.channel)
		e.Key = int16(m.key)
		e.Amount = float64(m.amount)
	case clap.EventParamGestureBegin, clap.EventParamGestureEnd:
		g := (*C.clap_event_param_gesture_t)(unsafe.Pointer(hdr))
		e.ParamID = uint32(g.param_id)
	case clap.EventNoteExpression:
		x := (*C.clap_event_note_expression_t)(unsafe.Pointer(hdr))
		e.ExpressionID = int32(x.expression_id)
		e.NoteID = int32(x.note_id)
		e.Port = int16(x.port_index)
		e.Channel = int16(x.channel)
		e.Key = int16(x.key)
		e.Value = float64(x.value)
	}
	return e
}

//export goInEventsSize
func goInEventsSize(list *C.clap_input_events_t) C.uint32_t {
	b := bridgeFromCtx(list.ctx)
	if b == nil {
		return 0
	}
	return C.uint32_t(len(b.inPtrs))
}

//export goInEventsGet
func goInEventsGet(list *C.clap_input_events_t, index C.uint32_t) *C.clap_event_header_t {
	b := bridgeFromCtx(list.ctx)
	if b == nil || int(index) >= len(b.inPtrs) {
		return nil
	}
	return (*C.clap_event_header_t)(b.inPtrs[index])
}

//export goOutEventsTryPush
func goOutEventsTryPush(list *C.clap_output_events_t, ev *C.clap_event_header_t) C.bool {
	b := bridgeFromCtx(list.ctx)
	if b == nil || b.outSink == nil {
		return false
	}
	b.outSink.Push(unmarshalEvent(ev))
	return true
}
