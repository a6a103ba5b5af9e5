package plugin

/*
#include "../../include/clap/include/clap/clap.h"
#include <stdlib.h>

static bool clapval_plugin_init(const clap_plugin_t *p) {
   if (!p || !p->init) return false;
   return p->init(p);
}
static void clapval_plugin_destroy(const clap_plugin_t *p) {
   if (p && p->destroy) p->destroy(p);
}
static bool clapval_plugin_activate(const clap_plugin_t *p, double sr, uint32_t minf, uint32_t maxf) {
   if (!p || !p->activate) return false;
   return p->activate(p, sr, minf, maxf);
}
static void clapval_plugin_deactivate(const clap_plugin_t *p) {
   if (p && p->deactivate) p->deactivate(p);
}
static bool clapval_plugin_start_processing(const clap_plugin_t *p) {
   if (!p || !p->start_processing) return false;
   return p->start_processing(p);
}
static void clapval_plugin_stop_processing(const clap_plugin_t *p) {
   if (p && p->stop_processing) p->stop_processing(p);
}
static void clapval_plugin_reset(const clap_plugin_t *p) {
   if (p && p->reset) p->reset(p);
}
static int32_t clapval_plugin_process(const clap_plugin_t *p, const clap_process_t *proc) {
   if (!p || !p->process) return CLAP_PROCESS_ERROR;
   return p->process(p, proc);
}
static const void *clapval_plugin_get_extension(const clap_plugin_t *p, const char *id) {
   if (!p || !p->get_extension) return NULL;
   return p->get_extension(p, id);
}
static void clapval_plugin_on_main_thread(const clap_plugin_t *p) {
   if (p && p->on_main_thread) p->on_main_thread(p);
}
static void clapval_params_flush(const clap_plugin_params_t *ext, const clap_plugin_t *p,
                                  const clap_input_events_t *in, const clap_output_events_t *out) {
   if (ext && ext->flush) ext->flush(p, in, out);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/event"
	"github.com/clapval/clapval/pkg/host"
	"github.com/clapval/clapval/pkg/process"
	"github.com/clapval/clapval/pkg/result"
)

// State is a PluginInstance's lifecycle position, per the state machine
// covering factory.create through destroy().
type State int

const (
	StateCreated State = iota
	StateInitialized
	StateActivated
	StateProcessing
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateActivated:
		return "activated"
	case StateProcessing:
		return "processing"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Instance wraps one live plugin: its raw clap_plugin_t*, its lifecycle
// state, and a memoized extension-pointer cache. Illegal transitions are
// refused in Go before any call reaches the plugin, per the lifecycle
// design's "misuse is a test failure, not undefined behavior."
type Instance struct {
	Descriptor Descriptor
	Host       *host.Host

	ptr   *C.clap_plugin_t
	state State

	extCache map[string]unsafe.Pointer

	minBlock, maxBlock uint32
}

// Create constructs an instance of pluginID from lib against h, in the
// pre-init Created state. The caller must call Init before any extension
// query.
func Create(lib *Library, pluginID string, h *host.Host, chost *CHostPtr) (*Instance, error) {
	raw, err := lib.createRaw(pluginID, chost.ptr)
	if err != nil {
		return nil, err
	}
	var desc Descriptor
	for _, d := range lib.Descriptors() {
		if d.ID == pluginID {
			desc = d
			break
		}
	}
	return &Instance{
		Descriptor: desc,
		Host:       h,
		ptr:        raw,
		state:      StateCreated,
		extCache:   make(map[string]unsafe.Pointer),
	}, nil
}

// CHostPtr is the minimal view of host.CHost this package needs, kept
// distinct so pkg/plugin doesn't need to know host.CHost's full shape.
type CHostPtr struct {
	ptr unsafe.Pointer
}

// WrapHostPtr adapts a raw host pointer (from host.CHost.Ptr()) for Create.
func WrapHostPtr(p unsafe.Pointer) *CHostPtr {
	return &CHostPtr{ptr: p}
}

func illegalTransition(from State, event string) error {
	return result.Wrap(result.KindLifecycle, fmt.Sprintf("illegal transition: %s from state %s", event, from), nil)
}

// Init designates the current thread init (treated as main) and calls
// init(). Legal only from Created.
func (inst *Instance) Init() error {
	if inst.state != StateCreated {
		return illegalTransition(inst.state, "init()")
	}
	inst.Host.SetThread(host.ThreadInit)
	if !bool(C.clapval_plugin_init(inst.ptr)) {
		return result.Wrap(result.KindLifecycle, "plugin.init() returned false", nil)
	}
	inst.state = StateInitialized
	return nil
}

// GetExtension looks up and memoizes an extension pointer. Legal from
// Initialized onward; Created refuses per the lifecycle table ("no
// extensions may be queried" pre-init).
func (inst *Instance) GetExtension(id string) (unsafe.Pointer, bool) {
	if inst.state == StateCreated || inst.state == StateDestroyed {
		return nil, false
	}
	if p, ok := inst.extCache[id]; ok {
		return p, p != nil
	}
	cID := C.CString(id)
	defer C.free(unsafe.Pointer(cID))
	p := C.clapval_plugin_get_extension(inst.ptr, cID)
	inst.extCache[id] = unsafe.Pointer(p)
	return unsafe.Pointer(p), p != nil
}

// Activate freezes the port/block-size configuration. Legal only from
// Initialized.
func (inst *Instance) Activate(sampleRate float64, minBlock, maxBlock uint32) error {
	if inst.state != StateInitialized {
		return illegalTransition(inst.state, "activate()")
	}
	inst.Host.SetThread(host.ThreadMain)
	if !bool(C.clapval_plugin_activate(inst.ptr, C.double(sampleRate), C.uint32_t(minBlock), C.uint32_t(maxBlock))) {
		return result.Wrap(result.KindLifecycle, "plugin.activate() returned false", nil)
	}
	inst.minBlock, inst.maxBlock = minBlock, maxBlock
	inst.state = StateActivated
	return nil
}

// Deactivate is legal only from Activated.
func (inst *Instance) Deactivate() error {
	if inst.state != StateActivated {
		return illegalTransition(inst.state, "deactivate()")
	}
	inst.Host.SetThread(host.ThreadMain)
	C.clapval_plugin_deactivate(inst.ptr)
	inst.state = StateInitialized
	return nil
}

// StartProcessing is legal only from Activated and requires the
// audio-thread designation.
func (inst *Instance) StartProcessing() error {
	if inst.state != StateActivated {
		return illegalTransition(inst.state, "start_processing()")
	}
	inst.Host.SetThread(host.ThreadAudio)
	if !bool(C.clapval_plugin_start_processing(inst.ptr)) {
		return result.Wrap(result.KindLifecycle, "plugin.start_processing() returned false", nil)
	}
	inst.state = StateProcessing
	return nil
}

// StopProcessing is legal only from Processing.
func (inst *Instance) StopProcessing() error {
	if inst.state != StateProcessing {
		return illegalTransition(inst.state, "stop_processing()")
	}
	inst.Host.SetThread(host.ThreadAudio)
	C.clapval_plugin_stop_processing(inst.ptr)
	inst.state = StateActivated
	return nil
}

// Reset is legal during Activated or Processing, and keeps the current
// state.
func (inst *Instance) Reset() error {
	if inst.state != StateActivated && inst.state != StateProcessing {
		return illegalTransition(inst.state, "reset()")
	}
	C.clapval_plugin_reset(inst.ptr)
	return nil
}

// Destroy is legal from any state and moves to Destroyed exactly once.
func (inst *Instance) Destroy() error {
	if inst.state == StateDestroyed {
		return illegalTransition(inst.state, "destroy()")
	}
	C.clapval_plugin_destroy(inst.ptr)
	inst.state = StateDestroyed
	return nil
}

// State returns the instance's current lifecycle state.
func (inst *Instance) State() State {
	return inst.state
}

// Process drives exactly one process() call. Legal only from Processing;
// block size must fall within the bounds frozen by Activate. Builds the
// full clap_process_t (audio buffers, transport, input/output event
// views) from data, invokes the plugin, and parses output events back
// into data.Output.
func (inst *Instance) Process(data *process.Data) (int32, error) {
	if inst.state != StateProcessing {
		return clap.ProcessError, illegalTransition(inst.state, "process()")
	}
	blockSize := data.Buffers.Len()
	if blockSize < int(inst.minBlock) || (inst.maxBlock > 0 && blockSize > int(inst.maxBlock)) {
		return clap.ProcessError, result.Wrap(result.KindLifecycle,
			fmt.Sprintf("block size %d outside activated bounds [%d,%d]", blockSize, inst.minBlock, inst.maxBlock), nil)
	}

	inst.Host.SetThread(host.ThreadAudio)

	bridge := newEventsBridge(data.Input, data.Output)
	defer bridge.free()

	inBuf, inFree := buildAudioBuffers(data.Buffers, audio.Input)
	defer inFree()
	outBuf, outFree := buildAudioBuffers(data.Buffers, audio.Output)
	defer outFree()

	// transport, the event-table views, and the process struct itself are
	// all allocated in C-owned memory: clap_process_t is handed to the
	// plugin as a single pointer, and cgo forbids a Go-resident struct
	// from carrying further Go pointers across that boundary.
	transport := (*C.clap_event_transport_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_event_transport_t{}))))
	*transport = transportFromSnapshot(data.TransportInfo())
	defer C.free(unsafe.Pointer(transport))

	inEvents := (*C.clap_input_events_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_input_events_t{}))))
	*inEvents = bridge.inputEvents()
	defer C.free(unsafe.Pointer(inEvents))

	outEvents := (*C.clap_output_events_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_output_events_t{}))))
	*outEvents = bridge.outputEvents()
	defer C.free(unsafe.Pointer(outEvents))

	proc := (*C.clap_process_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_process_t{}))))
	defer C.free(unsafe.Pointer(proc))
	*proc = C.clap_process_t{
		steady_time:         C.int64_t(data.SteadyTime()),
		frames_count:        C.uint32_t(blockSize),
		transport:           transport,
		audio_inputs:        inBuf,
		audio_outputs:       outBuf,
		audio_inputs_count:  C.uint32_t(data.Buffers.PortCount(audio.Input)),
		audio_outputs_count: C.uint32_t(data.Buffers.PortCount(audio.Output)),
		in_events:           inEvents,
		out_events:          outEvents,
	}

	status := int32(C.clapval_plugin_process(inst.ptr, proc))
	return status, nil
}

func transportFromSnapshot(t event.TransportSnapshot) C.clap_event_transport_t {
	return C.clap_event_transport_t{
		header: C.clap_event_header_t{
			size:     C.uint32_t(unsafe.Sizeof(C.clap_event_transport_t{})),
			space_id: C.uint16_t(clap.CoreEventSpaceID),
			_type:    C.uint16_t(clap.EventTransport),
		},
		flags:            C.uint32_t(t.Flags),
		song_pos_beats:   C.clap_beattime(t.SongPosBeats),
		song_pos_seconds: C.clap_sectime(t.SongPosSeconds),
		tempo:            C.double(t.Tempo),
		tsig_num:         C.uint16_t(t.TimeSigNum),
		tsig_denom:       C.uint16_t(t.TimeSigDenom),
	}
}

// buildAudioBuffers allocates a C array of clap_audio_buffer_t (one per
// port) whose data32 field is itself a C-allocated array of *float32
// pointing into buf's Go-owned sample storage, valid for the duration of
// this one process() call. The returned free func releases both levels of
// C allocation; it does not touch the Go-owned sample slices.
func buildAudioBuffers(buf *audio.Buffers, dir audio.Direction) (*C.clap_audio_buffer_t, func()) {
	n := buf.PortCount(dir)
	if n == 0 {
		return nil, func() {}
	}
	ptrTables := buf.ChannelPointers(dir)

	portsC := (*C.clap_audio_buffer_t)(C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(C.clap_audio_buffer_t{}))))
	portsSlice := unsafe.Slice(portsC, n)

	var channelArrays []unsafe.Pointer
	for i := 0; i < n; i++ {
		channels := ptrTables[i]
		if len(channels) == 0 {
			portsSlice[i] = C.clap_audio_buffer_t{channel_count: 0}
			continue
		}
		cArr := (**C.float)(C.malloc(C.size_t(len(channels)) * C.size_t(unsafe.Sizeof((*C.float)(nil)))))
		channelArrays = append(channelArrays, unsafe.Pointer(cArr))
		cSlice := unsafe.Slice(cArr, len(channels))
		for c, p := range channels {
			cSlice[c] = (*C.float)(unsafe.Pointer(p))
		}
		portsSlice[i] = C.clap_audio_buffer_t{
			data32:        cArr,
			channel_count: C.uint32_t(len(channels)),
		}
	}

	free := func() {
		for _, p := range channelArrays {
			C.free(p)
		}
		C.free(unsafe.Pointer(portsC))
	}
	return portsC, free
}

// ParamFlush drives clap.params' flush(), the main-thread parameter
// update path, legal only while Initialized (not Processing, which has
// its own in-band parameter events). paramsExt is the raw extension
// pointer from Instance.GetExtension(clap.ExtParams).
func (inst *Instance) ParamFlush(paramsExt unsafe.Pointer, in, out *event.Queue) error {
	if inst.state != StateInitialized {
		return illegalTransition(inst.state, "params.flush()")
	}
	inst.Host.SetThread(host.ThreadMain)

	bridge := newEventsBridge(in, out)
	defer bridge.free()

	inEvents := (*C.clap_input_events_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_input_events_t{}))))
	*inEvents = bridge.inputEvents()
	defer C.free(unsafe.Pointer(inEvents))

	outEvents := (*C.clap_output_events_t)(C.malloc(C.size_t(unsafe.Sizeof(C.clap_output_events_t{}))))
	*outEvents = bridge.outputEvents()
	defer C.free(unsafe.Pointer(outEvents))

	C.clapval_params_flush((*C.clap_plugin_params_t)(paramsExt), inst.ptr, inEvents, outEvents)
	return nil
}

// RawPtr exposes the underlying clap_plugin_t* for ext façades that need
// it alongside an extension pointer obtained through GetExtension.
func (inst *Instance) RawPtr() unsafe.Pointer {
	return unsafe.Pointer(inst.ptr)
}
