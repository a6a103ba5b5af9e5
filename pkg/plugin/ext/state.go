package ext

/*
#include "../../../include/clap/include/clap/clap.h"
#include <stdlib.h>

extern int64_t goOStreamWrite(clap_ostream_t *stream, void *buffer, uint64_t size);
extern int64_t goIStreamRead(clap_istream_t *stream, void *buffer, uint64_t size);

static clap_ostream_t clapval_make_ostream(void *ctx) {
   clap_ostream_t s;
   s.ctx = ctx;
   s.write = (int64_t (*)(const clap_ostream_t *, const void *, uint64_t))goOStreamWrite;
   return s;
}
static clap_istream_t clapval_make_istream(void *ctx) {
   clap_istream_t s;
   s.ctx = ctx;
   s.read = (int64_t (*)(const clap_istream_t *, void *, uint64_t))goIStreamRead;
   return s;
}
static bool clapval_state_save(const clap_plugin_state_t *ext, const clap_plugin_t *p, const clap_ostream_t *stream) {
   if (!ext || !ext->save) return false;
   return ext->save(p, stream);
}
static bool clapval_state_load(const clap_plugin_state_t *ext, const clap_plugin_t *p, const clap_istream_t *stream) {
   if (!ext || !ext->load) return false;
   return ext->load(p, stream);
}
*/
import "C"

import (
	"bytes"
	"runtime/cgo"
	"unsafe"
)

// State wraps clap.state: save() and load() against an in-memory byte
// stream, the contract for the state round-trip test.
type State struct {
	ext    *C.clap_plugin_state_t
	plugin *C.clap_plugin_t
}

// NewState wraps ptr if non-nil.
func NewState(ptr, plugin unsafe.Pointer) *State {
	if ptr == nil {
		return nil
	}
	return &State{ext: (*C.clap_plugin_state_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// ostreamSink backs one save() call's C-visible write callback.
type ostreamSink struct {
	buf bytes.Buffer
}

// istreamSource backs one load() call's C-visible read callback.
type istreamSource struct {
	r *bytes.Reader
}

// Save serializes the plugin's state into an in-memory buffer.
func (s *State) Save() ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	sink := &ostreamSink{}
	h := cgo.NewHandle(sink)
	defer h.Delete()

	stream := C.clapval_make_ostream(unsafe.Pointer(uintptr(h)))
	ok := bool(C.clapval_state_save(s.ext, s.plugin, &stream))
	if !ok {
		return nil, false
	}
	return sink.buf.Bytes(), true
}

// Load deserializes data back into the plugin's state.
func (s *State) Load(data []byte) bool {
	if s == nil {
		return false
	}
	src := &istreamSource{r: bytes.NewReader(data)}
	h := cgo.NewHandle(src)
	defer h.Delete()

	stream := C.clapval_make_istream(unsafe.Pointer(uintptr(h)))
	return bool(C.clapval_state_load(s.ext, s.plugin, &stream))
}

//export goOStreamWrite
func goOStreamWrite(stream *C.clap_ostream_t, buffer unsafe.Pointer, size C.uint64_t) C.int64_t {
	sink, ok := cgo.Handle(uintptr(stream.ctx)).Value().(*ostreamSink)
	if !ok {
		return -1
	}
	n, _ := sink.buf.Write(C.GoBytes(buffer, C.int(size)))
	return C.int64_t(n)
}

//export goIStreamRead
func goIStreamRead(stream *C.clap_istream_t, buffer unsafe.Pointer, size C.uint64_t) C.int64_t {
	src, ok := cgo.Handle(uintptr(stream.ctx)).Value().(*istreamSource)
	if !ok {
		return -1
	}
	dst := unsafe.Slice((*byte)(buffer), int(size))
	n, err := src.r.Read(dst)
	if err != nil && n == 0 {
		return 0
	}
	return C.int64_t(n)
}
