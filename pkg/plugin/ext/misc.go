package ext

/*
#include "../../../include/clap/include/clap/clap.h"

static uint32_t clapval_latency_get(const clap_plugin_latency_t *ext, const clap_plugin_t *p) {
   if (!ext || !ext->get) return 0;
   return ext->get(p);
}
static uint32_t clapval_tail_get(const clap_plugin_tail_t *ext, const clap_plugin_t *p) {
   if (!ext || !ext->get) return 0;
   return ext->get(p);
}
static bool clapval_render_has_hard_rt(const clap_plugin_render_t *ext, const clap_plugin_t *p) {
   if (!ext || !ext->has_hard_realtime_requirement) return false;
   return ext->has_hard_realtime_requirement(p);
}
static bool clapval_render_set(const clap_plugin_render_t *ext, const clap_plugin_t *p, int32_t mode) {
   if (!ext || !ext->set) return false;
   return ext->set(p, mode);
}
*/
import "C"

import "unsafe"

// Latency wraps clap.latency.
type Latency struct {
	ext    *C.clap_plugin_latency_t
	plugin *C.clap_plugin_t
}

// NewLatency wraps ptr if non-nil.
func NewLatency(ptr, plugin unsafe.Pointer) *Latency {
	if ptr == nil {
		return nil
	}
	return &Latency{ext: (*C.clap_plugin_latency_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// Get returns the plugin's reported latency in samples.
func (l *Latency) Get() uint32 {
	if l == nil {
		return 0
	}
	return uint32(C.clapval_latency_get(l.ext, l.plugin))
}

// Tail wraps clap.tail.
type Tail struct {
	ext    *C.clap_plugin_tail_t
	plugin *C.clap_plugin_t
}

// NewTail wraps ptr if non-nil.
func NewTail(ptr, plugin unsafe.Pointer) *Tail {
	if ptr == nil {
		return nil
	}
	return &Tail{ext: (*C.clap_plugin_tail_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// Get returns the plugin's reported tail length in samples.
func (t *Tail) Get() uint32 {
	if t == nil {
		return 0
	}
	return uint32(C.clapval_tail_get(t.ext, t.plugin))
}

// Render wraps clap.render.
type Render struct {
	ext    *C.clap_plugin_render_t
	plugin *C.clap_plugin_t
}

// NewRender wraps ptr if non-nil.
func NewRender(ptr, plugin unsafe.Pointer) *Render {
	if ptr == nil {
		return nil
	}
	return &Render{ext: (*C.clap_plugin_render_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// HasHardRealtimeRequirement reports whether the plugin requires a
// realtime rendering mode.
func (r *Render) HasHardRealtimeRequirement() bool {
	if r == nil {
		return false
	}
	return bool(C.clapval_render_has_hard_rt(r.ext, r.plugin))
}

// Set switches the plugin's rendering mode.
func (r *Render) Set(mode int32) bool {
	if r == nil {
		return false
	}
	return bool(C.clapval_render_set(r.ext, r.plugin, C.int32_t(mode)))
}
