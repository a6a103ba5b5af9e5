// Package ext wraps a plugin's optional capability interfaces in typed
// façades: each constructor returns nil when the extension pointer is nil,
// and each method marshals ABI structures into Go values. Vtable
// completeness is not checked at lookup: a call through a missing
// function slot returns the zero value or false instead of calling the
// plugin.
package ext

/*
#include "../../../include/clap/include/clap/clap.h"
#include <stdlib.h>
#include <string.h>

static uint32_t clapval_params_count(const clap_plugin_params_t *ext, const clap_plugin_t *p) {
   if (!ext || !ext->count) return 0;
   return ext->count(p);
}
static bool clapval_params_get_info(const clap_plugin_params_t *ext, const clap_plugin_t *p, uint32_t index, clap_param_info_t *out) {
   if (!ext || !ext->get_info) return false;
   return ext->get_info(p, index, out);
}
static bool clapval_params_get_value(const clap_plugin_params_t *ext, const clap_plugin_t *p, clap_id id, double *out) {
   if (!ext || !ext->get_value) return false;
   return ext->get_value(p, id, out);
}
static bool clapval_params_value_to_text(const clap_plugin_params_t *ext, const clap_plugin_t *p, clap_id id, double value, char *buf, uint32_t cap) {
   if (!ext || !ext->value_to_text) return false;
   return ext->value_to_text(p, id, value, buf, cap);
}
static bool clapval_params_text_to_value(const clap_plugin_params_t *ext, const clap_plugin_t *p, clap_id id, const char *text, double *out) {
   if (!ext || !ext->text_to_value) return false;
   return ext->text_to_value(p, id, text, out);
}
*/
import "C"

import (
	"unsafe"

	"github.com/clapval/clapval/pkg/clap"
)

// ParamInfo is the Go view of clap_param_info_t.
type ParamInfo struct {
	ID      uint32
	Name    string
	Module  string
	Min     float64
	Max     float64
	Default float64
	Flags   uint32
}

// Stepped reports the CLAP_PARAM_IS_STEPPED flag.
func (p ParamInfo) Stepped() bool { return p.Flags&clap.ParamIsStepped != 0 }

// Params is the host-side façade over clap.params. A zero-value Params
// (nil ext) reports itself unsupported rather than panicking.
type Params struct {
	ext    *C.clap_plugin_params_t
	plugin *C.clap_plugin_t
}

// NewParams wraps ptr (from Instance.GetExtension(clap.ExtParams)) if
// non-nil.
func NewParams(ptr unsafe.Pointer, plugin unsafe.Pointer) *Params {
	if ptr == nil {
		return nil
	}
	return &Params{ext: (*C.clap_plugin_params_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// Count returns the plugin's declared parameter count.
func (p *Params) Count() int {
	if p == nil {
		return 0
	}
	return int(C.clapval_params_count(p.ext, p.plugin))
}

// Info returns the descriptor for the parameter at index.
func (p *Params) Info(index int) (ParamInfo, bool) {
	if p == nil {
		return ParamInfo{}, false
	}
	var raw C.clap_param_info_t
	if !bool(C.clapval_params_get_info(p.ext, p.plugin, C.uint32_t(index), &raw)) {
		return ParamInfo{}, false
	}
	return ParamInfo{
		ID:      uint32(raw.id),
		Name:    C.GoString((*C.char)(unsafe.Pointer(&raw.name[0]))),
		Module:  C.GoString((*C.char)(unsafe.Pointer(&raw.module[0]))),
		Min:     float64(raw.min_value),
		Max:     float64(raw.max_value),
		Default: float64(raw.default_value),
		Flags:   uint32(raw.flags),
	}, true
}

// Get reads a parameter's current value.
func (p *Params) Get(id uint32) (float64, bool) {
	if p == nil {
		return 0, false
	}
	var v C.double
	if !bool(C.clapval_params_get_value(p.ext, p.plugin, C.clap_id(id), &v)) {
		return 0, false
	}
	return float64(v), true
}

const textBufCap = 256

// ValueToText converts a value into display text. The second return is
// false if the plugin has no value_to_text or its call returns false for
// this parameter and value; checking that support is all-or-nothing
// across the whole parameter set is left to the caller.
func (p *Params) ValueToText(id uint32, value float64) (string, bool) {
	if p == nil {
		return "", false
	}
	buf := make([]byte, textBufCap)
	ok := bool(C.clapval_params_value_to_text(p.ext, p.plugin, C.clap_id(id), C.double(value),
		(*C.char)(unsafe.Pointer(&buf[0])), C.uint32_t(textBufCap)))
	if !ok {
		return "", false
	}
	return C.GoString((*C.char)(unsafe.Pointer(&buf[0]))), true
}

// TextToValue parses display text back into a value.
func (p *Params) TextToValue(id uint32, text string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))
	var v C.double
	ok := bool(C.clapval_params_text_to_value(p.ext, p.plugin, C.clap_id(id), cText, &v))
	if !ok {
		return 0, false
	}
	return float64(v), true
}
