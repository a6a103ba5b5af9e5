package ext

/*
#include "../../../include/clap/include/clap/clap.h"

static uint32_t clapval_audio_ports_count(const clap_plugin_audio_ports_t *ext, const clap_plugin_t *p, bool is_input) {
   if (!ext || !ext->count) return 0;
   return ext->count(p, is_input);
}
static bool clapval_audio_ports_get(const clap_plugin_audio_ports_t *ext, const clap_plugin_t *p, uint32_t index, bool is_input, clap_audio_port_info_t *out) {
   if (!ext || !ext->get) return false;
   return ext->get(p, index, is_input, out);
}
static uint32_t clapval_note_ports_count(const clap_plugin_note_ports_t *ext, const clap_plugin_t *p, bool is_input) {
   if (!ext || !ext->count) return 0;
   return ext->count(p, is_input);
}
static bool clapval_note_ports_get(const clap_plugin_note_ports_t *ext, const clap_plugin_t *p, uint32_t index, bool is_input, clap_note_port_info_t *out) {
   if (!ext || !ext->get) return false;
   return ext->get(p, index, is_input, out);
}
*/
import "C"

import "unsafe"

// AudioPortInfo is the Go view of clap_audio_port_info_t.
type AudioPortInfo struct {
	ID           uint32
	Name         string
	Flags        uint32
	ChannelCount uint32
	PortType     string
	InPlacePair  uint32
}

// AudioPorts wraps clap.audio-ports.
type AudioPorts struct {
	ext    *C.clap_plugin_audio_ports_t
	plugin *C.clap_plugin_t
}

// NewAudioPorts wraps ptr if non-nil.
func NewAudioPorts(ptr, plugin unsafe.Pointer) *AudioPorts {
	if ptr == nil {
		return nil
	}
	return &AudioPorts{ext: (*C.clap_plugin_audio_ports_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// Count returns the number of ports in the given direction.
func (a *AudioPorts) Count(isInput bool) int {
	if a == nil {
		return 0
	}
	return int(C.clapval_audio_ports_count(a.ext, a.plugin, C.bool(isInput)))
}

// Info returns the descriptor for the port at index.
func (a *AudioPorts) Info(index int, isInput bool) (AudioPortInfo, bool) {
	if a == nil {
		return AudioPortInfo{}, false
	}
	var raw C.clap_audio_port_info_t
	if !bool(C.clapval_audio_ports_get(a.ext, a.plugin, C.uint32_t(index), C.bool(isInput), &raw)) {
		return AudioPortInfo{}, false
	}
	info := AudioPortInfo{
		ID:           uint32(raw.id),
		Name:         C.GoString((*C.char)(unsafe.Pointer(&raw.name[0]))),
		Flags:        uint32(raw.flags),
		ChannelCount: uint32(raw.channel_count),
		InPlacePair:  uint32(raw.in_place_pair),
	}
	if raw.port_type != nil {
		info.PortType = C.GoString(raw.port_type)
	}
	return info, true
}

// NotePortInfo is the Go view of clap_note_port_info_t.
type NotePortInfo struct {
	ID                uint32
	Name              string
	SupportedDialects uint32
	PreferredDialect  uint32
}

// NotePorts wraps clap.note-ports.
type NotePorts struct {
	ext    *C.clap_plugin_note_ports_t
	plugin *C.clap_plugin_t
}

// NewNotePorts wraps ptr if non-nil.
func NewNotePorts(ptr, plugin unsafe.Pointer) *NotePorts {
	if ptr == nil {
		return nil
	}
	return &NotePorts{ext: (*C.clap_plugin_note_ports_t)(ptr), plugin: (*C.clap_plugin_t)(plugin)}
}

// Count returns the number of note ports in the given direction.
func (n *NotePorts) Count(isInput bool) int {
	if n == nil {
		return 0
	}
	return int(C.clapval_note_ports_count(n.ext, n.plugin, C.bool(isInput)))
}

// Info returns the descriptor for the note port at index.
func (n *NotePorts) Info(index int, isInput bool) (NotePortInfo, bool) {
	if n == nil {
		return NotePortInfo{}, false
	}
	var raw C.clap_note_port_info_t
	if !bool(C.clapval_note_ports_get(n.ext, n.plugin, C.uint32_t(index), C.bool(isInput), &raw)) {
		return NotePortInfo{}, false
	}
	return NotePortInfo{
		ID:                uint32(raw.id),
		Name:              C.GoString((*C.char)(unsafe.Pointer(&raw.name[0]))),
		SupportedDialects: uint32(raw.supported_dialects),
		PreferredDialect:  uint32(raw.preferred_dialect),
	}, true
}
