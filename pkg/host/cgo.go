package host

/*
#include "../../include/clap/include/clap/clap.h"
#include <stdlib.h>
#include <string.h>

extern const void *goHostGetExtension(const clap_host_t *host, const char *extension_id);
extern void goHostRequestRestart(const clap_host_t *host);
extern void goHostRequestProcess(const clap_host_t *host);
extern void goHostRequestCallback(const clap_host_t *host);

extern void goHostLog(const clap_host_t *host, int32_t severity, const char *msg);
extern bool goHostIsMainThread(const clap_host_t *host);
extern bool goHostIsAudioThread(const clap_host_t *host);
extern void goHostParamsRescan(const clap_host_t *host, uint32_t flags);
extern void goHostParamsClear(const clap_host_t *host, clap_id param_id, uint32_t flags);
extern void goHostParamsRequestFlush(const clap_host_t *host);
extern bool goHostAudioPortsIsRescanFlagSupported(const clap_host_t *host, uint32_t flag);
extern void goHostAudioPortsRescan(const clap_host_t *host, uint32_t flags);
extern uint32_t goHostNotePortsSupportedDialects(const clap_host_t *host);
extern void goHostNotePortsRescan(const clap_host_t *host, uint32_t flags);
extern void goHostStateMarkDirty(const clap_host_t *host);
extern void goHostLatencyChanged(const clap_host_t *host);
extern void goHostTailChanged(const clap_host_t *host);

static clap_host_log_t clapval_log_ext = { .log = goHostLog };
static clap_host_thread_check_t clapval_thread_check_ext = {
   .is_main_thread = goHostIsMainThread,
   .is_audio_thread = goHostIsAudioThread,
};
static clap_host_params_t clapval_params_ext = {
   .rescan = goHostParamsRescan,
   .clear = goHostParamsClear,
   .request_flush = goHostParamsRequestFlush,
};
static clap_host_audio_ports_t clapval_audio_ports_ext = {
   .is_rescan_flag_supported = goHostAudioPortsIsRescanFlagSupported,
   .rescan = goHostAudioPortsRescan,
};
static clap_host_note_ports_t clapval_note_ports_ext = {
   .supported_dialects = goHostNotePortsSupportedDialects,
   .rescan = goHostNotePortsRescan,
};
static clap_host_state_t clapval_state_ext = { .mark_dirty = goHostStateMarkDirty };
static clap_host_latency_t clapval_latency_ext = { .changed = goHostLatencyChanged };
static clap_host_tail_t clapval_tail_ext = { .changed = goHostTailChanged };

static const void *clapval_dispatch_get_extension(const char *extension_id) {
   if (strcmp(extension_id, "clap.log") == 0) return &clapval_log_ext;
   if (strcmp(extension_id, "clap.thread-check") == 0) return &clapval_thread_check_ext;
   if (strcmp(extension_id, "clap.params") == 0) return &clapval_params_ext;
   if (strcmp(extension_id, "clap.audio-ports") == 0) return &clapval_audio_ports_ext;
   if (strcmp(extension_id, "clap.note-ports") == 0) return &clapval_note_ports_ext;
   if (strcmp(extension_id, "clap.state") == 0) return &clapval_state_ext;
   if (strcmp(extension_id, "clap.latency") == 0) return &clapval_latency_ext;
   if (strcmp(extension_id, "clap.tail") == 0) return &clapval_tail_ext;
   return NULL;
}

static clap_host_t *clapval_new_host(void *host_data, const char *name, const char *vendor,
                                     const char *url, const char *version) {
   clap_host_t *h = (clap_host_t *)calloc(1, sizeof(clap_host_t));
   h->clap_version.major = 1;
   h->clap_version.minor = 2;
   h->clap_version.revision = 0;
   h->host_data = host_data;
   h->name = name;
   h->vendor = vendor;
   h->url = url;
   h->version = version;
   h->get_extension = goHostGetExtension;
   h->request_restart = goHostRequestRestart;
   h->request_process = goHostRequestProcess;
   h->request_callback = goHostRequestCallback;
   return h;
}

static void clapval_free_host(clap_host_t *h) {
   free(h);
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/clapval/clapval/pkg/applog"
)

// CHost wraps the C-allocated clap_host_t a plugin instance is given at
// factory.create time. It owns the C allocation and the strings backing
// name/vendor/url/version for the lifetime of the wrapped Host.
type CHost struct {
	ptr     *C.clap_host_t
	cName   *C.char
	cVendor *C.char
	cURL    *C.char
	cVer    *C.char
}

// NewCHost allocates a clap_host_t whose host_data carries h's cgo.Handle,
// and whose get_extension/request_* function pointers are the package's
// shared C-callable shims.
func NewCHost(h *Host, name, vendor, url, version string) *CHost {
	c := &CHost{
		cName:   C.CString(name),
		cVendor: C.CString(vendor),
		cURL:    C.CString(url),
		cVer:    C.CString(version),
	}
	hostData := unsafe.Pointer(uintptr(h.Handle()))
	c.ptr = C.clapval_new_host(hostData, c.cName, c.cVendor, c.cURL, c.cVer)
	return c
}

// Ptr returns the raw clap_host_t* to hand to clap_plugin_factory_t's
// create_plugin.
func (c *CHost) Ptr() unsafe.Pointer {
	return unsafe.Pointer(c.ptr)
}

// Free releases the C allocation backing this host. Call after the
// plugin instance built against it has been destroyed.
func (c *CHost) Free() {
	C.free(unsafe.Pointer(c.cName))
	C.free(unsafe.Pointer(c.cVendor))
	C.free(unsafe.Pointer(c.cURL))
	C.free(unsafe.Pointer(c.cVer))
	C.clapval_free_host(c.ptr)
}

func hostFromData(host *C.clap_host_t) *Host {
	if host == nil || host.host_data == nil {
		return nil
	}
	h := cgo.Handle(uintptr(host.host_data)).Value().(*Host)
	return h
}

//export goHostGetExtension
func goHostGetExtension(host *C.clap_host_t, extensionID *C.char) unsafe.Pointer {
	return unsafe.Pointer(C.clapval_dispatch_get_extension(extensionID))
}

//export goHostRequestRestart
func goHostRequestRestart(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.RequestRestart()
	}
}

//export goHostRequestProcess
func goHostRequestProcess(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.RequestProcess()
	}
}

//export goHostRequestCallback
func goHostRequestCallback(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.RequestCallback()
	}
}

//export goHostLog
func goHostLog(host *C.clap_host_t, severity C.int32_t, msg *C.char) {
	h := hostFromData(host)
	if h == nil {
		return
	}
	h.recordThreadAssertion("log.log", ThreadMain)
	if h.Log != nil {
		applog.LogPluginMessage(h.Log, h.PluginID, int32(severity), C.GoString(msg))
	}
}

//export goHostIsMainThread
func goHostIsMainThread(host *C.clap_host_t) C.bool {
	h := hostFromData(host)
	if h == nil {
		return false
	}
	return C.bool(h.IsMainThread())
}

//export goHostIsAudioThread
func goHostIsAudioThread(host *C.clap_host_t) C.bool {
	h := hostFromData(host)
	if h == nil {
		return false
	}
	return C.bool(h.IsAudioThread())
}

//export goHostParamsRescan
func goHostParamsRescan(host *C.clap_host_t, flags C.uint32_t) {
	if h := hostFromData(host); h != nil {
		h.recordThreadAssertion("params.rescan", ThreadMain)
		h.recordRescan("clap.params.rescan", uint32(flags))
	}
}

//export goHostParamsClear
func goHostParamsClear(host *C.clap_host_t, paramID C.clap_id, flags C.uint32_t) {
	if h := hostFromData(host); h != nil {
		h.recordThreadAssertion("params.clear", ThreadMain)
		h.recordRescan("clap.params.clear", uint32(flags))
	}
}

//export goHostParamsRequestFlush
func goHostParamsRequestFlush(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.Enqueue(func() {})
	}
}

//export goHostAudioPortsIsRescanFlagSupported
func goHostAudioPortsIsRescanFlagSupported(host *C.clap_host_t, flag C.uint32_t) C.bool {
	return C.bool(true)
}

//export goHostAudioPortsRescan
func goHostAudioPortsRescan(host *C.clap_host_t, flags C.uint32_t) {
	if h := hostFromData(host); h != nil {
		h.recordThreadAssertion("audio-ports.rescan", ThreadMain)
		h.recordRescan("clap.audio-ports.rescan", uint32(flags))
	}
}

//export goHostNotePortsSupportedDialects
func goHostNotePortsSupportedDialects(host *C.clap_host_t) C.uint32_t {
	return C.uint32_t(0)
}

//export goHostNotePortsRescan
func goHostNotePortsRescan(host *C.clap_host_t, flags C.uint32_t) {
	if h := hostFromData(host); h != nil {
		h.recordThreadAssertion("note-ports.rescan", ThreadMain)
		h.recordRescan("clap.note-ports.rescan", uint32(flags))
	}
}

//export goHostStateMarkDirty
func goHostStateMarkDirty(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.recordRescan("clap.state.mark_dirty", 0)
	}
}

//export goHostLatencyChanged
func goHostLatencyChanged(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.recordThreadAssertion("latency.changed", ThreadMain)
		h.recordRescan("clap.latency.changed", 0)
	}
}

//export goHostTailChanged
func goHostTailChanged(host *C.clap_host_t) {
	if h := hostFromData(host); h != nil {
		h.recordRescan("clap.tail.changed", 0)
	}
}
