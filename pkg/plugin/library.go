// Package plugin loads a CLAP plugin bundle via dlopen, resolves its
// entry point, enumerates the factories it advertises, and constructs
// instances against a caller-supplied Host.
package plugin

/*
#include "../../include/clap/include/clap/clap.h"
#include <dlfcn.h>
#include <stdlib.h>

static void *clapval_dlopen(const char *path) {
   return dlopen(path, RTLD_NOW | RTLD_LOCAL);
}

static void *clapval_dlsym_entry(void *handle) {
   return dlsym(handle, "clap_entry");
}

static bool clap_plugin_entry_init(clap_plugin_entry_t *entry, const char *path) {
   if (!entry || !entry->init) return false;
   return entry->init(path);
}

static void clap_plugin_entry_deinit(clap_plugin_entry_t *entry) {
   if (entry && entry->deinit) entry->deinit();
}

static const void *clap_plugin_entry_get_factory(clap_plugin_entry_t *entry, const char *id) {
   if (!entry || !entry->get_factory) return NULL;
   return entry->get_factory(id);
}

static uint32_t clap_plugin_factory_get_plugin_count(const clap_plugin_factory_t *factory) {
   if (!factory || !factory->get_plugin_count) return 0;
   return factory->get_plugin_count(factory);
}

static const clap_plugin_descriptor_t *clap_plugin_factory_get_plugin_descriptor(const clap_plugin_factory_t *factory, uint32_t index) {
   if (!factory || !factory->get_plugin_descriptor) return NULL;
   return factory->get_plugin_descriptor(factory, index);
}

static const clap_plugin_t *clap_plugin_factory_create_plugin(const clap_plugin_factory_t *factory, const clap_host_t *host, const char *plugin_id) {
   if (!factory || !factory->create_plugin) return NULL;
   return factory->create_plugin(factory, host, plugin_id);
}

static const char *clap_feature_at(const char *const *features, int i) {
   if (!features) return NULL;
   return features[i];
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/clapval/clapval/pkg/result"
)

// Descriptor mirrors clap_plugin_descriptor_t's advertised fields.
type Descriptor struct {
	ID          string
	Name        string
	Vendor      string
	URL         string
	Version     string
	Description string
	Features    []string
}

// Library is one dlopen'd plugin bundle. Close releases the dlopen handle
// and calls the entry point's deinit.
type Library struct {
	path    string
	handle  unsafe.Pointer
	entry   *C.clap_plugin_entry_t
	factory *C.clap_plugin_factory_t
}

// Load opens the shared library at path, resolves its clap_entry symbol,
// initializes it, and fetches the plugin factory.
func Load(path string) (*Library, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	h := C.clapval_dlopen(cPath)
	if h == nil {
		return nil, result.Wrap(result.KindSetup, fmt.Sprintf("dlopen %s failed", path), fmt.Errorf("%s", C.GoString(C.dlerror())))
	}

	sym := C.clapval_dlsym_entry(h)
	if sym == nil {
		C.dlclose(h)
		return nil, result.Wrap(result.KindSetup, fmt.Sprintf("%s does not export clap_entry", path), nil)
	}
	entry := (*C.clap_plugin_entry_t)(sym)

	if !bool(C.clap_plugin_entry_init(entry, cPath)) {
		C.dlclose(h)
		return nil, result.Wrap(result.KindSetup, "clap_entry.init returned false", nil)
	}

	factoryIDC := C.CString(C.CLAP_PLUGIN_FACTORY_ID)
	defer C.free(unsafe.Pointer(factoryIDC))
	factoryPtr := C.clap_plugin_entry_get_factory(entry, factoryIDC)
	if factoryPtr == nil {
		C.clap_plugin_entry_deinit(entry)
		C.dlclose(h)
		return nil, result.Wrap(result.KindSetup, "plugin does not advertise clap.plugin-factory", nil)
	}

	return &Library{
		path:    path,
		handle:  h,
		entry:   entry,
		factory: (*C.clap_plugin_factory_t)(factoryPtr),
	}, nil
}

// Close tears down the entry point and closes the dlopen handle. Must be
// called exactly once per successful Load.
func (l *Library) Close() {
	if l.entry != nil {
		C.clap_plugin_entry_deinit(l.entry)
	}
	if l.handle != nil {
		C.dlclose(l.handle)
	}
}

// Descriptors enumerates every plugin this bundle advertises.
func (l *Library) Descriptors() []Descriptor {
	count := uint32(C.clap_plugin_factory_get_plugin_count(l.factory))
	out := make([]Descriptor, 0, count)
	for i := uint32(0); i < count; i++ {
		d := C.clap_plugin_factory_get_plugin_descriptor(l.factory, C.uint32_t(i))
		if d == nil {
			continue
		}
		out = append(out, descriptorFromC(d))
	}
	return out
}

func descriptorFromC(d *C.clap_plugin_descriptor_t) Descriptor {
	desc := Descriptor{
		ID:      cStringOrEmpty(d.id),
		Name:    cStringOrEmpty(d.name),
		Vendor:  cStringOrEmpty(d.vendor),
		URL:     cStringOrEmpty(d.url),
		Version: cStringOrEmpty(d.version),
	}
	if d.description != nil {
		desc.Description = C.GoString(d.description)
	}
	for i := 0; ; i++ {
		feature := C.clap_feature_at(d.features, C.int(i))
		if feature == nil {
			break
		}
		desc.Features = append(desc.Features, C.GoString(feature))
	}
	return desc
}

func cStringOrEmpty(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// createRaw invokes the factory's create_plugin for pluginID against the
// given clap_host_t*, returning the raw clap_plugin_t*. Used by Instance's
// constructor; exposed at this level so Library stays the single owner of
// the factory pointer's lifetime.
func (l *Library) createRaw(pluginID string, hostPtr unsafe.Pointer) (*C.clap_plugin_t, error) {
	cID := C.CString(pluginID)
	defer C.free(unsafe.Pointer(cID))

	raw := C.clap_plugin_factory_create_plugin(l.factory, (*C.clap_host_t)(hostPtr), cID)
	if raw == nil {
		return nil, result.Wrap(result.KindSetup, fmt.Sprintf("factory refused to create plugin id %q", pluginID), nil)
	}
	return (*C.clap_plugin_t)(raw), nil
}
