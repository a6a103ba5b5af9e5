// Package host simulates the host side of the plugin<->host interface: a
// Host instance answers a plugin's get_extension and callback requests,
// records which logical thread invoked each entry point, and reports
// thread-safety violations accumulated since instance creation.
package host

import (
	"fmt"
	"runtime/cgo"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/clapval/clapval/pkg/clap"
)

// Thread is a logical thread role, independent of OS thread identity. The
// driver sets this immediately before every call it makes into the
// plugin; the thread-check extension answers from this value rather than
// from any OS-level thread identifier, since a single physical goroutine
// plays every role across a test run.
type Thread int32

const (
	ThreadNone Thread = iota
	ThreadMain
	ThreadInit
	ThreadAudio
)

func (t Thread) String() string {
	switch t {
	case ThreadMain:
		return "main"
	case ThreadInit:
		return "init"
	case ThreadAudio:
		return "audio"
	default:
		return "none"
	}
}

// Violation records one thread-safety audit finding: a call observed on a
// thread the ABI forbids for it.
type Violation struct {
	Call     string
	Expected Thread
	Actual   Thread
}

func (v Violation) String() string {
	return fmt.Sprintf("%s called on %s thread, expected %s", v.Call, v.Actual, v.Expected)
}

// RescanEvent records a plugin->host rescan/changed/mark-dirty request,
// used by tests that assert a plugin announced a change through the right
// extension.
type RescanEvent struct {
	Extension string
	Flags     uint32
}

// Host is the host half of one plugin instance's lifetime. It is not
// safe to share across plugin instances; PluginInstance owns exactly one.
type Host struct {
	PluginID string
	Log      *log.Logger

	mu         sync.Mutex
	thread     Thread
	violations []Violation
	rescans    []RescanEvent
	callbacks  []func()

	restartRequested  bool
	processRequested  bool
	callbackRequested bool

	handle cgo.Handle
}

// New constructs a Host for the named plugin. The returned Host must be
// closed with Close once the plugin instance is destroyed, to release its
// cgo.Handle.
func New(pluginID string, logger *log.Logger) *Host {
	h := &Host{PluginID: pluginID, Log: logger, thread: ThreadNone}
	h.handle = cgo.NewHandle(h)
	return h
}

// Close releases the cgo.Handle backing this Host. Must be called exactly
// once, after the plugin has been destroyed.
func (h *Host) Close() {
	h.handle.Delete()
}

// Handle returns the opaque value to store in a clap_host_t's host_data
// field.
func (h *Host) Handle() cgo.Handle {
	return h.handle
}

// SetThread designates the logical thread the driver is about to call the
// plugin on. Must be called immediately before every call into the
// plugin, and is itself the only place this Host's notion of "current
// thread" changes.
func (h *Host) SetThread(t Thread) {
	h.mu.Lock()
	h.thread = t
	h.mu.Unlock()
}

// CurrentThread returns the logical thread currently designated active.
func (h *Host) CurrentThread() Thread {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.thread
}

// recordCall checks the current thread designation against an expected
// one and records a violation if they differ. A call expected on
// ThreadMain is also accepted on ThreadInit, which counts as main here
// just as it does in IsMainThread.
func (h *Host) recordCall(call string, expected Thread) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	actual := h.thread
	ok := actual == expected || (expected == ThreadMain && actual == ThreadInit)
	if !ok {
		h.violations = append(h.violations, Violation{Call: call, Expected: expected, Actual: actual})
	}
	return ok
}

// IsMainThread answers clap.thread-check's is_main_thread() from the
// current logical-thread designation.
func (h *Host) IsMainThread() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.thread == ThreadMain || h.thread == ThreadInit
}

// IsAudioThread answers clap.thread-check's is_audio_thread().
func (h *Host) IsAudioThread() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.thread == ThreadAudio
}

// RequestRestart records a plugin's request_restart() call.
func (h *Host) RequestRestart() {
	h.recordCall("request_restart", ThreadMain)
	h.mu.Lock()
	h.restartRequested = true
	h.mu.Unlock()
}

// RequestProcess records a plugin's request_process() call.
func (h *Host) RequestProcess() {
	h.mu.Lock()
	h.processRequested = true
	h.mu.Unlock()
}

// RequestCallback records a plugin's request_callback() call and enqueues
// nothing itself. The request is only visible through PendingCallback();
// the driver in pkg/drivertest does not consult it, so the plugin's
// on_main_thread() is never invoked in response.
func (h *Host) RequestCallback() {
	h.mu.Lock()
	h.callbackRequested = true
	h.mu.Unlock()
}

// PendingCallback reports and clears a pending request_callback(). It is
// independent of the queue HandleCallbacksOnce drains.
func (h *Host) PendingCallback() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.callbackRequested
	h.callbackRequested = false
	return pending
}

// Enqueue adds deferred work the driver will run from HandleCallbacksOnce
// or HandleCallbacksBlocking. Safe to call from any thread: the callback
// queue is multi-producer/single-consumer by construction (only the
// driver ever drains it).
func (h *Host) Enqueue(fn func()) {
	h.mu.Lock()
	h.callbacks = append(h.callbacks, fn)
	h.mu.Unlock()
}

// HandleCallbacksOnce drains and runs every callback queued so far,
// without blocking for more to arrive.
func (h *Host) HandleCallbacksOnce() {
	h.mu.Lock()
	pending := h.callbacks
	h.callbacks = nil
	h.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// HandleCallbacksBlocking drains callbacks repeatedly until predicate
// returns true, used when the main thread must wait for a plugin-initiated
// request to resolve. Since this simulator is single-goroutine-driven,
// "blocking" here means "run until satisfied"; there is nothing to block
// on beyond the callbacks already enqueued by the current call stack.
func (h *Host) HandleCallbacksBlocking(predicate func() bool) {
	for !predicate() {
		h.mu.Lock()
		pending := h.callbacks
		h.callbacks = nil
		h.mu.Unlock()
		if len(pending) == 0 {
			return
		}
		for _, fn := range pending {
			fn()
		}
	}
}

func (h *Host) recordRescan(ext string, flags uint32) {
	h.mu.Lock()
	h.rescans = append(h.rescans, RescanEvent{Extension: ext, Flags: flags})
	h.mu.Unlock()
}

// Rescans returns every rescan/changed/mark-dirty event recorded so far.
func (h *Host) Rescans() []RescanEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]RescanEvent, len(h.rescans))
	copy(out, h.rescans)
	return out
}

// ThreadSafetyCheck returns the cumulative thread-safety audit: every
// plugin->host callback observed on a forbidden thread. A nil return
// means the audit is clean: every recorded call happened on its required
// thread.
func (h *Host) ThreadSafetyCheck() []Violation {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.violations) == 0 {
		return nil
	}
	out := make([]Violation, len(h.violations))
	copy(out, h.violations)
	return out
}

// recordThreadAssertion lets host-provided extension shims that must run
// on a specific logical thread check and record violations uniformly; the
// callers are the //export shims in cgo.go.
func (h *Host) recordThreadAssertion(call string, expected Thread) {
	h.recordCall(call, expected)
}

var extensionNames = map[string]bool{
	clap.ExtLog:         true,
	clap.ExtThreadCheck: true,
	clap.ExtParams:      true,
	clap.ExtState:       true,
	clap.ExtAudioPorts:  true,
	clap.ExtNotePorts:   true,
	clap.ExtLatency:     true,
	clap.ExtTail:        true,
}

// SupportsExtension reports whether this host implementation publishes
// the named extension at all (independent of whether the plugin ever
// queries it).
func SupportsExtension(id string) bool {
	return extensionNames[id]
}
