// Package runner dispatches the test matrix across loaded plugin
// bundles, either in-process or one child process per test, and collects
// the structured results the CLI reports.
package runner

import (
	"time"

	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/result"
	"github.com/clapval/clapval/pkg/testcases"
)

// Target is one plugin bundle to validate, as passed on the command line.
type Target struct {
	Path string
	Lib  *plugin.Library
}

// Options controls how the matrix is dispatched.
type Options struct {
	// InProcess runs every test in the current process. Faster, but a
	// crash or hang takes the whole validator down with it (documented
	// tradeoff per the error-handling design).
	InProcess bool
	// Timeout bounds each individual test. Isolated mode enforces it by
	// killing the child; in-process mode enforces it best-effort via a
	// goroutine race, which cannot interrupt a genuinely stuck call.
	Timeout time.Duration
	// Tests restricts the matrix to these test names; nil/empty runs
	// testcases.All.
	Tests []string
	// SelfPath is the validator's own executable, re-invoked with
	// run-single in isolated mode.
	SelfPath string
	// Parallelism bounds how many jobs Matrix runs concurrently. Matrix
	// treats anything less than 1 as 1.
	Parallelism int
	// BlockSize is passed to isolated children as --block-size. Zero
	// passes nothing. In-process runs ignore it and use
	// testcases.BufferSize as already set.
	BlockSize int
}

func (o Options) testNames() []string {
	if len(o.Tests) == 0 {
		return testcases.All
	}
	return o.Tests
}

// Run validates one target across the selected test names, returning one
// Result per test in the order tests were selected.
func Run(target Target, pluginID string, opts Options) []result.Result {
	names := opts.testNames()
	out := make([]result.Result, 0, len(names))
	for _, name := range names {
		if opts.InProcess {
			out = append(out, runInProcess(target, pluginID, name, opts.Timeout))
		} else {
			out = append(out, runIsolated(target, pluginID, name, opts))
		}
	}
	return out
}

// runInProcess invokes the named test case directly, racing it against
// opts timeout (if positive) on a best-effort basis: a goroutine leaked by
// a genuinely hung call is abandoned, not killed, per the documented
// in-process tradeoff.
func runInProcess(target Target, pluginID, name string, timeout time.Duration) result.Result {
	fn, ok := testcases.Lookup(name)
	if !ok {
		return result.Failed(pluginID, name, "unknown test case")
	}
	if timeout <= 0 {
		return fn(target.Lib, pluginID)
	}

	done := make(chan result.Result, 1)
	go func() {
		done <- fn(target.Lib, pluginID)
	}()
	select {
	case r := <-done:
		return r
	case <-time.After(timeout):
		return result.Result{PluginID: pluginID, TestName: name, Status: result.StatusTimedOut,
			Details: "in-process deadline exceeded; worker goroutine abandoned, not reclaimed"}
	}
}
