// Package result defines the structured outcome schema every test
// produces, and the shared error vocabulary the rest of the validator
// wraps its failures in.
package result

import (
	"errors"
	"fmt"
)

// Status is the externally-visible outcome of one (plugin, test) run.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
	StatusCrashed  Status = "crashed"
	StatusTimedOut Status = "timed_out"
)

// Result is the per-test structured schema described in the external
// interfaces: stable across in-process and isolated-mode runs, and the
// exact line a run-single child writes to stdout.
type Result struct {
	PluginID string `json:"plugin_id"`
	TestName string `json:"test_name"`
	Status   Status `json:"status"`
	Details  string `json:"details,omitempty"`
}

// Success builds a passing result.
func Success(pluginID, testName string) Result {
	return Result{PluginID: pluginID, TestName: testName, Status: StatusSuccess}
}

// Skipped builds a skipped result with an explanation.
func Skipped(pluginID, testName, reason string) Result {
	return Result{PluginID: pluginID, TestName: testName, Status: StatusSkipped, Details: reason}
}

// Failed builds a failed result with an explanation.
func Failed(pluginID, testName, details string) Result {
	return Result{PluginID: pluginID, TestName: testName, Status: StatusFailed, Details: details}
}

// FromError classifies an error into the matching terminal status,
// following the error-handling design's propagation rule: setup,
// lifecycle, contract, and internal errors surface as this test's status
// without aborting the run.
func FromError(pluginID, testName string, err error) Result {
	if err == nil {
		return Success(pluginID, testName)
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindTimeout:
			return Result{PluginID: pluginID, TestName: testName, Status: StatusTimedOut, Details: e.Error()}
		case KindCrash:
			return Result{PluginID: pluginID, TestName: testName, Status: StatusCrashed, Details: e.Error()}
		}
	}
	return Failed(pluginID, testName, err.Error())
}

// Kind classifies an Error per the error-handling design.
type Kind string

const (
	KindSetup     Kind = "setup"
	KindLifecycle Kind = "lifecycle"
	KindContract  Kind = "contract_violation"
	KindThread    Kind = "thread_violation"
	KindCrash     Kind = "crash"
	KindTimeout   Kind = "timeout"
	KindInternal  Kind = "internal"
)

// Error is the shared wrapped-error vocabulary used across package
// boundaries so callers can classify failures with errors.As without
// string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap builds a *Error of the given kind, wrapping cause (which may be
// nil).
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}
