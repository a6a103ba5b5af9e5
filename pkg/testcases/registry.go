package testcases

import (
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/result"
)

// Func is the shape of a single named test case: given a loaded library
// and the target plugin's ID, it returns exactly one structured result.
type Func func(lib *plugin.Library, pluginID string) result.Result

// Registry maps a test case name to its implementation. Shared verbatim
// between the in-process runner and the run-single child entry point so
// the two modes can never drift apart on what a test name means.
var Registry = map[string]Func{
	NameLifecycleLegality:    LifecycleLegality,
	NamePortConfig:           PortConfig,
	NameConvertParams:        ConvertParams,
	NameWrongNamespaceParams: WrongNamespaceSetParams,
	NameRandomFuzzParams:     RandomFuzzParams,
	NameStateRoundTrip:       StateRoundTrip,
	NameThreadAudit:          ThreadAudit,
}

// Lookup returns the named test case, or false if the name is unknown.
func Lookup(name string) (Func, bool) {
	f, ok := Registry[name]
	return f, ok
}
