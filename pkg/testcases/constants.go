// Package testcases implements the named conformance checks the runner
// dispatches by name, shared verbatim between the in-process runner and
// the run-single child-process entry point.
package testcases

// Constants carried over unchanged from the original tool so a reported
// failure's parameters are reproducible against it.
const (
	// FuzzNumPermutations is the number of parameter permutations
	// random-fuzz-params builds.
	FuzzNumPermutations = 50
	// FuzzRunsPerPermutation is the number of BufferSize-sample blocks run
	// per permutation.
	FuzzRunsPerPermutation = 5
	// IncorrectNamespaceID is the rogue namespace ID wrong-namespace-set-params
	// uses to verify a plugin ignores events it does not own.
	IncorrectNamespaceID = 0xb33f
)

// BufferSize is the block size every processing-driven test case
// activates the plugin with and processes blocks of. Defaults to 512
// samples but is overridable once at startup via SetBlockSize, from the
// config file's block_size.
var BufferSize = 512

// SetBlockSize overrides BufferSize. Must be called before any test case
// runs; not safe to call concurrently with Run.
func SetBlockSize(n int) {
	if n > 0 {
		BufferSize = n
	}
}

// Names of the built-in test cases, as reported in Result.TestName and
// accepted by run-single --test.
const (
	NameLifecycleLegality    = "lifecycle-legality"
	NameThreadAudit          = "thread-audit"
	NameConvertParams        = "convert-params"
	NameRandomFuzzParams     = "random-fuzz-params"
	NameWrongNamespaceParams = "wrong-namespace-set-params"
	NameStateRoundTrip       = "state-roundtrip"
	NamePortConfig           = "port-config"
)

// All lists every built-in test case name, in the order the runner
// executes them for a given plugin.
var All = []string{
	NameLifecycleLegality,
	NamePortConfig,
	NameConvertParams,
	NameWrongNamespaceParams,
	NameRandomFuzzParams,
	NameStateRoundTrip,
	NameThreadAudit,
}
