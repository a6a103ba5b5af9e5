package testcases

import (
	"bytes"
	"fmt"

	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/result"
)

// StateRoundTrip saves the plugin's state into an in-memory byte stream
// immediately after init, then loads that same stream back, asserting
// both save and load report success and that a second save produces byte-
// identical output — a conforming plugin's state must be fully determined
// by what was just loaded into it.
func StateRoundTrip(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NameStateRoundTrip, func(sess *Session) result.Result {
		inst := sess.Instance
		statePtr, ok := inst.GetExtension(clap.ExtState)
		if !ok {
			return result.Skipped(pluginID, NameStateRoundTrip, "clap.state unsupported")
		}
		state := ext.NewState(statePtr, inst.RawPtr())

		first, ok := state.Save()
		if !ok {
			return result.Failed(pluginID, NameStateRoundTrip, "save() returned false")
		}

		if ok := state.Load(first); !ok {
			return result.Failed(pluginID, NameStateRoundTrip, "load() returned false for a state this plugin just saved")
		}

		second, ok := state.Save()
		if !ok {
			return result.Failed(pluginID, NameStateRoundTrip, "save() returned false on the second pass")
		}

		if !bytes.Equal(first, second) {
			return result.Failed(pluginID, NameStateRoundTrip,
				fmt.Sprintf("state diverged across a save/load/save round trip: %d bytes vs %d bytes", len(first), len(second)))
		}

		return result.Success(pluginID, NameStateRoundTrip)
	})
}
