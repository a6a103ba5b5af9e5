package testcases

import (
	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/process"
	"github.com/clapval/clapval/pkg/result"
)

// LifecycleLegality drives every illegal transition the state machine
// forbids and asserts each is refused without the driver calling into the
// plugin, per invariant 4: "any illegal transition attempted on
// PluginInstance returns a lifecycle error without calling into the
// plugin."
func LifecycleLegality(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NameLifecycleLegality, func(sess *Session) result.Result {
		inst := sess.Instance

		// process() before activation.
		cfg := audio.DefaultStereoInOut()
		buf, err := cfg.CreateBuffers(BufferSize)
		if err != nil {
			return result.FromError(pluginID, NameLifecycleLegality, err)
		}
		data := process.New(buf, process.Config{SampleRate: 48000, Tempo: 120, TimeSigNum: 4, TimeSigDenom: 4})
		if _, err := inst.Process(data); err == nil {
			return result.Failed(pluginID, NameLifecycleLegality, "process() succeeded before activate()")
		}

		// stop_processing() before start_processing().
		if err := inst.StopProcessing(); err == nil {
			return result.Failed(pluginID, NameLifecycleLegality, "stop_processing() succeeded before start_processing()")
		}

		// deactivate() before activate().
		if err := inst.Deactivate(); err == nil {
			return result.Failed(pluginID, NameLifecycleLegality, "deactivate() succeeded before activate()")
		}

		// Legal path: activate, start, process, stop, deactivate.
		if err := inst.Activate(48000, uint32(BufferSize), uint32(BufferSize)); err != nil {
			return result.FromError(pluginID, NameLifecycleLegality, err)
		}
		// activate() again while already Activated is illegal.
		if err := inst.Activate(48000, uint32(BufferSize), uint32(BufferSize)); err == nil {
			return result.Failed(pluginID, NameLifecycleLegality, "activate() succeeded while already activated")
		}
		if err := inst.StartProcessing(); err != nil {
			return result.FromError(pluginID, NameLifecycleLegality, err)
		}
		if _, err := inst.Process(data); err != nil {
			return result.FromError(pluginID, NameLifecycleLegality, err)
		}
		if err := inst.StopProcessing(); err != nil {
			return result.FromError(pluginID, NameLifecycleLegality, err)
		}
		if err := inst.Deactivate(); err != nil {
			return result.FromError(pluginID, NameLifecycleLegality, err)
		}

		return result.Success(pluginID, NameLifecycleLegality)
	})
}
