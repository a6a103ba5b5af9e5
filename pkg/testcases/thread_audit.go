package testcases

import (
	"fmt"

	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/drivertest"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/process"
	"github.com/clapval/clapval/pkg/result"
)

// ThreadAudit runs a handful of ordinary processing blocks with
// randomized input and then inspects the Host's recorded thread
// assertions. Per invariant 8, a run that never drives the plugin into
// calling back on the wrong logical thread must report a clean audit: any
// recorded Violation fails the test, naming the offending call and
// thread.
func ThreadAudit(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NameThreadAudit, func(sess *Session) result.Result {
		inst := sess.Instance

		cfg := audio.DefaultStereoInOut()
		buf, err := cfg.CreateBuffers(BufferSize)
		if err != nil {
			return result.FromError(pluginID, NameThreadAudit, err)
		}
		data := process.New(buf, process.Config{SampleRate: 48000, Tempo: 120, TimeSigNum: 4, TimeSigDenom: 4})

		setup := func(d *process.Data, k int) error {
			d.Buffers.Randomize(sess.PRNG)
			return nil
		}

		if err := drivertest.Run(inst, data, BufferSize, 8, 48000, setup, nil); err != nil {
			return result.FromError(pluginID, NameThreadAudit, err)
		}

		violations := sess.Host.ThreadSafetyCheck()
		if len(violations) > 0 {
			return result.Failed(pluginID, NameThreadAudit,
				fmt.Sprintf("%d thread-safety violation(s); first: %s", len(violations), violations[0]))
		}

		return result.Success(pluginID, NameThreadAudit)
	})
}
