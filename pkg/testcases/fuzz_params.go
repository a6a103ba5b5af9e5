package testcases

import (
	"fmt"

	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/drivertest"
	"github.com/clapval/clapval/pkg/fuzz"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/process"
	"github.com/clapval/clapval/pkg/result"
)

// RandomFuzzParams builds FuzzNumPermutations parameter permutations and,
// for each, runs FuzzRunsPerPermutation blocks of BufferSize samples with
// the permutation's values injected as ParamValue events at time zero,
// randomized input audio, and overlaid random note events. The property
// under test is absence of crash, hang, or thread-safety violation — any
// non-Error process() status is acceptable.
func RandomFuzzParams(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NameRandomFuzzParams, func(sess *Session) result.Result {
		inst := sess.Instance
		paramsPtr, ok := inst.GetExtension(clap.ExtParams)
		if !ok {
			return result.Skipped(pluginID, NameRandomFuzzParams, "clap.params unsupported")
		}
		params := ext.NewParams(paramsPtr, inst.RawPtr())

		count := params.Count()
		if count == 0 {
			return result.Skipped(pluginID, NameRandomFuzzParams, "plugin declares zero parameters")
		}
		infos := make([]ext.ParamInfo, 0, count)
		for i := 0; i < count; i++ {
			if info, ok := params.Info(i); ok {
				infos = append(infos, info)
			}
		}

		cfg := audio.DefaultStereoInOut()
		permutations := fuzz.BuildPermutations(infos, FuzzNumPermutations, sess.PRNG)

		for permIdx, perm := range permutations {
			buf, err := cfg.CreateBuffers(BufferSize)
			if err != nil {
				return result.FromError(pluginID, NameRandomFuzzParams, err)
			}
			data := process.New(buf, process.Config{SampleRate: 48000, Tempo: 120, TimeSigNum: 4, TimeSigDenom: 4})

			setup := func(d *process.Data, k int) error {
				if k == 0 {
					for _, ev := range perm.ParamValueEvents() {
						d.Input.Push(ev)
					}
				}
				for _, ev := range fuzz.RandomNoteEvents(BufferSize, sess.PRNG) {
					d.Input.Push(ev)
				}
				d.Buffers.Randomize(sess.PRNG)
				return nil
			}

			err = drivertest.Run(inst, data, BufferSize, FuzzRunsPerPermutation, 48000, setup, nil)
			if err != nil {
				return result.FromError(pluginID, NameRandomFuzzParams,
					fmt.Errorf("permutation %d: %w", permIdx, err))
			}
		}

		if violations := sess.Host.ThreadSafetyCheck(); len(violations) > 0 {
			return result.Failed(pluginID, NameRandomFuzzParams,
				fmt.Sprintf("%d thread-safety violation(s); first: %s", len(violations), violations[0]))
		}

		return result.Success(pluginID, NameRandomFuzzParams)
	})
}
