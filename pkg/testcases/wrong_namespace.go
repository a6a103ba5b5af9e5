package testcases

import (
	"fmt"

	"github.com/clapval/clapval/pkg/audio"
	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/drivertest"
	"github.com/clapval/clapval/pkg/event"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/process"
	"github.com/clapval/clapval/pkg/result"
)

// WrongNamespaceSetParams verifies namespace isolation (invariant 6): a
// plugin must ignore ParamValue events carried in a namespace it does not
// recognize. It captures every parameter's value, runs one block whose
// input queue sets every parameter via IncorrectNamespaceID, and asserts
// every value is unchanged afterward.
func WrongNamespaceSetParams(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NameWrongNamespaceParams, func(sess *Session) result.Result {
		inst := sess.Instance
		paramsPtr, ok := inst.GetExtension(clap.ExtParams)
		if !ok {
			return result.Skipped(pluginID, NameWrongNamespaceParams, "clap.params unsupported")
		}
		params := ext.NewParams(paramsPtr, inst.RawPtr())

		count := params.Count()
		if count == 0 {
			return result.Skipped(pluginID, NameWrongNamespaceParams, "plugin declares zero parameters")
		}

		type paramRef struct {
			id    uint32
			name  string
			value float64
		}
		initial := make([]paramRef, 0, count)
		for i := 0; i < count; i++ {
			info, ok := params.Info(i)
			if !ok {
				continue
			}
			v, ok := params.Get(info.ID)
			if !ok {
				continue
			}
			initial = append(initial, paramRef{id: info.ID, name: info.Name, value: v})
		}
		if len(initial) == 0 {
			return result.Skipped(pluginID, NameWrongNamespaceParams, "get_value unsupported for every parameter")
		}

		cfg := audio.DefaultStereoInOut()
		buf, err := cfg.CreateBuffers(BufferSize)
		if err != nil {
			return result.FromError(pluginID, NameWrongNamespaceParams, err)
		}
		data := process.New(buf, process.Config{SampleRate: 48000, Tempo: 120, TimeSigNum: 4, TimeSigDenom: 4})

		setup := func(d *process.Data, k int) error {
			for _, p := range initial {
				ev := event.ParamValue(0, IncorrectNamespaceID, p.id, p.value+1)
				d.Input.Push(ev)
			}
			return nil
		}

		if err := drivertest.Run(inst, data, BufferSize, 1, 48000, setup, nil); err != nil {
			return result.FromError(pluginID, NameWrongNamespaceParams, err)
		}

		for _, p := range initial {
			final, ok := params.Get(p.id)
			if !ok {
				continue
			}
			if final != p.value {
				return result.Failed(pluginID, NameWrongNamespaceParams,
					fmt.Sprintf("param %s (id=%d) changed from %v to %v after a ParamValue event in namespace 0x%x",
						p.name, p.id, p.value, final, IncorrectNamespaceID))
			}
		}

		if violations := sess.Host.ThreadSafetyCheck(); len(violations) > 0 {
			return result.Failed(pluginID, NameWrongNamespaceParams,
				fmt.Sprintf("%d thread-safety violation(s); first: %s", len(violations), violations[0]))
		}

		return result.Success(pluginID, NameWrongNamespaceParams)
	})
}
