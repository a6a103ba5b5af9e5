package testcases

import (
	"fmt"

	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/result"
)

// PortConfig enumerates the plugin's advertised audio and note port
// configuration through the audio-ports/note-ports façades. It fails an
// audio port that declares zero channels or names its own ID as its
// in-place pair, and a note port that supports no dialect. A plugin
// without clap.audio-ports skips cleanly rather than failing; note ports
// are checked only when clap.note-ports is present.
func PortConfig(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NamePortConfig, func(sess *Session) result.Result {
		inst := sess.Instance

		audioPortsPtr, ok := inst.GetExtension(clap.ExtAudioPorts)
		if !ok {
			return result.Skipped(pluginID, NamePortConfig, "clap.audio-ports unsupported")
		}
		audioPorts := ext.NewAudioPorts(audioPortsPtr, inst.RawPtr())

		for _, isInput := range []bool{true, false} {
			count := audioPorts.Count(isInput)
			for i := 0; i < count; i++ {
				info, ok := audioPorts.Info(i, isInput)
				if !ok {
					return result.Failed(pluginID, NamePortConfig,
						fmt.Sprintf("audio-ports.get(%d, input=%v) returned false under count=%d", i, isInput, count))
				}
				if info.ChannelCount == 0 {
					return result.Failed(pluginID, NamePortConfig,
						fmt.Sprintf("audio port %d (input=%v) declares zero channels", i, isInput))
				}
				if info.InPlacePair != clap.InvalidID && info.InPlacePair == info.ID {
					return result.Failed(pluginID, NamePortConfig,
						fmt.Sprintf("audio port %d declares itself as its own in-place pair", i))
				}
			}
		}

		if notePortsPtr, ok := inst.GetExtension(clap.ExtNotePorts); ok {
			notePorts := ext.NewNotePorts(notePortsPtr, inst.RawPtr())
			for _, isInput := range []bool{true, false} {
				count := notePorts.Count(isInput)
				for i := 0; i < count; i++ {
					info, ok := notePorts.Info(i, isInput)
					if !ok {
						return result.Failed(pluginID, NamePortConfig,
							fmt.Sprintf("note-ports.get(%d, input=%v) returned false under count=%d", i, isInput, count))
					}
					if info.SupportedDialects == 0 {
						return result.Failed(pluginID, NamePortConfig,
							fmt.Sprintf("note port %d (input=%v) supports no dialect", i, isInput))
					}
				}
			}
		}

		return result.Success(pluginID, NamePortConfig)
	})
}
