package testcases

import (
	"fmt"

	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/fuzz"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/plugin/ext"
	"github.com/clapval/clapval/pkg/result"
)

// ConvertParams runs the value_to_text/text_to_value round-trip law
// (invariant 5) across every parameter and verifies the all-or-nothing
// support contract (invariant 7) across both directions.
func ConvertParams(lib *plugin.Library, pluginID string) result.Result {
	return Run(lib, pluginID, NameConvertParams, func(sess *Session) result.Result {
		inst := sess.Instance
		paramsPtr, ok := inst.GetExtension(clap.ExtParams)
		if !ok {
			return result.Skipped(pluginID, NameConvertParams, "clap.params unsupported")
		}
		params := ext.NewParams(paramsPtr, inst.RawPtr())

		count := params.Count()
		if count == 0 {
			return result.Skipped(pluginID, NameConvertParams, "plugin declares zero parameters")
		}

		v2tSupported := 0
		t2vSupported := 0

		for i := 0; i < count; i++ {
			info, ok := params.Info(i)
			if !ok {
				return result.Failed(pluginID, NameConvertParams, fmt.Sprintf("get_info(%d) returned false under count=%d", i, count))
			}

			for _, v := range fuzz.SampleValues(info, sess.PRNG) {
				text1, ok := params.ValueToText(info.ID, v)
				if !ok {
					continue
				}
				v2tSupported++

				vPrime, ok := params.TextToValue(info.ID, text1)
				if !ok {
					continue
				}
				t2vSupported++

				text2, ok := params.ValueToText(info.ID, vPrime)
				if !ok || text2 != text1 {
					return result.Failed(pluginID, NameConvertParams,
						fmt.Sprintf("param %s (id=%d): value_to_text(text_to_value(%q)) = %q, want %q",
							info.Name, info.ID, text1, text2, text1))
				}

				vDoublePrime, ok := params.TextToValue(info.ID, text2)
				if !ok || vDoublePrime != vPrime {
					return result.Failed(pluginID, NameConvertParams,
						fmt.Sprintf("param %s (id=%d): text_to_value round-trip diverged: %v != %v",
							info.Name, info.ID, vDoublePrime, vPrime))
				}
			}
		}

		totalSamples := count * fuzz.ValuesPerParam
		if v2tSupported != 0 && v2tSupported != totalSamples {
			return result.Failed(pluginID, NameConvertParams,
				fmt.Sprintf("value_to_text partially supported: %d/%d samples", v2tSupported, totalSamples))
		}
		if t2vSupported != 0 && t2vSupported != v2tSupported {
			return result.Failed(pluginID, NameConvertParams,
				fmt.Sprintf("text_to_value partially supported: %d/%d convertible samples", t2vSupported, v2tSupported))
		}
		if v2tSupported == 0 || t2vSupported == 0 {
			return result.Skipped(pluginID, NameConvertParams, "value_to_text or text_to_value unsupported for all parameters")
		}

		if violations := sess.Host.ThreadSafetyCheck(); len(violations) > 0 {
			return result.Failed(pluginID, NameConvertParams,
				fmt.Sprintf("%d thread-safety violation(s); first: %s", len(violations), violations[0]))
		}

		return result.Success(pluginID, NameConvertParams)
	})
}
