// Package clap holds the ABI-facing constants and small value types shared
// by every layer of the validator. Nothing here allocates or touches cgo;
// it is the vocabulary the rest of the module is written against.
package clap

// Extension identifiers, as published by the plugin ABI. These are sent
// verbatim to a plugin's get_extension and a host's get_extension.
const (
	ExtAudioPorts  = "clap.audio-ports"
	ExtNotePorts   = "clap.note-ports"
	ExtParams      = "clap.params"
	ExtState       = "clap.state"
	ExtLatency     = "clap.latency"
	ExtTail        = "clap.tail"
	ExtRender      = "clap.render"
	ExtThreadCheck = "clap.thread-check"
	ExtLog         = "clap.log"
)

// Event type IDs carried in an event header.
const (
	EventNoteOn          uint16 = 0
	EventNoteOff         uint16 = 1
	EventNoteChoke       uint16 = 2
	EventNoteEnd         uint16 = 3
	EventNoteExpression  uint16 = 4
	EventParamValue      uint16 = 5
	EventParamMod        uint16 = 6
	EventParamGestureBegin uint16 = 7
	EventParamGestureEnd   uint16 = 8
	EventTransport       uint16 = 9
	EventMIDI            uint16 = 10
	EventMIDISysex       uint16 = 11
	EventMIDI2           uint16 = 12
)

// CoreEventSpaceID is the namespace ID reserved for the events defined by
// the core ABI. Anything else is a vendor/extension namespace that a
// conforming plugin must ignore if it doesn't recognize it.
const CoreEventSpaceID uint16 = 0

// Event flags.
const (
	EventFlagIsLive     uint32 = 1 << 0
	EventFlagDontRecord uint32 = 1 << 1
)

// Note expression types.
const (
	NoteExpressionVolume     int32 = 0
	NoteExpressionPan        int32 = 1
	NoteExpressionTuning     int32 = 2
	NoteExpressionVibrato    int32 = 3
	NoteExpressionExpression int32 = 4
	NoteExpressionBrightness int32 = 5
	NoteExpressionPressure   int32 = 6
)

// Transport flags.
const (
	TransportHasTempo         uint32 = 1 << 0
	TransportHasBeatsTimeline uint32 = 1 << 1
	TransportHasSecondsTimeline uint32 = 1 << 2
	TransportHasTimeSignature  uint32 = 1 << 3
	TransportIsPlaying         uint32 = 1 << 4
	TransportIsRecording       uint32 = 1 << 5
	TransportIsLoopActive      uint32 = 1 << 6
	TransportIsWithinPreRoll   uint32 = 1 << 7
)

// Fixed-point scale factors used by song_pos_beats / song_pos_seconds.
const (
	BeatTimeFactor int64 = 1 << 31
	SecTimeFactor  int64 = 1 << 31
)

// Note dialects advertised by clap.note-ports.
const (
	NoteDialectCLAP    uint32 = 1 << 0
	NoteDialectMIDI    uint32 = 1 << 1
	NoteDialectMIDIMPE uint32 = 1 << 2
	NoteDialectMIDI2   uint32 = 1 << 3
)

// Audio port flags.
const (
	AudioPortIsMain                  uint32 = 1 << 0
	AudioPortSupports64Bits          uint32 = 1 << 1
	AudioPortPrefers64Bits           uint32 = 1 << 2
	AudioPortRequiresCommonSampleSize uint32 = 1 << 3
)

// Well-known port type strings.
const (
	PortMono      = "mono"
	PortStereo    = "stereo"
	PortSurround  = "surround"
	PortAmbisonic = "ambisonic"
)

// Parameter flags.
const (
	ParamIsStepped                    uint32 = 1 << 0
	ParamIsPeriodic                   uint32 = 1 << 1
	ParamIsHidden                     uint32 = 1 << 2
	ParamIsReadonly                   uint32 = 1 << 3
	ParamIsBypass                     uint32 = 1 << 4
	ParamIsAutomatable                uint32 = 1 << 5
	ParamIsAutomatablePerNoteID       uint32 = 1 << 6
	ParamIsAutomatablePerKey          uint32 = 1 << 7
	ParamIsAutomatablePerChannel      uint32 = 1 << 8
	ParamIsAutomatablePerPort         uint32 = 1 << 9
	ParamIsModulatable                uint32 = 1 << 10
	ParamIsModulatablePerNoteID       uint32 = 1 << 11
	ParamIsModulatablePerKey          uint32 = 1 << 12
	ParamIsModulatablePerChannel      uint32 = 1 << 13
	ParamIsModulatablePerPort         uint32 = 1 << 14
	ParamRequiresProcess              uint32 = 1 << 15
)

// Param rescan flags (host extension).
const (
	ParamRescanValues uint32 = 1 << 0
	ParamRescanText   uint32 = 1 << 1
	ParamRescanInfo   uint32 = 1 << 2
	ParamRescanAll    uint32 = 1 << 3
)

// Process status codes returned by clap_plugin::process().
const (
	ProcessError             int32 = 0
	ProcessContinue          int32 = 1
	ProcessContinueIfNotQuiet int32 = 2
	ProcessTail              int32 = 3
	ProcessSleep              int32 = 4
)

// ProcessStatusString renders a process status the way a test failure
// report should: by name, not by number.
func ProcessStatusString(status int32) string {
	switch status {
	case ProcessError:
		return "ERROR"
	case ProcessContinue:
		return "CONTINUE"
	case ProcessContinueIfNotQuiet:
		return "CONTINUE_IF_NOT_QUIET"
	case ProcessTail:
		return "TAIL"
	case ProcessSleep:
		return "SLEEP"
	default:
		return "UNKNOWN"
	}
}

// Log severities for clap.log.
const (
	LogDebug            int32 = 0
	LogInfo             int32 = 1
	LogWarning          int32 = 2
	LogError            int32 = 3
	LogFatal            int32 = 4
	LogHostMisbehaving  int32 = 5
	LogPluginMisbehaving int32 = 6
)

// LogSeverityString renders a clap.log severity by name.
func LogSeverityString(severity int32) string {
	switch severity {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	case LogFatal:
		return "fatal"
	case LogHostMisbehaving:
		return "host-misbehaving"
	case LogPluginMisbehaving:
		return "plugin-misbehaving"
	default:
		return "unknown"
	}
}

// InvalidID is CLAP_INVALID_ID: the sentinel used for "no pair", "no note
// id", etc.
const InvalidID uint32 = 0xFFFFFFFF

// RenderMode mirrors clap.render's mode enum.
type RenderMode int32

const (
	RenderRealtime RenderMode = 0
	RenderOffline  RenderMode = 1
)
