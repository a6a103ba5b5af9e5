// Package applog constructs charmbracelet/log loggers: cmd/clapval builds
// one for its own messages, and every test session builds one for its
// Host. There is no package-level global logger; every caller that needs
// to log takes one as a constructor argument.
package applog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/clapval/clapval/pkg/clap"
)

// New builds a logger writing to w (os.Stderr in normal operation) at the
// given level. Isolated-mode children use a distinct logger writing only
// to stderr, since their stdout is reserved for the single result line.
func New(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return l
}

// Default builds the standard validator logger writing to stderr at info
// level.
func Default() *log.Logger {
	return New(os.Stderr, log.InfoLevel)
}

// LogPluginMessage relays a clap.log host-extension callback from a
// plugin into the validator's own structured log stream, translating the
// plugin's reported severity into a charmbracelet/log level.
func LogPluginMessage(l *log.Logger, pluginID string, severity int32, message string) {
	fields := []any{"plugin", pluginID}
	switch severity {
	case clap.LogDebug:
		l.Debug(message, fields...)
	case clap.LogInfo:
		l.Info(message, fields...)
	case clap.LogWarning:
		l.Warn(message, fields...)
	case clap.LogError, clap.LogFatal:
		l.Error(message, fields...)
	case clap.LogHostMisbehaving, clap.LogPluginMisbehaving:
		l.Error(message, append(fields, "severity", clap.LogSeverityString(severity))...)
	default:
		l.Info(message, fields...)
	}
}
