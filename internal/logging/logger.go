// Package logging is the printf-style logging front end shared by batchd,
// batchctl and the batching core.
//
// Two charmbracelet/log loggers back the package: INFO and SUCCESS lines go to
// stdout, DEBUG, WARN and ERROR lines go to stderr. A daemon started with a
// log file sends both streams to that file instead. Level labels are colored
// with lipgloss so batch and drain events are easy to pick out of a terminal.
//
// Libraries that only accept an io.Writer (gin, the standard library logger)
// are bridged in with LevelWriter.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	stdlog "log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Label and color per level; SUCCESS is an INFO line with its own label.
var levelColors = map[log.Level]struct {
	label string
	color lipgloss.Color
}{
	log.DebugLevel: {"DEBUG", "#7F6DFF"},
	log.InfoLevel:  {"INFO", "#42E7FF"},
	log.WarnLevel:  {"WARN", "#FFE763"},
	log.ErrorLevel: {"ERROR", "#FF4473"},
}

const successColor = lipgloss.Color("#60F281")

var (
	stdoutLogger = newLogger(os.Stdout) // INFO, SUCCESS
	stderrLogger = newLogger(os.Stderr) // DEBUG, WARN, ERROR

	// Set once the CLI has taken control of output; the API server then
	// leaves gin's writers alone.
	cliConfigured = false
)

// levelStyles builds the level label styles. With successLabel the INFO
// label reads SUCCESS.
func levelStyles(successLabel bool) *log.Styles {
	styles := log.DefaultStyles()
	for lvl, c := range levelColors {
		styles.Levels[lvl] = lipgloss.NewStyle().SetString(c.label).Foreground(c.color)
	}
	if successLabel {
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("SUCCESS").Foreground(successColor)
	}
	return styles
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(levelStyles(false))
	return l
}

// Info logs lifecycle and batch formation events.
func Info(format string, v ...any) {
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs conditions that need attention but do not stop the daemon.
func Warn(format string, v ...any) {
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs failures such as executor faults.
func Error(format string, v ...any) {
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs per-task detail.
func Debug(format string, v ...any) {
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// Success logs a completed operation with a green SUCCESS label. It is an
// INFO line underneath, so INFO filtering applies.
func Success(format string, v ...any) {
	if stdoutLogger.GetLevel() > log.InfoLevel {
		return
	}
	l := stdoutLogger.With()
	l.SetStyles(levelStyles(true))
	l.Info(fmt.Sprintf(format, v...))
}

// parseLevel maps DEBUG, INFO, WARN and ERROR to charm levels. Anything else
// is INFO.
func parseLevel(level string) log.Level {
	switch level {
	case "DEBUG":
		return log.DebugLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel sets the minimum level on both streams.
func SetLevel(level string) {
	lvl := parseLevel(level)
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
}

// SetOutput sends both streams to w, the daemon's --log-file. A nil file
// silences logging entirely.
func SetOutput(w *os.File) {
	if w == nil {
		stdoutLogger.SetLevel(log.FatalLevel + 1)
		stderrLogger.SetLevel(log.FatalLevel + 1)
		return
	}
	stdoutLogger.SetOutput(w)
	stderrLogger.SetOutput(w)
}

// SuppressOutput keeps only ERROR lines. batchctl calls it so command output
// is not interleaved with client chatter.
func SuppressOutput() {
	stdoutLogger.SetLevel(log.ErrorLevel)
	stderrLogger.SetLevel(log.ErrorLevel)
	cliConfigured = true
}

// RestoreOutput puts both streams back on stdout/stderr at INFO.
func RestoreOutput() {
	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	SetLevel("INFO")
	cliConfigured = true
}

// IsConfiguredByCLI reports whether a CLI has taken control of log output.
func IsConfiguredByCLI() bool {
	return cliConfigured
}

// LevelWriter is an io.Writer that logs every non-empty line it receives at
// a fixed level, optionally prefixed with the source library's name.
type LevelWriter struct {
	logf   func(format string, v ...any)
	prefix string
}

// NewLevelWriter returns a LevelWriter for DEBUG, INFO, WARN or ERROR (case
// insensitive). Unknown levels log at INFO.
func NewLevelWriter(level, prefix string) io.Writer {
	logf := Info
	switch strings.ToUpper(level) {
	case "DEBUG":
		logf = Debug
	case "WARN":
		logf = Warn
	case "ERROR":
		logf = Error
	}
	return &LevelWriter{logf: logf, prefix: prefix}
}

func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if w.prefix != "" {
			line = w.prefix + ": " + line
		}
		w.logf("%s", line)
	}
	return len(p), nil
}

// RedirectStandardLog points the standard library logger at w. A nil writer
// discards its output.
func RedirectStandardLog(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	stdlog.SetOutput(w)
}
