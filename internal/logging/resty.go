package logging

// RestyLogger implements resty.Logger and routes resty's internal messages
// through the unified logging pipeline. Used by the batchctl API client and
// the HTTP batch executor.
type RestyLogger struct{}

// Errorf routes error messages through structured logging.
func (RestyLogger) Errorf(format string, v ...interface{}) {
	Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (RestyLogger) Warnf(format string, v ...interface{}) {
	Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (RestyLogger) Debugf(format string, v ...interface{}) {
	Debug(format, v...)
}
