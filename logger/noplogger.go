// noplogger.go
package logger

import "go.uber.org/zap"

// NewNopLogger returns a Logger that discards all output. Intended for tests and for
// embedding applications that supply their own logging elsewhere.
func NewNopLogger() Logger {
	return &defaultLogger{
		logger:   zap.NewNop(),
		logLevel: LogLevelNone,
	}
}
