// logger_test.go
package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestConvertToZapLevel tests the conversion from custom LogLevel to zapcore.Level
func TestConvertToZapLevel(t *testing.T) {
	tests := []struct {
		name          string
		inputLevel    LogLevel
		expectedLevel zapcore.Level
	}{
		{"DebugLevel", LogLevelDebug, zap.DebugLevel},
		{"InfoLevel", LogLevelInfo, zap.InfoLevel},
		{"WarnLevel", LogLevelWarn, zap.WarnLevel},
		{"ErrorLevel", LogLevelError, zap.ErrorLevel},
		{"PanicLevel", LogLevelPanic, zap.PanicLevel},
		{"FatalLevel", LogLevelFatal, zap.FatalLevel},
		{"UnknownLevel", LogLevel(999), zap.InfoLevel}, // Testing default case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertToZapLevel(tt.inputLevel)
			assert.Equal(t, tt.expectedLevel, result)
		})
	}
}

func TestParseLogLevelFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
	}{
		{"ParseDebug", "LogLevelDebug", LogLevelDebug},
		{"ParseInfo", "LogLevelInfo", LogLevelInfo},
		{"ParseWarn", "LogLevelWarn", LogLevelWarn},
		{"ParseError", "LogLevelError", LogLevelError},
		{"ParsePanic", "LogLevelPanic", LogLevelPanic},
		{"ParseFatal", "LogLevelFatal", LogLevelFatal},
		{"ParseUnknown", "NotALevel", LogLevelNone},
		{"ParseEmpty", "", LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevelFromString(tt.input))
		})
	}
}

// TestSetLevel verifies that changing the level filters out lower-severity messages.
func TestSetLevel(t *testing.T) {
	log := &defaultLogger{logger: zap.NewNop(), logLevel: LogLevelInfo}

	assert.Equal(t, LogLevelInfo, log.GetLogLevel())

	log.SetLevel(LogLevelError)
	assert.Equal(t, LogLevelError, log.GetLogLevel())
}

func TestWithPreservesLevel(t *testing.T) {
	log := &defaultLogger{logger: zap.NewNop(), logLevel: LogLevelWarn}

	child := log.With(zap.String("component", "connector"))
	assert.Equal(t, LogLevelWarn, child.GetLogLevel())
}

// TestErrorReturnsError verifies Error produces a non-nil error carrying the message.
func TestErrorReturnsError(t *testing.T) {
	log := &defaultLogger{logger: zap.NewNop(), logLevel: LogLevelError}

	err := log.Error("token exchange failed")
	assert.Error(t, err)
	assert.Equal(t, "token exchange failed", err.Error())
}

func TestBuildLogger(t *testing.T) {
	log := BuildLogger(LogLevelDebug, LogOutputJSON)
	assert.NotNil(t, log)
	assert.Equal(t, LogLevelDebug, log.GetLogLevel())

	log = BuildLogger(LogLevelInfo, LogOutputHumanReadable)
	assert.NotNil(t, log)
	assert.Equal(t, LogLevelInfo, log.GetLogLevel())
}
