package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewDefaultLogger()
	logger.SetOutput(buf)

	tests := []struct {
		name     string
		level    LogLevel
		logFunc  func(string, ...any)
		message  string
		expected bool // Whether the message should be logged
	}{
		{
			name:     "Debug logs at DEBUG level",
			level:    DEBUG,
			logFunc:  logger.Debug,
			message:  "debug message",
			expected: true,
		},
		{
			name:     "Debug doesn't log at INFO level",
			level:    INFO,
			logFunc:  logger.Debug,
			message:  "debug message",
			expected: false,
		},
		{
			name:     "Info logs at INFO level",
			level:    INFO,
			logFunc:  logger.Info,
			message:  "info message",
			expected: true,
		},
		{
			name:     "Info doesn't log at WARN level",
			level:    WARN,
			logFunc:  logger.Info,
			message:  "info message",
			expected: false,
		},
		{
			name:     "Warn logs at WARN level",
			level:    WARN,
			logFunc:  logger.Warn,
			message:  "warn message",
			expected: true,
		},
		{
			name:     "Error logs at ERROR level",
			level:    ERROR,
			logFunc:  logger.Error,
			message:  "error message",
			expected: true,
		},
		{
			name:     "Warn doesn't log at ERROR level",
			level:    ERROR,
			logFunc:  logger.Warn,
			message:  "warn message",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset() // Clear the buffer
			logger.SetLevel(tt.level)
			tt.logFunc(tt.message)

			if tt.expected {
				assert.Contains(t, buf.String(), tt.message, "Expected message to be logged")
			} else {
				assert.NotContains(t, buf.String(), tt.message, "Expected message not to be logged")
			}
		})
	}
}

func TestLogFormatting(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewDefaultLogger()
	logger.SetOutput(buf)
	logger.SetLevel(DEBUG)

	logger.Info("Test message with %s", "formatting")
	output := buf.String()

	// Check timestamp format is present
	assert.Contains(t, output, "[20", "Should contain timestamp prefix")

	// Check log level is present
	assert.Contains(t, output, "INFO", "Should contain log level")

	// Check message with formatting
	assert.Contains(t, output, "Test message with formatting", "Should contain formatted message")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Info("written to the log file")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to the log file")
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	first, err := NewFileLogger(path)
	require.NoError(t, err)
	first.Info("first run")
	require.NoError(t, first.Close())

	second, err := NewFileLogger(path)
	require.NoError(t, err)
	second.Info("second run")
	require.NoError(t, second.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

func TestLoggerConcurrentUse(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewDefaultLogger()
	logger.SetOutput(buf)

	// Pipeline goroutines share one logger instance; writes must not
	// interleave or race.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("message from goroutine %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20, "every log call produces exactly one line")
	for _, line := range lines {
		assert.Contains(t, line, "message from goroutine")
	}
}

func TestStringToLogLevel(t *testing.T) {
	assert.Equal(t, DEBUG, StringToLogLevel("debug"))
	assert.Equal(t, WARN, StringToLogLevel("warn"))
	assert.Equal(t, ERROR, StringToLogLevel("error"))
	assert.Equal(t, INFO, StringToLogLevel("anything else"))
}
