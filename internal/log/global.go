package log

import (
	"sync"
)

var (
	defaultLogger *Logger
	loggerMu      sync.RWMutex
)

// SetDefaultLogger sets the process-wide default logger. The command
// layer calls this once after reading the config, so collaborators
// constructed with a nil logger pick up the configured level and format.
func SetDefaultLogger(logger *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = logger
}

// DefaultLogger returns the process-wide default logger. The session
// manager, API client, and dashboard model all fall back to it when
// built without an explicit logger. If none was configured, a basic
// stderr logger is created.
func DefaultLogger() *Logger {
	loggerMu.RLock()
	if defaultLogger != nil {
		defer loggerMu.RUnlock()
		return defaultLogger
	}
	loggerMu.RUnlock()

	// Initialize lazily with standard defaults.
	logger := Default()
	SetDefaultLogger(logger)
	return logger
}
