package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

/*
Log logs messages to various levels.

Based on the go-logr package. Carried over from the logging package of
github.com/redhat-developer/service-binding-operator, holding the logr.Logger by value and
mapping Trace to V(2).

The Log type enables various verbosity levels to be logged based on the --zap-log-level argument
of the bindings-properties command.

To create an instance of the logger:

    log := logging.Logger("processor")

When --zap-log-level is not provided, the logging defaults to INFO level where log.Warning() and
log.Info() are logged, if --zap-log-level is set to debug (or 1) then log.Debug() is logged too,
while level 2 is reserved for the finer DEBUG-level logging provided by log.Trace().

Secret values must never be passed as keysAndValues, only their keys.
*/
type Log struct {
	logger logr.Logger
}

// Error logs the message using go-logr package on a default level as ERROR
func (l *Log) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(err, msg, keysAndValues...)
}

// Warning logs the message using go-logr package on a default level as WARNING
func (l *Log) Warning(msg string, keysAndValues ...interface{}) {
	if l.logger.V(0).Enabled() {
		l.logger.V(0).Info(fmt.Sprintf("WARNING: %s", msg), keysAndValues...)
	}
}

// Info logs the message using go-logr package on a default level as INFO
func (l *Log) Info(msg string, keysAndValues ...interface{}) {
	if l.logger.V(0).Enabled() {
		l.logger.V(0).Info(msg, keysAndValues...)
	}
}

// Debug logs the message using go-logr package on a V=1 level as DEBUG
func (l *Log) Debug(msg string, keysAndValues ...interface{}) {
	if l.logger.V(1).Enabled() {
		l.logger.V(1).Info(fmt.Sprintf("DEBUG: %s", msg), keysAndValues...)
	}
}

// Trace logs the message using go-logr package on a V=2 level as TRACE
func (l *Log) Trace(msg string, keysAndValues ...interface{}) {
	if l.logger.V(2).Enabled() {
		l.logger.V(2).Info(fmt.Sprintf("TRACE: %s", msg), keysAndValues...)
	}
}

// Logger returns an instance of a logger
func Logger(name string, keysAndValues ...interface{}) *Log {
	return &Log{
		logger: logf.Log.WithName(name).WithValues(keysAndValues...),
	}
}

// SetLogger sets a concrete logging implementation for all deferred Loggers.
func SetLogger(logger logr.Logger) {
	logf.SetLogger(logger)
}

// WithValues adds some key-value pairs of context to a logger.
// See Info for documentation on how key/value pairs work.
func (l *Log) WithValues(keysAndValues ...interface{}) *Log {
	return &Log{
		logger: l.logger.WithValues(keysAndValues...),
	}
}

// WithName adds a new element to the logger's name.
// Successive calls with WithName continue to append
// suffixes to the logger's name.
func (l *Log) WithName(name string) *Log {
	return &Log{
		logger: l.logger.WithName(name),
	}
}
