package robdd

import (
	"log"
	"os"
)

// Logger is the leveled logging surface the manager writes diagnostic
// events to (table resizes, garbage collections, reordering passes).
// Grounded in junjiewwang-perf-analysis/pkg/utils/logger.go, which rolls a
// small leveled interface on top of the standard log.Logger rather than
// reaching for a structured logging library; none of the retrieval pack's
// repos import one for their own internals either.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// stdLogger is the Logger NewStdLogger returns, wrapping *log.Logger the way the
// teacher's debug.go wraps the standard logger behind a verbosity knob.
type stdLogger struct {
	level  int // 0 silent, 1 info, 2 debug
	logger *log.Logger
}

// NewStdLogger returns a Logger writing to os.Stderr, gated at level (0
// silent, 1 info and warnings, 2 adds debug detail).
func NewStdLogger(level int) Logger {
	return &stdLogger{level: level, logger: log.New(os.Stderr, "robdd: ", log.LstdFlags)}
}

func (l *stdLogger) Debugf(format string, args ...interface{}) {
	if l.level >= 2 {
		l.logger.Printf(format, args...)
	}
}

func (l *stdLogger) Infof(format string, args ...interface{}) {
	if l.level >= 1 {
		l.logger.Printf(format, args...)
	}
}

func (l *stdLogger) Warnf(format string, args ...interface{}) {
	if l.level >= 1 {
		l.logger.Printf("WARN "+format, args...)
	}
}

// nullLogger discards everything; it is the manager's default so that
// construction never writes to stderr unless a caller opts in with the
// WithLogger option.
type nullLogger struct{}

func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Warnf(string, ...interface{})  {}
