// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small leveled logger with the same shape as the
// github.com/saferwall/pe/log subpackage file.go and cmd/dump.go
// import (Helper, Logger, NewStdLogger, NewFilter, FilterLevel,
// NewHelper) — that subpackage wasn't part of the retrieved file set,
// so it is recreated here under internal/ with the call pattern the
// teacher's own code already shows.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a log severity, ordered low-to-high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps KINETICA_LOG_LEVEL values to a Level, defaulting to
// LevelInfo for anything unrecognized or empty.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger logs one leveled, formatted line.
type Logger interface {
	Log(level Level, msg string) error
}

// stdLogger writes "TIMESTAMP LEVEL msg" lines to an io.Writer.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (l *stdLogger) Log(level Level, msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.w, "%s %-5s %s\n", time.Now().UTC().Format(time.RFC3339Nano), level, msg)
	return err
}

// filter wraps a Logger, dropping anything below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a filtered logger passes through.
func FilterLevel(min Level) FilterOption {
	return func(f *filter) { f.min = min }
}

// NewFilter wraps logger with the given options, most usefully
// FilterLevel.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filter{next: logger, min: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, msg string) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, msg)
}

// Helper adds printf-style convenience methods over a Logger, the way
// file.go's file.logger is used as `file.logger.Errorf(...)`.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, a ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, fmt.Sprintf(format, a...))
}

func (h *Helper) Debugf(format string, a ...interface{}) { h.log(LevelDebug, format, a...) }
func (h *Helper) Infof(format string, a ...interface{})  { h.log(LevelInfo, format, a...) }
func (h *Helper) Warnf(format string, a ...interface{})  { h.log(LevelWarn, format, a...) }
func (h *Helper) Errorf(format string, a ...interface{}) { h.log(LevelError, format, a...) }

func (h *Helper) Debug(a ...interface{}) { h.log(LevelDebug, "%s", fmt.Sprint(a...)) }
func (h *Helper) Info(a ...interface{})  { h.log(LevelInfo, "%s", fmt.Sprint(a...)) }
func (h *Helper) Warn(a ...interface{})  { h.log(LevelWarn, "%s", fmt.Sprint(a...)) }
func (h *Helper) Error(a ...interface{}) { h.log(LevelError, "%s", fmt.Sprint(a...)) }

// Default returns a Helper writing to stderr, filtered to the level
// named by the KINETICA_LOG_LEVEL environment variable (spec.md §4.H).
func Default() *Helper {
	level := ParseLevel(os.Getenv("KINETICA_LOG_LEVEL"))
	return NewHelper(NewFilter(NewStdLogger(os.Stderr), FilterLevel(level)))
}
