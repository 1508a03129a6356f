// Package log is the application logger. It wraps logrus with a small
// field-oriented API and enriches entries from typed application errors.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"

	"speedread/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to an entry.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger
type Option func(*options)

type options struct {
	out  io.Writer
	json bool
	file string
}

// WithOutput sends log output to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to JSON lines output
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends every entry to the file at path
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// Logger writes leveled, structured entries.
type Logger struct {
	base *logrus.Logger
	file *os.File
}

// NewLogger creates a logger. When the log file cannot be opened the logger
// falls back to the primary output and reports the failure there.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Logger{base: logrus.New()}
	l.base.SetLevel(logrus.DebugLevel)

	out := o.out
	var fileErr error
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fileErr = err
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	l.base.SetOutput(out)

	if o.json {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "timestamp",
			},
		})
	} else {
		l.base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if fileErr != nil {
		l.base.WithField("file", o.file).WithError(fileErr).Warn("could not open log file")
	}
	return l
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetDebug enables or disables debug entries for every logger
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the package-level logger
func Default() *Logger {
	return logger
}

// caller reports the file:line of the code that called a public logging
// function. Every public entry point calls emit directly so the depth is fixed.
func caller() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

func (l *Logger) emit(level logrus.Level, fields logrus.Fields, ctx context.Context, msg string) {
	if level == logrus.DebugLevel && !isDebug.Load() {
		return
	}
	entry := l.base.WithFields(fields).WithField("caller", caller())
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	entry.Log(level, msg)
}

func toFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

func errorFields(err error) logrus.Fields {
	if err == nil {
		return logrus.Fields{"error": "<nil>"}
	}
	fields := logrus.Fields{
		"error":      err.Error(),
		"error_kind": errors.KindOf(err).String(),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields["path"] = fileErr.Path()
	}
	var docErr *errors.DocumentError
	if errors.As(err, &docErr) && docErr.Document() != "" {
		fields["document"] = docErr.Document()
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Param() != "" {
		fields["param"] = cfgErr.Param()
	}
	return fields
}

// With starts an entry carrying fields
func (l *Logger) With(fields ...Field) *Entry {
	return &Entry{logger: l, fields: toFields(fields)}
}

// WithError starts an entry describing err
func (l *Logger) WithError(err error) *Entry {
	return &Entry{logger: l, fields: errorFields(err)}
}

// WithContext starts an entry bound to ctx
func (l *Logger) WithContext(ctx context.Context) *Entry {
	return &Entry{logger: l, fields: logrus.Fields{}, ctx: ctx}
}

func (l *Logger) Debug(msg string) { l.emit(logrus.DebugLevel, nil, nil, msg) }
func (l *Logger) Info(msg string)  { l.emit(logrus.InfoLevel, nil, nil, msg) }
func (l *Logger) Warn(msg string)  { l.emit(logrus.WarnLevel, nil, nil, msg) }
func (l *Logger) Error(msg string) { l.emit(logrus.ErrorLevel, nil, nil, msg) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(logrus.InfoLevel, nil, nil, fmt.Sprintf(format, args...))
}

// Entry is a pending log line with accumulated fields.
type Entry struct {
	logger *Logger
	fields logrus.Fields
	ctx    context.Context
}

// With returns a copy of e with more fields
func (e *Entry) With(fields ...Field) *Entry {
	merged := make(logrus.Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Entry{logger: e.logger, fields: merged, ctx: e.ctx}
}

func (e *Entry) Debug(msg string) { e.logger.emit(logrus.DebugLevel, e.fields, e.ctx, msg) }
func (e *Entry) Info(msg string)  { e.logger.emit(logrus.InfoLevel, e.fields, e.ctx, msg) }
func (e *Entry) Warn(msg string)  { e.logger.emit(logrus.WarnLevel, e.fields, e.ctx, msg) }
func (e *Entry) Error(msg string) { e.logger.emit(logrus.ErrorLevel, e.fields, e.ctx, msg) }

// Infof logs a formatted message at info level on the default logger
func Infof(format string, args ...interface{}) {
	logger.emit(logrus.InfoLevel, nil, nil, fmt.Sprintf(format, args...))
}

// LogWithFields starts an entry on the default logger
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError starts an entry on the default logger describing err,
// including its kind and any path, document or parameter it carries.
func LogWithError(err error) *Entry {
	return logger.WithError(err)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	logger.emit(logrus.ErrorLevel, errorFields(err), nil, msg)
}
