package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"mirrorpick/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, optionally structured log lines through logrus.
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
	file   *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile appends log lines to path, creating parent directories as needed.
// The TUI owns stdout, so this is the normal destination while the dashboard runs.
func WithFile(path string) Option {
	return func(l *Logger) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot create %s: %v\n", filepath.Dir(path), err)
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", path, err)
			return
		}
		l.file = f
		l.base.SetOutput(f)
	}
}

// NewLogger creates a logger writing text lines to stderr unless configured otherwise.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&formatter{})
	base.SetLevel(logrus.TraceLevel)

	l := &Logger{base: base, fields: logrus.Fields{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	l := NewLogger(opts...)
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Close releases the log file opened by WithFile, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logger.file == nil {
		return nil
	}
	err := logger.file.Close()
	logger.file = nil
	logger.base.SetOutput(io.Discard)
	return err
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	mu.Lock()
	isDebug = debug
	mu.Unlock()
}

func debugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return isDebug
}

func current() *Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, fields: merged, file: l.file}
}

// WithError attaches err and, for application errors, its kind and detail fields.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) Debug(msg string)                          { l.emit(logrus.DebugLevel, msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.emit(logrus.DebugLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Info(msg string)                           { l.emit(logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.emit(logrus.InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(msg string)                           { l.emit(logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.emit(logrus.WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Error(msg string)                          { l.emit(logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.emit(logrus.ErrorLevel, fmt.Sprintf(format, args...)) }

func (l *Logger) emit(level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !debugEnabled() {
		return
	}
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[callerKey] = caller()
	l.base.WithFields(fields).Log(level, msg)
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger with err attached.
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	current().WithError(err).Error(msg)
}

func Info(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		current().Debug(msg)
		return
	}
	current().Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		current().Warn(msg)
		return
	}
	current().Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		current().Error(msg)
		return
	}
	current().Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error())}

	var appErr interface{ Kind() errors.ErrorKind }
	if errors.As(err, &appErr) {
		fields = append(fields, F("error_kind", appErr.Kind().String()))
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var exportErr *errors.ExportError
	if errors.As(err, &exportErr) && exportErr.Target() != "" {
		fields = append(fields, F("target", exportErr.Target()))
	}
	var fetchErr *errors.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.URL() != "" {
			fields = append(fields, F("url", fetchErr.URL()))
		}
		if fetchErr.StatusCode() != 0 {
			fields = append(fields, F("status", fetchErr.StatusCode()))
		}
	}
	return fields
}

const callerKey = "caller"

// caller reports the first frame outside this file.
func caller() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasSuffix(frame.File, "/internal/log/logger.go") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			return "unknown"
		}
	}
}

// formatter renders "[2006-01-02 15:04:05] LEVEL caller: message k=v ...".
type formatter struct{}

func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[%s] %s", entry.Time.Format("2006-01-02 15:04:05"), level)
	if c, ok := entry.Data[callerKey]; ok {
		fmt.Fprintf(&buf, " %v", c)
	}
	buf.WriteString(": ")
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != callerKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, entry.Data[k])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
