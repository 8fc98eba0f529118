package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap adapts a zap.Logger to the application's field-map logging port.
type Zap struct {
	base *zap.Logger
}

// Options controls where and how verbosely the file logger writes.
type Options struct {
	Path  string
	Debug bool
}

// New opens (or creates) the log file and returns a JSON logger writing to it.
// The terminal is the UI, so nothing is ever written to stdout or stderr.
func New(opts Options) (*Zap, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{opts.Path}
	cfg.ErrorOutputPaths = []string{opts.Path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Zap{base: base}, nil
}

// NewFromEnv builds the logger from AIH_LOG_FILE and AIH_DEBUG, falling back
// to a no-op logger when the file cannot be opened.
func NewFromEnv(defaultPath string) *Zap {
	path := os.Getenv("AIH_LOG_FILE")
	if path == "" {
		path = defaultPath
	}
	debug := strings.ToLower(strings.TrimSpace(os.Getenv("AIH_DEBUG")))

	l, err := New(Options{Path: path, Debug: debug == "1" || debug == "true"})
	if err != nil {
		return NewNop()
	}
	return l
}

// NewNop returns a logger that discards everything.
func NewNop() *Zap {
	return &Zap{base: zap.NewNop()}
}

// Wrap adapts an existing zap logger.
func Wrap(base *zap.Logger) *Zap {
	return &Zap{base: base}
}

func (l *Zap) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug(msg, toFields(fields)...)
}

func (l *Zap) Info(msg string, fields map[string]interface{}) {
	l.base.Info(msg, toFields(fields)...)
}

func (l *Zap) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn(msg, toFields(fields)...)
}

func (l *Zap) Error(msg string, err error, fields map[string]interface{}) {
	l.base.Error(msg, append(toFields(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *Zap) Sync() error {
	return l.base.Sync()
}

func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
