// Package logger owns the process slog logger. Until Setup succeeds every
// record is discarded.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	logDir  = ".mingpan/logs"
	logName = "mingpan.log"

	// DefaultMaxBytes is the size at which the log is rotated to mingpan.log.1.
	DefaultMaxBytes int64 = 5 << 20
)

type Config struct {
	Root  string
	Debug bool
	// MaxBytes <= 0 uses DefaultMaxBytes.
	MaxBytes int64
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
	logPath string
)

func discard() *slog.Logger { return slog.New(slog.NewJSONHandler(io.Discard, nil)) }

// Setup opens <root>/.mingpan/logs/mingpan.log for appending and installs a JSON
// handler on it. The returned func closes the file and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	root := filepath.Clean(cfg.Root)
	if cfg.Root == "" {
		root = "."
	}

	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		reset()
		return nil, err
	}

	path := filepath.Join(dir, logName)
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	rotated := rotate(path, maxBytes)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: utcTime,
	}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	l := slog.New(slog.NewJSONHandler(f, opts))

	mu.Lock()
	global = l
	logFile = f
	logPath = path
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug, "rotated", rotated)

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		var cerr error
		if logFile == f {
			cerr = f.Close()
			logFile = nil
			logPath = ""
			global = discard()
		}
		return cerr
	}, nil
}

// rotate moves an oversized log aside, replacing any previous backup.
func rotate(path string, maxBytes int64) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() < maxBytes {
		return false
	}
	return os.Rename(path, path+".1") == nil
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	global = discard()
	logFile = nil
	logPath = ""
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Component returns L tagged with a component attribute.
func Component(name string) *slog.Logger {
	return L().With("component", name)
}

// Path is the active log file, or "" when logging is discarded.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}
