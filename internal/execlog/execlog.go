// Package execlog implements the append-only, line-oriented execution log
// sink named in spec.md §6: one line per log event, formatted
// "YYYY-MM-DD HH:MM:SS.mmm | <message>". Rotation is delegated to
// gopkg.in/natefinch/lumberjack.v2, adopted from chycee-cryptoGo's logger
// (internal/infra/logger.go), the pack repo that wires rotation for a
// plain file sink rather than leaving it to external log-shipping.
package execlog

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const timeLayout = "2006-01-02 15:04:05.000"

// Writer appends timestamped lines to a rotated log file.
type Writer struct {
	mu  sync.Mutex
	out *lumberjack.Logger
}

// Config controls the rotation policy.
type Config struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig returns a modest rotation policy for a single log file.
func DefaultConfig(path string) Config {
	return Config{Path: path, MaxSizeMB: 100, MaxBackups: 5, MaxAgeDays: 14, Compress: true}
}

// New opens (or creates) the log file described by cfg.
func New(cfg Config) *Writer {
	return &Writer{
		out: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		},
	}
}

// Append writes one timestamped line. Safe for concurrent use: execution
// reports arrive from gateway callback threads while the strategy thread
// may log drops/rejections concurrently.
func (w *Writer) Append(message string) error {
	line := fmt.Sprintf("%s | %s\n", time.Now().Format(timeLayout), message)
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.out.Write([]byte(line))
	return err
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Close()
}
