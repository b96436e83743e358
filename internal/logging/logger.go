// Package logging provides categorized file-based diagnostic logging.
// While the wizard TUI owns the terminal, nothing may print to stdout or
// stderr, so silent-by-design failures (draft storage, notifier sends) are
// written to per-category files under the state directory instead.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Category names a log file. One file per category per day.
type Category string

const (
	CategoryBoot   Category = "boot"   // startup, config resolution
	CategoryDraft  Category = "draft"  // draft save/load/clear
	CategorySubmit Category = "submit" // sink calls, notifier outcomes
	CategoryUI     Category = "ui"     // navigation diagnostics
)

// Logger writes to one category file. A Logger with no backing file is a
// no-op, so callers never need nil checks.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
	debug    bool
}

// Open creates (or appends to) the category log file under dir. On any
// failure a no-op logger is returned; diagnostics must never break the app.
func Open(dir string, category Category, debug bool) *Logger {
	if dir == "" {
		return &Logger{category: category}
	}
	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return &Logger{category: category}
	}

	// Date prefix keeps rotation a plain file delete.
	name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	file, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &Logger{category: category}
	}

	return &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		debug:    debug,
	}
}

// Nop returns a logger that discards everything. Used in tests and wherever
// a caller opts out of diagnostics.
func Nop() *Logger {
	return &Logger{}
}

// Debug logs at debug level; dropped unless the logger was opened with
// debug enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || !l.debug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// Close releases the underlying file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
		l.logger = nil
	}
}
