// Package logger provides leveled, named loggers for the server, client and
// game event stream.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LogLevel controls which messages a logger emits
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var levelColors = map[LogLevel]*color.Color{
	DEBUG: color.New(color.FgWhite),
	INFO:  color.New(color.FgCyan),
	WARN:  color.New(color.FgYellow),
	ERROR: color.New(color.FgRed, color.Bold),
}

// Logger writes timestamped, named log lines to the console and optionally
// to a file
type Logger struct {
	name  string
	level LogLevel
	file  *os.File
	mu    sync.Mutex
}

// Named logger instances shared across the application
var (
	Server = New("SERVER")
	Client = New("CLIENT")
	Game   = New("GAME")
)

var allLoggers = []*Logger{Server, Client, Game}

// New creates a logger with the given name
func New(name string) *Logger {
	return &Logger{
		name:  name,
		level: INFO,
	}
}

// SetGlobalLogLevel applies a level to all named loggers
func SetGlobalLogLevel(level LogLevel) {
	for _, l := range allLoggers {
		l.SetLevel(level)
	}
}

// ParseLevel maps a level name to its LogLevel, defaulting to INFO
func ParseLevel(name string) LogLevel {
	switch name {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// InitializeFileLogging points every named logger at a file under dir
func InitializeFileLogging(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := time.Now().Format("2006-01-02")
	for _, l := range allLoggers {
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.log", l.name, stamp))
		if err := l.SetFile(path); err != nil {
			return err
		}
	}
	return nil
}

// SetLevel changes the logger's minimum level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFile directs the logger's output to the given file in addition to the
// console
func (l *Logger) SetFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	return nil
}

// Close releases the logger's file handle if one is set
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs a message at INFO level
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a message at WARN level
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs a message at ERROR level
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Fatal logs a message at ERROR level and exits the process
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
	os.Exit(1)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, l.name, levelNames[level], message)

	levelColors[level].Fprintln(os.Stdout, line)

	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
}
