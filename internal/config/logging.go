package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log levels, least verbose first.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelDebug
)

//nolint:gochecknoglobals // read-only lookup table
var levelNames = [...]string{
	LogLevelOff:   "off",
	LogLevelError: "error",
	LogLevelInfo:  "info",
	LogLevelDebug: "debug",
}

// ParseLogLevel parses a log level name; unknown names mean error.
func ParseLogLevel(s string) LogLevel {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "none" {
		return LogLevelOff
	}
	for l, n := range levelNames {
		if n == name {
			return LogLevel(l)
		}
	}
	return LogLevelError
}

func (l LogLevel) String() string {
	if l < LogLevelOff || int(l) >= len(levelNames) {
		return levelNames[LogLevelError]
	}
	return levelNames[l]
}

// sink is the destination shared by a logger and the loggers named from it.
type sink struct {
	mu     sync.Mutex
	level  LogLevel
	out    io.Writer
	closer io.Closer
	now    func() time.Time
}

// Logger writes timestamped, leveled lines to a file or writer. It is safe
// for concurrent use.
type Logger struct {
	*sink
	component string
}

func newLogger(level LogLevel, out io.Writer, closer io.Closer) *Logger {
	return &Logger{sink: &sink{level: level, out: out, closer: closer, now: time.Now}}
}

// NewLogger opens filePath for appending, expanding a leading "~/". With
// LogLevelOff or an empty path the logger discards everything.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	if level == LogLevelOff || filePath == "" {
		return newLogger(level, nil, nil), nil
	}

	filePath, err := ExpandHome(filePath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return newLogger(level, f, f), nil
}

// NewWriterLogger logs to w, which the logger never closes.
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	return newLogger(level, w, nil)
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return newLogger(LogLevelOff, nil, nil)
}

// Named returns a logger tagging its lines with component. It shares the
// level and destination of l.
func (l *Logger) Named(component string) *Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return &Logger{sink: l.sink, component: component}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rest), nil
}

// Close closes the underlying file, if the logger opened one. Loggers
// named from l stop writing too.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer, l.out = nil, nil
	return err
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

// Writer adapts the logger to an io.Writer logging each write at level.
func (l *Logger) Writer(level LogLevel) io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		l.log(level, "%s", strings.TrimSpace(string(p)))
		return len(p), nil
	})
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogLevelOff || level > l.level || l.out == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(strings.ToUpper(level.String()))
	sb.WriteString("] ")
	if l.component != "" {
		sb.WriteString(l.component)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, format, args...)
	sb.WriteByte('\n')
	_, _ = io.WriteString(l.out, sb.String())
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
