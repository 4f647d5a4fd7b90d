package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
)

// Level is the minimum severity a logger prints
type Level int

const (
	// DebugLevel prints everything
	DebugLevel Level = iota
	// InfoLevel is the default
	InfoLevel
	// WarnLevel prints warnings and errors only
	WarnLevel
	// ErrorLevel prints errors only
	ErrorLevel
	// SilentLevel prints nothing
	SilentLevel
)

// Logger loggs pretty stuff to the console
// It is safe for concurrent use.
type Logger struct {
	out       io.Writer
	mu        *sync.Mutex
	level     Level
	emojis    bool
	indention int
	chalk     *gchalk.Builder
}

// helper for indention
func (l *Logger) println(a string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// SetLevel sets the minimum level that gets printed
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Level returns the minimum level that gets printed
func (l *Logger) Level() Level {
	return l.level
}

// DisableColor disables colors and emojis
func (l *Logger) DisableColor() {
	l.chalk = gchalk.New(gchalk.ForceLevel(gchalk.LevelNone))
	l.emojis = false
}

// Headline prints a blue line
func (l *Logger) Headline(s string) {
	if l.level > InfoLevel {
		return
	}
	l.println(l.chalk.WithCyan().Bold(s))
}

// Debug prints a gray line if debug logging is enabled
func (l *Logger) Debug(s string) {
	if l.level > DebugLevel {
		return
	}
	l.println(l.chalk.Gray(s))
}

// Debugf is Debug with formatting
func (l *Logger) Debugf(format string, a ...interface{}) {
	if l.level > DebugLevel {
		return
	}
	l.Debug(fmt.Sprintf(format, a...))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	if l.level > InfoLevel {
		return
	}
	l.println(s)
}

// Infof is Info with formatting
func (l *Logger) Infof(format string, a ...interface{}) {
	if l.level > InfoLevel {
		return
	}
	l.Info(fmt.Sprintf(format, a...))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	if l.level > WarnLevel {
		return
	}
	l.println(l.sprintEmoji("⚠️ ") + l.chalk.WithYellow().Bold(s))
}

// Warnf is Warn with formatting
func (l *Logger) Warnf(format string, a ...interface{}) {
	if l.level > WarnLevel {
		return
	}
	l.Warn(fmt.Sprintf(format, a...))
}

// Error prints an error line. Unlike Fail it does not exit
func (l *Logger) Error(s string) {
	if l.level > ErrorLevel {
		return
	}
	l.println(l.sprintEmoji("💣") + l.chalk.WithRed().Bold("Error: ") + s)
}

// Errorf is Error with formatting
func (l *Logger) Errorf(format string, a ...interface{}) {
	if l.level > ErrorLevel {
		return
	}
	l.Error(fmt.Sprintf(format, a...))
}

// Fail will print the given message and then exit 1
func (l *Logger) Fail(s string) {
	l.Error(s)
	os.Exit(1)
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	return &Task{l, 0, end}
}

// New returns a new Logger writing to stdout
func New() *Logger {
	logger := NewWithWriter(os.Stdout)

	// disable color for CI and pipes
	if os.Getenv("CI") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		logger.DisableColor()
	}
	return logger
}

// NewWithWriter returns a new Logger writing to w
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		out:    w,
		mu:     &sync.Mutex{},
		level:  InfoLevel,
		emojis: runtime.GOOS != "windows",
		chalk:  gchalk.New(),
	}
}

// Discard returns a logger that prints nothing
func Discard() *Logger {
	logger := NewWithWriter(io.Discard)
	logger.level = SilentLevel
	return logger
}

// OrDiscard returns l or a discarding logger if l is nil
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(e string, s string) {
	if l.level > InfoLevel {
		return
	}
	l.current++
	text := l.chalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		l.current,
		l.end,
		l.sprintEmoji(e),
		s,
	))

	// step headlines have no indentation
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, text)
}
