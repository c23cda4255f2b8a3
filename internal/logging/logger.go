package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sccasc/cmipclean/internal/config"
	"github.com/sccasc/cmipclean/internal/term"
)

// successField marks info entries that should render as SUCCESS.
const successField = "success"

// Logger provides leveled, optionally colored logging with an optional file
// sink. Console lines go to stdout (errors to stderr); the file always
// receives uncolored lines.
type Logger struct {
	mu   sync.Mutex
	log  *logrus.Logger
	file *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(cfg.LogFile, os.Stdout, os.Stderr)
}

func newLogger(logFile string, stdout, stderr io.Writer) (*Logger, error) {
	base := logrus.New()
	base.SetOutput(io.Discard)
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{log: base}
	base.AddHook(&writerHook{
		out:       stdout,
		errOut:    stderr,
		formatter: &lineFormatter{color: term.Enabled()},
	})

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		base.AddHook(&writerHook{out: f, errOut: f, formatter: &lineFormatter{}})
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.WithField(successField, true).Infof(format, args...)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.log.Debugf(format, args...)
}

// writerHook renders every entry with formatter and writes it to out, or to
// errOut for error levels.
type writerHook struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	w := h.out
	if e.Level <= logrus.ErrorLevel {
		w = h.errOut
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = w.Write(b)
	return err
}

// lineFormatter produces "2006-01-02 15:04:05 [LEVEL] message" lines.
type lineFormatter struct {
	color bool
}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	label, c := levelLabel(e)
	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	tag := "[" + label + "]"
	if f.color {
		tag = c.Sprint(tag)
	}
	return []byte(ts.Format("2006-01-02 15:04:05") + " " + tag + " " + e.Message + "\n"), nil
}

func levelLabel(e *logrus.Entry) (string, *color.Color) {
	switch e.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR", term.Red
	case logrus.WarnLevel:
		return "WARN", term.Yellow
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", term.Cyan
	}
	if ok, _ := e.Data[successField].(bool); ok {
		return "SUCCESS", term.Green
	}
	return "INFO", term.Blue
}
