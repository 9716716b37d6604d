package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const (
	// FieldPackage is the key for the package emitting the entry.
	FieldPackage = "package"

	// FieldFunction is the key for the function emitting the entry.
	FieldFunction = "function"
)

// Fields is a set of structured key-value pairs attached to an entry.
type Fields map[string]interface{}

// Log is a structured logger.
type Log interface {
	WithField(key string, value interface{}) Log
	WithFields(fields Fields) Log

	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error, msg string)
}

// Config selects the level, format and destination of log entries.
type Config struct {
	Level  string
	Format string

	// Output receives the log entries. Stderr when nil.
	Output io.Writer
}

type logrusLog struct {
	entry *logrus.Entry
}

// New creates a logrus backed logger.
func New(conf Config) (Log, error) {
	l := logrus.New()

	level := conf.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", conf.Level)
	}
	l.SetLevel(lvl)

	switch conf.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unsupported log format %q", conf.Format)
	}

	if conf.Output != nil {
		l.SetOutput(conf.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	return &logrusLog{entry: logrus.NewEntry(l)}, nil
}

// NewNullLogger creates a logger that discards output and records every
// entry in the returned hook.
func NewNullLogger() (Log, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.TraceLevel)
	return &logrusLog{entry: logrus.NewEntry(l)}, hook
}

// Discard returns a logger that drops everything.
func Discard() Log {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logrusLog{entry: logrus.NewEntry(l)}
}

func (l *logrusLog) WithField(key string, value interface{}) Log {
	return &logrusLog{entry: l.entry.WithField(key, value)}
}

func (l *logrusLog) WithFields(fields Fields) Log {
	return &logrusLog{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logrusLog) Trace(msg string) {
	l.entry.Trace(msg)
}

func (l *logrusLog) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *logrusLog) Info(msg string) {
	l.entry.Info(msg)
}

func (l *logrusLog) Warn(msg string) {
	l.entry.Warn(msg)
}

func (l *logrusLog) Error(err error, msg string) {
	l.entry.WithError(err).Error(msg)
}
