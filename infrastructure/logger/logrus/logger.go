// ABOUTME: Logrus-backed structured logger with JSON output
// ABOUTME: Optionally writes to a size-rotated file through lumberjack

package logrus

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger output
type Config struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Output     io.Writer
}

// Logger implements interfaces.Logger on top of logrus
type Logger struct {
	entry *logrus.Logger
}

// NewLogger creates a JSON logger. An unknown level falls back to info.
func NewLogger(cfg Config) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch {
	case cfg.Output != nil:
		l.SetOutput(cfg.Output)
	case cfg.File != "":
		l.SetOutput(io.MultiWriter(os.Stdout, newRotatingFile(cfg)))
	default:
		l.SetOutput(os.Stdout)
	}

	return &Logger{entry: l}
}

func newRotatingFile(cfg Config) *lumberjack.Logger {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	backups := cfg.MaxBackups
	if backups <= 0 {
		backups = 3
	}
	age := cfg.MaxAgeDays
	if age <= 0 {
		age = 28
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize, // megabytes
		MaxBackups: backups,
		MaxAge:     age, // days
		Compress:   true,
	}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}
