// SPDX-License-Identifier: Apache-2.0

// Package log is the logging facade of the repository. It hides the concrete
// logging backend behind a small interface so that packages can embed a logger
// without binding to logrus directly.
package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the leveled, structured logger used throughout the repository.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
	WithError(err error) Logger
}

var defaultLogger Logger = NewLogrus(logrus.New())

// Default returns the process-wide default logger.
func Default() Logger {
	return defaultLogger
}

// Set replaces the process-wide default logger. It should be called once,
// before any component captures the default.
func Set(l Logger) {
	defaultLogger = l
}

// logrusLogger adapts a logrus entry to the Logger interface.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus wraps a logrus logger.
func NewLogrus(l *logrus.Logger) Logger {
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Tracef(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *logrusLogger) WithError(err error) Logger {
	return &logrusLogger{entry: l.entry.WithError(err)}
}

// Embedding can be embedded into a struct to equip it with a logger.
type Embedding struct {
	log Logger
}

// MakeEmbedding returns an Embedding around the passed logger.
func MakeEmbedding(l Logger) Embedding {
	return Embedding{log: l}
}

// Log returns the embedded logger.
func (e Embedding) Log() Logger {
	if e.log == nil {
		return defaultLogger
	}
	return e.log
}
