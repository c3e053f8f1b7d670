// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// LevelLogger writes every entry at a fixed level. It keeps the familiar
// Printf/Println call shape used across the handlers.
type LevelLogger struct {
	base  *logrus.Logger
	level logrus.Level
}

// Printf logs a formatted message at the logger's level.
func (l *LevelLogger) Printf(format string, args ...interface{}) {
	l.base.Logf(l.level, format, args...)
}

// Println logs its arguments at the logger's level.
func (l *LevelLogger) Println(args ...interface{}) {
	l.base.Logln(l.level, args...)
}

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *LevelLogger
	Warn  *LevelLogger
	Error *LevelLogger
	Debug *LevelLogger
)

var base = logrus.New()

// ------------------- logger initialization -------------------

// InitLogger attaches a timestamped log file under dir. Entries keep going
// to stdout as well.
func InitLogger(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	logFileName := filepath.Join(dir, time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return err
	}

	base.SetOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

// SetLogLevel drops debug output in production.
func SetLogLevel(env string) {
	if env == "production" {
		base.SetLevel(logrus.InfoLevel)
		return
	}
	base.SetLevel(logrus.DebugLevel)
}

// SetOutput redirects every level logger. Tests use it to capture output.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func init() {
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	base.SetLevel(logrus.DebugLevel)

	Info = &LevelLogger{base: base, level: logrus.InfoLevel}
	Warn = &LevelLogger{base: base, level: logrus.WarnLevel}
	Error = &LevelLogger{base: base, level: logrus.ErrorLevel}
	Debug = &LevelLogger{base: base, level: logrus.DebugLevel}
}
