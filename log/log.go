// Package log writes a daily file under where.Logs() once logs.write is
// set. Until Setup enables it every record is dropped.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dlive-cli/dlive/filesystem"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var logger = discard()

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup opens today's log file according to the logs.* settings.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = discard()
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format(time.DateOnly)+".log")
	file, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	if viper.GetBool(key.LogsJson) {
		formatter = &logrus.JSONFormatter{}
	}

	l := logrus.New()
	l.SetOutput(file)
	l.SetFormatter(formatter)
	l.SetLevel(level)
	logger = l
	return nil
}

// Fields annotate a record.
type Fields = logrus.Fields

// WithFields returns an entry carrying fields on every record it writes.
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
