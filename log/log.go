// Package log writes diagnostics to a daily file when logs.write is set.
// Nothing is written otherwise.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/poolsuite-cli/poolsuite/filesystem"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var logger = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Path returns the log file for the given day.
func Path(day time.Time) string {
	return filepath.Join(where.Logs(), day.Format("2006-01-02")+".log")
}

// Setup configures the logger from viper.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = newDiscard()
		return nil
	}

	f, err := filesystem.API().OpenFile(Path(time.Now()), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Warn(args ...any) {
	logger.Warn(args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Tracef(format string, args ...any) {
	logger.Tracef(format, args...)
}
