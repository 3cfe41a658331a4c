// Package log provides structured logging with filesystem-based persistence.
//
// Nothing is emitted unless logs.write is enabled; the terminal output of a
// crawl is produced by the cmd package, this package only keeps the audit trail.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields carries structured context attached to a single log entry.
type Fields = logrus.Fields

// enabled indicates the persistent logging state for the active application instance.
var enabled bool

// Setup initializes the logging subsystem, including file handles, formatting, and severity levels based on global configuration.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}

// ErrorWith logs msg and err together with their context fields.
func ErrorWith(fields Fields, msg string, err error) {
	if enabled {
		logrus.WithFields(fields).WithError(err).Error(msg)
	}
}

// InfoWith logs msg together with its context fields.
func InfoWith(fields Fields, msg string) {
	if enabled {
		logrus.WithFields(fields).Info(msg)
	}
}

// WarnWith logs msg together with its context fields.
func WarnWith(fields Fields, msg string) {
	if enabled {
		logrus.WithFields(fields).Warn(msg)
	}
}
