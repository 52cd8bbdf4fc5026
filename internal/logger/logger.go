// Package logger builds the application's logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much is logged.
type Options struct {
	Level       string // logrus level name, "info" when empty
	FileLogging bool   // also write to a rotating file unless APP_ENV=test
	Dir         string // log directory, "logs" when empty
	Name        string // file name prefix, "facepilot" when empty
}

// New creates a logger writing to stderr and, if enabled, to
// <Dir>/<Name>-YYYY-MM-DD.log.
func New(opts Options) (*logrus.Logger, error) {
	if opts.Level == "" {
		opts.Level = "info"
	}
	if opts.Dir == "" {
		opts.Dir = "logs"
	}
	if opts.Name == "" {
		opts.Name = "facepilot"
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:        false,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		FieldsOrder:     []string{"component", "session_id", "mode"},
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" \x1b[%dm[%s:%d][%s()]", 34, path.Base(f.File), f.Line, funcName)
		},
	})

	writers := []io.Writer{os.Stderr}
	if opts.FileLogging && os.Getenv("APP_ENV") != "test" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   FilePath(opts.Dir, opts.Name, time.Now()),
			LocalTime:  true,
			Compress:   true,
			MaxSize:    10,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	logger.SetOutput(io.MultiWriter(writers...))
	logger.SetReportCaller(true)

	return logger, nil
}

// FilePath returns the dated log file path for day.
func FilePath(dir, name string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", name, day.Format("2006-01-02")))
}
