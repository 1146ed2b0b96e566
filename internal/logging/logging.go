// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Setup installs the global logger. Console output goes to stderr so it
// never interleaves with scan results on stdout. When logFile is set, a
// rotating copy of every event is also written there.
func Setup(verbose bool, logFile string) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}

	var writer zerolog.LevelWriter = zerolog.MultiLevelWriter(console)
	if logFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
		writer = zerolog.MultiLevelWriter(console, rotating)
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger().Level(level)
}
