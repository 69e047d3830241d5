package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Console-only logger until InitLogger wires up the rotating file.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// InitLogger routes log output to the console and a rotating file under dir.
func InitLogger(dir, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "scraper.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}

	logger = zerolog.New(io.MultiWriter(console, fileWriter)).
		Level(lvl).
		With().Timestamp().Logger()
	return nil
}

func Debug(format string, a ...interface{}) {
	logger.Debug().Msgf(format, a...)
}

func Info(format string, a ...interface{}) {
	logger.Info().Msgf(format, a...)
}

func Success(format string, a ...interface{}) {
	logger.Info().Str("status", "ok").Msgf(format, a...)
}

func Warn(format string, a ...interface{}) {
	logger.Warn().Msgf(format, a...)
}

func Error(format string, a ...interface{}) {
	logger.Error().Msgf(format, a...)
}
