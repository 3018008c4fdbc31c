// Package logging builds the zap logger shared by the CLI and HTTP server.
package logging

import (
	"fmt"
	"os"

	"github.com/alexanderramin/studyweek/internal/config"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. Format "auto" picks the console
// encoder when stderr is a terminal and JSON otherwise.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewWithSink(cfg, zapcore.Lock(os.Stderr), tty)
}

// NewWithSink builds a logger over an arbitrary sink. tty resolves the
// "auto" format.
func NewWithSink(cfg config.LogConfig, sink zapcore.WriteSyncer, tty bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	format := cfg.Format
	if format == "" || format == "auto" {
		format = "json"
		if tty {
			format = "console"
		}
	}
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	core := zapcore.NewCore(newEncoder(format), sink, level)
	return zap.New(core, zap.AddCaller()), nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}
