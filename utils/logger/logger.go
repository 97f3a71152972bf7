// Package logger provides the process-wide structured logger. It defaults
// to a console logger so packages can log during init(), and is
// reconfigured once the real ServerConfig is loaded (see Init).
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide sugared logger.
var Log *zap.SugaredLogger

func init() {
	Log = build(zapcore.NewTee(consoleCore()))
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func consoleCore() zapcore.Core {
	enc := zapcore.NewJSONEncoder(encoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(os.Stdout), zapcore.DebugLevel)
}

func fileCore(logpath string) (zapcore.Core, error) {
	if err := os.MkdirAll(logpath, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", logpath, err)
	}
	f, err := os.OpenFile(filepath.Join(logpath, "tombola.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	enc := zapcore.NewJSONEncoder(encoderConfig())
	return zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.DebugLevel), nil
}

func build(core zapcore.Core) *zap.SugaredLogger {
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Mode selects which sinks Init wires up.
type Mode string

const (
	Console Mode = "console"
	File    Mode = "file"
	Both    Mode = "both"
)

// Init reconfigures the process-wide logger per the loaded ServerConfig.
// Callers pass the config's Logging mode and LogPath directly to avoid a
// dependency from logger on the config package.
func Init(mode Mode, logpath string) error {
	var cores []zapcore.Core

	if mode == Console || mode == Both {
		cores = append(cores, consoleCore())
	}
	if mode == File || mode == Both {
		fc, err := fileCore(logpath)
		if err != nil {
			return err
		}
		cores = append(cores, fc)
	}
	if len(cores) == 0 {
		cores = append(cores, consoleCore())
	}

	Log = build(zapcore.NewTee(cores...))
	return nil
}

// Convenience wrappers, matching the teacher's calling convention.

func Info(args ...interface{})  { Log.Info(args...) }
func Infof(t string, a ...interface{}) { Log.Infof(t, a...) }

func Error(args ...interface{})  { Log.Error(args...) }
func Errorf(t string, a ...interface{}) { Log.Errorf(t, a...) }

func Debug(args ...interface{})  { Log.Debug(args...) }
func Debugf(t string, a ...interface{}) { Log.Debugf(t, a...) }

func Warn(args ...interface{})  { Log.Warn(args...) }
func Warnf(t string, a ...interface{}) { Log.Warnf(t, a...) }
