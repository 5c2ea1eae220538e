package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used by the converter, the MAVLink tracker and the command line tool.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<name>.<subname>" that starts at this logger's level.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	AsZap() *zap.SugaredLogger
	Sync() error
}

type impl struct {
	name  string
	level zap.AtomicLevel
	core  zapcore.Core

	*zap.SugaredLogger
}

// newImpl tees the given cores. Each core should accept Debug+; the returned logger's own level
// gates what reaches them.
func newImpl(name string, level Level, cores ...zapcore.Core) *impl {
	imp := &impl{
		name:  name,
		level: zap.NewAtomicLevelAt(level.AsZap()),
		core:  zapcore.NewTee(cores...),
	}
	logger := zap.New(imp.core, zap.AddCaller()).WithOptions(zap.IncreaseLevel(imp.level))
	if name != "" {
		logger = logger.Named(name)
	}
	imp.SugaredLogger = logger.Sugar()
	return imp
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	return newImpl(newName, imp.GetLevel(), imp.core)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	switch imp.level.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.InfoLevel:
		return INFO
	case zapcore.WarnLevel:
		return WARN
	default:
		return ERROR
	}
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	return imp.SugaredLogger
}
