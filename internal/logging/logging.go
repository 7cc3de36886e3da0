package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the CLI's structured logger.
type Logger struct {
	*zap.SugaredLogger
}

// creates a console logger on stderr; verbose enables debug output
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""

	if verbose {
		level = zapcore.DebugLevel
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return NewWithCore(core)
}

func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// discards everything
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// logs each transcript warning at warn level
func (l *Logger) Warnings(source string, warnings []string) {
	for _, w := range warnings {
		l.Warnw("Transcript warning",
			"source", source,
			"warning", w,
		)
	}
}
