package scalarfl

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a development-mode zap logger: short clock-only
// timestamps, debug gated behind a flag, stack traces reserved for Fatal.
// named puts the logger into its own subsystem ("compile" or "eval") so
// the compile/eval split visible in compile.go, program.go, and eval.go
// shows up as a field on every line instead of every call site repeating it.
func newLogger(debug bool, named string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("04:05.000")
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	log = log.WithOptions(zap.IncreaseLevel(lvl), zap.AddStacktrace(zapcore.FatalLevel))
	if named != "" {
		log = log.Named(named)
	}
	return log.Sugar()
}

var (
	compileLogger = newLogger(false, "compile")
	evalLogger    = newLogger(false, "eval")
)

// SetDebug turns on (or off) debug-level tracing of compiles and
// evaluations for the lifetime of the process.
func SetDebug(debug bool) {
	compileLogger = newLogger(debug, "compile")
	evalLogger = newLogger(debug, "eval")
}
