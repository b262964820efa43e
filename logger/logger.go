package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log   *zap.Logger        = zap.NewNop()
	Sugar *zap.SugaredLogger = Log.Sugar()
)

// Init configures the global logger to write JSON lines to stderr.
// With debug set, Debug entries are kept too.
func Init(debug bool) {
	InitWithWriter(os.Stderr, debug)
}

// InitWithWriter is like Init, but writes to w.
func InitWithWriter(w io.Writer, debug bool) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), level)

	Log = zap.New(core, zap.AddCaller())
	Sugar = Log.Sugar()
}
