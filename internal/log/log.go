package log

import (
	"dex-slippage/internal/conf"
	"fmt"
	"runtime"
	"strings"

	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

func callerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(strings.Join([]string{caller.TrimmedPath(), runtime.FuncForPC(caller.PC).Name()}, ":"))
}

func newLoggerConfig(c *conf.Logger) (loggerConfig zap.Config) {
	if c.DEBUG {
		loggerConfig = zap.NewDevelopmentConfig()
	} else {
		loggerConfig = zap.NewProductionConfig()
	}
	if c.FileName != "" {
		loggerConfig.OutputPaths = []string{c.FileName}
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	loggerConfig.EncoderConfig.EncodeCaller = callerEncoder
	var zapLevel zapcore.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		zapLevel = zap.DebugLevel
	case "info":
		zapLevel = zap.InfoLevel
	case "warn":
		zapLevel = zap.WarnLevel
	case "error":
		zapLevel = zap.ErrorLevel
	default:
		zapLevel = zap.InfoLevel
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	return
}

func BootstrapLogger(c *conf.Logger) {
	if c == nil {
		c = &conf.Logger{FileName: "stdout"}
	}
	loggerConfig := newLoggerConfig(c)
	if !c.DEBUG {
		loggerConfig.DisableCaller = true
	} else {
		loggerConfig.Development = true
	}

	l, err := loggerConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(errors.Wrap(err, "error of init logger"))
	}
	logger = l
}

func Sync() {
	_ = logger.Sync()
}

func Info(msg string, args ...zap.Field) {
	logger.Info(msg, args...)
}

func Warn(msg string, args ...zap.Field) {
	logger.Warn(msg, args...)
}

func Errore(msg string, err error) {
	logger.Error(msg, zap.Any("error", err))
}

// kratosLogger routes kratos log.Helper output into the zap logger.
type kratosLogger struct{}

// NewLogger bootstraps zap from c and returns it as a kratos logger.
func NewLogger(c *conf.Logger) klog.Logger {
	BootstrapLogger(c)
	return kratosLogger{}
}

func (kratosLogger) Log(level klog.Level, keyvals ...interface{}) error {
	msg := ""
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == klog.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	switch level {
	case klog.LevelDebug:
		logger.Debug(msg, fields...)
	case klog.LevelWarn:
		logger.Warn(msg, fields...)
	case klog.LevelError, klog.LevelFatal:
		logger.Error(msg, fields...)
	default:
		logger.Info(msg, fields...)
	}
	return nil
}
