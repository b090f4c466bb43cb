package logsvc

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// ZapLogger is the portal's base logger.
type ZapLogger struct {
	log *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

// NewZapLogger writes JSON to stdout: info level and up in production, everything with stack
// traces from warn level otherwise.
func NewZapLogger(conf *core.Config) *ZapLogger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.DebugLevel
	options := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.ErrorOutput(zapcore.AddSync(os.Stderr)),
	}
	if conf.IsProduction() {
		level = zapcore.InfoLevel
	} else {
		options = append(options, zap.AddStacktrace(zapcore.WarnLevel), zap.Development())
	}

	c := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))
	return NewZapLoggerFrom(zap.New(c, options...).Named(conf.AppName))
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(l *zap.Logger) *ZapLogger {
	return &ZapLogger{log: l.Sugar()}
}

func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}

// fields turns our log args into zap's key/value list.
// expected: key, value pairs | error | session.Identity
func fields(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case error:
			kvs = append(kvs, zap.Error(arg))
		case session.Identity:
			kvs = append(kvs, zap.String("userId", arg.UserID), zap.Stringer("role", arg.Role))
		case string:
			if i+1 < len(args) {
				kvs = append(kvs, arg, args[i+1])
				i++
			} else {
				kvs = append(kvs, zap.String("detail", arg))
			}
		default:
			kvs = append(kvs, zap.Any("detail", arg))
		}
	}
	return kvs
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.log.Debugw(msg, fields(args)...)
}

func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.log.Infow(msg, fields(args)...)
}

func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.log.Warnw(msg, fields(args)...)
}

func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.log.Errorw(msg, fields(args)...)
}

func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.log.Fatalw(msg, fields(args)...)
}
