package log

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Log = (*Logger)(nil)

// Options selects where and how entries are written.
type Options struct {
	Level Level
	// Path is a file path, "stderr" or "stdout". Empty means discard.
	Path string
	// Encoding is "json" or "console".
	Encoding string
}

type Logger struct {
	zapLogger *zap.Logger
	level     zap.AtomicLevel
}

// New builds a zap-backed logger.
func New(opts Options) (*Logger, error) {
	if opts.Path == "" {
		return Nop(), nil
	}
	encoding := opts.Encoding
	if encoding == "" {
		encoding = "json"
	}

	level := zap.NewAtomicLevelAt(toZapLevel(opts.Level))
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config := zap.Config{
		Level:            level,
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{opts.Path},
		ErrorOutputPaths: []string{opts.Path},
		DisableCaller:    true,
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &Logger{zapLogger: zapLogger, level: level}, nil
}

// NewWithCore wraps an existing zap core, mostly for tests using zaptest/observer.
func NewWithCore(core zapcore.Core) *Logger {
	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	return &Logger{zapLogger: zap.New(core), level: level}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zapLogger: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.InfoLevel)}
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.write(zap.DebugLevel, msg, fields)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.write(zap.InfoLevel, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.write(zap.WarnLevel, msg, fields)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.write(zap.ErrorLevel, msg, fields)
}

func (l *Logger) write(level zapcore.Level, msg string, fields []Field) {
	if !l.level.Enabled(level) {
		return
	}
	if ce := l.zapLogger.Check(level, msg); ce != nil {
		ce.Write(toZapFields(fields...)...)
	}
}

func (l *Logger) With(fields ...Field) Log {
	return &Logger{
		zapLogger: l.zapLogger.With(toZapFields(fields...)...),
		level:     l.level,
	}
}

// WithContext adds the session id carried by ctx, if any.
func (l *Logger) WithContext(ctx context.Context) Log {
	if session, ok := SessionFrom(ctx); ok {
		return l.With(String("session", session))
	}
	return l
}

func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(toZapLevel(level))
}

func (l *Logger) GetLevel() Level {
	return fromZapLevel(l.level.Level())
}

func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

type sessionKey struct{}

// WithSession stores a session id in ctx for WithContext.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the session id stored by WithSession.
func SessionFrom(ctx context.Context) (string, bool) {
	session, ok := ctx.Value(sessionKey{}).(string)
	return session, ok && session != ""
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func fromZapLevel(level zapcore.Level) Level {
	switch level {
	case zap.DebugLevel:
		return LevelDebug
	case zap.WarnLevel:
		return LevelWarn
	case zap.ErrorLevel, zap.DPanicLevel, zap.PanicLevel, zap.FatalLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

func toZapFields(fields ...Field) []zap.Field {
	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case BoolType:
			zapFields[i] = zap.Bool(f.Key, f.Value.(bool))
		case DurationType:
			zapFields[i] = zap.Duration(f.Key, f.Value.(time.Duration))
		case Float64Type:
			zapFields[i] = zap.Float64(f.Key, f.Value.(float64))
		case IntType:
			zapFields[i] = zap.Int(f.Key, f.Value.(int))
		case Int64Type:
			zapFields[i] = zap.Int64(f.Key, f.Value.(int64))
		case StringType:
			zapFields[i] = zap.String(f.Key, f.Value.(string))
		case Uint64Type:
			zapFields[i] = zap.Uint64(f.Key, f.Value.(uint64))
		case StringerType:
			zapFields[i] = zap.Stringer(f.Key, f.Value.(fmt.Stringer))
		case ErrorType:
			err, _ := f.Value.(error)
			zapFields[i] = zap.NamedError(f.Key, err)
		default:
			zapFields[i] = zap.Any(f.Key, f.Value)
		}
	}
	return zapFields
}
