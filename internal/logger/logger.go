package logger

import (
	"context"
	"os"
	"path/filepath"

	"newsadmin/internal/reqctx"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log — глобальный логгер. До InitLogger это no-op.
var Log = zap.NewNop()

// Options — то, что логгеру нужно из конфига.
type Options struct {
	Mode     string // "dev" — человекочитаемый вывод без файла
	Level    string
	Dir      string
	FileName string
	// Console=false пишет только в файл (терминальная админка рисует таблицу в stdout).
	Console bool
}

func InitLogger(opts Options) {
	logLevel := parseLevel(opts.Level)

	if opts.Mode == "dev" && opts.Console {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err := devCfg.Build()
		if err != nil {
			panic("не удалось создать dev-логгер: " + err.Error())
		}
		Log = logger
		return
	}

	logDir := opts.Dir
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("не удалось создать папку для логов: " + err.Error())
	}
	fileName := opts.FileName
	if fileName == "" {
		fileName = "app.log"
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		MessageKey:   "message",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, fileName),
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, logLevel),
	}
	if opts.Console {
		console := zapcore.Lock(os.Stdout)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), console, logLevel))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// WithCtx возвращает логгер с полями запроса (request_id, user_id), если они есть в контексте.
func WithCtx(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Log
	}
	l := Log
	if rid, ok := reqctx.GetRequestID(ctx); ok {
		l = l.With(zap.String("request_id", rid))
	}
	if uid, ok := reqctx.GetUserID(ctx); ok {
		l = l.With(zap.Int("user_id", uid))
	}
	return l
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
