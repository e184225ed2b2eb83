package logger

import (
	"context"
	"io"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerKey is the key for the logger in the context.
type loggerKey struct{}

// Init builds a logger that writes JSON to out and exports through the OTLP log provider,
// and stores it in the context. Development environments get debug level output.
func Init(ctx context.Context, serviceInfo, env string, out io.Writer, lp *sdklog.LoggerProvider) (context.Context, *zap.Logger) {
	level := zapcore.InfoLevel
	if env == "development" {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(out), level),
	}
	if lp != nil {
		cores = append(cores, otelzap.NewCore(serviceInfo, otelzap.WithLoggerProvider(lp)))
	}

	logger := zap.New(zapcore.NewTee(cores...)).With(zap.String("service", serviceInfo))
	return WithLogger(ctx, logger), logger
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from the context.
func FromContext(ctx context.Context) *zap.Logger {
	value := ctx.Value(loggerKey{})
	if value == nil {
		return zap.NewNop()
	}

	logger, ok := value.(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}

	return logger
}
