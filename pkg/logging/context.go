package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithRequestID adds a request ID to the context and to its logger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return withField(ctx, "request_id", requestID)
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// withFields adds structured fields to the logger in the context.
func withFields(ctx context.Context, fields map[string]any) context.Context {
	logCtx := FromContext(ctx).With()
	for key, value := range fields {
		logCtx = addFieldToContext(logCtx, key, value)
	}
	logger := logCtx.Logger()
	return WithLogger(ctx, &logger)
}

// withField adds a single field to the logger in the context.
func withField(ctx context.Context, key string, value any) context.Context {
	logger := addFieldToContext(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &logger)
}

// addFieldToContext adds a field to the logger context based on its type.
func addFieldToContext(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}

// WithWorkspace adds the remote workspace to the logger.
func WithWorkspace(ctx context.Context, workspace string) context.Context {
	return withField(ctx, "workspace", workspace)
}

// WithDependency adds the dependency name and version to the logger.
func WithDependency(ctx context.Context, name, version string) context.Context {
	return withFields(ctx, map[string]any{
		"dependency": name,
		"version":    version,
	})
}

// WithRepository adds the code repository being reported to the logger.
func WithRepository(ctx context.Context, repository string) context.Context {
	return withField(ctx, "repository", repository)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withField(ctx, "operation", operation)
}
