package log

import "context"

// Hook derives extra fields from the context for every log entry.
type Hook interface {
	Apply(ctx context.Context, msg string) []Field
}

type HookFunc func(ctx context.Context, msg string) []Field

func (f HookFunc) Apply(ctx context.Context, msg string) []Field {
	return f(ctx, msg)
}

type requestIDKey struct{}

// WithRequestID attaches a request id that will be appended to every log entry.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

func requestIDFields(ctx context.Context, _ string) []Field {
	if ctx == nil {
		return nil
	}

	if id, ok := RequestID(ctx); ok {
		return []Field{String("request_id", id)}
	}

	return nil
}

var hooks = []Hook{HookFunc(requestIDFields)}

func contextFields(ctx context.Context) []Field {
	var fields []Field
	for _, h := range hooks {
		fields = append(fields, h.Apply(ctx, "")...)
	}

	return fields
}
