package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

type requestAttrs struct {
	requestID string
	subject   string
}

// WithRequestID returns a context whose log records carry request_id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	attrs := fromContext(ctx)
	attrs.requestID = requestID
	return context.WithValue(ctx, ctxKey{}, attrs)
}

// WithSubject returns a context whose log records carry the caller's subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	attrs := fromContext(ctx)
	attrs.subject = subject
	return context.WithValue(ctx, ctxKey{}, attrs)
}

func fromContext(ctx context.Context) requestAttrs {
	if attrs, ok := ctx.Value(ctxKey{}).(requestAttrs); ok {
		return attrs
	}
	return requestAttrs{}
}

// ContextHandler adds request attributes stored in the context to each record.
type ContextHandler struct {
	next slog.Handler
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if ctx != nil {
		attrs := fromContext(ctx)
		if attrs.requestID != "" {
			record.AddAttrs(slog.String("request_id", attrs.requestID))
		}
		if attrs.subject != "" {
			record.AddAttrs(slog.String("subject", attrs.subject))
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}
