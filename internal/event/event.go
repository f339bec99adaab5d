// Package event provides the minimal structured tracing surface
// internal/lsp/server uses to bracket request handling: a named span
// around each RPC method and a plain log line for conditions worth
// noting but not erroring on. Built on log/slog rather than a bespoke
// exporter, since nothing downstream in this repo consumes traces.
package event

import (
	"context"
	"log/slog"
	"time"
)

type spanKey struct{}

// Start opens a span named name and returns a derived context carrying
// it, plus a func to call when the span ends. Logs at debug level on
// both ends; mirrors the Start/done-closure shape used throughout
// internal/lsp/server.
func Start(ctx context.Context, name string) (context.Context, func()) {
	begin := time.Now()
	slog.Debug("span start", "name", name)
	ctx = context.WithValue(ctx, spanKey{}, name)
	return ctx, func() {
		slog.Debug("span end", "name", name, "elapsed", time.Since(begin))
	}
}

// Log records a message against whatever span is active on ctx, or
// with no span name if none was started.
func Log(ctx context.Context, msg string) {
	name, _ := ctx.Value(spanKey{}).(string)
	slog.Info(msg, "span", name)
}
