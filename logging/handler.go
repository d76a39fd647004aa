// Package logging provides the structured log handler the query server
// installs as the default slog handler: a plain, single-line-per-record
// text format geared at terminal and log-aggregator consumption alike.
package logging

import (
	"context"
	"io"
	"sync"

	"golang.org/x/exp/slog"
)

// Handler wraps slog's text handler with a lock-protected writer and a
// fixed field order, so concurrent per-query goroutines never interleave
// partial lines.
type Handler struct {
	inner slog.Handler
	mu    *sync.Mutex
	out   io.Writer
}

func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out: out,
		inner: slog.NewTextHandler(out, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu: &sync.Mutex{},
	}
}

func (self *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return self.inner.Enabled(ctx, level)
}

func (self *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: self.inner.WithAttrs(attrs), out: self.out, mu: self.mu}
}

func (self *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: self.inner.WithGroup(name), out: self.out, mu: self.mu}
}

func (self *Handler) Handle(ctx context.Context, r slog.Record) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.inner.Handle(ctx, r)
}
