// Package transport defines the interface for pluggable request transports.
//
// Each transport (gRPC, HTTP/WebSocket) implements this interface and hands
// decoded scripts to the renderer. The renderer doesn't care how requests
// arrive; it only works with the Handler contract.
package transport

import (
	"context"

	"github.com/nadzzz/sayas/internal/message"
)

// Handler renders a request and returns the result.
// The renderer provides this handler to each transport.
type Handler func(ctx context.Context, req *message.RenderRequest) (*message.RenderResult, error)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http").
	Name() string

	// Listen starts accepting requests and passes them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}

type nameKey struct{}

// WithName tags ctx with the name of the transport that received a request.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, nameKey{}, name)
}

// NameFrom returns the transport name stored in ctx, or "".
func NameFrom(ctx context.Context) string {
	name, _ := ctx.Value(nameKey{}).(string)
	return name
}
