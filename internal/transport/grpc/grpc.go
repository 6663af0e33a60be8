// Package grpc implements the gRPC transport for sayas.
//
// This transport exposes the sayas.v1.Renderer service. Messages are encoded
// with a JSON codec registered under the "json" content subtype, so requests
// and results have the same shape as on the HTTP transport. It is the
// preferred transport for backend services that already speak gRPC.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nadzzz/sayas/internal/message"
	"github.com/nadzzz/sayas/internal/script"
	"github.com/nadzzz/sayas/internal/transport"
)

const (
	serviceName     = "sayas.v1.Renderer"
	renderMethod    = "/" + serviceName + "/Render"
	maxMessageBytes = 1 << 20
)

// RendererServer is the server API of the sayas.v1.Renderer service.
type RendererServer interface {
	Render(ctx context.Context, req *message.RenderRequest) (*message.RenderResult, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RendererServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Render", Handler: renderHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sayas/v1/renderer.proto",
}

func renderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.RenderRequest)
	if err := dec(in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if interceptor == nil {
		return srv.(RendererServer).Render(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: renderMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RendererServer).Render(ctx, req.(*message.RenderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Render calls the Render method on a sayas server.
func Render(ctx context.Context, cc grpc.ClientConnInterface, req *message.RenderRequest, opts ...grpc.CallOption) (*message.RenderResult, error) {
	out := new(message.RenderResult)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, renderMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port int

	mu     sync.Mutex
	server *grpc.Server
}

// New creates a new gRPC transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	slog.Info("grpc transport listening", "port", t.port)
	return t.Serve(ctx, lis, handler)
}

// Serve accepts connections on lis until ctx is cancelled or Close is called.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, handler transport.Handler) error {
	server := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxMessageBytes),
		grpc.ChainUnaryInterceptor(logUnary),
	)
	server.RegisterService(&serviceDesc, &rendererServer{handler: handler})

	t.mu.Lock()
	t.server = server
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		server.GracefulStop()
	}()

	if err := server.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.mu.Lock()
	server := t.server
	t.mu.Unlock()
	if server != nil {
		server.GracefulStop()
	}
	return nil
}

type rendererServer struct {
	handler transport.Handler
}

func (s *rendererServer) Render(ctx context.Context, req *message.RenderRequest) (*message.RenderResult, error) {
	result, err := s.handler(transport.WithName(ctx, "grpc"), req)
	if err != nil {
		return nil, toStatus(err)
	}
	return result, nil
}

// toStatus maps renderer errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, script.ErrInvalidScript), errors.Is(err, script.ErrUnknownKind):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		sentry.CaptureException(err)
		return status.Error(codes.Internal, err.Error())
	}
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	slog.Debug("grpc call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))
	return resp, err
}
