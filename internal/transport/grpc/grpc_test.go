package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nadzzz/sayas/internal/message"
	"github.com/nadzzz/sayas/internal/render"
	"github.com/nadzzz/sayas/internal/transport"
)

// startServer serves handler on an in-memory listener and returns a client
// connection to it.
func startServer(t *testing.T, handler transport.Handler) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	tr := New(0)
	done := make(chan error, 1)
	go func() { done <- tr.Serve(ctx, lis, handler) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("grpc server did not stop")
		}
	})
	return conn
}

func TestRender(t *testing.T) {
	conn := startServer(t, render.New(render.Options{}).Handle)

	res, err := Render(context.Background(), conn, &message.RenderRequest{
		ID: "call-1",
		Steps: []message.Step{
			{Kind: message.StepText, Value: "Press "},
			{Kind: message.StepDigits, Value: "1"},
			{Kind: message.StepPause, Value: 0.5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "call-1", res.RequestID)
	assert.Equal(t,
		`<speak>Press <say-as interpret-as="digits">1</say-as><break time="0.5s"/></speak>`,
		res.SSML)
	assert.Equal(t, 3, res.Fragments)
}

func TestRender_InvalidScript(t *testing.T) {
	conn := startServer(t, render.New(render.Options{}).Handle)

	_, err := Render(context.Background(), conn, &message.RenderRequest{
		Steps: []message.Step{{Kind: "yell", Value: "hi"}},
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRender_InternalError(t *testing.T) {
	conn := startServer(t, func(context.Context, *message.RenderRequest) (*message.RenderResult, error) {
		return nil, errors.New("boom")
	})

	_, err := Render(context.Background(), conn, &message.RenderRequest{Steps: []message.Step{}})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "boom")
}

func TestRender_TagsTransport(t *testing.T) {
	var got string
	conn := startServer(t, func(ctx context.Context, req *message.RenderRequest) (*message.RenderResult, error) {
		got = transport.NameFrom(ctx)
		return &message.RenderResult{RequestID: req.ID}, nil
	})

	res, err := Render(context.Background(), conn, &message.RenderRequest{ID: "x", Steps: []message.Step{}})
	require.NoError(t, err)
	assert.Equal(t, "x", res.RequestID)
	assert.Equal(t, "grpc", got)
}

func TestToStatus(t *testing.T) {
	assert.Equal(t, codes.Canceled, status.Code(toStatus(context.Canceled)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatus(context.DeadlineExceeded)))
	assert.Equal(t, codes.InvalidArgument, status.Code(toStatus(render.ErrTooManySteps)))
}

func TestCodec(t *testing.T) {
	var c jsonCodec
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&message.RenderResult{RequestID: "r", Fragments: 2})
	require.NoError(t, err)

	var out message.RenderResult
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "r", out.RequestID)

	assert.Error(t, c.Unmarshal([]byte(`{"request_id":"r","extra":1}`), &out))
}

func TestClose_BeforeListen(t *testing.T) {
	assert.NoError(t, New(0).Close())
}
