// Package http implements the HTTP/WebSocket transport for sayas.
//
// This transport exposes a REST endpoint that renders one script per request
// and a WebSocket endpoint that renders a stream of scripts over a single
// connection. It is best suited for web clients and voice-app backends.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/nadzzz/sayas/docs" // registers the swagger spec
	"github.com/nadzzz/sayas/internal/message"
	"github.com/nadzzz/sayas/internal/script"
	"github.com/nadzzz/sayas/internal/transport"
)

const (
	// maxBodyBytes bounds a single script.
	maxBodyBytes = 1 << 20

	// ContentTypeSSML is returned when the caller asks for raw markup.
	ContentTypeSSML = "application/ssml+xml"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Transport implements transport.Transport over HTTP and WebSocket.
type Transport struct {
	port   int
	server *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           Routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Routes builds the HTTP handler tree. Panics are reported to Sentry when it
// is configured and re-raised to net/http.
func Routes(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	// POST /v1/render renders a JSON or YAML script.
	mux.HandleFunc("POST /v1/render", func(w http.ResponseWriter, r *http.Request) {
		handleRender(w, r, handler)
	})

	// GET /v1/schema returns the script JSON schema.
	mux.HandleFunc("GET /v1/schema", handleSchema)

	// GET /v1/ws renders one script per WebSocket text message.
	mux.HandleFunc("GET /v1/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, handler)
	})

	// Swagger UI serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(mux)
}

// handleRender processes a POST /v1/render request.
//
// @Summary     Render a speech script
// @Description Accepts a script (JSON or YAML) describing an ordered list of speech steps and
// @Description returns the SSML document. With format=ssml the raw markup is returned instead of JSON.
// @Tags        render
// @Accept      json
// @Accept      application/yaml
// @Produce     json
// @Produce     application/ssml+xml
// @Param       request  body      message.RenderRequest  true   "Speech script"
// @Param       format   query     string                 false  "Set to ssml for raw markup"
// @Success     200  {object}  message.RenderResult  "Rendered document"
// @Failure     400  {object}  message.RenderResult  "Invalid script"
// @Failure     500  {string}  string                "Internal processing error"
// @Router      /v1/render [post]
func handleRender(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) > maxBodyBytes {
		http.Error(w, "script too large", http.StatusRequestEntityTooLarge)
		return
	}

	req, err := script.Parse(body, script.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &message.RenderResult{Error: err.Error()})
		return
	}

	ctx := transport.WithName(r.Context(), "http")
	result, err := handler(ctx, req)
	if err != nil {
		if isClientError(err) {
			writeJSON(w, http.StatusBadRequest, resultOrError(result, req, err))
			return
		}
		slog.Error("render failed", "error", err)
		sentry.CaptureException(err)
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsSSML(r) {
		w.Header().Set("Content-Type", ContentTypeSSML+"; charset=utf-8")
		_, _ = io.WriteString(w, result.SSML)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSchema serves the script schema.
//
// @Summary     Script JSON schema
// @Tags        render
// @Produce     json
// @Success     200  {object}  object  "JSON schema"
// @Router      /v1/schema [get]
func handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(script.Schema())
}

// handleWebSocket renders every text message received on the connection
// and answers each with a JSON RenderResult, in order.
func handleWebSocket(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	ctx := transport.WithName(r.Context(), "ws")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read ended", "error", err)
			}
			return
		}

		req, err := script.Parse(data, script.FormatJSON)
		if err != nil {
			if err := conn.WriteJSON(&message.RenderResult{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		result, err := handler(ctx, req)
		if err != nil {
			if !isClientError(err) {
				slog.Error("render failed", "error", err)
				sentry.CaptureException(err)
			}
			result = resultOrError(result, req, err)
		}
		if err := conn.WriteJSON(result); err != nil {
			slog.Debug("websocket write failed", "error", err)
			return
		}
	}
}

func isClientError(err error) bool {
	return errors.Is(err, script.ErrInvalidScript) || errors.Is(err, script.ErrUnknownKind)
}

func resultOrError(result *message.RenderResult, req *message.RenderRequest, err error) *message.RenderResult {
	if result != nil {
		return result
	}
	return &message.RenderResult{RequestID: req.ID, Error: err.Error()}
}

// wantsSSML reports whether the caller asked for raw markup, either with
// ?format=ssml or an Accept header naming the SSML media type.
func wantsSSML(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "ssml") {
		return true
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == ContentTypeSSML {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
