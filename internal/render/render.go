// Package render turns speech scripts into SSML documents.
//
// The renderer receives requests from transports, validates them against the
// script schema, replays their steps on a fresh speech.Builder and returns
// the rendered document. Every request gets its own builder; nothing is
// shared between requests.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/sayas/internal/message"
	"github.com/nadzzz/sayas/internal/metrics"
	"github.com/nadzzz/sayas/internal/script"
	"github.com/nadzzz/sayas/internal/speech"
	"github.com/nadzzz/sayas/internal/transport"
)

// ErrTooManySteps is returned for scripts longer than the configured limit.
// It wraps script.ErrInvalidScript.
var ErrTooManySteps = fmt.Errorf("%w: too many steps", script.ErrInvalidScript)

// Options configures a Renderer.
type Options struct {
	// Currency is used by price steps when neither the step nor the request
	// names one.
	Currency speech.Currency

	// MaxSteps rejects longer scripts. Zero means no limit.
	MaxSteps int

	// Metrics records render outcomes. Optional.
	Metrics *metrics.Metrics
}

// Renderer renders scripts.
type Renderer struct {
	currency speech.Currency
	maxSteps int
	metrics  *metrics.Metrics
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{
		currency: opts.Currency.Or(speech.Dollar),
		maxSteps: opts.MaxSteps,
		metrics:  opts.Metrics,
	}
}

// Handle renders a single request. Rejected scripts return an error wrapping
// script.ErrInvalidScript along with a result carrying the request ID and
// the error text.
func (r *Renderer) Handle(ctx context.Context, req *message.RenderRequest) (*message.RenderResult, error) {
	start := time.Now()
	via := transport.NameFrom(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	logger := slog.With("request_id", req.ID, "source", req.Source, "transport", via)
	logger.Debug("render started", "steps", len(req.Steps))

	result := &message.RenderResult{RequestID: req.ID}

	if err := r.check(req); err != nil {
		result.Error = err.Error()
		logger.Info("script rejected", "error", err)
		r.metrics.ObserveRender(via, metrics.StatusRejected, 0, time.Since(start))
		return result, err
	}

	b := speech.New(speech.WithCurrency(r.requestCurrency(req)))
	if err := script.Compile(b, req.Steps); err != nil {
		result.Error = err.Error()
		status := metrics.StatusError
		if errors.Is(err, script.ErrUnknownKind) {
			status = metrics.StatusRejected
		}
		logger.Warn("script compile failed", "error", err)
		r.metrics.ObserveRender(via, status, 0, time.Since(start))
		return result, err
	}

	result.SSML = b.Render()
	result.Fragments = b.Len()

	elapsed := time.Since(start)
	r.metrics.ObserveRender(via, metrics.StatusOK, result.Fragments, elapsed)
	logger.Info("render complete",
		"steps", len(req.Steps),
		"fragments", result.Fragments,
		"bytes", len(result.SSML),
		"duration", elapsed)

	return result, nil
}

func (r *Renderer) check(req *message.RenderRequest) error {
	if r.maxSteps > 0 && len(req.Steps) > r.maxSteps {
		return fmt.Errorf("%w: %d > %d", ErrTooManySteps, len(req.Steps), r.maxSteps)
	}
	return script.Validate(req)
}

// requestCurrency layers the request currency over the server default.
func (r *Renderer) requestCurrency(req *message.RenderRequest) speech.Currency {
	if req.Currency == nil {
		return r.currency
	}
	return req.Currency.Or(r.currency)
}
