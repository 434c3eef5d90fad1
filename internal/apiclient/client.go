// Package apiclient calls the external note, billing and auth API.
//
// Every call gets a span, a latency observation and goes through a circuit
// breaker that fails fast once the API keeps erroring. Non-2xx responses are
// decoded from the {message, errorCode} envelope and returned as coded
// domain errors wrapping an *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/circuit"
)

const (
	tracerName      = "tenantnotes/apiclient"
	maxResponseSize = 4 << 20
	defaultTimeout  = 10 * time.Second
)

var ErrCircuitOpen = dErrors.New(dErrors.CodeUnavailable, "service unavailable")

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuit.Breaker
	tracer     trace.Tracer
	metrics    *Metrics
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) { cl.breaker = b }
}

func WithMetrics(m *Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(cl *Client) { cl.tracer = t }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		breaker:    circuit.New("external-api"),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// call describes one API request.
type call struct {
	operation string
	method    string
	path      string
	token     string
	body      any
	out       any
}

func (c *Client) do(ctx context.Context, cl call) error {
	ctx, span := c.tracer.Start(ctx, "apiclient."+cl.operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", cl.method),
			attribute.String("url.path", cl.path),
		),
	)
	defer span.End()

	start := time.Now()
	outcome := "ok"
	defer func() {
		c.metrics.observe(cl.operation, outcome, time.Since(start).Seconds())
	}()

	if !c.breaker.Allow() {
		outcome = "circuit_open"
		span.SetStatus(codes.Error, "circuit open")
		return ErrCircuitOpen
	}

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "build api request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "transport_error"
		c.recordFailure(ctx, cl.operation)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		if errors.Is(err, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "api request timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "service unavailable")
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		outcome = "transport_error"
		c.recordFailure(ctx, cl.operation)
		span.RecordError(err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "read api response")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure(ctx, cl.operation)
	} else {
		c.recordSuccess(ctx, cl.operation)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = fmt.Sprintf("status_%d", resp.StatusCode)
		apiErr := decodeAPIError(resp.StatusCode, data)
		span.SetStatus(codes.Error, apiErr.Error())
		return toDomainError(apiErr)
	}

	if cl.out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		outcome = "decode_error"
		span.RecordError(err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "unexpected api response")
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	apiErr.Status = status
	return apiErr
}

func (c *Client) recordFailure(ctx context.Context, operation string) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.metrics.setBreakerOpen(true)
		c.logger.WarnContext(ctx, "external api circuit opened", "operation", operation)
	}
}

func (c *Client) recordSuccess(ctx context.Context, operation string) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.metrics.setBreakerOpen(false)
		c.logger.InfoContext(ctx, "external api circuit closed", "operation", operation)
	}
}
