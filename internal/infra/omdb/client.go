package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bikram73/Netflix-Clone/internal/core/port"
	"github.com/bikram73/Netflix-Clone/internal/infra/config"
)

const instrumentationName = "github.com/bikram73/Netflix-Clone/internal/infra/omdb"

const (
	opSearch  = "search"
	opDetails = "details"
)

// ErrInvalidBody is returned when the upstream answers with something other than JSON.
var ErrInvalidBody = errors.New("omdb: response body is not valid JSON")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb: unexpected status %d", e.StatusCode)
}

// Recorder receives one observation per upstream call.
type Recorder interface {
	UpstreamRequest(operation, outcome string, seconds float64)
}

// Option customises the client.
type Option func(*Client)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(instrumentationName)
	}
}

// Client queries the OMDb API and relays its JSON bodies unchanged.
type Client struct {
	http     *resty.Client
	baseURL  string
	apiKey   string
	logger   *zap.Logger
	tracer   trace.Tracer
	recorder Recorder
}

// NewClient builds a client without retries or a client-side timeout; the
// caller's context bounds each request.
func NewClient(cfg config.MetadataSettings, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		http: resty.New().
			SetRetryCount(0).
			SetHeader("Accept", "application/json"),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
		tracer:  otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchTitles runs a title search (?s=).
func (c *Client) SearchTitles(ctx context.Context, query string) (json.RawMessage, error) {
	return c.get(ctx, opSearch, "s", query)
}

// GetTitleDetails fetches one title by IMDb id (?i=).
func (c *Client) GetTitleDetails(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, opDetails, "i", id)
}

func (c *Client) get(ctx context.Context, op, param, value string) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "omdb."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("omdb."+param, value)),
	)
	defer span.End()

	start := time.Now()
	body, err := c.do(ctx, param, value)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("omdb request failed",
			zap.String("operation", op),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
	}
	if c.recorder != nil {
		c.recorder.UpstreamRequest(op, outcome, elapsed.Seconds())
	}

	return body, err
}

func (c *Client) do(ctx context.Context, param, value string) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			param:    value,
			"apikey": c.apiKey,
		}).
		Get(c.baseURL)
	if err != nil {
		// url.Error carries the request URL, which includes the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("omdb request: %w", err)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))

	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode()}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, ErrInvalidBody
	}

	return json.RawMessage(body), nil
}

var _ port.MetadataProvider = (*Client)(nil)
