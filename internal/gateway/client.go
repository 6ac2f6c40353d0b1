package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"emsconsole/internal/platform/config"
	"emsconsole/internal/platform/metrics"
)

// maxBody caps how much of an upstream response is buffered.
const maxBody = 32 << 20

// ErrNoToken is returned by authenticated operations when no credential is bound.
var ErrNoToken = errors.New("gateway: no session token")

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
	Metrics     *metrics.Collector
	// Transport overrides the instrumented default transport.
	Transport http.RoundTripper
}

// Client talks to the upstream EMS REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Collector
}

func New(opts Options) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := opts.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "ems-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A 4xx answer means the upstream is healthy and said no. A call the
		// caller abandoned says nothing about upstream health either way.
		IsSuccessful: func(err error) bool {
			var gerr *Error
			if errors.As(err, &gerr) {
				return gerr.abandoned || (gerr.Status >= 400 && gerr.Status < 500)
			}
			return err == nil
		},
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		breaker: gobreaker.NewCircuitBreaker(settings),
		metrics: opts.Metrics,
	}
}

func NewFromConfig(cfg config.Config, collector *metrics.Collector) *Client {
	return New(Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.APITimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
		Metrics:     collector,
	})
}

// API is a Client bound to one session's bearer token.
type API struct {
	c     *Client
	token string
}

func (c *Client) WithToken(token string) *API {
	return &API{c: c, token: strings.TrimSpace(token)}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	token  string
	// auth marks operations that must not be sent without a token.
	auth bool
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, req request) (*response, error) {
	if req.auth && req.token == "" {
		return nil, ErrNoToken
	}
	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, req)
	})
	c.metrics.RecordUpstream(failed(err), time.Since(start))
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &Error{Err: err}
		}
		return nil, err
	}
	return out.(*response), nil
}

func failed(err error) bool {
	if err == nil {
		return false
	}
	var gerr *Error
	if errors.As(err, &gerr) && (gerr.abandoned || (gerr.Status >= 400 && gerr.Status < 500)) {
		return false
	}
	return true
}

// transportError wraps a failure to get an answer. When the caller's own
// context is done the call is marked abandoned so it does not count against
// the upstream.
func transportError(ctx context.Context, status int, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Error{Status: status, Err: fmt.Errorf("%w: %w", ctxErr, err), abandoned: true}
	}
	return &Error{Status: status, Err: err}
}

func (c *Client) roundTrip(ctx context.Context, req request) (*response, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("gateway: marshal %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, 0, fmt.Errorf("%s %s: %w", req.method, req.path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, transportError(ctx, resp.StatusCode, fmt.Errorf("read %s %s: %w", req.method, req.path, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// serverMessage extracts a human message from an error body, accepting
// {message}, {error: {message}} and {error: "text"}.
func serverMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	if len(body.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(body.Error, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

// enveloped decodes a {data: T} body.
func enveloped[T any](resp *response) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("gateway: decode enveloped response: %w", err)
	}
	return env.Data, nil
}

// raw decodes a body that is T itself.
func raw[T any](resp *response) (T, error) {
	var out T
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return out, fmt.Errorf("gateway: decode response: %w", err)
	}
	return out, nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	return q
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

// ack reads a confirmation body. A 2xx answer is success even when the body
// is not the usual {success, message} object.
func ack(resp *response) Ack {
	out := Ack{Success: true}
	var body Ack
	if err := json.Unmarshal(resp.body, &body); err == nil {
		out.Message = body.Message
	}
	return out
}
