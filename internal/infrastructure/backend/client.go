// Package backend is the HTTP client for the task manager REST API.
//
// Every response is wrapped in an envelope {success, data, message}; the
// client unwraps data on success and turns failures into *APIError values
// that wrap one of the domain sentinel errors.
package backend

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

	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

// Config captures how to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// APIError is a failed backend call. Kind is one of the domain sentinels
// and Message is the backend's own explanation, when it gave one.
type APIError struct {
	Op      string
	Status  int
	Message string
	Kind    error
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Op, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func (e *APIError) UserMessage() string { return e.Message }

type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to the REST backend. It is safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url: unsupported scheme %q", base.Scheme)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: base, http: hc, log: log}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.base.String() }

// Ping checks that the backend answers HTTP at all. Any response,
// whatever its status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// request describes one backend call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
	// auth marks /auth endpoints, where every 4xx is an authentication
	// failure.
	auth bool
}

func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		metrics.BackendRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
		metrics.BackendRequestsTotal.WithLabelValues(r.op, outcome(err)).Inc()
		if err != nil {
			c.log.Debug().Err(err).Str("op", r.op).Int("status", status).Msg("backend call failed")
		}
	}()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return &APIError{Op: r.op, Kind: domain.ErrNetwork, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Op: r.op, Kind: domain.ErrNetwork, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &APIError{Op: r.op, Status: status, Kind: domain.ErrNetwork, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if status < 200 || status > 299 {
		apiErr := &APIError{Op: r.op, Status: status, Kind: classify(status, r.auth)}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return &APIError{Op: r.op, Status: status, Kind: domain.ErrNetwork, Err: fmt.Errorf("malformed envelope: %w", decodeErr)}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{Op: r.op, Status: status, Kind: domain.ErrNetwork, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Op: r.op, Status: status, Kind: domain.ErrNetwork, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.base.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	return req, nil
}

// classify maps an HTTP failure status onto the domain taxonomy.
func classify(status int, auth bool) error {
	switch {
	case auth && status >= 400 && status < 500:
		return domain.ErrAuthFailure
	case status == http.StatusUnauthorized:
		return domain.ErrAuthFailure
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	default:
		return domain.ErrNetwork
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAuthFailure):
		return "auth_failure"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "network"
	}
}

func limitQuery(q url.Values, limit int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}

var (
	_ ports.AuthBackend     = (*Client)(nil)
	_ ports.TaskBackend     = (*Client)(nil)
	_ ports.EmployeeBackend = (*Client)(nil)
)
