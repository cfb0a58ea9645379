// Package transport moves serialized request envelopes to the endpoint
// and returns the raw response bytes. It knows nothing about payload
// structure; the soap and response packages own both ends of the wire.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ewskit/ewskit/pkg/logging"
)

// maxResponseBytes bounds how much of a response body is read. EWS
// responses are large for attachment fetches but never unbounded.
const maxResponseBytes = 64 << 20

// Dispatcher sends one serialized envelope and returns the response
// envelope bytes.
type Dispatcher interface {
	Dispatch(ctx context.Context, body []byte) ([]byte, error)
}

// StatusError reports a response that carried an HTTP failure status
// without a SOAP body the caller could decode.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint returned HTTP %d", e.StatusCode)
}

// Options configures an HTTP dispatcher.
type Options struct {
	// Endpoint is the service URL requests are posted to.
	Endpoint string

	// Username and Password, when set, add HTTP basic auth.
	Username string
	Password string

	// Timeout bounds each round trip. Zero means no client timeout;
	// the per-request context still applies.
	Timeout time.Duration

	// UserAgent overrides the default request user agent.
	UserAgent string

	// Client replaces the constructed http.Client, for tests and for
	// callers with their own TLS or proxy setup.
	Client *http.Client
}

// HTTPDispatcher posts envelopes over HTTP with basic auth.
type HTTPDispatcher struct {
	endpoint  string
	username  string
	password  string
	userAgent string
	client    *http.Client
	log       *slog.Logger
}

// NewHTTPDispatcher builds a dispatcher for the given endpoint.
func NewHTTPDispatcher(opts Options, log *slog.Logger) *HTTPDispatcher {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if log == nil {
		log = logging.Nop()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "ewskit"
	}
	return &HTTPDispatcher{
		endpoint:  opts.Endpoint,
		username:  opts.Username,
		password:  opts.Password,
		userAgent: userAgent,
		client:    client,
		log:       log,
	}
}

// Dispatch posts one envelope and returns the response bytes. A 500
// status is returned with its body intact because the service reports
// schema violations as SOAP faults on that status; other failure
// statuses become a StatusError.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, body []byte) ([]byte, error) {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if d.username != "" {
		req.SetBasicAuth(d.username, d.password)
	}

	start := time.Now()
	d.log.Debug("dispatching request",
		"endpoint", d.endpoint,
		"request_id", requestID,
		"bytes", len(body),
	)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	d.log.Debug("response received",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"elapsed", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, nil
	case resp.StatusCode == http.StatusInternalServerError && len(respBody) > 0:
		// SOAP faults arrive on 500 with a parseable envelope.
		return respBody, nil
	default:
		d.log.Warn("request rejected", "request_id", requestID, "status", resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}
}
