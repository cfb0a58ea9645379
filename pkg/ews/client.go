// Package ews is the operation catalog: one method per web-service
// call, each assembling a logical payload into an envelope, dispatching
// it and decoding the reported outcomes.
//
// Options are passed as soap.Map payloads using the same snake_case
// conventions the element engine consumes, so callers can express any
// request the wire schema allows without waiting for a typed wrapper.
package ews

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/config"
	"github.com/ewskit/ewskit/pkg/logging"
	"github.com/ewskit/ewskit/pkg/parsed"
	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
	"github.com/ewskit/ewskit/pkg/transport"
)

// Client talks to one Exchange endpoint.
type Client struct {
	cfg      *config.Config
	disp     transport.Dispatcher
	log      *slog.Logger
	resolver *response.Resolver
}

// Option customizes a Client.
type Option func(*Client)

// WithDispatcher replaces the HTTP transport, for tests and for callers
// with their own connection handling.
func WithDispatcher(d transport.Dispatcher) Option {
	return func(c *Client) { c.disp = d }
}

// WithLogger sets the client logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client from the given configuration. Unless a dispatcher
// is injected, the configuration must name a valid endpoint.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Client{cfg: cfg, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.disp == nil {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		c.disp = transport.NewHTTPDispatcher(transport.Options{
			Endpoint: cfg.Endpoint,
			Username: cfg.Username,
			Password: cfg.Password,
			Timeout:  cfg.HTTPTimeout,
		}, c.log)
	}
	c.resolver = response.NewResolver(c.log)
	return c, nil
}

// envelopeOptions maps the configuration onto the header directives.
func (c *Client) envelopeOptions() soap.EnvelopeOptions {
	opts := soap.EnvelopeOptions{ServerVersion: c.cfg.ServerVersion}
	if imp := c.cfg.Impersonation; imp.Address != "" {
		sidType := imp.Type
		if sidType == "" {
			sidType = "PrimarySmtpAddress"
		}
		opts.Impersonation = &soap.Impersonation{Type: sidType, Address: imp.Address}
	}
	if tz := c.cfg.TimeZone; tz.ID != "" {
		opts.TimeZone = &soap.TimeZoneContext{ID: tz.ID, Name: tz.Name}
	}
	return opts
}

// call runs one operation end to end: envelope assembly, dispatch,
// parse, outcome resolution.
func (c *Client) call(ctx context.Context, operation string, body soap.BodyFunc) ([]response.Outcome, error) {
	log := logging.ForOperation(c.log, operation)

	b, err := soap.BuildEnvelope(c.envelopeOptions(), nil, body)
	if err != nil {
		return nil, err
	}
	reqBytes, err := b.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	respBytes, err := c.disp.Dispatch(ctx, reqBytes)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(respBytes); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	outcomes, err := c.resolver.Resolve(parsed.NewDocument(parsed.FromDocument(doc)))
	if err != nil {
		return nil, err
	}
	log.Debug("response decoded", "outcomes", len(outcomes))
	return outcomes, nil
}

// opElement creates the operation's root body element in the messages
// namespace.
func opElement(body *etree.Element, wire string) *etree.Element {
	return body.CreateElement(soap.PrefixMessages + ":" + wire)
}
