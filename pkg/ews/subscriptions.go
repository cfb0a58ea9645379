package ews

import (
	"context"
	"strconv"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
)

// subscriptionKinds are the accepted request shapes of a subscribe
// call, exactly one of which must be present.
var subscriptionKinds = []string{
	"pull_subscription_request",
	"push_subscription_request",
	"streaming_subscription_request",
}

// Subscribe opens a notification subscription. The options must carry
// exactly one of pull_subscription_request, push_subscription_request
// or streaming_subscription_request.
func (c *Client) Subscribe(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	var kind string
	for _, k := range subscriptionKinds {
		if _, ok := opts[k]; ok {
			if kind != "" {
				return nil, &soap.MalformedInputError{
					Element: "subscribe",
					Detail:  "more than one subscription request shape given",
				}
			}
			kind = k
		}
	}
	if kind == "" {
		return nil, &soap.MissingArgumentError{Element: "subscribe", Key: "pull_subscription_request"}
	}
	return c.call(ctx, "Subscribe", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "Subscribe")
		return b.BuildElement(op, kind, opts[kind])
	})
}

// Unsubscribe closes a subscription.
func (c *Client) Unsubscribe(ctx context.Context, subscriptionID string) ([]response.Outcome, error) {
	if subscriptionID == "" {
		return nil, &soap.MissingArgumentError{Element: "unsubscribe", Key: "subscription_id"}
	}
	return c.call(ctx, "Unsubscribe", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "Unsubscribe")
		op.CreateElement(soap.PrefixMessages + ":SubscriptionId").SetText(subscriptionID)
		return nil
	})
}

// GetEvents reads the pending events of a pull subscription from the
// given watermark.
func (c *Client) GetEvents(ctx context.Context, subscriptionID, watermark string) ([]response.Outcome, error) {
	if subscriptionID == "" {
		return nil, &soap.MissingArgumentError{Element: "get_events", Key: "subscription_id"}
	}
	if watermark == "" {
		return nil, &soap.MissingArgumentError{Element: "get_events", Key: "watermark"}
	}
	return c.call(ctx, "GetEvents", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "GetEvents")
		op.CreateElement(soap.PrefixMessages + ":SubscriptionId").SetText(subscriptionID)
		op.CreateElement(soap.PrefixMessages + ":Watermark").SetText(watermark)
		return nil
	})
}

// GetStreamingEvents opens a long-lived read on streaming subscriptions.
// connectionTimeout is in minutes; the server accepts 1 through 30.
func (c *Client) GetStreamingEvents(ctx context.Context, subscriptionIDs []string, connectionTimeout int) ([]response.Outcome, error) {
	if len(subscriptionIDs) == 0 {
		return nil, &soap.MissingArgumentError{Element: "get_streaming_events", Key: "subscription_ids"}
	}
	if connectionTimeout <= 0 {
		connectionTimeout = 30
	}
	return c.call(ctx, "GetStreamingEvents", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "GetStreamingEvents")
		ids := op.CreateElement(soap.PrefixMessages + ":SubscriptionIds")
		for _, id := range subscriptionIDs {
			ids.CreateElement(soap.PrefixTypes + ":SubscriptionId").SetText(id)
		}
		op.CreateElement(soap.PrefixMessages + ":ConnectionTimeout").SetText(strconv.Itoa(connectionTimeout))
		return nil
	})
}
