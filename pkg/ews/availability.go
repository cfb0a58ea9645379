package ews

import (
	"context"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
)

// GetUserAvailability queries free/busy information for a set of
// mailboxes. The reply decodes to one FreeBusy outcome per mailbox, in
// request order.
//
// Options: mailbox_data (required): a sequence of mappings built under
// the mailbox data array; free_busy_view_options (required); time_zone.
func (c *Client) GetUserAvailability(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("get_user_availability", opts, "mailbox_data", "free_busy_view_options"); err != nil {
		return nil, err
	}
	return c.call(ctx, "GetUserAvailability", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "GetUserAvailabilityRequest")
		if tz, ok := opts["time_zone"]; ok {
			if err := b.BuildElement(op, "time_zone", tz); err != nil {
				return err
			}
		}
		array := op.CreateElement(soap.PrefixMessages + ":MailboxDataArray")
		if err := b.BuildElement(array, "mailbox_data", opts["mailbox_data"]); err != nil {
			return err
		}
		return b.BuildElement(op, "free_busy_view_options", opts["free_busy_view_options"])
	})
}
