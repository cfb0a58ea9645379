package ews

import (
	"context"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
)

// findItemViews are the optional paging views of an item search, in
// schema order. At most one is expected per request; the server rejects
// combinations.
var findItemViews = []string{"indexed_page_item_view", "calendar_view", "contacts_view"}

// FindItem searches items within the given parent folders.
//
// Options: parent_folder_ids (required), item_shape (defaults to the
// Default base shape), traversal (defaults to Shallow), restriction,
// sort_order, and one of indexed_page_item_view / calendar_view /
// contacts_view.
func (c *Client) FindItem(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("find_item", opts, "parent_folder_ids"); err != nil {
		return nil, err
	}
	return c.call(ctx, "FindItem", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "FindItem")
		op.CreateAttr("Traversal", optString(opts, "traversal", "Shallow"))
		if err := b.BuildElement(op, "item_shape", shapeOrDefault(opts, "item_shape")); err != nil {
			return err
		}
		for _, view := range findItemViews {
			if v, ok := opts[view]; ok {
				if err := b.BuildElement(op, view, v); err != nil {
					return err
				}
			}
		}
		if r, ok := opts["restriction"]; ok {
			if err := b.BuildElement(op, "restriction", r); err != nil {
				return err
			}
		}
		if s, ok := opts["sort_order"]; ok {
			if err := b.BuildElement(op, "sort_order", s); err != nil {
				return err
			}
		}
		return b.BuildElement(op, "parent_folder_ids", opts["parent_folder_ids"])
	})
}

// GetItem fetches items by identifier.
//
// Options: item_ids (required), item_shape (defaults to the Default
// base shape).
func (c *Client) GetItem(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("get_item", opts, "item_ids"); err != nil {
		return nil, err
	}
	return c.call(ctx, "GetItem", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "GetItem")
		if err := b.BuildElement(op, "item_shape", shapeOrDefault(opts, "item_shape")); err != nil {
			return err
		}
		return b.BuildElement(op, "item_ids", opts["item_ids"])
	})
}

// CreateItem creates items, optionally saving them into a folder.
//
// Options: items (required): a sequence of single-key entries naming
// the item kind; saved_item_folder_id; message_disposition;
// send_meeting_invitations.
func (c *Client) CreateItem(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("create_item", opts, "items"); err != nil {
		return nil, err
	}
	itemEntries, err := entries("create_item", opts["items"])
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "CreateItem", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "CreateItem")
		if v := optString(opts, "message_disposition", ""); v != "" {
			op.CreateAttr("MessageDisposition", v)
		}
		if v := optString(opts, "send_meeting_invitations", ""); v != "" {
			op.CreateAttr("SendMeetingInvitations", v)
		}
		if sf, ok := opts["saved_item_folder_id"]; ok {
			if err := b.BuildElement(op, "saved_item_folder_id", sf); err != nil {
				return err
			}
		}
		items := op.CreateElement(soap.PrefixMessages + ":Items")
		for _, entry := range itemEntries {
			for name, payload := range entry {
				if err := b.BuildElement(items, name, payload); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteItem removes items.
//
// Options: item_ids (required), delete_type (defaults to
// MoveToDeletedItems), send_meeting_cancellations,
// affected_task_occurrences.
func (c *Client) DeleteItem(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("delete_item", opts, "item_ids"); err != nil {
		return nil, err
	}
	return c.call(ctx, "DeleteItem", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "DeleteItem")
		op.CreateAttr("DeleteType", optString(opts, "delete_type", "MoveToDeletedItems"))
		if v := optString(opts, "send_meeting_cancellations", ""); v != "" {
			op.CreateAttr("SendMeetingCancellations", v)
		}
		if v := optString(opts, "affected_task_occurrences", ""); v != "" {
			op.CreateAttr("AffectedTaskOccurrences", v)
		}
		return b.BuildElement(op, "item_ids", opts["item_ids"])
	})
}

// MoveItem moves items into a destination folder.
//
// Options: to_folder_id (required): a mapping with a folder_id or
// distinguished_folder_id entry; item_ids (required).
func (c *Client) MoveItem(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("move_item", opts, "to_folder_id", "item_ids"); err != nil {
		return nil, err
	}
	idEntries, err := entries("move_item", opts["to_folder_id"])
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "MoveItem", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "MoveItem")
		to := op.CreateElement(soap.PrefixMessages + ":ToFolderId")
		for _, entry := range idEntries {
			for name, payload := range entry {
				if err := b.BuildElement(to, name, payload); err != nil {
					return err
				}
			}
		}
		return b.BuildElement(op, "item_ids", opts["item_ids"])
	})
}

// UpdateItem applies field-level changes to items.
//
// Options: item_changes (required), conflict_resolution (defaults to
// AutoResolve), message_disposition,
// send_meeting_invitations_or_cancellations.
func (c *Client) UpdateItem(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("update_item", opts, "item_changes"); err != nil {
		return nil, err
	}
	return c.call(ctx, "UpdateItem", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "UpdateItem")
		op.CreateAttr("ConflictResolution", optString(opts, "conflict_resolution", "AutoResolve"))
		if v := optString(opts, "message_disposition", ""); v != "" {
			op.CreateAttr("MessageDisposition", v)
		}
		if v := optString(opts, "send_meeting_invitations_or_cancellations", ""); v != "" {
			op.CreateAttr("SendMeetingInvitationsOrCancellations", v)
		}
		return b.BuildElement(op, "item_changes", opts["item_changes"])
	})
}
