package ews

import (
	"context"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
)

// FindFolder searches child folders of the given parents.
//
// Options: parent_folder_ids (required), folder_shape (defaults to the
// Default base shape), traversal (defaults to Shallow), restriction.
func (c *Client) FindFolder(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("find_folder", opts, "parent_folder_ids"); err != nil {
		return nil, err
	}
	return c.call(ctx, "FindFolder", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "FindFolder")
		op.CreateAttr("Traversal", optString(opts, "traversal", "Shallow"))
		if err := b.BuildElement(op, "folder_shape", shapeOrDefault(opts, "folder_shape")); err != nil {
			return err
		}
		if r, ok := opts["restriction"]; ok {
			if err := b.BuildElement(op, "restriction", r); err != nil {
				return err
			}
		}
		return b.BuildElement(op, "parent_folder_ids", opts["parent_folder_ids"])
	})
}

// GetFolder fetches folders by identifier.
//
// Options: folder_ids (required), folder_shape (defaults to the Default
// base shape).
func (c *Client) GetFolder(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("get_folder", opts, "folder_ids"); err != nil {
		return nil, err
	}
	return c.call(ctx, "GetFolder", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "GetFolder")
		if err := b.BuildElement(op, "folder_shape", shapeOrDefault(opts, "folder_shape")); err != nil {
			return err
		}
		return b.BuildElement(op, "folder_ids", opts["folder_ids"])
	})
}

// CreateFolder creates folders under a parent.
//
// Options: parent_folder_id (required), folders (required): a sequence
// of single-key entries naming the folder kind, such as
// {"folder": {"sub_elements": [{"display_name": {"text": "Projects"}}]}}.
func (c *Client) CreateFolder(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("create_folder", opts, "parent_folder_id", "folders"); err != nil {
		return nil, err
	}
	folderEntries, err := entries("create_folder", opts["folders"])
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "CreateFolder", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "CreateFolder")
		if err := b.BuildElement(op, "parent_folder_id", opts["parent_folder_id"]); err != nil {
			return err
		}
		folders := op.CreateElement(soap.PrefixMessages + ":Folders")
		for _, entry := range folderEntries {
			for name, payload := range entry {
				if err := b.BuildElement(folders, name, payload); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteFolder removes folders.
//
// Options: folder_ids (required), delete_type (defaults to
// MoveToDeletedItems).
func (c *Client) DeleteFolder(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("delete_folder", opts, "folder_ids"); err != nil {
		return nil, err
	}
	return c.call(ctx, "DeleteFolder", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "DeleteFolder")
		op.CreateAttr("DeleteType", optString(opts, "delete_type", "MoveToDeletedItems"))
		return b.BuildElement(op, "folder_ids", opts["folder_ids"])
	})
}
