package ews

import (
	"context"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
)

// ResolveNames resolves an ambiguous name against the directory.
//
// Options: name (required), return_full_contact_data (defaults to
// true), search_scope (defaults to ActiveDirectoryContacts).
func (c *Client) ResolveNames(ctx context.Context, opts soap.Map) ([]response.Outcome, error) {
	if err := requireKeys("resolve_names", opts, "name"); err != nil {
		return nil, err
	}
	return c.call(ctx, "ResolveNames", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "ResolveNames")
		op.CreateAttr("ReturnFullContactData", optString(opts, "return_full_contact_data", "true"))
		op.CreateAttr("SearchScope", optString(opts, "search_scope", "ActiveDirectoryContacts"))
		entry := op.CreateElement(soap.PrefixMessages + ":UnresolvedEntry")
		entry.SetText(optString(opts, "name", ""))
		return nil
	})
}

// GetRoomLists fetches the room list addresses of the organization.
func (c *Client) GetRoomLists(ctx context.Context) ([]response.Outcome, error) {
	return c.call(ctx, "GetRoomLists", func(b *soap.Builder, body *etree.Element) error {
		opElement(body, "GetRoomLists")
		return nil
	})
}

// GetRooms fetches the rooms of one room list.
func (c *Client) GetRooms(ctx context.Context, roomList string) ([]response.Outcome, error) {
	if roomList == "" {
		return nil, &soap.MissingArgumentError{Element: "get_rooms", Key: "room_list"}
	}
	return c.call(ctx, "GetRooms", func(b *soap.Builder, body *etree.Element) error {
		op := opElement(body, "GetRooms")
		rl := op.CreateElement(soap.PrefixMessages + ":RoomList")
		rl.CreateElement(soap.PrefixTypes + ":EmailAddress").SetText(roomList)
		return nil
	})
}
