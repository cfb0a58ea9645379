package response

import (
	"strings"

	"github.com/ewskit/ewskit/pkg/names"
	"github.com/ewskit/ewskit/pkg/parsed"
)

// Streaming is the outcome of a streaming-notification read: a
// connection status flag plus the notification events reported since
// the last read.
type Streaming struct {
	Generic
}

// NewStreaming wraps one streaming events response message.
func NewStreaming(tag string, frag parsed.Map) *Streaming {
	return &Streaming{Generic{tag: tag, frag: frag}}
}

// ConnectionStatus returns the wire connection state (OK or Closed).
func (s *Streaming) ConnectionStatus() string {
	return childText(s.frag, "connection_status")
}

// Notifications returns the decoded events of every notification in the
// message, in wire order. Each event's tag selects its type from the
// event registry, with a generic fallback for kinds not modeled yet.
func (s *Streaming) Notifications() []Event {
	events := []Event{}
	node, ok := childNode(s.frag, "notifications")
	if !ok {
		return events
	}
	for _, member := range parsed.Elems(node) {
		tag, notification, ok := singleEntry(member)
		if !ok || tag != "notification" {
			continue
		}
		for _, child := range parsed.Elems(notification) {
			eventTag, eventNode, ok := singleEntry(child)
			if !ok || !strings.HasSuffix(eventTag, "_event") {
				continue
			}
			events = append(events, newEvent(eventTag, eventNode))
		}
	}
	return events
}

// SubscriptionID returns the subscription the notifications belong to.
func (s *Streaming) SubscriptionID() string {
	node, ok := childNode(s.frag, "notifications")
	if !ok {
		return ""
	}
	notification, ok := parsed.FirstMatching(parsed.Elems(node), "notification")
	if !ok {
		return ""
	}
	m, _ := notification.(parsed.Map)
	return childText(m, "subscription_id")
}

// Event is one notification event.
type Event interface {
	// Tag is the snake_case wire tag the event was resolved from.
	Tag() string
	// Watermark is the event's position marker.
	Watermark() string
}

// eventFactory constructs a typed event from one decoded event node.
type eventFactory func(tag string, node parsed.Map) Event

// eventTypes is the domain-type registry for notification events,
// consulted with the same normalize-then-lookup convention the outcome
// resolver uses. Unregistered tags fall back to GenericEvent.
var eventTypes = map[string]eventFactory{
	"CopiedEvent":          newItemEvent,
	"CreatedEvent":         newItemEvent,
	"DeletedEvent":         newItemEvent,
	"ModifiedEvent":        newItemEvent,
	"MovedEvent":           newItemEvent,
	"NewMailEvent":         newItemEvent,
	"FreeBusyChangedEvent": newItemEvent,
	"StatusEvent": func(tag string, node parsed.Map) Event {
		return &StatusEvent{GenericEvent{tag: tag, node: node}}
	},
}

func newEvent(tag string, node parsed.Map) Event {
	if f, ok := eventTypes[names.WireName(tag)]; ok {
		return f(tag, node)
	}
	return &GenericEvent{tag: tag, node: node}
}

// GenericEvent is the fallback event: tag plus raw node access.
type GenericEvent struct {
	tag  string
	node parsed.Map
}

func (e *GenericEvent) Tag() string       { return e.tag }
func (e *GenericEvent) Node() parsed.Map  { return e.node }
func (e *GenericEvent) Watermark() string { return childText(e.node, "watermark") }

// ItemEvent is an event about an item or folder: create, delete, move,
// copy, modify, new mail, free/busy change.
type ItemEvent struct {
	GenericEvent
}

func newItemEvent(tag string, node parsed.Map) Event {
	return &ItemEvent{GenericEvent{tag: tag, node: node}}
}

// TimeStamp returns the event's server time.
func (e *ItemEvent) TimeStamp() string { return childText(e.node, "time_stamp") }

// ItemID returns the Id attribute of the event's item, or "".
func (e *ItemEvent) ItemID() string {
	node, ok := childNode(e.node, "item_id")
	if !ok {
		return ""
	}
	return parsed.Attr(node, "id")
}

// FolderID returns the Id attribute of the event's folder, or "".
func (e *ItemEvent) FolderID() string {
	node, ok := childNode(e.node, "folder_id")
	if !ok {
		return ""
	}
	return parsed.Attr(node, "id")
}

// ParentFolderID returns the Id attribute of the containing folder.
func (e *ItemEvent) ParentFolderID() string {
	node, ok := childNode(e.node, "parent_folder_id")
	if !ok {
		return ""
	}
	return parsed.Attr(node, "id")
}

// StatusEvent is the keep-alive heartbeat of a streaming connection. It
// carries nothing beyond its watermark.
type StatusEvent struct {
	GenericEvent
}
