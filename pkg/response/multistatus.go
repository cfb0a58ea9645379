package response

import (
	"strings"

	"github.com/ewskit/ewskit/pkg/parsed"
)

// MultiStatus handles operations whose reported message wraps a nested
// response one level deeper, such as room-list queries. The common
// contract reads through the extra unwrap.
type MultiStatus struct {
	Generic
}

// NewMultiStatus wraps one nested-response fragment.
func NewMultiStatus(tag string, frag parsed.Map) *MultiStatus {
	return &MultiStatus{Generic{tag: tag, frag: frag}}
}

// inner returns the wrapped response node when the fragment carries one,
// otherwise the fragment itself.
func (m *MultiStatus) inner() parsed.Map {
	for _, member := range parsed.Elems(m.frag) {
		tag, node, ok := singleEntry(member)
		if !ok {
			continue
		}
		if strings.HasSuffix(tag, "_response") || strings.HasSuffix(tag, "_response_message") {
			return node
		}
	}
	return m.frag
}

func (m *MultiStatus) Status() string {
	return parsed.Attr(m.inner(), "response_class")
}

func (m *MultiStatus) Code() string {
	return childText(m.inner(), "response_code")
}

func (m *MultiStatus) Message() string {
	return childText(m.inner(), "message_text")
}

func (m *MultiStatus) Success() bool {
	return m.Status() == ClassSuccess
}

// RoomLists returns the room list address nodes, or an empty sequence.
func (m *MultiStatus) RoomLists() []parsed.Map {
	return m.collect("room_lists")
}

// Rooms returns the room nodes of a room query, or an empty sequence.
func (m *MultiStatus) Rooms() []parsed.Map {
	return m.collect("rooms")
}

func (m *MultiStatus) collect(key string) []parsed.Map {
	out := []parsed.Map{}
	node, ok := childNode(m.inner(), key)
	if !ok {
		node, ok = childNode(m.frag, key)
	}
	if !ok {
		return out
	}
	for _, member := range parsed.Elems(node) {
		if _, entry, ok := singleEntry(member); ok {
			out = append(out, entry)
		}
	}
	return out
}
