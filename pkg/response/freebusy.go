package response

import (
	"github.com/ewskit/ewskit/pkg/parsed"
)

// FreeBusy is the outcome of an availability query for one mailbox. The
// per-mailbox view is an irregular sibling list, so its parts are found
// by first-match scan rather than fixed position.
type FreeBusy struct {
	Generic
}

// NewFreeBusy wraps one free/busy response fragment.
func NewFreeBusy(tag string, frag parsed.Map) *FreeBusy {
	return &FreeBusy{Generic{tag: tag, frag: frag}}
}

// responseMessage is the nested status node carried inside the
// free/busy response.
func (f *FreeBusy) responseMessage() parsed.Map {
	node, ok := childNode(f.frag, "response_message")
	if !ok {
		return nil
	}
	m, _ := node.(parsed.Map)
	return m
}

func (f *FreeBusy) Status() string {
	return parsed.Attr(f.responseMessage(), "response_class")
}

func (f *FreeBusy) Code() string {
	return childText(f.responseMessage(), "response_code")
}

func (f *FreeBusy) Message() string {
	return childText(f.responseMessage(), "message_text")
}

func (f *FreeBusy) Success() bool {
	return f.Status() == ClassSuccess
}

// view returns the free/busy view node's children.
func (f *FreeBusy) view() parsed.Seq {
	node, ok := childNode(f.frag, "free_busy_view")
	if !ok {
		return nil
	}
	return parsed.Elems(node)
}

// ViewType returns the granularity the server answered with.
func (f *FreeBusy) ViewType() string {
	node, ok := parsed.FirstMatching(f.view(), "free_busy_view_type")
	if !ok {
		return ""
	}
	return parsed.Text(node)
}

// CalendarEvents returns the calendar event windows of the view. A view
// without a calendar event array decodes to an empty sequence, never to
// an error: the server omits the array for mailboxes with no events.
func (f *FreeBusy) CalendarEvents() []parsed.Map {
	array, ok := parsed.FirstMatching(f.view(), "calendar_event_array")
	if !ok {
		return []parsed.Map{}
	}
	events := []parsed.Map{}
	for _, member := range parsed.Elems(array) {
		if _, node, ok := singleEntry(member); ok {
			events = append(events, node)
		}
	}
	return events
}

// MergedFreeBusy returns the merged availability string, or "".
func (f *FreeBusy) MergedFreeBusy() string {
	node, ok := parsed.FirstMatching(f.view(), "merged_free_busy")
	if !ok {
		return ""
	}
	return parsed.Text(node)
}

// WorkingHours returns the working hours node of the view, or nil.
func (f *FreeBusy) WorkingHours() parsed.Map {
	node, ok := parsed.FirstMatching(f.view(), "working_hours")
	if !ok {
		return nil
	}
	m, _ := node.(parsed.Map)
	return m
}
