package response

import (
	"testing"

	"github.com/ewskit/ewskit/pkg/parsed"
)

func TestGeneric_ErrorFixture(t *testing.T) {
	frag := node(
		"response_class", "Error",
		"message_text", node("text", "Id is malformed."),
		"response_code", node("text", "ErrorInvalidIdMalformed"),
	)
	outcome := NewGeneric("get_item_response_message", frag)

	if outcome.Success() {
		t.Error("expected success() == false")
	}
	if got := outcome.Status(); got != ClassError {
		t.Errorf("Status = %q, want Error", got)
	}
	if got := outcome.Code(); got != "ErrorInvalidIdMalformed" {
		t.Errorf("Code = %q, want ErrorInvalidIdMalformed", got)
	}
	if got := outcome.Message(); got != "Id is malformed." {
		t.Errorf("Message = %q, want Id is malformed.", got)
	}
}

func TestGeneric_SuccessHasEmptyCodeAndMessage(t *testing.T) {
	frag := node("response_class", "Success")
	outcome := NewGeneric("create_item_response_message", frag)

	if !outcome.Success() {
		t.Error("expected success")
	}
	if outcome.Code() != "" || outcome.Message() != "" {
		t.Error("code and message must be absent-as-empty on success, not an error")
	}
}

func TestGeneric_NestedChildrenInElems(t *testing.T) {
	frag := node(
		"response_class", "Error",
		"elems", parsed.Seq{
			node("response_code", node("text", "ErrorAccessDenied")),
			node("message_text", node("text", "Access is denied.")),
		},
	)
	outcome := NewGeneric("get_folder_response_message", frag)

	if got := outcome.Code(); got != "ErrorAccessDenied" {
		t.Errorf("Code = %q, want ErrorAccessDenied", got)
	}
	if got := outcome.Message(); got != "Access is denied." {
		t.Errorf("Message = %q", got)
	}
}

func TestFreeBusy_MissingCalendarEventArrayIsEmptySequence(t *testing.T) {
	frag := node("elems", parsed.Seq{
		node("response_message", node("response_class", "Success")),
		node("free_busy_view", node("elems", parsed.Seq{
			node("free_busy_view_type", node("text", "FreeBusy")),
		})),
	})
	fb := NewFreeBusy("free_busy_response", frag)

	events := fb.CalendarEvents()
	if events == nil {
		t.Fatal("CalendarEvents must return an empty sequence, not nil")
	}
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
	if got := fb.ViewType(); got != "FreeBusy" {
		t.Errorf("ViewType = %q, want FreeBusy", got)
	}
}

func TestFreeBusy_CalendarEventsAndWorkingHours(t *testing.T) {
	frag := node("elems", parsed.Seq{
		node("response_message", node("response_class", "Success")),
		node("free_busy_view", node("elems", parsed.Seq{
			node("calendar_event_array", node("elems", parsed.Seq{
				node("calendar_event", node("elems", parsed.Seq{
					node("busy_type", node("text", "Busy")),
				})),
				node("calendar_event", node("elems", parsed.Seq{
					node("busy_type", node("text", "Tentative")),
				})),
			})),
			node("working_hours", node("elems", parsed.Seq{})),
		})),
	})
	fb := NewFreeBusy("free_busy_response", frag)

	events := fb.CalendarEvents()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if got := childText(events[0], "busy_type"); got != "Busy" {
		t.Errorf("first event busy_type = %q, want Busy", got)
	}
	if fb.WorkingHours() == nil {
		t.Error("expected working hours node")
	}
}

func TestStreaming_NotificationEventDispatch(t *testing.T) {
	frag := node(
		"response_class", "Success",
		"elems", parsed.Seq{
			node("connection_status", node("text", "OK")),
			node("notifications", node("elems", parsed.Seq{
				node("notification", node("elems", parsed.Seq{
					node("subscription_id", node("text", "sub-1")),
					node("new_mail_event", node("elems", parsed.Seq{
						node("watermark", node("text", "w1")),
						node("time_stamp", node("text", "2026-08-23T10:00:00Z")),
						node("item_id", node("id", "AAMk=")),
					})),
					node("status_event", node("elems", parsed.Seq{
						node("watermark", node("text", "w2")),
					})),
					node("made_up_event", node("elems", parsed.Seq{
						node("watermark", node("text", "w3")),
					})),
				})),
			})),
		},
	)
	s := NewStreaming("get_streaming_events_response_message", frag)

	if got := s.ConnectionStatus(); got != "OK" {
		t.Errorf("ConnectionStatus = %q, want OK", got)
	}
	if got := s.SubscriptionID(); got != "sub-1" {
		t.Errorf("SubscriptionID = %q, want sub-1", got)
	}

	events := s.Notifications()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	mail, ok := events[0].(*ItemEvent)
	if !ok {
		t.Fatalf("expected *ItemEvent, got %T", events[0])
	}
	if mail.ItemID() != "AAMk=" || mail.Watermark() != "w1" {
		t.Errorf("item event decoded wrong: %q %q", mail.ItemID(), mail.Watermark())
	}

	if _, ok := events[1].(*StatusEvent); !ok {
		t.Fatalf("expected *StatusEvent, got %T", events[1])
	}

	generic, ok := events[2].(*GenericEvent)
	if !ok {
		t.Fatalf("unknown event tags must fall back to *GenericEvent, got %T", events[2])
	}
	if generic.Tag() != "made_up_event" || generic.Watermark() != "w3" {
		t.Errorf("generic event decoded wrong: %q %q", generic.Tag(), generic.Watermark())
	}
}

func TestMultiStatus_ExtraUnwrap(t *testing.T) {
	frag := node("elems", parsed.Seq{
		node("get_rooms_response", node(
			"response_class", "Error",
			"elems", parsed.Seq{
				node("response_code", node("text", "ErrorInvalidRoomList")),
			},
		)),
	})
	ms := NewMultiStatus("find_rooms_result", frag)

	if ms.Success() {
		t.Error("expected failure read through the inner response")
	}
	if got := ms.Code(); got != "ErrorInvalidRoomList" {
		t.Errorf("Code = %q, want ErrorInvalidRoomList", got)
	}
}
