package soap

import (
	"errors"
	"testing"
)

func TestFolderShapeRule(t *testing.T) {
	b, root := newParent(t, "m:FindFolder")

	err := b.BuildElement(root, "folder_shape", Map{"base_shape": "Default"})
	if err != nil {
		t.Fatalf("folder_shape failed: %v", err)
	}

	shape := root.FindElement("m:FolderShape")
	if shape == nil {
		t.Fatal("expected m:FolderShape in the messages namespace")
	}
	base := shape.FindElement("t:BaseShape")
	if base == nil || base.Text() != "Default" {
		t.Fatalf("expected t:BaseShape with text Default, got %v", base)
	}
}

func TestFolderShapeRule_MissingBaseShape(t *testing.T) {
	b, root := newParent(t, "m:FindFolder")

	err := b.BuildElement(root, "folder_shape", Map{})
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArgumentError, got %v", err)
	}
	if missing.Key != "base_shape" {
		t.Errorf("error should name base_shape, got %q", missing.Key)
	}
}

func TestItemShapeRule_AdditionalProperties(t *testing.T) {
	b, root := newParent(t, "m:GetItem")

	err := b.BuildElement(root, "item_shape", Map{
		"base_shape": "IdOnly",
		"additional_properties": []any{
			Map{"field_uri": Map{"field_uri": "item:Subject"}},
			Map{"extended_field_uri": Map{"property_tag": "0x0037", "property_type": "String"}},
		},
	})
	if err != nil {
		t.Fatalf("item_shape failed: %v", err)
	}

	if el := root.FindElement("m:ItemShape/t:AdditionalProperties/t:FieldURI"); el == nil {
		t.Fatal("expected t:FieldURI under AdditionalProperties")
	} else if got := el.SelectAttrValue("FieldURI", ""); got != "item:Subject" {
		t.Errorf("FieldURI attr = %q, want item:Subject", got)
	}
	if el := root.FindElement("m:ItemShape/t:AdditionalProperties/t:ExtendedFieldURI"); el == nil {
		t.Fatal("expected t:ExtendedFieldURI under AdditionalProperties")
	}
}

func TestFolderIDs_Dispatch(t *testing.T) {
	b, root := newParent(t, "m:FindFolder")

	err := b.BuildElement(root, "parent_folder_ids", []any{
		Map{"distinguished_folder_id": Map{"id": "inbox"}},
		Map{"folder_id": Map{"id": "AAMk=", "change_key": "CK"}},
	})
	if err != nil {
		t.Fatalf("parent_folder_ids failed: %v", err)
	}

	container := root.FindElement("m:ParentFolderIds")
	if container == nil {
		t.Fatal("expected m:ParentFolderIds")
	}
	children := container.ChildElements()
	if len(children) != 2 {
		t.Fatalf("expected 2 identifiers, got %d", len(children))
	}
	if children[0].Tag != "DistinguishedFolderId" || children[1].Tag != "FolderId" {
		t.Errorf("identifier order wrong: %s, %s", children[0].Tag, children[1].Tag)
	}
	if got := children[1].SelectAttrValue("ChangeKey", ""); got != "CK" {
		t.Errorf("ChangeKey = %q, want CK", got)
	}
}

func TestFolderIDs_UnknownSentinel(t *testing.T) {
	b, root := newParent(t, "m:FindFolder")

	err := b.BuildElement(root, "folder_ids", []any{Map{"bogus_id": Map{"id": "x"}}})
	var bad *BadArgumentError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadArgumentError for unknown sentinel, got %v", err)
	}
	if bad.Key != "bogus_id" {
		t.Errorf("error should name the sentinel, got %q", bad.Key)
	}
}

func TestFolderIDs_NamespaceFollowsParent(t *testing.T) {
	// Under an operation element the identifier list is in the messages
	// namespace; under a subscription request it flips to types.
	b, root := newParent(t, "m:FindFolder")
	if err := b.BuildElement(root, "folder_ids", Map{"folder_id": Map{"id": "x"}}); err != nil {
		t.Fatalf("folder_ids failed: %v", err)
	}
	if root.FindElement("m:FolderIds") == nil {
		t.Error("expected m:FolderIds under an operation element")
	}

	b2, root2 := newParent(t, "PullSubscriptionRequest")
	if err := b2.BuildElement(root2, "folder_ids", Map{"folder_id": Map{"id": "x"}}); err != nil {
		t.Fatalf("folder_ids failed: %v", err)
	}
	if root2.FindElement("t:FolderIds") == nil {
		t.Error("expected t:FolderIds under a subscription request")
	}
}

func TestItemIDs_Dispatch(t *testing.T) {
	b, root := newParent(t, "m:GetItem")

	err := b.BuildElement(root, "item_ids", []any{
		Map{"item_id": Map{"id": "A"}},
		Map{"occurrence_item_id": Map{"recurring_master_id": "B", "instance_index": 2}},
		Map{"recurring_master_item_id": Map{"id": "C"}},
	})
	if err != nil {
		t.Fatalf("item_ids failed: %v", err)
	}

	container := root.FindElement("m:ItemIds")
	if container == nil {
		t.Fatal("expected m:ItemIds")
	}
	tags := []string{}
	for _, c := range container.ChildElements() {
		tags = append(tags, c.Tag)
	}
	want := []string{"ItemId", "OccurrenceItemId", "RecurringMasterItemId"}
	for i := range want {
		if i >= len(tags) || tags[i] != want[i] {
			t.Fatalf("identifier tags = %v, want %v", tags, want)
		}
	}
	occ := container.FindElement("t:OccurrenceItemId")
	if got := occ.SelectAttrValue("InstanceIndex", ""); got != "2" {
		t.Errorf("InstanceIndex = %q, want 2", got)
	}
}

func TestItemID_MissingID(t *testing.T) {
	b, root := newParent(t, "m:GetItem")

	err := b.BuildElement(root, "item_ids", []any{Map{"item_id": Map{"change_key": "CK"}}})
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArgumentError, got %v", err)
	}
	if missing.Key != "id" {
		t.Errorf("error should name id, got %q", missing.Key)
	}
}

func TestRestriction_ComparisonTree(t *testing.T) {
	b, root := newParent(t, "m:FindItem")

	err := b.BuildElement(root, "restriction", Map{
		"is_equal_to": Map{
			"field_uri": Map{"field_uri": "folder:DisplayName"},
			"constant":  "Inbox",
		},
	})
	if err != nil {
		t.Fatalf("restriction failed: %v", err)
	}

	eq := root.FindElement("m:Restriction/t:IsEqualTo")
	if eq == nil {
		t.Fatal("expected t:IsEqualTo under m:Restriction")
	}
	if f := eq.FindElement("t:FieldURI"); f == nil || f.SelectAttrValue("FieldURI", "") != "folder:DisplayName" {
		t.Error("expected t:FieldURI with folder:DisplayName")
	}
	c := eq.FindElement("t:FieldURIOrConstant/t:Constant")
	if c == nil || c.SelectAttrValue("Value", "") != "Inbox" {
		t.Error("expected t:Constant with Value Inbox")
	}
}

func TestRestriction_CompoundOperators(t *testing.T) {
	b, root := newParent(t, "m:FindItem")

	err := b.BuildElement(root, "restriction", Map{
		"and": []any{
			Map{"exists": Map{"field_uri": Map{"field_uri": "item:Subject"}}},
			Map{"not": Map{
				"is_equal_to": Map{
					"field_uri": Map{"field_uri": "item:Subject"},
					"constant":  "spam",
				},
			}},
		},
	})
	if err != nil {
		t.Fatalf("restriction failed: %v", err)
	}

	and := root.FindElement("m:Restriction/t:And")
	if and == nil {
		t.Fatal("expected t:And")
	}
	if and.FindElement("t:Exists/t:FieldURI") == nil {
		t.Error("expected t:Exists branch")
	}
	if and.FindElement("t:Not/t:IsEqualTo") == nil {
		t.Error("expected t:Not branch")
	}
}

func TestRestriction_UnknownOperator(t *testing.T) {
	b, root := newParent(t, "m:FindItem")

	err := b.BuildElement(root, "restriction", Map{"sounds_like": Map{}})
	var bad *BadArgumentError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadArgumentError, got %v", err)
	}
}

func TestUpdates_Dispatch(t *testing.T) {
	b, root := newParent(t, "m:UpdateItem")

	err := b.BuildElement(root, "item_changes", []any{
		Map{
			"item_id": Map{"id": "A", "change_key": "CK"},
			"updates": []any{
				Map{"set_item_field": Map{
					"field_uri": Map{"field_uri": "item:Subject"},
					"message":   Map{"sub_elements": []any{Map{"subject": Map{"text": "hi"}}}},
				}},
				Map{"delete_item_field": Map{
					"field_uri": Map{"field_uri": "item:Body"},
				}},
			},
		},
	})
	if err != nil {
		t.Fatalf("item_changes failed: %v", err)
	}

	change := root.FindElement("m:ItemChanges/t:ItemChange")
	if change == nil {
		t.Fatal("expected t:ItemChange")
	}
	set := change.FindElement("t:Updates/t:SetItemField")
	if set == nil {
		t.Fatal("expected t:SetItemField")
	}
	if set.FindElement("t:Message/t:Subject") == nil {
		t.Error("expected embedded t:Message/t:Subject")
	}
	if change.FindElement("t:Updates/t:DeleteItemField/t:FieldURI") == nil {
		t.Error("expected t:DeleteItemField with field path")
	}
}

func TestUpdates_UnknownOperation(t *testing.T) {
	b, root := newParent(t, "m:UpdateItem")

	err := b.BuildElement(root, "updates", []any{
		Map{"replace_item_field": Map{"field_uri": Map{"field_uri": "item:Subject"}}},
	})
	var bad *BadArgumentError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadArgumentError, got %v", err)
	}
	if bad.Key != "replace_item_field" {
		t.Errorf("error should name the operation, got %q", bad.Key)
	}
}

func TestMailboxRule_ChildElementsInSchemaOrder(t *testing.T) {
	b, root := newParent(t, "m:GetUserAvailabilityRequest")

	err := b.BuildElement(root, "mailbox", Map{
		"email_address": "user@example.com",
		"name":          "User",
	})
	if err != nil {
		t.Fatalf("mailbox failed: %v", err)
	}

	mb := root.FindElement("t:Mailbox")
	if mb == nil {
		t.Fatal("expected t:Mailbox")
	}
	children := mb.ChildElements()
	if len(children) != 2 || children[0].Tag != "Name" || children[1].Tag != "EmailAddress" {
		t.Fatalf("mailbox children out of schema order: %v", children)
	}
	if children[1].Text() != "user@example.com" {
		t.Errorf("EmailAddress = %q", children[1].Text())
	}
}

func TestRecurrenceRule(t *testing.T) {
	b, root := newParent(t, "t:CalendarItem")

	err := b.BuildElement(root, "recurrence", Map{
		"daily_recurrence":    Map{"interval": 2},
		"numbered_recurrence": Map{"start_date": "2026-09-01", "number_of_occurrences": 5},
	})
	if err != nil {
		t.Fatalf("recurrence failed: %v", err)
	}

	rec := root.FindElement("t:Recurrence")
	if rec == nil {
		t.Fatal("expected t:Recurrence")
	}
	if el := rec.FindElement("t:DailyRecurrence/t:Interval"); el == nil || el.Text() != "2" {
		t.Error("expected t:DailyRecurrence with Interval 2")
	}
	if el := rec.FindElement("t:NumberedRecurrence/t:NumberOfOccurrences"); el == nil || el.Text() != "5" {
		t.Error("expected t:NumberedRecurrence with NumberOfOccurrences 5")
	}
}

func TestRecurrenceRule_UnknownShape(t *testing.T) {
	b, root := newParent(t, "t:CalendarItem")

	err := b.BuildElement(root, "recurrence", Map{
		"hourly_recurrence": Map{"interval": 1},
		"no_end_recurrence": Map{"start_date": "2026-09-01"},
	})
	var bad *BadArgumentError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadArgumentError, got %v", err)
	}
}

func TestSubscriptionRequestRule(t *testing.T) {
	b, root := newParent(t, "m:Subscribe")

	err := b.BuildElement(root, "pull_subscription_request", Map{
		"folder_ids":  []any{Map{"distinguished_folder_id": Map{"id": "inbox"}}},
		"event_types": []any{"NewMailEvent", "DeletedEvent"},
		"timeout":     30,
	})
	if err != nil {
		t.Fatalf("pull_subscription_request failed: %v", err)
	}

	req := root.FindElement("m:PullSubscriptionRequest")
	if req == nil {
		t.Fatal("expected m:PullSubscriptionRequest")
	}
	if req.FindElement("t:FolderIds/t:DistinguishedFolderId") == nil {
		t.Error("expected t:FolderIds under subscription request, namespace should flip to types")
	}
	events := req.FindElements("t:EventTypes/t:EventType")
	if len(events) != 2 || events[0].Text() != "NewMailEvent" {
		t.Errorf("expected 2 EventType elements, got %v", events)
	}
	if el := req.FindElement("t:Timeout"); el == nil || el.Text() != "30" {
		t.Error("expected t:Timeout with text 30")
	}
}
