package soap

import (
	"sort"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/names"
)

// buildRule is a dedicated construction rule for one element family. A
// rule knows its own required sub-structure and namespace and recurses
// into the builder for nested payloads.
type buildRule func(b *Builder, parent *etree.Element, payload any) error

// buildRules maps logical names to dedicated construction rules. Names
// not listed here fall back to the generic recursive builder.
var buildRules map[string]buildRule

// readOnlyFields are server-computed fields that intentionally build
// nothing. Anything else unregistered that reaches a dispatch family is
// an error, never silently dropped.
var readOnlyFields = map[string]bool{
	"effective_rights":                  true,
	"last_modified_name":                true,
	"last_modified_time":                true,
	"conversation_id":                   true,
	"web_client_read_form_query_string": true,
}

func init() {
	// Assigned in init to allow rules to recurse through the table.
	buildRules = map[string]buildRule{
		"folder_shape":     shapeRule("folder_shape", "FolderShape"),
		"item_shape":       shapeRule("item_shape", "ItemShape"),
		"attachment_shape": shapeRule("attachment_shape", "AttachmentShape"),

		"folder_ids":        folderIDsRule("FolderIds"),
		"parent_folder_ids": folderIDsRule("ParentFolderIds"),
		"parent_folder_id":  parentFolderIDRule,
		"sync_folder_id":    syncFolderIDRule,

		"folder_id":               folderIDRule,
		"distinguished_folder_id": distinguishedFolderIDRule,

		"item_ids":                 itemIDsRule,
		"item_id":                  itemIDRule("item_id", "ItemId"),
		"occurrence_item_id":       occurrenceItemIDRule,
		"recurring_master_item_id": itemIDRule("recurring_master_item_id", "RecurringMasterItemId"),
		"saved_item_folder_id":     savedItemFolderIDRule,

		"restriction": restrictionRule,

		"field_uri":          fieldURIRule,
		"indexed_field_uri":  indexedFieldURIRule,
		"extended_field_uri": extendedFieldURIRule,

		"updates":        updatesRule,
		"item_changes":   changesRule("item_changes", "ItemChanges", "item_change"),
		"folder_changes": changesRule("folder_changes", "FolderChanges", "folder_change"),
		"item_change":    itemChangeRule,
		"folder_change":  folderChangeRule,

		"mailbox":     mailboxRule,
		"event_types": eventTypesRule,
		"recurrence":  recurrenceRule,

		"pull_subscription_request":      subscriptionRequestRule("PullSubscriptionRequest"),
		"push_subscription_request":      subscriptionRequestRule("PushSubscriptionRequest"),
		"streaming_subscription_request": subscriptionRequestRule("StreamingSubscriptionRequest"),
	}
}

func asMap(element string, payload any) (Map, error) {
	m, ok := payload.(Map)
	if !ok {
		return nil, malformed(element, "payload is %T, want a mapping", payload)
	}
	return m, nil
}

// asSeq accepts a sequence payload, or a single mapping treated as a
// one-member sequence.
func asSeq(element string, payload any) ([]Map, error) {
	switch v := payload.(type) {
	case Map:
		return []Map{v}, nil
	case []Map:
		return v, nil
	case []any:
		out := make([]Map, 0, len(v))
		for _, member := range v {
			m, ok := member.(Map)
			if !ok {
				return nil, malformed(element, "sequence member is %T, want a mapping", member)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, malformed(element, "payload is %T, want a mapping or sequence", payload)
	}
}

func requireString(element string, m Map, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", missingArg(element, key)
	}
	s, ok := scalarString(v)
	if !ok {
		return "", malformed(element, "key %q has non-scalar value %T", key, v)
	}
	return s, nil
}

func optionalAttr(el *etree.Element, attr string, m Map, key string) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, sok := scalarString(v)
	if !sok {
		return malformed(el.Tag, "key %q has non-scalar value %T", key, v)
	}
	el.CreateAttr(attr, s)
	return nil
}

// textChild appends a types-namespace child holding scalar text, if the
// key is present. Values may be scalars or {text: ...} mappings.
func textChild(b *Builder, el *etree.Element, wire string, m Map, key string) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	if inner, mok := v.(Map); mok {
		v = inner[names.KeyText]
	}
	s, sok := scalarString(v)
	if !sok {
		return malformed(el.Tag, "key %q has non-scalar value %T", key, v)
	}
	el.CreateElement(PrefixTypes + ":" + wire).SetText(s)
	return nil
}

// --- shapes ---

func shapeRule(element, wire string) buildRule {
	return func(b *Builder, parent *etree.Element, payload any) error {
		m, err := asMap(element, payload)
		if err != nil {
			return err
		}
		el := parent.CreateElement(PrefixMessages + ":" + wire)
		if _, ok := m["base_shape"]; !ok {
			return missingArg(element, "base_shape")
		}
		if err := textChild(b, el, "BaseShape", m, "base_shape"); err != nil {
			return err
		}
		if props, ok := m["additional_properties"]; ok {
			ap := el.CreateElement(PrefixTypes + ":AdditionalProperties")
			seq, err := asSeq("additional_properties", props)
			if err != nil {
				return err
			}
			for _, entry := range seq {
				if err := dispatchFieldURI(b, ap, "additional_properties", entry); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// --- folder and item identifiers ---

func folderIDsRule(wire string) buildRule {
	return func(b *Builder, parent *etree.Element, payload any) error {
		seq, err := asSeq(names.SnakeCase(wire), payload)
		if err != nil {
			return err
		}
		el := parent.CreateElement(namespacePrefix(wire, parent.Tag) + ":" + wire)
		for _, entry := range seq {
			if err := dispatchFolderID(b, el, entry); err != nil {
				return err
			}
		}
		return nil
	}
}

// dispatchFolderID selects between the two folder identifier shapes.
func dispatchFolderID(b *Builder, parent *etree.Element, m Map) error {
	if v, ok := m["folder_id"]; ok {
		return folderIDRule(b, parent, v)
	}
	if v, ok := m["distinguished_folder_id"]; ok {
		return distinguishedFolderIDRule(b, parent, v)
	}
	for k := range m {
		return badArg("folder id", k)
	}
	return missingArg("folder id", "folder_id")
}

func folderIDRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("folder_id", payload)
	if err != nil {
		return err
	}
	id, err := requireString("folder_id", m, "id")
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":FolderId")
	el.CreateAttr("Id", id)
	return optionalAttr(el, "ChangeKey", m, "change_key")
}

func distinguishedFolderIDRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("distinguished_folder_id", payload)
	if err != nil {
		return err
	}
	id, err := requireString("distinguished_folder_id", m, "id")
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":DistinguishedFolderId")
	el.CreateAttr("Id", id)
	if err := optionalAttr(el, "ChangeKey", m, "change_key"); err != nil {
		return err
	}
	if mb, ok := m["mailbox"]; ok {
		return mailboxRule(b, el, mb)
	}
	return nil
}

func parentFolderIDRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("parent_folder_id", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixMessages + ":ParentFolderId")
	return dispatchFolderID(b, el, m)
}

func syncFolderIDRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("sync_folder_id", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixMessages + ":SyncFolderId")
	return dispatchFolderID(b, el, m)
}

func savedItemFolderIDRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("saved_item_folder_id", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixMessages + ":SavedItemFolderId")
	return dispatchFolderID(b, el, m)
}

func itemIDsRule(b *Builder, parent *etree.Element, payload any) error {
	seq, err := asSeq("item_ids", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(namespacePrefix("ItemIds", parent.Tag) + ":ItemIds")
	for _, entry := range seq {
		if err := dispatchItemID(b, el, entry); err != nil {
			return err
		}
	}
	return nil
}

// dispatchItemID selects among the three item identifier shapes. The set
// is closed: an unrecognized sentinel key is a hard error.
func dispatchItemID(b *Builder, parent *etree.Element, m Map) error {
	if v, ok := m["item_id"]; ok {
		return buildRules["item_id"](b, parent, v)
	}
	if v, ok := m["occurrence_item_id"]; ok {
		return occurrenceItemIDRule(b, parent, v)
	}
	if v, ok := m["recurring_master_item_id"]; ok {
		return buildRules["recurring_master_item_id"](b, parent, v)
	}
	for k := range m {
		return badArg("item id", k)
	}
	return missingArg("item id", "item_id")
}

func itemIDRule(element, wire string) buildRule {
	return func(b *Builder, parent *etree.Element, payload any) error {
		m, err := asMap(element, payload)
		if err != nil {
			return err
		}
		id, err := requireString(element, m, "id")
		if err != nil {
			return err
		}
		el := parent.CreateElement(PrefixTypes + ":" + wire)
		el.CreateAttr("Id", id)
		return optionalAttr(el, "ChangeKey", m, "change_key")
	}
}

func occurrenceItemIDRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("occurrence_item_id", payload)
	if err != nil {
		return err
	}
	id, err := requireString("occurrence_item_id", m, "recurring_master_id")
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":OccurrenceItemId")
	el.CreateAttr("RecurringMasterId", id)
	if err := optionalAttr(el, "ChangeKey", m, "change_key"); err != nil {
		return err
	}
	index, err := requireString("occurrence_item_id", m, "instance_index")
	if err != nil {
		return err
	}
	el.CreateAttr("InstanceIndex", index)
	return nil
}

// --- property paths ---

// dispatchFieldURI selects among the three property path shapes found in
// shapes, restrictions and update operations.
func dispatchFieldURI(b *Builder, parent *etree.Element, family string, m Map) error {
	if v, ok := m["field_uri"]; ok {
		return fieldURIRule(b, parent, v)
	}
	if v, ok := m["indexed_field_uri"]; ok {
		return indexedFieldURIRule(b, parent, v)
	}
	if v, ok := m["extended_field_uri"]; ok {
		return extendedFieldURIRule(b, parent, v)
	}
	// A single-key mapping here is a mistyped sentinel; a larger mapping
	// simply lacks its property path.
	if len(m) == 1 {
		for k := range m {
			return badArg(family, k)
		}
	}
	return missingArg(family, "field_uri")
}

func fieldURIRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("field_uri", payload)
	if err != nil {
		return err
	}
	uri, err := requireString("field_uri", m, "field_uri")
	if err != nil {
		return err
	}
	parent.CreateElement(PrefixTypes + ":FieldURI").CreateAttr("FieldURI", uri)
	return nil
}

func indexedFieldURIRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("indexed_field_uri", payload)
	if err != nil {
		return err
	}
	uri, err := requireString("indexed_field_uri", m, "field_uri")
	if err != nil {
		return err
	}
	index, err := requireString("indexed_field_uri", m, "field_index")
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":IndexedFieldURI")
	el.CreateAttr("FieldURI", uri)
	el.CreateAttr("FieldIndex", index)
	return nil
}

// extendedFieldURIAttrs maps payload keys to the schema's attribute
// names, which do not all follow the uniform casing convention.
var extendedFieldURIAttrs = []struct {
	key  string
	attr string
}{
	{"distinguished_property_set_id", "DistinguishedPropertySetId"},
	{"property_set_id", "PropertySetId"},
	{"property_tag", "PropertyTag"},
	{"property_name", "PropertyName"},
	{"property_id", "PropertyId"},
	{"property_type", "PropertyType"},
}

func extendedFieldURIRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("extended_field_uri", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":ExtendedFieldURI")
	for _, a := range extendedFieldURIAttrs {
		if err := optionalAttr(el, a.attr, m, a.key); err != nil {
			return err
		}
	}
	if len(el.Attr) == 0 {
		return missingArg("extended_field_uri", "property_tag")
	}
	return nil
}

// --- restrictions ---

// restrictionOperators is the closed set of query operators.
var restrictionOperators = map[string]string{
	"and":                         "And",
	"or":                          "Or",
	"not":                         "Not",
	"exists":                      "Exists",
	"excludes":                    "Excludes",
	"is_equal_to":                 "IsEqualTo",
	"is_not_equal_to":             "IsNotEqualTo",
	"is_greater_than":             "IsGreaterThan",
	"is_greater_than_or_equal_to": "IsGreaterThanOrEqualTo",
	"is_less_than":                "IsLessThan",
	"is_less_than_or_equal_to":    "IsLessThanOrEqualTo",
	"contains":                    "Contains",
}

func restrictionRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("restriction", payload)
	if err != nil {
		return err
	}
	if len(m) != 1 {
		return malformed("restriction", "want exactly one operator key, got %d keys", len(m))
	}
	el := parent.CreateElement(PrefixMessages + ":Restriction")
	for op, v := range m {
		return buildOperator(b, el, op, v)
	}
	return nil
}

func buildOperator(b *Builder, parent *etree.Element, op string, payload any) error {
	wire, ok := restrictionOperators[op]
	if !ok {
		return badArg("restriction", op)
	}
	el := parent.CreateElement(PrefixTypes + ":" + wire)

	switch op {
	case "and", "or":
		seq, err := asSeq(op, payload)
		if err != nil {
			return err
		}
		for _, member := range seq {
			if err := buildNestedOperator(b, el, op, member); err != nil {
				return err
			}
		}
		return nil
	case "not":
		m, err := asMap(op, payload)
		if err != nil {
			return err
		}
		return buildNestedOperator(b, el, op, m)
	case "exists":
		m, err := asMap(op, payload)
		if err != nil {
			return err
		}
		return dispatchFieldURI(b, el, op, m)
	case "excludes":
		m, err := asMap(op, payload)
		if err != nil {
			return err
		}
		if err := dispatchFieldURI(b, el, op, m); err != nil {
			return err
		}
		value, err := requireString(op, m, "bitmask")
		if err != nil {
			return err
		}
		el.CreateElement(PrefixTypes + ":Bitmask").CreateAttr("Value", value)
		return nil
	case "contains":
		m, err := asMap(op, payload)
		if err != nil {
			return err
		}
		if err := optionalAttr(el, "ContainmentMode", m, "containment_mode"); err != nil {
			return err
		}
		if err := optionalAttr(el, "ContainmentComparison", m, "containment_comparison"); err != nil {
			return err
		}
		if err := dispatchFieldURI(b, el, op, m); err != nil {
			return err
		}
		value, err := requireString(op, m, "constant")
		if err != nil {
			return err
		}
		el.CreateElement(PrefixTypes + ":Constant").CreateAttr("Value", value)
		return nil
	default: // two-sided comparisons
		m, err := asMap(op, payload)
		if err != nil {
			return err
		}
		if err := dispatchFieldURI(b, el, op, m); err != nil {
			return err
		}
		value, err := requireString(op, m, "constant")
		if err != nil {
			return err
		}
		fc := el.CreateElement(PrefixTypes + ":FieldURIOrConstant")
		fc.CreateElement(PrefixTypes + ":Constant").CreateAttr("Value", value)
		return nil
	}
}

// buildNestedOperator builds one member of a compound operator, which
// must itself be a single-operator mapping.
func buildNestedOperator(b *Builder, parent *etree.Element, family string, m Map) error {
	if len(m) != 1 {
		return malformed(family, "nested operator wants exactly one key, got %d", len(m))
	}
	for op, v := range m {
		return buildOperator(b, parent, op, v)
	}
	return nil
}

// --- update operations ---

// updateOperations is the closed set of field update shapes.
var updateOperations = map[string]string{
	"append_to_item_field":   "AppendToItemField",
	"set_item_field":         "SetItemField",
	"delete_item_field":      "DeleteItemField",
	"append_to_folder_field": "AppendToFolderField",
	"set_folder_field":       "SetFolderField",
	"delete_folder_field":    "DeleteFolderField",
}

func updatesRule(b *Builder, parent *etree.Element, payload any) error {
	seq, err := asSeq("updates", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":Updates")
	for _, entry := range seq {
		if len(entry) != 1 {
			return malformed("updates", "update entry wants exactly one key, got %d", len(entry))
		}
		for op, v := range entry {
			if err := buildUpdate(b, el, op, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildUpdate(b *Builder, parent *etree.Element, op string, payload any) error {
	wire, ok := updateOperations[op]
	if !ok {
		return badArg("updates", op)
	}
	m, err := asMap(op, payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":" + wire)
	if err := dispatchFieldURI(b, el, op, m); err != nil {
		return err
	}
	// Non-delete operations embed the replacement value: every remaining
	// key builds a child element through the engine.
	keys := make([]string, 0, len(m))
	for k := range m {
		switch k {
		case "field_uri", "indexed_field_uri", "extended_field_uri":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := b.BuildElement(el, k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

func changesRule(element, wire, childKey string) buildRule {
	return func(b *Builder, parent *etree.Element, payload any) error {
		seq, err := asSeq(element, payload)
		if err != nil {
			return err
		}
		el := parent.CreateElement(PrefixMessages + ":" + wire)
		for _, entry := range seq {
			if err := buildRules[childKey](b, el, entry); err != nil {
				return err
			}
		}
		return nil
	}
}

func itemChangeRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("item_change", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":ItemChange")
	if err := dispatchItemID(b, el, m); err != nil {
		return err
	}
	updates, ok := m["updates"]
	if !ok {
		return missingArg("item_change", "updates")
	}
	return updatesRule(b, el, updates)
}

func folderChangeRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("folder_change", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":FolderChange")
	if err := dispatchFolderID(b, el, m); err != nil {
		return err
	}
	updates, ok := m["updates"]
	if !ok {
		return missingArg("folder_change", "updates")
	}
	return updatesRule(b, el, updates)
}

// --- mailboxes, events, recurrences, subscriptions ---

// mailboxChildren is the schema order of Mailbox child elements.
var mailboxChildren = []struct {
	key  string
	wire string
}{
	{"name", "Name"},
	{"email_address", "EmailAddress"},
	{"routing_type", "RoutingType"},
	{"mailbox_type", "MailboxType"},
}

func mailboxRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("mailbox", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":Mailbox")
	for _, c := range mailboxChildren {
		if err := textChild(b, el, c.wire, m, c.key); err != nil {
			return err
		}
	}
	if v, ok := m["item_id"]; ok {
		if err := buildRules["item_id"](b, el, v); err != nil {
			return err
		}
	}
	return nil
}

func eventTypesRule(b *Builder, parent *etree.Element, payload any) error {
	el := parent.CreateElement(PrefixTypes + ":EventTypes")
	switch v := payload.(type) {
	case []string:
		for _, s := range v {
			el.CreateElement(PrefixTypes + ":EventType").SetText(s)
		}
		return nil
	case []any:
		for _, member := range v {
			s, ok := scalarString(member)
			if !ok {
				if m, mok := member.(Map); mok {
					s, ok = scalarString(m[names.KeyText])
				}
			}
			if !ok {
				return malformed("event_types", "member is %T, want a scalar", member)
			}
			el.CreateElement(PrefixTypes + ":EventType").SetText(s)
		}
		return nil
	default:
		return malformed("event_types", "payload is %T, want a sequence", payload)
	}
}

// recurrencePatterns and recurrenceRanges are the closed sets of
// recurrence shapes, each with its child elements in schema order.
var recurrencePatterns = map[string]struct {
	wire     string
	children []string
}{
	"relative_yearly_recurrence":  {"RelativeYearlyRecurrence", []string{"days_of_week", "day_of_week_index", "month"}},
	"absolute_yearly_recurrence":  {"AbsoluteYearlyRecurrence", []string{"day_of_month", "month"}},
	"relative_monthly_recurrence": {"RelativeMonthlyRecurrence", []string{"interval", "days_of_week", "day_of_week_index"}},
	"absolute_monthly_recurrence": {"AbsoluteMonthlyRecurrence", []string{"interval", "day_of_month"}},
	"weekly_recurrence":           {"WeeklyRecurrence", []string{"interval", "days_of_week"}},
	"daily_recurrence":            {"DailyRecurrence", []string{"interval"}},
}

var recurrenceRanges = map[string]struct {
	wire     string
	children []string
}{
	"no_end_recurrence":   {"NoEndRecurrence", []string{"start_date"}},
	"end_date_recurrence": {"EndDateRecurrence", []string{"start_date", "end_date"}},
	"numbered_recurrence": {"NumberedRecurrence", []string{"start_date", "number_of_occurrences"}},
}

func recurrenceRule(b *Builder, parent *etree.Element, payload any) error {
	m, err := asMap("recurrence", payload)
	if err != nil {
		return err
	}
	el := parent.CreateElement(PrefixTypes + ":Recurrence")

	var patternKey, rangeKey string
	for k := range m {
		if _, ok := recurrencePatterns[k]; ok {
			patternKey = k
			continue
		}
		if _, ok := recurrenceRanges[k]; ok {
			rangeKey = k
			continue
		}
		return badArg("recurrence", k)
	}
	if patternKey == "" {
		return missingArg("recurrence", "daily_recurrence")
	}
	if rangeKey == "" {
		return missingArg("recurrence", "no_end_recurrence")
	}

	pattern := recurrencePatterns[patternKey]
	pm, err := asMap(patternKey, m[patternKey])
	if err != nil {
		return err
	}
	pe := el.CreateElement(PrefixTypes + ":" + pattern.wire)
	for _, key := range pattern.children {
		if err := textChild(b, pe, names.WireName(key), pm, key); err != nil {
			return err
		}
	}

	rng := recurrenceRanges[rangeKey]
	rm, err := asMap(rangeKey, m[rangeKey])
	if err != nil {
		return err
	}
	re := el.CreateElement(PrefixTypes + ":" + rng.wire)
	for _, key := range rng.children {
		if err := textChild(b, re, names.WireName(key), rm, key); err != nil {
			return err
		}
	}
	return nil
}

// subscriptionRequestRule builds the three subscription request shapes.
// Identifier lists nested here take the types namespace, resolved by the
// parent-sensitive lookup in namespacePrefix.
func subscriptionRequestRule(wire string) buildRule {
	return func(b *Builder, parent *etree.Element, payload any) error {
		element := names.SnakeCase(wire)
		m, err := asMap(element, payload)
		if err != nil {
			return err
		}
		el := parent.CreateElement(PrefixMessages + ":" + wire)
		if err := optionalAttr(el, "SubscribeToAllFolders", m, "subscribe_to_all_folders"); err != nil {
			return err
		}
		if v, ok := m["folder_ids"]; ok {
			if err := buildRules["folder_ids"](b, el, v); err != nil {
				return err
			}
		}
		events, ok := m["event_types"]
		if !ok {
			return missingArg(element, "event_types")
		}
		if err := eventTypesRule(b, el, events); err != nil {
			return err
		}
		for _, c := range []struct{ key, wire string }{
			{"watermark", "Watermark"},
			{"status_frequency", "StatusFrequency"},
			{"url", "URL"},
			{"timeout", "Timeout"},
		} {
			if err := textChild(b, el, c.wire, m, c.key); err != nil {
				return err
			}
		}
		return nil
	}
}
