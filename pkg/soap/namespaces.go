package soap

// Namespace URIs of the Exchange Web Services schema. The envelope binds
// all three prefixes once at the root; individual elements reference them
// by prefix.
const (
	NSSoap     = "http://schemas.xmlsoap.org/soap/envelope/"
	NSMessages = "http://schemas.microsoft.com/exchange/services/2006/messages"
	NSTypes    = "http://schemas.microsoft.com/exchange/services/2006/types"
)

// Namespace prefixes as declared on the envelope root.
const (
	PrefixSoap     = "soap"
	PrefixMessages = "m"
	PrefixTypes    = "t"
)

// messagesElements lists wire names permanently bound to the messages
// namespace. Everything not listed here defaults to the types namespace,
// which covers the deeply nested element families.
var messagesElements = map[string]bool{
	"FolderShape":                  true,
	"ItemShape":                    true,
	"AttachmentShape":              true,
	"FolderIds":                    true,
	"ItemIds":                      true,
	"ParentFolderIds":              true,
	"ParentFolderId":               true,
	"SavedItemFolderId":            true,
	"ToFolderId":                   true,
	"MailboxDataArray":             true,
	"Restriction":                  true,
	"SortOrder":                    true,
	"CalendarView":                 true,
	"ContactsView":                 true,
	"IndexedPageItemView":          true,
	"IndexedPageFolderView":        true,
	"FractionalPageItemView":       true,
	"SyncState":                    true,
	"SyncFolderId":                 true,
	"Items":                        true,
	"Folders":                      true,
	"ItemChanges":                  true,
	"FolderChanges":                true,
	"RoomList":                     true,
	"UnresolvedEntry":              true,
	"SubscriptionId":               true,
	"SubscriptionIds":              true,
	"Watermark":                    true,
	"ConnectionTimeout":            true,
	"PullSubscriptionRequest":      true,
	"PushSubscriptionRequest":      true,
	"StreamingSubscriptionRequest": true,
}

// subscriptionParents names the parent elements under which identifier
// lists flip from the messages namespace to the types namespace. The
// schema nests the same FolderIds element in both places, so the binding
// has to be resolved from the immediate parent at construction time.
var subscriptionParents = map[string]bool{
	"PullSubscriptionRequest":      true,
	"PushSubscriptionRequest":      true,
	"StreamingSubscriptionRequest": true,
}

// parentSensitive lists wire names whose namespace depends on the parent
// element rather than on the static table alone.
var parentSensitive = map[string]bool{
	"FolderIds": true,
	"ItemIds":   true,
}

// namespacePrefix selects the prefix for a wire name, consulting the
// immediate parent tag for the handful of parent-sensitive elements.
func namespacePrefix(wireName, parentTag string) string {
	if parentSensitive[wireName] && subscriptionParents[parentTag] {
		return PrefixTypes
	}
	if messagesElements[wireName] {
		return PrefixMessages
	}
	return PrefixTypes
}
