// Package names converts between the snake_case keys used in logical
// payloads and the PascalCase element and attribute names used by the
// Exchange Web Services schema.
package names

import "strings"

// Reserved payload keys that carry builder instructions rather than
// schema data. They are never normalized.
const (
	KeyText           = "text"
	KeySubElements    = "sub_elements"
	KeyXMLNSAttribute = "xmlns_attribute"
)

// Reserved reports whether key is one of the reserved payload keys.
func Reserved(key string) bool {
	switch key {
	case KeyText, KeySubElements, KeyXMLNSAttribute:
		return true
	}
	return false
}

// WireName converts a snake_case key to the PascalCase name used on the
// wire: "display_name" becomes "DisplayName". Input that already looks
// like a wire name is returned unchanged, as are reserved keys.
func WireName(key string) string {
	if key == "" || Reserved(key) {
		return key
	}
	if isWireName(key) {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	upper := true
	for _, r := range key {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(toUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SnakeCase converts a PascalCase wire name to the snake_case convention
// used for logical payload and parsed-document keys: "DisplayName"
// becomes "display_name". Already snake_case input is returned unchanged.
func SnakeCase(name string) string {
	if name == "" {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			// Keep runs of capitals together: "URI" -> "uri", not "u_r_i".
			if i > 0 && !prevUpper(name, i) {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isWireName reports whether s already follows the wire convention:
// leading capital and no underscores.
func isWireName(s string) bool {
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	return !strings.ContainsRune(s, '_')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func prevUpper(s string, i int) bool {
	c := s[i-1]
	return c >= 'A' && c <= 'Z'
}
