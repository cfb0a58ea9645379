package soap

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/names"
)

// Map is a logical payload mapping: snake_case keys to scalars, nested
// maps, or sequences of maps. The reserved keys "text", "sub_elements"
// and "xmlns_attribute" carry builder instructions (see package names).
type Map = map[string]any

// Builder owns one in-progress XML document. A Builder is single-use:
// create one per request and discard it after serialization, so no state
// can leak between unrelated payloads. It is not safe for concurrent use.
type Builder struct {
	doc *etree.Document
}

// NewBuilder creates a fresh builder with an empty document.
func NewBuilder() *Builder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return &Builder{doc: doc}
}

// Document returns the document under construction.
func (b *Builder) Document() *etree.Document {
	return b.doc
}

// WriteToString serializes the document.
func (b *Builder) WriteToString() (string, error) {
	return b.doc.WriteToString()
}

// WriteToBytes serializes the document.
func (b *Builder) WriteToBytes() ([]byte, error) {
	return b.doc.WriteToBytes()
}

// BuildElement appends the element(s) described by name and payload as
// children of parent. Dedicated construction rules take precedence over
// the generic recursive builder; names registered as read-only build
// nothing. A sequence payload builds one sibling per member, in order.
func (b *Builder) BuildElement(parent *etree.Element, name string, payload any) error {
	if rule, ok := buildRules[name]; ok {
		return rule(b, parent, payload)
	}
	if readOnlyFields[name] {
		return nil
	}
	return b.buildGeneric(parent, name, payload)
}

// buildGeneric applies the uniform convention: name becomes the element,
// non-reserved keys become attributes, "text" becomes text content and
// "sub_elements" become children.
func (b *Builder) buildGeneric(parent *etree.Element, name string, payload any) error {
	switch v := payload.(type) {
	case nil:
		b.createElement(parent, name, nil)
		return nil
	case Map:
		return b.buildMapped(parent, name, v)
	case []Map:
		for _, m := range v {
			if err := b.buildMapped(parent, name, m); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, member := range v {
			m, ok := member.(Map)
			if !ok {
				return malformed(name, "sequence member is %T, want a mapping", member)
			}
			if err := b.buildMapped(parent, name, m); err != nil {
				return err
			}
		}
		return nil
	default:
		return malformed(name, "unsupported payload shape %T", payload)
	}
}

func (b *Builder) buildMapped(parent *etree.Element, name string, m Map) error {
	el := b.createElement(parent, name, m)

	// Non-reserved keys become attributes, sorted for a stable
	// serialization. Go maps carry no order and attribute order is not
	// semantically significant on the wire.
	keys := make([]string, 0, len(m))
	for k := range m {
		if names.Reserved(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, ok := scalarString(m[k])
		if !ok {
			return malformed(name, "attribute %q has non-scalar value %T", k, m[k])
		}
		el.CreateAttr(names.WireName(k), s)
	}

	if text, ok := m[names.KeyText]; ok {
		s, sok := scalarString(text)
		if !sok {
			return malformed(name, "text has non-scalar value %T", text)
		}
		el.SetText(s)
	}

	if subs, ok := m[names.KeySubElements]; ok {
		entries, eok := subs.([]any)
		if !eok {
			if maps, mok := subs.([]Map); mok {
				entries = make([]any, len(maps))
				for i, mm := range maps {
					entries[i] = mm
				}
			} else {
				return malformed(name, "sub_elements is %T, want a sequence", subs)
			}
		}
		for _, entry := range entries {
			if err := b.buildEntry(el, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildEntry builds one sub_elements member: a mapping with exactly one
// key naming the child element.
func (b *Builder) buildEntry(parent *etree.Element, entry any) error {
	m, ok := entry.(Map)
	if !ok {
		return malformed(parent.Tag, "sub_elements entry is %T, want a mapping", entry)
	}
	if len(m) != 1 {
		return malformed(parent.Tag, "sub_elements entry has %d keys, want exactly one", len(m))
	}
	for k, v := range m {
		return b.BuildElement(parent, k, v)
	}
	return nil
}

// createElement creates the named element under parent in the namespace
// the element family is bound to, unless the payload forces a prefix via
// xmlns_attribute.
func (b *Builder) createElement(parent *etree.Element, name string, m Map) *etree.Element {
	wire := names.WireName(name)
	prefix := namespacePrefix(wire, parent.Tag)
	if m != nil {
		if forced, ok := m[names.KeyXMLNSAttribute].(string); ok && forced != "" {
			prefix = forced
		}
	}
	return parent.CreateElement(prefix + ":" + wire)
}

// scalarString renders a scalar payload value as wire text.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.Itoa(s), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case time.Time:
		return s.Format(time.RFC3339), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}
