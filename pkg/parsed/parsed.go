// Package parsed navigates XML responses that have already been decoded
// into nested ordered mappings and sequences.
//
// Each element is represented as a single-key mapping: the snake_case
// tag maps to an inner mapping holding the element's attributes under
// their snake_case names, its text under "text" and its children under
// "elems" as a sequence of further single-key mappings. Traversal never
// panics on a missing key; absence is reported through the second return
// value, distinguishable from a present-but-empty value.
package parsed

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is one parsed mapping. Insertion order is preserved, mirroring
// document order on the wire.
type Map = *orderedmap.OrderedMap[string, any]

// Seq is an ordered sequence of parsed values.
type Seq = []any

// ErrNotFound reports a structurally absent envelope part. At that level
// absence means a malformed document, which is fatal for the caller.
var ErrNotFound = errors.New("parsed: not found")

// NewMap creates an empty ordered mapping.
func NewMap() Map {
	return orderedmap.New[string, any]()
}

// Document wraps a fully parsed response and exposes its structural
// projections. Derived views are cached lazily on first access, so a
// Document must not be shared across concurrent operations.
type Document struct {
	root Map

	envelope Seq
	header   Seq
	body     Seq
}

// NewDocument wraps a parsed root mapping.
func NewDocument(root Map) *Document {
	return &Document{root: root}
}

// Root returns the underlying mapping.
func (d *Document) Root() Map { return d.root }

// Envelope returns the envelope's children.
func (d *Document) Envelope() (Seq, error) {
	if d.envelope != nil {
		return d.envelope, nil
	}
	node, ok := PathLookup(d.root, "envelope", "elems")
	if !ok {
		return nil, fmt.Errorf("%w: envelope", ErrNotFound)
	}
	seq, ok := node.(Seq)
	if !ok {
		return nil, fmt.Errorf("%w: envelope has no elements", ErrNotFound)
	}
	d.envelope = seq
	return seq, nil
}

// Header returns the children of the envelope header.
func (d *Document) Header() (Seq, error) {
	if d.header != nil {
		return d.header, nil
	}
	seq, err := d.section("header")
	if err != nil {
		return nil, err
	}
	d.header = seq
	return seq, nil
}

// Body returns the children of the envelope body.
func (d *Document) Body() (Seq, error) {
	if d.body != nil {
		return d.body, nil
	}
	seq, err := d.section("body")
	if err != nil {
		return nil, err
	}
	d.body = seq
	return seq, nil
}

// Response is an alias for Body: the operation response element and its
// siblings live directly under the body.
func (d *Document) Response() (Seq, error) {
	return d.Body()
}

func (d *Document) section(name string) (Seq, error) {
	env, err := d.Envelope()
	if err != nil {
		return nil, err
	}
	node, ok := FirstMatching(env, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	m, ok := node.(Map)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if elems, ok := m.Get("elems"); ok {
		if seq, sok := elems.(Seq); sok {
			return seq, nil
		}
	}
	// Present but childless: an empty section.
	return Seq{}, nil
}

// PathLookup walks root one key at a time. It returns false as soon as
// any intermediate value is not a mapping or does not contain the next
// key; it never panics.
func PathLookup(root Map, keys ...string) (any, bool) {
	var current any = root
	for _, key := range keys {
		m, ok := current.(Map)
		if !ok || m == nil {
			return nil, false
		}
		current, ok = m.Get(key)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// FirstMatching returns the value under key from the first mapping in
// seq that contains it. Response payloads are irregular: the same field
// can appear at different positions among heterogeneous siblings.
func FirstMatching(seq Seq, key string) (any, bool) {
	for _, member := range seq {
		m, ok := member.(Map)
		if !ok || m == nil {
			continue
		}
		if v, ok := m.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}

// Elems returns a node's child sequence, or nil when it has none.
func Elems(node any) Seq {
	if v, ok := PathLookupAny(node, "elems"); ok {
		if seq, sok := v.(Seq); sok {
			return seq
		}
	}
	return nil
}

// Text returns a node's text content, or "" when absent.
func Text(node any) string {
	if v, ok := PathLookupAny(node, "text"); ok {
		if s, sok := v.(string); sok {
			return s
		}
	}
	return ""
}

// Attr returns a node's attribute value under its snake_case key, or ""
// when absent.
func Attr(node any, key string) string {
	if v, ok := PathLookupAny(node, key); ok {
		if s, sok := v.(string); sok {
			return s
		}
	}
	return ""
}

// PathLookupAny is PathLookup over an untyped starting value.
func PathLookupAny(node any, keys ...string) (any, bool) {
	m, ok := node.(Map)
	if !ok {
		return nil, false
	}
	return PathLookup(m, keys...)
}
