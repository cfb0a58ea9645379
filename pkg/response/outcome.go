// Package response decodes operation responses into typed, navigable
// outcome objects.
//
// Each reported response message is resolved to an outcome-handling type
// by its wire tag: tags with a registered handler get that handler,
// everything else gets the generic outcome. Decoding never fails on an
// unexpected shape; a navigational miss is an empty value and an
// unrecognized outcome tag is handled by the default, because the wire
// schema is expected to grow kinds not yet specifically modeled.
package response

import (
	"github.com/ewskit/ewskit/pkg/parsed"
)

// Response class values reported on the wire.
const (
	ClassSuccess = "Success"
	ClassWarning = "Warning"
	ClassError   = "Error"
)

// Outcome is one reported result of a web-service operation. Accessors
// return empty strings for absent values, never panic; callers check
// Success before relying on Code or Message, which are conventionally
// empty on success.
type Outcome interface {
	// Status is the response class: Success, Warning or Error.
	Status() string
	// Code is the protocol error code, or "" on success.
	Code() string
	// Message is the human-readable text, or "".
	Message() string
	// Success reports whether Status is Success.
	Success() bool
	// Tag is the snake_case wire tag the outcome was resolved from.
	Tag() string
	// Fragment is the decoded message this outcome wraps.
	Fragment() parsed.Map
}

// Generic is the default outcome: the common contract read from fixed
// key paths within a single response message.
type Generic struct {
	tag  string
	frag parsed.Map
}

// NewGeneric wraps one decoded response message.
func NewGeneric(tag string, frag parsed.Map) *Generic {
	return &Generic{tag: tag, frag: frag}
}

func (g *Generic) Tag() string          { return g.tag }
func (g *Generic) Fragment() parsed.Map { return g.frag }

func (g *Generic) Status() string {
	return parsed.Attr(g.frag, "response_class")
}

func (g *Generic) Code() string {
	return childText(g.frag, "response_code")
}

func (g *Generic) Message() string {
	return childText(g.frag, "message_text")
}

func (g *Generic) Success() bool {
	return g.Status() == ClassSuccess
}

// childText finds the named child of a message node and returns its
// text. Children normally live in the node's element sequence, but a
// handcrafted or flattened fragment may key them directly.
func childText(node parsed.Map, key string) string {
	if elems := parsed.Elems(node); elems != nil {
		if child, ok := parsed.FirstMatching(elems, key); ok {
			return parsed.Text(child)
		}
	}
	if node != nil {
		if child, ok := node.Get(key); ok {
			return parsed.Text(child)
		}
	}
	return ""
}

// childNode is childText's counterpart for structured children.
func childNode(node parsed.Map, key string) (any, bool) {
	if elems := parsed.Elems(node); elems != nil {
		if child, ok := parsed.FirstMatching(elems, key); ok {
			return child, true
		}
	}
	if node != nil {
		if child, ok := node.Get(key); ok {
			return child, true
		}
	}
	return nil, false
}
