// Package soap builds the namespace-correct XML requests of the Exchange
// Web Services protocol from logical payloads.
//
// A logical payload is a nested mapping of snake_case keys. The builder
// turns each key into a wire element according to per-element
// construction rules: a minority of element families (identifiers,
// restriction trees, update operations, recurrences, shapes) have
// dedicated rules that know their required sub-structure, while
// everything else follows the uniform convention of the generic
// recursive builder: the key names the element, non-reserved keys
// become attributes, "text" becomes text content and "sub_elements"
// become children.
//
//	b := soap.NewBuilder()
//	err := b.BuildElement(parent, "folder_shape", soap.Map{
//	    "base_shape": "Default",
//	})
//
// Each element is created in the namespace its family is bound to
// (protocol messages or protocol types); a payload can force a prefix
// with the reserved "xmlns_attribute" key, and a handful of identifier
// lists resolve their namespace from the immediate parent element.
//
// BuildEnvelope wraps a built body in the protocol envelope with the
// fixed header directive order required for wire compatibility.
//
// A Builder is one-shot: it owns a single in-progress document and must
// not be reused across requests.
package soap
