package ews

import (
	"strconv"

	"github.com/ewskit/ewskit/pkg/soap"
)

// requireKeys verifies that opts carries every named key, so shape
// mistakes surface as typed errors before any bytes leave the client.
func requireKeys(operation string, opts soap.Map, keys ...string) error {
	for _, key := range keys {
		if _, ok := opts[key]; !ok {
			return &soap.MissingArgumentError{Element: operation, Key: key}
		}
	}
	return nil
}

// optString reads a scalar option as attribute text, falling back to a
// default when absent.
func optString(opts soap.Map, key, fallback string) string {
	v, ok := opts[key]
	if !ok {
		return fallback
	}
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	default:
		return fallback
	}
}

// shapeOrDefault returns the caller's shape payload or the minimal
// default shape.
func shapeOrDefault(opts soap.Map, key string) any {
	if v, ok := opts[key]; ok {
		return v
	}
	return soap.Map{"base_shape": "Default"}
}

// entries normalizes a payload into a sequence of single-key mappings,
// each naming one child element.
func entries(operation string, payload any) ([]soap.Map, error) {
	var seq []soap.Map
	switch v := payload.(type) {
	case soap.Map:
		seq = []soap.Map{v}
	case []soap.Map:
		seq = v
	case []any:
		seq = make([]soap.Map, 0, len(v))
		for _, member := range v {
			m, ok := member.(soap.Map)
			if !ok {
				return nil, &soap.MalformedInputError{
					Element: operation,
					Detail:  "sequence member is not a mapping",
				}
			}
			seq = append(seq, m)
		}
	default:
		return nil, &soap.MalformedInputError{
			Element: operation,
			Detail:  "payload is not a mapping or sequence",
		}
	}
	for _, m := range seq {
		if len(m) != 1 {
			return nil, &soap.MalformedInputError{
				Element: operation,
				Detail:  "entry must have exactly one key naming its element",
			}
		}
	}
	return seq, nil
}
