package soap

import "fmt"

// MalformedInputError reports a payload shape the builder cannot
// interpret. It indicates a programming error in the caller, not a
// transient condition.
type MalformedInputError struct {
	Element string
	Detail  string
}

func (e *MalformedInputError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("malformed payload for %s: %s", e.Element, e.Detail)
	}
	return fmt.Sprintf("malformed payload: %s", e.Detail)
}

// MissingArgumentError reports a required key absent from the payload
// handed to a dedicated construction rule.
type MissingArgumentError struct {
	Element string
	Key     string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: missing required key %q", e.Element, e.Key)
}

// BadArgumentError reports a sentinel key outside the closed set a
// dispatch family accepts.
type BadArgumentError struct {
	Family string
	Key    string
}

func (e *BadArgumentError) Error() string {
	return fmt.Sprintf("%s: unsupported key %q", e.Family, e.Key)
}

func malformed(element, format string, args ...any) error {
	return &MalformedInputError{Element: element, Detail: fmt.Sprintf(format, args...)}
}

func missingArg(element, key string) error {
	return &MissingArgumentError{Element: element, Key: key}
}

func badArg(family, key string) error {
	return &BadArgumentError{Family: family, Key: key}
}
