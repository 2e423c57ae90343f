package graphql

import (
	"bytes"
	"encoding/json"
)

// Result is the payload found at the end of an operation path.
// It is read-only and may be null.
type Result struct {
	raw json.RawMessage
}

// NewResult wraps raw JSON.
func NewResult(raw json.RawMessage) Result {
	return Result{raw: raw}
}

// Raw returns the underlying JSON.
func (r Result) Raw() json.RawMessage {
	return r.raw
}

// IsNull reports whether the payload is absent or JSON null.
func (r Result) IsNull() bool {
	trimmed := bytes.TrimSpace(r.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals the payload into v.
func (r Result) Decode(v any) error {
	if r.IsNull() {
		return json.Unmarshal([]byte("null"), v)
	}

	return json.Unmarshal(r.raw, v)
}

// Field returns the value stored under key when the payload is an object.
// The boolean is false for a missing key or a payload that is not an object.
func (r Result) Field(key string) (Result, bool) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(r.raw, &object); err != nil || object == nil {
		return Result{}, false
	}

	value, ok := object[key]
	if !ok {
		return Result{}, false
	}

	return Result{raw: value}, true
}
