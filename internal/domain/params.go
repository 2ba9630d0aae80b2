package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedParamValue is returned when a parameter or metadata value
// is not part of the supported type union (string, number, boolean, null).
var ErrUnsupportedParamValue = errors.New(
	"unsupported parameter value type (must be string, number, boolean or null)",
)

// ParamKind identifies the concrete type held by a ParamValue.
type ParamKind int

// Supported parameter value kinds.
const (
	ParamNull ParamKind = iota
	ParamString
	ParamNumber
	ParamBool
)

// ParamValue is a tagged union over the value types permitted in task
// parameters and notice metadata: string, number, boolean and null.
// Restricting the union keeps serialization deterministic; nested objects
// and arrays are rejected on decode.
type ParamValue struct {
	kind ParamKind
	str  string
	num  float64
	b    bool
}

// NullValue returns the null ParamValue.
func NullValue() ParamValue { return ParamValue{kind: ParamNull} }

// StringValue wraps a string in a ParamValue.
func StringValue(s string) ParamValue { return ParamValue{kind: ParamString, str: s} }

// NumberValue wraps a float64 in a ParamValue.
func NumberValue(n float64) ParamValue { return ParamValue{kind: ParamNumber, num: n} }

// BoolValue wraps a bool in a ParamValue.
func BoolValue(b bool) ParamValue { return ParamValue{kind: ParamBool, b: b} }

// Kind reports the concrete type held by the value.
func (v ParamValue) Kind() ParamKind { return v.kind }

// IsNull reports whether the value is null.
func (v ParamValue) IsNull() bool { return v.kind == ParamNull }

// AsString returns the held string and true when the value is a string.
func (v ParamValue) AsString() (string, bool) {
	return v.str, v.kind == ParamString
}

// AsNumber returns the held number and true when the value is a number.
func (v ParamValue) AsNumber() (float64, bool) {
	return v.num, v.kind == ParamNumber
}

// AsBool returns the held boolean and true when the value is a boolean.
func (v ParamValue) AsBool() (bool, bool) {
	return v.b, v.kind == ParamBool
}

// MarshalJSON implements json.Marshaler.
func (v ParamValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ParamString:
		return json.Marshal(v.str)
	case ParamNumber:
		return json.Marshal(v.num)
	case ParamBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. Objects and arrays are
// rejected with ErrUnsupportedParamValue.
func (v *ParamValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(val)
	case float64:
		*v = NumberValue(val)
	case bool:
		*v = BoolValue(val)
	default:
		return fmt.Errorf("%w: got %T", ErrUnsupportedParamValue, raw)
	}
	return nil
}

// CopyParams returns a shallow copy of a parameter map. ParamValue itself
// is immutable, so a new map with the same values is an independent copy.
func CopyParams(params map[string]ParamValue) map[string]ParamValue {
	if params == nil {
		return nil
	}
	out := make(map[string]ParamValue, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
