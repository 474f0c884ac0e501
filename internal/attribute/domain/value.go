package domain

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the closed set of attribute value variants.
type ValueKind string

const (
	StringType  ValueKind = "string_type"
	NumericType ValueKind = "numeric_type"
	ColorType   ValueKind = "color_type"
)

// AttributeValue is the closed union of value payloads. Equality is
// structural: two values with identical payload fields are the same value.
type AttributeValue interface {
	Kind() ValueKind
	Equal(other AttributeValue) bool
}

type StringValue struct {
	Value          string `json:"value"`
	LocalizedValue string `json:"localizedValue,omitempty"`
}

func (StringValue) Kind() ValueKind { return StringType }

func (v StringValue) Equal(other AttributeValue) bool {
	o, ok := other.(StringValue)
	return ok && o == v
}

type NumericValue struct {
	Value          float64 `json:"value"`
	LocalizedValue string  `json:"localizedValue,omitempty"`
	Unit           string  `json:"unit"`
}

func (NumericValue) Kind() ValueKind { return NumericType }

func (v NumericValue) Equal(other AttributeValue) bool {
	o, ok := other.(NumericValue)
	return ok && o == v
}

type ColorValue struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

func (ColorValue) Kind() ValueKind { return ColorType }

func (v ColorValue) Equal(other AttributeValue) bool {
	o, ok := other.(ColorValue)
	return ok && o == v
}

type taggedStringValue struct {
	Type ValueKind `json:"type"`
	StringValue
}

type taggedNumericValue struct {
	Type ValueKind `json:"type"`
	NumericValue
}

type taggedColorValue struct {
	Type ValueKind `json:"type"`
	ColorValue
}

// MarshalValue serializes a value with its explicit kind tag.
func MarshalValue(v AttributeValue) ([]byte, error) {
	switch val := v.(type) {
	case StringValue:
		return json.Marshal(taggedStringValue{StringType, val})
	case NumericValue:
		return json.Marshal(taggedNumericValue{NumericType, val})
	case ColorValue:
		return json.Marshal(taggedColorValue{ColorType, val})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, v)
	}
}

// UnmarshalValue deserializes a tagged value payload.
func UnmarshalValue(data []byte) (AttributeValue, error) {
	var probe struct {
		Type ValueKind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case StringType:
		var v taggedStringValue
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v.StringValue, nil
	case NumericType:
		var v taggedNumericValue
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v.NumericValue, nil
	case ColorType:
		var v taggedColorValue
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v.ColorValue, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, probe.Type)
	}
}

// ValueList is an ordered list of tagged values.
type ValueList []AttributeValue

func (l ValueList) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(l))
	for _, v := range l {
		raw, err := MarshalValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func (l *ValueList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	values := make(ValueList, 0, len(raws))
	for _, raw := range raws {
		v, err := UnmarshalValue(raw)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	*l = values
	return nil
}
