package domain

import (
	"encoding/json"
	"fmt"
)

// AttributeKind tags the closed set of attribute variants.
type AttributeKind string

const (
	KindPlain     AttributeKind = "plain"
	KindComposite AttributeKind = "composite"
)

// Attribute is the closed union of attribute variants. Consumers switch
// exhaustively over the concrete type; the kind set is intentionally closed.
type Attribute interface {
	Kind() AttributeKind
	Name() string
}

// PlainAttribute holds a homogeneous list of values of one value kind.
type PlainAttribute struct {
	AttributeName   string    `json:"attributeName"`
	ShortName       string    `json:"shortName"`
	IsFaceted       bool      `json:"isFaceted"`
	ValueType       ValueKind `json:"valueType"`
	AvailableValues ValueList `json:"availableValues"`
}

func (a *PlainAttribute) Kind() AttributeKind { return KindPlain }
func (a *PlainAttribute) Name() string        { return a.AttributeName }

// Validate checks the declared-kind invariant: every available value must
// carry the attribute's value kind.
func (a *PlainAttribute) Validate() error {
	for _, v := range a.AvailableValues {
		if v.Kind() != a.ValueType {
			return &TypeMismatchError{Expected: a.ValueType, Actual: v.Kind()}
		}
	}
	return nil
}

// AddValue appends a value after checking its kind tag. A structurally equal
// value already in the list is appended again; deduplication lives at the
// value-materialization layer, not here.
func (a *PlainAttribute) AddValue(v AttributeValue) error {
	if v.Kind() != a.ValueType {
		return &TypeMismatchError{Expected: a.ValueType, Actual: v.Kind()}
	}
	a.AvailableValues = append(a.AvailableValues, v)
	return nil
}

// RemoveValue removes the first value matching full structural equality and
// reports whether anything was removed.
func (a *PlainAttribute) RemoveValue(v AttributeValue) bool {
	for i, existing := range a.AvailableValues {
		if existing.Equal(v) {
			a.AvailableValues = append(a.AvailableValues[:i], a.AvailableValues[i+1:]...)
			return true
		}
	}
	return false
}

// CompositeAttribute groups named sub-attributes, each itself plain. Used for
// multi-dimensional traits such as width/length/depth.
type CompositeAttribute struct {
	AttributeName string            `json:"attributeName"`
	ShortName     string            `json:"shortName"`
	IsFaceted     bool              `json:"isFaceted"`
	SubAttributes []*PlainAttribute `json:"subAttributes"`
}

func (a *CompositeAttribute) Kind() AttributeKind { return KindComposite }
func (a *CompositeAttribute) Name() string        { return a.AttributeName }

// Sub returns the named sub-attribute, or nil.
func (a *CompositeAttribute) Sub(name string) *PlainAttribute {
	for _, sub := range a.SubAttributes {
		if sub.AttributeName == name {
			return sub
		}
	}
	return nil
}

func (a *CompositeAttribute) Validate() error {
	for _, sub := range a.SubAttributes {
		if err := sub.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type taggedPlainAttribute struct {
	Type AttributeKind `json:"type"`
	*PlainAttribute
}

type taggedCompositeAttribute struct {
	Type AttributeKind `json:"type"`
	*CompositeAttribute
}

// MarshalAttribute serializes an attribute with its explicit kind tag.
func MarshalAttribute(a Attribute) ([]byte, error) {
	switch attr := a.(type) {
	case *PlainAttribute:
		return json.Marshal(taggedPlainAttribute{KindPlain, attr})
	case *CompositeAttribute:
		return json.Marshal(taggedCompositeAttribute{KindComposite, attr})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, a)
	}
}

// UnmarshalAttribute deserializes a tagged attribute document.
func UnmarshalAttribute(data []byte) (Attribute, error) {
	var probe struct {
		Type AttributeKind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case KindPlain:
		var attr PlainAttribute
		if err := json.Unmarshal(data, &attr); err != nil {
			return nil, err
		}
		return &attr, nil
	case KindComposite:
		var attr CompositeAttribute
		if err := json.Unmarshal(data, &attr); err != nil {
			return nil, err
		}
		return &attr, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, probe.Type)
	}
}
