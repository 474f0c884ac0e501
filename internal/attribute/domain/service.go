package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Service interface {
	CreateDefinition(ctx context.Context, req AttributeInput) (*DefinitionResponse, error)
	GetDefinition(ctx context.Context, id string) (*DefinitionResponse, error)
	ListDefinitions(ctx context.Context) ([]DefinitionResponse, error)

	// EnsureDefinition runs inside the caller's transaction and returns the
	// existing definition with the same name, or creates one.
	EnsureDefinition(ctx context.Context, tx *gorm.DB, req AttributeInput) (*Definition, error)

	// MaterializeValue deduplicates a freshly parsed value against stored
	// leaf records by natural key, creating one only when absent.
	MaterializeValue(ctx context.Context, tx *gorm.DB, v AttributeValue) (*Value, error)

	// BuildAttribute materializes every value in the input and assembles the
	// tagged attribute ready for embedding in a variant document.
	BuildAttribute(ctx context.Context, tx *gorm.DB, req AttributeInput) (Attribute, error)
}

// ValueInput is the wire shape of a typed value payload.
type ValueInput struct {
	Kind           ValueKind `json:"type"`
	Value          string    `json:"value,omitempty"`
	NumericValue   *float64  `json:"numericValue,omitempty"`
	LocalizedValue string    `json:"localizedValue,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	Name           string    `json:"name,omitempty"`
	Hex            string    `json:"hex,omitempty"`
}

// ToValue converts the wire payload into its tagged variant.
func (in ValueInput) ToValue() (AttributeValue, error) {
	switch in.Kind {
	case StringType:
		return StringValue{Value: in.Value, LocalizedValue: in.LocalizedValue}, nil
	case NumericType:
		var num float64
		if in.NumericValue != nil {
			num = *in.NumericValue
		}
		return NumericValue{Value: num, LocalizedValue: in.LocalizedValue, Unit: in.Unit}, nil
	case ColorType:
		return ColorValue{Name: in.Name, Hex: in.Hex}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, in.Kind)
	}
}

// SubAttributeInput is the wire shape of a composite sub-attribute.
type SubAttributeInput struct {
	Name      string       `json:"name"`
	ShortName string       `json:"shortName"`
	IsFaceted bool         `json:"isFaceted"`
	ValueType ValueKind    `json:"valueType"`
	Values    []ValueInput `json:"availableValues"`
}

// AttributeInput is the wire shape of a whole attribute definition.
type AttributeInput struct {
	Kind          AttributeKind       `json:"kind"`
	Name          string              `json:"name"`
	ShortName     string              `json:"shortName"`
	IsFaceted     bool                `json:"isFaceted"`
	ValueType     ValueKind           `json:"valueType,omitempty"`
	Values        []ValueInput        `json:"availableValues,omitempty"`
	SubAttributes []SubAttributeInput `json:"subAttributes,omitempty"`
}

type DefinitionResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ShortName string          `json:"shortName"`
	Kind      AttributeKind   `json:"kind"`
	ValueType ValueKind       `json:"valueType,omitempty"`
	IsFaceted bool            `json:"isFaceted"`
	Document  json.RawMessage `json:"document,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
