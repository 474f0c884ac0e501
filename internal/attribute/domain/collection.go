package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Collection is the ordered, name-keyed set of attributes owned by exactly
// one product variant. It persists as a single JSONB document.
type Collection struct {
	Attributes []Attribute
}

// Find returns the attribute with the given name.
func (c *Collection) Find(name string) (Attribute, bool) {
	for _, attr := range c.Attributes {
		if attr.Name() == name {
			return attr, true
		}
	}
	return nil, false
}

// Add appends an attribute; names are unique within a collection.
func (c *Collection) Add(attr Attribute) error {
	if _, ok := c.Find(attr.Name()); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAttribute, attr.Name())
	}
	c.Attributes = append(c.Attributes, attr)
	return nil
}

// Remove deletes the named attribute and reports whether anything was
// removed. Removing an absent attribute is a no-op, not an error.
func (c *Collection) Remove(name string) bool {
	for i, attr := range c.Attributes {
		if attr.Name() == name {
			c.Attributes = append(c.Attributes[:i], c.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

// AddValue appends a value to the named plain attribute. Composite attributes
// only accept values through a named sub-attribute.
func (c *Collection) AddValue(attrName string, v AttributeValue) error {
	attr, ok := c.Find(attrName)
	if !ok {
		return fmt.Errorf("attribute %q: %w", attrName, ErrNotFound)
	}
	return AddValueTo(attr, "", v)
}

// RemoveValue removes the first structurally equal value from the named plain
// attribute.
func (c *Collection) RemoveValue(attrName string, v AttributeValue) (bool, error) {
	attr, ok := c.Find(attrName)
	if !ok {
		return false, fmt.Errorf("attribute %q: %w", attrName, ErrNotFound)
	}
	return RemoveValueFrom(attr, "", v)
}

// AddCompositeValue appends a value to a named sub-attribute of a composite
// attribute.
func (c *Collection) AddCompositeValue(attrName, subName string, v AttributeValue) error {
	attr, ok := c.Find(attrName)
	if !ok {
		return fmt.Errorf("attribute %q: %w", attrName, ErrNotFound)
	}
	return AddValueTo(attr, subName, v)
}

// RemoveCompositeValue removes the first structurally equal value from a
// named sub-attribute of a composite attribute.
func (c *Collection) RemoveCompositeValue(attrName, subName string, v AttributeValue) (bool, error) {
	attr, ok := c.Find(attrName)
	if !ok {
		return false, fmt.Errorf("attribute %q: %w", attrName, ErrNotFound)
	}
	return RemoveValueFrom(attr, subName, v)
}

// AddValueTo mutates a single attribute. Both persistence strategies funnel
// through here, so their behavior cannot drift apart. An empty subName
// targets the attribute itself; a non-empty one targets a composite's
// sub-attribute.
func AddValueTo(attr Attribute, subName string, v AttributeValue) error {
	target, err := resolveTarget(attr, subName)
	if err != nil {
		return err
	}
	return target.AddValue(v)
}

// RemoveValueFrom is the removal counterpart of AddValueTo.
func RemoveValueFrom(attr Attribute, subName string, v AttributeValue) (bool, error) {
	target, err := resolveTarget(attr, subName)
	if err != nil {
		return false, err
	}
	return target.RemoveValue(v), nil
}

func resolveTarget(attr Attribute, subName string) (*PlainAttribute, error) {
	switch a := attr.(type) {
	case *PlainAttribute:
		if subName != "" {
			return nil, fmt.Errorf("attribute %q is not composite: %w", attr.Name(), ErrInvalidOperation)
		}
		return a, nil
	case *CompositeAttribute:
		if subName == "" {
			return nil, fmt.Errorf("attribute %q is composite: %w", attr.Name(), ErrInvalidOperation)
		}
		sub := a.Sub(subName)
		if sub == nil {
			return nil, fmt.Errorf("sub-attribute %q: %w", subName, ErrNotFound)
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, attr)
	}
}

type collectionDoc struct {
	Attributes []json.RawMessage `json:"attributes"`
}

func (c Collection) MarshalJSON() ([]byte, error) {
	doc := collectionDoc{Attributes: make([]json.RawMessage, 0, len(c.Attributes))}
	for _, attr := range c.Attributes {
		raw, err := MarshalAttribute(attr)
		if err != nil {
			return nil, err
		}
		doc.Attributes = append(doc.Attributes, raw)
	}
	return json.Marshal(doc)
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var doc collectionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	attrs := make([]Attribute, 0, len(doc.Attributes))
	for _, raw := range doc.Attributes {
		attr, err := UnmarshalAttribute(raw)
		if err != nil {
			return err
		}
		attrs = append(attrs, attr)
	}
	c.Attributes = attrs
	return nil
}

// Value implements driver.Valuer so the collection persists as one document.
func (c Collection) Value() (driver.Value, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (c *Collection) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		c.Attributes = nil
		return nil
	case []byte:
		return json.Unmarshal(data, c)
	case string:
		return json.Unmarshal([]byte(data), c)
	default:
		return fmt.Errorf("unsupported attribute document source %T", src)
	}
}

// GormDataType keeps the column schemaless across dialects.
func (Collection) GormDataType() string { return "json" }

// GormDBDataType picks the native document type per dialect.
func (Collection) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	default:
		return "JSON"
	}
}
