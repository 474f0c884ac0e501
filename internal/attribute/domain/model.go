package domain

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Definition is a reusable attribute definition shared across categories and
// variants by reference-or-create-on-demand.
type Definition struct {
	ID        int64          `gorm:"primaryKey"`
	Name      string         `gorm:"type:text;not null;uniqueIndex:ux_attribute_definitions_name"`
	ShortName string         `gorm:"type:text;not null"`
	Kind      AttributeKind  `gorm:"type:text;not null"`
	ValueType ValueKind      `gorm:"type:text"`
	IsFaceted bool           `gorm:"not null;default:false"`
	Document  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Definition) TableName() string { return "attribute_definitions" }

// Value is a deduplicated leaf value record. Values with equal natural keys
// are the same row no matter how many attributes reference them.
type Value struct {
	ID         int64          `gorm:"primaryKey"`
	ValueType  ValueKind      `gorm:"type:text;not null"`
	NaturalKey string         `gorm:"type:text;not null;uniqueIndex:ux_attribute_values_natural_key"`
	Payload    datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Value) TableName() string { return "attribute_values" }

// NaturalKey derives the dedup key for a value payload: the string value, the
// numeric value plus unit, or the color hex.
func NaturalKey(v AttributeValue) string {
	switch val := v.(type) {
	case StringValue:
		return "string:" + val.Value
	case NumericValue:
		return "numeric:" + strconv.FormatFloat(val.Value, 'f', -1, 64) + ":" + val.Unit
	case ColorValue:
		return "color:" + val.Hex
	default:
		return fmt.Sprintf("unknown:%T", v)
	}
}
