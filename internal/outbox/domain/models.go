package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Event is one append-only outbox record. Rows are inserted in the same
// transaction as the mutation they describe and never updated afterwards.
type Event struct {
	ID        int64          `gorm:"primaryKey"`
	EventType string         `gorm:"type:text;not null"`
	EntityID  int64          `gorm:"not null;index"`
	Reason    string         `gorm:"type:text"`
	Payload   datatypes.JSON `gorm:""`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Event) TableName() string { return "outbox_events" }

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventVariantUpdated = "product_variant.updated"
	EventVariantDeleted = "product_variant.deleted"
)

// Update sub-reasons.
const (
	ReasonName        = "name"
	ReasonDescription = "description"
	ReasonPrice       = "price"
	ReasonPhotos      = "photos"
	ReasonAttributes  = "attributes"
	ReasonSKUStock    = "sku_stock"
	ReasonSKUPrice    = "sku_price"
)

// ProductSnapshot is the denormalized post-mutation state shipped with every
// non-delete event: enough for downstream consumers to reconstruct the
// product without further queries.
type ProductSnapshot struct {
	ProductID    string            `json:"productId"`
	ShopName     string            `json:"shopName"`
	CategoryPath string            `json:"categoryPath"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Variants     []VariantSnapshot `json:"variants"`
}

type VariantSnapshot struct {
	VariantID  string          `json:"variantId"`
	Price      float64         `json:"price"`
	Attributes json.RawMessage `json:"attributes"`
	Images     []string        `json:"images"`
	SKUs       []SKUSnapshot   `json:"skus"`
}

type SKUSnapshot struct {
	SKUID               string          `json:"skuId"`
	Code                string          `json:"code"`
	DistinguishingValue json.RawMessage `json:"distinguishingValue,omitempty"`
	Price               float64         `json:"price"`
	StockCount          int             `json:"stockCount"`
}
