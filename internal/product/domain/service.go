package domain

import (
	"context"
	"time"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	variantdomain "github.com/sellercentre/catalog/internal/variant/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	ListByShop(ctx context.Context, shopID string) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

// SKUInput describes one SKU of an initial variant. An empty Code gets a
// generated one.
type SKUInput struct {
	Code                string                      `json:"code,omitempty"`
	DistinguishingValue *attributedomain.ValueInput `json:"distinguishingValue,omitempty"`
	Price               float64                     `json:"price"`
	StockCount          int                         `json:"stockCount"`
}

type VariantInput struct {
	Price      float64                          `json:"price"`
	Images     []string                         `json:"images,omitempty"`
	Attributes []attributedomain.AttributeInput `json:"attributes,omitempty"`
	SKUs       []SKUInput                       `json:"skus,omitempty"`
}

type CreateRequest struct {
	ShopID      string         `json:"shopId"`
	CategoryID  string         `json:"categoryId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Variants    []VariantInput `json:"variants,omitempty"`
}

// UpdateRequest carries partial updates; nil fields stay untouched. Each
// changed field records its own outbox event.
type UpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Response struct {
	ID          string                   `json:"id"`
	ShopID      string                   `json:"shopId"`
	CategoryID  string                   `json:"categoryId"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Variants    []variantdomain.Response `json:"variants"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}
