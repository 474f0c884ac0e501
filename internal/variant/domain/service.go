package domain

import (
	"context"
	"encoding/json"
	"time"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
)

type Service interface {
	Get(ctx context.Context, id string) (*Response, error)

	AddAttribute(ctx context.Context, req AddAttributeRequest) (*MutationResponse, error)
	RemoveAttribute(ctx context.Context, req RemoveAttributeRequest) (*MutationResponse, error)
	AddAttributeValue(ctx context.Context, req ValueRequest) (*MutationResponse, error)
	RemoveAttributeValue(ctx context.Context, req ValueRequest) (*MutationResponse, error)

	UpdatePrice(ctx context.Context, req PriceRequest) (*Response, error)
	UpdateImages(ctx context.Context, req ImagesRequest) (*Response, error)
	UpdateSKUStock(ctx context.Context, req SKUStockRequest) (*Response, error)
	UpdateSKUPrice(ctx context.Context, req SKUPriceRequest) (*Response, error)

	Delete(ctx context.Context, id string) error
}

// ValueRequest addresses a value add/remove. An empty SubAttributeName
// targets the named attribute directly; a non-empty one targets a composite's
// sub-attribute.
type ValueRequest struct {
	VariantID        string                      `json:"variantId"`
	AttributeName    string                      `json:"attributeName"`
	SubAttributeName string                      `json:"subAttributeName,omitempty"`
	Value            attributedomain.ValueInput  `json:"value"`
}

type AddAttributeRequest struct {
	VariantID string                          `json:"variantId"`
	Attribute attributedomain.AttributeInput  `json:"attribute"`
}

type RemoveAttributeRequest struct {
	VariantID     string `json:"variantId"`
	AttributeName string `json:"attributeName"`
}

type PriceRequest struct {
	VariantID string  `json:"variantId"`
	Price     float64 `json:"price"`
}

type ImagesRequest struct {
	VariantID string   `json:"variantId"`
	Images    []string `json:"images"`
}

type SKUStockRequest struct {
	VariantID  string `json:"variantId"`
	SKUID      string `json:"skuId"`
	StockCount int    `json:"stockCount"`
}

type SKUPriceRequest struct {
	VariantID string  `json:"variantId"`
	SKUID     string  `json:"skuId"`
	Price     float64 `json:"price"`
}

// MutationResponse reports the outcome of a document mutation together with
// the post-mutation attribute snapshot.
type MutationResponse struct {
	VariantID  string          `json:"variantId"`
	Removed    *bool           `json:"removed,omitempty"`
	Attributes json.RawMessage `json:"attributes"`
}

type SKUResponse struct {
	ID                  string          `json:"id"`
	Code                string          `json:"code"`
	DistinguishingValue json.RawMessage `json:"distinguishingValue,omitempty"`
	Price               float64         `json:"price"`
	StockCount          int             `json:"stockCount"`
}

type Response struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"productId"`
	Price      float64         `json:"price"`
	Attributes json.RawMessage `json:"attributes"`
	Images     []string        `json:"images"`
	SKUs       []SKUResponse   `json:"skus"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
