package domain

import (
	"context"

	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, variant *ProductVariant) error
	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*ProductVariant, error)
	FindByProduct(ctx context.Context, tx *gorm.DB, productID int64) ([]ProductVariant, error)
	UpdatePrice(ctx context.Context, tx *gorm.DB, id int64, price float64) error
	UpdateImages(ctx context.Context, tx *gorm.DB, id int64, images []byte) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error

	CreateSKU(ctx context.Context, tx *gorm.DB, sku *SKU) error
	FindSKUByID(ctx context.Context, tx *gorm.DB, id int64) (*SKU, error)
	FindSKUsByVariant(ctx context.Context, tx *gorm.DB, variantID int64) ([]SKU, error)
	UpdateSKUStock(ctx context.Context, tx *gorm.DB, id int64, stockCount int) error
	UpdateSKUPrice(ctx context.Context, tx *gorm.DB, id int64, price float64) error
}

// AttributeStore mutates a variant's attribute document. The rewrite
// implementation loads, mutates in memory, and saves the whole document; the
// patch implementation targets the affected element in place. Both apply the
// same in-memory mutators, so the observable results are identical.
type AttributeStore interface {
	AddAttribute(ctx context.Context, tx *gorm.DB, variantID int64, attr attributedomain.Attribute) error
	RemoveAttribute(ctx context.Context, tx *gorm.DB, variantID int64, name string) (bool, error)
	AddValue(ctx context.Context, tx *gorm.DB, variantID int64, attrName, subName string, v attributedomain.AttributeValue) error
	RemoveValue(ctx context.Context, tx *gorm.DB, variantID int64, attrName, subName string, v attributedomain.AttributeValue) (bool, error)
	Collection(ctx context.Context, tx *gorm.DB, variantID int64) (*attributedomain.Collection, error)
}
