package domain

import (
	"errors"
	"fmt"
	"time"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	"gorm.io/datatypes"
)

// ProductVariant owns one attribute collection document, one image list and
// one SKU collection. It is deleted independently of its product or cascaded
// with it.
type ProductVariant struct {
	ID         int64                      `gorm:"primaryKey"`
	ProductID  int64                      `gorm:"not null;index"`
	Price      float64                    `gorm:"not null;default:0"`
	Attributes attributedomain.Collection `gorm:"not null"`
	Images     datatypes.JSON             `gorm:""`
	CreatedAt  time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// SKU is an individually priced and stocked unit within a variant, tagged
// with the value that distinguishes it.
type SKU struct {
	ID                  int64          `gorm:"primaryKey"`
	VariantID           int64          `gorm:"not null;index"`
	Code                string         `gorm:"type:text;not null;uniqueIndex:ux_skus_code"`
	DistinguishingValue datatypes.JSON `gorm:""`
	Price               float64        `gorm:"not null;default:0"`
	StockCount          int            `gorm:"not null;default:0"`
	CreatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SKU) TableName() string { return "skus" }

var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvariantViolation = errors.New("invariant_violation")
)

// InvariantViolationError flags a structurally impossible database state,
// such as a primary-key update touching more than one row. Treated as fatal:
// logged at the highest severity and never retried.
type InvariantViolationError struct {
	Op        string
	VariantID int64
	Rows      int64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation in %s: variant %d matched %d rows", e.Op, e.VariantID, e.Rows)
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}
