package domain

import (
	"errors"
	"time"
)

// Product anchors a set of variants under one shop and one category. The
// sellable state (price, attributes, stock) lives on the variants.
type Product struct {
	ID          int64     `gorm:"primaryKey"`
	ShopID      int64     `gorm:"not null;index"`
	CategoryID  int64     `gorm:"not null;index"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

var (
	ErrNotFound    = errors.New("not_found")
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
)
