package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Shop struct {
	ID          int64     `gorm:"primaryKey"`
	SellerID    int64     `gorm:"not null;index"`
	Name        string    `gorm:"type:text;not null"`
	Slug        string    `gorm:"type:text;not null;uniqueIndex:ux_shops_slug"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Shop) TableName() string { return "shops" }

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Response, error)
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, shop *Shop) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Shop, error)
	FindBySeller(ctx context.Context, db *gorm.DB, sellerID int64) ([]Shop, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}

type CreateRequest struct {
	SellerID    string `json:"sellerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Response struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrNotFound      = errors.New("not_found")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateSlug = errors.New("duplicate_slug")
)
