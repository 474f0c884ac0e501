package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, product *Product) error
	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*Product, error)
	FindByShop(ctx context.Context, tx *gorm.DB, shopID int64) ([]Product, error)
	UpdateName(ctx context.Context, tx *gorm.DB, id int64, name string) error
	UpdateDescription(ctx context.Context, tx *gorm.DB, id int64, description string) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}
