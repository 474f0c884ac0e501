package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Category, error)
	FindByParentAndName(ctx context.Context, db *gorm.DB, parentID *int64, name string) (*Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Category, error)

	BindAttribute(ctx context.Context, db *gorm.DB, binding *CategoryAttribute) error
	FindBindings(ctx context.Context, db *gorm.DB, categoryID int64) ([]CategoryAttribute, error)
}
