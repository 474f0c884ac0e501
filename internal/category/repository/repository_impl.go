package repository

import (
	"context"

	"github.com/sellercentre/catalog/internal/category/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO categories (id, parent_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		category.ID,
		category.ParentID,
		category.Name,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	var c domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, parent_id, name, created_at, updated_at FROM categories WHERE id = ?`,
		id,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) FindByParentAndName(ctx context.Context, db *gorm.DB, parentID *int64, name string) (*domain.Category, error) {
	var c domain.Category
	stmt := db.WithContext(ctx).Table("categories").Where("name = ?", name)
	if parentID == nil {
		stmt = stmt.Where("parent_id IS NULL")
	} else {
		stmt = stmt.Where("parent_id = ?", *parentID)
	}
	if err := stmt.Scan(&c).Error; err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, parent_id, name, created_at, updated_at FROM categories ORDER BY created_at ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) BindAttribute(ctx context.Context, db *gorm.DB, binding *domain.CategoryAttribute) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO category_attributes (category_id, attribute_id, is_required)
		 VALUES (?, ?, ?)`,
		binding.CategoryID,
		binding.AttributeID,
		binding.IsRequired,
	).Error
}

func (r *repo) FindBindings(ctx context.Context, db *gorm.DB, categoryID int64) ([]domain.CategoryAttribute, error) {
	var items []domain.CategoryAttribute
	err := db.WithContext(ctx).Raw(
		`SELECT category_id, attribute_id, is_required FROM category_attributes WHERE category_id = ?`,
		categoryID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
