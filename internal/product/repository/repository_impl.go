package repository

import (
	"context"
	"time"

	"github.com/sellercentre/catalog/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, shop_id, category_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.ShopID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, shop_id, category_id, name, description, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) FindByShop(ctx context.Context, db *gorm.DB, shopID int64) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, shop_id, category_id, name, description, created_at, updated_at
		 FROM products WHERE shop_id = ? ORDER BY created_at ASC`,
		shopID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateName(ctx context.Context, db *gorm.DB, id int64, name string) error {
	return touch(db.WithContext(ctx).Exec(
		`UPDATE products SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now(), id,
	))
}

func (r *repo) UpdateDescription(ctx context.Context, db *gorm.DB, id int64, description string) error {
	return touch(db.WithContext(ctx).Exec(
		`UPDATE products SET description = ?, updated_at = ? WHERE id = ?`,
		description, time.Now(), id,
	))
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	err := db.WithContext(ctx).Exec(
		`DELETE FROM skus WHERE variant_id IN (SELECT id FROM product_variants WHERE product_id = ?)`,
		id,
	).Error
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec(`DELETE FROM product_variants WHERE product_id = ?`, id).Error; err != nil {
		return err
	}
	return touch(db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id))
}

func touch(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
