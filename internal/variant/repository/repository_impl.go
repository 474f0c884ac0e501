package repository

import (
	"context"
	"time"

	"github.com/sellercentre/catalog/internal/variant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, variant *domain.ProductVariant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO product_variants (id, product_id, price, attributes, images, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		variant.ID,
		variant.ProductID,
		variant.Price,
		variant.Attributes,
		variant.Images,
		variant.CreatedAt,
		variant.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.ProductVariant, error) {
	var variant domain.ProductVariant
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, price, attributes, images, created_at, updated_at
		 FROM product_variants WHERE id = ?`,
		id,
	).Scan(&variant).Error
	if err != nil {
		return nil, err
	}
	if variant.ID == 0 {
		return nil, nil
	}
	return &variant, nil
}

func (r *repo) FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductVariant, error) {
	var items []domain.ProductVariant
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, price, attributes, images, created_at, updated_at
		 FROM product_variants WHERE product_id = ? ORDER BY created_at ASC`,
		productID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdatePrice(ctx context.Context, db *gorm.DB, id int64, price float64) error {
	return exactlyOne(db.WithContext(ctx).Exec(
		`UPDATE product_variants SET price = ?, updated_at = ? WHERE id = ?`,
		price, time.Now(), id,
	), "variant.update_price", id)
}

func (r *repo) UpdateImages(ctx context.Context, db *gorm.DB, id int64, images []byte) error {
	return exactlyOne(db.WithContext(ctx).Exec(
		`UPDATE product_variants SET images = ?, updated_at = ? WHERE id = ?`,
		images, time.Now(), id,
	), "variant.update_images", id)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM skus WHERE variant_id = ?`, id).Error; err != nil {
		return err
	}
	return exactlyOne(db.WithContext(ctx).Exec(
		`DELETE FROM product_variants WHERE id = ?`, id,
	), "variant.delete", id)
}

func (r *repo) CreateSKU(ctx context.Context, db *gorm.DB, sku *domain.SKU) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO skus (id, variant_id, code, distinguishing_value, price, stock_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sku.ID,
		sku.VariantID,
		sku.Code,
		sku.DistinguishingValue,
		sku.Price,
		sku.StockCount,
		sku.CreatedAt,
		sku.UpdatedAt,
	).Error
}

func (r *repo) FindSKUByID(ctx context.Context, db *gorm.DB, id int64) (*domain.SKU, error) {
	var sku domain.SKU
	err := db.WithContext(ctx).Raw(
		`SELECT id, variant_id, code, distinguishing_value, price, stock_count, created_at, updated_at
		 FROM skus WHERE id = ?`,
		id,
	).Scan(&sku).Error
	if err != nil {
		return nil, err
	}
	if sku.ID == 0 {
		return nil, nil
	}
	return &sku, nil
}

func (r *repo) FindSKUsByVariant(ctx context.Context, db *gorm.DB, variantID int64) ([]domain.SKU, error) {
	var items []domain.SKU
	err := db.WithContext(ctx).Raw(
		`SELECT id, variant_id, code, distinguishing_value, price, stock_count, created_at, updated_at
		 FROM skus WHERE variant_id = ? ORDER BY created_at ASC`,
		variantID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateSKUStock(ctx context.Context, db *gorm.DB, id int64, stockCount int) error {
	return exactlyOne(db.WithContext(ctx).Exec(
		`UPDATE skus SET stock_count = ?, updated_at = ? WHERE id = ?`,
		stockCount, time.Now(), id,
	), "sku.update_stock", id)
}

func (r *repo) UpdateSKUPrice(ctx context.Context, db *gorm.DB, id int64, price float64) error {
	return exactlyOne(db.WithContext(ctx).Exec(
		`UPDATE skus SET price = ?, updated_at = ? WHERE id = ?`,
		price, time.Now(), id,
	), "sku.update_price", id)
}

// exactlyOne enforces the single-row contract of primary-key writes. Zero
// rows means the target is gone; more than one means the table itself is
// corrupt.
func exactlyOne(tx *gorm.DB, op string, id int64) error {
	if tx.Error != nil {
		return tx.Error
	}
	switch {
	case tx.RowsAffected == 0:
		return domain.ErrNotFound
	case tx.RowsAffected > 1:
		return &domain.InvariantViolationError{Op: op, VariantID: id, Rows: tx.RowsAffected}
	}
	return nil
}
