package repository

import (
	"context"

	"github.com/sellercentre/catalog/internal/shop/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, shop *domain.Shop) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO shops (id, seller_id, name, slug, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shop.ID,
		shop.SellerID,
		shop.Name,
		shop.Slug,
		shop.Description,
		shop.CreatedAt,
		shop.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Shop, error) {
	var s domain.Shop
	err := db.WithContext(ctx).Raw(
		`SELECT id, seller_id, name, slug, description, created_at, updated_at
		 FROM shops WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindBySeller(ctx context.Context, db *gorm.DB, sellerID int64) ([]domain.Shop, error) {
	var items []domain.Shop
	err := db.WithContext(ctx).Raw(
		`SELECT id, seller_id, name, slug, description, created_at, updated_at
		 FROM shops WHERE seller_id = ? ORDER BY created_at ASC`,
		sellerID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM shops WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
