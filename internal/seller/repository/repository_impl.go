package repository

import (
	"context"

	"github.com/sellercentre/catalog/internal/seller/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, seller *domain.Seller) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sellers (id, name, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		seller.ID,
		seller.Name,
		seller.Email,
		seller.CreatedAt,
		seller.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Seller, error) {
	var s domain.Seller
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, created_at, updated_at FROM sellers WHERE id = ?`,
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

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Seller, error) {
	var items []domain.Seller
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, created_at, updated_at FROM sellers ORDER BY created_at ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM sellers WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
