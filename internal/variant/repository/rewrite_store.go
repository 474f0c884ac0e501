package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	"github.com/sellercentre/catalog/internal/variant/domain"
)

// rewriteStore persists attribute mutations by loading the whole document,
// mutating it in memory and writing it back. Works on every dialect.
type rewriteStore struct {
	repo domain.Repository
}

func ProvideRewriteStore(repo domain.Repository) domain.AttributeStore {
	return &rewriteStore{repo: repo}
}

func (s *rewriteStore) load(ctx context.Context, tx *gorm.DB, variantID int64) (*domain.ProductVariant, error) {
	variant, err := s.repo.FindByID(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("variant %d: %w", variantID, domain.ErrNotFound)
	}
	return variant, nil
}

func (s *rewriteStore) save(ctx context.Context, tx *gorm.DB, variant *domain.ProductVariant) error {
	return exactlyOne(tx.WithContext(ctx).Exec(
		`UPDATE product_variants SET attributes = ?, updated_at = ? WHERE id = ?`,
		variant.Attributes, time.Now(), variant.ID,
	), "variant.rewrite_attributes", variant.ID)
}

func (s *rewriteStore) AddAttribute(ctx context.Context, tx *gorm.DB, variantID int64, attr attributedomain.Attribute) error {
	variant, err := s.load(ctx, tx, variantID)
	if err != nil {
		return err
	}
	if err := variant.Attributes.Add(attr); err != nil {
		return err
	}
	return s.save(ctx, tx, variant)
}

func (s *rewriteStore) RemoveAttribute(ctx context.Context, tx *gorm.DB, variantID int64, name string) (bool, error) {
	variant, err := s.load(ctx, tx, variantID)
	if err != nil {
		return false, err
	}
	if !variant.Attributes.Remove(name) {
		return false, nil
	}
	return true, s.save(ctx, tx, variant)
}

func (s *rewriteStore) AddValue(ctx context.Context, tx *gorm.DB, variantID int64, attrName, subName string, v attributedomain.AttributeValue) error {
	variant, err := s.load(ctx, tx, variantID)
	if err != nil {
		return err
	}
	attr, ok := variant.Attributes.Find(attrName)
	if !ok {
		return fmt.Errorf("attribute %q: %w", attrName, attributedomain.ErrNotFound)
	}
	if err := attributedomain.AddValueTo(attr, subName, v); err != nil {
		return err
	}
	return s.save(ctx, tx, variant)
}

func (s *rewriteStore) RemoveValue(ctx context.Context, tx *gorm.DB, variantID int64, attrName, subName string, v attributedomain.AttributeValue) (bool, error) {
	variant, err := s.load(ctx, tx, variantID)
	if err != nil {
		return false, err
	}
	attr, ok := variant.Attributes.Find(attrName)
	if !ok {
		return false, fmt.Errorf("attribute %q: %w", attrName, attributedomain.ErrNotFound)
	}
	removed, err := attributedomain.RemoveValueFrom(attr, subName, v)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}
	return true, s.save(ctx, tx, variant)
}

func (s *rewriteStore) Collection(ctx context.Context, tx *gorm.DB, variantID int64) (*attributedomain.Collection, error) {
	variant, err := s.load(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}
	return &variant.Attributes, nil
}
