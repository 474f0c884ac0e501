package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	"github.com/sellercentre/catalog/internal/variant/domain"
)

// patchStore mutates the attribute document in place with jsonb_set, touching
// only the affected array element. Requires the postgres dialect.
type patchStore struct {
	repo domain.Repository
}

func ProvidePatchStore(repo domain.Repository) domain.AttributeStore {
	return &patchStore{repo: repo}
}

type elementRow struct {
	Elem string
	Idx  int64
}

// lookupElement finds the array element holding the named attribute and its
// zero-based index. Distinguishes a missing variant from a missing attribute
// so callers can report the right target.
func (s *patchStore) lookupElement(ctx context.Context, tx *gorm.DB, variantID int64, attrName string) (*elementRow, error) {
	var rows []elementRow
	err := tx.WithContext(ctx).Raw(
		`SELECT arr.elem AS elem, arr.idx - 1 AS idx
		 FROM product_variants,
		      jsonb_array_elements(product_variants.attributes->'attributes') WITH ORDINALITY AS arr(elem, idx)
		 WHERE product_variants.id = ? AND arr.elem->>'attributeName' = ?`,
		variantID, attrName,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	switch {
	case len(rows) == 0:
		variant, err := s.repo.FindByID(ctx, tx, variantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, fmt.Errorf("variant %d: %w", variantID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("attribute %q: %w", attrName, attributedomain.ErrNotFound)
	case len(rows) > 1:
		return nil, &domain.InvariantViolationError{Op: "variant.lookup_attribute", VariantID: variantID, Rows: int64(len(rows))}
	}
	return &rows[0], nil
}

func (s *patchStore) writeElement(ctx context.Context, tx *gorm.DB, variantID, idx int64, elem []byte) error {
	return exactlyOne(tx.WithContext(ctx).Exec(
		`UPDATE product_variants
		 SET attributes = jsonb_set(attributes, ARRAY['attributes', ?::text], ?::jsonb),
		     updated_at = ?
		 WHERE id = ?`,
		idx, string(elem), time.Now(), variantID,
	), "variant.patch_attribute", variantID)
}

func (s *patchStore) AddAttribute(ctx context.Context, tx *gorm.DB, variantID int64, attr attributedomain.Attribute) error {
	_, err := s.lookupElement(ctx, tx, variantID, attr.Name())
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", attributedomain.ErrDuplicateAttribute, attr.Name())
	case errors.Is(err, attributedomain.ErrNotFound):
	default:
		return err
	}

	raw, err := attributedomain.MarshalAttribute(attr)
	if err != nil {
		return err
	}
	return exactlyOne(tx.WithContext(ctx).Exec(
		`UPDATE product_variants
		 SET attributes = jsonb_set(attributes, '{attributes}', COALESCE(attributes->'attributes', '[]'::jsonb) || ?::jsonb),
		     updated_at = ?
		 WHERE id = ?`,
		string(raw), time.Now(), variantID,
	), "variant.append_attribute", variantID)
}

func (s *patchStore) RemoveAttribute(ctx context.Context, tx *gorm.DB, variantID int64, name string) (bool, error) {
	row, err := s.lookupElement(ctx, tx, variantID, name)
	if err != nil {
		if errors.Is(err, attributedomain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	path := fmt.Sprintf("{attributes,%d}", row.Idx)
	err = exactlyOne(tx.WithContext(ctx).Exec(
		`UPDATE product_variants SET attributes = attributes #- ?::text[], updated_at = ? WHERE id = ?`,
		path, time.Now(), variantID,
	), "variant.remove_attribute", variantID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *patchStore) AddValue(ctx context.Context, tx *gorm.DB, variantID int64, attrName, subName string, v attributedomain.AttributeValue) error {
	row, err := s.lookupElement(ctx, tx, variantID, attrName)
	if err != nil {
		return err
	}
	attr, err := attributedomain.UnmarshalAttribute([]byte(row.Elem))
	if err != nil {
		return err
	}
	if err := attributedomain.AddValueTo(attr, subName, v); err != nil {
		return err
	}
	raw, err := attributedomain.MarshalAttribute(attr)
	if err != nil {
		return err
	}
	return s.writeElement(ctx, tx, variantID, row.Idx, raw)
}

func (s *patchStore) RemoveValue(ctx context.Context, tx *gorm.DB, variantID int64, attrName, subName string, v attributedomain.AttributeValue) (bool, error) {
	row, err := s.lookupElement(ctx, tx, variantID, attrName)
	if err != nil {
		return false, err
	}
	attr, err := attributedomain.UnmarshalAttribute([]byte(row.Elem))
	if err != nil {
		return false, err
	}
	removed, err := attributedomain.RemoveValueFrom(attr, subName, v)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}
	raw, err := attributedomain.MarshalAttribute(attr)
	if err != nil {
		return false, err
	}
	return true, s.writeElement(ctx, tx, variantID, row.Idx, raw)
}

func (s *patchStore) Collection(ctx context.Context, tx *gorm.DB, variantID int64) (*attributedomain.Collection, error) {
	variant, err := s.repo.FindByID(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("variant %d: %w", variantID, domain.ErrNotFound)
	}
	return &variant.Attributes, nil
}
