package repository

import (
	"context"

	"github.com/sellercentre/catalog/internal/attribute/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateDefinition(ctx context.Context, db *gorm.DB, def *domain.Definition) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO attribute_definitions (id, name, short_name, kind, value_type, is_faceted, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		def.ID,
		def.Name,
		def.ShortName,
		def.Kind,
		def.ValueType,
		def.IsFaceted,
		def.Document,
		def.CreatedAt,
		def.UpdatedAt,
	).Error
}

func (r *repo) FindDefinitionByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Definition, error) {
	var def domain.Definition
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, short_name, kind, value_type, is_faceted, document, created_at, updated_at
		 FROM attribute_definitions WHERE id = ?`,
		id,
	).Scan(&def).Error
	if err != nil {
		return nil, err
	}
	if def.ID == 0 {
		return nil, nil
	}
	return &def, nil
}

func (r *repo) FindDefinitionByName(ctx context.Context, db *gorm.DB, name string) (*domain.Definition, error) {
	var def domain.Definition
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, short_name, kind, value_type, is_faceted, document, created_at, updated_at
		 FROM attribute_definitions WHERE name = ?`,
		name,
	).Scan(&def).Error
	if err != nil {
		return nil, err
	}
	if def.ID == 0 {
		return nil, nil
	}
	return &def, nil
}

func (r *repo) FindAllDefinitions(ctx context.Context, db *gorm.DB) ([]domain.Definition, error) {
	var items []domain.Definition
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, short_name, kind, value_type, is_faceted, document, created_at, updated_at
		 FROM attribute_definitions ORDER BY created_at ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CreateValue(ctx context.Context, db *gorm.DB, value *domain.Value) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO attribute_values (id, value_type, natural_key, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		value.ID,
		value.ValueType,
		value.NaturalKey,
		value.Payload,
		value.CreatedAt,
	).Error
}

func (r *repo) FindValueByNaturalKey(ctx context.Context, db *gorm.DB, key string) (*domain.Value, error) {
	var value domain.Value
	err := db.WithContext(ctx).Raw(
		`SELECT id, value_type, natural_key, payload, created_at
		 FROM attribute_values WHERE natural_key = ?`,
		key,
	).Scan(&value).Error
	if err != nil {
		return nil, err
	}
	if value.ID == 0 {
		return nil, nil
	}
	return &value, nil
}
