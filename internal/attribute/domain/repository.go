package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateDefinition(ctx context.Context, db *gorm.DB, def *Definition) error
	FindDefinitionByID(ctx context.Context, db *gorm.DB, id int64) (*Definition, error)
	FindDefinitionByName(ctx context.Context, db *gorm.DB, name string) (*Definition, error)
	FindAllDefinitions(ctx context.Context, db *gorm.DB) ([]Definition, error)

	CreateValue(ctx context.Context, db *gorm.DB, value *Value) error
	FindValueByNaturalKey(ctx context.Context, db *gorm.DB, key string) (*Value, error)
}
