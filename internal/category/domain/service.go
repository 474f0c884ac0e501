package domain

import (
	"context"
	"errors"
	"time"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)

	// Path returns the dot-joined name path from the root category to the
	// given one, reading through the caller's transaction.
	Path(ctx context.Context, tx *gorm.DB, id int64) (string, error)
}

// AttributeBinding references an existing attribute definition by id.
type AttributeBinding struct {
	AttributeID string `json:"attributeId"`
	IsRequired  bool   `json:"isRequired"`
}

// InlineAttribute requests a new attribute definition created with the
// category; an existing definition with the same name is reused.
type InlineAttribute struct {
	attributedomain.AttributeInput
	IsRequired bool `json:"isRequired"`
}

type CreateRequest struct {
	Name             string             `json:"name"`
	ParentID         *string            `json:"parentId"`
	Attributes       []AttributeBinding `json:"attributes"`
	InlineAttributes []InlineAttribute  `json:"inlineAttributes"`
}

type BoundAttribute struct {
	AttributeID string `json:"attributeId"`
	Name        string `json:"name"`
	IsRequired  bool   `json:"isRequired"`
}

type Response struct {
	ID         string           `json:"id"`
	ParentID   *string          `json:"parentId,omitempty"`
	Name       string           `json:"name"`
	Path       string           `json:"path"`
	Attributes []BoundAttribute `json:"attributes"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

var (
	ErrNotFound    = errors.New("not_found")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
)
