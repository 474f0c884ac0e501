package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	"github.com/sellercentre/catalog/internal/cache"
	"github.com/sellercentre/catalog/internal/category/domain"
	"github.com/sellercentre/catalog/pkg/idcodec"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxDepth bounds parent walks; a deeper chain means a cycle in the tree.
const maxDepth = 32

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Codec     *idcodec.Codec
	Cache     *cache.Cache
	Repo      domain.Repository
	Attrs     attributedomain.Service
	AttrsRepo attributedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	codec     *idcodec.Codec
	cache     *cache.Cache
	repo      domain.Repository
	attrs     attributedomain.Service
	attrsRepo attributedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("category.service"),
		genID:     p.GenID,
		codec:     p.Codec,
		cache:     p.Cache,
		repo:      p.Repo,
		attrs:     p.Attrs,
		attrsRepo: p.AttrsRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	var parentID *int64
	if req.ParentID != nil {
		decoded, err := s.codec.Decode(*req.ParentID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		parentID = &decoded
	}

	var category *domain.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			parent, err := s.repo.FindByID(ctx, tx, *parentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("parent category: %w", domain.ErrNotFound)
			}
		}

		// Dedup on create: an existing category with the same natural key
		// (parent, name) is reused instead of duplicated.
		existing, err := s.repo.FindByParentAndName(ctx, tx, parentID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			category = existing
		} else {
			now := time.Now().UTC()
			category = &domain.Category{
				ID:        s.genID.Generate().Int64(),
				ParentID:  parentID,
				Name:      name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.Create(ctx, tx, category); err != nil {
				return err
			}
		}

		return s.bindAttributes(ctx, tx, category.ID, req)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, category)
}

// bindAttributes converges both association paths on the same attribute
// definition entities.
func (s *Service) bindAttributes(ctx context.Context, tx *gorm.DB, categoryID int64, req domain.CreateRequest) error {
	existingBindings, err := s.repo.FindBindings(ctx, tx, categoryID)
	if err != nil {
		return err
	}
	bound := make(map[int64]bool, len(existingBindings))
	for _, b := range existingBindings {
		bound[b.AttributeID] = true
	}

	bind := func(attributeID int64, required bool) error {
		if bound[attributeID] {
			return nil
		}
		bound[attributeID] = true
		return s.repo.BindAttribute(ctx, tx, &domain.CategoryAttribute{
			CategoryID:  categoryID,
			AttributeID: attributeID,
			IsRequired:  required,
		})
	}

	for _, ref := range req.Attributes {
		attrID, err := s.codec.Decode(ref.AttributeID)
		if err != nil {
			return domain.ErrInvalidID
		}
		def, err := s.attrsRepo.FindDefinitionByID(ctx, tx, attrID)
		if err != nil {
			return err
		}
		if def == nil {
			return fmt.Errorf("attribute definition: %w", domain.ErrNotFound)
		}
		if err := bind(def.ID, ref.IsRequired); err != nil {
			return err
		}
	}

	for _, inline := range req.InlineAttributes {
		def, err := s.attrs.EnsureDefinition(ctx, tx, inline.AttributeInput)
		if err != nil {
			return err
		}
		if err := bind(def.ID, inline.IsRequired); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	categoryID, err := s.codec.Decode(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	category, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	return s.toResponse(ctx, category)
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		r, err := s.toResponse(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

// Path walks the tree to the root and joins names with dots, root first.
// Resolved paths are cached; the tree is append-only so entries never go
// stale.
func (s *Service) Path(ctx context.Context, tx *gorm.DB, id int64) (string, error) {
	cacheKey := fmt.Sprintf("category_path:%d", id)

	var cached string
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.log.Warn("category path cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	names := make([]string, 0, 4)
	current := &id
	for depth := 0; current != nil; depth++ {
		if depth >= maxDepth {
			return "", fmt.Errorf("category %d: parent chain exceeds %d levels", id, maxDepth)
		}
		category, err := s.repo.FindByID(ctx, tx, *current)
		if err != nil {
			return "", err
		}
		if category == nil {
			return "", fmt.Errorf("category %d: %w", *current, domain.ErrNotFound)
		}
		names = append(names, category.Name)
		current = category.ParentID
	}

	// Reverse to root -> leaf order.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	path := strings.Join(names, ".")

	if err := s.cache.Set(ctx, cacheKey, path); err != nil {
		s.log.Warn("category path cache write failed", zap.Error(err))
	}
	return path, nil
}

func (s *Service) toResponse(ctx context.Context, category *domain.Category) (*domain.Response, error) {
	path, err := s.Path(ctx, s.db, category.ID)
	if err != nil {
		return nil, err
	}

	bindings, err := s.repo.FindBindings(ctx, s.db, category.ID)
	if err != nil {
		return nil, err
	}

	bound := make([]domain.BoundAttribute, 0, len(bindings))
	for _, b := range bindings {
		def, err := s.attrsRepo.FindDefinitionByID(ctx, s.db, b.AttributeID)
		if err != nil {
			return nil, err
		}
		if def == nil {
			continue
		}
		bound = append(bound, domain.BoundAttribute{
			AttributeID: s.codec.Encode(def.ID),
			Name:        def.Name,
			IsRequired:  b.IsRequired,
		})
	}

	resp := &domain.Response{
		ID:         s.codec.Encode(category.ID),
		Name:       category.Name,
		Path:       path,
		Attributes: bound,
		CreatedAt:  category.CreatedAt,
		UpdatedAt:  category.UpdatedAt,
	}
	if category.ParentID != nil {
		parentToken := s.codec.Encode(*category.ParentID)
		resp.ParentID = &parentToken
	}
	return resp, nil
}
