package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	sellerdomain "github.com/sellercentre/catalog/internal/seller/domain"
	"github.com/sellercentre/catalog/internal/shop/domain"
	"github.com/sellercentre/catalog/pkg/db"
	"github.com/sellercentre/catalog/pkg/idcodec"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Codec   *idcodec.Codec
	Repo    domain.Repository
	Sellers sellerdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	codec   *idcodec.Codec
	repo    domain.Repository
	sellers sellerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("shop.service"),
		genID:   p.GenID,
		codec:   p.Codec,
		repo:    p.Repo,
		sellers: p.Sellers,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	sellerID, err := s.codec.Decode(req.SellerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	seller, err := s.sellers.FindByID(ctx, s.db, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, fmt.Errorf("seller: %w", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	shop := &domain.Shop{
		ID:          s.genID.Generate().Int64(),
		SellerID:    sellerID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, s.db, shop); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}

	resp := s.toResponse(shop)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	shopID, err := s.codec.Decode(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	shop, err := s.repo.FindByID(ctx, s.db, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(shop)
	return &resp, nil
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Response, error) {
	decoded, err := s.codec.Decode(sellerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	items, err := s.repo.FindBySeller(ctx, s.db, decoded)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	shopID, err := s.codec.Decode(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	affected, err := s.repo.Delete(ctx, s.db, shopID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) toResponse(shop *domain.Shop) domain.Response {
	return domain.Response{
		ID:          s.codec.Encode(shop.ID),
		SellerID:    s.codec.Encode(shop.SellerID),
		Name:        shop.Name,
		Slug:        shop.Slug,
		Description: shop.Description,
		CreatedAt:   shop.CreatedAt,
		UpdatedAt:   shop.UpdatedAt,
	}
}
