package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	"github.com/sellercentre/catalog/internal/outbox"
	outboxdomain "github.com/sellercentre/catalog/internal/outbox/domain"
	"github.com/sellercentre/catalog/internal/variant/domain"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Codec     *idcodec.Codec
	Repo      domain.Repository
	Store     domain.AttributeStore
	Attrs     attributedomain.Service
	Events    *outbox.Recorder
	Snapshots *outbox.SnapshotBuilder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	codec     *idcodec.Codec
	repo      domain.Repository
	store     domain.AttributeStore
	attrs     attributedomain.Service
	events    *outbox.Recorder
	snapshots *outbox.SnapshotBuilder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("variant.service"),
		genID:     p.GenID,
		codec:     p.Codec,
		repo:      p.Repo,
		store:     p.Store,
		attrs:     p.Attrs,
		events:    p.Events,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	variantID, err := s.codec.Decode(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	variant, err := s.repo.FindByID(ctx, s.db, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}

	skus, err := s.repo.FindSKUsByVariant(ctx, s.db, variantID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(variant, skus)
}

func (s *Service) AddAttribute(ctx context.Context, req domain.AddAttributeRequest) (*domain.MutationResponse, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	return s.mutate(ctx, variantID, outboxdomain.ReasonAttributes, nil, func(tx *gorm.DB) (bool, error) {
		if _, err := s.attrs.EnsureDefinition(ctx, tx, req.Attribute); err != nil {
			return false, err
		}
		attr, err := s.attrs.BuildAttribute(ctx, tx, req.Attribute)
		if err != nil {
			return false, err
		}
		if err := s.store.AddAttribute(ctx, tx, variantID, attr); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Service) RemoveAttribute(ctx context.Context, req domain.RemoveAttributeRequest) (*domain.MutationResponse, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var removed bool
	return s.mutate(ctx, variantID, outboxdomain.ReasonAttributes, &removed, func(tx *gorm.DB) (bool, error) {
		var err error
		removed, err = s.store.RemoveAttribute(ctx, tx, variantID, req.AttributeName)
		return removed, err
	})
}

func (s *Service) AddAttributeValue(ctx context.Context, req domain.ValueRequest) (*domain.MutationResponse, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	v, err := req.Value.ToValue()
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, variantID, outboxdomain.ReasonAttributes, nil, func(tx *gorm.DB) (bool, error) {
		if _, err := s.attrs.MaterializeValue(ctx, tx, v); err != nil {
			return false, err
		}
		if err := s.store.AddValue(ctx, tx, variantID, req.AttributeName, req.SubAttributeName, v); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Service) RemoveAttributeValue(ctx context.Context, req domain.ValueRequest) (*domain.MutationResponse, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	v, err := req.Value.ToValue()
	if err != nil {
		return nil, err
	}

	var removed bool
	return s.mutate(ctx, variantID, outboxdomain.ReasonAttributes, &removed, func(tx *gorm.DB) (bool, error) {
		var err error
		removed, err = s.store.RemoveValue(ctx, tx, variantID, req.AttributeName, req.SubAttributeName, v)
		return removed, err
	})
}

func (s *Service) UpdatePrice(ctx context.Context, req domain.PriceRequest) (*domain.Response, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	return s.update(ctx, variantID, outboxdomain.ReasonPrice, func(tx *gorm.DB) error {
		return s.repo.UpdatePrice(ctx, tx, variantID, req.Price)
	})
}

func (s *Service) UpdateImages(ctx context.Context, req domain.ImagesRequest) (*domain.Response, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	images, err := json.Marshal(req.Images)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, variantID, outboxdomain.ReasonPhotos, func(tx *gorm.DB) error {
		return s.repo.UpdateImages(ctx, tx, variantID, images)
	})
}

func (s *Service) UpdateSKUStock(ctx context.Context, req domain.SKUStockRequest) (*domain.Response, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	skuID, err := s.codec.Decode(req.SKUID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	return s.update(ctx, variantID, outboxdomain.ReasonSKUStock, func(tx *gorm.DB) error {
		if err := s.checkSKU(ctx, tx, variantID, skuID); err != nil {
			return err
		}
		return s.repo.UpdateSKUStock(ctx, tx, skuID, req.StockCount)
	})
}

func (s *Service) UpdateSKUPrice(ctx context.Context, req domain.SKUPriceRequest) (*domain.Response, error) {
	variantID, err := s.codec.Decode(req.VariantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	skuID, err := s.codec.Decode(req.SKUID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	return s.update(ctx, variantID, outboxdomain.ReasonSKUPrice, func(tx *gorm.DB) error {
		if err := s.checkSKU(ctx, tx, variantID, skuID); err != nil {
			return err
		}
		return s.repo.UpdateSKUPrice(ctx, tx, skuID, req.Price)
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	variantID, err := s.codec.Decode(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, variantID); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outboxdomain.EventVariantDeleted, variantID, "", nil)
	})
	if err != nil {
		s.observe(err, variantID)
		return err
	}
	return nil
}

type mutationFn func(tx *gorm.DB) (changed bool, err error)

// mutate runs one document mutation, re-reads the post-mutation state and
// records the outbox event, all in a single transaction. A mutation that
// changed nothing commits without an event.
func (s *Service) mutate(ctx context.Context, variantID int64, reason string, removed *bool, fn mutationFn) (*domain.MutationResponse, error) {
	var variant *domain.ProductVariant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		changed, err := fn(tx)
		if err != nil {
			return err
		}

		found, err := s.repo.FindByID(ctx, tx, variantID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrNotFound
		}
		variant = found

		if !changed {
			return nil
		}
		snapshot, err := s.snapshots.BuildProduct(ctx, tx, variant.ProductID)
		if err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outboxdomain.EventVariantUpdated, variantID, reason, snapshot)
	})
	if err != nil {
		s.observe(err, variantID)
		return nil, err
	}

	doc, err := json.Marshal(variant.Attributes)
	if err != nil {
		return nil, err
	}
	return &domain.MutationResponse{
		VariantID:  s.codec.Encode(variantID),
		Removed:    removed,
		Attributes: doc,
	}, nil
}

// update runs one scalar mutation plus its outbox event in a single
// transaction and returns the refreshed variant.
func (s *Service) update(ctx context.Context, variantID int64, reason string, fn func(tx *gorm.DB) error) (*domain.Response, error) {
	var (
		variant *domain.ProductVariant
		skus    []domain.SKU
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}

		found, err := s.repo.FindByID(ctx, tx, variantID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrNotFound
		}
		variant = found

		skus, err = s.repo.FindSKUsByVariant(ctx, tx, variantID)
		if err != nil {
			return err
		}

		snapshot, err := s.snapshots.BuildProduct(ctx, tx, variant.ProductID)
		if err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outboxdomain.EventVariantUpdated, variantID, reason, snapshot)
	})
	if err != nil {
		s.observe(err, variantID)
		return nil, err
	}
	return s.toResponse(variant, skus)
}

// checkSKU guards SKU mutations against ids belonging to other variants.
func (s *Service) checkSKU(ctx context.Context, tx *gorm.DB, variantID, skuID int64) error {
	sku, err := s.repo.FindSKUByID(ctx, tx, skuID)
	if err != nil {
		return err
	}
	if sku == nil || sku.VariantID != variantID {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) observe(err error, variantID int64) {
	if errors.Is(err, domain.ErrInvariantViolation) {
		s.log.Error("document invariant violated",
			zap.Int64("variant_id", variantID),
			zap.Error(err),
		)
	}
}

func (s *Service) toResponse(variant *domain.ProductVariant, skus []domain.SKU) (*domain.Response, error) {
	doc, err := json.Marshal(variant.Attributes)
	if err != nil {
		return nil, err
	}

	var images []string
	if len(variant.Images) > 0 {
		if err := json.Unmarshal(variant.Images, &images); err != nil {
			return nil, err
		}
	}

	resp := &domain.Response{
		ID:         s.codec.Encode(variant.ID),
		ProductID:  s.codec.Encode(variant.ProductID),
		Price:      variant.Price,
		Attributes: doc,
		Images:     images,
		SKUs:       make([]domain.SKUResponse, 0, len(skus)),
		CreatedAt:  variant.CreatedAt,
		UpdatedAt:  variant.UpdatedAt,
	}
	for _, sku := range skus {
		resp.SKUs = append(resp.SKUs, domain.SKUResponse{
			ID:                  s.codec.Encode(sku.ID),
			Code:                sku.Code,
			DistinguishingValue: json.RawMessage(sku.DistinguishingValue),
			Price:               sku.Price,
			StockCount:          sku.StockCount,
		})
	}
	return resp, nil
}
