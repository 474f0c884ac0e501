package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	categorydomain "github.com/sellercentre/catalog/internal/category/domain"
	"github.com/sellercentre/catalog/internal/outbox"
	outboxdomain "github.com/sellercentre/catalog/internal/outbox/domain"
	"github.com/sellercentre/catalog/internal/product/domain"
	shopdomain "github.com/sellercentre/catalog/internal/shop/domain"
	variantdomain "github.com/sellercentre/catalog/internal/variant/domain"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Codec      *idcodec.Codec
	Repo       domain.Repository
	Variants   variantdomain.Repository
	Shops      shopdomain.Repository
	Categories categorydomain.Repository
	Attrs      attributedomain.Service
	Events     *outbox.Recorder
	Snapshots  *outbox.SnapshotBuilder
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	codec      *idcodec.Codec
	repo       domain.Repository
	variants   variantdomain.Repository
	shops      shopdomain.Repository
	categories categorydomain.Repository
	attrs      attributedomain.Service
	events     *outbox.Recorder
	snapshots  *outbox.SnapshotBuilder
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("product.service"),
		genID:      p.GenID,
		codec:      p.Codec,
		repo:       p.Repo,
		variants:   p.Variants,
		shops:      p.Shops,
		categories: p.Categories,
		attrs:      p.Attrs,
		events:     p.Events,
		snapshots:  p.Snapshots,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	shopID, err := s.codec.Decode(req.ShopID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	categoryID, err := s.codec.Decode(req.CategoryID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var product *domain.Product
	err = s.db.Transaction(func(tx *gorm.DB) error {
		shop, err := s.shops.FindByID(ctx, tx, shopID)
		if err != nil {
			return err
		}
		if shop == nil {
			return shopdomain.ErrNotFound
		}
		category, err := s.categories.FindByID(ctx, tx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return categorydomain.ErrNotFound
		}

		now := time.Now()
		product = &domain.Product{
			ID:          s.genID.Generate().Int64(),
			ShopID:      shopID,
			CategoryID:  categoryID,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, tx, product); err != nil {
			return err
		}

		for _, in := range req.Variants {
			if err := s.createVariant(ctx, tx, product.ID, in); err != nil {
				return err
			}
		}

		snapshot, err := s.snapshots.BuildProduct(ctx, tx, product.ID)
		if err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outboxdomain.EventProductCreated, product.ID, "", snapshot)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, product)
}

func (s *Service) createVariant(ctx context.Context, tx *gorm.DB, productID int64, in domain.VariantInput) error {
	collection := attributedomain.Collection{}
	for _, attrIn := range in.Attributes {
		if _, err := s.attrs.EnsureDefinition(ctx, tx, attrIn); err != nil {
			return err
		}
		attr, err := s.attrs.BuildAttribute(ctx, tx, attrIn)
		if err != nil {
			return err
		}
		if err := collection.Add(attr); err != nil {
			return err
		}
	}

	var images datatypes.JSON
	if len(in.Images) > 0 {
		raw, err := json.Marshal(in.Images)
		if err != nil {
			return err
		}
		images = datatypes.JSON(raw)
	}

	now := time.Now()
	variant := &variantdomain.ProductVariant{
		ID:         s.genID.Generate().Int64(),
		ProductID:  productID,
		Price:      in.Price,
		Attributes: collection,
		Images:     images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.variants.Create(ctx, tx, variant); err != nil {
		return err
	}

	for _, skuIn := range in.SKUs {
		if err := s.createSKU(ctx, tx, variant.ID, skuIn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) createSKU(ctx context.Context, tx *gorm.DB, variantID int64, in domain.SKUInput) error {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = uuid.NewString()
	}

	var distinguishing datatypes.JSON
	if in.DistinguishingValue != nil {
		v, err := in.DistinguishingValue.ToValue()
		if err != nil {
			return err
		}
		if _, err := s.attrs.MaterializeValue(ctx, tx, v); err != nil {
			return err
		}
		raw, err := attributedomain.MarshalValue(v)
		if err != nil {
			return err
		}
		distinguishing = datatypes.JSON(raw)
	}

	now := time.Now()
	return s.variants.CreateSKU(ctx, tx, &variantdomain.SKU{
		ID:                  s.genID.Generate().Int64(),
		VariantID:           variantID,
		Code:                code,
		DistinguishingValue: distinguishing,
		Price:               in.Price,
		StockCount:          in.StockCount,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := s.codec.Decode(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, product)
}

func (s *Service) ListByShop(ctx context.Context, shopID string) ([]domain.Response, error) {
	id, err := s.codec.Decode(shopID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	products, err := s.repo.FindByShop(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Response, 0, len(products))
	for i := range products {
		resp, err := s.toResponse(ctx, &products[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := s.codec.Decode(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var product *domain.Product
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.ErrInvalidName
			}
			if err := s.repo.UpdateName(ctx, tx, productID, name); err != nil {
				return err
			}
			if err := s.recordUpdate(ctx, tx, productID, outboxdomain.ReasonName); err != nil {
				return err
			}
		}
		if req.Description != nil {
			if err := s.repo.UpdateDescription(ctx, tx, productID, *req.Description); err != nil {
				return err
			}
			if err := s.recordUpdate(ctx, tx, productID, outboxdomain.ReasonDescription); err != nil {
				return err
			}
		}

		found, err := s.repo.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrNotFound
		}
		product = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, product)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := s.codec.Decode(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, productID); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outboxdomain.EventProductDeleted, productID, "", nil)
	})
}

// recordUpdate emits one update event per changed field, each carrying the
// full post-mutation snapshot.
func (s *Service) recordUpdate(ctx context.Context, tx *gorm.DB, productID int64, reason string) error {
	snapshot, err := s.snapshots.BuildProduct(ctx, tx, productID)
	if err != nil {
		return err
	}
	return s.events.Record(ctx, tx, outboxdomain.EventProductUpdated, productID, reason, snapshot)
}

func (s *Service) toResponse(ctx context.Context, product *domain.Product) (*domain.Response, error) {
	variants, err := s.variants.FindByProduct(ctx, s.db, product.ID)
	if err != nil {
		return nil, err
	}

	resp := &domain.Response{
		ID:          s.codec.Encode(product.ID),
		ShopID:      s.codec.Encode(product.ShopID),
		CategoryID:  s.codec.Encode(product.CategoryID),
		Name:        product.Name,
		Description: product.Description,
		Variants:    make([]variantdomain.Response, 0, len(variants)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}

	for i := range variants {
		v := &variants[i]
		skus, err := s.variants.FindSKUsByVariant(ctx, s.db, v.ID)
		if err != nil {
			return nil, err
		}
		vr, err := s.variantResponse(v, skus)
		if err != nil {
			return nil, err
		}
		resp.Variants = append(resp.Variants, *vr)
	}
	return resp, nil
}

func (s *Service) variantResponse(v *variantdomain.ProductVariant, skus []variantdomain.SKU) (*variantdomain.Response, error) {
	doc, err := json.Marshal(v.Attributes)
	if err != nil {
		return nil, err
	}

	var images []string
	if len(v.Images) > 0 {
		if err := json.Unmarshal(v.Images, &images); err != nil {
			return nil, err
		}
	}

	vr := &variantdomain.Response{
		ID:         s.codec.Encode(v.ID),
		ProductID:  s.codec.Encode(v.ProductID),
		Price:      v.Price,
		Attributes: doc,
		Images:     images,
		SKUs:       make([]variantdomain.SKUResponse, 0, len(skus)),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
	for _, sku := range skus {
		vr.SKUs = append(vr.SKUs, variantdomain.SKUResponse{
			ID:                  s.codec.Encode(sku.ID),
			Code:                sku.Code,
			DistinguishingValue: json.RawMessage(sku.DistinguishingValue),
			Price:               sku.Price,
			StockCount:          sku.StockCount,
		})
	}
	return vr, nil
}
