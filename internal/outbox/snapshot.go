package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	categorydomain "github.com/sellercentre/catalog/internal/category/domain"
	"github.com/sellercentre/catalog/internal/outbox/domain"
	"github.com/sellercentre/catalog/pkg/idcodec"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// SnapshotBuilder denormalizes a product into its event payload. It always
// reads inside the mutation's transaction, so the snapshot reflects the
// post-mutation state and never stale data.
type SnapshotBuilder struct {
	codec      *idcodec.Codec
	categories categorydomain.Service
}

type SnapshotParams struct {
	fx.In

	Codec      *idcodec.Codec
	Categories categorydomain.Service
}

func NewSnapshotBuilder(p SnapshotParams) *SnapshotBuilder {
	return &SnapshotBuilder{
		codec:      p.Codec,
		categories: p.Categories,
	}
}

type productRow struct {
	ID          int64
	ShopID      int64
	CategoryID  int64
	Name        string
	Description string
}

type variantRow struct {
	ID         int64
	ProductID  int64
	Price      float64
	Attributes []byte
	Images     []byte
}

type skuRow struct {
	ID                  int64
	VariantID           int64
	Code                string
	DistinguishingValue []byte
	Price               float64
	StockCount          int
}

// BuildProduct assembles the denormalized snapshot of one product and all of
// its variants.
func (b *SnapshotBuilder) BuildProduct(ctx context.Context, tx *gorm.DB, productID int64) (*domain.ProductSnapshot, error) {
	var product productRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, shop_id, category_id, name, description FROM products WHERE id = ?`,
		productID,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, fmt.Errorf("product %d not found for snapshot", productID)
	}

	var shopName string
	err = tx.WithContext(ctx).Raw(`SELECT name FROM shops WHERE id = ?`, product.ShopID).Scan(&shopName).Error
	if err != nil {
		return nil, err
	}

	categoryPath, err := b.categories.Path(ctx, tx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	var variants []variantRow
	err = tx.WithContext(ctx).Raw(
		`SELECT id, product_id, price, attributes, images
		 FROM product_variants WHERE product_id = ? ORDER BY created_at ASC`,
		productID,
	).Scan(&variants).Error
	if err != nil {
		return nil, err
	}

	snapshot := &domain.ProductSnapshot{
		ProductID:    b.codec.Encode(product.ID),
		ShopName:     shopName,
		CategoryPath: categoryPath,
		Name:         product.Name,
		Description:  product.Description,
		Variants:     make([]domain.VariantSnapshot, 0, len(variants)),
	}

	for _, v := range variants {
		vs, err := b.buildVariant(ctx, tx, v)
		if err != nil {
			return nil, err
		}
		snapshot.Variants = append(snapshot.Variants, *vs)
	}

	return snapshot, nil
}

func (b *SnapshotBuilder) buildVariant(ctx context.Context, tx *gorm.DB, v variantRow) (*domain.VariantSnapshot, error) {
	var skus []skuRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, variant_id, code, distinguishing_value, price, stock_count
		 FROM skus WHERE variant_id = ? ORDER BY created_at ASC`,
		v.ID,
	).Scan(&skus).Error
	if err != nil {
		return nil, err
	}

	var images []string
	if len(v.Images) > 0 {
		if err := json.Unmarshal(v.Images, &images); err != nil {
			return nil, err
		}
	}

	vs := &domain.VariantSnapshot{
		VariantID:  b.codec.Encode(v.ID),
		Price:      v.Price,
		Attributes: json.RawMessage(v.Attributes),
		Images:     images,
		SKUs:       make([]domain.SKUSnapshot, 0, len(skus)),
	}

	for _, s := range skus {
		vs.SKUs = append(vs.SKUs, domain.SKUSnapshot{
			SKUID:               b.codec.Encode(s.ID),
			Code:                s.Code,
			DistinguishingValue: json.RawMessage(s.DistinguishingValue),
			Price:               s.Price,
			StockCount:          s.StockCount,
		})
	}

	return vs, nil
}
