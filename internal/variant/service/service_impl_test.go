package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	attributerepository "github.com/sellercentre/catalog/internal/attribute/repository"
	attributeservice "github.com/sellercentre/catalog/internal/attribute/service"
	"github.com/sellercentre/catalog/internal/cache"
	categorydomain "github.com/sellercentre/catalog/internal/category/domain"
	categoryrepository "github.com/sellercentre/catalog/internal/category/repository"
	categoryservice "github.com/sellercentre/catalog/internal/category/service"
	"github.com/sellercentre/catalog/internal/migration"
	"github.com/sellercentre/catalog/internal/outbox"
	outboxdomain "github.com/sellercentre/catalog/internal/outbox/domain"
	productdomain "github.com/sellercentre/catalog/internal/product/domain"
	productrepository "github.com/sellercentre/catalog/internal/product/repository"
	productservice "github.com/sellercentre/catalog/internal/product/service"
	sellerdomain "github.com/sellercentre/catalog/internal/seller/domain"
	sellerrepository "github.com/sellercentre/catalog/internal/seller/repository"
	shopdomain "github.com/sellercentre/catalog/internal/shop/domain"
	shoprepository "github.com/sellercentre/catalog/internal/shop/repository"
	"github.com/sellercentre/catalog/internal/variant/domain"
	variantrepository "github.com/sellercentre/catalog/internal/variant/repository"
	"github.com/sellercentre/catalog/pkg/db"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

type harness struct {
	db       *gorm.DB
	codec    *idcodec.Codec
	variants domain.Service
	products productdomain.Service

	variantID string
	productID string
}

func newHarness(t *testing.T, variants []productdomain.VariantInput) *harness {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(dbConn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	codec := idcodec.New(0x5e11c3a7)
	log := zap.NewNop()

	attrRepo := attributerepository.Provide()
	attrSvc := attributeservice.New(attributeservice.Params{
		DB:    dbConn,
		Log:   log,
		GenID: node,
		Codec: codec,
		Repo:  attrRepo,
	})

	catRepo := categoryrepository.Provide()
	catSvc := categoryservice.New(categoryservice.Params{
		DB:        dbConn,
		Log:       log,
		GenID:     node,
		Codec:     codec,
		Cache:     cache.New(nil, "test:", time.Minute),
		Repo:      catRepo,
		Attrs:     attrSvc,
		AttrsRepo: attrRepo,
	})

	recorder := outbox.NewRecorder(log, node)
	snapshots := outbox.NewSnapshotBuilder(outbox.SnapshotParams{
		Codec:      codec,
		Categories: catSvc,
	})

	variantRepo := variantrepository.Provide()
	store := variantrepository.ProvideRewriteStore(variantRepo)
	variantSvc := New(Params{
		DB:        dbConn,
		Log:       log,
		GenID:     node,
		Codec:     codec,
		Repo:      variantRepo,
		Store:     store,
		Attrs:     attrSvc,
		Events:    recorder,
		Snapshots: snapshots,
	})

	sellerRepo := sellerrepository.Provide()
	shopRepo := shoprepository.Provide()
	productSvc := productservice.New(productservice.Params{
		DB:         dbConn,
		Log:        log,
		GenID:      node,
		Codec:      codec,
		Repo:       productrepository.Provide(),
		Variants:   variantRepo,
		Shops:      shopRepo,
		Categories: catRepo,
		Attrs:      attrSvc,
		Events:     recorder,
		Snapshots:  snapshots,
	})

	ctx := context.Background()

	seller := &sellerdomain.Seller{ID: node.Generate().Int64(), Name: "Ada", Email: "ada@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, sellerRepo.Create(ctx, dbConn, seller))
	shop := &shopdomain.Shop{ID: node.Generate().Int64(), SellerID: seller.ID, Name: "Ada Outfitters", Slug: "ada-outfitters", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, shopRepo.Create(ctx, dbConn, shop))

	root, err := catSvc.Create(ctx, categorydomain.CreateRequest{Name: "apparel"})
	require.NoError(t, err)
	leaf, err := catSvc.Create(ctx, categorydomain.CreateRequest{Name: "shirts", ParentID: &root.ID})
	require.NoError(t, err)

	product, err := productSvc.Create(ctx, productdomain.CreateRequest{
		ShopID:     codec.Encode(shop.ID),
		CategoryID: leaf.ID,
		Name:       "Oxford Shirt",
		Variants:   variants,
	})
	require.NoError(t, err)
	require.Len(t, product.Variants, len(variants))

	h := &harness{
		db:        dbConn,
		codec:     codec,
		variants:  variantSvc,
		products:  productSvc,
		productID: product.ID,
	}
	if len(product.Variants) > 0 {
		h.variantID = product.Variants[0].ID
	}
	return h
}

func (h *harness) events(t *testing.T, eventType string) []outboxdomain.Event {
	t.Helper()
	var events []outboxdomain.Event
	err := h.db.Raw(
		`SELECT id, event_type, entity_id, reason, payload, created_at
		 FROM outbox_events WHERE event_type = ? ORDER BY id ASC`,
		eventType,
	).Scan(&events).Error
	require.NoError(t, err)
	return events
}

func numInput(v float64, localized, unit string) attributedomain.ValueInput {
	return attributedomain.ValueInput{Kind: attributedomain.NumericType, NumericValue: &v, LocalizedValue: localized, Unit: unit}
}

func colorVariant() []productdomain.VariantInput {
	return []productdomain.VariantInput{{
		Price: 49.90,
		Attributes: []attributedomain.AttributeInput{{
			Kind:      attributedomain.KindPlain,
			Name:      "color",
			ShortName: "col",
			IsFaceted: true,
			ValueType: attributedomain.ColorType,
			Values: []attributedomain.ValueInput{
				{Kind: attributedomain.ColorType, Name: "navy", Hex: "#000080"},
			},
		}},
		SKUs: []productdomain.SKUInput{{Price: 49.90, StockCount: 12}},
	}}
}

func dimensionsVariant() []productdomain.VariantInput {
	return []productdomain.VariantInput{{
		Price: 29.90,
		Attributes: []attributedomain.AttributeInput{{
			Kind:      attributedomain.KindComposite,
			Name:      "clothes dimensions",
			ShortName: "dims",
			SubAttributes: []attributedomain.SubAttributeInput{
				{
					Name:      "width",
					ShortName: "w",
					ValueType: attributedomain.NumericType,
					Values:    []attributedomain.ValueInput{numInput(10, "10mm", "mm"), numInput(20, "20mm", "mm")},
				},
				{
					Name:      "length",
					ShortName: "l",
					ValueType: attributedomain.NumericType,
					Values:    []attributedomain.ValueInput{numInput(70, "70mm", "mm")},
				},
			},
		}},
	}}
}

func TestAddColorValueRecordsOutboxEvent(t *testing.T) {
	h := newHarness(t, colorVariant())

	resp, err := h.variants.AddAttributeValue(context.Background(), domain.ValueRequest{
		VariantID:     h.variantID,
		AttributeName: "color",
		Value:         attributedomain.ValueInput{Kind: attributedomain.ColorType, Name: "bone", Hex: "#e3dac9"},
	})
	require.NoError(t, err)

	var doc struct {
		Attributes []struct {
			AttributeName   string            `json:"attributeName"`
			AvailableValues []json.RawMessage `json:"availableValues"`
		} `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(resp.Attributes, &doc))
	require.Len(t, doc.Attributes, 1)
	require.Len(t, doc.Attributes[0].AvailableValues, 2)

	events := h.events(t, outboxdomain.EventVariantUpdated)
	require.Len(t, events, 1)
	require.Equal(t, outboxdomain.ReasonAttributes, events[0].Reason)

	var snapshot outboxdomain.ProductSnapshot
	require.NoError(t, json.Unmarshal(events[0].Payload, &snapshot))
	require.Equal(t, "Ada Outfitters", snapshot.ShopName)
	require.Equal(t, "apparel.shirts", snapshot.CategoryPath)
	require.Equal(t, h.productID, snapshot.ProductID)
	require.Len(t, snapshot.Variants, 1)
	require.JSONEq(t, string(resp.Attributes), string(snapshot.Variants[0].Attributes))
}

func TestRemoveCompositeWidthValue(t *testing.T) {
	h := newHarness(t, dimensionsVariant())

	resp, err := h.variants.RemoveAttributeValue(context.Background(), domain.ValueRequest{
		VariantID:        h.variantID,
		AttributeName:    "clothes dimensions",
		SubAttributeName: "width",
		Value:            numInput(10, "10mm", "mm"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Removed)
	require.True(t, *resp.Removed)

	coll := attributedomain.Collection{}
	require.NoError(t, json.Unmarshal(resp.Attributes, &coll))
	attr, ok := coll.Find("clothes dimensions")
	require.True(t, ok)
	width := attr.(*attributedomain.CompositeAttribute).Sub("width")
	require.NotNil(t, width)
	require.Len(t, width.AvailableValues, 1)
	require.Equal(t, attributedomain.NumericValue{Value: 20, LocalizedValue: "20mm", Unit: "mm"}, width.AvailableValues[0])

	// Removing the same value again is a no-op and records no event.
	resp, err = h.variants.RemoveAttributeValue(context.Background(), domain.ValueRequest{
		VariantID:        h.variantID,
		AttributeName:    "clothes dimensions",
		SubAttributeName: "width",
		Value:            numInput(10, "10mm", "mm"),
	})
	require.NoError(t, err)
	require.False(t, *resp.Removed)
	require.Len(t, h.events(t, outboxdomain.EventVariantUpdated), 1)
}

func TestAddDuplicateValueAppendsButMaterializesOnce(t *testing.T) {
	h := newHarness(t, colorVariant())

	for i := 0; i < 2; i++ {
		_, err := h.variants.AddAttributeValue(context.Background(), domain.ValueRequest{
			VariantID:     h.variantID,
			AttributeName: "color",
			Value:         attributedomain.ValueInput{Kind: attributedomain.ColorType, Name: "navy", Hex: "#000080"},
		})
		require.NoError(t, err)
	}

	resp, err := h.variants.Get(context.Background(), h.variantID)
	require.NoError(t, err)

	coll := attributedomain.Collection{}
	require.NoError(t, json.Unmarshal(resp.Attributes, &coll))
	attr, _ := coll.Find("color")
	require.Len(t, attr.(*attributedomain.PlainAttribute).AvailableValues, 3)

	// Structural duplicates share one stored leaf value.
	var count int64
	require.NoError(t, h.db.Raw(
		`SELECT COUNT(*) FROM attribute_values WHERE natural_key = ?`, "color:#000080",
	).Scan(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAddValueTypeMismatch(t *testing.T) {
	h := newHarness(t, colorVariant())

	_, err := h.variants.AddAttributeValue(context.Background(), domain.ValueRequest{
		VariantID:     h.variantID,
		AttributeName: "color",
		Value:         attributedomain.ValueInput{Kind: attributedomain.StringType, Value: "navy"},
	})
	require.ErrorIs(t, err, attributedomain.ErrTypeMismatch)

	var mismatch *attributedomain.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, attributedomain.ColorType, mismatch.Expected)
	require.Equal(t, attributedomain.StringType, mismatch.Actual)

	require.Empty(t, h.events(t, outboxdomain.EventVariantUpdated))
}

func TestAddValueMissingAttribute(t *testing.T) {
	h := newHarness(t, colorVariant())

	_, err := h.variants.AddAttributeValue(context.Background(), domain.ValueRequest{
		VariantID:     h.variantID,
		AttributeName: "fabric",
		Value:         attributedomain.ValueInput{Kind: attributedomain.StringType, Value: "linen"},
	})
	require.ErrorIs(t, err, attributedomain.ErrNotFound)
}

func TestAddAndRemoveAttribute(t *testing.T) {
	h := newHarness(t, colorVariant())

	_, err := h.variants.AddAttribute(context.Background(), domain.AddAttributeRequest{
		VariantID: h.variantID,
		Attribute: attributedomain.AttributeInput{
			Kind:      attributedomain.KindPlain,
			Name:      "fabric",
			ShortName: "fab",
			ValueType: attributedomain.StringType,
			Values:    []attributedomain.ValueInput{{Kind: attributedomain.StringType, Value: "linen"}},
		},
	})
	require.NoError(t, err)

	// Adding an attribute that already exists is rejected.
	_, err = h.variants.AddAttribute(context.Background(), domain.AddAttributeRequest{
		VariantID: h.variantID,
		Attribute: attributedomain.AttributeInput{
			Kind:      attributedomain.KindPlain,
			Name:      "fabric",
			ShortName: "fab",
			ValueType: attributedomain.StringType,
		},
	})
	require.ErrorIs(t, err, attributedomain.ErrInvalidOperation)

	resp, err := h.variants.RemoveAttribute(context.Background(), domain.RemoveAttributeRequest{
		VariantID:     h.variantID,
		AttributeName: "fabric",
	})
	require.NoError(t, err)
	require.True(t, *resp.Removed)

	resp, err = h.variants.RemoveAttribute(context.Background(), domain.RemoveAttributeRequest{
		VariantID:     h.variantID,
		AttributeName: "fabric",
	})
	require.NoError(t, err)
	require.False(t, *resp.Removed)

	require.Len(t, h.events(t, outboxdomain.EventVariantUpdated), 2)
}

func TestUpdateSKU(t *testing.T) {
	h := newHarness(t, colorVariant())

	got, err := h.variants.Get(context.Background(), h.variantID)
	require.NoError(t, err)
	require.Len(t, got.SKUs, 1)
	skuID := got.SKUs[0].ID

	resp, err := h.variants.UpdateSKUStock(context.Background(), domain.SKUStockRequest{
		VariantID:  h.variantID,
		SKUID:      skuID,
		StockCount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, 5, resp.SKUs[0].StockCount)

	resp, err = h.variants.UpdateSKUPrice(context.Background(), domain.SKUPriceRequest{
		VariantID: h.variantID,
		SKUID:     skuID,
		Price:     39.90,
	})
	require.NoError(t, err)
	require.Equal(t, 39.90, resp.SKUs[0].Price)

	events := h.events(t, outboxdomain.EventVariantUpdated)
	require.Len(t, events, 2)
	require.Equal(t, outboxdomain.ReasonSKUStock, events[0].Reason)
	require.Equal(t, outboxdomain.ReasonSKUPrice, events[1].Reason)

	// A SKU id from another variant is not reachable through this one.
	_, err = h.variants.UpdateSKUStock(context.Background(), domain.SKUStockRequest{
		VariantID:  h.variantID,
		SKUID:      h.codec.Encode(999999),
		StockCount: 1,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePriceAndImages(t *testing.T) {
	h := newHarness(t, colorVariant())

	resp, err := h.variants.UpdatePrice(context.Background(), domain.PriceRequest{
		VariantID: h.variantID,
		Price:     59.90,
	})
	require.NoError(t, err)
	require.Equal(t, 59.90, resp.Price)

	resp, err = h.variants.UpdateImages(context.Background(), domain.ImagesRequest{
		VariantID: h.variantID,
		Images:    []string{"https://img.example.com/front.jpg", "https://img.example.com/back.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Images, 2)

	events := h.events(t, outboxdomain.EventVariantUpdated)
	require.Len(t, events, 2)
	require.Equal(t, outboxdomain.ReasonPrice, events[0].Reason)
	require.Equal(t, outboxdomain.ReasonPhotos, events[1].Reason)
}

func TestDeleteVariant(t *testing.T) {
	h := newHarness(t, colorVariant())

	require.NoError(t, h.variants.Delete(context.Background(), h.variantID))

	_, err := h.variants.Get(context.Background(), h.variantID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var skuCount int64
	require.NoError(t, h.db.Raw(`SELECT COUNT(*) FROM skus`).Scan(&skuCount).Error)
	require.Zero(t, skuCount)

	events := h.events(t, outboxdomain.EventVariantDeleted)
	require.Len(t, events, 1)
	require.Empty(t, events[0].Payload)
}

func TestMutationsOnMissingVariant(t *testing.T) {
	h := newHarness(t, colorVariant())
	missing := h.codec.Encode(424242)

	_, err := h.variants.AddAttributeValue(context.Background(), domain.ValueRequest{
		VariantID:     missing,
		AttributeName: "color",
		Value:         attributedomain.ValueInput{Kind: attributedomain.ColorType, Name: "red", Hex: "#ff0000"},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.variants.Get(context.Background(), "not-a-token")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}
