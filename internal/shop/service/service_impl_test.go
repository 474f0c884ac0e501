package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sellerdomain "github.com/sellercentre/catalog/internal/seller/domain"
	sellerrepository "github.com/sellercentre/catalog/internal/seller/repository"
	sellerservice "github.com/sellercentre/catalog/internal/seller/service"
	"github.com/sellercentre/catalog/internal/shop/domain"
	"github.com/sellercentre/catalog/internal/shop/repository"
	"github.com/sellercentre/catalog/pkg/db"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

func newTestService(t *testing.T) (domain.Service, string) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&sellerdomain.Seller{}, &domain.Shop{}))

	node, err := snowflake.NewNode(6)
	require.NoError(t, err)
	codec := idcodec.New(0xbeef)
	log := zap.NewNop()

	sellerRepo := sellerrepository.Provide()
	sellerSvc := sellerservice.New(sellerservice.Params{
		DB:    dbConn,
		Log:   log,
		GenID: node,
		Codec: codec,
		Repo:  sellerRepo,
	})

	seller, err := sellerSvc.Create(context.Background(), sellerdomain.CreateRequest{
		Name:  "Iris",
		Email: "iris@example.com",
	})
	require.NoError(t, err)

	svc := New(Params{
		DB:      dbConn,
		Log:     log,
		GenID:   node,
		Codec:   codec,
		Repo:    repository.Provide(),
		Sellers: sellerRepo,
	})
	return svc, seller.ID
}

func TestCreateShopSlug(t *testing.T) {
	svc, sellerID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		SellerID: sellerID,
		Name:     "Iris & Co. Vintage",
	})
	require.NoError(t, err)
	require.Equal(t, "iris-and-co-vintage", created.Slug)

	// Same name again collides on the slug.
	_, err = svc.Create(ctx, domain.CreateRequest{
		SellerID: sellerID,
		Name:     "Iris & Co. Vintage",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestCreateShopUnknownSeller(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		SellerID: idcodec.New(0xbeef).Encode(31337),
		Name:     "Ghost Shop",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListBySellerAndDelete(t *testing.T) {
	svc, sellerID := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRequest{SellerID: sellerID, Name: "Shop One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{SellerID: sellerID, Name: "Shop Two"})
	require.NoError(t, err)

	shops, err := svc.ListBySeller(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, shops, 2)

	require.NoError(t, svc.Delete(ctx, first.ID))

	shops, err = svc.ListBySeller(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, shops, 1)
}
