package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/sellercentre/catalog/internal/attribute"
	"github.com/sellercentre/catalog/internal/cache"
	"github.com/sellercentre/catalog/internal/category"
	"github.com/sellercentre/catalog/internal/config"
	"github.com/sellercentre/catalog/internal/logger"
	"github.com/sellercentre/catalog/internal/migration"
	"github.com/sellercentre/catalog/internal/outbox"
	"github.com/sellercentre/catalog/internal/product"
	"github.com/sellercentre/catalog/internal/seller"
	"github.com/sellercentre/catalog/internal/server"
	"github.com/sellercentre/catalog/internal/shop"
	"github.com/sellercentre/catalog/internal/variant"
	"github.com/sellercentre/catalog/pkg/db"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		fx.Provide(RegisterIDCodec),
		db.Module,
		cache.Module,
		migration.Module,

		attribute.Module,
		category.Module,
		seller.Module,
		shop.Module,
		outbox.Module,
		variant.Module,
		product.Module,

		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func RegisterIDCodec(cfg config.Config) *idcodec.Codec {
	return idcodec.New(cfg.IDCodecKey)
}
