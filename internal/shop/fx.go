package shop

import (
	"github.com/sellercentre/catalog/internal/shop/repository"
	"github.com/sellercentre/catalog/internal/shop/service"
	"go.uber.org/fx"
)

var Module = fx.Module("shop.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
