package product

import (
	"github.com/sellercentre/catalog/internal/product/repository"
	"github.com/sellercentre/catalog/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
