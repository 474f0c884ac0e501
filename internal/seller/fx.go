package seller

import (
	"github.com/sellercentre/catalog/internal/seller/repository"
	"github.com/sellercentre/catalog/internal/seller/service"
	"go.uber.org/fx"
)

var Module = fx.Module("seller.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
