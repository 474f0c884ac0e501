package attribute

import (
	"github.com/sellercentre/catalog/internal/attribute/repository"
	"github.com/sellercentre/catalog/internal/attribute/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attribute.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
