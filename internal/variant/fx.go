package variant

import (
	"fmt"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/sellercentre/catalog/internal/config"
	"github.com/sellercentre/catalog/internal/variant/domain"
	"github.com/sellercentre/catalog/internal/variant/repository"
	"github.com/sellercentre/catalog/internal/variant/service"
)

var Module = fx.Module("variant.service",
	fx.Provide(repository.Provide),
	fx.Provide(ProvideStore),
	fx.Provide(service.New),
)

// ProvideStore selects the document mutation strategy. The patch store leans
// on jsonb_set and only works against postgres, so anything else fails at
// startup rather than on the first write.
func ProvideStore(cfg config.Config, db *gorm.DB, repo domain.Repository) (domain.AttributeStore, error) {
	switch cfg.MutationStrategy {
	case config.StrategyPatch:
		if name := db.Dialector.Name(); name != "postgres" {
			return nil, fmt.Errorf("mutation strategy %q requires postgres, dialect is %q", cfg.MutationStrategy, name)
		}
		return repository.ProvidePatchStore(repo), nil
	default:
		return repository.ProvideRewriteStore(repo), nil
	}
}
