package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	categorydomain "github.com/sellercentre/catalog/internal/category/domain"
	outboxdomain "github.com/sellercentre/catalog/internal/outbox/domain"
	productdomain "github.com/sellercentre/catalog/internal/product/domain"
	sellerdomain "github.com/sellercentre/catalog/internal/seller/domain"
	shopdomain "github.com/sellercentre/catalog/internal/shop/domain"
	variantdomain "github.com/sellercentre/catalog/internal/variant/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		// Versioned SQL migrations target postgres; other dialects get the
		// schema straight from the models.
		if conn.Dialector.Name() != "postgres" {
			return AutoMigrate(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)

// AutoMigrate creates the schema from the gorm models. Used for sqlite and
// mysql development databases and for tests.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&sellerdomain.Seller{},
		&shopdomain.Shop{},
		&categorydomain.Category{},
		&categorydomain.CategoryAttribute{},
		&attributedomain.Definition{},
		&attributedomain.Value{},
		&productdomain.Product{},
		&variantdomain.ProductVariant{},
		&variantdomain.SKU{},
		&outboxdomain.Event{},
	)
}
