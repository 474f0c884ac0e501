package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	categorydomain "github.com/sellercentre/catalog/internal/category/domain"
	"github.com/sellercentre/catalog/internal/config"
	productdomain "github.com/sellercentre/catalog/internal/product/domain"
	sellerdomain "github.com/sellercentre/catalog/internal/seller/domain"
	shopdomain "github.com/sellercentre/catalog/internal/shop/domain"
	variantdomain "github.com/sellercentre/catalog/internal/variant/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	sellerSvc   sellerdomain.Service
	shopSvc     shopdomain.Service
	categorySvc categorydomain.Service
	attrSvc     attributedomain.Service
	productSvc  productdomain.Service
	variantSvc  variantdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	SellerSvc   sellerdomain.Service
	ShopSvc     shopdomain.Service
	CategorySvc categorydomain.Service
	AttrSvc     attributedomain.Service
	ProductSvc  productdomain.Service
	VariantSvc  variantdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		sellerSvc:   p.SellerSvc,
		shopSvc:     p.ShopSvc,
		categorySvc: p.CategorySvc,
		attrSvc:     p.AttrSvc,
		productSvc:  p.ProductSvc,
		variantSvc:  p.VariantSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/sellers", s.CreateSeller)
	v1.GET("/sellers", s.ListSellers)
	v1.GET("/sellers/:id", s.GetSeller)
	v1.DELETE("/sellers/:id", s.DeleteSeller)
	v1.GET("/sellers/:id/shops", s.ListSellerShops)

	v1.POST("/shops", s.CreateShop)
	v1.GET("/shops/:id", s.GetShop)
	v1.DELETE("/shops/:id", s.DeleteShop)
	v1.GET("/shops/:id/products", s.ListShopProducts)

	v1.POST("/categories", s.CreateCategory)
	v1.GET("/categories", s.ListCategories)
	v1.GET("/categories/:id", s.GetCategory)

	v1.POST("/attributes", s.CreateAttributeDefinition)
	v1.GET("/attributes", s.ListAttributeDefinitions)
	v1.GET("/attributes/:id", s.GetAttributeDefinition)

	v1.POST("/products", s.CreateProduct)
	v1.GET("/products/:id", s.GetProduct)
	v1.PATCH("/products/:id", s.UpdateProduct)
	v1.DELETE("/products/:id", s.DeleteProduct)

	v1.GET("/variants/:id", s.GetVariant)
	v1.DELETE("/variants/:id", s.DeleteVariant)
	v1.PUT("/variants/:id/price", s.UpdateVariantPrice)
	v1.PUT("/variants/:id/images", s.UpdateVariantImages)
	v1.POST("/variants/:id/attributes", s.AddVariantAttribute)
	v1.DELETE("/variants/:id/attributes/:name", s.RemoveVariantAttribute)
	v1.POST("/variants/:id/attributes/:name/values", s.AddVariantAttributeValue)
	v1.DELETE("/variants/:id/attributes/:name/values", s.RemoveVariantAttributeValue)
	v1.PUT("/variants/:id/skus/:skuId/stock", s.UpdateSKUStock)
	v1.PUT("/variants/:id/skus/:skuId/price", s.UpdateSKUPrice)
}
