// Package http wires the HTTP surface: repositories, use cases, handlers and
// routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	productusecases "stocktake/internal/application/product/usecases"
	stockusecases "stocktake/internal/application/stock/usecases"
	"stocktake/internal/domain/stock"
	"stocktake/internal/infrastructure/cache"
	"stocktake/internal/infrastructure/config"
	"stocktake/internal/infrastructure/ecount"
	"stocktake/internal/infrastructure/repository"
	"stocktake/internal/interfaces/http/handlers"
	"stocktake/internal/interfaces/http/middleware"
	"stocktake/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	stockHandler   *handlers.StockHandler
	productHandler *handlers.ProductHandler
}

// NewRouter builds the fully wired router.
func NewRouter(cfg *config.Config, db *gorm.DB, log logger.Interface) *Router {
	gin.SetMode(ginMode(cfg.Server.Mode))

	cacheRepo := newCacheRepository(cfg, db, log)

	zones := ecount.NewZoneResolver(cfg.Ecount, log.With("component", "ecount.zone"))
	client := ecount.NewClient(cfg.Ecount, zones, log.With("component", "ecount.client"))
	sessions := ecount.NewSessionManager(client, cacheRepo, cfg.Ecount, log.With("component", "ecount.session"))

	getStockBalance := stockusecases.NewGetStockBalanceUseCase(
		sessions, client, cacheRepo, cfg.Ecount, log.With("component", "usecase.stock"))

	productRepo := repository.NewGormProductRepository(db)
	productLog := log.With("component", "usecase.product")

	router := &Router{
		engine: gin.New(),
		stockHandler: handlers.NewStockHandler(
			getStockBalance, log.With("component", "handler.stock")),
		productHandler: handlers.NewProductHandler(
			productusecases.NewListProductsUseCase(productRepo, productLog),
			productusecases.NewUpdateQuantityUseCase(productRepo, productLog),
			productusecases.NewCountingStatsUseCase(productRepo, productLog),
			log.With("component", "handler.product"),
		),
	}

	router.engine.Use(
		middleware.Recovery(),
		middleware.Logger(log),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)
	router.setupRoutes()
	return router
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		api.POST("/ecount", r.stockHandler.GetStockBalance)

		products := api.Group("/products")
		{
			products.GET("", r.productHandler.ListProducts)
			products.GET("/stats", r.productHandler.CountingStats)
			products.PATCH("/:code/quantity", r.productHandler.UpdateQuantity)
		}
	}
}

// Engine exposes the underlying gin engine for serving and tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// newCacheRepository selects the shared cache backend. The database row is
// the default; Redis is for multi-instance deployments.
func newCacheRepository(cfg *config.Config, db *gorm.DB, log logger.Interface) stock.CacheRepository {
	if cfg.Cache.Driver == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Infow("using redis cache backend", "addr", cfg.Redis.GetAddr())
		return cache.NewRedisCacheRepository(client)
	}
	return repository.NewGormSessionCacheRepository(db)
}

func ginMode(mode string) string {
	switch mode {
	case "production", "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
