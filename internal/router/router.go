package router

import (
	"fmt"
	"strings"

	"github.com/tripcart/internal/cache"
	"github.com/tripcart/internal/config"
	publichandlers "github.com/tripcart/internal/http/handlers/public"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tc"
	}
	refreshRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:catalog_refresh", redisPrefix),
		WindowSeconds: cfg.Security.RefreshRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RefreshRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 商品目录
		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("", handler.GetCatalog)
			catalog.GET("/products", handler.SearchProducts)
			catalog.GET("/products/:id", handler.GetProduct)
			catalog.POST("/refresh", RateLimitMiddleware(cache.Client(), refreshRule, KeyByIP), handler.RefreshCatalog)
		}

		// 购物者接口（按 X-Shopper-ID 区分）
		shopper := apiV1.Group("")
		shopper.Use(ShopperMiddleware())
		{
			shopper.GET("/trip", handler.GetTrip)
			shopper.POST("/trip/start", handler.StartTrip)
			shopper.POST("/trip/end", handler.EndTrip)
			shopper.GET("/cart", handler.GetCart)
			shopper.PUT("/cart/items", handler.UpsertCartItem)
			shopper.POST("/cart/items/:product_id/adjust", handler.AdjustCartItem)
			shopper.DELETE("/cart/items/:product_id", handler.DeleteCartItem)
			shopper.GET("/history", handler.ListHistory)
			shopper.GET("/history/stats", handler.GetHistoryStats)
			shopper.GET("/history/:id", handler.GetHistoryRecord)
			shopper.DELETE("/history/:id", handler.DeleteHistoryRecord)
		}

		// 射门小游戏
		apiV1.POST("/shootout/shots", handler.TakeShot)
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		products := 0
		if handler.CatalogService != nil {
			products = handler.CatalogService.Current().Len()
		}
		ctx.JSON(200, gin.H{"status": "ok", "products": products})
	})

	return r
}
