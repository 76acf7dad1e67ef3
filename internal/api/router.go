package api

import (
	"context"
	"net/http"
	"time"

	"recipe-curator/internal/api/handlers/health"
	pricingHandler "recipe-curator/internal/api/handlers/pricing"
	recipesHandler "recipe-curator/internal/api/handlers/recipes"
	"recipe-curator/internal/api/middleware"
	"recipe-curator/internal/core/ingredient"
	"recipe-curator/internal/core/recipe"
	"recipe-curator/internal/core/selection"
	"recipe-curator/internal/infrastructure/cache"
	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/infrastructure/storage"
	"recipe-curator/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置：批次標註會掃整個資料集，留寬一點
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store storage.Store, priceCache cache.PriceCache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		router.Use(middleware.Deduplication(cfg))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Int("annotate_workers", cfg.Annotate.Workers),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化核心服務
	estimator := ingredient.NewEstimator(ingredient.DefaultCatalog())
	annotator := recipe.NewAnnotator(estimator, priceCache, cfg.Annotate.Workers)
	curator := recipe.NewCurator(cfg.Curation)
	notifier := selection.NewNotifier(cfg.Selection)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置與快取（健康檢查用）
		c.Set("config", cfg)
		if priceCache != nil {
			c.Set("price_cache", priceCache)
		}

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		pricing := pricingHandler.NewHandler(estimator)
		pipeline := recipesHandler.NewHandler(store, annotator, curator, notifier, cfg.Selection)

		// 估價（純計算，不落檔）
		pricingGroup := api.Group("/pricing")
		{
			pricingGroup.POST("/estimate", pricing.HandleEstimateLine)
			pricingGroup.POST("/recipe", pricing.HandlePriceRecipe)
		}

		// 食譜管線：標註 → 精選 → 選餐
		recipesGroup := api.Group("/recipes")
		{
			recipesGroup.POST("/annotate", pipeline.HandleAnnotate)
			recipesGroup.POST("/curate", pipeline.HandleCurate)
			recipesGroup.POST("/pick", pipeline.HandlePick)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("cache_initialized", priceCache != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
