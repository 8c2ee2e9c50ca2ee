package provider

import (
	"time"

	"github.com/tripcart/internal/cache"
	"github.com/tripcart/internal/catalog"
	"github.com/tripcart/internal/config"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/models"
	"github.com/tripcart/internal/queue"
	"github.com/tripcart/internal/repository"
	"github.com/tripcart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StateRepo           repository.StateRepository
	CatalogSnapshotRepo repository.CatalogSnapshotRepository

	// Services
	CatalogService  *service.CatalogService
	ShoppingService *service.ShoppingService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	c.StateRepo = repository.NewStateRepository(models.DB)
	c.CatalogSnapshotRepo = repository.NewCatalogSnapshotRepository(models.DB)
}

func (c *Container) initServices() {
	cfg := c.Config
	source, err := catalog.NewSource(cfg.Catalog)
	if err != nil {
		logger.Errorw("provider_init_catalog_source_failed", "source", cfg.Catalog.Source, "error", err)
	}
	var hot service.CatalogHotCache
	if cache.Enabled() {
		hot = cache.CatalogCache{TTL: cfg.Catalog.CacheTTL()}
	}
	c.CatalogService = service.NewCatalogService(source, c.CatalogSnapshotRepo, hot)
	c.ShoppingService = service.NewShoppingService(c.StateRepo, c.CatalogService, service.ShoppingServiceOptions{
		Retry: service.SaveRetryPolicy{
			MaxRetries:      cfg.State.SaveMaxRetries,
			InitialInterval: time.Duration(cfg.State.SaveInitialIntervalMS) * time.Millisecond,
			MaxElapsedTime:  time.Duration(cfg.State.SaveMaxElapsedMS) * time.Millisecond,
		},
	})
}
