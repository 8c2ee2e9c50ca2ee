package app

import (
	"context"
	"errors"

	"github.com/tripcart/internal/config"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/provider"
	"github.com/tripcart/internal/queue"
	"github.com/tripcart/internal/router"
	"github.com/tripcart/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)
	return buildRunner(cfg, mode, container)
}

func buildRunner(cfg *config.Config, mode string, container *provider.Container) (*Runner, error) {
	if container == nil {
		return nil, errors.New("container is nil")
	}
	queueEnabled := container.QueueClient != nil && container.QueueClient.Enabled()

	// 启动时加载商品目录（来源 -> 热缓存 -> 快照 -> 空目录）
	if mode == ModeAll || mode == ModeAPI {
		container.CatalogService.Load(context.Background())
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 服务
	if mode == ModeWorker || (mode == ModeAll && queueEnabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll {
		logger.Infow("app_worker_skipped", "reason", "queue disabled")
	}

	// 定时刷新：队列可用时由 worker 侧入队，否则在 API 进程内直接刷新
	if interval := cfg.Catalog.RefreshInterval(); interval > 0 {
		switch {
		case queueEnabled && (mode == ModeAll || mode == ModeWorker):
			services = append(services, worker.NewRefreshLoop(interval, func(ctx context.Context) error {
				return container.QueueClient.EnqueueCatalogRefresh(queue.CatalogRefreshPayload{
					Reason: queue.RefreshReasonSchedule,
				})
			}))
		case !queueEnabled && (mode == ModeAll || mode == ModeAPI):
			services = append(services, worker.NewRefreshLoop(interval, container.CatalogService.Refresh))
		}
	}

	// 独立 API 进程：刷新由其他进程的 worker 执行，定期从热缓存/快照同步结果
	if mode == ModeAPI && queueEnabled {
		services = append(services, worker.NewRefreshLoop(cfg.Catalog.ReloadInterval(), container.CatalogService.Reload).WithName("catalog_reload"))
	}

	// 如果没有服务被启动（例如模式错误或配置导致都没起），应该报错或至少打日志
	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
