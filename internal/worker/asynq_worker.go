package worker

import (
	"context"
	"errors"

	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/provider"
	"github.com/tripcart/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCatalogRefresh, c.handleCatalogRefresh)
}

func (c *Consumer) handleCatalogRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_catalog_refresh_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCatalogRefreshPayload(task)
	if err != nil {
		logger.Warnw("worker_catalog_refresh_unmarshal_failed", "error", err)
		return err
	}
	if c.Container == nil || c.CatalogService == nil {
		logger.Warnw("worker_catalog_refresh_skip_service_nil", "reason", payload.Reason)
		return nil
	}
	if err := c.CatalogService.Refresh(ctx); err != nil {
		logger.Warnw("worker_catalog_refresh_failed",
			"reason", payload.Reason,
			"task_id", taskID(ctx),
			"error", err,
		)
		return err
	}
	logger.Infow("worker_catalog_refreshed",
		"reason", payload.Reason,
		"task_id", taskID(ctx),
		"products", c.CatalogService.Current().Len(),
	)
	return nil
}

var errWorkerNotInitialized = errors.New("worker not initialized")

func taskID(ctx context.Context) string {
	id, _ := asynq.GetTaskID(ctx)
	return id
}
