package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tripcart/internal/logger"
)

// RefreshFunc 触发一次目录刷新（入队或直接刷新）
type RefreshFunc func(ctx context.Context) error

// RefreshLoop 定时刷新商品目录
type RefreshLoop struct {
	name     string
	interval time.Duration
	trigger  RefreshFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefreshLoop 创建定时刷新服务
func NewRefreshLoop(interval time.Duration, trigger RefreshFunc) *RefreshLoop {
	return &RefreshLoop{name: "catalog_refresh", interval: interval, trigger: trigger}
}

// WithName 覆盖服务名称
func (l *RefreshLoop) WithName(name string) *RefreshLoop {
	l.name = name
	return l
}

// Name 服务名称
func (l *RefreshLoop) Name() string {
	return l.name
}

// Start 启动循环，阻塞至 ctx 结束或 Stop 被调用
func (l *RefreshLoop) Start(ctx context.Context) error {
	if l == nil || l.trigger == nil || l.interval <= 0 {
		return errors.New("refresh loop not initialized")
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.mu.Lock()
	l.cancel = cancel
	l.done = done
	l.mu.Unlock()
	defer close(done)
	defer cancel()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.trigger(ctx); err != nil {
				logger.Warnw("worker_catalog_refresh_trigger_failed", "loop", l.name, "error", err)
			}
		}
	}
}

// Stop 停止循环并等待退出
func (l *RefreshLoop) Stop(ctx context.Context) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
