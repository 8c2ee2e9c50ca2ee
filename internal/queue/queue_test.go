package queue

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tripcart/internal/config"

	"github.com/hibiken/asynq"
)

func TestCatalogRefreshTaskPayload(t *testing.T) {
	task, err := NewCatalogRefreshTask(CatalogRefreshPayload{Reason: RefreshReasonManual})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskCatalogRefresh {
		t.Fatalf("task type want %s got %s", TaskCatalogRefresh, task.Type())
	}
	payload, err := ParseCatalogRefreshPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.Reason != RefreshReasonManual {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCatalogRefreshTasksShareUniqueKey(t *testing.T) {
	first, err := NewCatalogRefreshTask(CatalogRefreshPayload{Reason: RefreshReasonManual})
	if err != nil {
		t.Fatalf("build first task failed: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := NewCatalogRefreshTask(CatalogRefreshPayload{Reason: RefreshReasonManual})
	if err != nil {
		t.Fatalf("build second task failed: %v", err)
	}
	if first.Type() != second.Type() || !bytes.Equal(first.Payload(), second.Payload()) {
		t.Fatalf("repeated refresh requests must encode identically, got %s vs %s", first.Payload(), second.Payload())
	}
}

func TestIsAlreadyQueued(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{err: asynq.ErrDuplicateTask, want: true},
		{err: fmt.Errorf("enqueue: %w", asynq.ErrDuplicateTask), want: true},
		{err: asynq.ErrTaskIDConflict, want: true},
		{err: errors.New("dial tcp: connection refused"), want: false},
		{err: nil, want: false},
	}
	for _, tc := range cases {
		if got := IsAlreadyQueued(tc.err); got != tc.want {
			t.Fatalf("IsAlreadyQueued(%v) want %v got %v", tc.err, tc.want, got)
		}
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueCatalogRefresh(CatalogRefreshPayload{Reason: RefreshReasonManual}); err != nil {
		t.Fatalf("enqueue on disabled client should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Concurrency: 4})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 4 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}

	opt, cfg = BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" || cfg.Concurrency != 2 {
		t.Fatalf("unexpected default config: addr=%s concurrency=%d", opt.Addr, cfg.Concurrency)
	}
}
