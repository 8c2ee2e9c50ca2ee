package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/models"
	"github.com/tripcart/internal/provider"
	"github.com/tripcart/internal/queue"
	"github.com/tripcart/internal/service"

	"github.com/hibiken/asynq"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRefreshLoopTriggersAndStops(t *testing.T) {
	var calls atomic.Int32
	triggered := make(chan struct{}, 8)
	loop := NewRefreshLoop(5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		select {
		case triggered <- struct{}{}:
		default:
		}
		return errors.New("upstream offline")
	})

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Start(context.Background()) }()

	for i := 0; i < 2; i++ {
		select {
		case <-triggered:
		case <-time.After(time.Second):
			t.Fatalf("refresh loop did not trigger")
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := loop.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if calls.Load() < 2 {
		t.Fatalf("expected at least two triggers got %d", calls.Load())
	}
}

func TestRefreshLoopExitsOnContextCancel(t *testing.T) {
	loop := NewRefreshLoop(time.Hour, func(context.Context) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Start(ctx) }()
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("refresh loop did not exit")
	}
}

func TestRefreshLoopRequiresInterval(t *testing.T) {
	if err := NewRefreshLoop(0, func(context.Context) error { return nil }).Start(context.Background()); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestRefreshLoopName(t *testing.T) {
	loop := NewRefreshLoop(time.Minute, func(context.Context) error { return nil })
	if loop.Name() != "catalog_refresh" {
		t.Fatalf("default name want catalog_refresh got %s", loop.Name())
	}
	if got := loop.WithName("catalog_reload").Name(); got != "catalog_reload" {
		t.Fatalf("name want catalog_reload got %s", got)
	}
}

type docSource struct {
	doc models.CatalogDocument
}

func (s docSource) Name() string { return constants.CatalogSourceFile }

func (s docSource) Fetch(context.Context) (models.CatalogDocument, error) { return s.doc, nil }

func TestConsumerRefreshesCatalog(t *testing.T) {
	catalogs := service.NewCatalogService(docSource{doc: models.CatalogDocument{
		LastUpdated: "2026-03-14",
		Products:    []models.Product{{ID: "milk", Name: "Milk", Price: models.MustMoney("3.49")}},
	}}, nil, nil)
	consumer := NewConsumer(&provider.Container{CatalogService: catalogs})

	task, err := queue.NewCatalogRefreshTask(queue.CatalogRefreshPayload{Reason: queue.RefreshReasonManual})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleCatalogRefresh(context.Background(), task); err != nil {
		t.Fatalf("handle refresh failed: %v", err)
	}
	if catalogs.Current().Len() != 1 {
		t.Fatalf("catalog should contain refreshed product")
	}

	if err := consumer.handleCatalogRefresh(context.Background(), asynq.NewTask(queue.TaskCatalogRefresh, []byte("{bad"))); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
