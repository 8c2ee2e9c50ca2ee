package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tripcart/internal/catalog"
	"github.com/tripcart/internal/config"
	"github.com/tripcart/internal/provider"
	"github.com/tripcart/internal/queue"
	"github.com/tripcart/internal/service"

	"go.uber.org/zap"
)

type stubService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *stubService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &stubService{name: "http", startErr: boom}
	blocking := &stubService{name: "catalog_refresh", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, zap.NewNop().Sugar())
	if !errors.Is(err, boom) {
		t.Fatalf("expected start error, got %v", err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	blocking := &stubService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(blocking).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should not be an error, got %v", err)
	}
}

func TestBuildRunnerModes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	if err := os.WriteFile(path, []byte(`{"lastUpdated":"2026-03-14","products":[],"categories":[]}`), 0o644); err != nil {
		t.Fatalf("write catalog failed: %v", err)
	}
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		Catalog: config.CatalogConfig{Source: "file", Path: path, Currency: "USD", RefreshIntervalMinutes: 5},
	}
	catalogs := service.NewCatalogService(catalog.FileSource{Path: path}, nil, nil)
	container := &provider.Container{
		Config:          cfg,
		CatalogService:  catalogs,
		ShoppingService: service.NewShoppingService(nil, catalogs, service.ShoppingServiceOptions{}),
	}

	runner, err := buildRunner(cfg, ModeAll, container)
	if err != nil {
		t.Fatalf("build all mode failed: %v", err)
	}
	names := make([]string, 0, len(runner.services))
	for _, svc := range runner.services {
		names = append(names, svc.Name())
	}
	if len(names) != 2 || names[0] != "http" || names[1] != "catalog_refresh" {
		t.Fatalf("all mode without queue want [http catalog_refresh] got %v", names)
	}
	if catalogs.Current().Source() != "file" {
		t.Fatalf("catalog should be loaded at startup, source=%s", catalogs.Current().Source())
	}

	if _, err := buildRunner(cfg, ModeWorker, container); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
	if _, err := buildRunner(cfg, "unknown", container); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestBuildRunnerAPIModeWithQueueReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	if err := os.WriteFile(path, []byte(`{"lastUpdated":"2026-03-14","products":[],"categories":[]}`), 0o644); err != nil {
		t.Fatalf("write catalog failed: %v", err)
	}
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		Catalog: config.CatalogConfig{Source: "file", Path: path, Currency: "USD", RefreshIntervalMinutes: 5},
		Queue:   config.QueueConfig{Enabled: true, Host: "127.0.0.1", Port: 6399},
	}
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	t.Cleanup(func() { _ = queueClient.Close() })
	catalogs := service.NewCatalogService(catalog.FileSource{Path: path}, nil, nil)
	container := &provider.Container{
		Config:          cfg,
		QueueClient:     queueClient,
		CatalogService:  catalogs,
		ShoppingService: service.NewShoppingService(nil, catalogs, service.ShoppingServiceOptions{}),
	}

	runner, err := buildRunner(cfg, ModeAPI, container)
	if err != nil {
		t.Fatalf("build api mode failed: %v", err)
	}
	names := make([]string, 0, len(runner.services))
	for _, svc := range runner.services {
		names = append(names, svc.Name())
	}
	if len(names) != 2 || names[0] != "http" || names[1] != "catalog_reload" {
		t.Fatalf("api mode with queue want [http catalog_reload] got %v", names)
	}

	cfg.Catalog.RefreshIntervalMinutes = 0
	runner, err = buildRunner(cfg, ModeAPI, container)
	if err != nil {
		t.Fatalf("build api mode failed: %v", err)
	}
	if len(runner.services) != 2 || runner.services[1].Name() != "catalog_reload" {
		t.Fatalf("manual refreshes still need a reload loop in api mode")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) want %s got %s err=%v", raw, want, got, err)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
