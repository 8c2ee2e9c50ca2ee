package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/tripcart/internal/catalog"
	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/models"
	"github.com/tripcart/internal/repository"
)

// CatalogHotCache 目录热缓存（Redis）
type CatalogHotCache interface {
	Get(ctx context.Context) (*models.CatalogDocument, bool, error)
	Set(ctx context.Context, doc models.CatalogDocument) error
}

// CatalogService 商品目录服务：来源 -> 热缓存 -> 持久化快照 -> 空目录
type CatalogService struct {
	source    catalog.Source
	snapshots repository.CatalogSnapshotRepository
	hot       CatalogHotCache

	mu      sync.RWMutex
	current *catalog.Catalog
}

// NewCatalogService 创建目录服务，hot 可为空
func NewCatalogService(source catalog.Source, snapshots repository.CatalogSnapshotRepository, hot CatalogHotCache) *CatalogService {
	return &CatalogService{
		source:    source,
		snapshots: snapshots,
		hot:       hot,
		current:   catalog.Empty(constants.CatalogSourceNone, constants.CatalogWarningUnavailable),
	}
}

// Load 启动加载：来源失败时依次回退热缓存与快照，全部失败时使用空目录并给出告警
func (s *CatalogService) Load(ctx context.Context) *catalog.Catalog {
	if err := s.Refresh(ctx); err == nil {
		return s.Current()
	}

	if doc, ok := s.loadFallback(ctx); ok {
		warning := ""
		if s.source != nil {
			warning = constants.CatalogWarningStale
		}
		loaded := catalog.New(doc, constants.CatalogSourceCache, warning)
		s.swap(loaded)
		logger.Infow("catalog_loaded_from_cache",
			"products", loaded.Len(),
			"last_updated", loaded.LastUpdated(),
		)
		return loaded
	}

	empty := catalog.Empty(constants.CatalogSourceNone, constants.CatalogWarningUnavailable)
	s.swap(empty)
	logger.Warnw("catalog_unavailable", "reason", "no source and no cached snapshot")
	return empty
}

// Refresh 仅从来源重新拉取；成功后写入快照与热缓存并原子替换，失败时保留当前目录
func (s *CatalogService) Refresh(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("%w: no catalog source configured", ErrCatalogRefreshFailed)
	}
	doc, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Warnw("catalog_fetch_failed", "source", s.source.Name(), "error", err)
		return fmt.Errorf("%w: %v", ErrCatalogRefreshFailed, err)
	}
	loaded := catalog.New(doc, s.source.Name(), "")
	s.swap(loaded)
	s.persist(ctx, doc)
	logger.Infow("catalog_loaded",
		"source", s.source.Name(),
		"products", loaded.Len(),
		"categories", len(doc.Categories),
		"last_updated", doc.LastUpdated,
	)
	return nil
}

// Reload 从热缓存或快照同步其他进程刷新后的目录，不访问来源；两者皆无时保留当前目录
func (s *CatalogService) Reload(ctx context.Context) error {
	doc, ok := s.loadFallback(ctx)
	if !ok {
		return nil
	}
	previous := s.Current().LastUpdated()
	loaded := catalog.New(doc, constants.CatalogSourceCache, "")
	s.swap(loaded)
	if previous != doc.LastUpdated {
		logger.Infow("catalog_reloaded",
			"products", loaded.Len(),
			"previous_last_updated", previous,
			"last_updated", doc.LastUpdated,
		)
	}
	return nil
}

// Current 当前目录
func (s *CatalogService) Current() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Product 按 ID 查找商品
func (s *CatalogService) Product(id string) (models.Product, bool) {
	return s.Current().Product(id)
}

// Search 按分类与关键字搜索
func (s *CatalogService) Search(categoryID, query string) []models.Product {
	return s.Current().Search(categoryID, query)
}

func (s *CatalogService) swap(next *catalog.Catalog) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

func (s *CatalogService) persist(ctx context.Context, doc models.CatalogDocument) {
	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, doc); err != nil {
			logger.Warnw("catalog_snapshot_save_failed", "error", err)
		}
	}
	if s.hot != nil {
		if err := s.hot.Set(ctx, doc); err != nil {
			logger.Warnw("catalog_hot_cache_set_failed", "error", err)
		}
	}
}

func (s *CatalogService) loadFallback(ctx context.Context) (models.CatalogDocument, bool) {
	if s.hot != nil {
		doc, ok, err := s.hot.Get(ctx)
		if err != nil {
			logger.Warnw("catalog_hot_cache_get_failed", "error", err)
		} else if ok && doc != nil {
			return *doc, true
		}
	}
	if s.snapshots != nil {
		doc, err := s.snapshots.Load(ctx)
		if err != nil {
			logger.Warnw("catalog_snapshot_load_failed", "error", err)
		} else if doc != nil {
			if s.hot != nil {
				if err := s.hot.Set(ctx, *doc); err != nil {
					logger.Warnw("catalog_hot_cache_set_failed", "error", err)
				}
			}
			return *doc, true
		}
	}
	return models.CatalogDocument{}, false
}
