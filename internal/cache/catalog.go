package cache

import (
	"context"
	"time"

	"github.com/tripcart/internal/models"
)

const catalogKey = "catalog:document"

// CatalogCache 商品目录热缓存（Redis 未启用时所有操作为空操作）
type CatalogCache struct {
	TTL time.Duration
}

// Get 读取缓存的目录文档
func (c CatalogCache) Get(ctx context.Context) (*models.CatalogDocument, bool, error) {
	var doc models.CatalogDocument
	ok, err := GetJSON(ctx, catalogKey, &doc)
	if err != nil || !ok {
		return nil, false, err
	}
	return &doc, true, nil
}

// Set 写入目录文档
func (c CatalogCache) Set(ctx context.Context, doc models.CatalogDocument) error {
	return SetJSON(ctx, catalogKey, doc, c.TTL)
}
