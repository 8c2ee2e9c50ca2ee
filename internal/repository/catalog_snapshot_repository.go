package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/models"

	"gorm.io/gorm"
)

// CatalogSnapshotRepository 商品目录快照持久化接口
type CatalogSnapshotRepository interface {
	Load(ctx context.Context) (*models.CatalogDocument, error)
	Save(ctx context.Context, doc models.CatalogDocument) error
}

// GormCatalogSnapshotRepository GORM 实现（复用 state_records 表）
type GormCatalogSnapshotRepository struct {
	db      *gorm.DB
	records *GormStateRecordRepository
}

// NewCatalogSnapshotRepository 创建目录快照仓库
func NewCatalogSnapshotRepository(db *gorm.DB) *GormCatalogSnapshotRepository {
	return &GormCatalogSnapshotRepository{db: db, records: NewStateRecordRepository(db)}
}

// Load 读取最近一次成功拉取的目录，不存在时返回 nil
func (r *GormCatalogSnapshotRepository) Load(ctx context.Context) (*models.CatalogDocument, error) {
	record, err := r.records.Get(ctx, constants.CatalogShopperID, constants.StateKeyProductsCache)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	var doc models.CatalogDocument
	if err := json.Unmarshal([]byte(record.Payload), &doc); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	lastUpdate, err := r.records.Get(ctx, constants.CatalogShopperID, constants.StateKeyProductsLastUpdate)
	if err != nil {
		return nil, err
	}
	if lastUpdate != nil && lastUpdate.Payload != "" {
		doc.LastUpdated = lastUpdate.Payload
	}
	return &doc, nil
}

// Save 写入目录快照与更新时间
func (r *GormCatalogSnapshotRepository) Save(ctx context.Context, doc models.CatalogDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records := r.records.WithTx(tx)
		if _, err := records.Put(ctx, constants.CatalogShopperID, constants.StateKeyProductsCache, string(payload)); err != nil {
			return err
		}
		_, err := records.Put(ctx, constants.CatalogShopperID, constants.StateKeyProductsLastUpdate, doc.LastUpdated)
		return err
	})
}
