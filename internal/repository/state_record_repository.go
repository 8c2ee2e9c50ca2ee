package repository

import (
	"context"
	"errors"

	"github.com/tripcart/internal/models"

	"gorm.io/gorm"
)

// StateRecordRepository 状态记录数据访问接口
type StateRecordRepository interface {
	Get(ctx context.Context, shopperID, key string) (*models.StateRecord, error)
	ListByShopper(ctx context.Context, shopperID string) ([]models.StateRecord, error)
	Put(ctx context.Context, shopperID, key, payload string) (*models.StateRecord, error)
	Delete(ctx context.Context, shopperID, key string) error
	WithTx(tx *gorm.DB) *GormStateRecordRepository
}

// GormStateRecordRepository GORM 实现
type GormStateRecordRepository struct {
	db *gorm.DB
}

// NewStateRecordRepository 创建状态记录仓库
func NewStateRecordRepository(db *gorm.DB) *GormStateRecordRepository {
	return &GormStateRecordRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStateRecordRepository) WithTx(tx *gorm.DB) *GormStateRecordRepository {
	if tx == nil {
		return r
	}
	return &GormStateRecordRepository{db: tx}
}

// Get 按 shopper + key 获取记录，不存在时返回 nil
func (r *GormStateRecordRepository) Get(ctx context.Context, shopperID, key string) (*models.StateRecord, error) {
	var record models.StateRecord
	err := r.db.WithContext(ctx).
		Where("shopper_id = ? AND state_key = ?", shopperID, key).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListByShopper 获取 shopper 的全部记录
func (r *GormStateRecordRepository) ListByShopper(ctx context.Context, shopperID string) ([]models.StateRecord, error) {
	var records []models.StateRecord
	if err := r.db.WithContext(ctx).
		Where("shopper_id = ?", shopperID).
		Order("state_key asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Put 写入记录；已存在时覆盖内容并递增版本
func (r *GormStateRecordRepository) Put(ctx context.Context, shopperID, key, payload string) (*models.StateRecord, error) {
	existing, err := r.Get(ctx, shopperID, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		record := &models.StateRecord{
			ShopperID: shopperID,
			Key:       key,
			Payload:   payload,
			Version:   1,
		}
		if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
			return nil, err
		}
		return record, nil
	}
	if existing.Payload == payload {
		return existing, nil
	}
	updates := map[string]interface{}{
		"payload": payload,
		"version": gorm.Expr("version + ?", 1),
	}
	if err := r.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}
	existing.Payload = payload
	existing.Version++
	return existing, nil
}

// Delete 删除记录，不存在时忽略
func (r *GormStateRecordRepository) Delete(ctx context.Context, shopperID, key string) error {
	return r.db.WithContext(ctx).
		Where("shopper_id = ? AND state_key = ?", shopperID, key).
		Delete(&models.StateRecord{}).Error
}
