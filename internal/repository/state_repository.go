package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/models"

	"gorm.io/gorm"
)

// StateRepository 购物状态持久化接口（行程 / 购物车 / 历史）
type StateRepository interface {
	Load(ctx context.Context, shopperID string) (models.AppState, error)
	Save(ctx context.Context, shopperID string, state models.AppState) error
}

// GormStateRepository GORM 实现
type GormStateRepository struct {
	db      *gorm.DB
	records *GormStateRecordRepository
}

// NewStateRepository 创建状态仓库
func NewStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db, records: NewStateRecordRepository(db)}
}

// Load 读取 shopper 状态；缺失的 key 视为空值
func (r *GormStateRepository) Load(ctx context.Context, shopperID string) (models.AppState, error) {
	state := models.NewAppState()
	records, err := r.records.ListByShopper(ctx, shopperID)
	if err != nil {
		return state, fmt.Errorf("list state records: %w", err)
	}
	for _, record := range records {
		switch record.Key {
		case constants.StateKeyCurrentTrip:
			var trip models.Trip
			if decodeRecord(record, &trip) {
				state.Trip = models.ActiveTrip(trip)
			}
		case constants.StateKeyCart:
			var items []models.CartLineItem
			if decodeRecord(record, &items) && items != nil {
				state.Cart = items
			}
		case constants.StateKeyShoppingHistory:
			var history []models.HistoryRecord
			if decodeRecord(record, &history) && history != nil {
				state.History = history
			}
		}
	}
	return state, nil
}

// Save 在单个事务内写入全部 key；无行程时删除 current_trip
func (r *GormStateRepository) Save(ctx context.Context, shopperID string, state models.AppState) error {
	cart, err := json.Marshal(nonNilItems(state.Cart))
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	history := state.History
	if history == nil {
		history = []models.HistoryRecord{}
	}
	historyPayload, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	var tripPayload []byte
	if trip, ok := state.Trip.Trip(); ok {
		if tripPayload, err = json.Marshal(trip); err != nil {
			return fmt.Errorf("encode trip: %w", err)
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records := r.records.WithTx(tx)
		if tripPayload == nil {
			if err := records.Delete(ctx, shopperID, constants.StateKeyCurrentTrip); err != nil {
				return err
			}
		} else if _, err := records.Put(ctx, shopperID, constants.StateKeyCurrentTrip, string(tripPayload)); err != nil {
			return err
		}
		if _, err := records.Put(ctx, shopperID, constants.StateKeyCart, string(cart)); err != nil {
			return err
		}
		if _, err := records.Put(ctx, shopperID, constants.StateKeyShoppingHistory, string(historyPayload)); err != nil {
			return err
		}
		return nil
	})
}

func decodeRecord(record models.StateRecord, dest interface{}) bool {
	if err := json.Unmarshal([]byte(record.Payload), dest); err != nil {
		logger.Warnw("state_record_corrupt",
			"shopper_id", record.ShopperID,
			"key", record.Key,
			"version", record.Version,
			"error", err,
		)
		return false
	}
	return true
}

func nonNilItems(items []models.CartLineItem) []models.CartLineItem {
	if items == nil {
		return []models.CartLineItem{}
	}
	return items
}
