package models

import "time"

// AppState 单个 shopper 的完整状态（行程 / 购物车 / 历史）
type AppState struct {
	Trip    TripState       `json:"trip"`
	Cart    []CartLineItem  `json:"cart"`
	History []HistoryRecord `json:"history"`
}

// NewAppState 创建空状态
func NewAppState() AppState {
	return AppState{
		Trip:    NoTrip(),
		Cart:    []CartLineItem{},
		History: []HistoryRecord{},
	}
}

// Clone 深拷贝，修改副本不影响原状态
func (s AppState) Clone() AppState {
	out := AppState{
		Trip:    s.Trip,
		Cart:    CloneLineItems(s.Cart),
		History: make([]HistoryRecord, len(s.History)),
	}
	if trip, ok := s.Trip.Trip(); ok {
		out.Trip = ActiveTrip(trip)
	}
	for i, record := range s.History {
		record.Items = CloneLineItems(record.Items)
		if record.EndTime != nil {
			endTime := *record.EndTime
			record.EndTime = &endTime
		}
		out.History[i] = record
	}
	return out
}

// CloneLineItems 复制购物车行
func CloneLineItems(items []CartLineItem) []CartLineItem {
	out := make([]CartLineItem, len(items))
	copy(out, items)
	return out
}

// StateRecord 状态持久化记录（按 shopper + key 存储序列化后的 JSON）
type StateRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                                   // 主键
	ShopperID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_state_shopper_key" json:"shopper_id"`          // shopper 标识
	Key       string    `gorm:"column:state_key;type:varchar(64);not null;uniqueIndex:idx_state_shopper_key" json:"key"` // 逻辑 key
	Payload   string    `gorm:"type:text;not null" json:"payload"`                                                      // JSON 内容
	Version   int64     `gorm:"not null;default:0" json:"version"`                                                      // 写入版本
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                                // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                                                // 更新时间
}

// TableName 指定表名
func (StateRecord) TableName() string {
	return "state_records"
}
