package models

import (
	"encoding/json"
	"time"
)

// Trip 购物行程
type Trip struct {
	ID        string     `json:"id"`         // 行程ID（按创建时间有序）
	Name      string     `json:"name"`       // 行程名称
	StartTime time.Time  `json:"start_time"` // 开始时间
	EndTime   *time.Time `json:"end_time"`   // 结束时间（进行中为 null）
}

// TripState 行程状态：NoTrip 或 Active(Trip)
// 字段不导出，只能通过 NoTrip / ActiveTrip 构造。
type TripState struct {
	active *Trip
}

// NoTrip 无进行中的行程
func NoTrip() TripState {
	return TripState{}
}

// ActiveTrip 进行中的行程
func ActiveTrip(trip Trip) TripState {
	trip.EndTime = nil
	return TripState{active: &trip}
}

// IsActive 是否存在进行中的行程
func (s TripState) IsActive() bool {
	return s.active != nil
}

// Trip 返回进行中的行程
func (s TripState) Trip() (Trip, bool) {
	if s.active == nil {
		return Trip{}, false
	}
	return *s.active, true
}

// MarshalJSON NoTrip 输出 null
func (s TripState) MarshalJSON() ([]byte, error) {
	if s.active == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.active)
}

// UnmarshalJSON null 还原为 NoTrip
func (s *TripState) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*s = NoTrip()
		return nil
	}
	var trip Trip
	if err := json.Unmarshal(b, &trip); err != nil {
		return err
	}
	*s = ActiveTrip(trip)
	return nil
}
