package service

import (
	"strings"
	"time"

	"github.com/tripcart/internal/models"

	"github.com/google/uuid"
)

// TripLifecycle 行程状态机：NoTrip -> Active -> NoTrip
type TripLifecycle struct {
	now   func() time.Time
	newID func() string
}

// NewTripLifecycle 创建行程状态机，now 为空时使用 time.Now
func NewTripLifecycle(now func() time.Time) *TripLifecycle {
	if now == nil {
		now = time.Now
	}
	return &TripLifecycle{now: now, newID: newTripID}
}

// StartTrip 开始行程并清空残留购物车
func (l *TripLifecycle) StartTrip(state *models.AppState, name string) (models.Trip, error) {
	if state.Trip.IsActive() {
		return models.Trip{}, ErrTripAlreadyActive
	}
	now := l.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTripName(now)
	}
	trip := models.Trip{
		ID:        l.newID(),
		Name:      name,
		StartTime: now,
	}
	state.Trip = models.ActiveTrip(trip)
	state.Cart = []models.CartLineItem{}
	return trip, nil
}

// EndTrip 结束行程；购物车非空时归档到历史最前，空购物车的行程直接丢弃
func (l *TripLifecycle) EndTrip(state *models.AppState) (*models.HistoryRecord, error) {
	trip, ok := state.Trip.Trip()
	if !ok {
		return nil, ErrNoActiveTrip
	}
	var archived *models.HistoryRecord
	if len(state.Cart) > 0 {
		endTime := l.now()
		trip.EndTime = &endTime
		totals := ComputeTotals(state.Cart)
		record := models.HistoryRecord{
			Trip:     trip,
			Items:    models.CloneLineItems(state.Cart),
			Subtotal: totals.Subtotal,
			Tax:      totals.Tax,
			Total:    totals.Total,
		}
		state.History = ArchiveRecord(state.History, record)
		returned := record
		returned.Items = models.CloneLineItems(record.Items)
		archived = &returned
	}
	state.Trip = models.NoTrip()
	state.Cart = []models.CartLineItem{}
	return archived, nil
}

// DefaultTripName 默认行程名称，例如 "Trip - Jan 2"
func DefaultTripName(t time.Time) string {
	return "Trip - " + t.Format("Jan 2")
}

func newTripID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
