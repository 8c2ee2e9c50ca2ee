package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tripcart/internal/catalog"
	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(models.CatalogDocument{
		LastUpdated: "2026-03-14",
		Products: []models.Product{
			{ID: "milk", Name: "Milk", Category: "dairy", Price: models.MustMoney("3.49"), Unit: "gallon"},
			{ID: "eggs", Name: "Eggs", Category: "dairy", Price: models.MustMoney("1.00"), Unit: "dozen"},
			{ID: "bread", Name: "Bread", Category: "bakery", Price: models.MustMoney("2.25"), Unit: "loaf"},
			{ID: "apples", Name: "Apples", Category: "produce", Price: models.MustMoney("0.99"), Unit: "lb"},
			{ID: "coffee", Name: "Coffee", Category: "pantry", Price: models.MustMoney("11.75"), Unit: "bag"},
		},
		Categories: []models.Category{{ID: "dairy", Name: "Dairy"}},
	}, constants.CatalogSourceFile, "")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// stepClock 每次调用前进一秒
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

var errSaveUnavailable = errors.New("storage unavailable")

type memoryStateRepository struct {
	mu        sync.Mutex
	states    map[string]models.AppState
	failSaves int
	saves     int
	loads     int
}

func newMemoryStateRepository() *memoryStateRepository {
	return &memoryStateRepository{states: make(map[string]models.AppState)}
}

func (r *memoryStateRepository) Load(_ context.Context, shopperID string) (models.AppState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	state, ok := r.states[shopperID]
	if !ok {
		return models.NewAppState(), nil
	}
	return state.Clone(), nil
}

func (r *memoryStateRepository) Save(_ context.Context, shopperID string, state models.AppState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.failSaves > 0 {
		r.failSaves--
		return errSaveUnavailable
	}
	r.states[shopperID] = state.Clone()
	return nil
}

func (r *memoryStateRepository) setFailures(n int) {
	r.mu.Lock()
	r.failSaves = n
	r.mu.Unlock()
}

func (r *memoryStateRepository) stored(shopperID string) (models.AppState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[shopperID]
	return state, ok
}
