package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tripcart/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moneyComparer = cmp.Comparer(func(a, b models.Money) bool { return a.Equal(b.Decimal) })

func TestStartTripDefaultName(t *testing.T) {
	lifecycle := NewTripLifecycle(fixedClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)))
	state := models.NewAppState()

	trip, err := lifecycle.StartTrip(&state, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Trip - Mar 14", trip.Name)
	assert.Nil(t, trip.EndTime)
	_, err = uuid.Parse(trip.ID)
	assert.NoError(t, err)

	active, ok := state.Trip.Trip()
	require.True(t, ok)
	assert.Equal(t, trip.ID, active.ID)
}

func TestStartTripClearsLeftoverCart(t *testing.T) {
	lifecycle := NewTripLifecycle(nil)
	state := models.NewAppState()
	state.Cart = []models.CartLineItem{{ProductID: "milk", Name: "Milk", Quantity: 1}}

	_, err := lifecycle.StartTrip(&state, "Weekly")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
}

func TestStartTripWhileActiveIsNoop(t *testing.T) {
	lifecycle := NewTripLifecycle(nil)
	state := models.NewAppState()
	first, err := lifecycle.StartTrip(&state, "First")
	require.NoError(t, err)
	_, err = AddOrUpdateItem(&state, testCatalog(), "milk", 1)
	require.NoError(t, err)

	_, err = lifecycle.StartTrip(&state, "Second")
	assert.True(t, errors.Is(err, ErrTripAlreadyActive))
	assert.True(t, errors.Is(err, ErrInvalidState))

	active, _ := state.Trip.Trip()
	assert.Equal(t, first.ID, active.ID)
	assert.Len(t, state.Cart, 1)
}

func TestEndTripWithoutTrip(t *testing.T) {
	state := models.NewAppState()
	record, err := NewTripLifecycle(nil).EndTrip(&state)
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, ErrNoActiveTrip))
}

func TestEndTripWithEmptyCartDiscardsTrip(t *testing.T) {
	lifecycle := NewTripLifecycle(nil)
	state := models.NewAppState()
	_, err := lifecycle.StartTrip(&state, "")
	require.NoError(t, err)

	record, err := lifecycle.EndTrip(&state)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Empty(t, state.History)
	assert.False(t, state.Trip.IsActive())
}

func TestEndTripArchivesSnapshotNewestFirst(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	lifecycle := NewTripLifecycle(stepClock(start))
	products := testCatalog()
	state := models.NewAppState()

	_, err := lifecycle.StartTrip(&state, "Older")
	require.NoError(t, err)
	_, err = AddOrUpdateItem(&state, products, "bread", 1)
	require.NoError(t, err)
	_, err = lifecycle.EndTrip(&state)
	require.NoError(t, err)

	trip, err := lifecycle.StartTrip(&state, "Newer")
	require.NoError(t, err)
	_, err = AddOrUpdateItem(&state, products, "milk", 2)
	require.NoError(t, err)
	_, err = AddOrUpdateItem(&state, products, "eggs", 1)
	require.NoError(t, err)
	wantItems := models.CloneLineItems(state.Cart)

	record, err := lifecycle.EndTrip(&state)
	require.NoError(t, err)
	require.NotNil(t, record)

	require.Len(t, state.History, 2)
	assert.Equal(t, "Newer", state.History[0].Name)
	assert.Equal(t, "Older", state.History[1].Name)
	assert.Equal(t, trip.ID, record.ID)
	require.NotNil(t, record.EndTime)
	assert.True(t, record.EndTime.After(record.StartTime))
	assert.Equal(t, "7.98", record.Subtotal.String())
	assert.Equal(t, "8.63835", record.Total.String())
	assert.False(t, state.Trip.IsActive())
	assert.Empty(t, state.Cart)

	if diff := cmp.Diff(wantItems, state.History[0].Items, moneyComparer); diff != "" {
		t.Fatalf("archived items mismatch (-want +got):\n%s", diff)
	}

	// 历史快照与后续修改相互独立
	wantItems[0].Quantity = 99
	record.Items[0].Quantity = 42
	assert.Equal(t, 2, state.History[0].Items[0].Quantity)
}

func TestTripIDsAreUnique(t *testing.T) {
	lifecycle := NewTripLifecycle(nil)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		state := models.NewAppState()
		trip, err := lifecycle.StartTrip(&state, "")
		require.NoError(t, err)
		require.False(t, seen[trip.ID], "duplicate trip id %s", trip.ID)
		seen[trip.ID] = true
	}
}
