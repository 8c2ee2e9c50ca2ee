package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStateRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate state records failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func sampleState(t *testing.T) models.AppState {
	t.Helper()
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	state := models.NewAppState()
	state.Trip = models.ActiveTrip(models.Trip{ID: "trip-2", Name: "Trip - Mar 14", StartTime: start.Add(2 * time.Hour)})
	state.Cart = []models.CartLineItem{
		{ProductID: "milk", Name: "Milk", Unit: "gallon", Price: models.MustMoney("3.49"), Quantity: 2},
	}
	state.History = []models.HistoryRecord{
		{
			Trip:     models.Trip{ID: "trip-1", Name: "Weekly", StartTime: start, EndTime: &end},
			Items:    []models.CartLineItem{{ProductID: "eggs", Name: "Eggs", Unit: "dozen", Price: models.MustMoney("1.00"), Quantity: 1}},
			Subtotal: models.MustMoney("1.00"),
			Tax:      models.MustMoney("0.0825"),
			Total:    models.MustMoney("1.0825"),
		},
	}
	return state
}

func moneyComparer() cmp.Option {
	return cmp.Comparer(func(a, b models.Money) bool { return a.Equal(b.Decimal) })
}

func tripStateComparer() cmp.Option {
	return cmp.Comparer(func(a, b models.TripState) bool {
		ta, oka := a.Trip()
		tb, okb := b.Trip()
		return oka == okb && ta.ID == tb.ID && ta.Name == tb.Name && ta.StartTime.Equal(tb.StartTime)
	})
}

func TestStateRepositoryLoadEmpty(t *testing.T) {
	repo := NewStateRepository(setupStateRepositoryTest(t))

	state, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, state.Trip.IsActive())
	require.Empty(t, state.Cart)
	require.Empty(t, state.History)
}

func TestStateRepositorySaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(setupStateRepositoryTest(t))
	want := sampleState(t)

	require.NoError(t, repo.Save(ctx, "local", want))
	got, err := repo.Load(ctx, "local")
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, moneyComparer(), tripStateComparer()); diff != "" {
		t.Fatalf("loaded state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateRepositoryNoTripDeletesCurrentTrip(t *testing.T) {
	ctx := context.Background()
	db := setupStateRepositoryTest(t)
	repo := NewStateRepository(db)
	state := sampleState(t)

	require.NoError(t, repo.Save(ctx, "local", state))
	state.Trip = models.NoTrip()
	state.Cart = nil
	require.NoError(t, repo.Save(ctx, "local", state))

	record, err := NewStateRecordRepository(db).Get(ctx, "local", constants.StateKeyCurrentTrip)
	require.NoError(t, err)
	require.Nil(t, record)

	cart, err := NewStateRecordRepository(db).Get(ctx, "local", constants.StateKeyCart)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Equal(t, "[]", cart.Payload)

	loaded, err := repo.Load(ctx, "local")
	require.NoError(t, err)
	require.False(t, loaded.Trip.IsActive())
	require.Len(t, loaded.History, 1)
}

func TestStateRepositoryIsolatesShoppers(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(setupStateRepositoryTest(t))

	require.NoError(t, repo.Save(ctx, "alice", sampleState(t)))
	other, err := repo.Load(ctx, "bob")
	require.NoError(t, err)
	require.False(t, other.Trip.IsActive())
	require.Empty(t, other.History)
}

func TestStateRecordVersionIncrementsOnChange(t *testing.T) {
	ctx := context.Background()
	records := NewStateRecordRepository(setupStateRepositoryTest(t))

	first, err := records.Put(ctx, "local", constants.StateKeyCart, "[]")
	require.NoError(t, err)
	require.EqualValues(t, 1, first.Version)

	same, err := records.Put(ctx, "local", constants.StateKeyCart, "[]")
	require.NoError(t, err)
	require.EqualValues(t, 1, same.Version)

	changed, err := records.Put(ctx, "local", constants.StateKeyCart, `[{"product_id":"milk"}]`)
	require.NoError(t, err)
	require.EqualValues(t, 2, changed.Version)

	stored, err := records.Get(ctx, "local", constants.StateKeyCart)
	require.NoError(t, err)
	require.EqualValues(t, 2, stored.Version)
	require.Equal(t, `[{"product_id":"milk"}]`, stored.Payload)
}

func TestStateRepositorySkipsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	db := setupStateRepositoryTest(t)
	repo := NewStateRepository(db)

	require.NoError(t, repo.Save(ctx, "local", sampleState(t)))
	_, err := NewStateRecordRepository(db).Put(ctx, "local", constants.StateKeyCart, "{not json")
	require.NoError(t, err)

	state, err := repo.Load(ctx, "local")
	require.NoError(t, err)
	require.Empty(t, state.Cart)
	require.True(t, state.Trip.IsActive())
	require.Len(t, state.History, 1)
}

func TestCatalogSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogSnapshotRepository(setupStateRepositoryTest(t))

	missing, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, missing)

	doc := models.CatalogDocument{
		LastUpdated: "2026-03-14",
		Products: []models.Product{
			{ID: "milk", Name: "Milk", Category: "dairy", Price: models.MustMoney("3.49"), Unit: "gallon", Tags: []string{"organic"}},
		},
		Categories: []models.Category{{ID: "dairy", Name: "Dairy", Icon: "🥛"}},
	}
	require.NoError(t, repo.Save(ctx, doc))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(doc, *got, moneyComparer()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
