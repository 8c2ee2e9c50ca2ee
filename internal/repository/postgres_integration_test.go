//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/tripcart/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库；
// 未设置 TEST_POSTGRES_DSN 时启动临时容器。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
			postgres.WithDatabase("tripcart"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Skipf("skip postgres integration test: %v", err)
		}
		t.Cleanup(func() {
			if err := testcontainers.TerminateContainer(container); err != nil {
				t.Logf("terminate postgres container failed: %v", err)
			}
		})
		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("postgres connection string failed: %v", err)
		}
	}

	db, err := models.OpenDB("postgres", dsn, false)
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	_ = db.Migrator().DropTable(&models.StateRecord{})
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(&models.StateRecord{})
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresStateRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupPostgresIntegrationDB(t)
	repo := NewStateRepository(db)
	state := sampleState(t)

	require.NoError(t, repo.Save(ctx, "pg-shopper", state))
	state.Cart = append(state.Cart, models.CartLineItem{
		ProductID: "bread", Name: "Bread", Unit: "loaf", Price: models.MustMoney("2.25"), Quantity: 1,
	})
	require.NoError(t, repo.Save(ctx, "pg-shopper", state))

	loaded, err := repo.Load(ctx, "pg-shopper")
	require.NoError(t, err)
	require.True(t, loaded.Trip.IsActive())
	require.Len(t, loaded.Cart, 2)
	require.True(t, loaded.Cart[1].Price.Equal(models.MustMoney("2.25").Decimal))
	require.Len(t, loaded.History, 1)
}

func TestPostgresCatalogSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogSnapshotRepository(setupPostgresIntegrationDB(t))

	doc := models.CatalogDocument{
		LastUpdated: "2026-03-14",
		Products:    []models.Product{{ID: "milk", Name: "Milk", Price: models.MustMoney("3.49")}},
	}
	require.NoError(t, repo.Save(ctx, doc))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "2026-03-14", got.LastUpdated)
	require.Len(t, got.Products, 1)
}
