package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/tripcart/internal/catalog"
	"github.com/tripcart/internal/config"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/models"
	"github.com/tripcart/internal/repository"
)

func main() {
	var overwrite bool
	flag.BoolVar(&overwrite, "overwrite", false, "覆盖已存在的商品目录文件")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	// 写入示例商品目录
	path := cfg.Catalog.Path
	if _, err := os.Stat(path); err == nil && !overwrite {
		logger.Infow("seed_catalog_file_exists", "path", path)
	} else {
		if err := writeSampleCatalog(path); err != nil {
			stdLog.Fatalf("写入商品目录失败: %v", err)
		}
		logger.Infow("seed_catalog_file_written", "path", path, "products", len(sampleCatalog().Products))
	}

	// 连接数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, false, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(nil); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 预热目录快照，来源不可用时服务仍能启动
	doc, err := catalog.FileSource{Path: path}.Fetch(context.Background())
	if err != nil {
		stdLog.Fatalf("读取商品目录失败: %v", err)
	}
	if err := repository.NewCatalogSnapshotRepository(models.DB).Save(context.Background(), doc); err != nil {
		stdLog.Fatalf("写入目录快照失败: %v", err)
	}
	logger.Infow("seed_catalog_snapshot_saved", "products", len(doc.Products), "last_updated", doc.LastUpdated)
}

func writeSampleCatalog(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	content, err := json.MarshalIndent(sampleCatalog(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func sampleCatalog() models.CatalogDocument {
	return models.CatalogDocument{
		LastUpdated: "2026-03-14",
		Categories: []models.Category{
			{ID: "produce", Name: "Produce", Icon: "🥦"},
			{ID: "dairy", Name: "Dairy", Icon: "🥛"},
			{ID: "bakery", Name: "Bakery", Icon: "🍞"},
			{ID: "pantry", Name: "Pantry", Icon: "🥫"},
		},
		Products: []models.Product{
			{ID: "p-apple", Name: "Honeycrisp Apples", Category: "produce", Price: models.MustMoney("0.99"), Unit: "each", Tags: []string{"fruit", "fresh"}, Description: "Crisp and sweet apples"},
			{ID: "p-banana", Name: "Bananas", Category: "produce", Price: models.MustMoney("0.29"), Unit: "each", Tags: []string{"fruit"}, Description: "Ripe yellow bananas"},
			{ID: "p-spinach", Name: "Baby Spinach", Category: "produce", Price: models.MustMoney("3.99"), Unit: "bag", Tags: []string{"greens", "organic"}, Description: "Pre-washed baby spinach"},
			{ID: "p-milk", Name: "Whole Milk", Category: "dairy", Price: models.MustMoney("3.49"), Unit: "gallon", Tags: []string{"milk"}, Description: "Fresh whole milk"},
			{ID: "p-eggs", Name: "Large Eggs", Category: "dairy", Price: models.MustMoney("4.29"), Unit: "dozen", Tags: []string{"protein"}, Description: "Grade A large eggs"},
			{ID: "p-yogurt", Name: "Greek Yogurt", Category: "dairy", Price: models.MustMoney("5.49"), Unit: "tub", Tags: []string{"protein", "breakfast"}, Description: "Plain greek yogurt"},
			{ID: "p-bread", Name: "Sourdough Loaf", Category: "bakery", Price: models.MustMoney("4.50"), Unit: "loaf", Tags: []string{"bread"}, Description: "Crusty sourdough bread"},
			{ID: "p-bagels", Name: "Everything Bagels", Category: "bakery", Price: models.MustMoney("3.75"), Unit: "6-pack", Tags: []string{"bread", "breakfast"}, Description: "Seeded bagels"},
			{ID: "p-rice", Name: "Jasmine Rice", Category: "pantry", Price: models.MustMoney("7.99"), Unit: "5 lb", Tags: []string{"grain"}, Description: "Fragrant long grain rice"},
			{ID: "p-beans", Name: "Black Beans", Category: "pantry", Price: models.MustMoney("1.19"), Unit: "can", Tags: []string{"protein", "canned"}, Description: "Low sodium black beans"},
		},
	}
}
