package constants

// 计价常量
const (
	// TaxRate 固定税率（8.25%）
	TaxRate = "0.0825"
	// DisplayScale 金额展示保留位数
	DisplayScale = 2
)

// 行程状态常量
const (
	TripStatusNone   = "none"
	TripStatusActive = "active"
)

// 持久化 key（逻辑 key，与存储实现无关）
const (
	StateKeyCurrentTrip        = "current_trip"
	StateKeyCart               = "cart"
	StateKeyShoppingHistory    = "shopping_history"
	StateKeyProductsCache      = "products_cache"
	StateKeyProductsLastUpdate = "products_last_update"
)

// CatalogShopperID 商品目录快照使用的保留 shopper
const CatalogShopperID = "_catalog"

// DefaultShopperID 未携带 X-Shopper-ID 时的默认 shopper
const DefaultShopperID = "local"

// 商品目录来源
const (
	CatalogSourceFile  = "file"
	CatalogSourceHTTP  = "http"
	CatalogSourceCache = "cache"
	CatalogSourceNone  = "none"
)

// 商品目录告警
const (
	CatalogWarningUnavailable = "catalog_unavailable"
	CatalogWarningStale       = "catalog_stale"
)

// 射门小游戏常量
const (
	ShotsPerGame     = 5
	MinShotPower     = 20
	MaxShotPower     = 100
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// 队列常量
const (
	QueueDefault       = "default"
	TaskCatalogRefresh = "catalog:refresh"
)
