package models

// Product 商品（加载后不可变）
type Product struct {
	ID          string   `json:"id"`          // 商品ID
	Name        string   `json:"name"`        // 名称
	Category    string   `json:"category"`    // 分类ID
	Price       Money    `json:"price"`       // 单价
	Unit        string   `json:"unit"`        // 计量单位
	Tags        []string `json:"tags"`        // 标签
	Description string   `json:"description"` // 描述
}

// Category 商品分类
type Category struct {
	ID   string `json:"id"`   // 分类ID
	Name string `json:"name"` // 名称
	Icon string `json:"icon"` // 图标
}

// CatalogDocument 商品目录文档（来源文件 / 远程接口 / 快照共用）
type CatalogDocument struct {
	LastUpdated string     `json:"lastUpdated"` // 目录更新时间
	Products    []Product  `json:"products"`    // 商品列表
	Categories  []Category `json:"categories"`  // 分类列表
}
