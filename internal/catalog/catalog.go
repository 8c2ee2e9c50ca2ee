package catalog

import (
	"strings"

	"github.com/tripcart/internal/models"
)

// Catalog 已加载的商品目录（构建后只读，刷新时整体替换）
type Catalog struct {
	doc     models.CatalogDocument
	index   map[string]int
	source  string
	warning string
}

// New 基于文档构建目录
func New(doc models.CatalogDocument, source, warning string) *Catalog {
	products := make([]models.Product, len(doc.Products))
	copy(products, doc.Products)
	categories := make([]models.Category, len(doc.Categories))
	copy(categories, doc.Categories)
	c := &Catalog{
		doc: models.CatalogDocument{
			LastUpdated: doc.LastUpdated,
			Products:    products,
			Categories:  categories,
		},
		index:   make(map[string]int, len(products)),
		source:  source,
		warning: warning,
	}
	for i, product := range products {
		c.index[product.ID] = i
	}
	return c
}

// Empty 空目录
func Empty(source, warning string) *Catalog {
	return New(models.CatalogDocument{}, source, warning)
}

// Product 按 ID 查找商品
func (c *Catalog) Product(id string) (models.Product, bool) {
	if c == nil {
		return models.Product{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return models.Product{}, false
	}
	return c.doc.Products[i], true
}

// Products 全部商品（返回副本）
func (c *Catalog) Products() []models.Product {
	if c == nil {
		return []models.Product{}
	}
	out := make([]models.Product, len(c.doc.Products))
	copy(out, c.doc.Products)
	return out
}

// Categories 全部分类（返回副本）
func (c *Catalog) Categories() []models.Category {
	if c == nil {
		return []models.Category{}
	}
	out := make([]models.Category, len(c.doc.Categories))
	copy(out, c.doc.Categories)
	return out
}

// Document 返回目录文档副本
func (c *Catalog) Document() models.CatalogDocument {
	if c == nil {
		return models.CatalogDocument{}
	}
	return models.CatalogDocument{
		LastUpdated: c.doc.LastUpdated,
		Products:    c.Products(),
		Categories:  c.Categories(),
	}
}

// LastUpdated 目录更新时间
func (c *Catalog) LastUpdated() string {
	if c == nil {
		return ""
	}
	return c.doc.LastUpdated
}

// Source 目录来源（file / http / cache / none）
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Warning 加载告警，正常时为空
func (c *Catalog) Warning() string {
	if c == nil {
		return ""
	}
	return c.warning
}

// Len 商品数
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.doc.Products)
}

// Search 按分类与关键字过滤；关键字大小写不敏感，匹配名称、描述与标签
func (c *Catalog) Search(categoryID, query string) []models.Product {
	if c == nil {
		return []models.Product{}
	}
	categoryID = strings.TrimSpace(categoryID)
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Product, 0, len(c.doc.Products))
	for _, product := range c.doc.Products {
		if categoryID != "" && product.Category != categoryID {
			continue
		}
		if query != "" && !matchesQuery(product, query) {
			continue
		}
		out = append(out, product)
	}
	return out
}

func matchesQuery(product models.Product, query string) bool {
	if strings.Contains(strings.ToLower(product.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(product.Description), query) {
		return true
	}
	for _, tag := range product.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
