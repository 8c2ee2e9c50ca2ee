package models

// CartLineItem 购物车行（价格为加入时的快照）
type CartLineItem struct {
	ProductID string `json:"product_id"` // 商品ID（购物车内唯一）
	Name      string `json:"name"`       // 商品名称快照
	Unit      string `json:"unit"`       // 计量单位快照
	Price     Money  `json:"price"`      // 单价快照
	Quantity  int    `json:"quantity"`   // 数量（恒为正整数）
}

// Totals 购物车金额汇总
type Totals struct {
	Subtotal  Money `json:"subtotal"`   // 小计
	Tax       Money `json:"tax"`        // 税额
	Total     Money `json:"total"`      // 合计
	ItemCount int   `json:"item_count"` // 商品件数
}
