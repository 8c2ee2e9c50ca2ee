package models

// HistoryRecord 已完成行程的归档记录（创建后不可变，只允许整条删除）
type HistoryRecord struct {
	Trip
	Items    []CartLineItem `json:"items"`    // 购物车快照
	Subtotal Money          `json:"subtotal"` // 小计
	Tax      Money          `json:"tax"`      // 税额
	Total    Money          `json:"total"`    // 合计
}

// ItemCount 记录内商品件数
func (r HistoryRecord) ItemCount() int {
	count := 0
	for _, item := range r.Items {
		count += item.Quantity
	}
	return count
}

// HistoryStats 历史统计
type HistoryStats struct {
	TripCount    int   `json:"trip_count"`    // 行程数
	TotalSpent   Money `json:"total_spent"`   // 总消费
	AverageSpent Money `json:"average_spent"` // 平均每次消费
	TotalItems   int   `json:"total_items"`   // 总件数
}
