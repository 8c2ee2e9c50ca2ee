package public

import (
	"strings"
	"time"

	"github.com/tripcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// HistorySummary 历史列表项
type HistorySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

// ListHistory 历史记录（新的在前）
func (h *Handler) ListHistory(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	records, err := h.ShoppingService.History(c.Request.Context(), shopperID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	items := make([]HistorySummary, 0, len(records))
	for _, record := range records {
		summary := HistorySummary{
			ID:        record.ID,
			Name:      record.Name,
			StartTime: record.StartTime.Format(time.RFC3339),
			ItemCount: record.ItemCount(),
			Total:     record.Total.Display(),
		}
		if record.EndTime != nil {
			summary.EndTime = record.EndTime.Format(time.RFC3339)
		}
		items = append(items, summary)
	}
	response.Success(c, items)
}

// GetHistoryStats 历史统计
func (h *Handler) GetHistoryStats(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	stats, err := h.ShoppingService.HistoryStats(c.Request.Context(), shopperID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, stats)
}

// GetHistoryRecord 历史记录详情
func (h *Handler) GetHistoryRecord(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	tripID := strings.TrimSpace(c.Param("id"))
	record, err := h.ShoppingService.HistoryRecord(c.Request.Context(), shopperID, tripID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, record)
}

// DeleteHistoryRecord 删除历史记录
func (h *Handler) DeleteHistoryRecord(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	tripID := strings.TrimSpace(c.Param("id"))
	if err := h.ShoppingService.DeleteHistoryRecord(c.Request.Context(), shopperID, tripID); err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, gin.H{"id": tripID})
}
