package service

import (
	"github.com/tripcart/internal/models"

	"github.com/shopspring/decimal"
)

// ArchiveRecord 将记录插入历史最前（最新在前）
func ArchiveRecord(history []models.HistoryRecord, record models.HistoryRecord) []models.HistoryRecord {
	out := make([]models.HistoryRecord, 0, len(history)+1)
	out = append(out, record)
	return append(out, history...)
}

// RemoveRecord 按行程 ID 删除记录，其余记录保持原顺序
func RemoveRecord(history []models.HistoryRecord, tripID string) ([]models.HistoryRecord, error) {
	for i := range history {
		if history[i].ID == tripID {
			out := make([]models.HistoryRecord, 0, len(history)-1)
			out = append(out, history[:i]...)
			return append(out, history[i+1:]...), nil
		}
	}
	return history, ErrHistoryNotFound
}

// FindRecord 按行程 ID 查找记录
func FindRecord(history []models.HistoryRecord, tripID string) (models.HistoryRecord, bool) {
	for _, record := range history {
		if record.ID == tripID {
			return record, true
		}
	}
	return models.HistoryRecord{}, false
}

// SummarizeHistory 统计行程数、总消费、平均消费与总件数
func SummarizeHistory(history []models.HistoryRecord) models.HistoryStats {
	total := decimal.Zero
	items := 0
	for _, record := range history {
		total = total.Add(record.Total.Decimal)
		items += record.ItemCount()
	}
	average := decimal.Zero
	if len(history) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(history))))
	}
	return models.HistoryStats{
		TripCount:    len(history),
		TotalSpent:   models.NewMoney(total),
		AverageSpent: models.NewMoney(average),
		TotalItems:   items,
	}
}
