package queue

import (
	"encoding/json"

	"github.com/tripcart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogRefresh 商品目录刷新任务
	TaskCatalogRefresh = constants.TaskCatalogRefresh
)

// 刷新触发原因
const (
	RefreshReasonManual   = "manual"
	RefreshReasonSchedule = "schedule"
)

// CatalogRefreshPayload 目录刷新任务载荷；asynq 以类型加载荷计算唯一键，载荷中不放时间戳
type CatalogRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewCatalogRefreshTask 创建目录刷新任务
func NewCatalogRefreshTask(payload CatalogRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogRefresh, body), nil
}

// ParseCatalogRefreshPayload 解析目录刷新任务载荷
func ParseCatalogRefreshPayload(task *asynq.Task) (CatalogRefreshPayload, error) {
	var payload CatalogRefreshPayload
	if task == nil || len(task.Payload()) == 0 {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
