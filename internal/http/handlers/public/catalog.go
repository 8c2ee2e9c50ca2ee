package public

import (
	"strings"

	handlershared "github.com/tripcart/internal/http/handlers/shared"
	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/i18n"
	"github.com/tripcart/internal/models"
	"github.com/tripcart/internal/queue"
	"github.com/tripcart/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogResponse 商品目录响应
type CatalogResponse struct {
	Products    []models.Product  `json:"products"`
	Categories  []models.Category `json:"categories"`
	LastUpdated string            `json:"last_updated"`
	Source      string            `json:"source"`
	Currency    string            `json:"currency"`
	Warning     string            `json:"warning,omitempty"`
}

// GetCatalog 获取完整商品目录
func (h *Handler) GetCatalog(c *gin.Context) {
	current := h.CatalogService.Current()
	resp := CatalogResponse{
		Products:    current.Products(),
		Categories:  current.Categories(),
		LastUpdated: current.LastUpdated(),
		Source:      current.Source(),
		Currency:    h.Config.Catalog.Currency,
	}
	if warning := current.Warning(); warning != "" {
		resp.Warning = i18n.T(i18n.ResolveLocale(c), "warning."+warning)
	}
	response.Success(c, resp)
}

// SearchProducts 按分类与关键字搜索商品
func (h *Handler) SearchProducts(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	query := c.Query("q")
	products := h.CatalogService.Search(category, query)
	if products == nil {
		products = []models.Product{}
	}
	response.Success(c, products)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	product, ok := h.CatalogService.Product(id)
	if !ok {
		respondSoftError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	response.Success(c, product)
}

// RefreshCatalog 刷新商品目录：队列可用时入队，否则同步刷新
func (h *Handler) RefreshCatalog(c *gin.Context) {
	locale := i18n.ResolveLocale(c)
	if h.QueueClient != nil && h.QueueClient.Enabled() {
		payload := queue.CatalogRefreshPayload{Reason: queue.RefreshReasonManual}
		if err := h.QueueClient.EnqueueCatalogRefresh(payload); err != nil {
			if queue.IsAlreadyQueued(err) {
				response.SuccessWithMsg(c, i18n.T(locale, "message.catalog_refresh_already_queued"), gin.H{"queued": true})
				return
			}
			handlershared.RequestLog(c).Warnw("catalog_refresh_enqueue_failed", "error", err)
			respondCatalogRefreshError(c, service.ErrQueueUnavailable)
			return
		}
		response.SuccessWithMsg(c, i18n.T(locale, "message.catalog_refresh_queued"), gin.H{"queued": true})
		return
	}

	if err := h.CatalogService.Refresh(c.Request.Context()); err != nil {
		respondCatalogRefreshError(c, err)
		return
	}
	current := h.CatalogService.Current()
	response.SuccessWithMsg(c, i18n.T(locale, "message.catalog_refreshed"), gin.H{
		"queued":       false,
		"products":     current.Len(),
		"last_updated": current.LastUpdated(),
	})
}
