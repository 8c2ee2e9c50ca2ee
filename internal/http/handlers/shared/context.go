package shared

import (
	"strings"

	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// ShopperIDHeader 请求头中的 shopper 标识
	ShopperIDHeader = "X-Shopper-ID"
	// ShopperIDKey 上下文中的 shopper 标识
	ShopperIDKey = "shopper_id"
)

// GetShopperID 读取中间件写入的 shopper 标识，缺失时按请求头解析。
func GetShopperID(c *gin.Context) (string, bool) {
	if value, ok := c.Get(ShopperIDKey); ok {
		if id, ok := value.(string); ok && id != "" {
			return id, true
		}
	}
	id, err := service.NormalizeShopperID(strings.TrimSpace(c.GetHeader(ShopperIDHeader)))
	if err != nil {
		RespondError(c, response.CodeBadRequest, "error.shopper_id_invalid", nil)
		return "", false
	}
	return id, true
}
