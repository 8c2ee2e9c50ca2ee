package public

import (
	handlershared "github.com/tripcart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getShopperID(c *gin.Context) (string, bool) {
	return handlershared.GetShopperID(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondSoftError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondSoftError(c, code, key, err)
}
