package shared

import (
	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/i18n"
	"github.com/tripcart/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	kv := make([]interface{}, 0, 4)
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			kv = append(kv, "request_id", id)
		}
	}
	if shopperID, ok := c.Get(ShopperIDKey); ok {
		if id, ok := shopperID.(string); ok && id != "" {
			kv = append(kv, "shopper_id", id)
		}
	}
	return logger.SW(kv...)
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	respond(c, response.WrapError(code, msg, err))
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	respond(c, response.WrapError(code, msg, err))
}

// RespondSoftError 预期内的空操作（状态不允许 / 目标不存在），只记 debug 日志。
func RespondSoftError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	respond(c, response.WrapSoftError(code, msg, err))
}

func respond(c *gin.Context, appErr *response.AppError) {
	if appErr.Err != nil {
		log := RequestLog(c)
		if appErr.Soft {
			log.Debugw("handler_soft_error",
				"code", appErr.Code,
				"message", appErr.Message,
				"error", appErr.Err,
			)
		} else {
			log.Errorw("handler_error",
				"code", appErr.Code,
				"message", appErr.Message,
				"error", appErr.Err,
			)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}
