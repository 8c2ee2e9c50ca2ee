package public

import (
	"errors"

	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/service"
	"github.com/tripcart/internal/shootout"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// soft 为 true 时视为预期内的空操作，不记录错误日志。
type mappedHandlerError struct {
	target error
	code   int
	key    string
	soft   bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			if rule.soft {
				respondSoftError(c, rule.code, rule.key, err)
				return
			}
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var stateCommonErrorRules = []mappedHandlerError{
	{target: service.ErrShopperIDInvalid, code: response.CodeBadRequest, key: "error.shopper_id_invalid"},
	{target: service.ErrPersistFailed, code: response.CodeInternal, key: "error.state_save_failed"},
	{target: service.ErrStateLoadFailed, code: response.CodeInternal, key: "error.state_load_failed"},
}

var tripErrorRules = []mappedHandlerError{
	{target: service.ErrNoActiveTrip, code: response.CodeConflict, key: "error.no_active_trip", soft: true},
	{target: service.ErrTripAlreadyActive, code: response.CodeConflict, key: "error.trip_already_active", soft: true},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeConflict, key: "error.product_not_found", soft: true},
	{target: service.ErrQuantityInvalid, code: response.CodeConflict, key: "error.quantity_invalid", soft: true},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found", soft: true},
}

var historyErrorRules = []mappedHandlerError{
	{target: service.ErrHistoryNotFound, code: response.CodeNotFound, key: "error.history_not_found", soft: true},
}

// 兜底：未单独映射的 InvalidState / NotFound 仍按软错误处理
var softFallbackErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidState, code: response.CodeConflict, key: "error.bad_request", soft: true},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.bad_request", soft: true},
}

var catalogRefreshErrorRules = []mappedHandlerError{
	{target: service.ErrQueueUnavailable, code: response.CodeInternal, key: "error.queue_unavailable"},
}

var shootoutErrorRules = []mappedHandlerError{
	{target: shootout.ErrPowerTooLow, code: response.CodeBadRequest, key: "error.shot_power_too_low", soft: true},
	{target: shootout.ErrZoneInvalid, code: response.CodeBadRequest, key: "error.shot_zone_invalid", soft: true},
	{target: shootout.ErrDifficultyInvalid, code: response.CodeBadRequest, key: "error.difficulty_invalid", soft: true},
	{target: shootout.ErrGameFinished, code: response.CodeBadRequest, key: "error.shootout_finished", soft: true},
	{target: shootout.ErrProgressInvalid, code: response.CodeBadRequest, key: "error.shootout_progress_invalid", soft: true},
}

func respondStateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(
		stateCommonErrorRules,
		tripErrorRules,
		cartErrorRules,
		historyErrorRules,
		softFallbackErrorRules,
	), response.CodeInternal, "error.internal_error")
}

func respondCatalogRefreshError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogRefreshErrorRules, response.CodeInternal, "error.catalog_refresh_failed")
}

func respondShootoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, shootoutErrorRules, response.CodeInternal, "error.internal_error")
}
