package public

import (
	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/i18n"

	"github.com/gin-gonic/gin"
)

// StartTripRequest 开始行程请求
type StartTripRequest struct {
	Name string `json:"name"`
}

// GetTrip 当前行程、购物车与汇总
func (h *Handler) GetTrip(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	view, err := h.ShoppingService.Trip(c.Request.Context(), shopperID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, view)
}

// StartTrip 开始行程
func (h *Handler) StartTrip(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	var req StartTripRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
	}
	trip, err := h.ShoppingService.StartTrip(c.Request.Context(), shopperID, req.Name)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.trip_started"), trip)
}

// EndTrip 结束行程；空购物车的行程不归档，data 为 null
func (h *Handler) EndTrip(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	record, err := h.ShoppingService.EndTrip(c.Request.Context(), shopperID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	locale := i18n.ResolveLocale(c)
	if record == nil {
		response.SuccessWithMsg(c, i18n.T(locale, "message.trip_discarded"), nil)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "message.trip_ended"), record)
}
