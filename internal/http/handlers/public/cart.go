package public

import (
	"strings"

	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 设置购物车商品数量请求
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AdjustQuantityRequest 调整数量请求
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	view, err := h.ShoppingService.Cart(c.Request.Context(), shopperID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, view)
}

// UpsertCartItem 添加商品或设置数量
func (h *Handler) UpsertCartItem(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	item, err := h.ShoppingService.AddOrUpdateItem(c.Request.Context(), shopperID, productID, req.Quantity)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, item)
}

// AdjustCartItem 数量加减；减到 0 时移除
func (h *Handler) AdjustCartItem(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Delta == 0 {
		respondError(c, response.CodeBadRequest, "error.quantity_delta_zero", nil)
		return
	}
	result, err := h.ShoppingService.AdjustQuantity(c.Request.Context(), shopperID, productID, req.Delta)
	if err != nil {
		respondStateError(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteCartItem 移除购物车商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	shopperID, ok := getShopperID(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	name, err := h.ShoppingService.RemoveItem(c.Request.Context(), shopperID, productID)
	if err != nil {
		respondStateError(c, err)
		return
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), "message.item_removed", name)
	response.SuccessWithMsg(c, msg, gin.H{"product_id": productID, "name": name})
}
