package service

import (
	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/models"

	"github.com/shopspring/decimal"
)

var taxRate = decimal.RequireFromString(constants.TaxRate)

// ProductLookup 按 ID 查询商品
type ProductLookup interface {
	Product(id string) (models.Product, bool)
}

// AddOrUpdateItem 加入商品或覆盖已有数量（绝对值）
func AddOrUpdateItem(state *models.AppState, products ProductLookup, productID string, quantity int) (models.CartLineItem, error) {
	if !state.Trip.IsActive() {
		return models.CartLineItem{}, ErrNoActiveTrip
	}
	if quantity <= 0 {
		return models.CartLineItem{}, ErrQuantityInvalid
	}
	product, ok := lookupProduct(products, productID)
	if !ok {
		return models.CartLineItem{}, ErrProductNotFound
	}
	for i := range state.Cart {
		if state.Cart[i].ProductID == productID {
			state.Cart[i].Quantity = quantity
			return state.Cart[i], nil
		}
	}
	item := models.CartLineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Unit:      product.Unit,
		Price:     product.Price,
		Quantity:  quantity,
	}
	state.Cart = append(state.Cart, item)
	return item, nil
}

// AdjustQuantity 按增量调整数量，结果 <= 0 时移除；返回调整后的行与是否已移除
func AdjustQuantity(state *models.AppState, productID string, delta int) (models.CartLineItem, bool, error) {
	if !state.Trip.IsActive() {
		return models.CartLineItem{}, false, ErrNoActiveTrip
	}
	for i := range state.Cart {
		if state.Cart[i].ProductID != productID {
			continue
		}
		next := state.Cart[i].Quantity + delta
		if next <= 0 {
			removed := state.Cart[i]
			state.Cart = append(state.Cart[:i], state.Cart[i+1:]...)
			return removed, true, nil
		}
		state.Cart[i].Quantity = next
		return state.Cart[i], false, nil
	}
	return models.CartLineItem{}, false, ErrCartItemNotFound
}

// RemoveItem 删除购物车行，返回被删除商品名称
func RemoveItem(state *models.AppState, productID string) (string, error) {
	for i := range state.Cart {
		if state.Cart[i].ProductID == productID {
			name := state.Cart[i].Name
			state.Cart = append(state.Cart[:i], state.Cart[i+1:]...)
			return name, nil
		}
	}
	return "", ErrCartItemNotFound
}

// ComputeTotals 计算小计、税额、合计（完整精度）与件数
func ComputeTotals(items []models.CartLineItem) models.Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	tax := subtotal.Mul(taxRate)
	return models.Totals{
		Subtotal:  models.NewMoney(subtotal),
		Tax:       models.NewMoney(tax),
		Total:     models.NewMoney(subtotal.Add(tax)),
		ItemCount: count,
	}
}

func lookupProduct(products ProductLookup, productID string) (models.Product, bool) {
	if products == nil || productID == "" {
		return models.Product{}, false
	}
	return products.Product(productID)
}
