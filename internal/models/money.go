package models

import (
	"encoding/json"

	"github.com/tripcart/internal/constants"

	"github.com/shopspring/decimal"
)

// Money 金额类型（计算与持久化保留完整精度，仅展示时保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoney 从 decimal 创建金额
func NewMoney(amount decimal.Decimal) Money {
	return Money{Decimal: amount}
}

// NewMoneyFromString 从字符串创建金额
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

// MustMoney 从字符串创建金额，解析失败直接 panic（用于常量与测试）
func MustMoney(value string) Money {
	return Money{Decimal: decimal.RequireFromString(value)}
}

// MarshalJSON 输出完整精度的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.String())
}

// UnmarshalJSON 解析金额（字符串或数字，数字按原文解析避免浮点误差）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.UnmarshalJSON(b)
}

// Display 返回展示用的 2 位小数格式
func (m Money) Display() string {
	return m.Decimal.StringFixed(constants.DisplayScale)
}

// String 返回完整精度字符串
func (m Money) String() string {
	return m.Decimal.String()
}
