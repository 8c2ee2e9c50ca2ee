package public

import (
	"github.com/tripcart/internal/provider"
	"github.com/tripcart/internal/shootout"
)

// Handler 购物者接口处理器入口
type Handler struct {
	*provider.Container
	random shootout.RandomSource
}

// New 创建购物者处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c, random: shootout.DefaultRandom}
}
