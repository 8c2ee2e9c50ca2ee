package i18n

var messages = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":              "Invalid request",
		"error.internal_error":           "Internal server error",
		"error.too_many_requests":        "Too many requests, please try again later",
		"error.shopper_id_invalid":       "Invalid shopper id",
		"error.product_not_found":        "Product not found",
		"error.product_id_invalid":       "Invalid product id",
		"error.quantity_invalid":         "Quantity must be greater than zero",
		"error.quantity_delta_zero":      "Quantity change must not be zero",
		"error.no_active_trip":           "No active trip",
		"error.trip_already_active":      "A trip is already in progress",
		"error.cart_item_not_found":      "Item is not in the cart",
		"error.history_not_found":        "Trip record not found",
		"error.state_save_failed":        "Could not save your changes, please retry",
		"error.state_load_failed":        "Could not load saved state",
		"error.catalog_unavailable":      "Product catalog is unavailable",
		"error.catalog_refresh_failed":   "Product catalog refresh failed",
		"error.queue_unavailable":        "Background queue is unavailable",
		"error.shot_power_too_low":       "Shot power is too low",
		"error.shot_zone_invalid":        "Shot zone is invalid",
		"error.difficulty_invalid":       "Difficulty is invalid",
		"error.shootout_finished":        "All shots have been taken",
		"error.shootout_progress_invalid": "Shootout progress is invalid",
		"error.rate_limited":             "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter is unavailable",
		"message.trip_started":           "Trip started",
		"message.trip_ended":             "Trip ended",
		"message.trip_discarded":         "Trip ended without items",
		"message.item_removed":           "%s removed from cart",
		"message.catalog_refresh_queued": "Catalog refresh queued",
		"message.catalog_refresh_already_queued": "Catalog refresh already queued",
		"message.catalog_refreshed":      "Catalog refreshed",
		"warning.catalog_stale":          "Showing the last saved product catalog",
		"warning.catalog_unavailable":    "Product catalog could not be loaded",
		"shootout.title.perfect":         "PERFECT!",
		"shootout.title.great":           "Great Job!",
		"shootout.title.not_bad":         "Not Bad!",
		"shootout.title.practice":        "Keep Practicing!",
	},
	LocaleZhCN: {
		"error.bad_request":              "请求参数错误",
		"error.internal_error":           "服务器内部错误",
		"error.too_many_requests":        "请求过于频繁，请稍后再试",
		"error.shopper_id_invalid":       "购物者标识无效",
		"error.product_not_found":        "商品不存在",
		"error.product_id_invalid":       "商品 ID 无效",
		"error.quantity_invalid":         "数量必须大于 0",
		"error.quantity_delta_zero":      "数量变化不能为 0",
		"error.no_active_trip":           "当前没有进行中的行程",
		"error.trip_already_active":      "已有进行中的行程",
		"error.cart_item_not_found":      "购物车中没有该商品",
		"error.history_not_found":        "行程记录不存在",
		"error.state_save_failed":        "保存失败，请重试",
		"error.state_load_failed":        "读取已保存状态失败",
		"error.catalog_unavailable":      "商品目录暂不可用",
		"error.catalog_refresh_failed":   "商品目录刷新失败",
		"error.queue_unavailable":        "后台队列不可用",
		"error.shot_power_too_low":       "射门力量不足",
		"error.shot_zone_invalid":        "射门区域无效",
		"error.difficulty_invalid":       "难度无效",
		"error.shootout_finished":        "射门次数已用完",
		"error.shootout_progress_invalid": "比赛进度无效",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"message.trip_started":           "行程已开始",
		"message.trip_ended":             "行程已结束",
		"message.trip_discarded":         "行程已结束（无商品）",
		"message.item_removed":           "已从购物车移除 %s",
		"message.catalog_refresh_queued": "商品目录刷新已排队",
		"message.catalog_refresh_already_queued": "商品目录刷新已在队列中",
		"message.catalog_refreshed":      "商品目录已刷新",
		"warning.catalog_stale":          "当前显示的是上次保存的商品目录",
		"warning.catalog_unavailable":    "商品目录加载失败",
		"shootout.title.perfect":         "完美！",
		"shootout.title.great":           "干得漂亮！",
		"shootout.title.not_bad":         "还不错！",
		"shootout.title.practice":        "继续练习！",
	},
}
