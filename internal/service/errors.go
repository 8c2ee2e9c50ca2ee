package service

import (
	"errors"
	"fmt"
)

// 基础错误：InvalidState / NotFound 属于预期内的空操作，不视为系统故障
var (
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrNoActiveTrip      = fmt.Errorf("%w: no active trip", ErrInvalidState)
	ErrTripAlreadyActive = fmt.Errorf("%w: trip already active", ErrInvalidState)
	ErrProductNotFound   = fmt.Errorf("%w: product not in catalog", ErrInvalidState)
	ErrQuantityInvalid   = fmt.Errorf("%w: quantity must be positive", ErrInvalidState)
	ErrCartItemNotFound  = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrHistoryNotFound   = fmt.Errorf("%w: history record", ErrNotFound)
)

var (
	ErrPersistFailed        = errors.New("persist state failed")
	ErrStateLoadFailed      = errors.New("load state failed")
	ErrCatalogUnavailable   = errors.New("catalog unavailable")
	ErrCatalogRefreshFailed = errors.New("catalog refresh failed")
	ErrQueueUnavailable     = errors.New("queue unavailable")
	ErrShopperIDInvalid     = errors.New("shopper id invalid")
)
