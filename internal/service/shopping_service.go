package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/logger"
	"github.com/tripcart/internal/models"
	"github.com/tripcart/internal/repository"

	"github.com/cenkalti/backoff/v4"
)

const (
	maxShopperIDLength    = 64
	defaultSessionIdleTTL = 30 * time.Minute
	defaultMaxSessions    = 10000
	sessionSweepInterval  = time.Minute
)

// SaveRetryPolicy 状态写入重试策略
type SaveRetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
}

// ShoppingServiceOptions 购物服务可选项
type ShoppingServiceOptions struct {
	Now   func() time.Time
	Retry SaveRetryPolicy
	// SessionIdleTTL 内存会话闲置多久后回收，<= 0 使用默认 30 分钟
	SessionIdleTTL time.Duration
	// MaxSessions 内存会话上限，达到上限时回收最久未用的闲置会话，<= 0 使用默认值
	MaxSessions int
}

// CartView 购物车视图
type CartView struct {
	Items  []models.CartLineItem `json:"items"`
	Totals models.Totals         `json:"totals"`
}

// TripView 当前行程视图
type TripView struct {
	Trip   *models.Trip          `json:"trip"`
	Items  []models.CartLineItem `json:"items"`
	Totals models.Totals         `json:"totals"`
}

// AdjustResult 数量调整结果
type AdjustResult struct {
	Item    models.CartLineItem `json:"item"`
	Removed bool                `json:"removed"`
}

// ShoppingService 购物控制器：每个 shopper 持有一份状态，写入成功后才对外可见
type ShoppingService struct {
	repo      repository.StateRepository
	products  ProductLookup
	lifecycle *TripLifecycle
	retry     SaveRetryPolicy

	now         func() time.Time
	idleTTL     time.Duration
	maxSessions int

	mu        sync.Mutex
	sessions  map[string]*shopperSession
	lastSweep time.Time
}

// shopperSession 内存中的 shopper 状态；refs 与 lastUsed 由 ShoppingService.mu 保护
type shopperSession struct {
	mu     sync.Mutex
	loaded bool
	state  models.AppState

	refs     int
	lastUsed time.Time
}

// NewShoppingService 创建购物服务
func NewShoppingService(repo repository.StateRepository, products ProductLookup, opts ShoppingServiceOptions) *ShoppingService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	idleTTL := opts.SessionIdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultSessionIdleTTL
	}
	maxSessions := opts.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &ShoppingService{
		repo:        repo,
		products:    products,
		lifecycle:   NewTripLifecycle(now),
		retry:       opts.Retry,
		now:         now,
		idleTTL:     idleTTL,
		maxSessions: maxSessions,
		sessions:    make(map[string]*shopperSession),
	}
}

// NormalizeShopperID 校验并规范化 shopper 标识，空值使用默认 shopper
func NormalizeShopperID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return constants.DefaultShopperID, nil
	}
	if len(id) > maxShopperIDLength || id == constants.CatalogShopperID {
		return "", ErrShopperIDInvalid
	}
	for _, r := range id {
		if !isShopperIDRune(r) {
			return "", ErrShopperIDInvalid
		}
	}
	return id, nil
}

// shopper id 仅允许 ASCII 字母数字与 . _ : @ -
func isShopperIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == ':', r == '@', r == '-':
		return true
	}
	return false
}

// State 当前完整状态（副本）
func (s *ShoppingService) State(ctx context.Context, shopperID string) (models.AppState, error) {
	var out models.AppState
	err := s.read(ctx, shopperID, func(state models.AppState) {
		out = state.Clone()
	})
	return out, err
}

// Trip 当前行程、购物车与汇总
func (s *ShoppingService) Trip(ctx context.Context, shopperID string) (TripView, error) {
	var view TripView
	err := s.read(ctx, shopperID, func(state models.AppState) {
		if trip, ok := state.Trip.Trip(); ok {
			view.Trip = &trip
		}
		view.Items = models.CloneLineItems(state.Cart)
		view.Totals = ComputeTotals(state.Cart)
	})
	return view, err
}

// Cart 购物车与汇总
func (s *ShoppingService) Cart(ctx context.Context, shopperID string) (CartView, error) {
	var view CartView
	err := s.read(ctx, shopperID, func(state models.AppState) {
		view.Items = models.CloneLineItems(state.Cart)
		view.Totals = ComputeTotals(state.Cart)
	})
	return view, err
}

// StartTrip 开始行程
func (s *ShoppingService) StartTrip(ctx context.Context, shopperID, name string) (models.Trip, error) {
	var trip models.Trip
	err := s.mutate(ctx, shopperID, "trip_started", func(state *models.AppState) error {
		var err error
		trip, err = s.lifecycle.StartTrip(state, name)
		return err
	})
	return trip, err
}

// EndTrip 结束行程；空购物车时返回 nil 记录
func (s *ShoppingService) EndTrip(ctx context.Context, shopperID string) (*models.HistoryRecord, error) {
	var record *models.HistoryRecord
	err := s.mutate(ctx, shopperID, "trip_ended", func(state *models.AppState) error {
		var err error
		record, err = s.lifecycle.EndTrip(state)
		return err
	})
	return record, err
}

// AddOrUpdateItem 加入或覆盖购物车数量
func (s *ShoppingService) AddOrUpdateItem(ctx context.Context, shopperID, productID string, quantity int) (models.CartLineItem, error) {
	var item models.CartLineItem
	err := s.mutate(ctx, shopperID, "cart_item_set", func(state *models.AppState) error {
		var err error
		item, err = AddOrUpdateItem(state, s.products, productID, quantity)
		return err
	})
	return item, err
}

// AdjustQuantity 按增量调整数量
func (s *ShoppingService) AdjustQuantity(ctx context.Context, shopperID, productID string, delta int) (AdjustResult, error) {
	var result AdjustResult
	err := s.mutate(ctx, shopperID, "cart_item_adjusted", func(state *models.AppState) error {
		item, removed, err := AdjustQuantity(state, productID, delta)
		result = AdjustResult{Item: item, Removed: removed}
		return err
	})
	return result, err
}

// RemoveItem 移除购物车行，返回商品名称
func (s *ShoppingService) RemoveItem(ctx context.Context, shopperID, productID string) (string, error) {
	var name string
	err := s.mutate(ctx, shopperID, "cart_item_removed", func(state *models.AppState) error {
		var err error
		name, err = RemoveItem(state, productID)
		return err
	})
	return name, err
}

// History 历史记录（最新在前）
func (s *ShoppingService) History(ctx context.Context, shopperID string) ([]models.HistoryRecord, error) {
	var out []models.HistoryRecord
	err := s.read(ctx, shopperID, func(state models.AppState) {
		out = state.Clone().History
	})
	return out, err
}

// HistoryRecord 单条历史记录
func (s *ShoppingService) HistoryRecord(ctx context.Context, shopperID, tripID string) (models.HistoryRecord, error) {
	var (
		record models.HistoryRecord
		found  bool
	)
	err := s.read(ctx, shopperID, func(state models.AppState) {
		record, found = FindRecord(state.Clone().History, tripID)
	})
	if err != nil {
		return models.HistoryRecord{}, err
	}
	if !found {
		return models.HistoryRecord{}, ErrHistoryNotFound
	}
	return record, nil
}

// DeleteHistoryRecord 删除历史记录
func (s *ShoppingService) DeleteHistoryRecord(ctx context.Context, shopperID, tripID string) error {
	return s.mutate(ctx, shopperID, "history_record_deleted", func(state *models.AppState) error {
		history, err := RemoveRecord(state.History, tripID)
		if err != nil {
			return err
		}
		state.History = history
		return nil
	})
}

// HistoryStats 历史统计
func (s *ShoppingService) HistoryStats(ctx context.Context, shopperID string) (models.HistoryStats, error) {
	var stats models.HistoryStats
	err := s.read(ctx, shopperID, func(state models.AppState) {
		stats = SummarizeHistory(state.History)
	})
	return stats, err
}

// acquire 取得会话并计数引用，用完须调用 release
func (s *ShoppingService) acquire(shopperID string) *shopperSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	sess, ok := s.sessions[shopperID]
	if !ok {
		sess = &shopperSession{}
		s.sessions[shopperID] = sess
	}
	sess.refs++
	sess.lastUsed = now
	return sess
}

func (s *ShoppingService) release(sess *shopperSession) {
	s.mu.Lock()
	sess.refs--
	sess.lastUsed = s.now()
	s.mu.Unlock()
}

// sweepLocked 回收闲置会话；内存状态总与持久层一致，回收后下次访问重新加载
func (s *ShoppingService) sweepLocked(now time.Time) {
	full := len(s.sessions) >= s.maxSessions
	if !full && now.Sub(s.lastSweep) < sessionSweepInterval {
		return
	}
	s.lastSweep = now
	idle := make([]string, 0)
	for id, sess := range s.sessions {
		if sess.refs > 0 {
			continue
		}
		if now.Sub(sess.lastUsed) >= s.idleTTL {
			delete(s.sessions, id)
			continue
		}
		idle = append(idle, id)
	}
	evicted := 0
	if len(s.sessions) >= s.maxSessions {
		slices.SortFunc(idle, func(a, b string) int {
			return s.sessions[a].lastUsed.Compare(s.sessions[b].lastUsed)
		})
		for _, id := range idle {
			if len(s.sessions) < s.maxSessions {
				break
			}
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		logger.Debugw("state_sessions_evicted", "evicted", evicted, "sessions", len(s.sessions))
	}
}

// ensureLoaded 首次访问时从持久层加载，调用方须持有 sess.mu
func (s *ShoppingService) ensureLoaded(ctx context.Context, shopperID string, sess *shopperSession) error {
	if sess.loaded {
		return nil
	}
	state, err := s.repo.Load(ctx, shopperID)
	if err != nil {
		logger.Errorw("state_load_failed", "shopper_id", shopperID, "error", err)
		return fmt.Errorf("%w: %v", ErrStateLoadFailed, err)
	}
	sess.state = state
	sess.loaded = true
	logger.Debugw("state_loaded",
		"shopper_id", shopperID,
		"trip_active", state.Trip.IsActive(),
		"cart_items", len(state.Cart),
		"history", len(state.History),
	)
	return nil
}

func (s *ShoppingService) read(ctx context.Context, shopperID string, fn func(models.AppState)) error {
	shopperID, err := NormalizeShopperID(shopperID)
	if err != nil {
		return err
	}
	sess := s.acquire(shopperID)
	defer s.release(sess)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensureLoaded(ctx, shopperID, sess); err != nil {
		return err
	}
	fn(sess.state)
	return nil
}

// mutate 在副本上执行修改，写入成功后替换内存状态；写入失败时内存状态保持不变
func (s *ShoppingService) mutate(ctx context.Context, shopperID, event string, fn func(*models.AppState) error) error {
	shopperID, err := NormalizeShopperID(shopperID)
	if err != nil {
		return err
	}
	sess := s.acquire(shopperID)
	defer s.release(sess)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensureLoaded(ctx, shopperID, sess); err != nil {
		return err
	}

	next := sess.state.Clone()
	if err := fn(&next); err != nil {
		if errors.Is(err, ErrInvalidState) || errors.Is(err, ErrNotFound) {
			logger.Debugw("state_event_ignored", "shopper_id", shopperID, "event", event, "reason", err.Error())
		}
		return err
	}

	if err := s.save(ctx, shopperID, next); err != nil {
		logger.Errorw("state_save_failed", "shopper_id", shopperID, "event", event, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	sess.state = next
	logger.Infow("state_changed",
		"shopper_id", shopperID,
		"event", event,
		"trip_active", next.Trip.IsActive(),
		"cart_items", len(next.Cart),
		"history", len(next.History),
	)
	return nil
}

func (s *ShoppingService) save(ctx context.Context, shopperID string, state models.AppState) error {
	policy := backoff.NewExponentialBackOff()
	if s.retry.InitialInterval > 0 {
		policy.InitialInterval = s.retry.InitialInterval
	}
	if s.retry.MaxElapsedTime > 0 {
		policy.MaxElapsedTime = s.retry.MaxElapsedTime
	}
	retries := s.retry.MaxRetries
	if retries < 0 {
		retries = 0
	}
	attempt := 0
	operation := func() error {
		attempt++
		err := s.repo.Save(ctx, shopperID, state)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if err != nil {
			logger.Warnw("state_save_retry", "shopper_id", shopperID, "attempt", attempt, "error", err)
		}
		return err
	}
	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx))
}
