package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/Gunvolt24/order_rules/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу OrderCache.
var _ ports.OrderCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        int64
	order     domain.Order
	expiresAt time.Time
}

// LRUCacheTTL — кэш заказов по ID: вытеснение по LRU и скользящий TTL.
// ttl <= 0 отключает истечение.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[int64]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[int64]*list.Element),
	}
}

// Get — копия заказа при попадании; обращение продлевает TTL.
func (c *LRUCacheTTL) Get(_ context.Context, id int64) (*domain.Order, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		return nil, false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	order := ent.order
	return &order, true
}

// Set — кладёт копию заказа. Заказы без ID (ещё не сохранённые) игнорируются.
func (c *LRUCacheTTL) Set(_ context.Context, order *domain.Order) error {
	if order == nil || order.ID <= 0 {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[order.ID]; ok {
		ent := elem.Value.(*entry)
		ent.order = *order
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	c.index[order.ID] = c.ll.PushFront(&entry{
		id:        order.ID,
		order:     *order,
		expiresAt: c.expiryFrom(now),
	})
	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}

// WarmUp — массовая загрузка; прерывается отменой контекста.
func (c *LRUCacheTTL) WarmUp(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// Purge — очищает кэш (после пересоздания данных).
func (c *LRUCacheTTL) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.index = make(map[int64]*list.Element)
	metrics.CacheSize.Set(0)
}

// Len — текущее число элементов (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.id)
	c.ll.Remove(elem)
	metrics.CacheSize.Set(float64(len(c.index)))
}

func (c *LRUCacheTTL) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRUCacheTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — хвост списка самый давний по обращению, там и истекают первыми.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !now.After(back.Value.(*entry).expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
