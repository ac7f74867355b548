package aggregator

import (
	"container/list"
	"sync"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
)

// quoteCache is a bounded LRU of complete routes. Keys embed the snapshot
// version, so a rebuild makes old entries unreachable even before Clear.
type quoteCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List
	maxSize int
}

type quoteEntry struct {
	key   string
	route *domain.CompleteTradeRoute
}

// newQuoteCache returns nil for maxSize <= 0; a nil cache misses every Get
// and drops every Set.
func newQuoteCache(maxSize int) *quoteCache {
	if maxSize <= 0 {
		return nil
	}
	return &quoteCache{
		entries: make(map[string]*list.Element, maxSize),
		lru:     list.New(),
		maxSize: maxSize,
	}
}

func (c *quoteCache) Get(key string) (*domain.CompleteTradeRoute, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		metrics.QuoteCacheMisses.Inc()
		return nil, false
	}
	c.lru.MoveToFront(elem)
	metrics.QuoteCacheHits.Inc()
	return elem.Value.(*quoteEntry).route, true
}

func (c *quoteCache) Set(key string, route *domain.CompleteTradeRoute) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*quoteEntry).route = route
		return
	}

	for len(c.entries) >= c.maxSize {
		back := c.lru.Back()
		if back == nil {
			break
		}
		c.lru.Remove(back)
		delete(c.entries, back.Value.(*quoteEntry).key)
	}

	c.entries[key] = c.lru.PushFront(&quoteEntry{key: key, route: route})
	metrics.QuoteCacheSize.Set(float64(len(c.entries)))
}

func (c *quoteCache) Size() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *quoteCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.maxSize)
	c.lru.Init()
	metrics.QuoteCacheSize.Set(0)
}
