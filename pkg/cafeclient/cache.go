package cafeclient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleAfter 默认陈旧窗口，超过后下次读取会重新拉取
const DefaultStaleAfter = 30 * time.Second

// ==================== Cache 读穿缓存 ====================

// Cache 会话级读穿缓存，仅作提示用途，数据以服务端为准
// 同一个键的并发拉取会被合并
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	staleAfter time.Duration
	now        func() time.Time
	group      singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key       Key
	gen       uint64 // 每次失效加一，拉取完成时代数不一致则丢弃结果
	value     interface{}
	fetchedAt time.Time
	valid     bool
}

// Stats 命中统计
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// NewCache 创建缓存，staleAfter <= 0 时使用默认窗口
func NewCache(staleAfter time.Duration) *Cache {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Cache{
		entries:    make(map[string]*entry),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Get 读取 key，未命中或已陈旧时调用 fetch 并写回
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	k := key.String()

	c.mu.Lock()
	e, ok := c.entries[k]
	if ok && e.valid && c.now().Sub(e.fetchedAt) < c.staleAfter {
		if v, typed := e.value.(T); typed {
			c.mu.Unlock()
			c.hits.Add(1)
			return v, nil
		}
	}
	if !ok {
		e = &entry{key: key}
		c.entries[k] = e
	}
	gen := e.gen
	c.mu.Unlock()
	c.misses.Add(1)

	// 失效后发起的读取不与失效前的拉取合并
	v, err, _ := c.group.Do(fmt.Sprintf("%s#%d", k, gen), func() (interface{}, error) {
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if cur, ok := c.entries[k]; ok && cur == e && cur.gen == gen {
			cur.value = val
			cur.fetchedAt = c.now()
			cur.valid = true
		}
		c.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cafeclient: 缓存键 %s 的值类型为 %T", k, v)
	}
	return typed, nil
}

// Invalidate 将 prefix 之下的所有键标记为陈旧，返回受影响的条目数
// 正在进行的拉取结果也不会写回
func (c *Cache) Invalidate(prefixes ...Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		for _, p := range prefixes {
			if e.key.HasPrefix(p) {
				e.gen++
				e.valid = false
				e.value = nil
				n++
				break
			}
		}
	}
	return n
}

// Purge 清空全部条目
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Stats 返回命中统计
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	n := 0
	for _, e := range c.entries {
		if e.valid {
			n++
		}
	}
	c.mu.Unlock()

	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: n,
	}
}
