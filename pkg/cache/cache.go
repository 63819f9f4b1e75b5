package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache is redis backed with a short lived local layer in front. Without
// a redis client only the local layer is used.
type Cache struct {
	client   *redis.Client
	localTTL time.Duration
	mu       sync.Mutex
	local    map[string]localEntry
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: rdb, localTTL: time.Minute, local: make(map[string]localEntry)}
}

func NewLocalCache(ttl time.Duration) *Cache {
	return &Cache{localTTL: ttl, local: make(map[string]localEntry)}
}

func (c *Cache) getLocal(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.local[key]
	if !found {
		return nil, false
	}
	if entry.expires.Before(time.Now()) {
		delete(c.local, key)
		return nil, false
	}
	return entry.data, true
}

func (c *Cache) setLocal(key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	c.local[key] = localEntry{expires: time.Now().Add(ttl), data: data}
	c.mu.Unlock()
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	if data, ok := c.getLocal(key); ok {
		return sonic.Unmarshal(data, out)
	}
	if c.client == nil {
		return ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	if err = sonic.Unmarshal(data, out); err != nil {
		return err
	}
	c.setLocal(key, data, c.localTTL)
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.setLocal(key, data, min(expiration, c.localTTL))
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Invalidate drops every key starting with prefix from both layers.
func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	for key := range c.local {
		if strings.HasPrefix(key, prefix) {
			delete(c.local, key)
		}
	}
	c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, matchPrefix(prefix), 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

// matchPrefix builds a SCAN MATCH pattern for keys starting with prefix.
func matchPrefix(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
