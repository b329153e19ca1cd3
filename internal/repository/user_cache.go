package repository

import (
	"context"
	"encoding/json"
	"time"

	"blogfeed/internal/logger"
	"blogfeed/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthorCache: подмножество *redis.Client, которое нужно кэшу.
type AuthorCache interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedUserDirectory кэширует имена авторов в Redis. Ошибки Redis не роняют чтение:
// идём в основной справочник.
type CachedUserDirectory struct {
	next  UserDirectory
	cache AuthorCache
	ttl   time.Duration
}

func NewCachedUserDirectory(next UserDirectory, cache AuthorCache, ttl time.Duration) *CachedUserDirectory {
	return &CachedUserDirectory{next: next, cache: cache, ttl: ttl}
}

func authorKey(id string) string { return "author:" + id }

func (c *CachedUserDirectory) Resolve(ctx context.Context, id string) (models.Author, error) {
	m, err := c.ResolveMany(ctx, []string{id})
	if err != nil {
		return models.Author{}, err
	}
	a, ok := m[id]
	if !ok {
		return models.Author{}, ErrNotFound
	}
	return a, nil
}

func (c *CachedUserDirectory) ResolveMany(ctx context.Context, ids []string) (map[string]models.Author, error) {
	out := make(map[string]models.Author, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = authorKey(id)
	}

	missing := ids
	vals, err := c.cache.MGet(ctx, keys...).Result()
	if err != nil {
		logger.WithCtx(ctx).Warn("Redis недоступен, читаем авторов из БД", zap.Error(err))
	} else {
		missing = missing[:0:0]
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var a models.Author
			if err := json.Unmarshal([]byte(s), &a); err != nil {
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = a
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.next.ResolveMany(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, a := range fresh {
		out[id] = a
		raw, _ := json.Marshal(a)
		if err := c.cache.Set(ctx, authorKey(id), raw, c.ttl).Err(); err != nil {
			logger.WithCtx(ctx).Warn("Не удалось записать автора в Redis", zap.String("author_id", id), zap.Error(err))
		}
	}
	return out, nil
}
