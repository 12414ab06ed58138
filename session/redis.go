package session

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps carts in redis so sessions survive restarts and scale past
// one process.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedis(addr string) *RedisStore {
	return &RedisStore{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisStore) Cart(ctx context.Context, sid string, websiteID uint) ([]CartLine, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sid, websiteID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, sid string, websiteID uint, lines []CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(sid, websiteID), raw, TTLCart).Err()
}

func (s *RedisStore) ClearCart(ctx context.Context, sid string, websiteID uint) error {
	return s.rdb.Del(ctx, cartKey(sid, websiteID)).Err()
}

func (s *RedisStore) Meta(ctx context.Context, sid string, websiteID uint) (CartMeta, error) {
	var meta CartMeta
	raw, err := s.rdb.Get(ctx, metaKey(sid, websiteID)).Bytes()
	if err == redis.Nil {
		return meta, nil
	}
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(raw, &meta)
	return meta, err
}

func (s *RedisStore) SaveMeta(ctx context.Context, sid string, websiteID uint, meta CartMeta) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, metaKey(sid, websiteID), raw, TTLCart).Err()
}
