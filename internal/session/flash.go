package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Flash is a one-shot message shown on the next render of the page.
type Flash struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type FlashStore interface {
	Push(ctx context.Context, sid string, f Flash) error
	// Pop returns the pending flashes for sid and clears them.
	Pop(ctx context.Context, sid string) ([]Flash, error)
}

type MemoryFlashStore struct {
	mu      sync.Mutex
	pending map[string][]Flash
}

func NewMemoryFlashStore() *MemoryFlashStore {
	return &MemoryFlashStore{pending: make(map[string][]Flash)}
}

func (s *MemoryFlashStore) Push(_ context.Context, sid string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[sid] = append(s.pending[sid], f)
	return nil
}

func (s *MemoryFlashStore) Pop(_ context.Context, sid string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flashes := s.pending[sid]
	delete(s.pending, sid)
	return flashes, nil
}

// RedisFlashStore keeps flashes in a per-session list that expires after ttl,
// so abandoned sessions do not accumulate.
type RedisFlashStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisFlashStore(rdb *redis.Client, ttl time.Duration) *RedisFlashStore {
	return &RedisFlashStore{rdb: rdb, ttl: ttl}
}

func flashKey(sid string) string {
	return "flash:" + sid
}

func (s *RedisFlashStore) Push(ctx context.Context, sid string, f Flash) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	key := flashKey(sid)
	if err := s.rdb.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("expire flash: %w", err)
	}
	return nil
}

func (s *RedisFlashStore) Pop(ctx context.Context, sid string) ([]Flash, error) {
	key := flashKey(sid)
	entries, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read flashes: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("clear flashes: %w", err)
	}

	flashes := make([]Flash, 0, len(entries))
	for _, item := range entries {
		var f Flash
		if err := json.Unmarshal([]byte(item), &f); err == nil {
			flashes = append(flashes, f)
		}
	}
	return flashes, nil
}
