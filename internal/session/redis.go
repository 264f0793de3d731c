package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"facultybot/pkg/domain"
)

// RedisStore keeps sessions in Redis with TTL, so expiry needs no lazy
// bookkeeping and replicas share browsing state.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: "facultybot:session:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(chatID int64) string {
	return s.prefix + strconv.FormatInt(chatID, 10)
}

// Set overwrites any existing session for the chat and resets its expiry.
func (s *RedisStore) Set(chatID int64, course string, ct domain.ContentType) error {
	raw, err := json.Marshal(domain.Session{ChatID: chatID, Course: course, Type: ct})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, s.key(chatID), raw, s.ttl).Err()
}

// Get returns the live session for a chat.
func (s *RedisStore) Get(chatID int64) (domain.Session, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, s.key(chatID)).Result()
	if err == redis.Nil {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return domain.Session{}, false, err
	}
	return sess, true, nil
}

// Clear removes the chat's session.
func (s *RedisStore) Clear(chatID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, s.key(chatID)).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
