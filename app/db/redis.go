package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const prefixSession = "session:"

// SessionTTL limits lifetime of sessions which were never unmounted
const SessionTTL = 24 * time.Hour

type RedisStorage struct {
	db *redis.Client
}

// GetSession from redis
func (s *RedisStorage) GetSession(id string) (Session, error) {
	data, err := s.db.Get(context.Background(), prefixSession+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("fetching session: %w", err)
	}
	var session Session
	if jerr := json.NewDecoder(bytes.NewBufferString(data)).Decode(&session); jerr != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", jerr)
	}
	return session, nil
}

// SaveSession to redis
func (s *RedisStorage) SaveSession(session Session) error {
	jdata, jerr := json.Marshal(session)
	if jerr != nil {
		return fmt.Errorf("marshal session: %w", jerr)
	}
	set := s.db.Set(context.Background(), prefixSession+session.ID, string(jdata), SessionTTL)
	if err := set.Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// DeleteSession from redis
func (s *RedisStorage) DeleteSession(id string) error {
	if err := s.db.Del(context.Background(), prefixSession+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Close closes redis client
func (s *RedisStorage) Close() error {
	return s.db.Close()
}

// NewRedisStorage creates RedisStorage with given url
func NewRedisStorage(url string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb}, nil
}
