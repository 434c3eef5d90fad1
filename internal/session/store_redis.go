package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "tenantnotes:session:"

// RedisStore keeps each session as a hash so the three storage keys map
// one-to-one onto hash fields. Expiry is the key TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(browserID string) string {
	return sessionKeyPrefix + browserID
}

func (s *RedisStore) Get(ctx context.Context, browserID string) (*Session, error) {
	fields, err := s.client.HGetAll(ctx, key(browserID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 || fields[KeyToken] == "" {
		return nil, ErrNotFound
	}

	sess := &Session{
		BrowserID:  browserID,
		Token:      fields[KeyToken],
		UserData:   fields[KeyUserData],
		RememberMe: fields[KeyRememberMe] == "true",
		Device:     fields["device"],
	}
	if v, err := strconv.ParseInt(fields["createdAt"], 10, 64); err == nil {
		sess.CreatedAt = time.Unix(v, 0).UTC()
	}
	if v, err := strconv.ParseInt(fields["expiresAt"], 10, 64); err == nil {
		sess.ExpiresAt = time.Unix(v, 0).UTC()
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	values := map[string]any{
		KeyToken:    sess.Token,
		KeyUserData: sess.UserData,
		"device":    sess.Device,
		"createdAt": sess.CreatedAt.Unix(),
	}
	if sess.RememberMe {
		values[KeyRememberMe] = "true"
	}
	if !sess.ExpiresAt.IsZero() {
		values["expiresAt"] = sess.ExpiresAt.Unix()
	}

	k := key(sess.BrowserID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, k)
		p.HSet(ctx, k, values)
		if ttl > 0 {
			p.Expire(ctx, k, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, browserID string) error {
	if err := s.client.Del(ctx, key(browserID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
