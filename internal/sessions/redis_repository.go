package sessions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hash fields of a stored session.
const (
	fieldUser    = "user"
	fieldSuccess = "success"
	fieldFailure = "failure"
	fieldExpires = "expires"
)

// RedisRepository stores each session as a hash under <prefix><id>. Redis
// expires the key at the session's ExpiresAt.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) Save(ctx context.Context, s *Session) error {
	key := r.prefix + s.ID
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key,
			fieldUser, s.CurrentUser,
			fieldSuccess, s.Success,
			fieldFailure, s.Failure,
			fieldExpires, strconv.FormatInt(s.ExpiresAt.UnixMilli(), 10),
		)
		p.PExpireAt(ctx, key, s.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

// Get returns (nil, nil) for unknown or expired sessions.
func (r *RedisRepository) Get(ctx context.Context, id string) (*Session, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	ms, err := strconv.ParseInt(fields[fieldExpires], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %s: bad expiry %q", id, fields[fieldExpires])
	}
	s := &Session{
		ID:          id,
		CurrentUser: fields[fieldUser],
		Success:     fields[fieldSuccess],
		Failure:     fields[fieldFailure],
		ExpiresAt:   time.UnixMilli(ms).UTC(),
	}
	if !time.Now().Before(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
