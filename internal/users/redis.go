package users

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/fanburst"
)

const defaultKeyPrefix = "user:"

// RedisStore keeps users as JSON documents keyed by provider identity.
type RedisStore struct {
	client redis.Cmdable
	group  singleflight.Group
	now    func() time.Time
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the "user:" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a store backed by client.
func NewRedisStore(client redis.Cmdable, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		now:    time.Now,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindOrCreate implements Store. Concurrent logins of the same identity are
// coalesced within the process; across processes the loser of SETNX adopts
// the winner's record.
func (s *RedisStore) FindOrCreate(ctx context.Context, p *fanburst.Profile) (*User, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}

	key := s.key(p)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.findOrCreate(ctx, key, p)
	})
	if err != nil {
		return nil, err
	}
	u := *v.(*User)
	return &u, nil
}

func (s *RedisStore) findOrCreate(ctx context.Context, key string, p *fanburst.Profile) (*User, error) {
	now := s.now().UTC()

	u, err := s.get(ctx, key)
	if err != nil {
		return nil, err
	}
	if u == nil {
		created := newUser(p, now)
		data, err := json.Marshal(created)
		if err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		ok, err := s.client.SetNX(ctx, key, data, 0).Result()
		if err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		if ok {
			return created, nil
		}
		if u, err = s.get(ctx, key); err != nil {
			return nil, err
		}
		if u == nil {
			return nil, errors.Join(ErrStoreFailed, redis.Nil)
		}
	}

	u.refresh(p, now)
	data, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return u, nil
}

func (s *RedisStore) key(p *fanburst.Profile) string {
	return s.prefix + identityKey(p.Provider, p.ID)
}

// get returns nil, nil when the key does not exist.
func (s *RedisStore) get(ctx context.Context, key string) (*User, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return &u, nil
}
